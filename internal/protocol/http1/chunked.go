package http1

import (
	"bytes"
	stderrors "errors"
	"io"
	"math"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/httpwire/errors"
	"github.com/indigo-web/httpwire/internal/hexconv"
)

var (
	errChunkIncomplete = stderrors.New("chunked body is incomplete")
	errChunkMalformed  = stderrors.New("chunked body is malformed")
)

// maxChunkLength keeps the chunk length representable as an offset into the buffer after
// one more hex digit is shifted in.
const maxChunkLength = math.MaxInt >> 4

var (
	crlf     = []byte("\r\n")
	crlfCRLF = []byte("\r\n\r\n")
)

// ChunkedSpan returns the number of bytes the chunked body at the beginning of data
// occupies: every chunk-size line, chunk data with its CRLF, the last chunk and the
// trailer section through its terminating blank line.
//
// errChunkIncomplete is returned if the body isn't fully there yet. errChunkMalformed
// signals that it never will be, as it's broken.
func ChunkedSpan(data []byte) (int, error) {
	n, _, err := chunkedSpan(data)
	return n, err
}

func chunkedSpan(data []byte) (n int, trailer bool, err error) {
	offset := 0

	for {
		lf := bytes.IndexByte(data[offset:], '\n')
		if lf == -1 {
			return 0, false, errChunkIncomplete
		}

		// chunk-size lines must be terminated with CRLF strictly, bare LF is malformed.
		if lf == 0 || data[offset+lf-1] != '\r' {
			return 0, false, errChunkMalformed
		}

		length, ok := parseChunkLength(data[offset : offset+lf-1])
		if !ok {
			return 0, false, errChunkMalformed
		}

		offset += lf + 1

		if length == 0 {
			return lastChunk(data, offset)
		}

		rest := len(data) - offset
		if length > rest || rest-length < len(crlf) {
			return 0, false, errChunkIncomplete
		}

		offset += length
		if !bytes.HasPrefix(data[offset:], crlf) {
			return 0, false, errChunkMalformed
		}

		offset += len(crlf)
	}
}

// lastChunk delimits the trailer section, which starts at the offset, right after the
// last-chunk line.
func lastChunk(data []byte, offset int) (n int, trailer bool, err error) {
	if bytes.HasPrefix(data[offset:], crlf) {
		return offset + len(crlf), false, nil
	}

	// the CRLF terminating the last field line and the blank line together form the CRLFCRLF
	end := bytes.Index(data[offset:], crlfCRLF)
	if end == -1 {
		return 0, false, errChunkIncomplete
	}

	return offset + end + len(crlfCRLF), true, nil
}

// parseChunkLength parses hex digits up to the optional chunk extension. Other characters
// are skipped, however at least a single digit must be present.
func parseChunkLength(line []byte) (length int, ok bool) {
	if ext := bytes.IndexByte(line, ';'); ext != -1 {
		line = line[:ext]
	}

	for _, char := range line {
		val := hexconv.Halfbyte[char]
		if val == 0xFF {
			continue
		}

		if length > maxChunkLength {
			return 0, false
		}

		length = length<<4 | int(val)
		ok = true
	}

	return length, ok
}

// Dechunk appends the payload carried by the chunked body to dst. Exactly the whole span,
// as returned by ChunkedSpan, is expected.
func Dechunk(dst, span []byte) ([]byte, error) {
	n, trailer, err := chunkedSpan(span)
	if err != nil || n != len(span) {
		return dst, errors.ErrChunkedBodyInvalid
	}

	parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())

	for len(span) > 0 {
		chunk, extra, err := parser.Parse(span, trailer)
		dst = append(dst, chunk...)

		switch err {
		case nil:
		case io.EOF:
			return dst, nil
		default:
			return dst, errors.ErrChunkedBodyInvalid
		}

		span = extra
	}

	return dst, errors.ErrChunkedBodyInvalid
}
