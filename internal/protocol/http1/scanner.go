// Package http1 frames HTTP/1.x messages: it scans the head, works out how many bytes
// the body occupies and delimits chunked bodies. Everything here operates on a single
// in-memory buffer and never copies from it.
package http1

import (
	"bytes"

	"github.com/indigo-web/httpwire/errors"
	"github.com/indigo-web/httpwire/http/headers"
	"github.com/indigo-web/httpwire/http/proto"
	"github.com/indigo-web/httpwire/http/status"
	"github.com/indigo-web/httpwire/internal/strutil"
	"github.com/indigo-web/utils/uf"
	"golang.org/x/net/http/httpguts"
)

// RequestLine is the scanned start line of a request. Method and Target are views into
// the scanned buffer.
type RequestLine struct {
	Method string
	Target string
	Proto  proto.Proto
}

// StatusLine is the scanned start line of a response. Reason is a view into the scanned
// buffer and may be empty.
type StatusLine struct {
	Proto  proto.Proto
	Code   status.Code
	Reason string
}

// ScanRequest scans the request line and the header fields. The headers storage is reset
// first and then filled with views into buf. headersEnd points right past the blank line
// terminating the head.
//
// Empty lines preceding the request line are skipped and are counted into headersEnd.
func ScanRequest(buf []byte, hdrs *headers.Headers) (line RequestLine, headersEnd int, err error) {
	hdrs.Reset()

	offset := skipEmptyLines(buf)
	lf := bytes.IndexByte(buf[offset:], '\n')
	if lf == -1 {
		return line, 0, errors.ErrHeaderSectionIncomplete
	}

	raw := stripCR(buf[offset : offset+lf])
	offset += lf + 1

	sp := bytes.IndexByte(raw, ' ')
	if sp <= 0 || !httpguts.ValidHeaderFieldName(uf.B2S(raw[:sp])) {
		return line, 0, errors.ErrHeaderSyntaxInvalid
	}

	line.Method = uf.B2S(raw[:sp])
	raw = raw[sp+1:]

	sp = bytes.IndexByte(raw, ' ')
	if sp <= 0 || !isValidTarget(raw[:sp]) {
		return line, 0, errors.ErrHeaderSyntaxInvalid
	}

	line.Target = uf.B2S(raw[:sp])

	if line.Proto, err = parseVersion(raw[sp+1:]); err != nil {
		return line, 0, err
	}

	headersEnd, err = scanHeaders(buf, offset, hdrs)
	return line, headersEnd, err
}

// ScanResponse scans the status line and the header fields. Works just like ScanRequest,
// except no empty lines are skipped.
func ScanResponse(buf []byte, hdrs *headers.Headers) (line StatusLine, headersEnd int, err error) {
	hdrs.Reset()

	lf := bytes.IndexByte(buf, '\n')
	if lf == -1 {
		return line, 0, errors.ErrHeaderSectionIncomplete
	}

	raw := stripCR(buf[:lf])

	sp := bytes.IndexByte(raw, ' ')
	if sp == -1 {
		return line, 0, errors.ErrHeaderSyntaxInvalid
	}

	if line.Proto, err = parseVersion(raw[:sp]); err != nil {
		return line, 0, err
	}

	raw = raw[sp+1:]

	const codeLen = len("200")
	if len(raw) < codeLen {
		return line, 0, errors.ErrHeaderSyntaxInvalid
	}

	for _, char := range raw[:codeLen] {
		if char < '0' || char > '9' {
			return line, 0, errors.ErrHeaderSyntaxInvalid
		}

		line.Code = line.Code*10 + status.Code(char-'0')
	}

	switch raw = raw[codeLen:]; {
	case len(raw) == 0:
	case raw[0] == ' ':
		reason := uf.B2S(raw[1:])
		if !httpguts.ValidHeaderFieldValue(reason) {
			return line, 0, errors.ErrHeaderSyntaxInvalid
		}

		line.Reason = reason
	default:
		return line, 0, errors.ErrHeaderSyntaxInvalid
	}

	headersEnd, err = scanHeaders(buf, lf+1, hdrs)
	return line, headersEnd, err
}

// scanHeaders scans field lines starting at the offset until the blank line. Every byte
// is visited once.
func scanHeaders(buf []byte, offset int, hdrs *headers.Headers) (headersEnd int, err error) {
	for {
		lf := bytes.IndexByte(buf[offset:], '\n')
		if lf == -1 {
			return 0, errors.ErrHeaderSectionIncomplete
		}

		raw := stripCR(buf[offset : offset+lf])
		offset += lf + 1

		if len(raw) == 0 {
			return offset, nil
		}

		colon := bytes.IndexByte(raw, ':')
		if colon == -1 {
			return 0, errors.ErrHeaderSyntaxInvalid
		}

		// this also rejects obsolete line folding, as leading whitespace is not a token char.
		name := uf.B2S(raw[:colon])
		if !httpguts.ValidHeaderFieldName(name) {
			return 0, errors.ErrHeaderSyntaxInvalid
		}

		value := strutil.StripWS(uf.B2S(raw[colon+1:]))
		if !httpguts.ValidHeaderFieldValue(value) {
			return 0, errors.ErrHeaderSyntaxInvalid
		}

		if !hdrs.Add(name, value) {
			return 0, errors.ErrTooManyHeaders
		}
	}
}

func parseVersion(raw []byte) (proto.Proto, error) {
	if !proto.IsVersionToken(raw) {
		return proto.Unknown, errors.ErrHeaderSyntaxInvalid
	}

	version := proto.FromBytes(raw)
	if version == proto.Unknown {
		return proto.Unknown, errors.ErrUnsupportedVersion
	}

	return version, nil
}

func skipEmptyLines(buf []byte) (offset int) {
	for offset < len(buf) {
		switch buf[offset] {
		case '\n':
			offset++
		case '\r':
			if offset+1 < len(buf) && buf[offset+1] == '\n' {
				offset += 2
				continue
			}

			return offset
		default:
			return offset
		}
	}

	return offset
}

func isValidTarget(target []byte) bool {
	for _, char := range target {
		if isProhibitedChar(char) {
			return false
		}
	}

	return true
}

func stripCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}

	return b
}

func isProhibitedChar(c byte) bool {
	return c <= 0x20 || c > 0x7e
}
