package http1

import (
	"github.com/indigo-web/httpwire/config"
	"github.com/indigo-web/httpwire/errors"
	"github.com/indigo-web/httpwire/http/headers"
	"github.com/indigo-web/httpwire/internal/strutil"
	"github.com/indigo-web/httpwire/internal/uintconv"
	"github.com/indigo-web/utils/uf"
)

// FramingOptions tune Frame.
type FramingOptions struct {
	// Bodyless marks messages that never carry a body, whatever their headers say. These
	// are responses with 1xx, 204 and 304 status codes, responses to HEAD requests and
	// successful responses to CONNECT.
	Bodyless bool
	Policy   config.Policy
	// MaxBodySize must be set explicitly. Use math.MaxUint64 in order to disable the limit.
	MaxBodySize uint64
	// RecoverableChunkedIncomplete reports truncated chunked bodies as incomplete instead
	// of invalid.
	RecoverableChunkedIncomplete bool
}

// OptionsFromConfig returns framing options corresponding to the config. Bodyless is
// left to the caller, as it depends on the message.
func OptionsFromConfig(cfg *config.Config) FramingOptions {
	return FramingOptions{
		Policy:                       cfg.Framing.Policy,
		MaxBodySize:                  cfg.Body.MaxSize,
		RecoverableChunkedIncomplete: cfg.Body.RecoverableChunkedIncomplete,
	}
}

// Frame returns the length of the body starting at headersEnd. The headers are supposed
// to be the scanned ones of the message in buf, and the head itself must be complete.
//
// chunked reports whether the body is in the chunked transfer coding. In this case bodyLen
// covers the whole coded span, including chunk-size lines and trailers.
//
// If Content-Length exceeds the bytes available, *errors.BodyIncompleteError carrying the
// exact number of missing bytes is returned.
func Frame(
	buf []byte, headersEnd int, hdrs *headers.Headers, opts FramingOptions,
) (bodyLen int, chunked bool, err error) {
	if opts.Bodyless {
		return 0, false, nil
	}

	var f framing
	switch opts.Policy {
	case config.Lenient:
		f = lenientFraming(hdrs)
	default:
		if f, err = strictFraming(hdrs); err != nil {
			return 0, false, err
		}
	}

	available := buf[headersEnd:]

	if f.chunked {
		n, err := ChunkedSpan(available)
		switch err {
		case nil:
		case errChunkIncomplete:
			if uint64(len(available)) > opts.MaxBodySize {
				return 0, true, errors.ErrBodyTooLarge
			}

			if opts.RecoverableChunkedIncomplete {
				return 0, true, errors.ErrChunkedBodyIncomplete
			}

			return 0, true, errors.ErrChunkedBodyInvalid
		default:
			return 0, true, errors.ErrChunkedBodyInvalid
		}

		if uint64(n) > opts.MaxBodySize {
			return 0, true, errors.ErrBodyTooLarge
		}

		return n, true, nil
	}

	if f.contentLength > opts.MaxBodySize {
		return 0, false, errors.ErrBodyTooLarge
	}

	if have := uint64(len(available)); have < f.contentLength {
		return 0, false, &errors.BodyIncompleteError{Missing: f.contentLength - have}
	}

	return int(f.contentLength), false, nil
}

type framing struct {
	contentLength uint64
	chunked       bool
}

// strictFraming rejects every ambiguity: Content-Length values that differ, Content-Length
// and Transfer-Encoding met together, and transfer codings that don't end with a single
// chunked.
func strictFraming(hdrs *headers.Headers) (f framing, err error) {
	var (
		hasLength, hasEncoding bool
		lastCoding             string
		chunkedCodings         int
	)

	for _, h := range hdrs.Unwrap() {
		switch {
		case strutil.IsContentLength(h.Name):
			values := 0
			strutil.WalkList(h.Value, func(token string) bool {
				values++
				length, ok, overflow := uintconv.ParseDecimal(uf.S2B(token))
				switch {
				case !ok || overflow:
					err = errors.ErrContentLengthInvalid
				case hasLength && length != f.contentLength:
					err = errors.ErrConflictingFraming
				default:
					hasLength = true
					f.contentLength = length
				}

				return err == nil
			})

			if err != nil {
				return f, err
			}

			if values == 0 {
				return f, errors.ErrContentLengthInvalid
			}
		case strutil.IsTransferEncoding(h.Name):
			hasEncoding = true
			strutil.WalkList(h.Value, func(coding string) bool {
				if strutil.IsChunked(coding) {
					chunkedCodings++
				}

				return true
			})

			if last := strutil.LastToken(h.Value); len(last) > 0 {
				lastCoding = last
			}
		}
	}

	if !hasEncoding {
		return f, nil
	}

	if hasLength {
		return f, errors.ErrConflictingFraming
	}

	if chunkedCodings != 1 || !strutil.IsChunked(lastCoding) {
		return f, errors.ErrUnsupportedTransferEncoding
	}

	f.chunked = true
	return f, nil
}

// lenientFraming lets the last framing header of each kind win. Transfer-Encoding means
// chunked only when its whole value is chunked. Unparseable Content-Length is the same as
// no Content-Length at all, and an overflowing one saturates.
func lenientFraming(hdrs *headers.Headers) (f framing) {
	for _, h := range hdrs.Unwrap() {
		switch {
		case strutil.IsContentLength(h.Name):
			length, ok, _ := uintconv.ParseDecimal(uf.S2B(h.Value))
			if !ok {
				length = 0
			}

			f.contentLength = length
		case strutil.IsTransferEncoding(h.Name):
			f.chunked = strutil.IsChunked(h.Value)
		}
	}

	return f
}
