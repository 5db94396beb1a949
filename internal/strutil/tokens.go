package strutil

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

const (
	contentLength    = "Content-Length"
	transferEncoding = "Transfer-Encoding"
	chunked          = "chunked"
)

// IsContentLength reports whether the header name is Content-Length, ignoring the case.
//
// strcomp.EqualFold folds by setting the 0x20 bit, so '-' would also match '\r'. This is
// fine as long as only names that passed the token validation are passed in.
func IsContentLength(name string) bool {
	return len(name) == len(contentLength) && strcomp.EqualFold(name, contentLength)
}

// IsTransferEncoding reports whether the header name is Transfer-Encoding, ignoring the case.
func IsTransferEncoding(name string) bool {
	return len(name) == len(transferEncoding) && strcomp.EqualFold(name, transferEncoding)
}

// IsChunked reports whether the value, with surrounding whitespace and line terminators
// stripped, is exactly the chunked token. Lists like "gzip, chunked" don't match.
func IsChunked(value string) bool {
	value = StripWS(value)
	return len(value) == len(chunked) && strcomp.EqualFold(value, chunked)
}

// LastToken returns the last element of a comma-separated list value. Empty elements are
// skipped, as lists are allowed to contain them. Returns an empty string if there are no
// non-empty elements at all.
func LastToken(value string) string {
	for len(value) > 0 {
		comma := strings.LastIndexByte(value, ',')
		token := StripWS(value[comma+1:])
		if len(token) > 0 {
			return token
		}

		if comma == -1 {
			break
		}

		value = value[:comma]
	}

	return ""
}

// WalkList calls fn for every non-empty element of a comma-separated list value. Walking
// stops as soon as fn returns false.
func WalkList(value string, fn func(token string) bool) {
	for len(value) > 0 {
		var token string
		comma := strings.IndexByte(value, ',')
		if comma == -1 {
			token, value = value, ""
		} else {
			token, value = value[:comma], value[comma+1:]
		}

		if token = StripWS(token); len(token) > 0 && !fn(token) {
			return
		}
	}
}
