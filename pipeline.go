package httpwire

import (
	"github.com/indigo-web/httpwire/errors"
)

// SplitRequests walks the requests lying back-to-back in buf, calling fn for each of them
// with the request itself and its raw bytes. Walking stops when fn returns an error, when
// the rest of the buffer doesn't hold a complete request or when it holds a malformed one.
//
// rest is the part of buf not consumed by requests fn was called with. err is nil if
// walking stopped only because more bytes are needed.
func (d *Decoder) SplitRequests(buf []byte, fn func(req Request, raw []byte) error) (rest []byte, err error) {
	for len(buf) > 0 {
		req, n, err := d.Request(buf)
		if err != nil {
			return buf, stopErr(err)
		}

		if err = fn(req, buf[:n]); err != nil {
			return buf[n:], err
		}

		buf = buf[n:]
	}

	return buf, nil
}

// SplitResponses is the same as SplitRequests, but for responses. As it can't know which
// requests the responses answer, responses to HEAD requests can't be split this way.
func (d *Decoder) SplitResponses(buf []byte, fn func(resp Response, raw []byte) error) (rest []byte, err error) {
	for len(buf) > 0 {
		resp, n, err := d.Response(buf)
		if err != nil {
			return buf, stopErr(err)
		}

		if err = fn(resp, buf[:n]); err != nil {
			return buf[n:], err
		}

		buf = buf[n:]
	}

	return buf, nil
}

func stopErr(err error) error {
	if errors.IsIncomplete(err) {
		return nil
	}

	return err
}
