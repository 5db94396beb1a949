// Package httpwire frames HTTP/1.x messages living in a byte buffer. Given a buffer that
// may hold a partial message, a complete one or a complete one followed by something else,
// it tells the exact length of the first message and gives a view into its head and body,
// without copying a single byte.
//
// Failures are either incomplete (more bytes will help) or malformed (nothing will), see
// the errors package.
package httpwire

import (
	"github.com/indigo-web/httpwire/config"
	"github.com/indigo-web/httpwire/http/headers"
	"github.com/indigo-web/httpwire/http/method"
	"github.com/indigo-web/httpwire/http/status"
	"github.com/indigo-web/httpwire/internal/protocol/http1"
)

var defaultOptions = http1.OptionsFromConfig(config.Default())

// DecodeRequest decodes the first request in buf using the default config. n is the total
// length of the request: buf[:n] is the request and buf[n:] is whatever follows it.
//
// If the head is complete but the body isn't, the returned request still carries the head,
// however Body is nil and n is zero.
func DecodeRequest(buf []byte, hdrs *headers.Headers) (req Request, n int, err error) {
	return decodeRequest(buf, hdrs, defaultOptions)
}

// DecodeResponse decodes the first response in buf using the default config. Responses
// with 1xx, 204 and 304 status codes never have a body, regardless of their headers.
func DecodeResponse(buf []byte, hdrs *headers.Headers) (resp Response, n int, err error) {
	return decodeResponse(method.Unknown, buf, hdrs, defaultOptions)
}

// DecodeResponseTo is just like DecodeResponse, but also takes the method of the request
// the response answers. Responses to HEAD never have a body, as well as successful
// responses to CONNECT.
func DecodeResponseTo(m method.Method, buf []byte, hdrs *headers.Headers) (resp Response, n int, err error) {
	return decodeResponse(m, buf, hdrs, defaultOptions)
}

func decodeRequest(buf []byte, hdrs *headers.Headers, opts http1.FramingOptions) (req Request, n int, err error) {
	line, headersEnd, err := http1.ScanRequest(buf, hdrs)
	if err != nil {
		return req, 0, err
	}

	req = Request{
		Method:  line.Method,
		Target:  line.Target,
		Proto:   line.Proto,
		Headers: hdrs,
	}

	bodyLen, chunked, err := http1.Frame(buf, headersEnd, hdrs, opts)
	if err != nil {
		return req, 0, err
	}

	n = headersEnd + bodyLen
	req.Body, req.Chunked = buf[headersEnd:n:n], chunked

	return req, n, nil
}

func decodeResponse(
	m method.Method, buf []byte, hdrs *headers.Headers, opts http1.FramingOptions,
) (resp Response, n int, err error) {
	line, headersEnd, err := http1.ScanResponse(buf, hdrs)
	if err != nil {
		return resp, 0, err
	}

	resp = Response{
		Proto:   line.Proto,
		Code:    line.Code,
		Reason:  line.Reason,
		Headers: hdrs,
	}

	opts.Bodyless = isBodyless(m, line.Code)
	bodyLen, chunked, err := http1.Frame(buf, headersEnd, hdrs, opts)
	if err != nil {
		return resp, 0, err
	}

	n = headersEnd + bodyLen
	resp.Body, resp.Chunked = buf[headersEnd:n:n], chunked

	return resp, n, nil
}

func isBodyless(m method.Method, code status.Code) bool {
	switch {
	case status.Bodyless(code):
		return true
	case m == method.HEAD:
		return true
	case m == method.CONNECT:
		return status.IsSuccess(code)
	default:
		return false
	}
}

// Decoder decodes messages using its own config and headers storage. The storage is reused
// by every call, so the headers of a decoded message are valid only until the next one is
// decoded. Decoder isn't safe for concurrent use.
type Decoder struct {
	hdrs *headers.Headers
	opts http1.FramingOptions
}

func NewDecoder(cfg *config.Config) *Decoder {
	return &Decoder{
		hdrs: headers.New(cfg.Headers.Maximal),
		opts: http1.OptionsFromConfig(cfg),
	}
}

func (d *Decoder) Request(buf []byte) (Request, int, error) {
	return decodeRequest(buf, d.hdrs, d.opts)
}

func (d *Decoder) Response(buf []byte) (Response, int, error) {
	return decodeResponse(method.Unknown, buf, d.hdrs, d.opts)
}

func (d *Decoder) ResponseTo(m method.Method, buf []byte) (Response, int, error) {
	return decodeResponse(m, buf, d.hdrs, d.opts)
}
