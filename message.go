package httpwire

import (
	"github.com/indigo-web/httpwire/http/headers"
	"github.com/indigo-web/httpwire/http/method"
	"github.com/indigo-web/httpwire/http/proto"
	"github.com/indigo-web/httpwire/http/status"
	"github.com/indigo-web/httpwire/internal/protocol/http1"
)

// Request is a decoded request. Every string and the body are views into the buffer it was
// decoded from, so they must not outlive it. The same is true for Headers, which in
// addition belong to whoever supplied the storage.
type Request struct {
	// Method is kept verbatim, so extension methods are preserved.
	Method  string
	Target  string
	Proto   proto.Proto
	Headers *headers.Headers
	// Body is the raw body. If Chunked is set, it's still transfer-coded: use Payload in
	// order to get the data itself.
	Body    []byte
	Chunked bool
}

// MethodKind returns the known method the request is made with, or method.Unknown.
func (r Request) MethodKind() method.Method {
	return method.Parse(r.Method)
}

// Payload appends the body with the transfer coding removed to dst.
func (r Request) Payload(dst []byte) ([]byte, error) {
	return payload(dst, r.Body, r.Chunked)
}

// Response is a decoded response. The same lifetime rules as for Request apply.
type Response struct {
	Proto   proto.Proto
	Code    status.Code
	Reason  string
	Headers *headers.Headers
	Body    []byte
	Chunked bool
}

// Payload appends the body with the transfer coding removed to dst.
func (r Response) Payload(dst []byte) ([]byte, error) {
	return payload(dst, r.Body, r.Chunked)
}

func payload(dst, body []byte, chunked bool) ([]byte, error) {
	if !chunked {
		return append(dst, body...), nil
	}

	return http1.Dechunk(dst, body)
}
