package httpwire

import (
	"bytes"
	"net/http"

	"github.com/indigo-web/httpwire/errors"
	"github.com/indigo-web/httpwire/http/proto"
)

// EncodeRequest appends the request in HTTP/1.1 wire format to dst. Requests explicitly
// declaring a version other than HTTP/1.0 or HTTP/1.1 are refused.
//
// The body is consumed and closed, as net/http.Request.Write does.
func EncodeRequest(dst []byte, req *http.Request) ([]byte, error) {
	unset := req.ProtoMajor == 0 && req.ProtoMinor == 0
	if !unset && protoOf(req.ProtoMajor, req.ProtoMinor) == proto.Unknown {
		return dst, errors.ErrUnsupportedVersion
	}

	buf := bytes.NewBuffer(dst)
	if err := req.Write(buf); err != nil {
		return dst, err
	}

	return buf.Bytes(), nil
}

// EncodeResponse appends the response in wire format to dst. Only HTTP/1.0 and HTTP/1.1
// responses are supported.
func EncodeResponse(dst []byte, resp *http.Response) ([]byte, error) {
	if protoOf(resp.ProtoMajor, resp.ProtoMinor) == proto.Unknown {
		return dst, errors.ErrUnsupportedVersion
	}

	buf := bytes.NewBuffer(dst)
	if err := resp.Write(buf); err != nil {
		return dst, err
	}

	return buf.Bytes(), nil
}

func protoOf(major, minor int) proto.Proto {
	if major < 0 || major > 9 || minor < 0 || minor > 9 {
		return proto.Unknown
	}

	return proto.Parse(uint8(major), uint8(minor))
}
