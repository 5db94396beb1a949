package httpwire

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/indigo-web/httpwire/errors"
	"github.com/indigo-web/httpwire/http/headers"
	"github.com/indigo-web/httpwire/http/proto"
	"github.com/indigo-web/httpwire/http/status"
	"github.com/stretchr/testify/require"
)

func TestEncodeRequest(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodPost, "http://localhost/upload?a=b", strings.NewReader("hello"))
		require.NoError(t, err)
		request.Header.Set("X-Custom", "value")

		raw, err := EncodeRequest(nil, request)
		require.NoError(t, err)

		req, n, err := DecodeRequest(raw, headers.New(20))
		require.NoError(t, err)
		require.Equal(t, len(raw), n)
		require.Equal(t, "POST", req.Method)
		require.Equal(t, "/upload?a=b", req.Target)
		require.Equal(t, proto.HTTP11, req.Proto)
		require.Equal(t, "localhost", req.Headers.Value("Host"))
		require.Equal(t, "value", req.Headers.Value("X-Custom"))
		require.Equal(t, "hello", string(req.Body))
	})

	t.Run("appends", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodGet, "http://localhost/", nil)
		require.NoError(t, err)

		raw, err := EncodeRequest([]byte("prefix"), request)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(raw), "prefixGET / HTTP/1.1\r\n"))
	})

	t.Run("unsupported version", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodGet, "http://localhost/", nil)
		require.NoError(t, err)
		request.ProtoMajor, request.ProtoMinor = 2, 0

		_, err = EncodeRequest(nil, request)
		require.ErrorIs(t, err, errors.ErrUnsupportedVersion)
	})
}

func TestEncodeResponse(t *testing.T) {
	newResponse := func(body string, contentLength int64) *http.Response {
		return &http.Response{
			StatusCode:    http.StatusOK,
			ProtoMajor:    1,
			ProtoMinor:    1,
			Header:        http.Header{},
			Body:          io.NopCloser(strings.NewReader(body)),
			ContentLength: contentLength,
		}
	}

	t.Run("round trip", func(t *testing.T) {
		raw, err := EncodeResponse(nil, newResponse("hello", 5))
		require.NoError(t, err)

		resp, n, err := DecodeResponse(raw, headers.New(20))
		require.NoError(t, err)
		require.Equal(t, len(raw), n)
		require.Equal(t, status.OK, resp.Code)
		require.Equal(t, "OK", resp.Reason)
		require.Equal(t, "hello", string(resp.Body))
	})

	t.Run("chunked round trip", func(t *testing.T) {
		response := newResponse("Hello, world!", -1)
		response.TransferEncoding = []string{"chunked"}

		raw, err := EncodeResponse(nil, response)
		require.NoError(t, err)

		resp, n, err := DecodeResponse(raw, headers.New(20))
		require.NoError(t, err)
		require.Equal(t, len(raw), n)
		require.True(t, resp.Chunked)

		payload, err := resp.Payload(nil)
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(payload))
	})

	t.Run("unsupported version", func(t *testing.T) {
		response := newResponse("", 0)
		response.ProtoMajor, response.ProtoMinor = 2, 0

		_, err := EncodeResponse(nil, response)
		require.ErrorIs(t, err, errors.ErrUnsupportedVersion)
	})
}
