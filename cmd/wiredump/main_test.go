package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indigo-web/httpwire/errors"
	json "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, out string) (messages []message) {
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var msg message
		require.NoError(t, json.Unmarshal([]byte(line), &msg))
		messages = append(messages, msg)
	}

	return messages
}

func TestRun(t *testing.T) {
	t.Run("requests", func(t *testing.T) {
		first := "GET / HTTP/1.1\r\nHost: a\r\n\r\n"
		second := "POST /upload HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\n\r\n"
		var out bytes.Buffer

		err := run([]string{"-payload"}, strings.NewReader(first+second+"GET"), &out, zerolog.Nop())
		require.NoError(t, err)

		messages := decodeLines(t, out.String())
		require.Len(t, messages, 2)

		require.Equal(t, 0, messages[0].Offset)
		require.Equal(t, len(first), messages[0].Length)
		require.Equal(t, "GET", messages[0].Method)
		require.Equal(t, [][2]string{{"Host", "a"}}, messages[0].Headers)

		require.Equal(t, len(first), messages[1].Offset)
		require.Equal(t, len(second), messages[1].Length)
		require.True(t, messages[1].Chunked)
		require.NotNil(t, messages[1].Payload)
		require.Equal(t, "hello", *messages[1].Payload)
	})

	t.Run("responses", func(t *testing.T) {
		stream := "HTTP/1.1 204 No Content\r\nContent-Length: 5\r\n\r\nHTTP/1.0 200 OK\r\nContent-Length: 2\r\n\r\nok"
		var out bytes.Buffer

		err := run([]string{"-mode", "response"}, strings.NewReader(stream), &out, zerolog.Nop())
		require.NoError(t, err)

		messages := decodeLines(t, out.String())
		require.Len(t, messages, 2)
		require.Equal(t, 204, messages[0].Code)
		require.Zero(t, messages[0].BodyLength)
		require.Equal(t, "HTTP/1.0", messages[1].Proto)
		require.Equal(t, 2, messages[1].BodyLength)
		require.Nil(t, messages[1].Payload)
	})

	t.Run("config and file", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "decoder.toml")
		streamPath := filepath.Join(dir, "stream.bin")
		require.NoError(t, os.WriteFile(configPath, []byte("[framing]\npolicy = \"lenient\"\n"), 0o644))
		stream := "POST / HTTP/1.1\r\nContent-Length: 6\r\nContent-Length: 5\r\n\r\nhello"
		require.NoError(t, os.WriteFile(streamPath, []byte(stream), 0o644))

		var out bytes.Buffer
		err := run([]string{"-config", configPath, streamPath}, nil, &out, zerolog.Nop())
		require.NoError(t, err)
		messages := decodeLines(t, out.String())
		require.Len(t, messages, 1)
		require.Equal(t, 5, messages[0].BodyLength)

		out.Reset()
		err = run([]string{streamPath}, nil, &out, zerolog.Nop())
		require.ErrorIs(t, err, errors.ErrConflictingFraming)
	})

	t.Run("unknown mode", func(t *testing.T) {
		err := run([]string{"-mode", "both"}, strings.NewReader(""), &bytes.Buffer{}, zerolog.Nop())
		require.Error(t, err)
	})
}
