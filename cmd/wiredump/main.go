// Command wiredump splits a captured HTTP/1.x byte stream into separate messages and prints
// every one of them as a JSON object on its own line.
//
//	wiredump [-mode request|response] [-config decoder.toml] [-payload] [file]
//
// The stream is read from stdin if no file is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/indigo-web/httpwire"
	"github.com/indigo-web/httpwire/config"
	"github.com/indigo-web/httpwire/http/headers"
	json "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

type message struct {
	Offset     int         `json:"offset"`
	Length     int         `json:"length"`
	Proto      string      `json:"proto"`
	Method     string      `json:"method,omitempty"`
	Target     string      `json:"target,omitempty"`
	Code       int         `json:"code,omitempty"`
	Reason     string      `json:"reason,omitempty"`
	Headers    [][2]string `json:"headers"`
	BodyLength int         `json:"body_length"`
	Chunked    bool        `json:"chunked,omitempty"`
	Payload    *string     `json:"payload,omitempty"`
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "wiredump").Logger()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to dump the stream")
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) error {
	flags := flag.NewFlagSet("wiredump", flag.ContinueOnError)
	mode := flags.String("mode", "request", "kind of messages in the stream: request or response")
	configPath := flags.String("config", "", "path to a TOML decoder config")
	withPayload := flags.Bool("payload", false, "include payloads with the transfer coding removed")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	input := stdin
	if path := flags.Arg(0); len(path) > 0 {
		file, err := os.Open(path)
		if err != nil {
			return err
		}

		defer file.Close()
		input = file
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return err
	}

	logger.Debug().
		Int("bytes", len(data)).
		Str("mode", *mode).
		Stringer("policy", cfg.Framing.Policy).
		Msg("read the stream")

	stream := json.ConfigDefault.BorrowStream(stdout)
	defer json.ConfigDefault.ReturnStream(stream)

	var (
		offset, count int
		rest          []byte
	)

	emit := func(msg message, body []byte, payload func([]byte) ([]byte, error)) error {
		msg.Offset = offset
		msg.BodyLength = len(body)
		if *withPayload {
			decoded, err := payload(nil)
			if err != nil {
				return err
			}

			str := string(decoded)
			msg.Payload = &str
		}

		stream.WriteVal(msg)
		stream.WriteRaw("\n")
		offset += msg.Length
		count++

		return stream.Flush()
	}

	decoder := httpwire.NewDecoder(cfg)

	switch *mode {
	case "request":
		rest, err = decoder.SplitRequests(data, func(req httpwire.Request, raw []byte) error {
			return emit(message{
				Length:  len(raw),
				Proto:   req.Proto.String(),
				Method:  req.Method,
				Target:  req.Target,
				Headers: pairs(req.Headers),
				Chunked: req.Chunked,
			}, req.Body, req.Payload)
		})
	case "response":
		rest, err = decoder.SplitResponses(data, func(resp httpwire.Response, raw []byte) error {
			return emit(message{
				Length:  len(raw),
				Proto:   resp.Proto.String(),
				Code:    int(resp.Code),
				Reason:  resp.Reason,
				Headers: pairs(resp.Headers),
				Chunked: resp.Chunked,
			}, resp.Body, resp.Payload)
		})
	default:
		return fmt.Errorf("unknown mode: %q", *mode)
	}

	if err != nil {
		logger.Error().Err(err).Int("offset", offset).Msg("malformed message")
		return err
	}

	if len(rest) > 0 {
		logger.Warn().Int("offset", offset).Int("bytes", len(rest)).Msg("stream ends with an incomplete message")
	}

	logger.Info().Int("messages", count).Msg("done")

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if len(path) == 0 {
		return config.Default(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	return config.Load(file)
}

func pairs(hdrs *headers.Headers) [][2]string {
	out := make([][2]string, 0, hdrs.Len())
	for _, pair := range hdrs.Unwrap() {
		out = append(out, [2]string{pair.Name, pair.Value})
	}

	return out
}
