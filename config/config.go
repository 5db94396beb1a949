package config

import (
	"fmt"
	"io"
	"math"

	"github.com/BurntSushi/toml"
)

// Policy decides how ambiguous framing headers are treated.
type Policy uint8

const (
	// Strict rejects messages whose framing headers disagree: differing Content-Length
	// values, Content-Length alongside Transfer-Encoding, or transfer codings not ending
	// with chunked.
	Strict Policy = iota + 1
	// Lenient resolves the ambiguity instead: the last framing header wins, Transfer-Encoding
	// counts as chunked only when its whole value is exactly chunked and an unparseable
	// Content-Length is treated as absent.
	Lenient
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return "unknown"
	}
}

func (p *Policy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "strict":
		*p = Strict
	case "lenient":
		*p = Lenient
	default:
		return fmt.Errorf("unknown framing policy: %q", text)
	}

	return nil
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type (
	Headers struct {
		// Maximal is the capacity of the headers storage a Decoder allocates. Messages
		// with more header fields are rejected.
		Maximal int `toml:"maximal"`
	}

	Body struct {
		// MaxSize limits the body length. Bodies declared or found to be longer are rejected
		// right away, without waiting for them to arrive. In order to disable the setting,
		// use the math.MaxUint64 value.
		MaxSize uint64 `toml:"max_size"`
		// RecoverableChunkedIncomplete makes a truncated chunked body a recoverable error
		// instead of an invalid one. Disabled by default, as a chunked body that can't be
		// delimited is indistinguishable from a malformed one.
		RecoverableChunkedIncomplete bool `toml:"recoverable_chunked_incomplete" test:"nullable"`
	}

	Framing struct {
		Policy Policy `toml:"policy"`
	}
)

// Config holds limits and policies of message decoding.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because zero values are mostly not meaningful.
type Config struct {
	Headers Headers `toml:"headers"`
	Body    Body    `toml:"body"`
	Framing Framing `toml:"framing"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Headers: Headers{
			Maximal: 64,
		},
		Body: Body{
			MaxSize: math.MaxUint64,
		},
		Framing: Framing{
			Policy: Strict,
		},
	}
}

// Load decodes TOML from the reader on top of the defaults. Keys not mentioned keep their
// default values.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key: %s", undecoded[0])
	}

	if cfg.Headers.Maximal <= 0 {
		return nil, fmt.Errorf("headers.maximal must be positive, got %d", cfg.Headers.Maximal)
	}

	return cfg, nil
}
