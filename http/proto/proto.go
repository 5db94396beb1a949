package proto

import "github.com/indigo-web/utils/uf"

type Proto uint8

const (
	Unknown Proto = 0
	HTTP10  Proto = 1 << iota
	HTTP11

	HTTP1 = HTTP10 | HTTP11
)

func (p Proto) String() string {
	lut := [...]string{HTTP10: "HTTP/1.0", HTTP11: "HTTP/1.1"}
	if int(p) >= len(lut) {
		return ""
	}

	return lut[p]
}

// Minor returns the minor version number. The major one is always 1.
func (p Proto) Minor() int {
	if p == HTTP11 {
		return 1
	}

	return 0
}

const (
	protoTokenLength   = len("HTTP/x.x")
	majorVersionOffset = len("HTTP/x") - 1
	minorVersionOffset = len("HTTP/x.x") - 1
	httpScheme         = "HTTP/"
)

// FromBytes returns the protocol the token stands for. Anything except HTTP/1.0 and
// HTTP/1.1 results in Unknown.
func FromBytes(raw []byte) Proto {
	if !IsVersionToken(raw) {
		return Unknown
	}

	return Parse(raw[majorVersionOffset]-'0', raw[minorVersionOffset]-'0')
}

// IsVersionToken reports whether raw is syntactically an HTTP-version, i.e. HTTP/DIGIT.DIGIT,
// regardless of whether the version is supported.
func IsVersionToken(raw []byte) bool {
	return len(raw) == protoTokenLength &&
		uf.B2S(raw[:majorVersionOffset]) == httpScheme &&
		isDigit(raw[majorVersionOffset]) &&
		raw[majorVersionOffset+1] == '.' &&
		isDigit(raw[minorVersionOffset])
}

func Parse(major, minor uint8) Proto {
	if major != 1 {
		return Unknown
	}

	switch minor {
	case 0:
		return HTTP10
	case 1:
		return HTTP11
	default:
		return Unknown
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
