// Package errors defines the failures of message decoding. Every failure is either
// Incomplete, meaning the same buffer extended by more bytes may decode fine, or Malformed,
// meaning waiting for more bytes won't help and the stream must be abandoned.
package errors

import (
	"errors"
	"strconv"

	"github.com/indigo-web/httpwire/http/status"
)

type Kind uint8

const (
	Incomplete Kind = iota + 1
	Malformed
)

func (k Kind) String() string {
	switch k {
	case Incomplete:
		return "incomplete"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Error is a decoding failure. Code is the status a server is supposed to respond with
// when rejecting such a message. It's zero for Incomplete errors.
type Error struct {
	Kind    Kind
	Code    status.Code
	Message string
}

func New(kind Kind, code status.Code, message string) error {
	return Error{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

func (e Error) Error() string {
	return e.Message
}

var (
	ErrHeaderSectionIncomplete = New(Incomplete, 0, "header section is incomplete")
	ErrBodyIncomplete          = New(Incomplete, 0, "body is incomplete")
	ErrChunkedBodyIncomplete   = New(Incomplete, 0, "chunked body is incomplete")

	ErrHeaderSyntaxInvalid         = New(Malformed, status.BadRequest, "invalid start line or header field syntax")
	ErrUnsupportedVersion          = New(Malformed, status.HTTPVersionNotSupported, "unsupported HTTP version: only HTTP/1.0 and HTTP/1.1 are supported")
	ErrTooManyHeaders              = New(Malformed, status.RequestHeaderFieldsTooLarge, "too many headers")
	ErrChunkedBodyInvalid          = New(Malformed, status.BadRequest, "invalid chunked body")
	ErrConflictingFraming          = New(Malformed, status.BadRequest, "conflicting Content-Length or Transfer-Encoding headers")
	ErrContentLengthInvalid        = New(Malformed, status.BadRequest, "invalid Content-Length value")
	ErrUnsupportedTransferEncoding = New(Malformed, status.NotImplemented, "transfer coding is not supported")
	ErrBodyTooLarge                = New(Malformed, status.RequestEntityTooLarge, "body is too large")
)

// BodyIncompleteError is returned when Content-Length exceeds the available data. Missing
// is the exact number of bytes lacking. It matches ErrBodyIncomplete via errors.Is.
type BodyIncompleteError struct {
	Missing uint64
}

func (b *BodyIncompleteError) Error() string {
	return "body is incomplete: " + strconv.FormatUint(b.Missing, 10) + " bytes missing"
}

func (b *BodyIncompleteError) Is(target error) bool {
	return target == ErrBodyIncomplete
}

// KindOf returns the kind of the error or zero, if the error doesn't originate from decoding.
func KindOf(err error) Kind {
	var bodyErr *BodyIncompleteError
	if errors.As(err, &bodyErr) {
		return Incomplete
	}

	var e Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

// IsIncomplete reports whether the error is cured by feeding more bytes.
func IsIncomplete(err error) bool {
	return KindOf(err) == Incomplete
}

// IsMalformed reports whether the error is fatal for the stream.
func IsMalformed(err error) bool {
	return KindOf(err) == Malformed
}

// Missing returns the exact number of bytes lacking for the message to complete, if it's
// known.
func Missing(err error) (n uint64, known bool) {
	var bodyErr *BodyIncompleteError
	if errors.As(err, &bodyErr) {
		return bodyErr.Missing, true
	}

	return 0, false
}

// CodeOf returns the status code a server should respond with when rejecting a message
// because of the error.
func CodeOf(err error) status.Code {
	var e Error
	if errors.As(err, &e) {
		return e.Code
	}

	return status.BadRequest
}
