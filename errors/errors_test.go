package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/indigo-web/httpwire/http/status"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	t.Run("incomplete", func(t *testing.T) {
		for _, err := range []error{
			ErrHeaderSectionIncomplete, ErrBodyIncomplete, ErrChunkedBodyIncomplete,
			&BodyIncompleteError{Missing: 5},
		} {
			require.True(t, IsIncomplete(err), err.Error())
			require.False(t, IsMalformed(err), err.Error())
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, err := range []error{
			ErrHeaderSyntaxInvalid, ErrUnsupportedVersion, ErrTooManyHeaders, ErrChunkedBodyInvalid,
			ErrConflictingFraming, ErrContentLengthInvalid, ErrUnsupportedTransferEncoding, ErrBodyTooLarge,
		} {
			require.True(t, IsMalformed(err), err.Error())
			require.False(t, IsIncomplete(err), err.Error())
		}
	})

	t.Run("foreign", func(t *testing.T) {
		err := errors.New("something else")
		require.Equal(t, Kind(0), KindOf(err))
		require.False(t, IsIncomplete(err))
		require.False(t, IsMalformed(err))
		require.Equal(t, status.BadRequest, CodeOf(err))
	})
}

func TestBodyIncomplete(t *testing.T) {
	var err error = &BodyIncompleteError{Missing: 5}
	require.ErrorIs(t, err, ErrBodyIncomplete)
	require.NotErrorIs(t, err, ErrChunkedBodyInvalid)
	require.EqualError(t, err, "body is incomplete: 5 bytes missing")

	missing, known := Missing(fmt.Errorf("decoding: %w", err))
	require.True(t, known)
	require.Equal(t, uint64(5), missing)

	_, known = Missing(ErrHeaderSectionIncomplete)
	require.False(t, known)
}

func TestCodes(t *testing.T) {
	require.Equal(t, status.RequestHeaderFieldsTooLarge, CodeOf(ErrTooManyHeaders))
	require.Equal(t, status.NotImplemented, CodeOf(ErrUnsupportedTransferEncoding))
	require.Equal(t, status.HTTPVersionNotSupported, CodeOf(fmt.Errorf("wrapped: %w", ErrUnsupportedVersion)))
	require.Equal(t, "malformed", Malformed.String())
	require.Equal(t, "incomplete", Incomplete.String())
}
