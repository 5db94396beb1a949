package headers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaders(t *testing.T) {
	getHeaders := func() *Headers {
		h := New(8)
		h.Add("Hello", "world")
		h.Add("Some", "multiple")
		h.Add("some", "values")

		return h
	}

	t.Run("Value", func(t *testing.T) {
		headers := getHeaders()
		require.Equal(t, "world", headers.Value("hello"))
		require.Equal(t, "multiple", headers.Value("SOME"))
		require.Empty(t, headers.Value("Random"))
	})

	t.Run("Get", func(t *testing.T) {
		headers := getHeaders()
		value, found := headers.Get("Hello")
		require.True(t, found)
		require.Equal(t, "world", value)

		_, found = headers.Get("Random")
		require.False(t, found)
	})

	t.Run("Values", func(t *testing.T) {
		headers := getHeaders()
		require.Equal(t, []string{"multiple", "values"}, headers.Values("Some"))
		require.Empty(t, headers.Values("Random"))
	})

	t.Run("Has", func(t *testing.T) {
		headers := getHeaders()
		require.True(t, headers.Has("HELLO"))
		require.False(t, headers.Has("Random"))
	})

	t.Run("fixed capacity", func(t *testing.T) {
		headers := New(2)
		require.True(t, headers.Add("a", "1"))
		require.True(t, headers.Add("b", "2"))
		require.False(t, headers.Add("c", "3"))
		require.Equal(t, 2, headers.Len())
		require.Equal(t, 2, headers.Cap())

		headers.Reset()
		require.True(t, headers.Empty())
		require.Equal(t, 2, headers.Cap())
		require.True(t, headers.Add("c", "3"))
	})

	t.Run("zero capacity", func(t *testing.T) {
		headers := New(0)
		require.False(t, headers.Add("a", "1"))
		require.True(t, headers.Empty())
	})

	t.Run("Iter keeps order", func(t *testing.T) {
		headers := getHeaders()
		it := headers.Iter()

		var names []string
		for {
			header, ok := it.Next()
			if !ok {
				break
			}

			names = append(names, header.Name)
		}

		require.Equal(t, []string{"Hello", "Some", "some"}, names)
		require.Equal(t, len(names), len(headers.Unwrap()))
	})
}
