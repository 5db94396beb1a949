package headers

import (
	"github.com/indigo-web/iter"
	"github.com/indigo-web/utils/strcomp"
)

// Header is a single field line. Both name and value are usually views into the buffer the
// message was decoded from, therefore they're valid only as long as the buffer is alive
// and isn't overwritten.
type Header struct {
	Name, Value string
}

// Headers is an ordered list of headers with a fixed capacity, set at the moment of
// construction. It never grows: once it's full, every Add fails.
type Headers struct {
	pairs      []Header
	valuesBuff []string
}

// New returns headers storage able to hold at most n entries.
func New(n int) *Headers {
	return &Headers{
		pairs: make([]Header, 0, n),
	}
}

// Add appends a new pair, unless the storage is full, in which case false is returned.
func (h *Headers) Add(name, value string) bool {
	if len(h.pairs) == cap(h.pairs) {
		return false
	}

	h.pairs = append(h.pairs, Header{
		Name:  name,
		Value: value,
	})

	return true
}

// Value returns the first value corresponding to the key. Otherwise, empty string is returned.
func (h *Headers) Value(key string) string {
	value, _ := h.Get(key)
	return value
}

// Get returns the first value corresponding to the key and a bool, indicating whether it
// was found at all.
func (h *Headers) Get(key string) (value string, found bool) {
	for _, pair := range h.pairs {
		if strcomp.EqualFold(key, pair.Name) {
			return pair.Value, true
		}
	}

	return "", false
}

// Values returns all values by the key. Returns nil if key doesn't exist.
//
// WARNING: calling it twice will override values, returned by the first call. Consider
// copying the returned slice for safe use.
func (h *Headers) Values(key string) []string {
	h.valuesBuff = h.valuesBuff[:0]

	for _, pair := range h.pairs {
		if strcomp.EqualFold(key, pair.Name) {
			h.valuesBuff = append(h.valuesBuff, pair.Value)
		}
	}

	if len(h.valuesBuff) == 0 {
		return nil
	}

	return h.valuesBuff
}

// Has indicates, whether there's an entry of the key.
func (h *Headers) Has(key string) bool {
	_, found := h.Get(key)
	return found
}

// Iter returns an iterator over the pairs in the order they were added.
func (h *Headers) Iter() iter.Iterator[Header] {
	return iter.Slice(h.pairs)
}

// Unwrap returns the underlying pairs. Modifying them affects the storage.
func (h *Headers) Unwrap() []Header {
	return h.pairs
}

// Len returns the number of stored pairs.
func (h *Headers) Len() int {
	return len(h.pairs)
}

// Cap returns the maximal number of pairs the storage can hold.
func (h *Headers) Cap() int {
	return cap(h.pairs)
}

// Empty reports whether there are no stored pairs.
func (h *Headers) Empty() bool {
	return len(h.pairs) == 0
}

// Reset drops all the pairs, keeping the allocated capacity.
func (h *Headers) Reset() {
	h.pairs = h.pairs[:0]
}
