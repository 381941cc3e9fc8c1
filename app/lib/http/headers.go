package http

import (
	"strings"
)

type HeaderPair struct {
	Key, Value string
}

// Headers stores header pairs in wire order using linear search instead of a
// map, which is faster at the handful of entries a request carries. Keys are
// stored verbatim as received; lookups are case-insensitive. When a key was
// sent more than once the last occurrence wins on lookup, but every
// occurrence is kept and would be emitted again on serialization.
type Headers struct {
	pairs []HeaderPair
}

func NewHeaders() *Headers {
	return new(Headers)
}

// Add appends a pair, preserving insertion order and key case.
func (h *Headers) Add(key, value string) *Headers {
	h.pairs = append(h.pairs, HeaderPair{
		Key:   key,
		Value: value,
	})
	return h
}

// Get returns the value of the last pair matching the key, case-insensitively.
func (h *Headers) Get(key string) (value string, found bool) {
	for i := len(h.pairs) - 1; i >= 0; i-- {
		if strings.EqualFold(key, h.pairs[i].Key) {
			return h.pairs[i].Value, true
		}
	}

	return "", false
}

// Value returns the matching value, or an empty string when the key is absent.
func (h *Headers) Value(key string) string {
	value, _ := h.Get(key)
	return value
}

func (h *Headers) Has(key string) bool {
	_, found := h.Get(key)
	return found
}

func (h *Headers) Len() int {
	return len(h.pairs)
}

// Pairs exposes the underlying pairs in insertion order.
func (h *Headers) Pairs() []HeaderPair {
	return h.pairs
}
