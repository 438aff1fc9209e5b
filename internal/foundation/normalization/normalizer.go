// Package normalization maps loosely written configuration strings onto typed
// enumerations.
package normalization

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidValue is returned by Parse for unrecognized input.
var ErrInvalidValue = errors.New("invalid value")

// Normalizer converts case- and whitespace-insensitive strings to enum values.
type Normalizer[T comparable] struct {
	name         string
	values       map[string]T
	defaultValue T
	keys         []string
}

// NewNormalizer creates a normalizer for the enum called name. Keys of values
// are folded the same way input is.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	n := &Normalizer[T]{
		name:         name,
		values:       make(map[string]T, len(values)),
		defaultValue: defaultValue,
		keys:         make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := fold(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

// Normalize returns the value for raw, or the default when raw is empty or
// unrecognized.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[fold(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// Parse returns the value for raw. Empty input yields the default; any other
// unrecognized input is an error wrapping ErrInvalidValue.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	key := fold(raw)
	if key == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w for %s: %q (valid: %s)", ErrInvalidValue, n.name, raw, strings.Join(n.keys, ", "))
}

// Keys returns the accepted spellings in lexical order.
func (n *Normalizer[T]) Keys() []string {
	return append([]string(nil), n.keys...)
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
