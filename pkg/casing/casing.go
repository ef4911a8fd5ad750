// Package casing rewrites the keys of decoded JSON documents between the
// backend's snake_case columns and the client's camelCase fields.
package casing

import (
	"strings"
	"unicode"
)

// ToCamelCase returns a copy of v with every map key camel-cased. Maps nested
// anywhere, including inside slices, are rewritten; scalars and nil are
// returned unchanged.
func ToCamelCase(v any) any {
	return transform(v, CamelKey)
}

// ToSnakeCase is the inverse of ToCamelCase for keys without adjacent
// separators or leading digits.
func ToSnakeCase(v any) any {
	return transform(v, SnakeKey)
}

func transform(v any, key func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[key(k)] = transform(val, key)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = transform(val, key)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = transform(val, key)
		}
		return out
	default:
		return v
	}
}

// CamelKey turns "corriente_fase_r" into "corrienteFaseR". Only a separator
// ('_' or '-') followed by a lowercase ASCII letter is folded.
func CamelKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if (r == '_' || r == '-') && i+1 < len(rs) && rs[i+1] >= 'a' && rs[i+1] <= 'z' {
			b.WriteRune(unicode.ToUpper(rs[i+1]))
			i++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SnakeKey turns "corrienteFaseR" into "corriente_fase_r".
func SnakeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
