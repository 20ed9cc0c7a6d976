// Package naming provides the path-segment casing conventions used when
// request member names become filter paths.
package naming

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Func maps a request member name to a path segment.
type Func func(string) string

// Identity returns the name unchanged.
func Identity(name string) string { return name }

// Camelize converts a member name to lower camel case.
//
// Underscores and spaces separate words; each following word gets an upper
// case first letter and the separator is removed. The rest of every word is
// kept as is, so "ParentField1" becomes "parentField1" and "start_date"
// becomes "startDate".
func Camelize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == ' ' })
	if len(words) == 0 {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))
	for i, w := range words {
		if i == 0 {
			b.WriteString(mapFirst(cases.Lower(language.Und), w))
			continue
		}
		b.WriteString(mapFirst(cases.Upper(language.Und), w))
	}
	return b.String()
}

// mapFirst applies c to the first rune of s. Casers are stateful, so callers
// pass a fresh one.
func mapFirst(c cases.Caser, s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return c.String(s[:size]) + s[size:]
}

// Lookup returns the casing registered under name ("camel" or "identity").
func Lookup(name string) (Func, bool) {
	switch strings.ToLower(name) {
	case "", "camel", "camelize":
		return Camelize, true
	case "identity", "none":
		return Identity, true
	default:
		return nil, false
	}
}
