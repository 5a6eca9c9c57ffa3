package strcase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UpperCase uppercases the first character of s and lowercases the rest
func UpperCase(s string) string {
	if s == "" {
		return ""
	}

	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + toLower(s[size:])
}

// SnakeToCamel converts snake_case to camelCase. The first segment is
// lowercased; every later segment goes through UpperCase.
func SnakeToCamel(s string) string {
	var b strings.Builder

	for i, piece := range strings.Split(s, "_") {
		if i == 0 {
			b.WriteString(toLower(piece))
			continue
		}
		b.WriteString(UpperCase(piece))
	}

	return b.String()
}

// CamelToSnake converts camelCase to SCREAMING_SNAKE_CASE, the inverse of
// SnakeToCamel for names whose segments are purely alphabetic.
func CamelToSnake(s string) string {
	var b strings.Builder

	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}

	return cases.Upper(language.Und).String(b.String())
}

// Casers hold state, so each call gets its own.
func toLower(s string) string {
	return cases.Lower(language.Und).String(s)
}
