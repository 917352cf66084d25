// Package token splits raw input lines into command tokens.
// Quoted sections keep their interior whitespace and a backslash
// escapes the character after it, so values with spaces survive as a
// single token.
package token

import (
	"strings"
	"unicode"
)

// Split breaks a line into tokens on unquoted whitespace.
//
// A section wrapped in matching single or double quotes keeps its
// interior whitespace and loses the quote characters. A backslash
// escapes the next character literally, inside or outside quotes.
// Malformed input never fails: an unterminated quote runs to the end
// of the line and a trailing backslash is dropped. Empty or
// all-whitespace input yields no tokens.
func Split(line string) []string {
	var tokens []string
	var buf strings.Builder
	inQuote := false
	quoteChar := rune(0)
	escaped := false

	for _, r := range line {
		switch {
		case escaped:
			buf.WriteRune(r)
			escaped = false

		case r == '\\':
			escaped = true

		case inQuote:
			if r == quoteChar {
				inQuote = false
				quoteChar = 0
			} else {
				buf.WriteRune(r)
			}

		case r == '\'' || r == '"':
			inQuote = true
			quoteChar = r

		case unicode.IsSpace(r):
			if buf.Len() > 0 {
				tokens = append(tokens, buf.String())
				buf.Reset()
			}

		default:
			buf.WriteRune(r)
		}
	}

	if buf.Len() > 0 {
		tokens = append(tokens, buf.String())
	}

	return tokens
}
