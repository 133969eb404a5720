package frontmatter

import (
	"strings"
	"unicode/utf8"
)

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680',
		'\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

func isLineTerm(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// spaceRun returns the byte length of the whitespace prefix of s.
func spaceRun(s string) int {
	for i, r := range s {
		if !isSpace(r) {
			return i
		}
	}
	return len(s)
}

// lastTermEnd returns the byte offset just past the last line terminator in
// s, or 0 when s has none.
func lastTermEnd(s string) int {
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if isLineTerm(r) {
			return i
		}
		i -= size
	}
	return 0
}
