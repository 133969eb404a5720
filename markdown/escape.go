package markdown

import "strings"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")
)

// Escape replaces &, <, > and " with entities in a single pass, so entities
// already present in s are escaped once more rather than left alone.
func Escape(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr is Escape plus ' for values placed inside attributes.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// lineTerm reports the byte width of the line terminator starting at s[i]:
// \n, \r, U+2028 or U+2029. It returns 0 when there is none.
func lineTerm(s string, i int) int {
	switch s[i] {
	case '\n', '\r':
		return 1
	case 0xE2:
		if strings.HasPrefix(s[i:], "\u2028") || strings.HasPrefix(s[i:], "\u2029") {
			return 3
		}
	}
	return 0
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isGuardByte(c byte) bool {
	return c == '/' || isWordByte(c)
}

// isSpace reports whether r is whitespace or a line terminator in the sense
// used for trimming blocks and code. Unlike unicode.IsSpace it includes
// U+FEFF and excludes U+0085.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680',
		'\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
