package markdown

import "strings"

var headers = []struct {
	prefix string
	tag    string
}{
	// Longest prefix first so "# " never claims a "## " line.
	{"### ", "h3"},
	{"## ", "h2"},
	{"# ", "h1"},
}

func headerLine(line string) string {
	for _, h := range headers {
		if rest, ok := strings.CutPrefix(line, h.prefix); ok && rest != "" {
			return "<" + h.tag + ">" + rest + "</" + h.tag + ">"
		}
	}
	return line
}

func listItemLine(line string) string {
	if rest, ok := strings.CutPrefix(line, "- "); ok && rest != "" {
		return "<li>" + rest + "</li>"
	}
	return line
}

// mapLines applies fn to every line of s. Line terminators are kept as they
// are and are never passed to fn.
func mapLines(s string, fn func(string) string) string {
	var b strings.Builder
	start := 0
	for i := 0; i < len(s); {
		if w := lineTerm(s, i); w > 0 {
			b.WriteString(fn(s[start:i]))
			b.WriteString(s[i : i+w])
			i += w
			start = i
			continue
		}
		i++
	}
	b.WriteString(fn(s[start:]))
	return b.String()
}

// replaceInlineCode turns `x` into <code>x</code>. Spans may cross lines but
// must not be empty.
func replaceInlineCode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '`' {
			if k := strings.IndexByte(s[i+1:], '`'); k > 0 {
				b.WriteString("<code>")
				b.WriteString(s[i+1 : i+1+k])
				b.WriteString("</code>")
				i += k + 2
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// replacePaired wraps delim-enclosed spans in tag. The span is the shortest
// non-empty run up to the next delim on the same line.
func replacePaired(s, delim, tag string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], delim) {
			start := i + len(delim)
			if end := closingOnLine(s, start, delim); end >= 0 {
				b.WriteString("<" + tag + ">")
				b.WriteString(s[start:end])
				b.WriteString("</" + tag + ">")
				i = end + len(delim)
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func closingOnLine(s string, start int, delim string) int {
	if start >= len(s) || lineTerm(s, start) > 0 {
		return -1
	}
	for k := start + 1; k < len(s); k++ {
		if strings.HasPrefix(s[k:], delim) {
			return k
		}
		if lineTerm(s, k) > 0 {
			return -1
		}
	}
	return -1
}

// replaceStarItalic turns *x* into <em>x</em>, where x holds no asterisk.
func replaceStarItalic(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '*' {
			if k := strings.IndexByte(s[i+1:], '*'); k > 0 {
				b.WriteString("<em>")
				b.WriteString(s[i+1 : i+1+k])
				b.WriteString("</em>")
				i += k + 2
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// replaceUnderscoreItalic turns _x_ into <em>x</em> unless either underscore
// touches a word character or a slash, so snake_case names and paths such as
// /usr/_local_/bin are left alone. Guards look at the pass input, not at the
// rewritten output.
func replaceUnderscoreItalic(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '_' && (i == 0 || !isGuardByte(s[i-1])) {
			if k := strings.IndexByte(s[i+1:], '_'); k > 0 {
				end := i + 1 + k
				if end+1 >= len(s) || !isGuardByte(s[end+1]) {
					b.WriteString("<em>")
					b.WriteString(s[i+1 : end])
					b.WriteString("</em>")
					i = end + 1
					continue
				}
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// replaceLinks turns [text](url) into an anchor. The URL is copied verbatim.
func replaceLinks(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '[' {
			if k := strings.IndexByte(s[i+1:], ']'); k > 0 {
				textEnd := i + 1 + k
				if textEnd+1 < len(s) && s[textEnd+1] == '(' {
					if u := strings.IndexByte(s[textEnd+2:], ')'); u > 0 {
						urlEnd := textEnd + 2 + u
						b.WriteString(`<a href="`)
						b.WriteString(s[textEnd+2 : urlEnd])
						b.WriteString(`">`)
						b.WriteString(s[i+1 : textEnd])
						b.WriteString("</a>")
						i = urlEnd + 1
						continue
					}
				}
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
