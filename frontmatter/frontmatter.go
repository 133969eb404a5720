// Package frontmatter splits a post file into its metadata header and body.
//
// The header is a line-oriented subset of YAML: "key: value" scalars and
// "key:" followed by indented "- item" lines. Parsing never fails. Input that
// does not start with a complete header is returned unchanged as the body.
package frontmatter

import (
	"strings"
	"unicode/utf8"
)

const (
	openDelim  = "---\n"
	closeDelim = "\n---\n"
)

// Value is either a scalar string or a list of strings, never both.
type Value struct {
	Scalar string
	List   []string
	IsList bool
}

// FrontMatter maps header keys to their values.
type FrontMatter map[string]Value

// Get returns the raw value stored under key.
func (fm FrontMatter) Get(key string) (Value, bool) {
	v, ok := fm[key]
	return v, ok
}

// Has reports whether key appeared in the header.
func (fm FrontMatter) Has(key string) bool {
	_, ok := fm[key]
	return ok
}

// String returns the scalar stored under key, or "" when the key is missing
// or holds a list.
func (fm FrontMatter) String(key string) string {
	v, ok := fm[key]
	if !ok || v.IsList {
		return ""
	}
	return v.Scalar
}

// Strings returns the list stored under key. The second result is false when
// the key is missing or holds a scalar.
func (fm FrontMatter) Strings(key string) ([]string, bool) {
	v, ok := fm[key]
	if !ok || !v.IsList {
		return nil, false
	}
	return v.List, true
}

// Parse splits raw into its front matter and body. The header must start at
// the very first byte with "---\n" and end at the first "\n---\n" after it.
func Parse(raw string) (FrontMatter, string) {
	fm := FrontMatter{}
	if !strings.HasPrefix(raw, openDelim) {
		return fm, raw
	}
	rest := raw[len(openDelim):]
	end := strings.Index(rest, closeDelim)
	if end < 0 {
		return fm, raw
	}
	header, body := rest[:end], rest[end+len(closeDelim):]

	var current string
	open := false
	for _, line := range strings.Split(header, "\n") {
		if item, ok := arrayItem(line); ok {
			if open {
				v := fm[current]
				v.List = append(v.List, item)
				fm[current] = v
			}
			continue
		}
		key, value, ok := keyValue(line)
		if !ok {
			continue
		}
		if value == "" {
			fm[key] = Value{IsList: true, List: []string{}}
			current, open = key, true
			continue
		}
		fm[key] = Value{Scalar: unquote(value)}
		open = false
	}
	return fm, body
}

// arrayItem matches an indented "- item" line. The indent and the gap after
// the dash may be any whitespace; the item itself must not contain a line
// terminator.
func arrayItem(line string) (string, bool) {
	lead := spaceRun(line)
	if lead == 0 || lead >= len(line) || line[lead] != '-' {
		return "", false
	}
	rest := line[lead+1:]
	gap := spaceRun(rest)
	if gap == 0 {
		return "", false
	}
	_, first := utf8.DecodeRuneInString(rest)
	split := max(first, lastTermEnd(rest))
	if split > gap || split >= len(rest) {
		return "", false
	}
	return trimSpace(rest[split:]), true
}

// keyValue matches "word: value". The value may be empty but must not span a
// line terminator once its leading whitespace is skipped.
func keyValue(line string) (key, value string, ok bool) {
	n := 0
	for n < len(line) && isWordByte(line[n]) {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != ':' {
		return "", "", false
	}
	rest := line[n+1:]
	if lastTermEnd(rest) > spaceRun(rest) {
		return "", "", false
	}
	return line[:n], trimSpace(rest), true
}

// unquote strips one layer of matching double or single quotes.
func unquote(v string) string {
	for _, q := range []byte{'"', '\''} {
		if v[0] == q && v[len(v)-1] == q {
			if len(v) < 2 {
				return ""
			}
			return v[1 : len(v)-1]
		}
	}
	return v
}
