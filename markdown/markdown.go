// Package markdown renders the restricted markdown dialect used by blog posts:
// fenced code, inline code, headers, bold, italic, links, unordered list items
// and paragraphs.
//
// Rendering runs as a fixed sequence of passes over the text. Every pass is a
// small left-to-right scanner; the order of the passes is part of the output
// contract, since the generated HTML is written to static pages that must stay
// byte-stable across rebuilds.
package markdown

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

const placeholderPrefix = "\x00CODEBLOCK"

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Render(md))
		return err
	})
}

// Render converts md to HTML. It never fails: constructs it does not
// recognize are emitted as literal text.
func Render(md string) string {
	text, fences := extractFences(md)

	text = replaceInlineCode(text)
	text = mapLines(text, headerLine)
	text = replacePaired(text, "**", "strong")
	text = replacePaired(text, "__", "strong")
	text = replaceStarItalic(text)
	text = replaceUnderscoreItalic(text)
	text = replaceLinks(text)
	text = mapLines(text, listItemLine)

	return restoreFences(assemble(text), fences)
}

func placeholder(i int) string {
	return placeholderPrefix + strconv.Itoa(i) + "\x00"
}

// extractFences swaps every ```lang\n...``` block for a placeholder so that
// no later pass can touch code contents. The rendered blocks are returned in
// placeholder order.
func extractFences(s string) (string, []string) {
	var b strings.Builder
	var fences []string
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], "```") {
			j := i + 3
			for j < len(s) && isWordByte(s[j]) {
				j++
			}
			if j < len(s) && s[j] == '\n' {
				if k := strings.Index(s[j+1:], "```"); k >= 0 {
					lang := s[i+3 : j]
					if lang == "" {
						lang = "text"
					}
					code := s[j+1 : j+1+k]
					b.WriteString(placeholder(len(fences)))
					fences = append(fences, `<pre><code class="language-`+lang+`">`+Escape(trimSpace(code))+`</code></pre>`)
					i = j + 1 + k + 3
					continue
				}
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String(), fences
}

// restoreFences puts each rendered code block back in place of the first
// occurrence of its placeholder.
func restoreFences(s string, fences []string) string {
	for i, code := range fences {
		s = strings.Replace(s, placeholder(i), code, 1)
	}
	return s
}
