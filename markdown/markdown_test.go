package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderCodeFence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"```js\n1 < 2\n```", `<pre><code class="language-js">1 &lt; 2</code></pre>`},
		{"```\nx\n```", `<pre><code class="language-text">x</code></pre>`},
		{"```\n\n  padded  \n\n```", `<pre><code class="language-text">padded</code></pre>`},
		{"```go\n```", `<pre><code class="language-go"></code></pre>`},
		{"```\na *b* c `d` [e](f)\n```", `<pre><code class="language-text">a *b* c `d` [e](f)</code></pre>`},
		{"```\n# not a header\n- not an item\n```", `<pre><code class="language-text"># not a header` + "\n" + `- not an item</code></pre>`},
		{"```sh\necho \"a&b\"\n```", `<pre><code class="language-sh">echo &quot;a&amp;b&quot;</code></pre>`},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMultipleFencesKeepOrder(t *testing.T) {
	input := "```go\na\n```\n\ntext\n\n```\nb\n```"
	expected := `<pre><code class="language-go">a</code></pre>` + "\n<p>text</p>\n" +
		`<pre><code class="language-text">b</code></pre>`
	if got := Render(input); got != expected {
		t.Errorf("Render(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderUnclosedFenceIsLiteral(t *testing.T) {
	input := "```js\nno close"
	expected := "<p>```js<br>no close</p>"
	if got := Render(input); got != expected {
		t.Errorf("Render(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderFenceWithDollarSigns(t *testing.T) {
	input := "```sh\necho $HOME $& $1\n```"
	expected := `<pre><code class="language-sh">echo $HOME $&amp; $1</code></pre>`
	if got := Render(input); got != expected {
		t.Errorf("Render(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# H", "<h1>H</h1>"},
		{"## H", "<h2>H</h2>"},
		{"### H", "<h3>H</h3>"},
		{"#### H", "<p>#### H</p>"},
		{"#H", "<p>#H</p>"},
		{"# T\n\nbody", "<h1>T</h1>\n<p>body</p>"},
		{"# T\nbody", "<h1>T</h1>\nbody"},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderEmphasis(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold** and __also__", "<strong>bold</strong> and <strong>also</strong>"},
		{"*it*", "<em>it</em>"},
		{"a _b_ c", "<p>a <em>b</em> c</p>"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"__bold _italic_ text__", "<strong>bold <em>italic</em> text</strong>"},
		{"x **a** y **b** z", "<p>x <strong>a</strong> y <strong>b</strong> z</p>"},
		{"x ** y", "<p>x ** y</p>"},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderUnderscoreGuards(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"snake_case_name", "<p>snake_case_name</p>"},
		{"/usr/_local_/bin", "<p>/usr/_local_/bin</p>"},
		{"_start_ of line", "<em>start</em> of line"},
		{"end of _line_", "<p>end of <em>line</em></p>"},
		{"a __ b", "<p>a __ b</p>"},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderBoldStaysOnOneLine(t *testing.T) {
	got := Render("x **a\nb** y")
	if strings.Contains(got, "<strong>") {
		t.Errorf("bold matched across a line break: %q", got)
	}
}

func TestRenderLinks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[site](https://x.y/a_b)", `<a href="https://x.y/a_b">site</a>`},
		{"see [docs](/docs) now", `<p>see <a href="/docs">docs</a> now</p>`},
		{"[](/empty)", "<p>[](/empty)</p>"},
		{"[text] (/gap)", "<p>[text] (/gap)</p>"},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderInlineCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"use `x`", "<p>use <code>x</code></p>"},
		{"a `` b", "<p>a `` b</p>"},
		{"`go test`", "<code>go test</code>"},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderList(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"- a\n- b", "<ul><li>a</li>\n<li>b</li></ul>"},
		{"- **a**", "<ul><li><strong>a</strong></li></ul>"},
		{"Intro\n- a", "<ul>Intro\n<li>a</li></ul>"},
		{"-a", "<p>-a</p>"},
		{"text\n\n- a\n- b\n\nmore", "<p>text</p>\n<ul><li>a</li>\n<li>b</li></ul>\n<p>more</p>"},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderParagraphs(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"a\nb\n\nc", "<p>a<br>b</p>\n<p>c</p>"},
		{"a\n\n\n\nb", "<p>a</p>\n<p>b</p>"},
		{"\n\nabc", "\n<p>abc</p>"},
		{"abc\n\n", "<p>abc</p>\n"},
		{"  spaced  ", "<p>spaced</p>"},
		{"<div>raw</div>", "<div>raw</div>"},
	}
	for _, tt := range tests {
		got := Render(tt.input)
		if got != tt.expected {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	input := "# T\n\n```go\nfmt.Println(1)\n```\n\n- a\n- b\n\n**x** _y_ [z](/z)"
	first := Render(input)
	for i := 0; i < 5; i++ {
		if got := Render(input); got != first {
			t.Fatalf("Render is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestRenderLeavesNoPlaceholders(t *testing.T) {
	got := Render("```\na\n```\n\n```\nb\n```\n\n```\nc\n```")
	if strings.Contains(got, "\x00") {
		t.Errorf("placeholder left in output: %q", got)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`<a href="x">`, `&lt;a href=&quot;x&quot;&gt;`},
		{"&amp;", "&amp;amp;"},
		{"it's", "it's"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		got := Escape(tt.input)
		if got != tt.expected {
			t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
	if got := EscapeAttr("it's <b>"); got != "it&#39;s &lt;b&gt;" {
		t.Errorf("EscapeAttr = %q", got)
	}
}

func TestIsSpace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\n', '\u00a0', '\u2003', '\u2028', '\ufeff'} {
		if !isSpace(r) {
			t.Errorf("isSpace(%U) = false", r)
		}
	}
	for _, r := range []rune{'a', '_', '\u0085', '\u200b'} {
		if isSpace(r) {
			t.Errorf("isSpace(%U) = true", r)
		}
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("# Title").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.String() != "<h1>Title</h1>" {
		t.Errorf("component output = %q", buf.String())
	}
}
