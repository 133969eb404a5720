package markdown

import "strings"

type blockKind int

const (
	blockEmpty blockKind = iota
	blockRaw
	blockList
	blockParagraph
)

type block struct {
	kind blockKind
	text string
}

// assemble splits s into blank-line separated blocks, classifies each one and
// renders them joined by single newlines.
func assemble(s string) string {
	parts := splitBlocks(s)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = classify(p).render()
	}
	return strings.Join(out, "\n")
}

// splitBlocks splits on runs of two or more newlines. Empty leading or
// trailing blocks are kept so they still contribute a separator when joined.
func splitBlocks(s string) []string {
	var blocks []string
	start := 0
	for i := 0; i < len(s); {
		if s[i] == '\n' && i+1 < len(s) && s[i+1] == '\n' {
			blocks = append(blocks, s[start:i])
			for i < len(s) && s[i] == '\n' {
				i++
			}
			start = i
			continue
		}
		i++
	}
	return append(blocks, s[start:])
}

func classify(raw string) block {
	text := trimSpace(raw)
	switch {
	case text == "":
		return block{kind: blockEmpty}
	case strings.HasPrefix(text, "<li>"):
		return block{kind: blockList, text: text}
	case strings.HasPrefix(text, "<"), strings.HasPrefix(text, placeholderPrefix):
		return block{kind: blockRaw, text: text}
	case strings.Contains(text, "<li>"):
		return block{kind: blockList, text: text}
	default:
		return block{kind: blockParagraph, text: text}
	}
}

func (b block) render() string {
	switch b.kind {
	case blockRaw:
		return b.text
	case blockList:
		return "<ul>" + b.text + "</ul>"
	case blockParagraph:
		return "<p>" + strings.ReplaceAll(b.text, "\n", "<br>") + "</p>"
	}
	return ""
}
