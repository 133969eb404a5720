package termsite

import "strings"

// StripOptions removes content from markdown bodies that the post page
// already renders from metadata. It only applies to the index source, whose
// markdown files are often written as standalone documents.
type StripOptions struct {
	LeadingTitle bool `yaml:"leadingTitle"` // drop a first "# Title" line
	VideoSection bool `yaml:"videoSection"` // drop a "## Video" section
}

// Apply returns body with the selected parts removed.
func (o StripOptions) Apply(body string) string {
	if !o.LeadingTitle && !o.VideoSection {
		return body
	}
	lines := strings.Split(body, "\n")
	if o.LeadingTitle {
		lines = stripLeadingTitle(lines)
	}
	if o.VideoSection {
		lines = stripVideoSection(lines)
	}
	return strings.Join(lines, "\n")
}

func stripLeadingTitle(lines []string) []string {
	for i, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "# ") {
			return lines
		}
		rest := lines[i+1:]
		for len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
			rest = rest[1:]
		}
		return rest
	}
	return lines
}

func isVideoHeading(line string) bool {
	t := strings.ToLower(strings.TrimSpace(line))
	return t == "## video" || t == "## videos"
}

// stripVideoSection removes every "## Video" heading and the lines up to the
// next heading of level one or two.
func stripVideoSection(lines []string) []string {
	out := make([]string, 0, len(lines))
	skipping := false
	for _, l := range lines {
		t := strings.TrimSpace(l)
		switch {
		case isVideoHeading(l):
			skipping = true
			continue
		case skipping && (strings.HasPrefix(t, "## ") || strings.HasPrefix(t, "# ")):
			skipping = false
		}
		if !skipping {
			out = append(out, l)
		}
	}
	return out
}
