package termsite

import (
	"bytes"
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify converts a title to a URL-safe slug. Accented letters are folded
// to their base letter first, so "Café Déjà" becomes "cafe-deja".
func Slugify(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
// The bare site root also gets one: BuildURL("https://x.y") is "https://x.y/".
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PostURL returns the canonical URL of a post page.
func PostURL(cfg SiteConfig, slug string) string {
	return BuildURL(cfg.URL, "blog", slug)
}

// FilterEmpty trims every value and drops the empty ones.
func FilterEmpty(vals []string) []string {
	out := []string{}
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// splitList turns a comma separated scalar such as "go, web" or "[go, web]"
// into a list.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	return FilterEmpty(strings.Split(s, ","))
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// Description returns the meta description of p: its summary, else a
// "Learn: ..." line built from up to six keywords or tags, else the site
// description, else the title.
func (p Post) Description(cfg SiteConfig) string {
	if p.Summary != "" {
		return p.Summary
	}
	kw := p.SEOKeywords()
	if len(kw) > 6 {
		kw = kw[:6]
	}
	if len(kw) > 0 {
		return "Learn: " + JoinTags(kw) + "."
	}
	if cfg.Description != "" {
		return cfg.Description
	}
	return p.Title
}

type jsonLDThing struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type blogPostingJSONLD struct {
	Context       string      `json:"@context"`
	Type          string      `json:"@type"`
	Headline      string      `json:"headline"`
	DatePublished string      `json:"datePublished"`
	Description   string      `json:"description"`
	URL           string      `json:"url"`
	Author        jsonLDThing `json:"author"`
	Publisher     jsonLDThing `json:"publisher"`
	Keywords      string      `json:"keywords,omitempty"`
}

type websiteJSONLD struct {
	Context     string       `json:"@context"`
	Type        string       `json:"@type"`
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	Description string       `json:"description,omitempty"`
	Author      *jsonLDThing `json:"author,omitempty"`
}

// BlogPostingJsonLD returns the indented JSON-LD BlogPosting document for p.
// Keywords are only present when the post has explicit keywords.
func BlogPostingJsonLD(p Post, cfg SiteConfig) string {
	return marshalJSONLD(blogPostingJSONLD{
		Context:       "https://schema.org",
		Type:          "BlogPosting",
		Headline:      p.Title,
		DatePublished: p.Date,
		Description:   p.Description(cfg),
		URL:           PostURL(cfg, p.Slug),
		Author:        jsonLDThing{Type: "Person", Name: cfg.Author},
		Publisher:     jsonLDThing{Type: "Organization", Name: cfg.Name, URL: strings.TrimRight(cfg.URL, "/")},
		Keywords:      JoinTags(p.Keywords),
	})
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	doc := websiteJSONLD{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        cfg.Name,
		URL:         BuildURL(cfg.URL),
		Description: cfg.Description,
	}
	if cfg.Author != "" {
		doc.Author = &jsonLDThing{Type: "Person", Name: cfg.Author}
	}
	return marshalJSONLD(doc)
}

// marshalJSONLD keeps json's HTML escaping so "</script>" inside a title
// cannot end the surrounding script element.
func marshalJSONLD(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "  "); err != nil {
		return string(b)
	}
	return out.String()
}
