package termsite

// Post is a blog entry. The JSON form is the record written to the post
// index; Body and HTML only live in memory.
type Post struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Summary  string   `json:"summary"`
	Markdown string   `json:"markdown"` // path of the source file, relative to the site root
	VideoURL string   `json:"videoUrl"`
	Tags     []string `json:"tags"`
	Keywords []string `json:"keywords"`

	Body string `json:"-"` // markdown without front matter
	HTML string `json:"-"` // rendered Body
}

// SEOKeywords returns the keywords, falling back to the tags.
func (p Post) SEOKeywords() []string {
	if len(p.Keywords) > 0 {
		return p.Keywords
	}
	return p.Tags
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
