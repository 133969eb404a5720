package media

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jimcircuit/termsite/markdown"
)

// Pagination defaults for the Instagram grid.
const (
	DefaultInstagramInitial = 6
	DefaultInstagramStep    = 6
	maxInstagramPageSize    = 12
)

var platformOrder = []string{Instagram, YouTube, TikTok}

var platformLabels = map[string]string{
	Instagram: "Instagram",
	YouTube:   "YouTube",
	TikTok:    "TikTok",
}

// VideoIndex is the videos.json document listing embeddable URLs per
// platform.
type VideoIndex struct {
	Primary          string   `json:"primary,omitempty"`
	Instagram        []string `json:"instagram"`
	YouTube          []string `json:"youtube"`
	TikTok           []string `json:"tiktok"`
	InstagramInitial int      `json:"instagramInitial,omitempty"`
	InstagramStep    int      `json:"instagramStep,omitempty"`
}

// LoadVideoIndex decodes and normalizes a video index.
func LoadVideoIndex(r io.Reader) (VideoIndex, error) {
	var idx VideoIndex
	if err := json.NewDecoder(r).Decode(&idx); err != nil {
		return VideoIndex{}, fmt.Errorf("decode video index: %w", err)
	}
	idx.Normalize()
	return idx, nil
}

// ReadVideoIndexFile loads the video index stored at path.
func ReadVideoIndexFile(path string) (VideoIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return VideoIndex{}, fmt.Errorf("open video index: %w", err)
	}
	defer f.Close()
	return LoadVideoIndex(f)
}

// Normalize trims and de-duplicates URLs, drops blanks, lower-cases and
// validates Primary, and fills in the Instagram page sizes.
func (v *VideoIndex) Normalize() {
	v.Instagram = cleanURLs(v.Instagram)
	v.YouTube = cleanURLs(v.YouTube)
	v.TikTok = cleanURLs(v.TikTok)

	v.Primary = strings.ToLower(strings.TrimSpace(v.Primary))
	if _, ok := platformLabels[v.Primary]; !ok {
		v.Primary = ""
	}
	v.InstagramInitial = pageSize(v.InstagramInitial, DefaultInstagramInitial)
	v.InstagramStep = pageSize(v.InstagramStep, DefaultInstagramStep)
}

func pageSize(n, def int) int {
	if n <= 0 {
		return def
	}
	return min(n, maxInstagramPageSize)
}

func cleanURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// URLs returns the list for platform.
func (v VideoIndex) URLs(platform string) []string {
	switch platform {
	case Instagram:
		return v.Instagram
	case YouTube:
		return v.YouTube
	case TikTok:
		return v.TikTok
	}
	return nil
}

// Platforms returns the platforms that have videos, the primary one first
// and the rest in their default order.
func (v VideoIndex) Platforms() []string {
	var out []string
	if v.Primary != "" && len(v.URLs(v.Primary)) > 0 {
		out = append(out, v.Primary)
	}
	for _, p := range platformOrder {
		if p != v.Primary && len(v.URLs(p)) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// InstagramPage returns the Instagram URLs visible once page additional
// pages have been loaded, and whether more remain. Page 0 is the first
// screen.
func (v VideoIndex) InstagramPage(page int) ([]string, bool) {
	initial := pageSize(v.InstagramInitial, DefaultInstagramInitial)
	step := pageSize(v.InstagramStep, DefaultInstagramStep)
	page = v.clampPage(page)
	n := min(initial+page*step, len(v.Instagram))
	return v.Instagram[:n], n < len(v.Instagram)
}

// clampPage limits page to 0 through the first page that shows every
// Instagram URL, so page arithmetic cannot overflow.
func (v VideoIndex) clampPage(page int) int {
	step := pageSize(v.InstagramStep, DefaultInstagramStep)
	return min(max(page, 0), len(v.Instagram)/step+1)
}

// RenderPanel renders the video section fragment. Instagram shows the grid
// for page; the other platforms list every video.
func RenderPanel(v VideoIndex, page int) string {
	page = v.clampPage(page)
	platforms := v.Platforms()
	if len(platforms) == 0 {
		return `<p class="video-empty">No videos yet.</p>`
	}

	var b strings.Builder
	var urls []string
	for _, p := range platforms {
		list, more := v.URLs(p), false
		if p == Instagram {
			list, more = v.InstagramPage(page)
		}
		fmt.Fprintf(&b, "<section class=\"video-group video-group-%s\">\n", p)
		fmt.Fprintf(&b, "<h3>%s</h3>\n<div class=\"video-grid\">\n", markdown.Escape(platformLabels[p]))
		for _, u := range list {
			if html := Embed(u); html != "" {
				b.WriteString(html)
				b.WriteByte('\n')
			}
		}
		b.WriteString("</div>\n")
		if more {
			fmt.Fprintf(&b, "<button class=\"video-more\" type=\"button\" data-page=\"%d\">load more</button>\n", page+1)
		}
		b.WriteString("</section>\n")
		urls = append(urls, list...)
	}
	b.WriteString(Scripts(urls...))
	return b.String()
}
