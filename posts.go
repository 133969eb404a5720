package termsite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jimcircuit/termsite/frontmatter"
	"github.com/jimcircuit/termsite/markdown"
)

// ErrInvalidPost is returned by NormalizePost for records that cannot be
// published.
var ErrInvalidPost = errors.New("invalid post")

const dateLayout = "2006-01-02"

// Today formats t as the YYYY-MM-DD date used for defaults and sitemaps.
func Today(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// NormalizePost validates p and fills in defaults: a missing date becomes
// today and nil tag or keyword lists become empty lists.
func NormalizePost(p Post, today string) (Post, error) {
	if p.Slug == "" {
		return p, fmt.Errorf("%w: missing slug", ErrInvalidPost)
	}
	if p.Title == "" {
		return p, fmt.Errorf("%w: missing title", ErrInvalidPost)
	}
	if !ValidSlug(p.Slug) {
		return p, fmt.Errorf("%w: slug %q is not a single path segment", ErrInvalidPost, p.Slug)
	}
	if p.Date == "" {
		p.Date = today
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Keywords == nil {
		p.Keywords = []string{}
	}
	return p, nil
}

// ValidSlug reports whether s is a single path segment, so the post page
// cannot escape its directory.
func ValidSlug(s string) bool {
	return s != "." && s != ".." && !strings.ContainsAny(s, `/\`) && !strings.ContainsRune(s, 0)
}

// SortPosts orders posts newest first by date string. Posts sharing a date
// keep their relative order.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
}

// RenderPosts fills in the HTML of every post from its Body.
func RenderPosts(posts []Post) {
	for i := range posts {
		posts[i].HTML = markdown.Render(posts[i].Body)
	}
}

// postFromFrontMatter maps header keys onto a Post. List-valued slug, title
// or date read as missing.
func postFromFrontMatter(fm frontmatter.FrontMatter) Post {
	return Post{
		Slug:     fm.String("slug"),
		Title:    fm.String("title"),
		Date:     fm.String("date"),
		Summary:  fm.String("summary"),
		VideoURL: fm.String("videoUrl"),
		Tags:     listValue(fm, "tags"),
		Keywords: listValue(fm, "keywords"),
	}
}

func listValue(fm frontmatter.FrontMatter, key string) []string {
	v, ok := fm.Get(key)
	switch {
	case !ok:
		return nil
	case v.IsList:
		return v.List
	default:
		return splitList(v.Scalar)
	}
}

// LoadPostsFromDir reads every *.md file in dir, takes its metadata from the
// front matter and returns the valid posts sorted newest first. Invalid or
// unreadable files are skipped with a warning. Markdown paths are recorded
// as dir-relative slash paths, e.g. "posts/hello.md".
func LoadPostsFromDir(dir, today string) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read posts dir: %w", err)
	}
	var posts []Post
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		file := filepath.Join(dir, e.Name())
		raw, err := os.ReadFile(file)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Skipping unreadable post")
			continue
		}
		fm, body := frontmatter.Parse(string(raw))
		p := postFromFrontMatter(fm)
		p.Markdown = filepath.ToSlash(file)
		p.Body = body
		p, err = NormalizePost(p, today)
		if err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Skipping post")
			continue
		}
		posts = append(posts, p)
	}
	SortPosts(posts)
	return posts, nil
}

// LoadPostsFromIndex reads the JSON index at indexPath and loads each
// entry's markdown from root. Entries whose markdown cannot be read are
// skipped with a warning. Front matter found in a markdown file is dropped;
// the index is authoritative for metadata.
func LoadPostsFromIndex(indexPath, root string, strip StripOptions, today string) ([]Post, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("open post index: %w", err)
	}
	defer f.Close()
	entries, err := ReadIndex(f)
	if err != nil {
		return nil, err
	}

	var posts []Post
	for _, p := range entries {
		p, err := NormalizePost(p, today)
		if err != nil {
			log.Warn().Err(err).Str("slug", p.Slug).Msg("Skipping index entry")
			continue
		}
		body, err := readPostBody(root, p.Markdown, strip)
		if err != nil {
			log.Warn().Err(err).Str("slug", p.Slug).Str("file", p.Markdown).Msg("Skipping post with missing markdown")
			continue
		}
		p.Body = body
		posts = append(posts, p)
	}
	SortPosts(posts)
	return posts, nil
}

// readPostBody loads the markdown referenced by rel under root and returns
// its body with front matter removed and strip applied.
func readPostBody(root, rel string, strip StripOptions) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("%w: no markdown path", ErrNotFound)
	}
	file := filepath.FromSlash(rel)
	if !filepath.IsAbs(file) {
		file = filepath.Join(root, file)
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	_, body := frontmatter.Parse(string(raw))
	return strip.Apply(body), nil
}
