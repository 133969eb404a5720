package termsite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type postIndex struct {
	Posts []Post `json:"posts"`
}

// indexEntry is the lenient shape accepted when reading an index written by
// hand: tags and keywords may be lists or comma separated strings.
type indexEntry struct {
	Slug     string     `json:"slug"`
	Title    string     `json:"title"`
	Date     string     `json:"date"`
	Summary  string     `json:"summary"`
	Markdown string     `json:"markdown"`
	VideoURL string     `json:"videoUrl"`
	Tags     stringList `json:"tags"`
	Keywords stringList `json:"keywords"`
}

type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = splitList(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

// ReadIndex decodes a post index. Both {"posts": [...]} and a bare array are
// accepted. Entries are returned as written; callers validate them with
// NormalizePost.
func ReadIndex(r io.Reader) ([]Post, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read post index: %w", err)
	}
	data = bytes.TrimSpace(data)

	var entries []indexEntry
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &entries)
	} else {
		var doc struct {
			Posts []indexEntry `json:"posts"`
		}
		err = json.Unmarshal(data, &doc)
		entries = doc.Posts
	}
	if err != nil {
		return nil, fmt.Errorf("decode post index: %w", err)
	}

	posts := make([]Post, len(entries))
	for i, e := range entries {
		posts[i] = Post{
			Slug:     e.Slug,
			Title:    e.Title,
			Date:     e.Date,
			Summary:  e.Summary,
			Markdown: e.Markdown,
			VideoURL: e.VideoURL,
			Tags:     e.Tags,
			Keywords: e.Keywords,
		}
	}
	return posts, nil
}

// WriteIndex encodes posts as {"posts": [...]} with two-space indentation
// and a trailing newline. HTML characters are written as-is.
func WriteIndex(w io.Writer, posts []Post) error {
	if posts == nil {
		posts = []Post{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(postIndex{Posts: posts}); err != nil {
		return fmt.Errorf("encode post index: %w", err)
	}
	return nil
}
