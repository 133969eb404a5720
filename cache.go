package termsite

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jimcircuit/termsite/media"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("not found")

// IndexCache memoizes the post and video indexes for the lifetime of the
// process. Concurrent first callers share a single load; a failed load is
// not remembered, so the next call retries. There is no TTL: Invalidate is
// the only way to drop a loaded index.
type IndexCache struct {
	loadPosts  func(context.Context) ([]Post, error)
	loadVideos func(context.Context) (media.VideoIndex, error)

	group singleflight.Group

	mu     sync.RWMutex
	gen    uint64
	posts  []Post
	tags   []string
	videos *media.VideoIndex
}

// NewIndexCache creates an IndexCache backed by the given loaders.
func NewIndexCache(posts func(context.Context) ([]Post, error), videos func(context.Context) (media.VideoIndex, error)) *IndexCache {
	return &IndexCache{loadPosts: posts, loadVideos: videos}
}

// postsEntry is one loaded post index with the tags derived from it.
type postsEntry struct {
	posts []Post
	tags  []string
}

// Invalidate drops both indexes so the next read loads them again. A load
// already in flight still answers the callers that joined it but is not
// stored, and later callers start a fresh load.
func (c *IndexCache) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.posts = nil
	c.tags = nil
	c.videos = nil
	c.group.Forget("posts")
	c.group.Forget("videos")
	c.mu.Unlock()
}

// Posts returns the post index, loading it on first use. Bodies are not
// kept; callers that need a post's markdown read it themselves.
func (c *IndexCache) Posts(ctx context.Context) ([]Post, error) {
	e, err := c.postsEntry(ctx)
	return e.posts, err
}

func (c *IndexCache) postsEntry(ctx context.Context) (postsEntry, error) {
	c.mu.RLock()
	if c.posts != nil {
		e := postsEntry{posts: c.posts, tags: c.tags}
		c.mu.RUnlock()
		return e, nil
	}
	gen := c.gen
	c.mu.RUnlock()

	v, err, _ := c.group.Do("posts", func() (any, error) {
		posts, err := c.loadPosts(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		e := postsEntry{posts: indexOnly(posts), tags: collectTags(posts)}
		c.mu.Lock()
		if c.gen == gen {
			c.posts, c.tags = e.posts, e.tags
		}
		c.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return postsEntry{}, err
	}
	return v.(postsEntry), nil
}

// Videos returns the video index, loading it on first use.
func (c *IndexCache) Videos(ctx context.Context) (media.VideoIndex, error) {
	c.mu.RLock()
	if c.videos != nil {
		idx := *c.videos
		c.mu.RUnlock()
		return idx, nil
	}
	gen := c.gen
	c.mu.RUnlock()

	v, err, _ := c.group.Do("videos", func() (any, error) {
		idx, err := c.loadVideos(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.videos = &idx
		}
		c.mu.Unlock()
		return idx, nil
	})
	if err != nil {
		return media.VideoIndex{}, err
	}
	return v.(media.VideoIndex), nil
}

// ListPosts returns the posts, optionally filtered by tag.
func (c *IndexCache) ListPosts(ctx context.Context, tag string) ([]Post, error) {
	posts, err := c.Posts(ctx)
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	normalized := normalizeTag(tag)
	filtered := []Post{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if normalizeTag(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// ListTags returns the unique tags of all posts in first-seen order.
func (c *IndexCache) ListTags(ctx context.Context) ([]string, error) {
	e, err := c.postsEntry(ctx)
	if err != nil {
		return nil, err
	}
	return e.tags, nil
}

// GetPost returns the index entry for slug.
func (c *IndexCache) GetPost(ctx context.Context, slug string) (Post, error) {
	posts, err := c.Posts(ctx)
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

func indexOnly(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		p.Body, p.HTML = "", ""
		out[i] = p
	}
	return out
}

func collectTags(posts []Post) []string {
	seen := map[string]bool{}
	tags := []string{}
	for _, p := range posts {
		for _, t := range p.Tags {
			n := normalizeTag(t)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			tags = append(tags, n)
		}
	}
	return tags
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
