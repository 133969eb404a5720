package termsite

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// BuildResult summarizes one Build.
type BuildResult struct {
	Posts     []Post
	Written   int      // pages written this build
	Unchanged int      // pages skipped because the manifest hash matched
	Assets    int      // asset files copied
	Stale     []string // slugs built before that no longer have a post
}

// Builder renders the static site: the post index, one page per post, the
// sitemap, the RSS feed and assets.
type Builder struct {
	Config   SiteConfig
	Manifest *Manifest // optional; without it every page is rewritten

	now func() time.Time
}

// NewBuilder returns a Builder for cfg. m may be nil.
func NewBuilder(cfg SiteConfig, m *Manifest) *Builder {
	cfg.setDefaults()
	return &Builder{Config: cfg, Manifest: m, now: time.Now}
}

// LoadPosts reads, validates and sorts the posts from the configured
// source. Bodies are loaded but not rendered.
func (b *Builder) LoadPosts() ([]Post, error) {
	today := Today(b.now())
	if b.Config.Source == SourceIndex {
		return LoadPostsFromIndex(b.Config.IndexPath, b.Config.Root, b.Config.Strip, today)
	}
	return LoadPostsFromDir(b.Config.PostsDir, today)
}

// Build runs a full build. Problems with individual posts are logged and
// skipped; failing to write any output aborts the build.
func (b *Builder) Build(ctx context.Context) (BuildResult, error) {
	var res BuildResult
	started := b.now()
	log.Info().Str("source", b.Config.Source).Msg("Building static pages")

	posts, err := b.LoadPosts()
	if err != nil {
		return res, err
	}
	if len(posts) == 0 {
		log.Warn().Str("dir", b.Config.PostsDir).Msg("No posts found")
		return res, nil
	}
	RenderPosts(posts)
	res.Posts = posts

	if b.Config.Source == SourceFrontMatter {
		if err := writeFileWith(b.Config.IndexPath, func(w io.Writer) error {
			return WriteIndex(w, posts)
		}); err != nil {
			return res, err
		}
		log.Info().Str("file", b.Config.IndexPath).Int("posts", len(posts)).Msg("Updated post index")
	}

	if err := os.MkdirAll(b.Config.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}
	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		written, err := b.writePage(ctx, p)
		if err != nil {
			return res, err
		}
		if written {
			res.Written++
			log.Info().Str("slug", p.Slug).Msg("Generated page")
		} else {
			res.Unchanged++
			log.Debug().Str("slug", p.Slug).Msg("Page unchanged")
		}
	}

	today := Today(b.now())
	if err := writeFileWith(b.Config.SitemapPath, func(w io.Writer) error {
		return WriteSitemap(w, b.Config, posts, today)
	}); err != nil {
		return res, err
	}
	if err := writeFileWith(b.Config.FeedPath, func(w io.Writer) error {
		return WriteFeed(w, b.Config, posts)
	}); err != nil {
		return res, err
	}

	if res.Assets, err = copyAssets(filepath.Join(b.Config.PostsDir, imagesSubdir), filepath.Join(b.Config.OutputDir, imagesSubdir)); err != nil {
		return res, err
	}
	if wrote, err := writeEmbeddedStyles(b.Config.Root); err != nil {
		return res, err
	} else if wrote {
		log.Info().Str("file", filepath.Join(b.Config.Root, blogCSS)).Msg("Wrote default stylesheet")
	}

	if b.Manifest != nil {
		stale, err := b.Manifest.Stale(posts)
		if err != nil {
			return res, err
		}
		if res.Stale, err = b.Manifest.Forget(stale); err != nil {
			return res, err
		}
		for _, slug := range res.Stale {
			log.Warn().Str("slug", slug).Str("dir", filepath.Join(b.Config.OutputDir, slug)).Msg("Page has no post anymore")
		}
		if err := b.Manifest.LogBuild(started, res); err != nil {
			return res, err
		}
	}

	log.Info().
		Int("posts", len(posts)).
		Int("written", res.Written).
		Int("unchanged", res.Unchanged).
		Dur("took", b.now().Sub(started)).
		Msg("Build complete")
	return res, nil
}

// LoadBody reads the markdown of p as the configured source stores it:
// front matter posts relative to the working directory, index posts
// relative to the site root with the strip options applied.
func (b *Builder) LoadBody(p Post) (string, error) {
	if b.Config.Source == SourceIndex {
		return readPostBody(b.Config.Root, p.Markdown, b.Config.Strip)
	}
	return readPostBody(".", p.Markdown, StripOptions{})
}

// PagePath returns where the page for slug is written.
func (b *Builder) PagePath(slug string) string {
	return filepath.Join(b.Config.OutputDir, slug, "index.html")
}

// writePage renders p and writes it unless the manifest shows the same
// content is already on disk.
func (b *Builder) writePage(ctx context.Context, p Post) (bool, error) {
	var buf bytes.Buffer
	if err := PostPage(b.Config, p).Render(ctx, &buf); err != nil {
		return false, fmt.Errorf("render %s: %w", p.Slug, err)
	}
	sum := sha256.Sum256(buf.Bytes())
	hash := hex.EncodeToString(sum[:])
	path := b.PagePath(p.Slug)

	if b.Manifest != nil {
		prev, err := b.Manifest.Hash(p.Slug)
		if err != nil {
			return false, err
		}
		if prev == hash {
			if _, err := os.Stat(path); err == nil {
				return false, nil
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create page dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("write page %s: %w", p.Slug, err)
	}
	if b.Manifest != nil {
		if err := b.Manifest.Record(p, hash, b.now()); err != nil {
			return false, err
		}
	}
	return true, nil
}

// writeFileWith writes the output of fn to path, creating parent
// directories. The file is only replaced once fn succeeds.
func writeFileWith(path string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
