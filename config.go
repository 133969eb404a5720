package termsite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Post sources.
const (
	SourceFrontMatter = "frontmatter" // *.md files carrying their own metadata
	SourceIndex       = "index"       // a JSON index pointing at plain markdown files
)

// SiteConfig holds all configuration for a termsite site. Paths are relative
// to the working directory.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "JimCircuit")
	URL         string `yaml:"url"`         // Canonical URL (default "https://jimcircuit.net")
	Description string `yaml:"description"` // Fallback meta description
	Author      string `yaml:"author"`      // Author name for JSON-LD (default Name)
	GoogleTagID string `yaml:"googleTagId"` // gtag.js measurement id, omitted when empty

	Source      string       `yaml:"source"`      // SourceFrontMatter (default) or SourceIndex
	PostsDir    string       `yaml:"postsDir"`    // default "posts"
	IndexPath   string       `yaml:"indexPath"`   // default "posts/posts.json"
	Strip       StripOptions `yaml:"strip"`       // index source only
	OutputDir   string       `yaml:"outputDir"`   // default "blog"
	SitemapPath string       `yaml:"sitemapPath"` // default "sitemap.xml"
	FeedPath    string       `yaml:"feedPath"`    // default "feed.xml"
	VideosPath  string       `yaml:"videosPath"`  // default "videos.json"
	Manifest    string       `yaml:"manifest"`    // build manifest database (default ".termsite/manifest.db")

	Root          string `yaml:"root"`          // Directory served by the preview server (default ".")
	Addr          string `yaml:"addr"`          // Listen address (default ":3000")
	SessionSecret string `yaml:"sessionSecret"` // Random per process when empty
	CookieSecure  bool   `yaml:"cookieSecure"`  // Set true for HTTPS
	APIRateLimit  int    `yaml:"apiRateLimit"`  // /api requests per minute per IP (default 120, negative disables)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() SiteConfig {
	var c SiteConfig
	c.setDefaults()
	return c
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "JimCircuit"
	}
	if c.URL == "" {
		c.URL = "https://jimcircuit.net"
	}
	if c.Author == "" {
		c.Author = c.Name
	}
	if c.Source == "" {
		c.Source = SourceFrontMatter
	}
	if c.PostsDir == "" {
		c.PostsDir = "posts"
	}
	if c.IndexPath == "" {
		c.IndexPath = "posts/posts.json"
	}
	if c.OutputDir == "" {
		c.OutputDir = "blog"
	}
	if c.SitemapPath == "" {
		c.SitemapPath = "sitemap.xml"
	}
	if c.FeedPath == "" {
		c.FeedPath = "feed.xml"
	}
	if c.VideosPath == "" {
		c.VideosPath = "videos.json"
	}
	if c.Manifest == "" {
		c.Manifest = ".termsite/manifest.db"
	}
	if c.Root == "" {
		c.Root = "."
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.APIRateLimit == 0 {
		c.APIRateLimit = 120
	}
}

// Validate reports configuration values that cannot work.
func (c SiteConfig) Validate() error {
	if c.Source != SourceFrontMatter && c.Source != SourceIndex {
		return fmt.Errorf("unknown post source %q", c.Source)
	}
	return nil
}

// LoadConfig reads a YAML site configuration from path and fills in
// defaults. An empty path yields DefaultConfig.
func LoadConfig(path string) (SiteConfig, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("read config: %w", err)
	}
	var c SiteConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return SiteConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return SiteConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithManifest makes rebuilds triggered by the App record page hashes in m.
func WithManifest(m *Manifest) Option {
	return func(a *App) {
		a.manifest = m
	}
}
