// Package termsite builds and serves a terminal-themed personal site.
//
// The Builder turns a directory of markdown posts into standalone HTML pages,
// a JSON post index, a sitemap and an RSS feed. The App is an Echo server
// that serves the site root next to an API the terminal UI uses to list
// posts and videos, render a post on demand and decide whether to replay
// the boot animation.
package termsite

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/jimcircuit/termsite/media"
)

// App is the preview and runtime server. It owns the index cache and
// rebuilds the static output when asked.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Builder *Builder
	Cache   *IndexCache

	manifest     *Manifest
	limiter      *RateLimiter
	customRoutes []func(*App)
	rebuildMu    sync.Mutex
}

// New creates an App with routes and middleware registered. It does not
// listen until Start is called.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = randomSecret()
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	a.Builder = NewBuilder(cfg, a.manifest)
	a.Cache = NewIndexCache(
		func(context.Context) ([]Post, error) { return a.Builder.LoadPosts() },
		func(context.Context) (media.VideoIndex, error) { return a.loadVideos() },
	)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

func (a *App) setupRoutes() {
	e := a.Echo

	var apiMiddleware []echo.MiddlewareFunc
	if a.Config.APIRateLimit > 0 {
		a.limiter = NewRateLimiter(a.Config.APIRateLimit, time.Minute)
		apiMiddleware = append(apiMiddleware, a.limiter.Middleware)
	}
	api := e.Group("/api", apiMiddleware...)
	api.GET("/posts", a.handlePostsIndex)
	api.GET("/posts/:slug", a.handlePostFragment)
	api.GET("/tags", a.handleTags)
	api.GET("/videos", a.handleVideosIndex)
	api.GET("/session", a.handleSession)

	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/videos/", a.handleVideos)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/"+blogCSS, a.handleStyles)

	e.Static("/", a.Config.Root)
}

// loadVideos reads the video index. A site without a videos file has an
// empty index rather than a broken one.
func (a *App) loadVideos() (media.VideoIndex, error) {
	idx, err := media.ReadVideoIndexFile(a.Config.VideosPath)
	if errors.Is(err, os.ErrNotExist) {
		idx = media.VideoIndex{}
		idx.Normalize()
		return idx, nil
	}
	return idx, err
}

// Start listens on the configured address until the server is shut down.
func (a *App) Start() error {
	log.Info().Str("addr", a.Config.Addr).Str("root", a.Config.Root).Msg("Serving site")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Rebuild runs a build and drops the cached indexes. Concurrent calls run
// one after another.
func (a *App) Rebuild(ctx context.Context) (BuildResult, error) {
	a.rebuildMu.Lock()
	defer a.rebuildMu.Unlock()
	res, err := a.Builder.Build(ctx)
	a.Cache.Invalidate()
	return res, err
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.manifest != nil {
		return a.manifest.Close()
	}
	return nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("termsite: read random session secret: %v", err))
	}
	return hex.EncodeToString(b)
}
