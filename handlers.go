package termsite

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/jimcircuit/termsite/markdown"
	"github.com/jimcircuit/termsite/media"
)

func (a *App) handlePostsIndex(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), c.QueryParam("tag"))
	if err != nil {
		return jsonError(c, "Could not load posts.", err)
	}
	return c.JSON(http.StatusOK, postIndex{Posts: posts})
}

func (a *App) handleTags(c echo.Context) error {
	tags, err := a.Cache.ListTags(c.Request().Context())
	if err != nil {
		return jsonError(c, "Could not load tags.", err)
	}
	return c.JSON(http.StatusOK, map[string][]string{"tags": tags})
}

func (a *App) handleVideosIndex(c echo.Context) error {
	idx, err := a.Cache.Videos(c.Request().Context())
	if err != nil {
		return jsonError(c, "Could not load videos.", err)
	}
	return c.JSON(http.StatusOK, idx)
}

// loadPost returns the full post for slug with its markdown freshly read and
// rendered. Only the index entry comes from the cache.
func (a *App) loadPost(c echo.Context) (Post, error) {
	p, err := a.Cache.GetPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return Post{}, err
	}
	body, err := a.Builder.LoadBody(p)
	if errors.Is(err, os.ErrNotExist) {
		return Post{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if err != nil {
		return Post{}, err
	}
	p.Body = body
	p.HTML = markdown.Render(body)
	return p, nil
}

func (a *App) handlePostFragment(c echo.Context) error {
	p, err := a.loadPost(c)
	if errors.Is(err, ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, ErrorFragment("Post not found."))
	}
	if err != nil {
		return renderError(c, http.StatusInternalServerError, "Could not load this post.", err)
	}
	return Render(c, ArticleFragment(p))
}

func (a *App) handlePost(c echo.Context) error {
	p, err := a.loadPost(c)
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return renderError(c, http.StatusInternalServerError, "Could not load this post.", err)
	}
	return Render(c, PostPage(a.Config, p))
}

func (a *App) handleVideos(c echo.Context) error {
	idx, err := a.Cache.Videos(c.Request().Context())
	if err != nil {
		return renderError(c, http.StatusInternalServerError, "Could not load videos.", err)
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return c.String(http.StatusOK, media.RenderPanel(idx, page))
}

func (a *App) handleSession(c echo.Context) error {
	booted, err := markBooted(c)
	if err != nil {
		log.Warn().Err(err).Msg("Could not save session")
	}
	boot := !booted || c.QueryParam("boot") == "1"
	return c.JSON(http.StatusOK, map[string]bool{"boot": boot})
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

// handleRobots serves robots.txt from the site root, or a permissive one
// pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	file := filepath.Join(a.Config.Root, "robots.txt")
	if _, err := os.Stat(file); err == nil {
		return c.File(file)
	}
	body := "User-agent: *\nAllow: /\n\nSitemap: " + strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

// handleStyles serves the site's blog.css, falling back to the bundled one.
func (a *App) handleStyles(c echo.Context) error {
	file := filepath.Join(a.Config.Root, blogCSS)
	if _, err := os.Stat(file); err == nil {
		return c.File(file)
	}
	data, err := EmbeddedAssets.ReadFile("embedded/" + blogCSS)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", data)
}

func jsonError(c echo.Context, msg string, err error) error {
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(msg)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, ErrorFragment("Not found."))
	case code >= 500:
		_ = renderError(c, code, "Something went wrong.", err)
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
