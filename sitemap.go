package termsite

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
	Priority string `xml:"priority,omitempty"`
}

// WriteSitemap writes the sitemap: the site root with lastmod today and
// priority 1.0, then one entry per post with its own date and priority 0.8.
func WriteSitemap(w io.Writer, cfg SiteConfig, posts []Post, today string) error {
	urls := []sitemapURL{
		{Loc: BuildURL(cfg.URL), LastMod: today, Priority: "1.0"},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:      PostURL(cfg, p.Slug),
			LastMod:  p.Date,
			Priority: "0.8",
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(sitemap); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (a *App) renderSitemap(c echo.Context, posts []Post) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemap(c.Response(), a.Config, posts, Today(time.Now()))
}
