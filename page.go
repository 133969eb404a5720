package termsite

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/jimcircuit/termsite/markdown"
	"github.com/jimcircuit/termsite/media"
)

const fontAwesomeCSS = "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css"

// Meta returns the head metadata of the post page for p.
func (p Post) Meta(cfg SiteConfig) PageMeta {
	return PageMeta{
		Title:       p.Title + " | " + cfg.Name,
		Description: p.Description(cfg),
		URL:         PostURL(cfg, p.Slug),
		OGType:      "article",
	}
}

// PostPage renders the standalone HTML document for p. p.HTML must already
// hold the rendered body. Asset links are relative so the page works from
// <output>/<slug>/index.html as well as from /blog/<slug>/.
func PostPage(cfg SiteConfig, p Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pw := &pageWriter{w: w}
		meta := p.Meta(cfg)
		esc, attr := markdown.Escape, markdown.EscapeAttr

		pw.printf("<!doctype html>\n<html lang=\"en\">\n  <head>\n")
		pw.printf("    <meta charset=\"UTF-8\" />\n")
		pw.printf("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n\n")
		pw.printf("    <title>%s</title>\n", esc(meta.Title))
		pw.printf("    <meta name=\"description\" content=\"%s\" />\n", attr(meta.Description))
		pw.printf("    <link rel=\"canonical\" href=\"%s\" />\n\n", attr(meta.URL))

		pw.printf("    <meta property=\"og:type\" content=\"%s\" />\n", meta.OGType)
		pw.printf("    <meta property=\"og:title\" content=\"%s\" />\n", attr(meta.Title))
		pw.printf("    <meta property=\"og:description\" content=\"%s\" />\n", attr(meta.Description))
		pw.printf("    <meta property=\"og:url\" content=\"%s\" />\n\n", attr(meta.URL))

		pw.printf("    <meta name=\"twitter:card\" content=\"summary_large_image\" />\n")
		pw.printf("    <meta name=\"twitter:title\" content=\"%s\" />\n", attr(meta.Title))
		pw.printf("    <meta name=\"twitter:description\" content=\"%s\" />\n\n", attr(meta.Description))

		if cfg.GoogleTagID != "" {
			id := attr(cfg.GoogleTagID)
			pw.printf("    <script async src=\"https://www.googletagmanager.com/gtag/js?id=%s\"></script>\n", id)
			pw.printf("    <script>\n")
			pw.printf("      window.dataLayer = window.dataLayer || [];\n")
			pw.printf("      function gtag() { dataLayer.push(arguments); }\n")
			pw.printf("      gtag(\"js\", new Date());\n")
			pw.printf("      gtag(\"config\", \"%s\");\n", id)
			pw.printf("    </script>\n\n")
		}

		pw.printf("    <link rel=\"icon\" href=\"../../assets/jimcircuit-logo.svg\" type=\"image/svg+xml\" />\n")
		pw.printf("    <link rel=\"stylesheet\" href=\"../../styles.css\" />\n")
		pw.printf("    <link rel=\"stylesheet\" href=\"../../blog.css\" />\n")
		pw.printf("    <link rel=\"stylesheet\" href=\"%s\" />\n\n", fontAwesomeCSS)

		pw.printf("    <script type=\"application/ld+json\">\n%s\n    </script>\n", BlogPostingJsonLD(p, cfg))
		pw.printf("    <script type=\"application/ld+json\">\n%s\n    </script>\n", WebsiteJsonLD(cfg))
		pw.printf("  </head>\n  <body>\n    <div class=\"blog-page\">\n")

		pw.printf("      <header class=\"blog-page-header\">\n")
		pw.printf("        <a class=\"blog-page-brand\" href=\"../../\">\n")
		pw.printf("          <img src=\"../../assets/jimcircuit-logo.svg\" alt=\"%s\" />\n", attr(cfg.Name))
		pw.printf("          <span>%s</span>\n        </a>\n", esc(cfg.Name))
		pw.printf("        <nav class=\"blog-page-nav\">\n")
		for _, s := range []struct{ href, label string }{
			{"home", "Home"}, {"videos", "Videos"}, {"blog", "Blog"}, {"about", "About"},
		} {
			pw.printf("          <a href=\"../../#%s\">%s</a>\n", s.href, s.label)
		}
		pw.printf("        </nav>\n      </header>\n\n")

		pw.printf("      <article class=\"blog-page-content\">\n")
		pw.printf("        <h1 class=\"blog-page-title\">%s</h1>\n", esc(p.Title))
		pw.printf("        <div class=\"blog-page-meta\">\U0001F4C5 %s</div>\n\n", esc(p.Date))
		if embed := media.Embed(p.VideoURL); embed != "" {
			pw.printf("%s\n\n", embed)
		}
		pw.printf("        <div class=\"blog-page-body\">\n%s\n        </div>\n\n", p.HTML)
		pw.printf("        <a class=\"blog-page-back\" href=\"../../#blog\">← Back to all posts</a>\n")
		pw.printf("      </article>\n    </div>\n\n")

		if scripts := media.Scripts(p.VideoURL); scripts != "" {
			pw.printf("%s", scripts)
		}
		pw.printf("  </body>\n</html>\n")
		return pw.err
	})
}

// ArticleFragment renders the post as the <article> fragment the terminal
// UI swaps into its blog section.
func ArticleFragment(p Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pw := &pageWriter{w: w}
		pw.printf("<article class=\"blog-post\" data-slug=\"%s\">\n", markdown.EscapeAttr(p.Slug))
		pw.printf("<h2 class=\"blog-post-title\">%s</h2>\n", markdown.Escape(p.Title))
		pw.printf("<div class=\"blog-post-meta\">\U0001F4C5 %s</div>\n", markdown.Escape(p.Date))
		if embed := media.Embed(p.VideoURL); embed != "" {
			pw.printf("%s\n", embed)
		}
		pw.printf("<div class=\"blog-post-body\">\n%s\n</div>\n", p.HTML)
		pw.printf("%s</article>\n", media.Scripts(p.VideoURL))
		return pw.err
	})
}

// ErrorFragment renders the inline error shown in place of content that
// failed to load.
func ErrorFragment(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<div class=\"blog-error\" role=\"alert\">%s</div>\n", markdown.Escape(msg))
		return err
	})
}

// pageWriter keeps the first write error so templates can write
// unconditionally and check once.
type pageWriter struct {
	w   io.Writer
	err error
}

func (pw *pageWriter) printf(format string, args ...any) {
	if pw.err != nil {
		return
	}
	_, pw.err = fmt.Fprintf(pw.w, format, args...)
}
