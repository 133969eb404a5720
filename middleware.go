package termsite

import (
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

const sessionName = "termsite_session"

var contentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"script-src 'self' 'unsafe-inline' https://www.googletagmanager.com https://www.instagram.com https://www.tiktok.com",
	"style-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com",
	"font-src 'self' https://cdnjs.cloudflare.com",
	"img-src 'self' https: data:",
	"frame-src https://www.youtube-nocookie.com https://www.instagram.com https://www.tiktok.com",
	"connect-src 'self' https://www.google-analytics.com https://*.google-analytics.com",
}, "; ")

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/"+imagesSubdir+"/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: contentSecurityPolicy,
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api/") || path.Ext(p) != ""
		},
	}))

	e.Use(hideDotfiles)
	e.Use(cacheControlMiddleware)
}

// hideDotfiles keeps the manifest directory and other dot-paths under the
// site root from being served.
func hideDotfiles(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		for _, seg := range strings.Split(c.Request().URL.Path, "/") {
			if strings.HasPrefix(seg, ".") {
				return echo.ErrNotFound
			}
		}
		return next(c)
	}
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := c.Request().URL.Path
		switch {
		case strings.HasPrefix(p, "/api/"), strings.HasPrefix(p, "/videos/"):
			c.Response().Header().Set("Cache-Control", "no-cache")
		case strings.HasPrefix(p, "/"+imagesSubdir+"/"), strings.HasPrefix(p, "/assets/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=604800")
		case p == "/sitemap.xml" || p == "/feed.xml" || p == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		}
		return next(c)
	}
}

// newSessionStore returns a cookie store whose cookies last for the browser
// session, matching the lifetime of the boot-animation flag.
func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   0,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// markBooted reports whether the boot animation already played in this
// session and records that it has now.
func markBooted(c echo.Context) (bool, error) {
	sess, err := session.Get(sessionName, c)
	if sess == nil {
		return false, err
	}
	if err != nil {
		// An undecodable cookie yields a fresh session; treat it as new.
		log.Debug().Err(err).Msg("Discarding session cookie")
	}
	if booted, _ := sess.Values["booted"].(bool); booted {
		return true, nil
	}
	sess.Values["booted"] = true
	return false, sess.Save(c.Request(), c.Response())
}
