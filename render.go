package termsite

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// renderError logs err and answers with a visible inline error fragment in
// place of the content that failed to load.
func renderError(c echo.Context, code int, msg string, err error) error {
	log.Error().Err(err).
		Str("path", c.Request().URL.Path).
		Int("status", code).
		Msg(msg)
	return RenderStatus(c, code, ErrorFragment(msg))
}
