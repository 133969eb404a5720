// Package scaffold creates new post files from embedded templates.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jimcircuit/termsite"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// ErrExists is returned when the post file is already there.
var ErrExists = errors.New("post already exists")

// PostData holds the template variables for a new post.
type PostData struct {
	Title string
	Slug  string
	Date  string
	Tags  []string
}

var funcs = template.FuncMap{"join": strings.Join}

// RenderPost executes the post template for data.
func RenderPost(data PostData) ([]byte, error) {
	content, err := Templates.ReadFile("templates/post.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read post template: %w", err)
	}
	tmpl, err := template.New("post.md").Funcs(funcs).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse post template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute post template: %w", err)
	}
	return buf.Bytes(), nil
}

// NewPost writes dir/<slug>.md for data and returns its path. An existing
// file is never overwritten.
func NewPost(dir string, data PostData) (string, error) {
	if data.Slug == "" {
		return "", fmt.Errorf("post %q has no slug", data.Title)
	}
	if !termsite.ValidSlug(data.Slug) {
		return "", fmt.Errorf("slug %q is not a single path segment", data.Slug)
	}
	content, err := RenderPost(data)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create posts dir: %w", err)
	}
	path := filepath.Join(dir, data.Slug+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
