package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jimcircuit/termsite/frontmatter"
)

func TestRenderPost(t *testing.T) {
	out, err := RenderPost(PostData{
		Title: "Soldering 101",
		Slug:  "soldering-101",
		Date:  "2024-05-01",
		Tags:  []string{"hardware", "basics"},
	})
	if err != nil {
		t.Fatalf("RenderPost() error = %v", err)
	}
	fm, body := frontmatter.Parse(string(out))

	tests := []struct {
		key  string
		want string
	}{
		{"title", "Soldering 101"},
		{"slug", "soldering-101"},
		{"date", "2024-05-01"},
		{"summary", ""},
		{"tags", "[hardware, basics]"},
	}
	for _, tt := range tests {
		if got := fm.String(tt.key); got != tt.want {
			t.Errorf("front matter %s = %q, want %q", tt.key, got, tt.want)
		}
	}
	if strings.TrimSpace(body) != "Write something here." {
		t.Errorf("body = %q, want only the placeholder line", body)
	}
	if strings.Contains(body, "# ") {
		t.Errorf("body = %q, the page already renders the title heading", body)
	}
}

func TestNewPost(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "posts")
	data := PostData{Title: "Hello", Slug: "hello", Date: "2024-01-01"}

	path, err := NewPost(dir, data)
	if err != nil {
		t.Fatalf("NewPost() error = %v", err)
	}
	if want := filepath.Join(dir, "hello.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("post not written: %v", err)
	}

	if err := os.WriteFile(path, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPost(dir, data); !errors.Is(err, ErrExists) {
		t.Errorf("second NewPost() error = %v, want ErrExists", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "mine" {
		t.Errorf("existing post overwritten: %q", got)
	}
}

func TestNewPostRequiresSlug(t *testing.T) {
	if _, err := NewPost(t.TempDir(), PostData{Title: "!!!"}); err == nil {
		t.Error("NewPost() without slug should fail")
	}
}

func TestNewPostRejectsPathSlugs(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "posts")
	for _, slug := range []string{"../x", "a/b", `a\b`, ".."} {
		if _, err := NewPost(dir, PostData{Title: "X", Slug: slug}); err == nil {
			t.Errorf("NewPost(slug %q) should fail", slug)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "x.md")); !os.IsNotExist(err) {
		t.Errorf("file written outside the posts dir: %v", err)
	}
}
