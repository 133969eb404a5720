package termsite

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Go & Echo: a tour!  ", "go-echo-a-tour"},
		{"Café Crème", "cafe-creme"},
		{"already-a-slug", "already-a-slug"},
		{"!!!", ""},
		{"Version 2.0", "version-2-0"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://jimcircuit.net", nil, "https://jimcircuit.net/"},
		{"https://jimcircuit.net/", nil, "https://jimcircuit.net/"},
		{"https://jimcircuit.net", []string{"blog", "hello"}, "https://jimcircuit.net/blog/hello/"},
		{"https://example.com/site/", []string{"blog", "x"}, "https://example.com/site/blog/x/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestPostURL(t *testing.T) {
	cfg := DefaultConfig()
	if got := PostURL(cfg, "hello"); got != "https://jimcircuit.net/blog/hello/" {
		t.Errorf("PostURL() = %q", got)
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{" a ", "", "  ", "b"})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("FilterEmpty() = %v", got)
	}
	if got := FilterEmpty(nil); got == nil || len(got) != 0 {
		t.Errorf("FilterEmpty(nil) = %#v, want empty non-nil", got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"go, web", []string{"go", "web"}},
		{"[go, web]", []string{"go", "web"}},
		{"single", []string{"single"}},
		{"a,,b, ", []string{"a", "b"}},
		{"", []string{}},
		{"[]", []string{}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestPostDescription(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Description = "Electronics and code."

	tests := []struct {
		name string
		post Post
		cfg  SiteConfig
		want string
	}{
		{"summary wins", Post{Title: "T", Summary: "S", Keywords: []string{"k"}}, cfg, "S"},
		{"keywords", Post{Title: "T", Keywords: []string{"a", "b"}, Tags: []string{"t"}}, cfg, "Learn: a, b."},
		{"tags fallback", Post{Title: "T", Tags: []string{"x"}}, cfg, "Learn: x."},
		{
			"at most six",
			Post{Title: "T", Keywords: []string{"1", "2", "3", "4", "5", "6", "7"}},
			cfg,
			"Learn: 1, 2, 3, 4, 5, 6.",
		},
		{"site description", Post{Title: "T"}, cfg, "Electronics and code."},
		{"title last", Post{Title: "T"}, DefaultConfig(), "T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.Description(tt.cfg); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := DefaultConfig()
	p := Post{
		Slug:     "hello",
		Title:    "Hello </script>",
		Date:     "2024-01-15",
		Summary:  "Sum",
		Keywords: []string{"go", "web"},
	}
	out := BlogPostingJsonLD(p, cfg)

	if strings.Contains(out, "</script>") {
		t.Error("JSON-LD must not contain a literal </script>")
	}
	if !strings.Contains(out, "\n  \"@type\": \"BlogPosting\"") {
		t.Errorf("JSON-LD not indented with two spaces:\n%s", out)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	checks := map[string]string{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      "Hello </script>",
		"datePublished": "2024-01-15",
		"description":   "Sum",
		"url":           "https://jimcircuit.net/blog/hello/",
		"keywords":      "go, web",
	}
	for k, want := range checks {
		if doc[k] != want {
			t.Errorf("%s = %v, want %q", k, doc[k], want)
		}
	}
	author, _ := doc["author"].(map[string]any)
	if author["name"] != "JimCircuit" || author["@type"] != "Person" {
		t.Errorf("author = %v", author)
	}
	publisher, _ := doc["publisher"].(map[string]any)
	if publisher["url"] != "https://jimcircuit.net" {
		t.Errorf("publisher = %v", publisher)
	}
}

func TestBlogPostingJsonLDWithoutKeywords(t *testing.T) {
	out := BlogPostingJsonLD(Post{Slug: "a", Title: "A", Tags: []string{"t"}}, DefaultConfig())
	if strings.Contains(out, `"keywords"`) {
		t.Errorf("keywords should be omitted without explicit keywords:\n%s", out)
	}
	if !strings.Contains(out, `"description": "Learn: t."`) {
		t.Errorf("description should fall back to tags:\n%s", out)
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(WebsiteJsonLD(DefaultConfig())), &doc); err != nil {
		t.Fatal(err)
	}
	if doc["@type"] != "WebSite" || doc["url"] != "https://jimcircuit.net/" {
		t.Errorf("doc = %v", doc)
	}
	if _, ok := doc["description"]; ok {
		t.Error("empty description should be omitted")
	}
}
