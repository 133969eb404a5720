package termsite

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "JimCircuit" || cfg.URL != "https://jimcircuit.net" {
		t.Errorf("site = %q %q", cfg.Name, cfg.URL)
	}
	if cfg.Author != cfg.Name {
		t.Errorf("Author = %q, want it to default to Name", cfg.Author)
	}
	if cfg.Source != SourceFrontMatter || cfg.PostsDir != "posts" || cfg.OutputDir != "blog" {
		t.Errorf("paths = %q %q %q", cfg.Source, cfg.PostsDir, cfg.OutputDir)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	writeFile(t, path, `name: Bench Notes
url: https://bench.example
description: Notes from the bench.
source: index
indexPath: content/posts.json
strip:
  leadingTitle: true
  videoSection: true
googleTagId: G-TEST
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Name != "Bench Notes" || cfg.Author != "Bench Notes" {
		t.Errorf("Name/Author = %q/%q", cfg.Name, cfg.Author)
	}
	if cfg.Source != SourceIndex || cfg.IndexPath != "content/posts.json" {
		t.Errorf("source = %q %q", cfg.Source, cfg.IndexPath)
	}
	if !cfg.Strip.LeadingTitle || !cfg.Strip.VideoSection {
		t.Errorf("Strip = %+v", cfg.Strip)
	}
	if cfg.GoogleTagID != "G-TEST" {
		t.Errorf("GoogleTagID = %q", cfg.GoogleTagID)
	}
	if cfg.OutputDir != "blog" {
		t.Errorf("OutputDir default = %q", cfg.OutputDir)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "source: rss\n")
	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "name: [unclosed\n")

	for _, path := range []string{bad, broken, filepath.Join(dir, "missing.yaml")} {
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("LoadConfig(%s) should fail", filepath.Base(path))
		}
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults", cfg)
	}
}
