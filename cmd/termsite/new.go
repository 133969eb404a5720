package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jimcircuit/termsite"
	"github.com/jimcircuit/termsite/scaffold"
)

type newCommand struct {
	Slug string   `long:"slug" description:"Post slug (default: derived from the title)"`
	Tags []string `short:"t" long:"tag" description:"Tag for the post (repeatable)"`

	Args struct {
		Title []string `positional-arg-name:"title" required:"1"`
	} `positional-args:"yes"`
}

func (c *newCommand) Execute([]string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	title := strings.Join(c.Args.Title, " ")
	slug := c.Slug
	if slug == "" {
		slug = termsite.Slugify(title)
	}
	if slug == "" {
		return errors.New("cannot derive a slug from the title; pass --slug")
	}
	if !termsite.ValidSlug(slug) {
		return fmt.Errorf("slug %q is not a single path segment", slug)
	}

	path, err := scaffold.NewPost(cfg.PostsDir, scaffold.PostData{
		Title: title,
		Slug:  slug,
		Date:  termsite.Today(time.Now()),
		Tags:  termsite.FilterEmpty(c.Tags),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	if cfg.Source == termsite.SourceIndex {
		fmt.Printf("Add an entry for %q to %s to publish it.\n", slug, cfg.IndexPath)
	}
	return nil
}
