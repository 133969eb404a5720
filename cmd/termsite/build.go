package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/jimcircuit/termsite"
)

type buildCommand struct {
	Output     string `short:"o" long:"output" description:"Directory for generated post pages (overrides outputDir)"`
	Source     string `long:"source" choice:"frontmatter" choice:"index" description:"Where post metadata comes from (overrides source)"`
	NoManifest bool   `long:"no-manifest" description:"Rewrite every page instead of skipping unchanged ones"`
}

func (c *buildCommand) Execute([]string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.Output != "" {
		cfg.OutputDir = c.Output
	}
	if c.Source != "" {
		cfg.Source = c.Source
	}

	m, err := openManifest(cfg, c.NoManifest)
	if err != nil {
		return err
	}
	if m != nil {
		defer m.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := termsite.NewBuilder(cfg, m).Build(ctx)
	if err != nil {
		return err
	}
	if len(res.Stale) > 0 {
		log.Warn().Strs("slugs", res.Stale).Msg("Remove the pages of deleted posts by hand")
	}
	return nil
}
