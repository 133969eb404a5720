package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jimcircuit/termsite"
)

type serveCommand struct {
	Addr       string        `short:"a" long:"addr" env:"TERMSITE_ADDR" description:"Listen address (overrides addr)"`
	Watch      bool          `short:"w" long:"watch" description:"Rebuild when posts or the video index change"`
	Interval   time.Duration `long:"interval" default:"500ms" description:"Polling interval for --watch"`
	NoBuild    bool          `long:"no-build" description:"Serve without building first"`
	NoManifest bool          `long:"no-manifest" description:"Rewrite every page on rebuild"`
}

func (c *serveCommand) Execute([]string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}

	m, err := openManifest(cfg, c.NoManifest)
	if err != nil {
		return err
	}
	var appOpts []termsite.Option
	if m != nil {
		appOpts = append(appOpts, termsite.WithManifest(m))
	}
	app := termsite.New(cfg, appOpts...)
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !c.NoBuild {
		if _, err := app.Rebuild(ctx); err != nil {
			return err
		}
	}
	if c.Watch {
		go func() {
			if err := app.Watch(ctx, c.Interval); err != nil {
				log.Error().Err(err).Msg("Watcher stopped")
			}
		}()
	}

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}
