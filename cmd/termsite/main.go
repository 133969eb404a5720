package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jimcircuit/termsite"
)

// version is set at build time via ldflags.
var version = "dev"

type options struct {
	Config string `short:"c" long:"config" env:"TERMSITE_CONFIG" description:"Site configuration file (YAML)"`
	Debug  bool   `long:"debug" env:"TERMSITE_DEBUG" description:"Enable debug logging"`

	Build   buildCommand   `command:"build" description:"Generate post pages, the post index, sitemap and feed"`
	Serve   serveCommand   `command:"serve" description:"Serve the site and its API for local preview"`
	New     newCommand     `command:"new" description:"Create a new post from the template"`
	Version versionCommand `command:"version" description:"Print the termsite version"`
}

var opts options

func main() {
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		setupLogging(opts.Debug)
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Println(flagsErr.Message)
				return
			}
			fmt.Fprintln(os.Stderr, flagsErr.Message)
			os.Exit(2)
		}
		log.Error().Err(err).Msg("termsite failed")
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// loadConfig reads the configured site file. Without one the defaults apply.
func loadConfig() (termsite.SiteConfig, error) {
	cfg, err := termsite.LoadConfig(opts.Config)
	if err != nil {
		return cfg, err
	}
	log.Debug().Str("file", opts.Config).Str("site", cfg.Name).Msg("Configuration loaded")
	return cfg, nil
}

// openManifest opens the build manifest unless disabled.
func openManifest(cfg termsite.SiteConfig, disabled bool) (*termsite.Manifest, error) {
	if disabled {
		return nil, nil
	}
	m, err := termsite.OpenManifest(cfg.Manifest)
	if err != nil {
		return nil, fmt.Errorf("open manifest %s: %w", cfg.Manifest, err)
	}
	return m, nil
}

type versionCommand struct{}

func (versionCommand) Execute([]string) error {
	fmt.Printf("termsite %s\n", version)
	return nil
}
