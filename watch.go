package termsite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/radovskyb/watcher"
	"github.com/rs/zerolog/log"
)

// watchPattern matches the file names whose changes trigger a rebuild:
// markdown posts, the video index and, for the index source, the post index.
// The post index is left out for front matter sites because every build
// rewrites it.
func (a *App) watchPattern() *regexp.Regexp {
	pattern := `^.*\.md$|^` + regexp.QuoteMeta(filepath.Base(a.Config.VideosPath)) + `$`
	if a.Config.Source == SourceIndex {
		pattern += `|^` + regexp.QuoteMeta(filepath.Base(a.Config.IndexPath)) + `$`
	}
	return regexp.MustCompile(pattern)
}

// watchDirs returns the directories watched recursively. The post index is
// opened relative to the working directory, like the posts dir.
func (a *App) watchDirs() []string {
	dirs := []string{a.Config.PostsDir}
	if a.Config.Source == SourceIndex {
		if dir := filepath.Dir(a.Config.IndexPath); dir != filepath.Clean(a.Config.PostsDir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Watch rebuilds the site and invalidates the index cache whenever a post,
// the video index or the post index changes. It blocks until ctx is done.
func (a *App) Watch(ctx context.Context, interval time.Duration) error {
	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename, watcher.Move)
	w.AddFilterHook(watcher.RegexFilterHook(a.watchPattern(), false))

	dirs := a.watchDirs()
	for _, dir := range dirs {
		if err := w.AddRecursive(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	if _, err := os.Stat(a.Config.VideosPath); err == nil {
		if err := w.Add(a.Config.VideosPath); err != nil {
			return fmt.Errorf("watch %s: %w", a.Config.VideosPath, err)
		}
	}

	go func() {
		for {
			select {
			case event := <-w.Event:
				log.Info().Str("file", event.Path).Str("op", event.Op.String()).Msg("Change detected")
				if _, err := a.Rebuild(ctx); err != nil {
					log.Error().Err(err).Msg("Rebuild failed")
				}
			case err := <-w.Error:
				log.Error().Err(err).Msg("Watcher error")
			case <-w.Closed:
				return
			case <-ctx.Done():
				w.Close()
				return
			}
		}
	}()

	errc := make(chan error, 1)
	go func() { errc <- w.Start(interval) }()
	log.Debug().Strs("dirs", dirs).Msg("Watching for changes")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return nil
	}
}
