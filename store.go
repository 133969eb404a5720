package termsite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Manifest is the SQLite build manifest. It records the content hash of
// every page written so unchanged pages are not rewritten, and remembers
// slugs so pages of removed posts can be reported.
type Manifest struct {
	db *sql.DB
}

// PageRecord is one row of the manifest.
type PageRecord struct {
	Slug    string
	Title   string
	Date    string
	Hash    string
	BuiltAt time.Time
}

// OpenManifest opens (or creates) the manifest database at path, ensures its
// directory exists, and runs schema migrations.
func OpenManifest(path string) (*Manifest, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create manifest dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	// WAL lets the preview server read while a rebuild writes; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure manifest: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	m := &Manifest{db: db}
	if err := m.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func (m *Manifest) migrate() error {
	driver, err := sqlite.WithInstance(m.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source: %w", err)
	}
	mg, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (m *Manifest) Close() error {
	return m.db.Close()
}

// Hash returns the recorded hash for slug, or "" when the page was never
// built.
func (m *Manifest) Hash(slug string) (string, error) {
	var hash string
	err := m.db.QueryRow(`SELECT hash FROM pages WHERE slug = ?`, slug).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query page hash: %w", err)
	}
	return hash, nil
}

// Record stores the hash of the page just written for p.
func (m *Manifest) Record(p Post, hash string, builtAt time.Time) error {
	_, err := m.db.Exec(`
INSERT INTO pages (slug, title, date, hash, built_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET title=excluded.title, date=excluded.date, hash=excluded.hash, built_at=excluded.built_at
`, p.Slug, p.Title, p.Date, hash, builtAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record page %s: %w", p.Slug, err)
	}
	return nil
}

// Pages returns every recorded page ordered by slug.
func (m *Manifest) Pages() ([]PageRecord, error) {
	rows, err := m.db.Query(`SELECT slug, title, date, hash, built_at FROM pages ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()
	var out []PageRecord
	for rows.Next() {
		var r PageRecord
		var builtAt string
		if err := rows.Scan(&r.Slug, &r.Title, &r.Date, &r.Hash, &builtAt); err != nil {
			return nil, err
		}
		r.BuiltAt, _ = time.Parse(time.RFC3339, builtAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Forget removes slugs from the manifest and returns them sorted.
func (m *Manifest) Forget(slugs []string) ([]string, error) {
	sort.Strings(slugs)
	for _, s := range slugs {
		if _, err := m.db.Exec(`DELETE FROM pages WHERE slug = ?`, s); err != nil {
			return nil, fmt.Errorf("forget page %s: %w", s, err)
		}
	}
	return slugs, nil
}

// Stale returns the recorded slugs that are not in current.
func (m *Manifest) Stale(current []Post) ([]string, error) {
	pages, err := m.Pages()
	if err != nil {
		return nil, err
	}
	live := make(map[string]bool, len(current))
	for _, p := range current {
		live[p.Slug] = true
	}
	var stale []string
	for _, r := range pages {
		if !live[r.Slug] {
			stale = append(stale, r.Slug)
		}
	}
	return stale, nil
}

// LogBuild appends a summary row for a finished build.
func (m *Manifest) LogBuild(started time.Time, res BuildResult) error {
	_, err := m.db.Exec(`INSERT INTO builds (started_at, posts, written, unchanged) VALUES (?, ?, ?, ?)`,
		started.UTC().Format(time.RFC3339), len(res.Posts), res.Written, res.Unchanged)
	if err != nil {
		return fmt.Errorf("log build: %w", err)
	}
	return nil
}

// BuildCount returns the number of builds logged so far.
func (m *Manifest) BuildCount() (int, error) {
	var n int
	if err := m.db.QueryRow(`SELECT COUNT(*) FROM builds`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count builds: %w", err)
	}
	return n, nil
}
