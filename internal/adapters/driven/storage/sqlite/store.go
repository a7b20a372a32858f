package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	sqlite3 "modernc.org/sqlite"

	"github.com/quarrydata/statcan-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driven"
)

// releaseDateLayout is the stored form of release dates.
const releaseDateLayout = "2006-01-02"

func init() {
	// "matches" mirrors the regex UDF the catalog search relies on:
	// matches(pattern, subject) is 1 when subject contains a match for
	// pattern, 0 otherwise. A NULL subject never matches.
	sqlite3.MustRegisterDeterministicScalarFunction("matches", 2, regexpMatches)
}

// patternCache keeps compiled patterns across UDF invocations within a
// query (one compile per pattern, not per row).
var patternCache sync.Map // string -> *regexp.Regexp

func regexpMatches(_ *sqlite3.FunctionContext, args []driver.Value) (driver.Value, error) {
	pattern, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("matches: pattern must be text, got %T", args[0])
	}

	var re *regexp.Regexp
	if cached, ok := patternCache.Load(pattern); ok {
		re = cached.(*regexp.Regexp)
	} else {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("matches: %v", err)
		}
		patternCache.Store(pattern, compiled)
		re = compiled
	}

	switch subject := args[1].(type) {
	case string:
		if re.MatchString(subject) {
			return int64(1), nil
		}
		return int64(0), nil
	case nil:
		return int64(0), nil
	default:
		return int64(0), nil
	}
}

// Ensure Store implements the interface.
var _ driven.CatalogStore = (*Store)(nil)

// Store is the SQLite-backed catalog store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite catalog store at the specified data
// directory. If dataDir is empty, defaults to ~/.statcan/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".statcan", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// WAL mode allows a reading search while a load is in flight.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Append adds entries in order inside one transaction; the sequential
// id comes from the autoincrement primary key.
func (s *Store) Append(ctx context.Context, entries []domain.CatalogEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog_entries (title, data_id, description, release_date, language, batch_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Title, e.DataID, e.Description,
			e.ReleaseDate.Format(releaseDateLayout), e.Language, e.Batch); err != nil {
			return fmt.Errorf("appending catalog entry %q: %w", e.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// List returns every stored entry in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, title, data_id, description, release_date, language, batch_id
		FROM catalog_entries
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Match returns entries whose title or description matches the pattern,
// in insertion order.
func (s *Store) Match(ctx context.Context, pattern string) ([]domain.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, title, data_id, description, release_date, language, batch_id
		FROM catalog_entries
		WHERE matches(?, title) OR matches(?, description)
		ORDER BY seq
	`, pattern, pattern)
	if err != nil {
		if strings.Contains(err.Error(), "matches:") {
			return nil, fmt.Errorf("%w: pattern %q: %v", domain.ErrInvalidInput, pattern, err)
		}
		return nil, fmt.Errorf("querying catalog entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting catalog entries: %w", err)
	}
	return count, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// scanEntries scans catalog entry rows.
func scanEntries(rows *sql.Rows) ([]domain.CatalogEntry, error) {
	var entries []domain.CatalogEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.CatalogEntry
		var release string
		if err := rows.Scan(&e.Seq, &e.Title, &e.DataID, &e.Description,
			&release, &e.Language, &e.Batch); err != nil {
			return nil, fmt.Errorf("scanning catalog entry: %w", err)
		}
		parsed, err := time.Parse(releaseDateLayout, release)
		if err != nil {
			return nil, fmt.Errorf("parsing release date %q: %w", release, err)
		}
		e.ReleaseDate = parsed
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog entries: %w", err)
	}

	return entries, nil
}
