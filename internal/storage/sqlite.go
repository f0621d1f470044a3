package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database holding the lookup log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database in dataDir and runs pending migrations.
// Pass ":memory:" as dataDir for an in-memory database (used by tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "ghfolio.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	// Set busy timeout so concurrent access waits briefly instead of failing immediately.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate reads embedded SQL migration files and applies any that haven't been run yet.
func (s *Store) migrate() error {
	// Ensure schema_version table exists (bootstrap).
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort by filename to guarantee ascending order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return err
		}

		// Check if already applied.
		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}

		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

func parseMigrationVersion(filename string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, fmt.Errorf("parsing migration version from %q: %w", filename, err)
	}
	return version, nil
}

// AppliedMigrations returns the list of applied migration versions in ascending order.
func (s *Store) AppliedMigrations() ([]int, error) {
	rows, err := s.db.Query("SELECT version FROM schema_version ORDER BY version ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// --- Lookups ---

// SaveLookup records one portfolio lookup.
func (s *Store) SaveLookup(l Lookup) error {
	_, err := s.db.Exec(`
		INSERT INTO lookups (id, handle, outcome, has_config, duration_ms, looked_up_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Handle, l.Outcome, l.HasConfig, l.DurationMs, l.LookedUpAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetLookup returns a single lookup by ID.
func (s *Store) GetLookup(id string) (Lookup, error) {
	row := s.db.QueryRow(`
		SELECT id, handle, outcome, has_config, duration_ms, looked_up_at
		FROM lookups WHERE id = ?`, id,
	)
	l, err := scanLookup(row)
	if err == sql.ErrNoRows {
		return Lookup{}, ErrNotFound
	}
	return l, err
}

// ListLookups returns lookups newest first.
func (s *Store) ListLookups(limit, offset int) ([]Lookup, error) {
	rows, err := s.db.Query(`
		SELECT id, handle, outcome, has_config, duration_ms, looked_up_at
		FROM lookups ORDER BY looked_up_at DESC, rowid DESC LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Lookup
	for rows.Next() {
		l, err := scanLookup(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

// RecentHandles returns up to limit distinct handles that rendered
// successfully, most recently viewed first. Handles are compared
// case-insensitively; the most recent spelling wins.
func (s *Store) RecentHandles(limit int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT handle, MAX(rowid) AS last
		FROM lookups WHERE outcome = ?
		GROUP BY lower(handle)
		ORDER BY last DESC LIMIT ?`, OutcomeOK, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var handles []string
	for rows.Next() {
		var h string
		var last int64
		if err := rows.Scan(&h, &last); err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, rows.Err()
}

// DeleteLookupsBefore removes lookups older than cutoff and reports how many
// rows were deleted.
func (s *Store) DeleteLookupsBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM lookups WHERE looked_up_at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLookup(r rowScanner) (Lookup, error) {
	var l Lookup
	var lookedUpAt string
	if err := r.Scan(&l.ID, &l.Handle, &l.Outcome, &l.HasConfig, &l.DurationMs, &lookedUpAt); err != nil {
		return Lookup{}, err
	}
	t, err := time.Parse(time.RFC3339, lookedUpAt)
	if err != nil {
		return Lookup{}, fmt.Errorf("parsing looked_up_at: %w", err)
	}
	l.LookedUpAt = t
	return l, nil
}
