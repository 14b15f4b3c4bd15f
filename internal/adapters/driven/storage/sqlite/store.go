package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/shorttimeseries/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driven"
)

// DBName is the database file name inside the data directory.
const DBName = "entries.db"

// tsLayout is the storage layout of resolved timestamps.
const tsLayout = "2006-01-02T15:04:05"

// Ensure Store implements the interface.
var _ driven.RunStore = (*Store)(nil)

// Store is a SQLite-based run and entry store.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.shorttimeseries.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".shorttimeseries")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBName)

	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

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
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// BeginRun records a new run. An empty ID is replaced with a random UUID
// and a zero CreatedAt with the current time.
func (s *Store) BeginRun(ctx context.Context, run domain.Run) (domain.Run, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, precision, created_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Source, string(run.Precision), run.CreatedAt)
	if err != nil {
		return domain.Run{}, fmt.Errorf("saving run: %w", err)
	}
	return run, nil
}

// AppendEntry stores the entry at position seq of a run.
func (s *Store) AppendEntry(ctx context.Context, runID string, seq int, entry domain.Resolved) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (run_id, seq, ts, label, token, byte_offset)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, seq, entry.Timestamp.String(), entry.Label, entry.Token.Text, entry.Token.Offset)
	if err != nil {
		return fmt.Errorf("saving entry %d of run %s: %w", seq, runID, err)
	}
	return nil
}

// ListRuns returns all runs with their entry spans, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]domain.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.source, r.precision, r.created_at,
			COUNT(e.seq),
			(SELECT ts FROM entries WHERE run_id = r.id ORDER BY seq ASC LIMIT 1),
			(SELECT ts FROM entries WHERE run_id = r.id ORDER BY seq DESC LIMIT 1)
		FROM runs r
		LEFT JOIN entries e ON e.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sum domain.RunSummary
		var precision string
		var createdAt sql.NullTime
		var first, last sql.NullString
		if err := rows.Scan(&sum.ID, &sum.Source, &precision, &createdAt,
			&sum.Entries, &first, &last); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		sum.Precision = domain.Precision(precision)
		if createdAt.Valid {
			sum.CreatedAt = createdAt.Time
		}
		if first.Valid {
			if sum.First, err = parseTimestamp(first.String); err != nil {
				return nil, err
			}
		}
		if last.Valid {
			if sum.Last, err = parseTimestamp(last.String); err != nil {
				return nil, err
			}
		}
		runs = append(runs, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// Entries returns the entries of a run in sequence order.
func (s *Store) Entries(ctx context.Context, runID string) ([]domain.Resolved, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM runs WHERE id = ?", runID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, label, token, byte_offset
		FROM entries WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Resolved //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.Resolved
		var ts string
		if err := rows.Scan(&ts, &entry.Label, &entry.Token.Text, &entry.Token.Offset); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if entry.Timestamp, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return entries, nil
}

func parseTimestamp(s string) (domain.Timestamp, error) {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		return domain.Timestamp{}, fmt.Errorf("parsing stored timestamp %q: %w", s, err)
	}
	return domain.FromTime(t), nil
}
