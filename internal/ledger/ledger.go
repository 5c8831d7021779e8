// Package ledger records packaging runs in a local SQLite database so a
// team can see what was packaged, when, and whether the suite passed. The
// ledger is observability only: the pipeline never reads it back to make
// decisions.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the database file inside the tool's state directory.
const FileName = "history.db"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	created_at    TEXT NOT NULL,
	team_id       TEXT NOT NULL,
	map_count     INTEGER NOT NULL,
	tests_passed  INTEGER NOT NULL,
	archive_path  TEXT NOT NULL,
	archive_bytes INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Run is one recorded packaging run.
type Run struct {
	ID           string
	CreatedAt    time.Time
	TeamID       string
	MapCount     int
	TestsPassed  bool
	ArchivePath  string
	ArchiveBytes int64
}

// Ledger wraps the history database.
type Ledger struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger in stateDir.
func Open(stateDir string) (*Ledger, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(stateDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history db: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the database handle.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record inserts one run.
func (l *Ledger) Record(ctx context.Context, run Run) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, team_id, map_count, tests_passed, archive_path, archive_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.TeamID,
		run.MapCount,
		boolToInt(run.TestsPassed),
		run.ArchivePath,
		run.ArchiveBytes,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, created_at, team_id, map_count, tests_passed, archive_path, archive_bytes
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			createdAt string
			passed    int
		)
		if err := rows.Scan(&run.ID, &createdAt, &run.TeamID, &run.MapCount,
			&passed, &run.ArchivePath, &run.ArchiveBytes); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp %q: %w", createdAt, err)
		}
		run.TestsPassed = passed != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
