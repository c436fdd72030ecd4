package baseline

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/objguard/finding"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS baseline (
	fingerprint TEXT PRIMARY KEY,
	rule_id TEXT NOT NULL,
	path TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_baseline_path ON baseline(path);`

// Store keeps accepted finding fingerprints in a SQLite database
type Store struct {
	db *sql.DB
}

// Open opens or creates the baseline database at location
func Open(location string) (*Store, error) {
	if dir := filepath.Dir(location); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create baseline dir %v: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", location)
	if err != nil {
		return nil, fmt.Errorf("failed to open baseline %v: %w", location, err)
	}
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialise baseline %v: %w", location, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record accepts findings; recording a known fingerprint again is a no-op
func (s *Store) Record(ctx context.Context, findings []*finding.Finding) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO baseline (fingerprint, rule_id, path, message)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, f := range findings {
		if _, err = stmt.ExecContext(ctx, f.Fingerprint, f.RuleID, f.Path, f.Message); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record %v: %w", f.Location(), err)
		}
	}
	return tx.Commit()
}

// Filter returns the findings whose fingerprint is not accepted
func (s *Store) Filter(ctx context.Context, findings []*finding.Finding) ([]*finding.Finding, error) {
	accepted, err := s.fingerprints(ctx)
	if err != nil {
		return nil, err
	}
	var result []*finding.Finding
	for _, f := range findings {
		if !accepted[f.Fingerprint] {
			result = append(result, f)
		}
	}
	return result, nil
}

// Count returns the number of accepted findings
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM baseline").Scan(&count)
	return count, err
}

// Prune removes accepted findings of path that are no longer reported
func (s *Store) Prune(ctx context.Context, path string, current []*finding.Finding) (int, error) {
	keep := map[string]bool{}
	for _, f := range current {
		keep[f.Fingerprint] = true
	}
	rows, err := s.db.QueryContext(ctx, "SELECT fingerprint FROM baseline WHERE path = ?", path)
	if err != nil {
		return 0, err
	}
	var stale []string
	for rows.Next() {
		var fingerprint string
		if err = rows.Scan(&fingerprint); err != nil {
			_ = rows.Close()
			return 0, err
		}
		if !keep[fingerprint] {
			stale = append(stale, fingerprint)
		}
	}
	if err = rows.Err(); err != nil {
		_ = rows.Close()
		return 0, err
	}
	if err = rows.Close(); err != nil {
		return 0, err
	}
	for _, fingerprint := range stale {
		if _, err = s.db.ExecContext(ctx, "DELETE FROM baseline WHERE fingerprint = ?", fingerprint); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

func (s *Store) fingerprints(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT fingerprint FROM baseline")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := map[string]bool{}
	for rows.Next() {
		var fingerprint string
		if err = rows.Scan(&fingerprint); err != nil {
			return nil, err
		}
		result[fingerprint] = true
	}
	return result, rows.Err()
}
