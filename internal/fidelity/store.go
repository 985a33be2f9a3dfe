package fidelity

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current verdict store schema. Bump on schema changes;
// a mismatched database must be cleared with 'showroom cache clear'.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("verdict store schema mismatch")

const (
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store persists real verdicts across sessions, backed by SQLite. Synthetic
// failure verdicts are never written here.
type Store struct {
	db   *sql.DB
	path string
}

// StoredVerdict is one persisted verdict row.
type StoredVerdict struct {
	Verdict
	CachedAt time.Time
}

// OpenStore initializes or connects to the verdict database at path.
func OpenStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("verdict store path must not be empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path reports the database location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'showroom cache clear' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

// Lookup returns the persisted verdict for assetURL if present.
func (s *Store) Lookup(ctx context.Context, assetURL string) (Verdict, bool, error) {
	var (
		score  float64
		report sql.NullString
	)
	err := s.queryRowWithRetry(ctx,
		"SELECT score, report FROM verdicts WHERE asset_url = ?", []any{assetURL},
		&score, &report,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Verdict{}, false, nil
	}
	if err != nil {
		return Verdict{}, false, fmt.Errorf("lookup verdict: %w", err)
	}

	var decoded map[string]any
	if report.Valid && report.String != "" {
		if err := json.Unmarshal([]byte(report.String), &decoded); err != nil {
			return Verdict{}, false, fmt.Errorf("decode stored report: %w", err)
		}
	}
	return newVerdict(assetURL, score, decoded), true, nil
}

// Save writes or replaces the verdict for its asset URL.
func (s *Store) Save(ctx context.Context, verdict Verdict) error {
	if strings.TrimSpace(verdict.AssetURL) == "" {
		return errors.New("verdict asset URL must not be empty")
	}

	var report []byte
	if len(verdict.Report) > 0 {
		encoded, err := json.Marshal(verdict.Report)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		report = encoded
	}

	return s.execWithRetry(ctx,
		`INSERT INTO verdicts (asset_url, score, report, cached_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(asset_url) DO UPDATE SET
		   score = excluded.score,
		   report = excluded.report,
		   cached_at = excluded.cached_at`,
		verdict.AssetURL, verdict.Score, nullableString(report), time.Now().UTC().Format(time.RFC3339),
	)
}

// List returns all persisted verdicts, newest first.
func (s *Store) List(ctx context.Context) ([]StoredVerdict, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT asset_url, score, report, cached_at FROM verdicts ORDER BY cached_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []StoredVerdict
	for rows.Next() {
		var (
			assetURL string
			score    float64
			report   sql.NullString
			cachedAt string
		)
		if err := rows.Scan(&assetURL, &score, &report, &cachedAt); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		var decoded map[string]any
		if report.Valid && report.String != "" {
			if err := json.Unmarshal([]byte(report.String), &decoded); err != nil {
				return nil, fmt.Errorf("decode stored report: %w", err)
			}
		}
		when, _ := time.Parse(time.RFC3339, cachedAt)
		verdicts = append(verdicts, StoredVerdict{
			Verdict:  newVerdict(assetURL, score, decoded),
			CachedAt: when,
		})
	}
	return verdicts, rows.Err()
}

// Clear removes every persisted verdict.
func (s *Store) Clear(ctx context.Context) error {
	return s.execWithRetry(ctx, "DELETE FROM verdicts")
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == 5 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func (s *Store) queryRowWithRetry(ctx context.Context, query string, args []any, dest ...any) error {
	return retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	})
}
