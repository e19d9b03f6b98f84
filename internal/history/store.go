package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// Record is one submitted extrinsic.
type Record struct {
	ExtrinsicHash string `json:"extrinsic_hash"`
	Command       string `json:"command"`
	NodeURL       string `json:"node_url"`
	Signer        string `json:"signer"`
	SubmittedAt   string `json:"submitted_at"`
}

// Store keeps a local log of submitted extrinsics in sqlite, guarded by
// a file lock against concurrent CLI invocations.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
}

func Open(path, lockPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history lock directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history sqlite: %w", err)
	}

	queries := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS submissions (
			extrinsic_hash TEXT PRIMARY KEY,
			command TEXT NOT NULL,
			node_url TEXT NOT NULL,
			signer TEXT NOT NULL,
			submitted_at INTEGER NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_submissions_time ON submissions(submitted_at DESC);",
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init history schema: %w", err)
		}
	}
	return &Store{db: db, lock: flock.New(lockPath)}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Append(rec Record) error {
	if strings.TrimSpace(rec.ExtrinsicHash) == "" {
		return fmt.Errorf("append submission: missing extrinsic hash")
	}
	locked, err := s.lock.TryLockContext(context.Background(), 5*time.Second)
	if err != nil {
		return fmt.Errorf("lock history store: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock history store: timeout acquiring lock")
	}
	defer func() { _ = s.lock.Unlock() }()

	submittedUnix := time.Now().UTC().Unix()
	if t, err := time.Parse(time.RFC3339, rec.SubmittedAt); err == nil {
		submittedUnix = t.UTC().Unix()
	}

	_, err = s.db.Exec(`
		INSERT INTO submissions (extrinsic_hash, command, node_url, signer, submitted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(extrinsic_hash) DO UPDATE SET
			command=excluded.command,
			node_url=excluded.node_url,
			signer=excluded.signer,
			submitted_at=excluded.submitted_at
	`, rec.ExtrinsicHash, rec.Command, rec.NodeURL, rec.Signer, submittedUnix)
	if err != nil {
		return fmt.Errorf("append submission: %w", err)
	}
	return nil
}

func (s *Store) List(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT extrinsic_hash, command, node_url, signer, submitted_at
		FROM submissions ORDER BY submitted_at DESC, extrinsic_hash LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var submittedUnix int64
		if err := rows.Scan(&rec.ExtrinsicHash, &rec.Command, &rec.NodeURL, &rec.Signer, &submittedUnix); err != nil {
			return nil, fmt.Errorf("scan submission row: %w", err)
		}
		rec.SubmittedAt = time.Unix(submittedUnix, 0).UTC().Format(time.RFC3339)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submission rows: %w", err)
	}
	return records, nil
}
