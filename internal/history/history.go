// Package history records practice sessions in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Session is one draw: which challenges were shown and how long the user took.
type Session struct {
	ID        uuid.UUID     `json:"id"`
	Preset    string        `json:"preset"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed_ns"`

	// Slugs are in the order the challenges were printed.
	Slugs []string `json:"slugs"`
}

// Store persists sessions.
type Store interface {
	Record(ctx context.Context, s Session) error
	Recent(ctx context.Context, n int) ([]Session, error)
}

// SQLiteStore is a Store backed by github.com/mattn/go-sqlite3.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (creating if needed) the database at path and runs migrations.
// path may be ":memory:".
func Open(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("history database ready", zap.String("path", path))
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// Migrate creates the schema if it does not exist.
func Migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			preset TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_challenges (
			session_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			slug TEXT NOT NULL,
			PRIMARY KEY (session_id, position),
			FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("failed to run history migration: %w", err)
		}
	}
	return nil
}

// Record stores s. A zero ID is replaced with a new random one.
func (s *SQLiteStore) Record(ctx context.Context, sess Session) error {
	start := time.Now()
	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, preset, started_at, elapsed_ns) VALUES (?, ?, ?, ?)`,
		sess.ID.String(), sess.Preset, sess.StartedAt.UnixNano(), int64(sess.Elapsed),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for i, slug := range sess.Slugs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO session_challenges (session_id, position, slug) VALUES (?, ?, ?)`,
			sess.ID.String(), i, slug,
		)
		if err != nil {
			return fmt.Errorf("insert session challenge %q: %w", slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}

	s.logger.Debug("session recorded",
		zap.String("id", sess.ID.String()),
		zap.Int("challenges", len(sess.Slugs)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Recent returns up to n sessions, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]Session, error) {
	if n <= 0 {
		return []Session{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.preset, s.started_at, s.elapsed_ns, c.slug
		FROM sessions s
		LEFT JOIN session_challenges c ON c.session_id = s.id
		WHERE s.id IN (SELECT id FROM sessions ORDER BY started_at DESC LIMIT ?)
		ORDER BY s.started_at DESC, s.id, c.position
	`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	out := []Session{}
	for rows.Next() {
		var (
			id        string
			preset    string
			startedAt int64
			elapsed   int64
			slug      sql.NullString
		)
		if err := rows.Scan(&id, &preset, &startedAt, &elapsed, &slug); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}

		if len(out) == 0 || out[len(out)-1].ID.String() != id {
			sid, err := uuid.Parse(id)
			if err != nil {
				return nil, fmt.Errorf("parse session id %q: %w", id, err)
			}
			out = append(out, Session{
				ID:        sid,
				Preset:    preset,
				StartedAt: time.Unix(0, startedAt),
				Elapsed:   time.Duration(elapsed),
				Slugs:     []string{},
			})
		}
		if slug.Valid {
			last := &out[len(out)-1]
			last.Slugs = append(last.Slugs, slug.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}
