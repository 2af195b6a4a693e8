// Package store provides namespaced, crash-tolerant durable storage for
// all learner state: the session aggregate, per-visualization lab state,
// per-topic chat transcripts, the generated-content cache, content
// overrides, and the in-flight quiz attempt.
//
// Namespaces are isolated rows of a single key/value table, so a corrupt
// or evicted entry in one namespace cannot break another. Reads never
// fail: any storage error or malformed blob degrades to "as if absent"
// and is logged. Writes return errors in the usual Go way, but callers
// treat the cache namespaces as fire-and-forget.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Storage namespaces. Each maps to a distinct keyspace in the kv table.
const (
	nsSession  = "session"
	nsLab      = "lab"
	nsChat     = "chat"
	nsQuiz     = "quiz"
	nsOverride = "override"
	nsGenCache = "gencache"
)

// singletonKey keys namespaces that hold exactly one record.
const singletonKey = "current"

// audioCacheSize bounds the session-scoped audio cache. The LRU evicts the
// least recently used clip when full, so a long narration session can never
// exhaust memory.
const audioCacheSize = 128

// Store holds the SQLite handle and the in-process audio cache.
type Store struct {
	db    *sql.DB
	log   *zap.Logger
	audio *lru.Cache[string, string]

	// OnLabStateChange, when set, is invoked after every successful lab
	// state write so independent consumers can react without importing
	// the visualization code.
	OnLabStateChange func(visualID string, state json.RawMessage)
}

// Open creates a Store connected to the SQLite database at dsn. It applies
// recommended pragmas and creates the kv table when missing. A nil logger
// defaults to a no-op logger.
func Open(dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			namespace  TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at INTEGER NOT NULL DEFAULT (unixepoch()),
			PRIMARY KEY (namespace, key)
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	audio, err := lru.New[string, string](audioCacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create audio cache: %w", err)
	}

	return &Store{db: db, log: logger, audio: audio}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// get reads one value. Any error degrades to absent.
func (s *Store) get(namespace, key string) (string, bool) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM kv WHERE namespace = ? AND key = ?",
		namespace, key,
	).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			s.log.Warn("store read failed; treating as absent",
				zap.String("namespace", namespace),
				zap.String("key", key),
				zap.Error(err))
		}
		return "", false
	}
	return value, true
}

// put upserts one value in a single write.
func (s *Store) put(namespace, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (namespace, key, value, updated_at)
		VALUES (?, ?, ?, unixepoch())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace, key, value)
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", namespace, key, err)
	}
	return nil
}

// del removes one value. A missing row is not an error.
func (s *Store) del(namespace, key string) error {
	if _, err := s.db.Exec(
		"DELETE FROM kv WHERE namespace = ? AND key = ?", namespace, key,
	); err != nil {
		return fmt.Errorf("delete %s/%s: %w", namespace, key, err)
	}
	return nil
}

// getJSON reads and unmarshals one value into out. A malformed blob
// degrades to absent, same as a missing row.
func (s *Store) getJSON(namespace, key string, out any) bool {
	raw, ok := s.get(namespace, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn("store blob corrupt; treating as absent",
			zap.String("namespace", namespace),
			zap.String("key", key),
			zap.Error(err))
		return false
	}
	return true
}

// putJSON marshals and upserts one value.
func (s *Store) putJSON(namespace, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", namespace, key, err)
	}
	return s.put(namespace, key, string(raw))
}

// ClearAll wipes every namespace, including the in-process audio cache.
// Used by the full identity purge.
func (s *Store) ClearAll() error {
	if _, err := s.db.Exec("DELETE FROM kv"); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	s.audio.Purge()
	return nil
}

// applyPragmas configures SQLite for single-user durability.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. RAVOS_DB environment variable
// 2. $XDG_DATA_HOME/ravos/ravos.db
// 3. ~/.local/share/ravos/ravos.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("RAVOS_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "ravos", "ravos.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
