package store

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CTAG07/wordgen/pkg/markov"
	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates a new SQLite database in a temp dir and a Store for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestDB(t *testing.T) (*sql.DB, *Store) {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=-4000")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := New(db)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

// trainModel is a convenience helper that compiles a model from a wordlist.
func trainModel(t *testing.T, depth int, wordlist string) *markov.Model {
	t.Helper()
	tr, err := markov.NewTrainer(depth)
	if err != nil {
		t.Fatalf("NewTrainer(%d) failed: %v", depth, err)
	}
	if err := tr.IngestWordlist(strings.NewReader(wordlist)); err != nil {
		t.Fatalf("IngestWordlist failed: %v", err)
	}
	return markov.Compile(tr)
}
