package store

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
)

// SetupSchema initializes the necessary tables in the provided database.
// This function should be called once on a new database before any other
// operations are performed. It is idempotent and safe to call on an
// already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaModels = `
CREATE TABLE IF NOT EXISTS wordgen_models (
    model_id INTEGER PRIMARY KEY,
    model_name TEXT NOT NULL UNIQUE,
    model_depth INTEGER NOT NULL
);
`
		schemaTransitions = `
CREATE TABLE IF NOT EXISTS wordgen_transitions (
    model_id INTEGER NOT NULL,
    context_key TEXT NOT NULL,
    symbol INTEGER NOT NULL,
    cumulative INTEGER NOT NULL,
    PRIMARY KEY (model_id, context_key, symbol)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing. If it fails, this will clean up.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaModels); err != nil {
		return fmt.Errorf("could not create models schema: %w", err)
	}

	if _, err = tx.Exec(schemaTransitions); err != nil {
		return fmt.Errorf("could not create transitions schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Store keeps any number of named, compiled word models in a single SQLite
// database. It holds the connection and prepared statements for the
// read-side queries.
type Store struct {
	db                   *sql.DB
	stmtGetModelInfo     *sql.Stmt
	stmtGetModels        *sql.Stmt
	stmtGetTransitions   *sql.Stmt
	stmtModelContexts    *sql.Stmt
	stmtModelTransitions *sql.Stmt
	logger               *slog.Logger
}

// New creates a Store on top of db. SetupSchema must have been run on db.
// It pre-compiles all read statements, returning an error if any
// preparation fails.
func New(db *sql.DB) (*Store, error) {
	stmtGetModelInfo, err := db.Prepare(`SELECT model_id, model_depth FROM wordgen_models WHERE model_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtGetModels, err := db.Prepare(`SELECT model_id, model_name, model_depth FROM wordgen_models;`)
	if err != nil {
		return nil, err
	}

	stmtGetTransitions, err := db.Prepare(`SELECT context_key, symbol, cumulative FROM wordgen_transitions WHERE model_id = ? ORDER BY context_key, symbol;`)
	if err != nil {
		return nil, err
	}

	stmtModelContexts, err := db.Prepare(`SELECT COUNT(DISTINCT context_key) FROM wordgen_transitions WHERE model_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtModelTransitions, err := db.Prepare(`SELECT COUNT(*) FROM wordgen_transitions WHERE model_id = ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:                   db,
		stmtGetModelInfo:     stmtGetModelInfo,
		stmtGetModels:        stmtGetModels,
		stmtGetTransitions:   stmtGetTransitions,
		stmtModelContexts:    stmtModelContexts,
		stmtModelTransitions: stmtModelTransitions,
		logger:               slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store. The
// database connection itself belongs to the caller.
func (s *Store) Close() {
	_ = s.stmtGetModelInfo.Close()
	_ = s.stmtGetModels.Close()
	_ = s.stmtGetTransitions.Close()
	_ = s.stmtModelContexts.Close()
	_ = s.stmtModelTransitions.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}
