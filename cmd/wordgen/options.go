package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/CTAG07/wordgen/pkg/markov"
	"github.com/CTAG07/wordgen/pkg/store"
	"github.com/spf13/cobra"
)

// modelFlags selects where a model is read from or written to: a dictionary
// file, or a named model inside a SQLite database.
type modelFlags struct {
	dictFile  string
	dbPath    string
	modelName string
}

func (f *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dictFile, "dict", "t", "", "dictionary (model) file")
	cmd.Flags().StringVar(&f.dbPath, "db", "", "SQLite database holding named models; overrides --dict")
	cmd.Flags().StringVar(&f.modelName, "model", "", "model name inside the database")
}

// resolve fills unset flags from the config.
func (f *modelFlags) resolve(cmd *cobra.Command, config *Config) modelFlags {
	return modelFlags{
		dictFile:  resolveString(cmd, "dict", f.dictFile, config.DictFile),
		dbPath:    resolveString(cmd, "db", f.dbPath, config.DatabasePath),
		modelName: resolveString(cmd, "model", f.modelName, config.ModelName),
	}
}

func resolveString(cmd *cobra.Command, name, flagValue, configValue string) string {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

func resolveInt(cmd *cobra.Command, name string, flagValue, configValue int) int {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

// openStore opens the database at path and prepares a model store on it.
// The returned function releases both.
func (a *app) openStore(path string) (*store.Store, func(), error) {
	db, err := initDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = store.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to set up database schema: %w", err)
	}
	s, err := store.New(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare model store: %w", err)
	}
	s.SetLogger(a.logger)

	return s, func() {
		s.Close()
		if err := db.Close(); err != nil {
			a.logger.Error("Failed to close database", "error", err)
		}
	}, nil
}

// loadModel reads the model selected by f.
func (a *app) loadModel(ctx context.Context, f modelFlags) (*markov.Model, error) {
	if f.dbPath == "" {
		if f.dictFile == "" {
			return nil, errors.New("no dictionary file given")
		}
		m, err := markov.LoadFile(f.dictFile)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("Model loaded", slog.String("dict_file", f.dictFile), slog.Int("depth", m.Depth()))
		return m, nil
	}

	s, closeStore, err := a.openStore(f.dbPath)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	m, err := s.LoadModel(ctx, f.modelName)
	if err != nil {
		return nil, fmt.Errorf("could not load model '%s': %w", f.modelName, err)
	}
	a.logger.Debug("Model loaded", slog.String("model", f.modelName), slog.Int("depth", m.Depth()))
	return m, nil
}

// saveModel writes m to the destination selected by f.
func (a *app) saveModel(ctx context.Context, f modelFlags, m *markov.Model) error {
	if f.dbPath == "" {
		if f.dictFile == "" {
			return errors.New("no dictionary file given")
		}
		if err := m.SaveFile(f.dictFile); err != nil {
			return err
		}
		a.logger.Info("Model written", slog.String("dict_file", f.dictFile))
		return nil
	}

	s, closeStore, err := a.openStore(f.dbPath)
	if err != nil {
		return err
	}
	defer closeStore()
	_, err = s.SaveModel(ctx, f.modelName, m)
	return err
}
