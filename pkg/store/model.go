package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/CTAG07/wordgen/pkg/markov"
)

// ModelInfo holds the metadata of a stored model: its unique ID, name, and
// the context depth it was trained with.
type ModelInfo struct {
	Id    int
	Name  string
	Depth int
}

// GetModelInfos retrieves metadata for all models currently in the database,
// returning them in a map keyed by model name.
func (s *Store) GetModelInfos(ctx context.Context) (map[string]ModelInfo, error) {
	rows, err := s.stmtGetModels.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	models := make(map[string]ModelInfo)
	for rows.Next() {
		var model ModelInfo
		if err = rows.Scan(&model.Id, &model.Name, &model.Depth); err != nil {
			return nil, err
		}
		models[model.Name] = model
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return models, nil
}

// GetModelInfo retrieves the metadata for a single model specified by name.
// It returns sql.ErrNoRows if no such model exists.
func (s *Store) GetModelInfo(ctx context.Context, modelName string) (ModelInfo, error) {
	var modelId, modelDepth int
	err := s.stmtGetModelInfo.QueryRowContext(ctx, modelName).Scan(&modelId, &modelDepth)
	if err != nil {
		return ModelInfo{}, err
	}
	return ModelInfo{
		Id:    modelId,
		Name:  modelName,
		Depth: modelDepth,
	}, nil
}

// SaveModel stores m under name. An existing model with the same name is
// replaced entirely. The operation is performed within a transaction.
func (s *Store) SaveModel(ctx context.Context, name string, m *markov.Model) (ModelInfo, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("could not begin transaction for save: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var modelID int
	err = tx.QueryRowContext(ctx, "SELECT model_id FROM wordgen_models WHERE model_name = ?", name).Scan(&modelID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx, "INSERT INTO wordgen_models (model_name, model_depth) VALUES (?, ?)", name, m.Depth())
		if err != nil {
			return ModelInfo{}, fmt.Errorf("failed to insert new model '%s': %w", name, err)
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return ModelInfo{}, fmt.Errorf("failed to read id of model '%s': %w", name, err)
		}
		modelID = int(newID)
	case err != nil:
		return ModelInfo{}, fmt.Errorf("failed to query for model '%s': %w", name, err)
	default:
		if _, err = tx.ExecContext(ctx, "DELETE FROM wordgen_transitions WHERE model_id = ?", modelID); err != nil {
			return ModelInfo{}, fmt.Errorf("failed to clear transitions for model %d: %w", modelID, err)
		}
		if _, err = tx.ExecContext(ctx, "UPDATE wordgen_models SET model_depth = ? WHERE model_id = ?", m.Depth(), modelID); err != nil {
			return ModelInfo{}, fmt.Errorf("failed to update model %d: %w", modelID, err)
		}
	}

	stmtInsert, err := tx.PrepareContext(ctx, `INSERT INTO wordgen_transitions (model_id, context_key, symbol, cumulative) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return ModelInfo{}, fmt.Errorf("failed to prepare transition insert statement: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(stmtInsert)

	keys := m.Keys()
	var rowCount int
	for _, key := range keys {
		ctxSymbols, err := markov.ParseContext(key)
		if err != nil {
			return ModelInfo{}, err
		}
		d, _ := m.Distribution(ctxSymbols)
		for _, c := range d {
			if _, err = stmtInsert.ExecContext(ctx, modelID, key, int64(c.Symbol), c.Cumulative); err != nil {
				return ModelInfo{}, fmt.Errorf("failed to insert transition (%s -> %d): %w", key, c.Symbol, err)
			}
			rowCount++
		}
	}

	if err = tx.Commit(); err != nil {
		return ModelInfo{}, fmt.Errorf("could not commit model '%s': %w", name, err)
	}

	s.logger.InfoContext(ctx, "Model saved",
		slog.String("model_name", name),
		slog.Int("model_id", modelID),
		slog.Int("contexts_saved", len(keys)),
		slog.Int("transitions_saved", rowCount),
	)

	return ModelInfo{Id: modelID, Name: name, Depth: m.Depth()}, nil
}

// LoadModel reads the named model back into memory. Stored data that
// violates the model invariants fails with markov.ErrCorruptModel, and an
// unknown name fails with sql.ErrNoRows.
func (s *Store) LoadModel(ctx context.Context, name string) (*markov.Model, error) {
	info, err := s.GetModelInfo(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.stmtGetTransitions.QueryContext(ctx, info.Id)
	if err != nil {
		return nil, fmt.Errorf("could not query transitions for model '%s': %w", name, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	transitions := make(map[string]markov.Distribution)
	for rows.Next() {
		var key string
		var symbol int64
		var cumulative int
		if err = rows.Scan(&key, &symbol, &cumulative); err != nil {
			return nil, err
		}
		transitions[key] = append(transitions[key], markov.CumCount{Symbol: markov.Symbol(symbol), Cumulative: cumulative})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	m, err := markov.Restore(info.Depth, transitions)
	if err != nil {
		return nil, fmt.Errorf("model '%s': %w", name, err)
	}

	s.logger.DebugContext(ctx, "Model loaded",
		slog.String("model_name", name),
		slog.Int("model_id", info.Id),
		slog.Int("contexts_loaded", len(transitions)),
	)
	return m, nil
}

// RemoveModel deletes a model and all of its transitions from the database.
// The operation is performed within a transaction.
func (s *Store) RemoveModel(ctx context.Context, model ModelInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.ExecContext(ctx, "DELETE FROM wordgen_transitions WHERE model_id = ?", model.Id); err != nil {
		return fmt.Errorf("failed to remove transitions for model %d: %w", model.Id, err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM wordgen_models WHERE model_id = ?", model.Id); err != nil {
		return fmt.Errorf("failed to remove model %d: %w", model.Id, err)
	}

	s.logger.InfoContext(ctx, "Model removed successfully",
		slog.String("model_name", model.Name),
		slog.Int("model_id", model.Id),
	)

	return tx.Commit()
}
