package store

import (
	"context"
	"sort"
)

// DBStats holds aggregated statistics for the entire database, including a
// list of all models and their individual stats.
type DBStats struct {
	Models []ModelInfo        // All models in the database, sorted by name
	Stats  map[int]ModelStats // A mapping of model ids to their stats
}

// ModelStats holds aggregated statistics for a single stored model.
type ModelStats struct {
	Contexts    int // The number of distinct contexts
	Transitions int // The number of unique context->symbol links
}

// GetStats returns a snapshot of statistics for every stored model.
func (s *Store) GetStats(ctx context.Context) (*DBStats, error) {
	modelInfos, err := s.GetModelInfos(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]ModelInfo, 0, len(modelInfos))
	modelStats := make(map[int]ModelStats)
	for _, v := range modelInfos {
		models = append(models, v)
		var contexts, transitions int
		if err = s.stmtModelContexts.QueryRowContext(ctx, v.Id).Scan(&contexts); err != nil {
			return nil, err
		}
		if err = s.stmtModelTransitions.QueryRowContext(ctx, v.Id).Scan(&transitions); err != nil {
			return nil, err
		}
		modelStats[v.Id] = ModelStats{
			Contexts:    contexts,
			Transitions: transitions,
		}
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })

	return &DBStats{
		Models: models,
		Stats:  modelStats,
	}, nil
}
