package markov

// ModelStats holds aggregated statistics for a compiled model.
type ModelStats struct {
	Depth           int // The context window length
	Contexts        int // The number of distinct contexts
	Transitions     int // The number of unique context->symbol links
	TotalFrequency  int // The sum of all observations; the total number of trained transitions
	StartingSymbols int // The number of distinct characters that can start a word
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() ModelStats {
	stats := ModelStats{
		Depth:    m.depth,
		Contexts: len(m.transitions),
	}
	for _, d := range m.transitions {
		stats.Transitions += len(d)
		stats.TotalFrequency += d.Total()
	}
	if d, ok := m.transitions[StartContext(m.depth).Key()]; ok {
		stats.StartingSymbols = len(d)
	}
	return stats
}
