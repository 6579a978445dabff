package markov

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// ErrCorruptModel is returned when persisted model data violates the
// invariants of a compiled Model.
var ErrCorruptModel = errors.New("markov: corrupt model")

// CumCount is one entry of a cumulative-frequency table: a next symbol and
// the number of observations of that symbol plus every symbol ordered
// before it in the same context.
type CumCount struct {
	Symbol     Symbol `json:"c"`
	Cumulative int    `json:"cf"`
}

// Distribution is the compiled cumulative-frequency table of one context.
// Entries are in ascending symbol order and cumulative counts strictly
// increase, so the last entry carries the total.
type Distribution []CumCount

// Total returns the number of observations behind the distribution.
func (d Distribution) Total() int {
	if len(d) == 0 {
		return 0
	}
	return d[len(d)-1].Cumulative
}

// Model is an immutable compiled transition model.
type Model struct {
	depth       int
	transitions map[string]Distribution
}

// Compile builds a Model from the counts accumulated by t. The Trainer is
// neither modified nor retained.
func Compile(t *Trainer) *Model {
	m := &Model{
		depth:       t.depth,
		transitions: make(map[string]Distribution, len(t.transitions)),
	}
	for key, counts := range t.transitions {
		m.transitions[key] = compileCounts(counts)
	}
	t.logger.Info("Model compiled",
		slog.Int("depth", t.depth),
		slog.Int("contexts", len(m.transitions)),
	)
	return m
}

func compileCounts(counts map[Symbol]int) Distribution {
	symbols := slices.Sorted(maps.Keys(counts))
	d := make(Distribution, 0, len(symbols))
	var cs int
	for _, s := range symbols {
		cs += counts[s]
		d = append(d, CumCount{Symbol: s, Cumulative: cs})
	}
	return d
}

// Restore builds a Model from previously compiled data, typically read back
// from storage. Every invariant of a compiled model is checked and a
// violation is reported as ErrCorruptModel. The transitions map is copied.
func Restore(depth int, transitions map[string]Distribution) (*Model, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: depth %d", ErrCorruptModel, depth)
	}
	if len(transitions) == 0 {
		return nil, fmt.Errorf("%w: no transitions", ErrCorruptModel)
	}
	m := &Model{
		depth:       depth,
		transitions: make(map[string]Distribution, len(transitions)),
	}
	for key, d := range transitions {
		ctx, err := ParseContext(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
		}
		if len(ctx) != depth || ctx.Key() != key {
			return nil, fmt.Errorf("%w: context %q does not match depth %d", ErrCorruptModel, key, depth)
		}
		if err = validateDistribution(d); err != nil {
			return nil, fmt.Errorf("%w: context %q: %v", ErrCorruptModel, key, err)
		}
		m.transitions[key] = slices.Clone(d)
	}
	if _, ok := m.transitions[StartContext(depth).Key()]; !ok {
		return nil, fmt.Errorf("%w: missing start context", ErrCorruptModel)
	}
	return m, nil
}

func validateDistribution(d Distribution) error {
	if len(d) == 0 {
		return errors.New("empty distribution")
	}
	for i, c := range d {
		if !validSymbol(c.Symbol) || c.Symbol == Start {
			return fmt.Errorf("invalid next symbol %d", c.Symbol)
		}
		if i == 0 {
			if c.Cumulative < 1 {
				return fmt.Errorf("non-positive cumulative count %d", c.Cumulative)
			}
			continue
		}
		if c.Symbol <= d[i-1].Symbol {
			return fmt.Errorf("symbols not in ascending order at entry %d", i)
		}
		if c.Cumulative <= d[i-1].Cumulative {
			return fmt.Errorf("cumulative counts not increasing at entry %d", i)
		}
	}
	return nil
}

// Depth returns the context window length the model was trained with.
func (m *Model) Depth() int { return m.depth }

// Distribution returns the compiled table for ctx. The returned slice must
// not be modified.
func (m *Model) Distribution(ctx Context) (Distribution, bool) {
	d, ok := m.transitions[ctx.Key()]
	return d, ok
}

// Keys returns every context key in ascending order.
func (m *Model) Keys() []string {
	return slices.Sorted(maps.Keys(m.transitions))
}

// Transitions returns a copy of the compiled tables, keyed by Context.Key.
func (m *Model) Transitions() map[string]Distribution {
	out := make(map[string]Distribution, len(m.transitions))
	for k, d := range m.transitions {
		out[k] = slices.Clone(d)
	}
	return out
}

// Equal reports whether o has the same depth and identical distributions.
func (m *Model) Equal(o *Model) bool {
	if m.depth != o.depth || len(m.transitions) != len(o.transitions) {
		return false
	}
	for k, d := range m.transitions {
		if !slices.Equal(d, o.transitions[k]) {
			return false
		}
	}
	return true
}
