package markov

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
)

var (
	// ErrInvalidDepth is returned when a context depth below one is requested.
	ErrInvalidDepth = errors.New("markov: depth must be at least 1")
	// ErrInvalidWeight is returned when a word is observed with a weight below one.
	ErrInvalidWeight = errors.New("markov: weight must be at least 1")
	// ErrCountOverflow is returned when an observation would push the total
	// count of a context past the range of int.
	ErrCountOverflow = errors.New("markov: transition count overflow")
)

// Trainer accumulates raw transition counts: for every context window seen
// in training, how many times each next symbol followed it. Counts only ever
// grow; a Trainer is consumed once by Compile.
type Trainer struct {
	depth        int
	transitions  map[string]map[Symbol]int
	totals       map[string]int
	observations int64
	logger       *slog.Logger
}

// NewTrainer creates an empty Trainer whose contexts are depth symbols long.
func NewTrainer(depth int) (*Trainer, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	return &Trainer{
		depth:       depth,
		transitions: make(map[string]map[Symbol]int),
		totals:      make(map[string]int),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// SetLogger sets the logger for the Trainer. By default, all logs are discarded.
func (t *Trainer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

// Depth returns the length of every context window.
func (t *Trainer) Depth() int { return t.depth }

// Contexts returns the number of distinct contexts observed so far.
func (t *Trainer) Contexts() int { return len(t.transitions) }

// Observations returns the sum of all recorded transition weights, capped at
// math.MaxInt64.
func (t *Trainer) Observations() int64 { return t.observations }

// Count returns how many times next was observed after ctx.
func (t *Trainer) Count(ctx Context, next Symbol) int {
	return t.transitions[ctx.Key()][next]
}

// observe is the only mutation of the transition table.
func (t *Trainer) observe(key string, next Symbol, weight int) {
	m, ok := t.transitions[key]
	if !ok {
		m = make(map[Symbol]int)
		t.transitions[key] = m
	}
	m[next] += weight
	t.totals[key] += weight
	if t.observations > math.MaxInt64-int64(weight) {
		t.observations = math.MaxInt64
	} else {
		t.observations += int64(weight)
	}
}

// ObserveWord records every transition of word, weighted by weight. The word
// is padded with depth Start symbols in front and depth End symbols behind,
// and each window of depth symbols is recorded as the context of the symbol
// that follows it. A word of n characters yields n+depth transitions. An
// empty word is a no-op.
func (t *Trainer) ObserveWord(word string, weight int) error {
	if weight < 1 {
		return fmt.Errorf("%w: got %d for %q", ErrInvalidWeight, weight, word)
	}
	if word == "" {
		return nil
	}

	runes := []rune(word)
	padded := make([]Symbol, 0, len(runes)+2*t.depth)
	for i := 0; i < t.depth; i++ {
		padded = append(padded, Start)
	}
	for _, r := range runes {
		padded = append(padded, Symbol(r))
	}
	for i := 0; i < t.depth; i++ {
		padded = append(padded, End)
	}

	n := len(runes) + t.depth
	keys := make([]string, n)
	var keyBuf []byte
	for i := range keys {
		keyBuf = Context(padded[i : i+t.depth]).appendKey(keyBuf[:0])
		keys[i] = string(keyBuf)
	}

	// The whole word is checked before anything is recorded, so a rejected
	// word leaves the table unchanged.
	pending := make(map[string]int, n)
	for i, key := range keys {
		if pending[key] > math.MaxInt-t.totals[key]-weight {
			return fmt.Errorf("%w: context %s with weight %d for %q", ErrCountOverflow, Context(padded[i:i+t.depth]), weight, word)
		}
		pending[key] += weight
	}

	for i, key := range keys {
		t.observe(key, padded[i+t.depth], weight)
	}
	return nil
}

// Train drains a token stream, observing every token it yields.
func (t *Trainer) Train(stream StreamTokenizer) error {
	var words int64
	for {
		token, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("tokenizer error: %w", err)
		}
		if err = t.ObserveWord(token.Text, token.Weight); err != nil {
			return err
		}
		words++
	}

	t.logger.Info("Training completed",
		slog.Int("depth", t.depth),
		slog.Int64("words_processed", words),
		slog.Int("contexts", len(t.transitions)),
	)
	return nil
}

// IngestWordlist trains on a wordlist stream (see WordlistTokenizer).
func (t *Trainer) IngestWordlist(r io.Reader) error {
	return t.Train(NewWordlistTokenizer().NewStream(r))
}

// IngestText trains on free text (see TextTokenizer).
func (t *Trainer) IngestText(r io.Reader) error {
	return t.Train(NewTextTokenizer().NewStream(r))
}

// IngestWordlistFile opens path and trains on it as a wordlist.
func (t *Trainer) IngestWordlistFile(path string) error {
	return t.ingestFile(path, t.IngestWordlist)
}

// IngestTextFile opens path and trains on it as free text.
func (t *Trainer) IngestTextFile(path string) error {
	return t.ingestFile(path, t.IngestText)
}

func (t *Trainer) ingestFile(path string, ingest func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open training file: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	t.logger.Debug("Ingesting file", slog.String("path", path))
	if err = ingest(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
