package markov

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

// ErrUnknownContext is returned when generation reaches a context the model
// never observed. It means the model was trained with a different depth or
// its data is damaged.
var ErrUnknownContext = errors.New("markov: context not present in model")

// Source is the random number source used for sampling. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniformly distributed integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewSource returns a deterministic Source: equal seeds give equal sequences.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewEntropySource returns a Source seeded from the runtime's entropy.
func NewEntropySource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Sample draws one symbol from d with probability count/total. It draws r
// uniformly from [0, total) and picks the first entry whose cumulative count
// is greater than r. d must not be empty.
func (d Distribution) Sample(src Source) Symbol {
	r := src.IntN(d.Total())
	i := sort.Search(len(d), func(i int) bool { return d[i].Cumulative > r })
	return d[i].Symbol
}

// GenerateWord walks the chain from depth Start symbols until End is drawn
// and returns the characters produced along the way. There is no length cap.
func (m *Model) GenerateWord(src Source) (string, error) {
	var builder strings.Builder
	window := StartContext(m.depth)
	var keyBuf []byte

	for {
		keyBuf = window.appendKey(keyBuf[:0])
		d, ok := m.transitions[string(keyBuf)]
		if !ok {
			return "", fmt.Errorf("%w: %q after %q", ErrUnknownContext, window.String(), builder.String())
		}

		next := d.Sample(src)
		if next == End {
			return builder.String(), nil
		}
		builder.WriteRune(next.Rune())

		copy(window, window[1:])
		window[len(window)-1] = next
	}
}

// Generate produces n words back to back from the same source.
func (m *Model) Generate(src Source, n int) ([]string, error) {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		w, err := m.GenerateWord(src)
		if err != nil {
			return words, err
		}
		words = append(words, w)
	}
	return words, nil
}
