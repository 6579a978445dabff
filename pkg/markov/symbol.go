package markov

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Symbol is a single element of a context window. Learned characters are
// stored as their Unicode code point; the two word boundaries use values
// outside the code point range so they can never collide with input text.
//
// The natural integer order of symbols is Start < every character < End, and
// that order is used to lay out cumulative-frequency tables.
type Symbol int32

const (
	// Start marks the position before the first character of a word.
	Start Symbol = -1
	// End marks that the word has terminated.
	End Symbol = math.MaxInt32
)

// IsBoundary reports whether s is Start or End.
func (s Symbol) IsBoundary() bool {
	return s == Start || s == End
}

// Rune returns the character a non-boundary symbol stands for.
func (s Symbol) Rune() rune {
	return rune(s)
}

// String renders boundaries as <START>/<END> and characters as themselves.
func (s Symbol) String() string {
	switch s {
	case Start:
		return "<START>"
	case End:
		return "<END>"
	}
	return string(rune(s))
}

func validSymbol(s Symbol) bool {
	return s.IsBoundary() || utf8.ValidRune(rune(s))
}

// Context is the ordered window of symbols that precedes a prediction. Its
// length always equals the depth of the model it belongs to.
type Context []Symbol

// StartContext returns a context made of depth Start symbols.
func StartContext(depth int) Context {
	c := make(Context, depth)
	for i := range c {
		c[i] = Start
	}
	return c
}

// Key returns the map key for the context: the symbols in decimal, separated
// by single spaces. Distinct contexts always produce distinct keys.
func (c Context) Key() string {
	return string(c.appendKey(nil))
}

func (c Context) appendKey(buf []byte) []byte {
	for i, s := range c {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(s), 10)
	}
	return buf
}

// String renders the context in a human-readable form, e.g. "<START>ca".
func (c Context) String() string {
	var sb strings.Builder
	for _, s := range c {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// ParseContext is the inverse of Context.Key.
func ParseContext(key string) (Context, error) {
	if key == "" {
		return nil, fmt.Errorf("empty context key")
	}
	parts := strings.Split(key, " ")
	c := make(Context, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("context key %q: %w", key, err)
		}
		s := Symbol(v)
		if !validSymbol(s) {
			return nil, fmt.Errorf("context key %q: symbol %d out of range", key, v)
		}
		c[i] = s
	}
	return c, nil
}
