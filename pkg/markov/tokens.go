package markov

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineLength bounds a single input line. Longer lines fail with
// bufio.ErrTooLong rather than being silently split.
const maxLineLength = 1 << 20

// Token is a single training word together with how many times it should be
// counted.
type Token struct {
	Text   string
	Weight int
}

// Tokenizer is an interface that defines the contract for turning a training
// source into words. It allows the Trainer to stay independent of the input
// format.
type Tokenizer interface {
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader.
	NewStream(io.Reader) StreamTokenizer
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of data, returning one token at a time.
type StreamTokenizer interface {
	// Next returns the next token from the stream. It returns io.EOF as the
	// error when the stream is fully consumed.
	Next() (*Token, error)
}

// ParseError reports a malformed field in a wordlist line.
type ParseError struct {
	Line  int    // 1-based line number
	Field string // the offending field text
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid frequency %q: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return scanner
}
