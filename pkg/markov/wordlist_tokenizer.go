package markov

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

// errNonPositive is wrapped in a ParseError for frequencies below one.
var errNonPositive = errors.New("frequency must be a positive integer")

// WordlistTokenizer reads one word per line with an optional tab separated
// integer frequency:
//
//	hello	12
//	world
//
// A missing frequency counts as 1. Fields after the frequency are ignored and
// lines with an empty word are skipped.
type WordlistTokenizer struct{}

// NewWordlistTokenizer returns a tokenizer for the wordlist format.
func NewWordlistTokenizer() *WordlistTokenizer {
	return &WordlistTokenizer{}
}

// NewStream Returns the stream processor.
func (WordlistTokenizer) NewStream(r io.Reader) StreamTokenizer {
	return &wordlistStream{scanner: newLineScanner(r)}
}

type wordlistStream struct {
	scanner *bufio.Scanner
	line    int
}

// Next returns the next non-empty word. A frequency field that is not a
// positive integer yields a *ParseError.
func (s *wordlistStream) Next() (*Token, error) {
	for s.scanner.Scan() {
		s.line++
		fields := strings.SplitN(s.scanner.Text(), "\t", 3)
		word := fields[0]
		weight := 1
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, &ParseError{Line: s.line, Field: fields[1], Err: err}
			}
			if n < 1 {
				return nil, &ParseError{Line: s.line, Field: fields[1], Err: errNonPositive}
			}
			weight = n
		}
		if word == "" {
			continue
		}
		return &Token{Text: word, Weight: weight}, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
