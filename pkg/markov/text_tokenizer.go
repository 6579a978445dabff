package markov

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// TextTokenizer extracts words from free text. A word is a maximal run of
// alphabetic characters; anything else, digits and whitespace included, ends
// the run. Case and diacritics are left untouched.
type TextTokenizer struct{}

// NewTextTokenizer returns a tokenizer for free text.
func NewTextTokenizer() *TextTokenizer {
	return &TextTokenizer{}
}

// NewStream Returns the stream processor.
func (TextTokenizer) NewStream(r io.Reader) StreamTokenizer {
	return &textStream{scanner: newLineScanner(r)}
}

// IsAlphabetic reports whether r has the Unicode Alphabetic property.
func IsAlphabetic(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_Alphabetic, r)
}

// SplitWords returns the alphabetic runs of a single line in order.
func SplitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool { return !IsAlphabetic(r) })
}

type textStream struct {
	scanner *bufio.Scanner
	buffer  []string
}

func (s *textStream) Next() (*Token, error) {
	for len(s.buffer) == 0 { // Loop until we have words
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		s.buffer = SplitWords(s.scanner.Text())
	}

	word := s.buffer[0]
	s.buffer = s.buffer[1:]
	return &Token{Text: word, Weight: 1}, nil
}
