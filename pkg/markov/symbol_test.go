package markov

import (
	"testing"
)

func TestSymbolOrder(t *testing.T) {
	for _, r := range []rune{0, '^', '$', 'a', 'ž', 0x10FFFF} {
		s := Symbol(r)
		if !(Start < s && s < End) {
			t.Errorf("expected Start < %q < End", r)
		}
		if s.IsBoundary() {
			t.Errorf("%q reported as boundary", r)
		}
	}
	if Start.String() != "<START>" || End.String() != "<END>" {
		t.Errorf("unexpected boundary names %q %q", Start, End)
	}
}

func TestContextKey(t *testing.T) {
	testCases := []struct {
		name string
		ctx  Context
		key  string
	}{
		{name: "all start", ctx: StartContext(3), key: "-1 -1 -1"},
		{name: "mixed", ctx: Context{Start, 'c'}, key: "-1 99"},
		{name: "end", ctx: Context{'t', End}, key: "116 2147483647"},
		{name: "literal markers", ctx: Context{'^', '$'}, key: "94 36"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ctx.Key(); got != tc.key {
				t.Errorf("Key() = %q, want %q", got, tc.key)
			}
			parsed, err := ParseContext(tc.key)
			if err != nil {
				t.Fatalf("ParseContext(%q) error = %v", tc.key, err)
			}
			if parsed.Key() != tc.key {
				t.Errorf("ParseContext(%q) = %v", tc.key, parsed)
			}
		})
	}
}

func TestParseContextRejectsGarbage(t *testing.T) {
	for _, key := range []string{"", "a b", "-1  -1", "-2", "1114112", "55296", "57343"} {
		if _, err := ParseContext(key); err == nil {
			t.Errorf("ParseContext(%q) expected an error", key)
		}
	}
}
