package markov

import (
	"bytes"
	"compress/zlib"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := trainWordlist(t, 3, "naïve\t2\ncafé\n^caret$\t5\nzoo\n")

	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	loaded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	if loaded.Depth() != m.Depth() {
		t.Errorf("Depth() = %d, want %d", loaded.Depth(), m.Depth())
	}
	if diff := cmp.Diff(m.Transitions(), loaded.Transitions()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// A second round trip must be just as lossless.
	buf.Reset()
	if err := loaded.Encode(&buf); err != nil {
		t.Fatalf("second Encode() failed: %v", err)
	}
	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("second Decode() failed: %v", err)
	}
	if !again.Equal(m) {
		t.Error("model changed after two round trips")
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.dict")
	m := trainWordlist(t, 2, "cat\t3\ncar\t2\ncart\n")

	if err := m.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() failed: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if !loaded.Equal(m) {
		t.Error("loaded model differs from the saved one")
	}

	first, _ := m.Generate(NewSource(3), 20)
	second, _ := loaded.Generate(NewSource(3), 20)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reloaded model generates differently (-want +got):\n%s", diff)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.dict"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func compress(t *testing.T, s string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestDecodeCorrupt(t *testing.T) {
	testCases := []struct {
		name  string
		input func(t *testing.T) *bytes.Buffer
	}{
		{name: "not compressed", input: func(*testing.T) *bytes.Buffer { return bytes.NewBufferString(`{"depth":1}`) }},
		{name: "not json", input: func(t *testing.T) *bytes.Buffer { return compress(t, "word: cat") }},
		{name: "wrong types", input: func(t *testing.T) *bytes.Buffer { return compress(t, `{"depth":"two","transitions":{}}`) }},
		{name: "depth mismatch", input: func(t *testing.T) *bytes.Buffer {
			return compress(t, `{"depth":2,"transitions":{"-1":[{"c":97,"cf":1}]}}`)
		}},
		{name: "surrogate symbol", input: func(t *testing.T) *bytes.Buffer {
			return compress(t, `{"depth":1,"transitions":{"-1":[{"c":55296,"cf":1}],"55296":[{"c":2147483647,"cf":1}]}}`)
		}},
		{name: "trailing json", input: func(t *testing.T) *bytes.Buffer {
			return compress(t, `{"depth":1,"transitions":{"-1":[{"c":2147483647,"cf":1}]}}{"depth":2}`)
		}},
		{name: "trailing garbage", input: func(t *testing.T) *bytes.Buffer {
			return compress(t, `{"depth":1,"transitions":{"-1":[{"c":2147483647,"cf":1}]}} x`)
		}},
		{name: "concatenated files", input: func(t *testing.T) *bytes.Buffer {
			var buf bytes.Buffer
			m := trainWordlist(t, 2, "cat\n")
			_ = m.Encode(&buf)
			_ = m.Encode(&buf)
			return &buf
		}},
				{name: "truncated", input: func(t *testing.T) *bytes.Buffer {
			var buf bytes.Buffer
			_ = trainWordlist(t, 2, "cat\n").Encode(&buf)
			buf.Truncate(buf.Len() / 2)
			return &buf
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.input(t)); !errors.Is(err, ErrCorruptModel) {
				t.Errorf("Decode() error = %v, want ErrCorruptModel", err)
			}
		})
	}
}

func TestDecodeAcceptsHandWrittenModel(t *testing.T) {
	m, err := Decode(compress(t, `{"depth":1,"transitions":{"-1":[{"c":104,"cf":1}],"104":[{"c":105,"cf":1}],"105":[{"c":2147483647,"cf":1}]}}`))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	w, err := m.GenerateWord(NewSource(0))
	if err != nil {
		t.Fatalf("GenerateWord() failed: %v", err)
	}
	if w != "hi" {
		t.Errorf("GenerateWord() = %q, want %q", w, "hi")
	}
}
