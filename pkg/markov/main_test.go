package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// seqSource replays a fixed sequence of draws, cycling when exhausted.
type seqSource struct {
	values []int
	pos    int
}

func (s *seqSource) IntN(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

// newTestTrainer creates a Trainer or fails the test.
func newTestTrainer(t testing.TB, depth int) *Trainer {
	t.Helper()
	tr, err := NewTrainer(depth)
	if err != nil {
		t.Fatalf("NewTrainer(%d) error = %v", depth, err)
	}
	return tr
}

// trainWordlist is a convenience helper that compiles a model from a wordlist.
func trainWordlist(t testing.TB, depth int, wordlist string) *Model {
	t.Helper()
	tr := newTestTrainer(t, depth)
	if err := tr.IngestWordlist(strings.NewReader(wordlist)); err != nil {
		t.Fatalf("IngestWordlist() failed: %v", err)
	}
	return Compile(tr)
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
