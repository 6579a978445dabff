package main

import (
	"errors"
	"fmt"
	"io"
	"text/template"

	"github.com/CTAG07/wordgen/pkg/markov"
	"github.com/spf13/cobra"
)

// wordOutput is the data passed to the --format template.
type wordOutput struct {
	Index int
	Word  string
}

func (a *app) newGenerateCmd() *cobra.Command {
	var (
		model  modelFlags
		count  int
		seed   uint64
		format string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random words from an existing model",
		Long: `Loads a model and prints the requested number of generated words.

Without --seed the random source is seeded from system entropy. With --seed
the same model and seed always print the same words.

Example:
  wordgen generate -t czech.dict -c 10 -s 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := resolveInt(cmd, "count", count, a.config.Count)
			if n < 0 {
				return fmt.Errorf("invalid word count %d", n)
			}
			tmpl, err := template.New("word").Parse(resolveString(cmd, "format", format, a.config.Format))
			if err != nil {
				return fmt.Errorf("invalid output format: %w", err)
			}

			m, err := a.loadModel(cmd.Context(), model.resolve(cmd, a.config))
			if err != nil {
				return err
			}

			var src markov.Source
			if cmd.Flags().Changed("seed") {
				src = markov.NewSource(seed)
			} else {
				src = markov.NewEntropySource()
			}
			return writeWords(a.stdout, tmpl, m, src, n)
		},
	}

	model.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "c", 1, "number of generated words")
	cmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "random seed for reproducible output")
	cmd.Flags().StringVar(&format, "format", "", "Go template for each word (fields: .Word, .Index)")
	return cmd
}

// writeWords generates n words and prints each through tmpl on its own line.
func writeWords(w io.Writer, tmpl *template.Template, m *markov.Model, src markov.Source, n int) error {
	for i := 0; i < n; i++ {
		word, err := m.GenerateWord(src)
		if err != nil {
			if errors.Is(err, markov.ErrUnknownContext) {
				return fmt.Errorf("model is inconsistent: %w", err)
			}
			return err
		}
		if err = tmpl.Execute(w, wordOutput{Index: i + 1, Word: word}); err != nil {
			return fmt.Errorf("failed to format word: %w", err)
		}
		if _, err = io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
