package main

import (
	"errors"
	"log/slog"

	"github.com/CTAG07/wordgen/pkg/markov"
	"github.com/spf13/cobra"
)

func (a *app) newLearnCmd() *cobra.Command {
	var (
		model     modelFlags
		depth     int
		wordlists []string
		textFiles []string
	)

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Create a new model from wordlists and text files",
		Long: `Trains a model of the given depth and writes it to the dictionary file,
or to the database when --db is set.

Wordlists hold one word per line with an optional tab separated frequency.
Text files contribute every run of letters they contain. All wordlists are
read first, then all text files, each in the order given.

Example:
  wordgen learn -d 3 -t czech.dict -i cs.tsv -f novel.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(wordlists) == 0 && len(textFiles) == 0 {
				return errors.New("at least one --input-word-list or --input-file is required")
			}

			trainer, err := markov.NewTrainer(resolveInt(cmd, "depth", depth, a.config.Depth))
			if err != nil {
				return err
			}
			trainer.SetLogger(a.logger)

			for _, path := range wordlists {
				if err = trainer.IngestWordlistFile(path); err != nil {
					return err
				}
			}
			for _, path := range textFiles {
				if err = trainer.IngestTextFile(path); err != nil {
					return err
				}
			}
			if trainer.Observations() == 0 {
				return errors.New("no words found in the training input")
			}

			m := markov.Compile(trainer)
			stats := m.Stats()
			a.logger.Info("Training summary",
				slog.Int("depth", stats.Depth),
				slog.Int("contexts", stats.Contexts),
				slog.Int("transitions", stats.Transitions),
				slog.Int("total_frequency", stats.TotalFrequency),
			)
			return a.saveModel(cmd.Context(), model.resolve(cmd, a.config), m)
		},
	}

	model.register(cmd)
	cmd.Flags().IntVarP(&depth, "depth", "d", 2, "n-gram depth (context length)")
	cmd.Flags().StringArrayVarP(&wordlists, "input-word-list", "i", nil, "input wordlist file (repeatable)")
	cmd.Flags().StringArrayVarP(&textFiles, "input-file", "f", nil, "input text file (repeatable)")
	return cmd
}
