package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newStatsCmd() *cobra.Command {
	var model modelFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print statistics about a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel(cmd.Context(), model.resolve(cmd, a.config))
			if err != nil {
				return err
			}
			stats := m.Stats()
			_, err = fmt.Fprintf(a.stdout, "depth: %d\ncontexts: %d\ntransitions: %d\ntotal frequency: %d\nstarting symbols: %d\n",
				stats.Depth, stats.Contexts, stats.Transitions, stats.TotalFrequency, stats.StartingSymbols)
			return err
		},
	}

	model.register(cmd)
	return cmd
}
