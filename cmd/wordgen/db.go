package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/CTAG07/wordgen/pkg/markov"
	"github.com/spf13/cobra"
)

func (a *app) newDBCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage named models in a SQLite database",
		Long: `Manage the models stored in a SQLite database.

Available subcommands:
  list   - List stored models with their size
  import - Store a dictionary file under a name
  export - Write a stored model to a dictionary file
  remove - Delete a stored model`,
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path")

	database := func(cmd *cobra.Command) (string, error) {
		path := resolveString(cmd, "db", dbPath, a.config.DatabasePath)
		if path == "" {
			return "", errors.New("no database given: set --db or database_path in the config")
		}
		return path, nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := database(cmd)
			if err != nil {
				return err
			}
			s, closeStore, err := a.openStore(path)
			if err != nil {
				return err
			}
			defer closeStore()

			stats, err := s.GetStats(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tDEPTH\tCONTEXTS\tTRANSITIONS")
			for _, m := range stats.Models {
				st := stats.Stats[m.Id]
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", m.Name, m.Depth, st.Contexts, st.Transitions)
			}
			return tw.Flush()
		},
	}

	importCmd := &cobra.Command{
		Use:   "import NAME DICT",
		Short: "Store a dictionary file under NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := database(cmd)
			if err != nil {
				return err
			}
			m, err := markov.LoadFile(args[1])
			if err != nil {
				return err
			}
			s, closeStore, err := a.openStore(path)
			if err != nil {
				return err
			}
			defer closeStore()
			_, err = s.SaveModel(cmd.Context(), args[0], m)
			return err
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export NAME DICT",
		Short: "Write the model NAME to a dictionary file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := database(cmd)
			if err != nil {
				return err
			}
			s, closeStore, err := a.openStore(path)
			if err != nil {
				return err
			}
			defer closeStore()
			m, err := s.LoadModel(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("could not load model '%s': %w", args[0], err)
			}
			return m.SaveFile(args[1])
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Delete the model NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := database(cmd)
			if err != nil {
				return err
			}
			s, closeStore, err := a.openStore(path)
			if err != nil {
				return err
			}
			defer closeStore()
			info, err := s.GetModelInfo(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("could not find model '%s': %w", args[0], err)
			}
			return s.RemoveModel(cmd.Context(), info)
		},
	}

	cmd.AddCommand(listCmd, importCmd, exportCmd, removeCmd)
	return cmd
}
