package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	configPath string
	logLevel   string

	config *Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// newRootCmd builds the command tree writing words to stdout and logs to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		config: DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(stderr, nil)),
		stdout: stdout,
		stderr: stderr,
	}

	rootCmd := &cobra.Command{
		Use:   "wordgen",
		Short: "Generate random words from character n-gram statistics",
		Long: `wordgen learns how words are spelled from wordlists and free text and
generates new, plausible-looking words from what it learned.

Train a model once with "learn", then generate as many words as needed with
"generate". Models live in compressed dictionary files or in a SQLite
database holding several named models.`,
		Version:       Version + " (" + Commit + ", " + BuildDate + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "wordgen.json", "path of the JSON config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		a.newGenerateCmd(),
		a.newLearnCmd(),
		a.newStatsCmd(),
		a.newDBCmd(),
		a.newConfigCmd(),
	)
	return rootCmd
}

// setup loads the config file and builds the logger for the command run.
func (a *app) setup(cmd *cobra.Command) error {
	config, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.config = config

	level := config.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = a.logLevel
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: parseLogLevel(level)}))
	a.logger.Debug("Configuration loaded", slog.String("config_path", a.configPath))
	return nil
}

func main() {
	baseLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		baseLogger.Error("wordgen failed", "error", err)
		os.Exit(1)
	}
}
