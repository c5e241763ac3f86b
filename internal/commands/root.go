package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/zrecon/internal/buildinfo"
)

type rootOptions struct {
	logLevel string
	logJSON  bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "zrecon",
		Short:   "Reconcile POS Z-reports against bank deposits",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "write logs as JSON")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newReconcileCommand(opts))
	rootCmd.AddCommand(newNormalizeCommand(opts))
	rootCmd.AddCommand(newShowCommand())

	return rootCmd
}

// logger builds the command logger on stderr. The --log-level flag wins over
// the configured level.
func (o *rootOptions) logger(w io.Writer, configured string) (zerolog.Logger, error) {
	name := configured
	if o.logLevel != "" {
		name = o.logLevel
	}
	level := zerolog.InfoLevel
	if name != "" {
		var err error
		level, err = zerolog.ParseLevel(name)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parsing log level: %w", err)
		}
	}

	if w == nil {
		w = os.Stderr
	}
	if !o.logJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
