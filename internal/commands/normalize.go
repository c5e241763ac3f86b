package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/zrecon/internal/config"
	"github.com/cleared-dev/zrecon/internal/importer"
	"github.com/cleared-dev/zrecon/internal/reconcile"
	"github.com/cleared-dev/zrecon/internal/report"
)

func newNormalizeCommand(root *rootOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "normalize <file>...",
		Short: "Print the normalized entries of individual files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd.OutOrStdout(), cmd.ErrOrStderr(), root, configPath, args)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file with format rules")

	return cmd
}

func runNormalize(stdout, stderr io.Writer, root *rootOptions, configPath string, paths []string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	log, err := root.logger(stderr, cfg.Log.Level)
	if err != nil {
		return err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	files, err := importer.Files(paths)
	if err != nil {
		return err
	}

	svc := reconcile.NewService(registry, 1, log)
	failed := 0
	for i, f := range files {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fr := svc.Normalize(f)
		fmt.Fprintf(stdout, "== %s [%s] %s\n", fr.Name, fr.Format, fr.Status)

		switch {
		case fr.Err != nil:
			failed++
			fmt.Fprintf(stdout, "error: %v\n", fr.Err)
		case fr.Status == reconcile.StatusIgnored:
		case registry.Settlement(fr.Format) != nil:
			err = report.WriteSettlements(stdout, fr.Settlements)
		default:
			err = report.WriteDeposits(stdout, fr.Deposits)
		}
		if err != nil {
			return fmt.Errorf("writing entries: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
