package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/zrecon/internal/config"
	"github.com/cleared-dev/zrecon/internal/importer"
	"github.com/cleared-dev/zrecon/internal/reconcile"
	"github.com/cleared-dev/zrecon/internal/report"
	"github.com/cleared-dev/zrecon/internal/runlog"
)

type reconcileOptions struct {
	dir        string
	configPath string
	exportPath string
	workers    int
	strict     bool
}

func newReconcileCommand(root *rootOptions) *cobra.Command {
	opts := reconcileOptions{}

	cmd := &cobra.Command{
		Use:   "reconcile [directory]",
		Short: "Reconcile bank statements against Z-reports",
		Long: `Reads every bank statement and Z-report export in the input directory,
prints the per-date reconciliation table and optionally exports it.

With a zrecon.yaml in the directory (or --config), inputs come from its
input.dir and the export and run log go where it says. Without one, the
directory itself holds the inputs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dir = "."
			if len(args) > 0 {
				opts.dir = args[0]
			}
			return runReconcile(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default <directory>/zrecon.yaml when present)")
	cmd.Flags().StringVar(&opts.exportPath, "export", "", "export the table to a .csv, .xlsx or .pdf file")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "files processed in parallel (default from config)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error when any file fails")

	return cmd
}

// project is the resolved configuration of one run, with paths made
// absolute.
type project struct {
	cfg      *config.Config
	inputDir string
	export   string
	runLog   string
}

func loadProject(dir, configPath string) (*project, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if configPath == "" {
		candidate := filepath.Join(absDir, config.FileName)
		if _, err := os.Stat(candidate); err == nil {
			configPath = candidate
		}
	}
	if configPath == "" {
		return &project{cfg: config.Default(), inputDir: absDir}, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	base, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	return &project{
		cfg:      cfg,
		inputDir: resolve(base, cfg.Input.Dir),
		export:   resolve(base, cfg.Output.Path),
		runLog:   resolve(base, cfg.Output.RunLog),
	}, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func runReconcile(ctx context.Context, stdout, stderr io.Writer, root *rootOptions, opts reconcileOptions) error {
	p, err := loadProject(opts.dir, opts.configPath)
	if err != nil {
		return err
	}
	if opts.exportPath != "" {
		p.export = opts.exportPath
	}
	workers := p.cfg.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}

	log, err := root.logger(stderr, p.cfg.Log.Level)
	if err != nil {
		return err
	}
	registry, err := p.cfg.Registry()
	if err != nil {
		return err
	}

	files, err := importer.Scan(p.inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(stdout, "No input files in %s\n", p.inputDir)
		return nil
	}
	log.Debug().Str("dir", p.inputDir).Int("files", len(files)).Int("workers", workers).Msg("starting reconciliation")

	started := time.Now()
	res, err := reconcile.NewService(registry, workers, log).Run(ctx, files)
	if err != nil {
		return err
	}

	failed := res.Failed()
	for _, f := range failed {
		fmt.Fprintf(stderr, "FAILED %s: %v\n", f.Name, f.Err)
	}

	if len(res.Rows) == 0 {
		fmt.Fprintln(stdout, "No entries to reconcile")
	} else if err := report.WriteTable(stdout, res.Rows); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	if p.export != "" && len(res.Rows) > 0 {
		wb := report.Workbook{Rows: res.Rows, Deposits: res.Deposits, Settlements: res.Settlements}
		if err := report.Export(p.export, wb); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported to %s\n", p.export)
	}

	if p.runLog != "" {
		if err := runlog.Append(p.runLog, runlog.FromResult(started, res)); err != nil {
			return fmt.Errorf("writing run log: %w", err)
		}
	}

	if opts.strict && len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed", len(failed), len(files))
	}
	return nil
}
