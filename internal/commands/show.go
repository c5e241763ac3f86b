package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/zrecon/internal/model"
	"github.com/cleared-dev/zrecon/internal/report"
)

func newShowCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "show <export.csv>",
		Short: "Print a reconciliation table exported as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), args[0], from, to)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date to show, dd.MM.yyyy")
	cmd.Flags().StringVar(&to, "to", "", "last date to show, dd.MM.yyyy")

	return cmd
}

func runShow(w io.Writer, path, fromFlag, toFlag string) error {
	from, err := optionalDate("from", fromFlag)
	if err != nil {
		return err
	}
	to, err := optionalDate("to", toFlag)
	if err != nil {
		return err
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return fmt.Errorf("--from %s is after --to %s", from, to)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	rows, err := report.ReadCSV(f)
	if err != nil {
		return err
	}
	rows = rowsBetween(rows, from, to)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No rows in range")
		return nil
	}
	return report.WriteTable(w, rows)
}

func optionalDate(name, value string) (model.Date, error) {
	if value == "" {
		return model.Date{}, nil
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return model.Date{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

// rowsBetween keeps rows dated within [from, to]. A zero bound is open.
func rowsBetween(rows []model.ReconciliationRow, from, to model.Date) []model.ReconciliationRow {
	var out []model.ReconciliationRow
	for _, row := range rows {
		if !from.IsZero() && row.Date.Before(from) {
			continue
		}
		if !to.IsZero() && row.Date.After(to) {
			continue
		}
		out = append(out, row)
	}
	return out
}
