package reconcile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/zrecon/internal/aggregate"
	"github.com/cleared-dev/zrecon/internal/importer"
	"github.com/cleared-dev/zrecon/internal/model"
	"github.com/cleared-dev/zrecon/internal/tabular"
)

// FileStatus is the outcome of processing one input file.
type FileStatus string

const (
	StatusNormalized FileStatus = "normalized"
	StatusIgnored    FileStatus = "ignored"
	StatusFailed     FileStatus = "failed"
)

// FileResult holds what was read and normalized from one file.
type FileResult struct {
	Name        string
	Format      string
	Status      FileStatus
	Table       model.Table
	Deposits    []model.DepositEntry
	Settlements []model.SettlementEntry
	Err         error
}

// Entries returns how many normalized entries the file produced.
func (r FileResult) Entries() int {
	return len(r.Deposits) + len(r.Settlements)
}

// Result is the output of one reconciliation run.
type Result struct {
	Files       []FileResult // same order as the input files
	Deposits    []model.DepositEntry
	Settlements []model.SettlementEntry
	Rows        []model.ReconciliationRow
}

// Failed returns the files that could not be normalized.
func (r *Result) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Status == StatusFailed {
			failed = append(failed, f)
		}
	}
	return failed
}

// Service runs the read, normalize, aggregate and merge steps over a batch
// of files.
type Service struct {
	registry *importer.Registry
	workers  int
	log      zerolog.Logger
}

// NewService creates a Service. workers < 1 means one file at a time.
func NewService(registry *importer.Registry, workers int, log zerolog.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{registry: registry, workers: workers, log: log}
}

// Run processes files concurrently. A file that fails is recorded in the
// result and does not stop the others; the reconciliation is computed from
// the files that succeeded. The only error returned is ctx's.
func (s *Service) Run(ctx context.Context, files []importer.FileInfo) (*Result, error) {
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.processFile(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("processing files: %w", err)
	}

	res := &Result{Files: results}
	var deposits []model.DepositEntry
	var settlements []model.SettlementEntry
	for _, fr := range results {
		deposits = append(deposits, fr.Deposits...)
		settlements = append(settlements, fr.Settlements...)
	}
	res.Deposits = aggregate.Deposits(deposits)
	res.Settlements = aggregate.Settlements(settlements)
	res.Rows = Merge(res.Deposits, res.Settlements)

	s.log.Info().
		Int("files", len(files)).
		Int("failed", len(res.Failed())).
		Int("bank_dates", len(res.Deposits)).
		Int("z_dates", len(res.Settlements)).
		Int("rows", len(res.Rows)).
		Msg("reconciliation complete")
	return res, nil
}

// Normalize reads and normalizes a single file without merging.
func (s *Service) Normalize(f importer.FileInfo) FileResult {
	return s.processFile(f)
}

func (s *Service) processFile(f importer.FileInfo) FileResult {
	fr := FileResult{Name: f.Name}
	logger := s.log.With().Str("file", f.Name).Logger()

	route, err := s.registry.Match(f.Name)
	if err != nil {
		return s.fail(logger, fr, err)
	}
	fr.Format = route.Format
	if route.Ignored() {
		fr.Status = StatusIgnored
		logger.Debug().Msg("file ignored")
		return fr
	}

	tbl, err := tabular.Read(f.Path, tabular.Options{Encoding: route.Encoding, Delimiter: route.Delimiter})
	if err != nil {
		return s.fail(logger, fr, err)
	}
	fr.Table = tbl

	if n := s.registry.Bank(route.Format); n != nil {
		fr.Deposits, err = n.Normalize(tbl)
	} else if n := s.registry.Settlement(route.Format); n != nil {
		fr.Settlements, err = n.Normalize(tbl)
	} else {
		err = fmt.Errorf("no normalizer registered for format %q", route.Format)
	}
	if err != nil {
		fr.Deposits, fr.Settlements = nil, nil
		return s.fail(logger, fr, err)
	}

	fr.Status = StatusNormalized
	logger.Debug().
		Str("format", fr.Format).
		Int("rows", len(tbl.Rows)).
		Int("entries", fr.Entries()).
		Msg("file normalized")
	return fr
}

func (s *Service) fail(logger zerolog.Logger, fr FileResult, err error) FileResult {
	fr.Status = StatusFailed
	fr.Err = err
	logger.Warn().Err(err).Str("format", fr.Format).Msg("file failed")
	return fr
}
