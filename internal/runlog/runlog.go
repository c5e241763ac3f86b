// Package runlog keeps an append-only CSV history of which files each
// reconciliation run processed and how.
package runlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/zrecon/internal/importer"
	"github.com/cleared-dev/zrecon/internal/reconcile"
)

// Entry is one file outcome of one run.
type Entry struct {
	Timestamp time.Time
	File      string
	Format    string
	Status    reconcile.FileStatus
	Entries   int
	Details   string
}

// Header is the CSV header of the run log.
const Header = "timestamp,file,format,status,entries,details"

const (
	numFields    = 6
	colTimestamp = 0
	colFile      = 1
	colFormat    = 2
	colStatus    = 3
	colEntries   = 4
	colDetails   = 5
)

// FormatUnknown is recorded for files no dispatch rule matched.
const FormatUnknown = "unknown"

// FromResult turns the per-file outcomes of a run into log entries stamped
// with ts, truncated to the second the log stores.
func FromResult(ts time.Time, res *reconcile.Result) []Entry {
	ts = ts.UTC().Truncate(time.Second)
	entries := make([]Entry, 0, len(res.Files))
	for _, f := range res.Files {
		e := Entry{
			Timestamp: ts,
			File:      f.Name,
			Format:    f.Format,
			Status:    f.Status,
			Entries:   f.Entries(),
		}
		if f.Err != nil {
			e.Details = f.Err.Error()
			var ufe *importer.UnknownFileFormatError
			if errors.As(f.Err, &ufe) {
				e.Format = FormatUnknown
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// Validate checks that an entry can be written and read back.
func (e Entry) Validate() error {
	switch e.Status {
	case reconcile.StatusNormalized, reconcile.StatusIgnored:
		if e.Details != "" {
			return fmt.Errorf("status %s carries details %q", e.Status, e.Details)
		}
	case reconcile.StatusFailed:
		if e.Entries != 0 {
			return fmt.Errorf("failed file %s reports %d entries", e.File, e.Entries)
		}
	default:
		return fmt.Errorf("unknown status %q", e.Status)
	}
	if e.File == "" {
		return errors.New("missing file name")
	}
	if e.Entries < 0 {
		return fmt.Errorf("negative entry count %d", e.Entries)
	}
	return nil
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colFormat] = e.Format
	row[colStatus] = string(e.Status)
	row[colEntries] = strconv.Itoa(e.Entries)
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	n, err := strconv.Atoi(record[colEntries])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing entries %q: %w", record[colEntries], err)
	}

	e := Entry{
		Timestamp: ts,
		File:      record[colFile],
		Format:    record[colFormat],
		Status:    reconcile.FileStatus(record[colStatus]),
		Entries:   n,
		Details:   record[colDetails],
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Append writes entries to the log at path, creating the file, its
// directory and the header if needed. Nothing is written if any entry is
// invalid.
func Append(path string, entries []Entry) error {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating run log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries of the log at path. A missing file yields none.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
