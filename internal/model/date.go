package model

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the dd.MM.yyyy form used for every date in the pipeline.
const DateLayout = "02.01.2006"

var dateShape = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// Date is a calendar date without time of day. It is comparable and used as
// the grouping key throughout the pipeline; ordering always goes through
// Compare, never through the string form.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the Date for a time, discarding the time of day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a strict dd.MM.yyyy value.
func ParseDate(s string) (Date, error) {
	if !dateShape.MatchString(s) {
		return Date{}, fmt.Errorf("date %q is not dd.MM.yyyy", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return NewDate(t), nil
}

// MustParseDate is ParseDate for literals; it panics on bad input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 by calendar order.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// String renders dd.MM.yyyy.
func (d Date) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// excelEpoch is the day the legacy spreadsheet serial arithmetic counts from.
var excelEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Spreadsheet serials are valid from 1 (31.12.1899 here) up to 2958465
// (31.12.9999), inclusive of any fraction of the last day.
const (
	minSerial = 1
	maxSerial = 2958465
)

// ErrSerialRange is returned for serials that are not finite or fall outside
// the spreadsheet date range.
var ErrSerialRange = errors.New("serial date out of range")

// FromSerial converts a spreadsheet serial date. The result is
// 1900-01-01 + (serial - 2) days with any fractional day dropped, which
// reproduces the 1900 leap-year bug the exports were written with.
func FromSerial(serial float64) (Date, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < minSerial || serial >= maxSerial+1 {
		return Date{}, fmt.Errorf("serial %v: %w", serial, ErrSerialRange)
	}
	days := int(math.Floor(serial - 2))
	return NewDate(excelEpoch.AddDate(0, 0, days)), nil
}

// ParseSerial parses a textual serial number and converts it with FromSerial.
func ParseSerial(s string) (Date, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Date{}, fmt.Errorf("parsing serial date %q: %w", s, err)
	}
	return FromSerial(f)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
