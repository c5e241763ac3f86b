package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/cleared-dev/zrecon/internal/model"
)

// Built-in format names.
const (
	FormatAval       = "aval"
	FormatMonobank   = "monobank"
	FormatNovaPay    = "novapay"
	FormatPrivatBank = "privatbank"
	FormatZReport    = "zreport"

	// FormatIgnore marks files that are recognised but deliberately skipped.
	FormatIgnore = "ignore"
)

// Source is anything registered under a format name.
type Source interface {
	Format() string
}

// BankNormalizer converts one bank's statement table into deposit entries.
type BankNormalizer interface {
	Source
	Normalize(t model.Table) ([]model.DepositEntry, error)
}

// SettlementNormalizer converts a Z-report table into settlement entries.
type SettlementNormalizer interface {
	Source
	Normalize(t model.Table) ([]model.SettlementEntry, error)
}

// Rule maps a file name pattern to a format and the reader settings its
// files need.
type Rule struct {
	Pattern   string `yaml:"pattern"`
	Format    string `yaml:"format"`
	Encoding  string `yaml:"encoding,omitempty"`
	Delimiter string `yaml:"delimiter,omitempty"`
}

// DefaultRules returns the built-in dispatch table. Order matters: the first
// matching rule wins.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: `^\d{16}\.csv$`, Format: FormatPrivatBank, Encoding: "windows-1251", Delimiter: ";"},
		{Pattern: `^export.*\.csv$`, Format: FormatAval, Encoding: "windows-1251", Delimiter: ";"},
		{Pattern: `^report_`, Format: FormatMonobank, Encoding: "utf-8", Delimiter: ","},
		{Pattern: `^NovaPay`, Format: FormatNovaPay, Encoding: "utf-8", Delimiter: ";"},
		{Pattern: `^Реєстр_платежів_`, Format: FormatIgnore},
		{Pattern: `(?i)\.xlsx$`, Format: FormatZReport},
	}
}

// Route is the outcome of matching a file name.
type Route struct {
	Rule
	Name string
}

// Ignored reports whether the file is recognised but not processed.
func (r Route) Ignored() bool { return r.Format == FormatIgnore }

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Registry holds named normalizers and the file name dispatch rules.
type Registry struct {
	banks       map[string]BankNormalizer
	settlements map[string]SettlementNormalizer
	rules       []compiledRule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		banks:       make(map[string]BankNormalizer),
		settlements: make(map[string]SettlementNormalizer),
	}
}

// Register adds a normalizer. Panics on duplicate format or on a value that
// is neither a BankNormalizer nor a SettlementNormalizer.
func (r *Registry) Register(s Source) {
	key := strings.ToLower(s.Format())
	if r.has(key) {
		panic("duplicate normalizer format: " + key)
	}
	switch n := s.(type) {
	case BankNormalizer:
		r.banks[key] = n
	case SettlementNormalizer:
		r.settlements[key] = n
	default:
		panic(fmt.Sprintf("normalizer %s has no Normalize method", key))
	}
}

func (r *Registry) has(key string) bool {
	_, bank := r.banks[key]
	_, settlement := r.settlements[key]
	return bank || settlement
}

// Bank returns the bank normalizer for format, or nil.
func (r *Registry) Bank(format string) BankNormalizer {
	return r.banks[strings.ToLower(format)]
}

// Settlement returns the settlement normalizer for format, or nil.
func (r *Registry) Settlement(format string) SettlementNormalizer {
	return r.settlements[strings.ToLower(format)]
}

// SetRules replaces the dispatch table. Every rule must compile and name a
// registered format or FormatIgnore.
func (r *Registry) SetRules(rules []Rule) error {
	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("rule %d: compiling pattern %q: %w", i+1, rule.Pattern, err)
		}
		if rule.Format != FormatIgnore && !r.has(strings.ToLower(rule.Format)) {
			return fmt.Errorf("rule %d: unknown format %q", i+1, rule.Format)
		}
		compiled = append(compiled, compiledRule{Rule: rule, re: re})
	}
	r.rules = compiled
	return nil
}

// Match returns the route for a file name (base name only), or an
// *UnknownFileFormatError when no rule matches.
func (r *Registry) Match(name string) (Route, error) {
	base := filepath.Base(name)
	for _, rule := range r.rules {
		if rule.re.MatchString(base) {
			return Route{Rule: rule.Rule, Name: base}, nil
		}
	}
	return Route{}, &UnknownFileFormatError{Name: base}
}

// DefaultRegistry returns a registry with all built-in normalizers and the
// default dispatch table.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&AvalParser{})
	r.Register(&MonobankParser{})
	r.Register(&NovaPayParser{})
	r.Register(&PrivatBankParser{})
	r.Register(&ZReportParser{})
	if err := r.SetRules(DefaultRules()); err != nil {
		panic(err)
	}
	return r
}

// FileInfo describes an input file.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

var inputExts = []string{".csv", ".xlsx"}

// Scan returns the CSV and XLSX files directly inside dir, sorted by name.
// A missing directory yields no files.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !slices.Contains(inputExts, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// Files builds FileInfo values for explicit paths.
func Files(paths []string) ([]FileInfo, error) {
	files := make([]FileInfo, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", p)
		}
		files = append(files, FileInfo{Name: info.Name(), Path: p, Size: info.Size()})
	}
	return files, nil
}
