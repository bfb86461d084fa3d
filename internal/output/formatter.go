package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/debtsim/payoff-calculator/internal/domain"
)

// Report bundles everything a formatter may render: the single-plan result
// plus the optional comparison and Monte Carlo sections.
type Report struct {
	Result     *domain.PlanResult         `json:"result"`
	Comparison *domain.StrategyComparison `json:"comparison,omitempty"`
	MonteCarlo *domain.MonteCarloResult   `json:"monte_carlo,omitempty"`
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic
// formatting).
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
	PDFFormatter{},
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":  "console",
	"plain": "console",
	"table": "console",
}

// NormalizeFormatName lowercases a format name and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if resolved, ok := aliasMap[n]; ok {
		return resolved
	}
	return n
}

// GetFormatterByName fetches a registered formatter, or nil if unknown.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// WriteFormatted runs a formatter and writes its output to a timestamped
// file with the given extension, returning the filename.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("payoff_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
