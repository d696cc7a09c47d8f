// Package lint validates CoNLL-U text and collects every finding as a
// diagnostic instead of stopping at the first error.
package lint

import (
	"fmt"
	"sort"
	"strings"
)

// Severity ranks a diagnostic.
type Severity int

const (
	// SeverityError marks data that violates the format.
	SeverityError Severity = iota
	// SeverityWarning marks data that is legal but suspicious.
	SeverityWarning
	// SeverityInfo marks informational findings.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity parses "error", "warning" or "info".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Rule     string   `json:"rule"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Line     int      `json:"line"`            // 1-based source line
	Field    int      `json:"field,omitempty"` // 1-based field index, 0 for the whole line
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s %s [%s] %s", d.Line, d.Severity, d.Rule, d.Name, d.Message)
}

// Report is the result of a lint run.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Sentences   int          `json:"sentences"`
	Tokens      int          `json:"tokens"`
}

// Count returns the number of diagnostics with the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Errors returns the number of error diagnostics.
func (r *Report) Errors() int {
	return r.Count(SeverityError)
}

// Warnings returns the number of warning diagnostics.
func (r *Report) Warnings() int {
	return r.Count(SeverityWarning)
}

// HasErrors reports whether any error diagnostic was found.
func (r *Report) HasErrors() bool {
	return r.Errors() > 0
}

func (r *Report) sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
}

// Options adjusts which rules run and how severe they are.
type Options struct {
	// Disabled lists rule IDs that are skipped.
	Disabled map[string]bool
	// Severity overrides the default severity per rule ID.
	Severity map[string]Severity
}

// DefaultOptions returns options with every rule enabled at its default
// severity.
func DefaultOptions() Options {
	return Options{
		Disabled: map[string]bool{},
		Severity: map[string]Severity{},
	}
}
