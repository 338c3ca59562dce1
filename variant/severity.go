package variant

import (
	"fmt"
	"strings"
)

// Severity is the log level a variant is dispatched at.
// Severities are ordered for display only; the dispatch engine never compares them.
type Severity string

const (
	SeverityTrace Severity = "trace"
	SeverityDebug Severity = "debug"
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
	SeverityFatal Severity = "fatal"
)

// DefaultSeverity is used by definitions that do not declare one.
const DefaultSeverity = SeverityError

var severities = []Severity{SeverityTrace, SeverityDebug, SeverityInfo, SeverityWarn, SeverityError, SeverityFatal}

// returns all severities from least to most severe
func Severities() []Severity {
	out := make([]Severity, len(severities))
	copy(out, severities)
	return out
}

// reports whether s is one of the six known severities
func (s Severity) Valid() bool {
	for _, known := range severities {
		if s == known {
			return true
		}
	}

	return false
}

func (s Severity) String() string {
	return string(s)
}

// parses a severity name, case-insensitive
func ParseSeverity(name string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown severity %q", name)
	}

	return s, nil
}
