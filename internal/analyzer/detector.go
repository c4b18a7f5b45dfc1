package analyzer

import (
	"fmt"

	"github.com/ivlev/scrollscene/internal/director"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Issue represents one authoring problem found in a scenario
type Issue struct {
	Section  string // section ID, empty for scenario-wide issues
	Kind     string // "gap", "overlap", "degenerate", "range", ...
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	if i.Section == "" {
		return fmt.Sprintf("%s [%s] %s", i.Severity, i.Kind, i.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", i.Severity, i.Kind, i.Section, i.Message)
}

// Detector is the interface for scenario lint strategies.
// Detectors report problems; they never rewrite the sections.
type Detector interface {
	Detect(sections []director.Section) ([]Issue, error)
}

// HasErrors reports whether any issue is an error
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func sectionName(i int, s director.Section) string {
	if s.ID != "" {
		return s.ID
	}
	return fmt.Sprintf("#%d", i)
}
