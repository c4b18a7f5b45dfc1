package analyzer

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/ivlev/scrollscene/internal/director"
)

// ContiguityDetector checks that sections tile progress 0..1 end to end.
// Between a gap or overlap the curve silently follows the next section's
// start, which is usually an authoring slip.
type ContiguityDetector struct {
	Tolerance float32
}

func NewContiguityDetector() *ContiguityDetector {
	return &ContiguityDetector{
		Tolerance: 1e-4,
	}
}

func (d *ContiguityDetector) Detect(sections []director.Section) ([]Issue, error) {
	if len(sections) == 0 {
		return []Issue{{Kind: "empty", Severity: SeverityError, Message: "scenario has no sections"}}, nil
	}

	var issues []Issue

	first, last := sections[0], sections[len(sections)-1]
	if math32.Abs(first.ProgressStart) > d.Tolerance {
		issues = append(issues, Issue{
			Section:  sectionName(0, first),
			Kind:     "coverage",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("first section starts at %.4f, progress below holds its values", first.ProgressStart),
		})
	}
	if math32.Abs(last.ProgressEnd-1) > d.Tolerance {
		issues = append(issues, Issue{
			Section:  sectionName(len(sections)-1, last),
			Kind:     "coverage",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("last section ends at %.4f, progress above holds its values", last.ProgressEnd),
		})
	}

	for i, s := range sections {
		name := sectionName(i, s)
		switch {
		case s.ProgressStart > s.ProgressEnd:
			issues = append(issues, Issue{
				Section:  name,
				Kind:     "order",
				Severity: SeverityError,
				Message:  fmt.Sprintf("starts at %.4f after it ends at %.4f", s.ProgressStart, s.ProgressEnd),
			})
		case s.ProgressStart == s.ProgressEnd:
			issues = append(issues, Issue{
				Section:  name,
				Kind:     "degenerate",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("zero length at %.4f, its values only apply at that point", s.ProgressStart),
			})
		}

		if i == 0 {
			continue
		}
		prev := sections[i-1]
		delta := s.ProgressStart - prev.ProgressEnd
		switch {
		case delta > d.Tolerance:
			issues = append(issues, Issue{
				Section:  name,
				Kind:     "gap",
				Severity: SeverityWarning,
				Message: fmt.Sprintf("gap of %.4f after %s (%.4f..%.4f interpolates toward this section)",
					delta, sectionName(i-1, prev), prev.ProgressEnd, s.ProgressStart),
			})
		case delta < -d.Tolerance:
			sev := SeverityWarning
			if s.ProgressStart < prev.ProgressStart {
				sev = SeverityError
			}
			issues = append(issues, Issue{
				Section:  name,
				Kind:     "overlap",
				Severity: sev,
				Message: fmt.Sprintf("overlaps %s by %.4f (%.4f..%.4f)",
					sectionName(i-1, prev), -delta, s.ProgressStart, prev.ProgressEnd),
			})
		}
	}

	return issues, nil
}
