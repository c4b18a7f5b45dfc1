package analyzer

import (
	"fmt"

	"github.com/ivlev/scrollscene/internal/director"
	"github.com/ivlev/scrollscene/internal/math"
)

// RangeDetector checks channel values a renderer can use as-is
type RangeDetector struct{}

func NewRangeDetector() *RangeDetector {
	return &RangeDetector{}
}

func (d *RangeDetector) Detect(sections []director.Section) ([]Issue, error) {
	var issues []Issue

	for i, s := range sections {
		name := sectionName(i, s)

		fields := []struct {
			name  string
			value float32
		}{
			{"progressStart", s.ProgressStart},
			{"progressEnd", s.ProgressEnd},
			{"rotation", s.Rotation},
			{"zoom", s.Zoom},
			{"cameraVerticalOffset", s.CameraVerticalOffset},
			{"cameraHorizontalOffset", s.CameraHorizontalOffset},
			{"opacity", s.Opacity},
		}
		for _, f := range fields {
			if !math.IsFinite(f.value) {
				issues = append(issues, Issue{
					Section:  name,
					Kind:     "range",
					Severity: SeverityError,
					Message:  fmt.Sprintf("%s is %v", f.name, f.value),
				})
			}
		}

		if s.Zoom <= 0 {
			issues = append(issues, Issue{
				Section:  name,
				Kind:     "range",
				Severity: SeverityError,
				Message:  fmt.Sprintf("zoom %.4f must be positive", s.Zoom),
			})
		}
		if s.Opacity < 0 || s.Opacity > 1 {
			issues = append(issues, Issue{
				Section:  name,
				Kind:     "range",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("opacity %.4f is clamped to [0, 1] when drawn", s.Opacity),
			})
		}
		if s.ProgressStart < 0 || s.ProgressEnd > 1 {
			issues = append(issues, Issue{
				Section:  name,
				Kind:     "range",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("progress %.4f..%.4f leaves [0, 1]", s.ProgressStart, s.ProgressEnd),
			})
		}
	}

	return issues, nil
}
