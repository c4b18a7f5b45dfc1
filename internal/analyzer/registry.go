package analyzer

import (
	"fmt"

	"github.com/ivlev/scrollscene/internal/director"
)

// NewDetector creates a detector based on the specified variant
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "contiguity":
		return NewContiguityDetector(), nil
	case "range":
		return NewRangeDetector(), nil
	case "all", "":
		return CompositeDetector{NewContiguityDetector(), NewRangeDetector()}, nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}

// CompositeDetector runs detectors in order and concatenates their issues
type CompositeDetector []Detector

func (c CompositeDetector) Detect(sections []director.Section) ([]Issue, error) {
	var issues []Issue
	for _, d := range c {
		found, err := d.Detect(sections)
		if err != nil {
			return nil, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}
