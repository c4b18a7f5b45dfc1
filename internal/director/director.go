package director

import (
	"github.com/pkg/errors"
)

// Director maps measured page sections onto scroll progress ranges
type Director struct {
	ViewportHeight float32
}

// NewDirector creates a new Director for the given viewport height in pixels
func NewDirector(viewportHeight float32) *Director {
	return &Director{
		ViewportHeight: viewportHeight,
	}
}

// Layout assigns progress ranges to sections from their rendered heights.
// Progress is scroll offset over scrollable height (document minus viewport),
// so the last section ends at 1.0 and neighbouring sections always touch.
func (d *Director) Layout(sections []Section, heights []float32) ([]Section, error) {
	if len(sections) == 0 {
		return nil, errors.New("no sections to lay out")
	}
	if len(sections) != len(heights) {
		return nil, errors.Errorf("got %d sections but %d heights", len(sections), len(heights))
	}

	total := float32(0)
	for i, h := range heights {
		if h < 0 {
			return nil, errors.Errorf("section %d has negative height %v", i, h)
		}
		total += h
	}

	scrollable := total - d.ViewportHeight
	if scrollable <= 0 {
		return nil, errors.Errorf("document height %v does not exceed viewport height %v", total, d.ViewportHeight)
	}

	laidOut := make([]Section, len(sections))
	copy(laidOut, sections)

	offset := float32(0)
	for i := range laidOut {
		laidOut[i].ProgressStart = d.progressAt(offset, scrollable)
		offset += heights[i]
		laidOut[i].ProgressEnd = d.progressAt(offset, scrollable)
	}
	laidOut[len(laidOut)-1].ProgressEnd = 1.0

	return laidOut, nil
}

// progressAt converts a scroll offset into clamped progress
func (d *Director) progressAt(offset, scrollable float32) float32 {
	p := offset / scrollable
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
