package source

import (
	"math"
	"sync/atomic"
)

// ProgressSource supplies the normalized scroll progress for the next frame
type ProgressSource interface {
	Progress() float32
}

// LatestSource keeps the most recent progress pushed by a scroll observer.
// Set may run on any goroutine; the frame loop reads one snapshot per tick.
type LatestSource struct {
	bits atomic.Uint32
}

func NewLatestSource(initial float32) *LatestSource {
	s := &LatestSource{}
	s.Set(initial)
	return s
}

func (s *LatestSource) Set(progress float32) {
	s.bits.Store(math.Float32bits(progress))
}

func (s *LatestSource) Progress() float32 {
	return math.Float32frombits(s.bits.Load())
}

// ProgressFromScroll maps a scroll offset to progress in [0,1]. A document
// that fits in the viewport has nothing to scroll and reports 0.
func ProgressFromScroll(offset, documentHeight, viewportHeight float32) float32 {
	scrollable := documentHeight - viewportHeight
	if !(scrollable > 0) {
		return 0
	}
	p := offset / scrollable
	if p != p {
		return 0
	}
	return min(max(p, 0), 1)
}
