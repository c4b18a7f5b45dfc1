package renderer

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/ivlev/scrollscene/internal/director"
	"github.com/ivlev/scrollscene/internal/math"
)

var (
	ErrEmptyKeyframeTable   = errors.New("keyframe table has no breakpoints")
	ErrUnorderedBreakpoints = errors.New("breakpoints are not ordered by progress")
)

// Channel is one independently interpolated animation value
type Channel int

const (
	ChannelRotation Channel = iota
	ChannelZoom
	ChannelCameraVerticalOffset
	ChannelCameraHorizontalOffset
	ChannelOpacity

	channelCount
)

// Channels lists every channel in table order
var Channels = [channelCount]Channel{
	ChannelRotation,
	ChannelZoom,
	ChannelCameraVerticalOffset,
	ChannelCameraHorizontalOffset,
	ChannelOpacity,
}

func (c Channel) String() string {
	switch c {
	case ChannelRotation:
		return "rotation"
	case ChannelZoom:
		return "zoom"
	case ChannelCameraVerticalOffset:
		return "cameraVerticalOffset"
	case ChannelCameraHorizontalOffset:
		return "cameraHorizontalOffset"
	case ChannelOpacity:
		return "opacity"
	default:
		return "unknown"
	}
}

// sectionValue reads the authored value of channel c from a section
func sectionValue(s director.Section, c Channel) float32 {
	switch c {
	case ChannelRotation:
		return s.Rotation
	case ChannelZoom:
		return s.Zoom
	case ChannelCameraVerticalOffset:
		return s.CameraVerticalOffset
	case ChannelCameraHorizontalOffset:
		return s.CameraHorizontalOffset
	case ChannelOpacity:
		return s.Opacity
	}
	return 0
}

// Breakpoint anchors a channel curve at a progress value
type Breakpoint struct {
	Progress float32
	Value    float32
}

// BreakpointTable holds the per-channel curves. Immutable after construction.
type BreakpointTable struct {
	channels [channelCount][]Breakpoint
}

// NewBreakpointTable samples every section's start plus the last section's end.
// An interior section's end value is therefore whatever the next section starts with.
func NewBreakpointTable(sections []director.Section) (*BreakpointTable, error) {
	if len(sections) == 0 {
		return nil, ErrEmptyKeyframeTable
	}

	for i, s := range sections {
		if s.ProgressStart > s.ProgressEnd {
			return nil, errors.Wrapf(ErrUnorderedBreakpoints,
				"section %d (%s) starts at %v after it ends at %v", i, s.ID, s.ProgressStart, s.ProgressEnd)
		}
	}

	channels := make(map[Channel][]Breakpoint, channelCount)
	for _, c := range Channels {
		bps := make([]Breakpoint, 0, len(sections)+1)
		for _, s := range sections {
			bps = append(bps, Breakpoint{Progress: s.ProgressStart, Value: sectionValue(s, c)})
		}
		last := sections[len(sections)-1]
		bps = append(bps, Breakpoint{Progress: last.ProgressEnd, Value: sectionValue(last, c)})
		channels[c] = bps
	}

	return NewBreakpointTableFromChannels(channels)
}

// NewBreakpointTableFromChannels builds a table from explicit curves. Every
// channel needs at least one breakpoint and progress must not decrease.
func NewBreakpointTableFromChannels(channels map[Channel][]Breakpoint) (*BreakpointTable, error) {
	t := &BreakpointTable{}
	for _, c := range Channels {
		bps := channels[c]
		if len(bps) == 0 {
			return nil, errors.Wrapf(ErrEmptyKeyframeTable, "channel %s", c)
		}
		for i, bp := range bps {
			if !math.IsFinite(bp.Progress) || !math.IsFinite(bp.Value) {
				return nil, errors.Wrapf(ErrUnorderedBreakpoints, "channel %s breakpoint %d is not finite", c, i)
			}
			if i > 0 && bp.Progress < bps[i-1].Progress {
				return nil, errors.Wrapf(ErrUnorderedBreakpoints,
					"channel %s breakpoint %d at %v precedes %v", c, i, bp.Progress, bps[i-1].Progress)
			}
		}
		t.channels[c] = append([]Breakpoint(nil), bps...)
	}
	return t, nil
}

// Breakpoints returns a copy of the curve for channel c
func (t *BreakpointTable) Breakpoints(c Channel) []Breakpoint {
	if c < 0 || c >= channelCount {
		return nil
	}
	return append([]Breakpoint(nil), t.channels[c]...)
}

// AnimationState is the value of every channel for one progress snapshot
type AnimationState struct {
	Rotation               float32
	Zoom                   float32
	CameraVerticalOffset   float32
	CameraHorizontalOffset float32
	Opacity                float32
}

func (s AnimationState) Value(c Channel) float32 {
	switch c {
	case ChannelRotation:
		return s.Rotation
	case ChannelZoom:
		return s.Zoom
	case ChannelCameraVerticalOffset:
		return s.CameraVerticalOffset
	case ChannelCameraHorizontalOffset:
		return s.CameraHorizontalOffset
	case ChannelOpacity:
		return s.Opacity
	}
	return 0
}

// KeyframeInterpolator maps scroll progress to channel values.
// Stateless beyond its table, so one instance can serve any number of readers.
type KeyframeInterpolator struct {
	table *BreakpointTable
}

func NewKeyframeInterpolator(table *BreakpointTable) *KeyframeInterpolator {
	return &KeyframeInterpolator{table: table}
}

// Table returns the breakpoint table the interpolator reads from
func (ki *KeyframeInterpolator) Table() *BreakpointTable {
	return ki.table
}

// Interpolate calculates every channel at the given progress
func (ki *KeyframeInterpolator) Interpolate(progress float32) AnimationState {
	return AnimationState{
		Rotation:               ki.InterpolateChannel(ChannelRotation, progress),
		Zoom:                   ki.InterpolateChannel(ChannelZoom, progress),
		CameraVerticalOffset:   ki.InterpolateChannel(ChannelCameraVerticalOffset, progress),
		CameraHorizontalOffset: ki.InterpolateChannel(ChannelCameraHorizontalOffset, progress),
		Opacity:                ki.InterpolateChannel(ChannelOpacity, progress),
	}
}

func (ki *KeyframeInterpolator) InterpolateChannel(c Channel, progress float32) float32 {
	if c < 0 || c >= channelCount {
		return 0
	}
	return interpolateBreakpoints(ki.table.channels[c], progress)
}

func interpolateBreakpoints(bps []Breakpoint, progress float32) float32 {
	first, last := bps[0], bps[len(bps)-1]

	// Out of range (and NaN) progress holds the end values
	if math32.IsNaN(progress) || progress <= first.Progress {
		return first.Value
	}
	if progress >= last.Progress {
		return last.Value
	}

	// First breakpoint at or after progress; 0 < i < len(bps) here
	i := sort.Search(len(bps), func(i int) bool {
		return bps[i].Progress >= progress
	})
	next := bps[i]
	if next.Progress == progress {
		return next.Value
	}
	prev := bps[i-1]

	span := next.Progress - prev.Progress
	if span == 0 {
		return prev.Value
	}
	return math.Lerp(prev.Value, next.Value, (progress-prev.Progress)/span)
}
