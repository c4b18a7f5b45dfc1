package source

// ScriptedSource sweeps progress from 0 to 1 over a fixed number of frames,
// optionally holding each end for Hold extra frames. Each call to Progress
// consumes one frame; past the end it keeps returning 1.
type ScriptedSource struct {
	Frames int
	Hold   int

	frame int
}

func NewScriptedSource(frames, hold int) *ScriptedSource {
	return &ScriptedSource{Frames: frames, Hold: max(hold, 0)}
}

// Len is the number of frames the script produces
func (s *ScriptedSource) Len() int {
	return s.Frames + 2*s.Hold
}

func (s *ScriptedSource) Progress() float32 {
	p := s.At(s.frame)
	s.frame++
	return p
}

// At returns the progress of frame i without advancing the script
func (s *ScriptedSource) At(i int) float32 {
	i -= s.Hold
	switch {
	case i <= 0:
		return 0
	case i >= s.Frames-1:
		return 1
	}
	return float32(i) / float32(s.Frames-1)
}

func (s *ScriptedSource) Reset() {
	s.frame = 0
}
