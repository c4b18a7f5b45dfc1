package track

import (
	"github.com/google/uuid"

	"github.com/ivlev/scrollscene/internal/math"
)

// Frame is one baked tick of a scene
type Frame struct {
	Index            int       `yaml:"index"`
	Progress         float32   `yaml:"progress"`
	Rotation         float32   `yaml:"rotation"`
	Zoom             float32   `yaml:"zoom"`
	VerticalOffset   float32   `yaml:"verticalOffset"`
	HorizontalOffset float32   `yaml:"horizontalOffset"`
	Opacity          float32   `yaml:"opacity"`
	Camera           math.Vec3 `yaml:"camera"`
	LookAt           math.Vec3 `yaml:"lookAt"`
	SubjectRotation  float32   `yaml:"subjectRotation"`

	// Skipped marks frames where the camera kept its previous position.
	Skipped bool `yaml:"skipped,omitempty"`
}

// Track is the baked camera and subject motion for one viewport preset
type Track struct {
	RunID  string  `yaml:"runId"`
	Preset string  `yaml:"preset"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Frames []Frame `yaml:"frames"`
}

// NewRunID identifies one bake invocation; every track of a bake shares it
func NewRunID() string {
	return uuid.NewString()
}

func New(runID, preset string, width, height, frames int) *Track {
	return &Track{
		RunID:  runID,
		Preset: preset,
		Width:  width,
		Height: height,
		Frames: make([]Frame, 0, frames),
	}
}

func (t *Track) Append(f Frame) {
	t.Frames = append(t.Frames, f)
}
