package director

import "github.com/ivlev/scrollscene/internal/config"

// Scenario is an authored scene: its static configuration and the page sections
// that drive the animation channels.
type Scenario struct {
	Version  string       `yaml:"version" toml:"version"`
	Scene    config.Scene `yaml:"scene" toml:"scene"`
	Sections []Section    `yaml:"sections" toml:"sections"`
}

// Section represents one page section with its target value per channel
type Section struct {
	ID                     string  `yaml:"id" toml:"id"`
	ProgressStart          float32 `yaml:"progressStart" toml:"progressStart"`
	ProgressEnd            float32 `yaml:"progressEnd" toml:"progressEnd"`
	Rotation               float32 `yaml:"rotation" toml:"rotation"` // radians around Y
	Zoom                   float32 `yaml:"zoom" toml:"zoom"`         // camera distance divisor
	CameraVerticalOffset   float32 `yaml:"cameraVerticalOffset" toml:"cameraVerticalOffset"`
	CameraHorizontalOffset float32 `yaml:"cameraHorizontalOffset" toml:"cameraHorizontalOffset"`
	Opacity                float32 `yaml:"opacity" toml:"opacity"`
}

// NewScenario returns an empty scenario carrying the default scene settings.
func NewScenario() *Scenario {
	return &Scenario{
		Version: "1.0",
		Scene:   config.DefaultScene(),
	}
}
