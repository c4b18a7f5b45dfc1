package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid scene configuration")

// Config is the run configuration assembled from command line flags.
type Config struct {
	ScenarioPath string
	OutputPath   string
	Format       string
	Frames       int
	HoldFrames   int
	Workers      int
	Presets      []Viewport
	LogLevel     string
	ShowStats    bool
	Watch        bool
	BuildVersion string
}

// Viewport is a named canvas size used when baking tracks.
type Viewport struct {
	Name   string
	Width  int
	Height int
}

// Point is a position in world units.
type Point struct {
	X float32 `yaml:"x" toml:"x"`
	Y float32 `yaml:"y" toml:"y"`
	Z float32 `yaml:"z" toml:"z"`
}

// Bounds are the raw authoring extents of the subject as reported by the asset loader.
type Bounds struct {
	Min Point `yaml:"min" toml:"min"`
	Max Point `yaml:"max" toml:"max"`
}

type Subject struct {
	TargetSize      float32 `yaml:"targetSize" toml:"targetSize"`
	ScaleMultiplier float32 `yaml:"scaleMultiplier" toml:"scaleMultiplier"`
	YOffset         float32 `yaml:"yOffset" toml:"yOffset"`
	// PivotOffsetX only applies above the layout breakpoint.
	PivotOffsetX float32 `yaml:"pivotOffsetX" toml:"pivotOffsetX"`
	Bounds       Bounds  `yaml:"bounds" toml:"bounds"`
}

type Camera struct {
	FovDegrees   float32 `yaml:"fovDegrees" toml:"fovDegrees"`
	BaseDistance float32 `yaml:"baseDistance" toml:"baseDistance"`
	PixelOffsetX float32 `yaml:"pixelOffsetX" toml:"pixelOffsetX"`
	LookAt       Point   `yaml:"lookAt" toml:"lookAt"`
}

const (
	SmoothingModeFrame = "frame"
	SmoothingModeTime  = "time"
)

type Smoothing struct {
	// Mode is "frame" (fixed blend per rendered frame) or "time" (1 - exp(-dt/τ)).
	Mode         string  `yaml:"mode" toml:"mode"`
	Factor       float32 `yaml:"factor" toml:"factor"`
	TimeConstant float64 `yaml:"timeConstant" toml:"timeConstant"` // seconds
}

type Layout struct {
	BreakpointWidth int `yaml:"breakpointWidth" toml:"breakpointWidth"`
}

// Scene holds every author-tunable value of the scene. It is built once at
// startup and handed to constructors; nothing mutates it afterwards.
type Scene struct {
	Subject   Subject   `yaml:"subject" toml:"subject"`
	Camera    Camera    `yaml:"camera" toml:"camera"`
	Smoothing Smoothing `yaml:"smoothing" toml:"smoothing"`
	Layout    Layout    `yaml:"layout" toml:"layout"`
}

// DefaultScene returns the values the landing page ships with.
func DefaultScene() Scene {
	return Scene{
		Subject: Subject{
			TargetSize:      3.0,
			ScaleMultiplier: 1.0,
			YOffset:         -0.4,
			PivotOffsetX:    0.6,
			Bounds: Bounds{
				Min: Point{X: -0.5, Y: 0, Z: -0.25},
				Max: Point{X: 0.5, Y: 1.8, Z: 0.25},
			},
		},
		Camera: Camera{
			FovDegrees:   45,
			BaseDistance: 5,
			PixelOffsetX: 0,
			LookAt:       Point{X: 0, Y: 0.6, Z: 0},
		},
		Smoothing: Smoothing{
			Mode:         SmoothingModeFrame,
			Factor:       0.05,
			TimeConstant: 0.3,
		},
		Layout: Layout{
			BreakpointWidth: 768,
		},
	}
}

// Validate reports authoring mistakes that cannot be fixed at runtime.
func (s Scene) Validate() error {
	var problems []string
	if s.Subject.TargetSize <= 0 {
		problems = append(problems, "subject.targetSize must be > 0")
	}
	if s.Subject.ScaleMultiplier <= 0 {
		problems = append(problems, "subject.scaleMultiplier must be > 0")
	}
	if s.Camera.FovDegrees <= 0 || s.Camera.FovDegrees >= 180 {
		problems = append(problems, "camera.fovDegrees must be in (0, 180)")
	}
	if s.Camera.BaseDistance <= 0 {
		problems = append(problems, "camera.baseDistance must be > 0")
	}
	switch s.Smoothing.Mode {
	case SmoothingModeFrame, "":
		if s.Smoothing.Factor <= 0 || s.Smoothing.Factor > 1 {
			problems = append(problems, "smoothing.factor must be in (0, 1]")
		}
	case SmoothingModeTime:
		if s.Smoothing.TimeConstant <= 0 {
			problems = append(problems, "smoothing.timeConstant must be > 0")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown smoothing.mode %q", s.Smoothing.Mode))
	}
	if s.Layout.BreakpointWidth < 0 {
		problems = append(problems, "layout.breakpointWidth must be >= 0")
	}

	if len(problems) > 0 {
		return errors.Wrap(ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ParsePresets parses "name=WIDTHxHEIGHT" pairs separated by commas.
func ParsePresets(s string) ([]Viewport, error) {
	var presets []Viewport
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, size, ok := strings.Cut(part, "=")
		if !ok || name == "" {
			return nil, errors.Errorf("preset %q: expected name=WIDTHxHEIGHT", part)
		}
		w, h, ok := strings.Cut(strings.ToLower(size), "x")
		if !ok {
			return nil, errors.Errorf("preset %q: expected WIDTHxHEIGHT", part)
		}
		width, err := strconv.Atoi(w)
		if err != nil {
			return nil, errors.Wrapf(err, "preset %q: width", part)
		}
		height, err := strconv.Atoi(h)
		if err != nil {
			return nil, errors.Wrapf(err, "preset %q: height", part)
		}
		if width <= 0 || height <= 0 {
			return nil, errors.Errorf("preset %q: size must be positive", part)
		}
		presets = append(presets, Viewport{Name: name, Width: width, Height: height})
	}
	if len(presets) == 0 {
		return nil, errors.New("no presets given")
	}
	return presets, nil
}
