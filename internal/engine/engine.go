package engine

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ivlev/scrollscene/internal/camera"
	"github.com/ivlev/scrollscene/internal/config"
	"github.com/ivlev/scrollscene/internal/core"
	"github.com/ivlev/scrollscene/internal/director"
	"github.com/ivlev/scrollscene/internal/geometry"
	"github.com/ivlev/scrollscene/internal/math"
	"github.com/ivlev/scrollscene/internal/renderer"
	"github.com/ivlev/scrollscene/internal/smoothing"
	"github.com/ivlev/scrollscene/internal/source"
)

// FrameOutput is everything the render loop needs to draw one frame
type FrameOutput struct {
	Frame           int
	Progress        float32
	State           renderer.AnimationState
	Camera          math.Vec3
	LookAt          math.Vec3
	SubjectRotation float32
	Opacity         float32
	Transform       geometry.NormalizedTransform
	Layout          geometry.Layout

	// Skipped is set when the camera kept its previous position this frame.
	Skipped bool
}

// Scene drives one subject and camera from scroll progress. A Scene is
// ticked from a single goroutine; the interpolator it reads may be shared.
type Scene struct {
	cfg         config.Scene
	interp      *renderer.KeyframeInterpolator
	camera      *camera.Controller
	orientation *camera.OrientationController

	viewport  camera.Viewport
	layout    geometry.Layout
	bounds    math.Extents3D
	hasBounds bool
	transform geometry.NormalizedTransform
	frame     int
}

// NewScene validates the scenario and builds every per-scene component.
// Configuration problems surface here, never during a tick.
func NewScene(s *director.Scenario) (*Scene, error) {
	if err := s.Scene.Validate(); err != nil {
		return nil, err
	}
	table, err := renderer.NewBreakpointTable(s.Sections)
	if err != nil {
		return nil, errors.Wrap(err, "build breakpoint table")
	}
	return newScene(s.Scene, renderer.NewKeyframeInterpolator(table))
}

func newScene(cfg config.Scene, interp *renderer.KeyframeInterpolator) (*Scene, error) {
	smoother, err := smoothing.NewSmoother(cfg.Smoothing)
	if err != nil {
		return nil, err
	}

	return &Scene{
		cfg:         cfg,
		interp:      interp,
		camera:      camera.NewController(camera.ParamsFromConfig(cfg.Camera), smoother),
		orientation: camera.NewOrientationController(0, smoother),
		layout:      geometry.LayoutNarrow,
		transform:   geometry.Identity(),
	}, nil
}

// LoadSubject normalizes the subject's raw bounds for the current layout. On
// ErrDegenerateGeometry the previous transform stays in place.
func (s *Scene) LoadSubject(bounds math.Extents3D) error {
	t, err := geometry.NormalizeForLayout(bounds, s.cfg.Subject, s.layout)
	if err != nil {
		return err
	}
	s.bounds = bounds
	s.hasBounds = true
	s.transform = t
	core.LogDebug("subject normalized for %s layout: scale %.4f, translation %+v", s.layout, t.Scale, t.Translation)
	return nil
}

// Resize records the viewport. Crossing the layout breakpoint renormalizes
// the subject.
func (s *Scene) Resize(width, height int) {
	s.viewport = camera.Viewport{Width: width, Height: height}

	layout := geometry.LayoutFor(width, s.cfg.Layout.BreakpointWidth)
	if layout == s.layout {
		return
	}
	s.layout = layout
	if !s.hasBounds {
		return
	}
	if err := s.LoadSubject(s.bounds); err != nil {
		core.LogWarn("renormalize for %s layout: %v", layout, err)
	}
}

// Tick interpolates once and feeds the same snapshot to the camera and the
// subject.
func (s *Scene) Tick(progress float32, dt time.Duration) FrameOutput {
	state := s.interp.Interpolate(progress)

	skipped := s.camera.Update(state, s.viewport, dt) != nil
	rotation := s.orientation.Update(state.Rotation, dt)

	out := FrameOutput{
		Frame:           s.frame,
		Progress:        progress,
		State:           state,
		Camera:          s.camera.Position(),
		LookAt:          s.camera.LookAt(),
		SubjectRotation: rotation,
		Opacity:         math.Clamp(state.Opacity, 0, 1),
		Transform:       s.transform,
		Layout:          s.layout,
		Skipped:         skipped,
	}
	s.frame++
	return out
}

// Run ticks frames times, pulling one progress value per frame from src.
// Cancellation is checked between frames.
func (s *Scene) Run(ctx context.Context, src source.ProgressSource, frames int, dt time.Duration, fn func(FrameOutput) error) error {
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(s.Tick(src.Progress(), dt)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) Interpolator() *renderer.KeyframeInterpolator {
	return s.interp
}

func (s *Scene) Transform() geometry.NormalizedTransform {
	return s.transform
}

func (s *Scene) Layout() geometry.Layout {
	return s.layout
}

func (s *Scene) Viewport() camera.Viewport {
	return s.viewport
}
