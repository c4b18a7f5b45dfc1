package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scrollscene/internal/config"
	"github.com/ivlev/scrollscene/internal/core"
	"github.com/ivlev/scrollscene/internal/director"
	"github.com/ivlev/scrollscene/internal/geometry"
	"github.com/ivlev/scrollscene/internal/renderer"
	"github.com/ivlev/scrollscene/internal/source"
	"github.com/ivlev/scrollscene/internal/track"
)

type BakeOptions struct {
	Frames     int
	HoldFrames int
	Workers    int
	FrameTime  time.Duration
}

// DefaultFrameTime is one frame at 60 fps
const DefaultFrameTime = time.Second / 60

// Bake sweeps the scenario once per viewport preset and records every frame.
// Presets run concurrently on independent scenes sharing one breakpoint table;
// tracks come back in preset order.
func Bake(ctx context.Context, s *director.Scenario, presets []config.Viewport, opts BakeOptions) ([]track.Track, error) {
	if opts.Frames <= 0 {
		return nil, errors.Errorf("frames must be positive, got %d", opts.Frames)
	}
	if len(presets) == 0 {
		return nil, errors.New("no viewport presets to bake")
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.FrameTime <= 0 {
		opts.FrameTime = DefaultFrameTime
	}

	if err := s.Scene.Validate(); err != nil {
		return nil, err
	}
	table, err := renderer.NewBreakpointTable(s.Sections)
	if err != nil {
		return nil, errors.Wrap(err, "build breakpoint table")
	}
	interp := renderer.NewKeyframeInterpolator(table)

	runID := track.NewRunID()
	core.LogInfo("bake %s: %d presets, %d frames (+%d hold), %d workers",
		runID, len(presets), opts.Frames, opts.HoldFrames, opts.Workers)

	tracks := make([]track.Track, len(presets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, preset := range presets {
		i, preset := i, preset
		g.Go(func() error {
			t, err := bakePreset(ctx, s.Scene, interp, runID, preset, opts)
			if err != nil {
				return errors.Wrapf(err, "preset %s", preset.Name)
			}
			tracks[i] = *t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tracks, nil
}

func bakePreset(ctx context.Context, cfg config.Scene, interp *renderer.KeyframeInterpolator, runID string, preset config.Viewport, opts BakeOptions) (*track.Track, error) {
	scene, err := newScene(cfg, interp)
	if err != nil {
		return nil, err
	}
	scene.Resize(preset.Width, preset.Height)

	if err := scene.LoadSubject(geometry.BoundsFromConfig(cfg.Subject.Bounds)); err != nil {
		if !errors.Is(err, geometry.ErrDegenerateGeometry) {
			return nil, err
		}
		core.LogWarn("preset %s: %v, using placeholder bounds", preset.Name, err)
		if err := scene.LoadSubject(geometry.PlaceholderBounds()); err != nil {
			return nil, err
		}
	}

	src := source.NewScriptedSource(opts.Frames, opts.HoldFrames)
	t := track.New(runID, preset.Name, preset.Width, preset.Height, src.Len())

	err = scene.Run(ctx, src, src.Len(), opts.FrameTime, func(out FrameOutput) error {
		t.Append(FrameToTrack(out))
		return nil
	})
	if err != nil {
		return nil, err
	}

	core.LogDebug("preset %s baked: %d frames, %s layout", preset.Name, len(t.Frames), scene.Layout())
	return t, nil
}

// FrameToTrack flattens a frame for a baked track
func FrameToTrack(out FrameOutput) track.Frame {
	return track.Frame{
		Index:            out.Frame,
		Progress:         out.Progress,
		Rotation:         out.State.Rotation,
		Zoom:             out.State.Zoom,
		VerticalOffset:   out.State.CameraVerticalOffset,
		HorizontalOffset: out.State.CameraHorizontalOffset,
		Opacity:          out.Opacity,
		Camera:           out.Camera,
		LookAt:           out.LookAt,
		SubjectRotation:  out.SubjectRotation,
		Skipped:          out.Skipped,
	}
}
