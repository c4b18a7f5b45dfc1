package camera

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/ivlev/scrollscene/internal/config"
	"github.com/ivlev/scrollscene/internal/math"
	"github.com/ivlev/scrollscene/internal/renderer"
	"github.com/ivlev/scrollscene/internal/smoothing"
)

const tolerance = 1e-4

var testParams = Params{
	FovDegrees:   90,
	BaseDistance: 5,
	PixelOffsetX: 100,
	LookAt:       math.NewVec3(0, 0.6, 0),
}

func TestTargetPosition(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 500}

	tests := []struct {
		name  string
		state renderer.AnimationState
		want  math.Vec3
	}{
		{
			// frustum 10 high, 20 wide; 100px of 1000 is 2 units
			name:  "zoom one",
			state: renderer.AnimationState{Zoom: 1},
			want:  math.NewVec3(2, 0, 5),
		},
		{
			name:  "zoomed in with offsets",
			state: renderer.AnimationState{Zoom: 2, CameraHorizontalOffset: -0.5, CameraVerticalOffset: 0.3},
			want:  math.NewVec3(-0.5+1, 0.3, 2.5),
		},
		{
			name:  "zoomed out",
			state: renderer.AnimationState{Zoom: 0.5},
			want:  math.NewVec3(4, 0, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TargetPosition(tt.state, vp, testParams)
			if err != nil {
				t.Fatalf("TargetPosition failed: %v", err)
			}
			if !got.Compare(tt.want, tolerance) {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestPixelOffsetKeepsScreenFraction(t *testing.T) {
	vp := Viewport{Width: 1440, Height: 900}
	for _, zoom := range []float32{0.5, 1, 1.25, 1.8, 3} {
		distance := testParams.BaseDistance / zoom
		offset := PixelToWorldX(testParams.PixelOffsetX, vp, testParams.FovDegrees, distance)
		width := FrustumHeight(testParams.FovDegrees, distance) * vp.Aspect()

		fraction := offset / width
		want := testParams.PixelOffsetX / float32(vp.Width)
		if math32.Abs(fraction-want) > 1e-6 {
			t.Errorf("zoom %v: offset covers %v of the screen, want %v", zoom, fraction, want)
		}
	}
}

func TestAdvanceDegenerateViewport(t *testing.T) {
	prev := math.NewVec3(1, 2, 3)
	state := renderer.AnimationState{Zoom: 1.2, CameraVerticalOffset: 0.4}

	tests := []struct {
		name string
		vp   Viewport
	}{
		{"zero height", Viewport{Width: 800, Height: 0}},
		{"zero width", Viewport{Width: 0, Height: 600}},
		{"collapsed", Viewport{}},
		{"negative", Viewport{Width: -10, Height: 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Advance(prev, state, tt.vp, testParams, 0.05)
			if !errors.Is(err, ErrDegenerateViewport) {
				t.Errorf("expected ErrDegenerateViewport, got %v", err)
			}
			if got != prev {
				t.Errorf("expected unchanged %+v, got %+v", prev, got)
			}
			if !got.IsFinite() {
				t.Errorf("position is not finite: %+v", got)
			}
		})
	}
}

func TestAdvanceZeroZoom(t *testing.T) {
	prev := math.NewVec3(0, 0, 5)
	got, err := Advance(prev, renderer.AnimationState{Zoom: 0}, Viewport{Width: 800, Height: 600}, testParams, 0.05)
	if !errors.Is(err, ErrDegenerateViewport) {
		t.Errorf("expected ErrDegenerateViewport, got %v", err)
	}
	if got != prev {
		t.Errorf("expected unchanged position, got %+v", got)
	}
}

func TestAdvanceLerp(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 500}
	state := renderer.AnimationState{Zoom: 1}
	prev := math.NewVec3(0, 0, 5)

	got, err := Advance(prev, state, vp, testParams, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.NewVec3(1, 0, 5); !got.Compare(want, tolerance) {
		t.Errorf("expected half way %+v, got %+v", want, got)
	}

	got, err = Advance(prev, state, vp, testParams, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != prev {
		t.Errorf("zero factor must keep position, got %+v", got)
	}
}

func TestControllerConvergesWithoutOvershoot(t *testing.T) {
	c := NewController(testParams, smoothing.FrameSmoother{Blend: 0.05})
	if want := math.NewVec3(0, 0, testParams.BaseDistance); c.Position() != want {
		t.Fatalf("expected initial position %+v, got %+v", want, c.Position())
	}

	vp := Viewport{Width: 1000, Height: 500}
	state := renderer.AnimationState{Zoom: 1.25, CameraVerticalOffset: 0.5}
	target, err := TargetPosition(state, vp, testParams)
	if err != nil {
		t.Fatal(err)
	}

	prev := c.Position()
	for i := 0; i < 1000; i++ {
		if err := c.Update(state, vp, 16*time.Millisecond); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		pos := c.Position()
		if pos.X < prev.X || pos.X > target.X {
			t.Fatalf("frame %d: x %v left [%v, %v]", i, pos.X, prev.X, target.X)
		}
		if pos.Y < prev.Y || pos.Y > target.Y {
			t.Fatalf("frame %d: y %v left [%v, %v]", i, pos.Y, prev.Y, target.Y)
		}
		if pos.Z > prev.Z || pos.Z < target.Z {
			t.Fatalf("frame %d: z %v left [%v, %v]", i, pos.Z, target.Z, prev.Z)
		}
		prev = pos
	}

	if !c.Position().Compare(target, 1e-3) {
		t.Errorf("expected convergence to %+v, got %+v", target, c.Position())
	}
}

func TestControllerSkipsDegenerateFrame(t *testing.T) {
	c := NewController(testParams, smoothing.FrameSmoother{Blend: 0.05})
	state := renderer.AnimationState{Zoom: 1}

	if err := c.Update(state, Viewport{Width: 1000, Height: 500}, 0); err != nil {
		t.Fatal(err)
	}
	before := c.Position()

	err := c.Update(state, Viewport{Width: 1000, Height: 0}, 0)
	if !errors.Is(err, ErrDegenerateViewport) {
		t.Errorf("expected ErrDegenerateViewport, got %v", err)
	}
	if c.Position() != before {
		t.Errorf("skipped frame moved the camera from %+v to %+v", before, c.Position())
	}
	if c.LookAt() != testParams.LookAt {
		t.Errorf("look-at moved to %+v", c.LookAt())
	}
}

func TestParamsFromConfig(t *testing.T) {
	p := ParamsFromConfig(config.DefaultScene().Camera)
	if p.FovDegrees != 45 || p.BaseDistance != 5 {
		t.Errorf("unexpected params %+v", p)
	}
	if p.LookAt != math.NewVec3(0, 0.6, 0) {
		t.Errorf("unexpected look-at %+v", p.LookAt)
	}
}

func TestOrientationNoWraparound(t *testing.T) {
	o := NewOrientationController(6, smoothing.FrameSmoother{Blend: 0.1})
	target := float32(7.5)

	prev := o.Rotation()
	for i := 0; i < 500; i++ {
		r := o.Update(target, 16*time.Millisecond)
		if r < prev || r > target {
			t.Fatalf("frame %d: rotation %v left [%v, %v]", i, r, prev, target)
		}
		prev = r
	}
	if math32.Abs(o.Rotation()-target) > 1e-3 {
		t.Errorf("expected rotation near %v, got %v", target, o.Rotation())
	}
}

func TestAdvanceRotation(t *testing.T) {
	if got := AdvanceRotation(0.35, 1.2, 0); got != 0.35 {
		t.Errorf("zero factor moved rotation to %v", got)
	}
	if got := AdvanceRotation(0, 2.2, 1); got != 2.2 {
		t.Errorf("full factor should land on target, got %v", got)
	}
	if got := AdvanceRotation(1, 2, 0.5); math32.Abs(got-1.5) > tolerance {
		t.Errorf("expected 1.5, got %v", got)
	}
}
