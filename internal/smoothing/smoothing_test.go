package smoothing

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/ivlev/scrollscene/internal/config"
)

func TestFrameSmootherIgnoresElapsedTime(t *testing.T) {
	s := FrameSmoother{Blend: 0.05}
	for _, dt := range []time.Duration{0, time.Millisecond, 16 * time.Millisecond, time.Second} {
		if got := s.Factor(dt); got != 0.05 {
			t.Errorf("Factor(%v) = %v, want 0.05", dt, got)
		}
	}
	if got := (FrameSmoother{Blend: 3}).Factor(0); got != 1 {
		t.Errorf("blend above one must clamp, got %v", got)
	}
	if got := (FrameSmoother{Blend: -1}).Factor(0); got != 0 {
		t.Errorf("negative blend must clamp, got %v", got)
	}
}

func TestTimeSmootherFactor(t *testing.T) {
	s := TimeSmoother{TimeConstant: 300 * time.Millisecond}

	if got := s.Factor(0); got != 0 {
		t.Errorf("no elapsed time must not move, got %v", got)
	}

	want := 1 - math32.Exp(-1)
	if got := s.Factor(300 * time.Millisecond); math32.Abs(got-want) > 1e-5 {
		t.Errorf("Factor(τ) = %v, want %v", got, want)
	}

	if got := s.Factor(time.Hour); got < 0.999 || got > 1 {
		t.Errorf("long frames should approach one, got %v", got)
	}
}

func TestTimeSmootherFrameRateIndependent(t *testing.T) {
	s := TimeSmoother{TimeConstant: 250 * time.Millisecond}

	run := func(fps int) float32 {
		dt := time.Second / time.Duration(fps)
		v := float32(0)
		for i := 0; i < fps; i++ {
			v = Step(v, 1, s.Factor(dt))
		}
		return v
	}

	a, b := run(30), run(120)
	if math32.Abs(a-b) > 1e-3 {
		t.Errorf("one second at 30fps reached %v, at 120fps %v", a, b)
	}
}

func TestStepConvergesWithoutOvershoot(t *testing.T) {
	tests := []struct {
		name          string
		start, target float32
		factor        float32
	}{
		{"rising", 0, 2.356, 0.05},
		{"falling", 5, 1.25, 0.05},
		{"full blend", 0, 2.2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.start
			for i := 0; i < 1000; i++ {
				next := Step(v, tt.target, tt.factor)
				if tt.start < tt.target && (next < v || next > tt.target) {
					t.Fatalf("step %d: %v -> %v overshoots %v", i, v, next, tt.target)
				}
				if tt.start > tt.target && (next > v || next < tt.target) {
					t.Fatalf("step %d: %v -> %v overshoots %v", i, v, next, tt.target)
				}
				v = next
			}
			if math32.Abs(v-tt.target) > 1e-4 {
				t.Errorf("expected convergence to %v, got %v", tt.target, v)
			}
		})
	}
}

func TestNewSmoother(t *testing.T) {
	s, err := NewSmoother(config.Smoothing{Mode: config.SmoothingModeFrame, Factor: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(FrameSmoother); !ok {
		t.Errorf("expected FrameSmoother, got %T", s)
	}

	s, err = NewSmoother(config.Smoothing{Mode: config.SmoothingModeTime, TimeConstant: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	ts, ok := s.(TimeSmoother)
	if !ok {
		t.Fatalf("expected TimeSmoother, got %T", s)
	}
	if ts.TimeConstant != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", ts.TimeConstant)
	}

	for _, cfg := range []config.Smoothing{
		{Mode: config.SmoothingModeTime},
		{Mode: "spring", Factor: 0.1},
	} {
		if _, err := NewSmoother(cfg); !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("%+v: expected ErrInvalidConfig, got %v", cfg, err)
		}
	}
}
