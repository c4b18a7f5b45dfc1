package smoothing

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/ivlev/scrollscene/internal/config"
	"github.com/ivlev/scrollscene/internal/math"
)

// Smoother yields the blend factor applied to one frame's step toward a target
type Smoother interface {
	Factor(dt time.Duration) float32
}

// FrameSmoother blends by a fixed amount per frame regardless of elapsed time.
// Convergence speed therefore follows the frame rate.
type FrameSmoother struct {
	Blend float32
}

func (s FrameSmoother) Factor(time.Duration) float32 {
	return math.Clamp(s.Blend, 0, 1)
}

// TimeSmoother decays toward the target with time constant TimeConstant,
// giving the same motion at any frame rate.
type TimeSmoother struct {
	TimeConstant time.Duration
}

func (s TimeSmoother) Factor(dt time.Duration) float32 {
	if dt <= 0 {
		return 0
	}
	if s.TimeConstant <= 0 {
		return 1
	}
	f := 1 - math32.Exp(-float32(dt.Seconds()/s.TimeConstant.Seconds()))
	return math.Clamp(f, 0, 1)
}

// NewSmoother builds the smoother selected by the scene configuration
func NewSmoother(cfg config.Smoothing) (Smoother, error) {
	switch cfg.Mode {
	case config.SmoothingModeFrame, "":
		return FrameSmoother{Blend: cfg.Factor}, nil
	case config.SmoothingModeTime:
		if cfg.TimeConstant <= 0 {
			return nil, errors.Wrapf(config.ErrInvalidConfig, "time constant %v", cfg.TimeConstant)
		}
		return TimeSmoother{TimeConstant: time.Duration(cfg.TimeConstant * float64(time.Second))}, nil
	default:
		return nil, errors.Wrapf(config.ErrInvalidConfig, "unknown smoothing mode %q", cfg.Mode)
	}
}

// Step moves current toward target by factor. Factors in [0,1] never overshoot.
func Step(current, target, factor float32) float32 {
	return math.Lerp(current, target, factor)
}
