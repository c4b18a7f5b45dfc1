package camera

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/ivlev/scrollscene/internal/config"
	"github.com/ivlev/scrollscene/internal/core"
	"github.com/ivlev/scrollscene/internal/math"
	"github.com/ivlev/scrollscene/internal/renderer"
	"github.com/ivlev/scrollscene/internal/smoothing"
)

var ErrDegenerateViewport = errors.New("degenerate viewport")

// Viewport is the drawable area in pixels
type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) Aspect() float32 {
	return float32(v.Width) / float32(v.Height)
}

// Params are the fixed camera settings of a scene
type Params struct {
	FovDegrees   float32
	BaseDistance float32
	PixelOffsetX float32
	LookAt       math.Vec3
}

func ParamsFromConfig(c config.Camera) Params {
	return Params{
		FovDegrees:   c.FovDegrees,
		BaseDistance: c.BaseDistance,
		PixelOffsetX: c.PixelOffsetX,
		LookAt:       math.NewVec3(c.LookAt.X, c.LookAt.Y, c.LookAt.Z),
	}
}

// FrustumHeight is the world-space height visible at distance from a
// perspective camera with the given vertical field of view.
func FrustumHeight(fovDegrees, distance float32) float32 {
	return 2 * math32.Tan(math.DegToRad(fovDegrees)/2) * distance
}

// PixelToWorldX converts a horizontal pixel bias into world units at distance,
// so the bias keeps the same on-screen size whatever the zoom.
func PixelToWorldX(pixels float32, vp Viewport, fovDegrees, distance float32) float32 {
	width := FrustumHeight(fovDegrees, distance) * vp.Aspect()
	return (pixels / float32(vp.Width)) * width
}

// TargetPosition is where the camera wants to be for the given state
func TargetPosition(state renderer.AnimationState, vp Viewport, p Params) (math.Vec3, error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return math.Vec3{}, errors.Wrapf(ErrDegenerateViewport, "viewport %dx%d", vp.Width, vp.Height)
	}

	distance := p.BaseDistance / state.Zoom
	worldOffsetX := PixelToWorldX(p.PixelOffsetX, vp, p.FovDegrees, distance)

	target := math.NewVec3(
		state.CameraHorizontalOffset+worldOffsetX,
		state.CameraVerticalOffset,
		distance,
	)
	if !target.IsFinite() {
		return math.Vec3{}, errors.Wrapf(ErrDegenerateViewport, "target %+v at zoom %v", target, state.Zoom)
	}
	return target, nil
}

// Advance moves prev toward the target by factor. When no target can be
// computed prev is returned unchanged along with the error.
func Advance(prev math.Vec3, state renderer.AnimationState, vp Viewport, p Params, factor float32) (math.Vec3, error) {
	target, err := TargetPosition(state, vp, p)
	if err != nil {
		return prev, err
	}
	return prev.Lerp(target, factor), nil
}

// Controller owns the live camera position. Only Update writes it.
type Controller struct {
	params   Params
	smoother smoothing.Smoother
	position math.Vec3
}

func NewController(p Params, s smoothing.Smoother) *Controller {
	return &Controller{
		params:   p,
		smoother: s,
		position: math.NewVec3(0, 0, p.BaseDistance),
	}
}

// Update advances the live position by one frame. A degenerate viewport
// skips the frame and keeps the previous position.
func (c *Controller) Update(state renderer.AnimationState, vp Viewport, dt time.Duration) error {
	next, err := Advance(c.position, state, vp, c.params, c.smoother.Factor(dt))
	if err != nil {
		core.LogDebug("camera update skipped: %v", err)
		return err
	}
	c.position = next
	return nil
}

func (c *Controller) Position() math.Vec3 {
	return c.position
}

// LookAt is the fixed point the camera faces
func (c *Controller) LookAt() math.Vec3 {
	return c.params.LookAt
}

func (c *Controller) Params() Params {
	return c.params
}
