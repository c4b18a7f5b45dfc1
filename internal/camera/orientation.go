package camera

import (
	"time"

	"github.com/ivlev/scrollscene/internal/smoothing"
)

// AdvanceRotation relaxes prev toward target. Angles are not wrapped, so a
// target beyond 2π is approached directly.
func AdvanceRotation(prev, target, factor float32) float32 {
	return smoothing.Step(prev, target, factor)
}

// OrientationController owns the subject's live Y rotation in radians
type OrientationController struct {
	smoother smoothing.Smoother
	rotation float32
}

func NewOrientationController(initial float32, s smoothing.Smoother) *OrientationController {
	return &OrientationController{smoother: s, rotation: initial}
}

func (o *OrientationController) Update(target float32, dt time.Duration) float32 {
	o.rotation = AdvanceRotation(o.rotation, target, o.smoother.Factor(dt))
	return o.rotation
}

func (o *OrientationController) Rotation() float32 {
	return o.rotation
}
