package geometry

import (
	"github.com/pkg/errors"

	"github.com/ivlev/scrollscene/internal/config"
	"github.com/ivlev/scrollscene/internal/math"
)

var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Layout is the page layout class the subject is normalized for
type Layout int

const (
	LayoutNarrow Layout = iota
	LayoutWide
)

func (l Layout) String() string {
	if l == LayoutWide {
		return "wide"
	}
	return "narrow"
}

// LayoutFor classifies a viewport width against the layout breakpoint.
// Widths at or above the breakpoint are wide.
func LayoutFor(viewportWidth, breakpointWidth int) Layout {
	if viewportWidth >= breakpointWidth {
		return LayoutWide
	}
	return LayoutNarrow
}

// PivotPolicy decides the horizontal pivot shift for a layout
type PivotPolicy struct {
	WideOffsetX float32
}

func (p PivotPolicy) OffsetX(layout Layout) float32 {
	if layout == LayoutWide {
		return p.WideOffsetX
	}
	return 0
}

// Params are the normalization inputs besides the raw bounds
type Params struct {
	TargetSize      float32
	ScaleMultiplier float32
	YOffset         float32
	PivotOffsetX    float32
}

// NormalizedTransform maps raw asset coordinates into the canonical volume:
// p' = p*Scale + Translation.
type NormalizedTransform struct {
	Scale       float32
	Translation math.Vec3
}

// Identity leaves raw coordinates untouched
func Identity() NormalizedTransform {
	return NormalizedTransform{Scale: 1}
}

func (t NormalizedTransform) Apply(p math.Vec3) math.Vec3 {
	return p.MulScalar(t.Scale).Add(t.Translation)
}

// ApplyExtents transforms a box. Scale is positive, so min stays min.
func (t NormalizedTransform) ApplyExtents(e math.Extents3D) math.Extents3D {
	return math.Extents3D{Min: t.Apply(e.Min), Max: t.Apply(e.Max)}
}

// Normalize fits bounds into a TargetSize cube centered on the origin, then
// shifts it by the pivot and vertical offsets.
func Normalize(bounds math.Extents3D, p Params) (NormalizedTransform, error) {
	maxDim := bounds.MaxDimension()
	if !math.IsFinite(maxDim) || maxDim <= 0 {
		return NormalizedTransform{}, errors.Wrapf(ErrDegenerateGeometry, "largest dimension is %v", maxDim)
	}

	scale := (p.TargetSize / maxDim) * p.ScaleMultiplier
	center := bounds.Center()
	if !math.IsFinite(scale) || !center.IsFinite() {
		return NormalizedTransform{}, errors.Wrapf(ErrDegenerateGeometry, "scale %v, center %+v", scale, center)
	}

	return NormalizedTransform{
		Scale: scale,
		Translation: math.NewVec3(
			-center.X*scale+p.PivotOffsetX,
			-center.Y*scale+p.YOffset,
			-center.Z*scale,
		),
	}, nil
}

// NormalizeForLayout applies the subject configuration and the pivot policy
// for the given layout.
func NormalizeForLayout(bounds math.Extents3D, subject config.Subject, layout Layout) (NormalizedTransform, error) {
	policy := PivotPolicy{WideOffsetX: subject.PivotOffsetX}
	return Normalize(bounds, Params{
		TargetSize:      subject.TargetSize,
		ScaleMultiplier: subject.ScaleMultiplier,
		YOffset:         subject.YOffset,
		PivotOffsetX:    policy.OffsetX(layout),
	})
}

// BoundsFromConfig converts configured bounds into extents
func BoundsFromConfig(b config.Bounds) math.Extents3D {
	return math.Extents3D{
		Min: math.NewVec3(b.Min.X, b.Min.Y, b.Min.Z),
		Max: math.NewVec3(b.Max.X, b.Max.Y, b.Max.Z),
	}
}

// PlaceholderBounds is a unit cube standing in for assets that failed to normalize
func PlaceholderBounds() math.Extents3D {
	return math.Extents3D{
		Min: math.NewVec3(-0.5, -0.5, -0.5),
		Max: math.NewVec3(0.5, 0.5, 0.5),
	}
}
