package math

import "github.com/chewxy/math32"

// Size returns max - min.
func (e Extents3D) Size() Vec3 {
	return e.Max.Sub(e.Min)
}

// Center returns the midpoint of the box.
func (e Extents3D) Center() Vec3 {
	return e.Max.Add(e.Min).MulScalar(0.5)
}

// MaxDimension returns the largest side of the box. A NaN side wins so that
// callers can reject it.
func (e Extents3D) MaxDimension() float32 {
	size := e.Size()
	if math32.IsNaN(size.X) || math32.IsNaN(size.Y) || math32.IsNaN(size.Z) {
		return math32.NaN()
	}
	return math32.Max(size.X, math32.Max(size.Y, size.Z))
}

// Corners returns the eight corners of the box.
func (e Extents3D) Corners() [8]Vec3 {
	mn, mx := e.Min, e.Max
	return [8]Vec3{
		{mn.X, mn.Y, mn.Z},
		{mx.X, mn.Y, mn.Z},
		{mn.X, mx.Y, mn.Z},
		{mx.X, mx.Y, mn.Z},
		{mn.X, mn.Y, mx.Z},
		{mx.X, mn.Y, mx.Z},
		{mn.X, mx.Y, mx.Z},
		{mx.X, mx.Y, mx.Z},
	}
}

// ExtentsFromPoints computes the axis-aligned bounding box of the given
// positions. An empty slice yields a zero box.
func ExtentsFromPoints(points []Vec3) Extents3D {
	if len(points) == 0 {
		return Extents3D{}
	}
	e := Extents3D{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		e.Min.X = math32.Min(e.Min.X, p.X)
		e.Min.Y = math32.Min(e.Min.Y, p.Y)
		e.Min.Z = math32.Min(e.Min.Z, p.Z)
		e.Max.X = math32.Max(e.Max.X, p.X)
		e.Max.Y = math32.Max(e.Max.Y, p.Y)
		e.Max.Z = math32.Max(e.Max.Z, p.Z)
	}
	return e
}
