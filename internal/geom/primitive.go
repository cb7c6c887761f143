package geom

import "math"

// PrimitiveKind is a closed tagged variant: Box, Cylinder, Sphere are the
// only geometric primitives an instrument component can be built from.
// A closed set needs no virtual dispatch, just a kind tag and a type
// switch.
type PrimitiveKind int

const (
	// KindBox is an axis-aligned (in its own local frame) rectangular box.
	KindBox PrimitiveKind = iota
	// KindCylinder is a circular cylinder, projected as a disc in 2D.
	KindCylinder
	// KindSphere is a sphere, also projected as a disc in 2D.
	KindSphere
)

// Primitive is a single geometric primitive attached to an axis frame.
// Its local-space floor-plane polygon is produced by Polygon; Local is the
// primitive's own offset/rotation relative to the frame it is attached to.
type Primitive struct {
	ID    string
	Kind  PrimitiveKind
	Local Mat4 // offset transform within the parent frame

	// Box dimensions (length along local X, depth along local Y); unused by
	// Cylinder/Sphere.
	Length, Depth float64

	// Radius is used by Cylinder and Sphere; segments controls the polygon
	// approximation of the circular footprint.
	Radius   float64
	Segments int
}

// footprintSegments is the default circle approximation resolution when a
// Primitive does not specify one.
const footprintSegments = 16

// Polygon returns the primitive's 2D floor-plane outline in its own local
// frame (before Local / host-frame transforms are applied).
func (p Primitive) Polygon() []Vec2 {
	switch p.Kind {
	case KindBox:
		hl, hd := p.Length/2, p.Depth/2
		return []Vec2{{-hl, -hd}, {hl, -hd}, {hl, hd}, {-hl, hd}}
	case KindCylinder, KindSphere:
		n := p.Segments
		if n <= 0 {
			n = footprintSegments
		}
		poly := make([]Vec2, n)
		for i := 0; i < n; i++ {
			theta := 2 * math.Pi * float64(i) / float64(n)
			s, c := math.Sincos(theta)
			poly[i] = Vec2{p.Radius * c, p.Radius * s}
		}
		return poly
	default:
		return nil
	}
}

// localOrIdentity treats the zero value of Local (which a Primitive built
// as a plain struct literal has, since Mat4's zero value is the all-zero
// matrix rather than the identity) as "no offset", so a Primitive with no
// Local set behaves the same as one explicitly given Identity4().
func (p Primitive) localOrIdentity() Mat4 {
	if p.Local == (Mat4{}) {
		return Identity4()
	}
	return p.Local
}

// WorldPolygon returns the primitive's floor-plane outline transformed by
// frame (the host axis frame transform) composed with the primitive's own
// Local offset.
func (p Primitive) WorldPolygon(frame Mat4) []Vec2 {
	full := frame.Mul(p.localOrIdentity())
	local := p.Polygon()
	out := make([]Vec2, len(local))
	for i, v := range local {
		out[i] = full.Apply(v)
	}
	return out
}
