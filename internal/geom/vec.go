package geom

import "math"

// Vec2 is a point or direction in the instrument's XY floor plane.
type Vec2 struct {
	X, Y float64
}

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the scalar dot product v·w.
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

// Cross returns the scalar z-component of the 3D cross product v x w.
func (v Vec2) Cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and w.
func (v Vec2) Dist(w Vec2) float64 { return v.Sub(w).Len() }

// Normalize returns v scaled to unit length; the zero vector is returned
// unchanged rather than dividing by zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Perp returns v rotated +90 degrees (a left-hand perpendicular).
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Rotate rotates v by theta radians about the origin.
func (v Vec2) Rotate(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Segment is a directed line segment between two Vec2 endpoints in
// whatever coordinate space the caller is working in (floor-plane metres for
// collision geometry, pixel coordinates for contour/Voronoi sites).
type Segment struct {
	A, B Vec2
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 { return s.A.Dist(s.B) }

// Direction returns the unit vector from A to B; the zero vector for a
// degenerate (zero-length) segment.
func (s Segment) Direction() Vec2 { return s.B.Sub(s.A).Normalize() }

// ClosestPoint returns the point on the segment closest to q, and the
// parametric position t in [0,1] along A->B at which it occurs.
func (s Segment) ClosestPoint(q Vec2) (Vec2, float64) {
	ab := s.B.Sub(s.A)
	denom := ab.Dot(ab)
	if denom == 0 {
		return s.A, 0
	}
	t := q.Sub(s.A).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.A.Add(ab.Scale(t)), t
}

// DistToPoint returns the minimum Euclidean distance from q to the segment.
func (s Segment) DistToPoint(q Vec2) float64 {
	p, _ := s.ClosestPoint(q)
	return p.Dist(q)
}

// Intersects reports whether s and o intersect (including touching at an
// endpoint), using the standard orientation-sign test.
func (s Segment) Intersects(o Segment) bool {
	d1 := orientation(o.A, o.B, s.A)
	d2 := orientation(o.A, o.B, s.B)
	d3 := orientation(s.A, s.B, o.A)
	d4 := orientation(s.A, s.B, o.B)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(o.A, o.B, s.A) {
		return true
	}
	if d2 == 0 && onSegment(o.A, o.B, s.B) {
		return true
	}
	if d3 == 0 && onSegment(s.A, s.B, o.A) {
		return true
	}
	if d4 == 0 && onSegment(s.A, s.B, o.B) {
		return true
	}

	return false
}

// orientation returns the signed area of triangle (a,b,c): positive for
// counter-clockwise, negative for clockwise, zero for collinear.
func orientation(a, b, c Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// onSegment reports whether c, known collinear with a-b, lies within the
// a-b bounding box.
func onSegment(a, b, c Vec2) bool {
	return math.Min(a.X, b.X) <= c.X && c.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= c.Y && c.Y <= math.Max(a.Y, b.Y)
}
