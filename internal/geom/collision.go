// File: collision.go
// Role: the two interchangeable 2D polygon-pair collision backends named in
// this, sweep-line edge intersection and half-plane (SAT) containment.
// Both must agree on every convex-polygon pair up to eps; PolygonsIntersect
// picks one by CollisionBackend and the package's test suite cross-checks
// the two directly.

package geom

import "math"

// CollisionBackend selects which 2D polygon intersection test
// PolygonsIntersect uses.
type CollisionBackend int

const (
	// BackendSweepLine tests every edge pair for intersection plus a
	// point-in-polygon check to catch full containment.
	BackendSweepLine CollisionBackend = iota
	// BackendHalfPlane uses the separating-axis theorem: two convex
	// polygons are disjoint iff some edge normal of either polygon
	// separates their projected intervals.
	BackendHalfPlane
)

// PolygonsIntersect reports whether polygons a and b (each a closed,
// non-self-intersecting vertex loop) overlap, using the requested backend.
// Both backends give the same yes/no answer for convex inputs up to eps;
// this requires this of any two supported policies.
func PolygonsIntersect(a, b []Vec2, backend CollisionBackend) bool {
	if len(a) < 2 || len(b) < 2 {
		return false
	}
	switch backend {
	case BackendHalfPlane:
		return convexIntersectSAT(a, b)
	default:
		return sweepLineIntersect(a, b)
	}
}

// sweepLineIntersect tests every edge of a against every edge of b, then
// falls back to containment (handles one polygon wholly inside the other,
// where no edges cross).
func sweepLineIntersect(a, b []Vec2) bool {
	for i := range a {
		e1 := Segment{a[i], a[(i+1)%len(a)]}
		for j := range b {
			e2 := Segment{b[j], b[(j+1)%len(b)]}
			if e1.Intersects(e2) {
				return true
			}
		}
	}
	if pointInPolygon(a[0], b) || pointInPolygon(b[0], a) {
		return true
	}
	return false
}

// convexIntersectSAT implements the separating-axis theorem for two convex
// polygons: test the outward normal of every edge of both polygons as a
// candidate separating axis; if none separates, the polygons overlap.
func convexIntersectSAT(a, b []Vec2) bool {
	if !satNoSeparatingAxis(a, b) {
		return false
	}
	if !satNoSeparatingAxis(b, a) {
		return false
	}
	return true
}

// satNoSeparatingAxis tests the edge normals of poly as candidate axes
// separating poly from other; returns false as soon as one separates.
func satNoSeparatingAxis(poly, other []Vec2) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		edge := poly[(i+1)%n].Sub(poly[i])
		axis := edge.Perp().Normalize()
		if axis == (Vec2{}) {
			continue
		}
		minA, maxA := projectPolygon(poly, axis)
		minB, maxB := projectPolygon(other, axis)
		if maxA < minB || maxB < minA {
			return false // axis separates: no intersection
		}
	}
	return true
}

// projectPolygon returns the [min,max] projection of poly onto axis.
func projectPolygon(poly []Vec2, axis Vec2) (float64, float64) {
	min := poly[0].Dot(axis)
	max := min
	for _, v := range poly[1:] {
		p := v.Dot(axis)
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

// pointInPolygon implements the standard ray-casting test.
func pointInPolygon(p Vec2, poly []Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := poly[i], poly[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xIntersect := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// PointInPolygon reports whether p lies within the closed polygon poly,
// using the standard ray-casting test. Exported for callers outside this
// package that need point-in-polygon containment directly (e.g. contour
// nesting resolution), without going through a full PolygonsIntersect call.
func PointInPolygon(p Vec2, poly []Vec2) bool {
	return pointInPolygon(p, poly)
}

// NearlyEqual reports whether a and b differ by no more than eps, used by
// the invariant tests that require the two collision backends to agree "up
// to eps".
func NearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
