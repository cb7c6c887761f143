// Package segment turns simplified wall contours (internal/contour) into
// the tagged line-segment sites the Voronoi builder (internal/voronoi)
// needs: each contour edge becomes a Site carrying a group ID so the
// builder's keep(site_a, site_b) predicate can tell "two edges of the same
// wall" apart from "edges of two different walls".
//
// EarClip and HertelMehlhorn decompose a concave outline into convex
// pieces via ear-clipping plus a Hertel-Mehlhorn merge pass. FromContour
// does not apply them and no pipeline stage calls them, so sites are
// always the contour's own edges. They are grounded on no pack
// library: no pack repo carries a polygon-triangulation package, this is
// classic computational-geometry bookkeeping over internal/geom's Vec2,
// not a domain concern any dependency in the pack addresses, hence the
// plain-Go implementation here.
package segment

import "github.com/tweber-ill/taspaths-planner/internal/geom"

// Site is one directed line-segment obstacle site, tagged with the group
// (wall) it belongs to, as the Voronoi Site type requires.
type Site struct {
	geom.Segment
	Group int
}

// FromContour converts a closed polygon into its boundary Site list,
// tagging every edge with the given group ID.
func FromContour(polygon []geom.Vec2, group int) []Site {
	n := len(polygon)
	out := make([]Site, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Site{
			Segment: geom.Segment{A: polygon[i], B: polygon[(i+1)%n]},
			Group:   group,
		})
	}
	return out
}

// isConvex reports whether the vertex at index i in a counter-clockwise
// polygon is convex (interior angle < 180 degrees).
func isConvex(poly []geom.Vec2, i int) bool {
	n := len(poly)
	prev, cur, next := poly[(i-1+n)%n], poly[i], poly[(i+1)%n]
	return cur.Sub(prev).Cross(next.Sub(cur)) > 0
}

// pointInTriangle reports whether p lies within the (possibly degenerate)
// triangle a-b-c, via barycentric sign tests.
func pointInTriangle(p, a, b, c geom.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// EarClip triangulates a simple counter-clockwise polygon into triangles
// via the standard ear-clipping algorithm.
func EarClip(polygon []geom.Vec2) [][]geom.Vec2 {
	poly := append([]geom.Vec2(nil), polygon...)
	var triangles [][]geom.Vec2

	for len(poly) > 3 {
		earFound := false
		n := len(poly)
		for i := 0; i < n; i++ {
			if !isConvex(poly, i) {
				continue
			}
			prev, cur, next := poly[(i-1+n)%n], poly[i], poly[(i+1)%n]

			earClipped := true
			for j := 0; j < n; j++ {
				if j == i || j == (i-1+n)%n || j == (i+1)%n {
					continue
				}
				if pointInTriangle(poly[j], prev, cur, next) {
					earClipped = false
					break
				}
			}
			if !earClipped {
				continue
			}

			triangles = append(triangles, []geom.Vec2{prev, cur, next})
			poly = append(poly[:i], poly[i+1:]...)
			earFound = true
			break
		}
		if !earFound {
			// Degenerate/self-intersecting input: bail out with whatever
			// remains as one final piece rather than spinning forever.
			break
		}
	}
	if len(poly) >= 3 {
		triangles = append(triangles, poly)
	}
	return triangles
}

// HertelMehlhorn merges adjacent ear-clipping triangles back together
// wherever the shared diagonal can be removed without breaking convexity,
// producing a near-minimal convex decomposition instead of a full
// triangulation (convex decomposition).
func HertelMehlhorn(triangles [][]geom.Vec2) [][]geom.Vec2 {
	pieces := append([][]geom.Vec2(nil), triangles...)

	merged := true
	for merged {
		merged = false
		for i := 0; i < len(pieces); i++ {
			for j := i + 1; j < len(pieces); j++ {
				if combo, ok := tryMerge(pieces[i], pieces[j]); ok {
					pieces[i] = combo
					pieces = append(pieces[:j], pieces[j+1:]...)
					merged = true
					break
				}
			}
			if merged {
				break
			}
		}
	}
	return pieces
}

// tryMerge attempts to merge two convex polygons sharing exactly one edge
// into a single convex polygon.
func tryMerge(a, b []geom.Vec2) ([]geom.Vec2, bool) {
	sharedA, sharedB, ok := sharedEdge(a, b)
	if !ok {
		return nil, false
	}
	combined := spliceAt(a, sharedA, b, sharedB)
	for i := range combined {
		if !isConvex(combined, i) {
			return nil, false
		}
	}
	return combined, true
}

// sharedEdge finds an edge index pair (i in a, j in b) such that a's edge
// i->i+1 is the reverse of b's edge j->j+1 (the two polygons share that
// boundary edge with opposite winding).
func sharedEdge(a, b []geom.Vec2) (int, int, bool) {
	for i := range a {
		ai, ai2 := a[i], a[(i+1)%len(a)]
		for j := range b {
			bj, bj2 := b[j], b[(j+1)%len(b)]
			if near(ai, bj2) && near(ai2, bj) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func near(p, q geom.Vec2) bool { return geom.NearlyEqual(p.X, q.X, 1e-9) && geom.NearlyEqual(p.Y, q.Y, 1e-9) }

// spliceAt stitches b into a at the shared edge (a[i]->a[i+1] ==
// reverse of b[j]->b[j+1]), producing the merged boundary loop.
func spliceAt(a []geom.Vec2, i int, b []geom.Vec2, j int) []geom.Vec2 {
	var out []geom.Vec2
	n, m := len(a), len(b)
	for k := 0; k <= i; k++ {
		out = append(out, a[k])
	}
	for k := 2; k < m; k++ {
		out = append(out, b[(j+k)%m])
	}
	for k := i + 1; k < n; k++ {
		out = append(out, a[k])
	}
	return out
}
