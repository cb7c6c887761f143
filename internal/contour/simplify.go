package contour

import "github.com/tweber-ill/taspaths-planner/internal/geom"

// Simplify applies the Douglas-Peucker line-simplification algorithm to a
// pixel-space contour, returning a reduced polygon whose perpendicular
// deviation from the original never exceeds epsilon pixels.
func Simplify(pts []Point, epsilon float64) []Point {
	if len(pts) < 3 {
		return pts
	}
	pts2 := make([]geom.Vec2, len(pts))
	for i, p := range pts {
		pts2[i] = geom.Vec2{X: float64(p.X), Y: float64(p.Y)}
	}
	kept := douglasPeucker(pts2, epsilon)
	out := make([]Point, len(kept))
	for i, v := range kept {
		out[i] = Point{X: int(v.X + 0.5), Y: int(v.Y + 0.5)}
	}
	return out
}

func douglasPeucker(pts []geom.Vec2, epsilon float64) []geom.Vec2 {
	if len(pts) < 3 {
		return pts
	}
	first, last := pts[0], pts[len(pts)-1]
	maxDist := -1.0
	maxIdx := 0
	seg := geom.Segment{A: first, B: last}
	for i := 1; i < len(pts)-1; i++ {
		d := seg.DistToPoint(pts[i])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist <= epsilon {
		return []geom.Vec2{first, last}
	}
	left := douglasPeucker(pts[:maxIdx+1], epsilon)
	right := douglasPeucker(pts[maxIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}
