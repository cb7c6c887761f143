// Package contour extracts polygonal wall outlines from a rasterised
// occupancy grid: Moore-neighbour boundary tracing, Douglas-Peucker
// simplification, and a DFS-style nesting resolution pass that tells outer
// wall outlines from the holes cut into them.
//
// The tracing and simplification are new (no pack repo has a notion of
// raster geometry); the nesting pass is grounded on dfs.DFS's shape -
// dfsWalker.traverse's pre-order visit + parent-recording + depth-tracking
//, generalized from "visit graph neighbours" to "visit polygons nested
// one level deeper", since containment between two simple polygons defines
// exactly the same kind of forest a DFS spanning forest does.
package contour

import "github.com/tweber-ill/taspaths-planner/internal/raster"

// Point is an integer pixel coordinate on the traced boundary.
type Point = raster.Pixel

// moore8 lists the 8 Moore-neighbourhood offsets in clockwise order
// starting from "north", matching raster.NeighborOffsets(Conn8)'s ordering.
var moore8 = raster.NeighborOffsets(raster.Conn8)

// TraceAll runs Moore-neighbour boundary tracing over every foreground
// (non-zero) connected blob in img and returns one closed pixel-space
// polygon per blob outline (both outer boundaries and the boundaries of
// holes are returned as separate contours; nesting resolution happens in
// ResolveNesting).
func TraceAll(img *raster.Image) [][]Point {
	visited := make([][]bool, img.Height)
	for y := range visited {
		visited[y] = make([]bool, img.Width)
	}

	var contours [][]Point
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v, _ := img.GetPixel(x, y)
			if v == 0 || visited[y][x] {
				continue
			}
			// Only start tracing at a boundary pixel: foreground with at
			// least one background (or out-of-bounds) 4-neighbour.
			if !isBoundary(img, x, y) {
				continue
			}
			c := traceFrom(img, x, y, visited)
			if len(c) >= 3 {
				contours = append(contours, c)
			}
		}
	}
	return contours
}

func isBoundary(img *raster.Image, x, y int) bool {
	for _, d := range raster.NeighborOffsets(raster.Conn4) {
		nx, ny := x+d[0], y+d[1]
		if !img.InBounds(nx, ny) {
			return true
		}
		v, _ := img.GetPixel(nx, ny)
		if v == 0 {
			return true
		}
	}
	return false
}

// traceFrom runs the Moore-neighbour ("radial sweep") tracing algorithm
// starting at a known boundary pixel (x0,y0), marking every boundary pixel
// it visits in visited.
func traceFrom(img *raster.Image, x0, y0 int, visited [][]bool) []Point {
	start := Point{X: x0, Y: y0}
	contour := []Point{start}
	visited[y0][x0] = true

	cur := start
	backtrack := 0 // index into moore8 to resume the search from
	for steps := 0; steps < img.Width*img.Height*8+1; steps++ {
		found := false
		for i := 0; i < len(moore8); i++ {
			idx := (backtrack + i) % len(moore8)
			d := moore8[idx]
			nx, ny := cur.X+d[0], cur.Y+d[1]
			if !img.InBounds(nx, ny) {
				continue
			}
			v, _ := img.GetPixel(nx, ny)
			if v == 0 {
				continue
			}
			next := Point{X: nx, Y: ny}
			visited[ny][nx] = true
			if next == start && len(contour) > 2 {
				return contour
			}
			contour = append(contour, next)
			cur = next
			// Resume next search from the direction opposite to where we
			// arrived from, rotated back two steps, standard Moore-tracing
			// backtrack rule.
			backtrack = (idx + len(moore8) - 2) % len(moore8)
			found = true
			break
		}
		if !found {
			// isolated pixel: no foreground neighbour at all
			return contour
		}
	}
	return contour
}
