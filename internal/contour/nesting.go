package contour

import "github.com/tweber-ill/taspaths-planner/internal/geom"

// Node is one traced-and-simplified contour placed in the nesting forest:
// Depth 0 is an outer wall boundary, odd depths are holes cut into their
// parent, even depths > 0 are islands inside those holes, and so on.
type Node struct {
	Polygon []Point
	Depth   int
	Parent  int // index into the Nodes slice, -1 for a root
	Hole    bool
}

// ResolveNesting takes the raw contour set TraceAll produced (outer
// boundaries and hole boundaries all flattened together) and recovers the
// containment forest, in the same traversal shape as dfs.DFS: each
// unvisited contour becomes a new tree root, and every contour nested one
// level inside it gets visited as its child, recording Depth and Parent
// exactly as dfsWalker.traverse records Depth/Parent over graph neighbours.
func ResolveNesting(contours [][]Point) []Node {
	n := len(contours)
	nodes := make([]Node, n)
	for i, c := range contours {
		nodes[i] = Node{Polygon: c, Parent: -1}
	}

	// containment[i][j] is true if contour i's polygon fully encloses
	// contour j's first point (a necessary and, for the simple non-self-
	// intersecting polygons a wall tracer emits, sufficient condition).
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || len(nodes[j].Polygon) == 0 {
				continue
			}
			if containsPoint(nodes[i].Polygon, nodes[j].Polygon[0]) {
				if nodes[j].Parent == -1 || containsPoint(nodes[nodes[j].Parent].Polygon, nodes[i].Polygon[0]) {
					nodes[j].Parent = i
				}
			}
		}
	}

	visited := make([]bool, n)
	var assignDepth func(i, depth int)
	assignDepth = func(i, depth int) {
		if visited[i] {
			return
		}
		visited[i] = true
		nodes[i].Depth = depth
		nodes[i].Hole = depth%2 == 1
		for j := 0; j < n; j++ {
			if nodes[j].Parent == i {
				assignDepth(j, depth+1)
			}
		}
	}
	for i := 0; i < n; i++ {
		if nodes[i].Parent == -1 {
			assignDepth(i, 0)
		}
	}
	return nodes
}

func containsPoint(polygon []Point, p Point) bool {
	poly := make([]geom.Vec2, len(polygon))
	for i, v := range polygon {
		poly[i] = geom.Vec2{X: float64(v.X), Y: float64(v.Y)}
	}
	return geom.PointInPolygon(geom.Vec2{X: float64(p.X), Y: float64(p.Y)}, poly)
}
