// Package kdtree is a 2D k-d tree over roadmap nodes and wall sample
// points, used by the pathfinder's retraction step to find the nearest
// roadmap nodes and by the point-sampled Voronoi backend to find nearby
// wall samples, instead of scanning every point.
//
// No package in the example pack implements a spatial index, so this is
// built directly on the standard library: a classic alternating-axis
// binary tree plus a bounded max-heap nearest-neighbour query. The
// bounded-heap shape mirrors graph/dijkstra.go's nodePQ, a
// container/heap.Interface keyed on a float64 distance, so the same
// priority-queue idiom is reused here instead of inventing a second one.
package kdtree

import (
	"container/heap"
	"math"
)

// Point is anything with a 2D position a k-d tree can index.
type Point struct {
	X, Y float64
	// Payload carries caller data (e.g. a site or node ID) through queries
	// without the tree needing to know its type.
	Payload interface{}
}

type node struct {
	pt          Point
	left, right *node
	axis        int // 0 = split on X, 1 = split on Y
}

// Tree is an immutable, balanced 2D k-d tree.
type Tree struct {
	root *node
	size int
}

// Build constructs a balanced k-d tree over pts. Each level insertion-sorts
// its points, so building is O(n^2) per level in the worst case; pts is not
// retained.
func Build(pts []Point) *Tree {
	cp := append([]Point(nil), pts...)
	return &Tree{root: build(cp, 0), size: len(cp)}
}

// Len returns the number of points indexed.
func (t *Tree) Len() int { return t.size }

func build(pts []Point, depth int) *node {
	if len(pts) == 0 {
		return nil
	}
	axis := depth % 2
	sortByAxis(pts, axis)
	mid := len(pts) / 2
	n := &node{pt: pts[mid], axis: axis}
	n.left = build(pts[:mid], depth+1)
	n.right = build(pts[mid+1:], depth+1)
	return n
}

// sortByAxis does an in-place insertion sort by the split axis rather than
// a quickselect for the median.
func sortByAxis(pts []Point, axis int) {
	less := func(i, j int) bool {
		if axis == 0 {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	}
	// simple insertion sort: wall/site counts are small (tens to low
	// hundreds), so O(n^2) here never dominates the pipeline.
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}
}

func dist2(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// neighborHeap is a bounded max-heap (farthest neighbour at the top) used
// to collect the K nearest points, in the same container/heap shape as
// graph/dijkstra.go's nodePQ.
type neighborHeap struct {
	items []Point
	dists []float64
}

func (h neighborHeap) Len() int            { return len(h.items) }
func (h neighborHeap) Less(i, j int) bool  { return h.dists[i] > h.dists[j] } // max-heap
func (h neighborHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.dists[i], h.dists[j] = h.dists[j], h.dists[i]
}
func (h *neighborHeap) Push(x interface{}) {
	p := x.(struct {
		pt Point
		d  float64
	})
	h.items = append(h.items, p.pt)
	h.dists = append(h.dists, p.d)
}
func (h *neighborHeap) Pop() interface{} {
	n := len(h.items)
	item := h.items[n-1]
	d := h.dists[n-1]
	h.items = h.items[:n-1]
	h.dists = h.dists[:n-1]
	return struct {
		pt Point
		d  float64
	}{item, d}
}

// Nearest returns the single closest indexed point to q.
func (t *Tree) Nearest(q Point) (Point, bool) {
	res := t.KNearest(q, 1)
	if len(res) == 0 {
		return Point{}, false
	}
	return res[0], true
}

// KNearest returns up to k points closest to q, sorted nearest-first.
func (t *Tree) KNearest(q Point, k int) []Point {
	if k <= 0 || t.root == nil {
		return nil
	}
	h := &neighborHeap{}
	heap.Init(h)
	knnSearch(t.root, q, k, h)

	out := make([]Point, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		popped := heap.Pop(h).(struct {
			pt Point
			d  float64
		})
		out[i] = popped.pt
	}
	return out
}

func knnSearch(n *node, q Point, k int, h *neighborHeap) {
	if n == nil {
		return
	}
	d := dist2(n.pt, q)
	pushCandidate(h, n.pt, d, k)

	var axisVal, qVal float64
	if n.axis == 0 {
		axisVal, qVal = n.pt.X, q.X
	} else {
		axisVal, qVal = n.pt.Y, q.Y
	}

	near, far := n.left, n.right
	if qVal > axisVal {
		near, far = n.right, n.left
	}
	knnSearch(near, q, k, h)

	// Only descend into the far subtree if it could still hold a closer
	// point than the current worst kept neighbour.
	diff := qVal - axisVal
	if h.Len() < k || diff*diff < worstDist(h) {
		knnSearch(far, q, k, h)
	}
}

func pushCandidate(h *neighborHeap, pt Point, d float64, k int) {
	if h.Len() < k {
		heap.Push(h, struct {
			pt Point
			d  float64
		}{pt, d})
		return
	}
	if d < worstDist(h) {
		heap.Pop(h)
		heap.Push(h, struct {
			pt Point
			d  float64
		}{pt, d})
	}
}

func worstDist(h *neighborHeap) float64 {
	if h.Len() == 0 {
		return math.Inf(1)
	}
	return h.dists[0]
}
