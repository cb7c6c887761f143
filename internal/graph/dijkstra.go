// File: dijkstra.go
// Role: Dijkstra's shortest-path algorithm over the roadmap graph, adapted
// from lvlath/dijkstra. The adaptation generalizes int64 edge weights to
// float64 (bisector arc length is never integral) and, in place of
// InfEdgeThreshold/MaxDistance, accepts a WeightFunc so the pathfinder can
// implement both the SHORTEST and PENALISE_WALLS edge-weight policies of
// this without two copies of the search loop.

package graph

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for Dijkstra, matching the lvlath/dijkstra naming.
var (
	ErrEmptySource     = errors.New("graph: dijkstra source vertex ID is empty")
	ErrSourceNotFound  = errors.New("graph: dijkstra source vertex not found")
	ErrNegativeWeight  = errors.New("graph: dijkstra negative edge weight encountered")
)

// WeightFunc computes the traversal cost of edge e; it lets callers
// implement edge-weight policies (plain Euclidean length, or
// clearance-penalised length) without forking the search loop.
type WeightFunc func(e *Edge) float64

// EuclideanWeight is the default WeightFunc: the edge's stored Euclidean
// pixel-space length.
func EuclideanWeight(e *Edge) float64 { return e.Weight }

// DijkstraResult holds the outcome of a single-source shortest-path run.
type DijkstraResult struct {
	Dist map[string]float64
	Prev map[string]string
}

// Dijkstra computes shortest distances (and, if returnPath, predecessors)
// from source to every reachable node in g, using weightFn to cost each
// edge. weightFn may be nil to use EuclideanWeight.
func Dijkstra(g *Graph, source string, returnPath bool, weightFn WeightFunc) (*DijkstraResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if source == "" {
		return nil, ErrEmptySource
	}
	if !g.HasNode(source) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}
	if weightFn == nil {
		weightFn = EuclideanWeight
	}

	for _, e := range g.Edges() {
		if weightFn(e) < 0 {
			return nil, fmt.Errorf("%w: edge %s->%s", ErrNegativeWeight, e.From, e.To)
		}
	}

	nodes := g.Nodes()
	dist := make(map[string]float64, len(nodes))
	visited := make(map[string]bool, len(nodes))
	var prev map[string]string
	if returnPath {
		prev = make(map[string]string, len(nodes))
	}
	for _, n := range nodes {
		dist[n.ID] = math.Inf(1)
	}
	dist[source] = 0

	pq := make(nodePQ, 0, len(nodes))
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{id: source, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u, d := item.id, item.dist
		if visited[u] {
			continue
		}
		visited[u] = true

		neighbors, err := g.Neighbors(u)
		if err != nil {
			return nil, fmt.Errorf("graph: dijkstra neighbors(%s): %w", u, err)
		}
		for _, e := range neighbors {
			v := e.To
			if v == u {
				v = e.From
			}
			w := weightFn(e)
			newDist := d + w
			if newDist < dist[v] {
				dist[v] = newDist
				if prev != nil {
					prev[v] = u
				}
				heap.Push(&pq, &nodeItem{id: v, dist: newDist})
			}
		}
	}

	return &DijkstraResult{Dist: dist, Prev: prev}, nil
}

// PathTo reconstructs the node sequence from source to target using the
// predecessor map built by a returnPath=true Dijkstra call. ok is false if
// target is unreachable.
func (r *DijkstraResult) PathTo(source, target string) (path []string, ok bool) {
	if math.IsInf(r.Dist[target], 1) {
		return nil, false
	}
	cur := target
	for {
		path = append([]string{cur}, path...)
		if cur == source {
			return path, true
		}
		p, exists := r.Prev[cur]
		if !exists {
			return nil, false
		}
		cur = p
	}
}

// nodeItem and nodePQ implement a lazy-decrease-key min-heap, identical in
// shape to lvlath/dijkstra's, keyed on float64 distance.
type nodeItem struct {
	id   string
	dist float64
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
