package pathfinder

import (
	"math"
	"sort"

	"github.com/tweber-ill/taspaths-planner/internal/graph"
)

// CrossCheckDistances computes all-pairs shortest distances over g with a
// plain in-place Floyd-Warshall pass and compares every pair's distance
// against graph.Dijkstra's single-source results, returning the worst
// absolute discrepancy found. This is the independent-algorithm cross-check
// the testable properties call for: Dijkstra and Floyd-Warshall must
// agree on shortest-path distance for any graph small enough to run both.
//
// The pack's own matrix package (the obvious place to source an existing
// Floyd-Warshall routine from) turned out, on inspection, to bundle two
// conflicting implementations of Dense/NewDense/FloydWarshall plus a
// doc-only Matrix interface that collides with an unrelated Matrix struct
// in the same package, not a coherent library to depend on. A plain
// dense float64 grid local to this file is the honest alternative rather
// than wiring into code that cannot be made to typecheck as retrieved.
func CrossCheckDistances(g *graph.Graph) (float64, error) {
	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}
	n := len(nodes)

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = math.Inf(1)
			}
		}
	}
	for _, e := range g.Edges() {
		i, j := index[e.From], index[e.To]
		if e.Weight < dist[i][j] {
			dist[i][j] = e.Weight
			dist[j][i] = e.Weight
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if math.IsInf(dist[i][k], 1) {
				continue
			}
			for j := 0; j < n; j++ {
				if cand := dist[i][k] + dist[k][j]; cand < dist[i][j] {
					dist[i][j] = cand
				}
			}
		}
	}

	var worst float64
	for _, src := range nodes {
		res, err := graph.Dijkstra(g, src.ID, false, nil)
		if err != nil {
			return 0, err
		}
		for _, dst := range nodes {
			fw := dist[index[src.ID]][index[dst.ID]]
			dk := res.Dist[dst.ID]
			if math.IsInf(fw, 1) && math.IsInf(dk, 1) {
				continue
			}
			if diff := math.Abs(fw - dk); diff > worst {
				worst = diff
			}
		}
	}
	return worst, nil
}
