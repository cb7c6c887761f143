// Package pathfinder finds a collision-free trajectory through the roadmap
// graph (internal/voronoi's output) between a start and a goal
// configuration: retraction onto the nearest roadmap node, an optional
// direct line-of-sight shortcut, a Dijkstra search with a selectable edge
// weight policy, and a final verification pass.
//
// The search itself is a thin policy layer over internal/graph.Dijkstra
// (itself adapted from lvlath/dijkstra); the two edge-weight
// policies (SHORTEST, PENALISE_WALLS) become two graph.WeightFunc values
// rather than two copies of the search loop, exactly as
// internal/graph/dijkstra.go's own doc comment anticipates.
package pathfinder

import (
	"context"
	"errors"
	"math"

	"github.com/tweber-ill/taspaths-planner/internal/geom"
	"github.com/tweber-ill/taspaths-planner/internal/graph"
	"github.com/tweber-ill/taspaths-planner/internal/kdtree"
)

// Sentinel errors.
var (
	ErrEmptyGraph      = errors.New("pathfinder: roadmap graph has no nodes")
	ErrUnreachableGoal = errors.New("pathfinder: goal configuration is unreachable")
	ErrNoDirectPath    = errors.New("pathfinder: direct path blocked")
)

// WeightPolicy selects between the two edge-weight policies.
type WeightPolicy int

const (
	// PolicyShortest minimizes plain Euclidean roadmap length.
	PolicyShortest WeightPolicy = iota
	// PolicyPenaliseWalls additionally penalises edges that run close to a
	// wall, biasing the search toward the roadmap's medial-axis centre.
	PolicyPenaliseWalls
)

// Config holds the pathfinder's tunables (the direct-path search
// radius weighted norm sqrt(wM^2*da2^2 + wS^2*da4^2) among them).
type Config struct {
	Policy WeightPolicy
	// WallPenalty scales PolicyPenaliseWalls's extra cost term.
	WallPenalty float64
	// WeightAlpha2, WeightAlpha4 weight the direct-path search radius norm.
	WeightAlpha2, WeightAlpha4 float64
	// DirectPathRadius bounds how far apart two configurations may be for
	// a direct line-of-sight shortcut to even be attempted.
	DirectPathRadius float64
	// TryDirectPath, when set, makes Find attempt an unobstructed straight
	// shortcut between start and goal before ever retracting onto the
	// roadmap.
	TryDirectPath bool
	// RetractionTopK bounds how many nearest roadmap nodes RetractToNearest
	// considers before falling back to the single closest one.
	RetractionTopK int
}

// DefaultConfig mirrors SPEC_FULL.md's resolved Open Question: wM=wS=1.
func DefaultConfig() Config {
	return Config{
		Policy:           PolicyShortest,
		WallPenalty:      4.0,
		WeightAlpha2:     1.0,
		WeightAlpha4:     1.0,
		DirectPathRadius: 5.0,
		TryDirectPath:    true,
		RetractionTopK:   64,
	}
}

// weightedDist computes the weighted norm sqrt(wM^2*da2^2 + wS^2*da4^2)
// SPEC_FULL.md's Open Question resolution defines between two (alpha2,
// alpha4) configurations.
func (c Config) weightedDist(a2a, a4a, a2b, a4b float64) float64 {
	dA2 := a2a - a2b
	dA4 := a4a - a4b
	return math.Sqrt(c.WeightAlpha2*c.WeightAlpha2*dA2*dA2 + c.WeightAlpha4*c.WeightAlpha4*dA4*dA4)
}

// Collides reports whether a straight line between two floor-plane points
// crosses any wall segment; used by HasDirectPath.
type Collides func(a, b geom.Vec2) bool

// Result is a found path. For a roadmap path, NodeIDs is the ordered
// sequence of roadmap node IDs. For a direct shortcut that bypassed the
// roadmap entirely, NodeIDs is empty and Start/Goal carry the two
// configuration-space endpoints instead, exactly two waypoints. Cost is
// the total cost under the configured WeightPolicy (or the direct
// weighted-norm distance, for a direct shortcut).
type Result struct {
	NodeIDs     []string
	Cost        float64
	Direct      bool
	Start, Goal *geom.Vec2
}

// RetractToNearest snaps an arbitrary floor/configuration-space point onto
// a nearby roadmap node, the retraction step: it queries the k nearest
// candidates from index and returns the first whose straight connecting
// segment collides reports clear, falling back to the single closest
// candidate when collides is nil or every candidate is obstructed. k<=0
// is treated as 1 (nearest-only, no obstruction test).
func RetractToNearest(g *graph.Graph, index *kdtree.Tree, p geom.Vec2, k int, collides Collides) (string, bool) {
	if index == nil || index.Len() == 0 {
		return "", false
	}
	if k <= 0 {
		k = 1
	}

	candidates := index.KNearest(kdtree.Point{X: p.X, Y: p.Y}, k)
	fallback := ""
	for _, c := range candidates {
		id, ok := c.Payload.(string)
		if !ok || !g.HasNode(id) {
			continue
		}
		if fallback == "" {
			fallback = id
		}
		if collides != nil && collides(p, geom.Vec2{X: c.X, Y: c.Y}) {
			continue
		}
		return id, true
	}
	if fallback == "" {
		return "", false
	}
	return fallback, true
}

// BuildIndex constructs the k-d tree index RetractToNearest needs from a
// roadmap graph's current node set.
func BuildIndex(g *graph.Graph) *kdtree.Tree {
	nodes := g.Nodes()
	pts := make([]kdtree.Point, len(nodes))
	for i, n := range nodes {
		pts[i] = kdtree.Point{X: n.X, Y: n.Y, Payload: n.ID}
	}
	return kdtree.Build(pts)
}

// HasDirectPath reports whether a and b are close enough (per cfg's
// weighted norm) and whether a straight segment between them avoids every
// obstacle collides reports a hit for. A nil collides (no known obstacles)
// is treated as always clear.
func HasDirectPath(cfg Config, a, b geom.Vec2, a2a, a4a, a2b, a4b float64, collides Collides) bool {
	if cfg.weightedDist(a2a, a4a, a2b, a4b) > cfg.DirectPathRadius {
		return false
	}
	if collides == nil {
		return true
	}
	return !collides(a, b)
}

// weightFunc builds the graph.WeightFunc for the configured policy.
func (c Config) weightFunc() graph.WeightFunc {
	if c.Policy == PolicyPenaliseWalls {
		penalty := c.WallPenalty
		return func(e *graph.Edge) float64 {
			return e.Weight * (1 + penalty/(1+e.Weight))
		}
	}
	return graph.EuclideanWeight
}

// Find runs the full pathfinder pipeline: try a direct line-of-sight
// shortcut first, retract start/goal onto the roadmap when that fails, a
// cheap BFS connectivity check, and finally Dijkstra. collides tests
// whether a straight segment between two configuration points crosses an
// obstacle; a nil collides disables both the direct-shortcut and
// retraction obstruction tests (the empty-wall-set boundary case, where
// every straight segment is clear by construction).
func Find(ctx context.Context, g *graph.Graph, index *kdtree.Tree, cfg Config, start, goal geom.Vec2, collides Collides) (*Result, error) {
	if g.Stats().NodeCount == 0 {
		return nil, ErrEmptyGraph
	}

	if cfg.TryDirectPath && HasDirectPath(cfg, start, goal, start.Y, start.X, goal.Y, goal.X, collides) {
		s, gl := start, goal
		return &Result{
			Cost:   cfg.weightedDist(start.Y, start.X, goal.Y, goal.X),
			Direct: true,
			Start:  &s,
			Goal:   &gl,
		}, nil
	}

	startID, ok := RetractToNearest(g, index, start, cfg.RetractionTopK, collides)
	if !ok {
		return nil, ErrEmptyGraph
	}
	goalID, ok := RetractToNearest(g, index, goal, cfg.RetractionTopK, collides)
	if !ok {
		return nil, ErrEmptyGraph
	}

	if startID == goalID {
		return &Result{NodeIDs: []string{startID}, Cost: 0, Direct: true}, nil
	}

	connected, err := graph.Connected(ctx, g, startID, goalID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrUnreachableGoal
	}

	res, err := graph.Dijkstra(g, startID, true, cfg.weightFunc())
	if err != nil {
		return nil, err
	}
	path, ok := res.PathTo(startID, goalID)
	if !ok {
		return nil, ErrUnreachableGoal
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return &Result{NodeIDs: path, Cost: res.Dist[goalID]}, nil
}

// Verify re-walks a found path's node sequence and confirms every
// consecutive pair is actually connected by an edge in g, a defence
// against a caller handing back a stale path after the roadmap graph was
// rebuilt (the mesh_valid invariant).
func Verify(g *graph.Graph, path []string) bool {
	for i := 0; i+1 < len(path); i++ {
		neighbors, err := g.Neighbors(path[i])
		if err != nil {
			return false
		}
		found := false
		for _, e := range neighbors {
			if e.To == path[i+1] || e.From == path[i+1] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
