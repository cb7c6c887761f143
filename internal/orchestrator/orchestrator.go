// Package orchestrator drives the end-to-end pipeline (rasterise ->
// contour -> segment -> voronoi -> pathfinder) from two commands,
// UpdatePathMesh and FindPath, exposing a progress state machine and a
// mutex-guarded mesh swap so a FindPath call never observes a half-built
// roadmap.
//
// The "caller's own goroutine is the background thread" design
// is kept literal here: Orchestrator does not spawn its own worker
// goroutine. A caller wanting UpdatePathMesh to run in the background
// launches it in its own goroutine and polls Progress/State, mirroring how
// the rasteriser's worker pool is itself invoked from whatever goroutine
// the caller chooses.
package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/tweber-ill/taspaths-planner/internal/contour"
	"github.com/tweber-ill/taspaths-planner/internal/geom"
	"github.com/tweber-ill/taspaths-planner/internal/graph"
	"github.com/tweber-ill/taspaths-planner/internal/instrument"
	"github.com/tweber-ill/taspaths-planner/internal/kdtree"
	"github.com/tweber-ill/taspaths-planner/internal/pathfinder"
	"github.com/tweber-ill/taspaths-planner/internal/raster"
	"github.com/tweber-ill/taspaths-planner/internal/rasteriser"
	"github.com/tweber-ill/taspaths-planner/internal/segment"
	"github.com/tweber-ill/taspaths-planner/internal/voronoi"
)

// ErrMeshNotBuilt is returned by FindPath before UpdatePathMesh has ever
// completed successfully.
var ErrMeshNotBuilt = errors.New("orchestrator: path mesh not yet built")

// ProgressState is the pipeline stage an UpdatePathMesh run has reached.
type ProgressState int

const (
	StateIdle ProgressState = iota
	StateRasterising
	StateTracingContours
	StateBuildingSegments
	StateBuildingVoronoi
	StateReady
	StateFailed
)

// mesh is the immutable bundle produced by one successful UpdatePathMesh
// run; FindPath always reads a consistent snapshot of it. obstacles is
// the configuration-space obstacle boundary (the same segment sites the
// Voronoi builder consumed), kept alongside the roadmap so FindPath can
// test a candidate direct shortcut or retraction step for collisions.
type mesh struct {
	graph     *graph.Graph
	index     *kdtree.Tree
	obstacles []geom.Segment
	valid     bool
}

// Orchestrator owns the current mesh and the box/config it was last built
// from.
type Orchestrator struct {
	Space     *instrument.Space
	Box       raster.AngleBox
	PathCfg   pathfinder.Config
	RasterCfg rasteriser.Options

	mu      sync.RWMutex
	current mesh
	state   ProgressState
}

// New builds an Orchestrator for the given instrument space and sampling
// box, with no mesh built yet (State() == StateIdle, FindPath returns
// ErrMeshNotBuilt). It subscribes to both the space's and the instrument's
// update signal so that any wall or geometry change made after a mesh was
// built flips it back to invalid, forcing a fresh UpdatePathMesh before
// the next FindPath.
func New(space *instrument.Space, box raster.AngleBox) *Orchestrator {
	o := &Orchestrator{
		Space:     space,
		Box:       box,
		PathCfg:   pathfinder.DefaultConfig(),
		RasterCfg: rasteriser.Options{Workers: 4},
	}
	space.OnChange(o.invalidateMesh)
	space.Instrument.OnChange(o.invalidateMesh)
	return o
}

// invalidateMesh flips the current mesh back to invalid without touching
// its graph/index, a stale mesh is still readable for diagnostics, it is
// simply no longer trusted by FindPath.
func (o *Orchestrator) invalidateMesh() {
	o.mu.Lock()
	o.current.valid = false
	o.mu.Unlock()
}

// State returns the current progress state.
func (o *Orchestrator) State() ProgressState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

func (o *Orchestrator) setState(s ProgressState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Graph returns the roadmap graph of the most recently built mesh, or nil
// if UpdatePathMesh has never completed successfully. Callers resolving a
// FindPath result's node IDs back to coordinates (internal/export) use
// this rather than reaching into Orchestrator's internals.
func (o *Orchestrator) Graph() *graph.Graph {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.current.graph
}

// UpdatePathMesh runs the full rasterise -> contour -> segment -> voronoi
// pipeline and, on success, atomically swaps it in as the mesh FindPath
// will use. It is safe to call from any goroutine (including one the
// caller spawned to run this in the "background"); FindPath from another
// goroutine always either sees the old mesh or the fully-built new one,
// never a partial one.
func (o *Orchestrator) UpdatePathMesh(ctx context.Context) error {
	o.setState(StateRasterising)
	img, err := raster.New(o.Box)
	if err != nil {
		o.setState(StateFailed)
		return err
	}
	if err := rasteriser.Run(ctx, o.Space, img, o.RasterCfg); err != nil {
		o.setState(StateFailed)
		return err
	}

	o.setState(StateTracingContours)
	contours := contour.TraceAll(img)
	var nodes []contour.Node
	if len(contours) > 0 {
		simplified := make([][]contour.Point, len(contours))
		for i, c := range contours {
			simplified[i] = contour.Simplify(c, 1.0)
		}
		nodes = contour.ResolveNesting(simplified)
	}

	o.setState(StateBuildingSegments)
	var sites []segment.Site
	for i, n := range nodes {
		poly := make([]geom.Vec2, len(n.Polygon))
		for j, p := range n.Polygon {
			a2, a4 := img.PixelToAngle(p)
			poly[j] = geom.Vec2{X: a4, Y: a2}
		}
		sites = append(sites, segment.FromContour(poly, i)...)
	}

	o.setState(StateBuildingVoronoi)
	g, err := voronoi.Build(sites, voronoi.Options{Backend: voronoi.BackendPointSampled, SampleStep: o.Box.StepAlpha4})
	if err != nil {
		o.setState(StateFailed)
		return err
	}

	idx := pathfinder.BuildIndex(g)
	obstacles := make([]geom.Segment, len(sites))
	for i, s := range sites {
		obstacles[i] = s.Segment
	}

	o.mu.Lock()
	o.current = mesh{graph: g, index: idx, obstacles: obstacles, valid: true}
	o.state = StateReady
	o.mu.Unlock()
	return nil
}

// FindPath searches the current mesh for a path between start and goal
// (in alpha2/alpha4 configuration space), returning ErrMeshNotBuilt if
// UpdatePathMesh has never succeeded.
func (o *Orchestrator) FindPath(ctx context.Context, startA2, startA4, goalA2, goalA4 float64) (*pathfinder.Result, error) {
	o.mu.RLock()
	m := o.current
	cfg := o.PathCfg
	o.mu.RUnlock()

	if !m.valid {
		return nil, ErrMeshNotBuilt
	}

	start := geom.Vec2{X: startA4, Y: startA2}
	goal := geom.Vec2{X: goalA4, Y: goalA2}
	collides := func(a, b geom.Vec2) bool {
		trial := geom.Segment{A: a, B: b}
		for _, obs := range m.obstacles {
			if trial.Intersects(obs) {
				return true
			}
		}
		return false
	}
	return pathfinder.Find(ctx, m.graph, m.index, cfg, start, goal, collides)
}
