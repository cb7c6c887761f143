package pathfinder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tweber-ill/taspaths-planner/internal/geom"
	"github.com/tweber-ill/taspaths-planner/internal/graph"
)

func lineGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	coords := []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	ids := []string{"n0", "n1", "n2", "n3"}
	for i, c := range coords {
		require.NoError(t, g.AddNode(&graph.Node{ID: ids[i], X: c.X, Y: c.Y}))
	}
	for i := 0; i < len(ids)-1; i++ {
		_, err := g.AddEdge(ids[i], ids[i+1], coords[i].Dist(coords[i+1]), 0, 0)
		require.NoError(t, err)
	}
	return g
}

func TestFindReturnsShortestPath(t *testing.T) {
	g := lineGraph(t)
	index := BuildIndex(g)
	cfg := DefaultConfig()
	cfg.TryDirectPath = false

	res, err := Find(context.Background(), g, index, cfg, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 3, Y: 0}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"n0", "n1", "n2", "n3"}, res.NodeIDs)
	require.InDelta(t, 3.0, res.Cost, 1e-9)
}

func TestFindSameNodeReturnsDirect(t *testing.T) {
	g := lineGraph(t)
	index := BuildIndex(g)
	res, err := Find(context.Background(), g, index, DefaultConfig(), geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0.01, Y: 0}, nil)
	require.NoError(t, err)
	require.True(t, res.Direct)
}

func TestFindDirectPathSkipsRoadmapWhenClear(t *testing.T) {
	g := lineGraph(t)
	index := BuildIndex(g)
	cfg := DefaultConfig()

	res, err := Find(context.Background(), g, index, cfg, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 3, Y: 0}, nil)
	require.NoError(t, err)
	require.True(t, res.Direct)
	require.Empty(t, res.NodeIDs)
	require.NotNil(t, res.Start)
	require.NotNil(t, res.Goal)
}

func TestFindDirectPathBlockedFallsBackToRoadmap(t *testing.T) {
	g := lineGraph(t)
	index := BuildIndex(g)
	cfg := DefaultConfig()
	blocked := func(a, b geom.Vec2) bool { return true }

	res, err := Find(context.Background(), g, index, cfg, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 3, Y: 0}, blocked)
	require.NoError(t, err)
	require.False(t, res.Direct)
	require.Equal(t, []string{"n0", "n1", "n2", "n3"}, res.NodeIDs)
}

func TestRetractToNearestSkipsObstructedCandidate(t *testing.T) {
	g := lineGraph(t)
	index := BuildIndex(g)

	// n0 is nearest to (-0.5,0), but any segment reaching it is reported
	// blocked; retraction should fall through to n1 instead.
	blockN0 := func(a, b geom.Vec2) bool { return b.X == 0 }

	id, ok := RetractToNearest(g, index, geom.Vec2{X: -0.5, Y: 0}, 4, blockN0)
	require.True(t, ok)
	require.Equal(t, "n1", id)
}

func TestRetractToNearestFallsBackWhenAllObstructed(t *testing.T) {
	g := lineGraph(t)
	index := BuildIndex(g)
	blocked := func(a, b geom.Vec2) bool { return true }

	id, ok := RetractToNearest(g, index, geom.Vec2{X: -0.5, Y: 0}, 4, blocked)
	require.True(t, ok)
	require.Equal(t, "n0", id)
}

func TestFindReturnsUnreachableForDisconnectedGraph(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddNode(&graph.Node{ID: "a", X: 0, Y: 0}))
	require.NoError(t, g.AddNode(&graph.Node{ID: "b", X: 100, Y: 100}))
	index := BuildIndex(g)
	cfg := DefaultConfig()
	cfg.TryDirectPath = false
	blocked := func(a, b geom.Vec2) bool { return true }

	_, err := Find(context.Background(), g, index, cfg, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 100, Y: 100}, blocked)
	require.ErrorIs(t, err, ErrUnreachableGoal)
}

func TestVerifyDetectsBrokenPath(t *testing.T) {
	g := lineGraph(t)
	require.True(t, Verify(g, []string{"n0", "n1", "n2"}))
	require.False(t, Verify(g, []string{"n0", "n2"}))
}

func TestCrossCheckDistancesAgreesWithDijkstra(t *testing.T) {
	g := lineGraph(t)
	worst, err := CrossCheckDistances(g)
	require.NoError(t, err)
	require.InDelta(t, 0.0, worst, 1e-9)
}

func TestPenaliseWallsIncreasesCostOverShortest(t *testing.T) {
	g := lineGraph(t)
	index := BuildIndex(g)
	shortest := DefaultConfig()
	shortest.TryDirectPath = false
	penalise := DefaultConfig()
	penalise.TryDirectPath = false
	penalise.Policy = PolicyPenaliseWalls

	rShort, err := Find(context.Background(), g, index, shortest, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 3, Y: 0}, nil)
	require.NoError(t, err)
	rPenal, err := Find(context.Background(), g, index, penalise, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 3, Y: 0}, nil)
	require.NoError(t, err)
	require.Greater(t, rPenal.Cost, rShort.Cost)
}
