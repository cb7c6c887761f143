package voronoi

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tweber-ill/taspaths-planner/internal/geom"
	"github.com/tweber-ill/taspaths-planner/internal/segment"
)

func twoWalls() []segment.Site {
	wallA := segment.FromContour([]geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, 1)
	wallB := segment.FromContour([]geom.Vec2{{X: 5, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 1}, {X: 5, Y: 1}}, 2)
	return append(wallA, wallB...)
}

func TestBuildSegmentBackendProducesNonEmptyGraph(t *testing.T) {
	sites := twoWalls()
	g, err := Build(sites, Options{Backend: BackendSegment})
	require.NoError(t, err)
	require.Greater(t, g.Stats().NodeCount, 0)
	require.Greater(t, g.Stats().EdgeCount, 0)
}

func TestBuildPointSampledBackendProducesNonEmptyGraph(t *testing.T) {
	sites := twoWalls()
	g, err := Build(sites, Options{Backend: BackendPointSampled, SampleStep: 0.25})
	require.NoError(t, err)
	require.Greater(t, g.Stats().NodeCount, 0)
}

func TestDefaultKeepRejectsAdjacentSameGroupEdges(t *testing.T) {
	square := segment.FromContour([]geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, 1)
	require.False(t, DefaultKeep(square[0], square[1]))
}

func TestDefaultKeepAllowsDifferentGroups(t *testing.T) {
	a := segment.Site{Segment: geom.Segment{A: geom.Vec2{X: 0, Y: 0}, B: geom.Vec2{X: 1, Y: 0}}, Group: 1}
	b := segment.Site{Segment: geom.Segment{A: geom.Vec2{X: 5, Y: 5}, B: geom.Vec2{X: 6, Y: 5}}, Group: 2}
	require.True(t, DefaultKeep(a, b))
}
