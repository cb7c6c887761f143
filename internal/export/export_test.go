package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tweber-ill/taspaths-planner/internal/geom"
	"github.com/tweber-ill/taspaths-planner/internal/graph"
	"github.com/tweber-ill/taspaths-planner/internal/pathfinder"
)

func samplePath() []Waypoint {
	return []Waypoint{{Alpha2: 10, Alpha4: 20}, {Alpha2: 15, Alpha4: 25}}
}

func TestWriteRawFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatRaw, samplePath()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "10.000000 20.000000", lines[0])
}

func TestWriteNomadFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatNomad, samplePath()))
	require.Contains(t, buf.String(), "mv a2 10.000000 a4 20.000000")
}

func TestWriteNicosFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatNicos, samplePath()))
	require.Contains(t, buf.String(), "maw(a2, 10.000000, a4, 20.000000)")
}

func TestWriteEmptyPath(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatRaw, nil))
	require.Empty(t, buf.String())
}

func TestPathToWaypointsResolvesNodes(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddNode(&graph.Node{ID: "a", X: 20, Y: 10}))
	require.NoError(t, g.AddNode(&graph.Node{ID: "b", X: 25, Y: 15}))

	result := &pathfinder.Result{NodeIDs: []string{"a", "b"}, Cost: 5}
	waypoints, err := PathToWaypoints(g, result)
	require.NoError(t, err)
	require.Equal(t, []Waypoint{{Alpha2: 10, Alpha4: 20}, {Alpha2: 15, Alpha4: 25}}, waypoints)
}

func TestPathToWaypointsMissingNode(t *testing.T) {
	g := graph.New()
	result := &pathfinder.Result{NodeIDs: []string{"missing"}}
	_, err := PathToWaypoints(g, result)
	require.ErrorIs(t, err, ErrMissingNode)
}

func TestPathToWaypointsDirectShortcutBypassesGraph(t *testing.T) {
	start := geom.Vec2{X: 20, Y: 10}
	goal := geom.Vec2{X: 25, Y: 15}
	result := &pathfinder.Result{Direct: true, Start: &start, Goal: &goal}

	waypoints, err := PathToWaypoints(nil, result)
	require.NoError(t, err)
	require.Equal(t, []Waypoint{{Alpha2: 10, Alpha4: 20}, {Alpha2: 15, Alpha4: 25}}, waypoints)
}
