// Package export renders a found path (internal/pathfinder.Result, mapped
// back to alpha2/alpha4 waypoints) into the three external scan-file
// formats this names: Raw (a plain two-column angle table), Nomad, and
// Nicos, each a textual scan-command format consumed by a different
// instrument control system.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/tweber-ill/taspaths-planner/internal/graph"
	"github.com/tweber-ill/taspaths-planner/internal/pathfinder"
)

// ErrMissingNode is returned when a path's node ID cannot be resolved
// back to a graph.Node (the roadmap graph changed under the caller).
var ErrMissingNode = errors.New("export: path node missing from graph")

// PathToWaypoints resolves a pathfinder.Result's node ID sequence back to
// (alpha2, alpha4) waypoints via the roadmap graph. The roadmap's node
// (X, Y) coordinates are the raster image's configuration-space axes, not
// floor-plane positions, with X holding alpha4 and Y holding alpha2 (the
// convention orchestrator.FindPath builds its query points under).
//
// A direct line-of-sight shortcut carries its two endpoints in Start/Goal
// instead of a roadmap node sequence (pathfinder.Find never invents
// synthetic node IDs for a shortcut that bypassed the roadmap entirely),
// so that case is resolved straight from the Result rather than through g.
func PathToWaypoints(g *graph.Graph, result *pathfinder.Result) ([]Waypoint, error) {
	if result.Start != nil && result.Goal != nil {
		return []Waypoint{
			{Alpha2: result.Start.Y, Alpha4: result.Start.X},
			{Alpha2: result.Goal.Y, Alpha4: result.Goal.X},
		}, nil
	}

	waypoints := make([]Waypoint, len(result.NodeIDs))
	for i, id := range result.NodeIDs {
		n := g.Node(id)
		if n == nil {
			return nil, ErrMissingNode
		}
		waypoints[i] = Waypoint{Alpha2: n.Y, Alpha4: n.X}
	}
	return waypoints, nil
}

// Waypoint is one (alpha2, alpha4) stop along an exported path.
type Waypoint struct {
	Alpha2, Alpha4 float64
}

// Format selects the target scan-file dialect.
type Format int

const (
	FormatRaw Format = iota
	FormatNomad
	FormatNicos
)

// Write renders waypoints in the given format to w.
func Write(w io.Writer, format Format, waypoints []Waypoint) error {
	switch format {
	case FormatNomad:
		return writeNomad(w, waypoints)
	case FormatNicos:
		return writeNicos(w, waypoints)
	default:
		return writeRaw(w, waypoints)
	}
}

// writeRaw emits one "alpha2 alpha4" line per waypoint.
func writeRaw(w io.Writer, waypoints []Waypoint) error {
	for _, wp := range waypoints {
		if _, err := fmt.Fprintf(w, "%.6f %.6f\n", wp.Alpha2, wp.Alpha4); err != nil {
			return err
		}
	}
	return nil
}

// writeNomad emits Nomad's "mv a2 <v> a4 <v>" scan-command dialect, one
// move command per waypoint.
func writeNomad(w io.Writer, waypoints []Waypoint) error {
	if _, err := fmt.Fprintln(w, "# nomad scan path"); err != nil {
		return err
	}
	for _, wp := range waypoints {
		if _, err := fmt.Fprintf(w, "mv a2 %.6f a4 %.6f\n", wp.Alpha2, wp.Alpha4); err != nil {
			return err
		}
	}
	return nil
}

// writeNicos emits Nicos's "maw(a2, <v>, a4, <v>)" scan-command dialect.
func writeNicos(w io.Writer, waypoints []Waypoint) error {
	if _, err := fmt.Fprintln(w, "# nicos scan path"); err != nil {
		return err
	}
	for _, wp := range waypoints {
		if _, err := fmt.Fprintf(w, "maw(a2, %.6f, a4, %.6f)\n", wp.Alpha2, wp.Alpha4); err != nil {
			return err
		}
	}
	return nil
}
