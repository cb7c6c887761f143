// Package dtw compares two alpha2/alpha4 paths sampled at different
// resolutions using Dynamic Time Warping, wiring the root dtw package
// directly rather than reimplementing sequence alignment: re-running the
// pathfinder at a finer raster resolution must not produce a
// qualitatively different route, which needs exactly DTW's
// resolution-invariant distance, not a pointwise comparison two
// differently-sampled paths could never satisfy.
package dtw

import (
	"github.com/tweber-ill/taspaths-planner/dtw"
	"github.com/tweber-ill/taspaths-planner/internal/pathfinder"
)

// CompareResolutions runs DTW between two pathfinder results sampled at
// (possibly) different raster resolutions, returning the warping distance
// between their alpha4 angle sequences. A small distance means the two
// paths trace the same qualitative route through configuration space even
// if they were sampled at different pixel densities.
func CompareResolutions(a, b []float64) (float64, error) {
	opts := dtw.DefaultOptions()
	dist, _, err := dtw.DTW(a, b, &opts)
	return dist, err
}

// AngleSequence extracts the alpha4 (or alpha2) coordinate sequence from a
// pathfinder.Result's roadmap node IDs, given a lookup from node ID to
// configuration, the shape CompareResolutions consumes.
func AngleSequence(result *pathfinder.Result, coordOf func(nodeID string) float64) []float64 {
	out := make([]float64, len(result.NodeIDs))
	for i, id := range result.NodeIDs {
		out[i] = coordOf(id)
	}
	return out
}
