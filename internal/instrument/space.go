package instrument

import (
	"github.com/tweber-ill/taspaths-planner/internal/geom"
)

// Space holds the laboratory floor, its wall geometry, and the instrument
// itself, grounded on original_source's InstrumentSpace: floor extent
// (m_floorlen), wall segments (m_walls), the embedded Instrument, and the
// update signal (m_sigUpdate), here implemented with the same changeGuard
// batching helper the Instrument uses.
type Space struct {
	FloorLenX, FloorLenY float64

	Walls      []geom.Primitive
	Instrument *Instrument

	Backend geom.CollisionBackend

	changes changeGuard

	// whitelist is the fixed set of axis-owner pairs CheckCollision2D tests
	// component polygons against, computed once in NewSpace from the
	// instrument's three fixed axes.
	whitelist map[[2]string]bool
}

// NewSpace builds an empty instrument space over a floorLenX x floorLenY
// floor, with the default (square-root-free) sweep-line collision backend.
func NewSpace(floorLenX, floorLenY float64) *Space {
	instr := New()
	return &Space{
		FloorLenX:  floorLenX,
		FloorLenY:  floorLenY,
		Instrument: instr,
		Backend:    geom.BackendSweepLine,
		whitelist:  buildCollisionWhitelist(instr.AxisIDs()),
	}
}

// wallOwner is the pseudo axis-id CheckCollision2D's whitelist uses for
// the space's static wall geometry, which has no owning axis.
const wallOwner = "wall"

// buildCollisionWhitelist derives the fixed component-id pairs
// CheckCollision2D is allowed to test: every axis paired with the walls,
// and every distinct pair of axes (spec.md §4.A: "pairs on the same rigid
// body are skipped" — a pair never appears here when both sides name the
// same axis, since that axis's own geometry buckets are one rigid body).
func buildCollisionWhitelist(axisIDs []string) map[[2]string]bool {
	whitelist := make(map[[2]string]bool)
	for i, a := range axisIDs {
		whitelist[pairKey(wallOwner, a)] = true
		for _, b := range axisIDs[i+1:] {
			whitelist[pairKey(a, b)] = true
		}
	}
	return whitelist
}

// pairKey normalises an unordered owner pair so lookup doesn't care which
// side was tested first.
func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// AddWall appends a wall segment's geometry to the space (InstrumentSpace::AddWall).
func (s *Space) AddWall(id string, prim geom.Primitive) {
	prim.ID = id
	s.Walls = append(s.Walls, prim)
	s.changes.notify()
}

// OnChange registers a listener for space-level changes (walls added,
// instrument moved), mirrors InstrumentSpace::AddUpdateSlot.
func (s *Space) OnChange(fn func()) { s.changes.onChange(fn) }

// EmitUpdate fires all registered listeners unconditionally, matching
// InstrumentSpace::EmitUpdate.
func (s *Space) EmitUpdate() { s.changes.notify() }

// wallPolygons returns the world-space polygon of every wall, in the
// space's own (global) frame, walls have no attached axis, so their Local
// transform is applied directly with no chain composition.
func (s *Space) wallPolygons() [][]geom.Vec2 {
	out := make([][]geom.Vec2, 0, len(s.Walls))
	for _, w := range s.Walls {
		out = append(out, w.WorldPolygon(geom.Identity4()))
	}
	return out
}

// CheckCollision2D reports whether any instrument component overlaps any
// other instrument component, or any wall, under the space's configured
// collision backend (InstrumentSpace::CheckCollision2D). Only component
// pairs named in the space's collision whitelist are actually tested:
// every axis against the walls, and every pair of distinct axes, pairs on
// the same rigid body (the same axis's own geometry across its three
// frames) are skipped without a geometry test.
func (s *Space) CheckCollision2D() bool {
	if s.whitelist == nil {
		s.whitelist = buildCollisionWhitelist(s.Instrument.AxisIDs())
	}
	comps := s.Instrument.WorldComponents()
	walls := s.wallPolygons()

	for i := range comps {
		if !s.whitelist[pairKey(wallOwner, comps[i].Owner)] {
			continue
		}
		for j := range walls {
			if geom.PolygonsIntersect(comps[i].Poly, walls[j], s.Backend) {
				return true
			}
		}
	}
	for i := range comps {
		for j := i + 1; j < len(comps); j++ {
			if comps[i].Owner == comps[j].Owner || !s.whitelist[pairKey(comps[i].Owner, comps[j].Owner)] {
				continue
			}
			if geom.PolygonsIntersect(comps[i].Poly, comps[j].Poly, s.Backend) {
				return true
			}
		}
	}
	return false
}
