// Package instrument models the physical triple-axis spectrometer: a fixed
// three-axis kinematic chain (monochromator, sample, analyser) carrying
// geometry primitives, plus the InstrumentSpace that also holds the
// laboratory floor and its walls.
//
// The shape is grounded directly on original_source/src/core/{Axis.h,
// Instrument.h, InstrumentSpace.h}: Axis keeps a zero position, an
// incoming/outgoing/internal angle triple with optional limits, and the
// components attached to each of its three reference frames; Instrument
// wires three Axis values into the fixed mono->sample->analyser chain;
// InstrumentSpace adds the floor extent and the wall geometry. The C++
// mutable-trafo-cache (m_trafoIncoming/m_trafos_need_update) is dropped:
// Go has no "mutable" qualifier workaround needed, and GetTransform below
// recomputes on every call, which is cheap (three 4x4 multiplies) next to
// a single rasteriser pixel evaluation.
package instrument

import (
	"errors"
	"sync"

	"github.com/tweber-ill/taspaths-planner/internal/geom"
)

// Sentinel errors.
var (
	ErrUnknownAxis     = errors.New("instrument: unknown axis name")
	ErrAngleOutOfLimit = errors.New("instrument: angle outside configured limit")
)

// AxisFrame selects which of an axis's three reference frames a component
// or angle query refers to (original_source AxisAngle: INCOMING, INTERNAL,
// OUTGOING).
type AxisFrame int

const (
	FrameIncoming AxisFrame = iota
	FrameInternal
	FrameOutgoing
)

// AngleLimit is an optional [Lower,Upper] bound; Set reports whether the
// limit is actually configured (mirrors std::optional<t_real> m_angle_limits[2]).
type AngleLimit struct {
	Lower, Upper float64
	Set          bool
}

// InRange reports whether angle satisfies the limit, or true if unset.
func (l AngleLimit) InRange(angle float64) bool {
	if !l.Set {
		return true
	}
	return angle >= l.Lower && angle <= l.Upper
}

// Axis is one rotation stage of the instrument: monochromator, sample, or
// analyser. ZeroPos is the axis's pivot in the previous axis's frame;
// AngleIn/AngleInternal/AngleOut are the three angles the original exposes
// (incoming beam direction, internal rotation, outgoing beam direction).
type Axis struct {
	ID string

	ZeroPos geom.Vec2

	AngleIn       float64
	AngleInternal float64
	AngleOut      float64

	LimitIn       AngleLimit
	LimitInternal AngleLimit
	LimitOut      AngleLimit

	// CompsIncoming/CompsInternal/CompsOutgoing are the geometry primitives
	// rigidly attached to each of this axis's three frames.
	CompsIncoming []geom.Primitive
	CompsInternal []geom.Primitive
	CompsOutgoing []geom.Primitive

	prev *Axis
}

// NewAxis constructs an axis chained after prev (nil for the first axis in
// the chain, as Instrument.GetMonochromator has no predecessor).
func NewAxis(id string, prev *Axis) *Axis {
	return &Axis{ID: id, prev: prev}
}

// SetAngle sets the angle for the given frame after checking it against
// its configured limit; an angle outside the limit is not stored and
// ErrAngleOutOfLimit is returned.
func (a *Axis) SetAngle(frame AxisFrame, angle float64) error {
	switch frame {
	case FrameIncoming:
		if !a.LimitIn.InRange(angle) {
			return ErrAngleOutOfLimit
		}
		a.AngleIn = angle
	case FrameInternal:
		if !a.LimitInternal.InRange(angle) {
			return ErrAngleOutOfLimit
		}
		a.AngleInternal = angle
	case FrameOutgoing:
		if !a.LimitOut.InRange(angle) {
			return ErrAngleOutOfLimit
		}
		a.AngleOut = angle
	default:
		return ErrUnknownAxis
	}
	return nil
}

// Angle returns the current value of the requested frame's angle.
func (a *Axis) Angle(frame AxisFrame) float64 {
	switch frame {
	case FrameInternal:
		return a.AngleInternal
	case FrameOutgoing:
		return a.AngleOut
	default:
		return a.AngleIn
	}
}

// LocalTransform returns this axis's own rotate-about-ZeroPos transform for
// the given frame, without composing in any predecessor.
func (a *Axis) LocalTransform(frame AxisFrame) geom.Mat4 {
	return geom.TranslateXY(a.ZeroPos.X, a.ZeroPos.Y).
		Mul(geom.RotateZ(a.Angle(frame))).
		Mul(geom.TranslateXY(-a.ZeroPos.X, -a.ZeroPos.Y))
}

// Comps returns the geometry primitives attached to the given frame.
func (a *Axis) Comps(frame AxisFrame) []geom.Primitive {
	switch frame {
	case FrameInternal:
		return a.CompsInternal
	case FrameOutgoing:
		return a.CompsOutgoing
	default:
		return a.CompsIncoming
	}
}

// Clone returns a deep copy of the axis, excluding the prev link (the
// caller reattaches it). This is what the rasteriser's per-worker
// instrument clone uses to give each goroutine an independent,
// race-free copy.
func (a *Axis) Clone() *Axis {
	clone := &Axis{
		ID: a.ID, ZeroPos: a.ZeroPos,
		AngleIn: a.AngleIn, AngleInternal: a.AngleInternal, AngleOut: a.AngleOut,
		LimitIn: a.LimitIn, LimitInternal: a.LimitInternal, LimitOut: a.LimitOut,
	}
	clone.CompsIncoming = append([]geom.Primitive(nil), a.CompsIncoming...)
	clone.CompsInternal = append([]geom.Primitive(nil), a.CompsInternal...)
	clone.CompsOutgoing = append([]geom.Primitive(nil), a.CompsOutgoing...)
	return clone
}

// changeGuard implements the defer-notify batch pattern: BeginBatch
// suppresses individual Notify calls until Commit fires a single combined
// notification, so a caller moving both alpha2 and alpha4 together never
// triggers two redundant collision re-evaluations.
type changeGuard struct {
	mu        sync.Mutex
	batching  bool
	pending   bool
	listeners []func()
}

func (g *changeGuard) onChange(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

func (g *changeGuard) beginBatch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.batching = true
}

func (g *changeGuard) commit() {
	g.mu.Lock()
	g.batching = false
	fire := g.pending
	g.pending = false
	listeners := append([]func(){}, g.listeners...)
	g.mu.Unlock()

	if fire {
		for _, l := range listeners {
			l()
		}
	}
}

func (g *changeGuard) notify() {
	g.mu.Lock()
	if g.batching {
		g.pending = true
		g.mu.Unlock()
		return
	}
	listeners := append([]func(){}, g.listeners...)
	g.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}
