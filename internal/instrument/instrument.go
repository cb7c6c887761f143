package instrument

import "github.com/tweber-ill/taspaths-planner/internal/geom"

// Instrument wires the fixed three-axis chain the original always builds in
// its constructor (m_mono, m_sample{&m_mono}, m_ana{&m_sample}).
// original_source/src/gui/ConfigSpace.cpp's own UpdateInstrument
// (GetMonochromator().GetAxisAngleOut(), GetSample().GetAxisAngleOut())
// pins down which angle is which: alpha2 ("A2") is the monochromator's
// outgoing rotation, alpha4 ("A4") is the sample's outgoing rotation. The
// sample's internal rotation alpha3 is never driven independently; it is
// always derived from alpha4 (alpha3 = alpha4/2 + a3 offset), the coupling
// SPEC_FULL.md's Open-Question resolution records.
type Instrument struct {
	Monochromator *Axis
	Sample        *Axis
	Analyser      *Axis

	// A3OffsetDeg is the fixed offset added to alpha4/2 when deriving the
	// sample's internal rotation (alpha3), configured from
	// CoreConfig.A3OffsetDeg.
	A3OffsetDeg float64

	changes changeGuard
}

// New builds the fixed mono -> sample -> analyser chain.
func New() *Instrument {
	mono := NewAxis("monochromator", nil)
	sample := NewAxis("sample", mono)
	ana := NewAxis("analyser", sample)
	return &Instrument{Monochromator: mono, Sample: sample, Analyser: ana}
}

// OnChange registers fn to run whenever the instrument's configuration
// changes (outside of a batch), mirroring the original's boost::signals2
// hook used to trigger a re-render/re-check.
func (instr *Instrument) OnChange(fn func()) {
	instr.changes.onChange(fn)
}

// BeginBatch suppresses per-axis change notifications until Commit, so that
// setting alpha2 and alpha4 together (as SetSampleAngles does) fires one
// notification rather than two.
func (instr *Instrument) BeginBatch() { instr.changes.beginBatch() }

// Commit ends a batch started with BeginBatch, firing a single pending
// notification if any change occurred during the batch.
func (instr *Instrument) Commit() { instr.changes.commit() }

// SetSampleAngles sets alpha2 (monochromator outgoing rotation) and alpha4
// (sample outgoing rotation), the two coordinates of the planner's
// configuration space, as a single batched change. The sample's internal
// rotation alpha3 is derived from alpha4 (alpha3 = alpha4/2 + A3OffsetDeg)
// and set alongside them, never independently.
func (instr *Instrument) SetSampleAngles(alpha2, alpha4 float64) error {
	instr.BeginBatch()
	defer instr.Commit()

	if err := instr.Monochromator.SetAngle(FrameOutgoing, alpha2); err != nil {
		return err
	}
	if err := instr.Sample.SetAngle(FrameOutgoing, alpha4); err != nil {
		return err
	}
	if err := instr.Sample.SetAngle(FrameInternal, alpha4/2+instr.A3OffsetDeg); err != nil {
		return err
	}
	instr.changes.notify()
	return nil
}

// SampleAngles returns the current (alpha2, alpha4) configuration.
func (instr *Instrument) SampleAngles() (alpha2, alpha4 float64) {
	return instr.Monochromator.Angle(FrameOutgoing), instr.Sample.Angle(FrameOutgoing)
}

// GetTransform returns the world transform of the given axis's given
// frame, composing the chain from the monochromator down exactly as
// geom.Mat4's Mul doc-comments it: each axis applies its own local rotation
// first, then the accumulated transform of everything upstream of it.
func (instr *Instrument) GetTransform(axis *Axis, frame AxisFrame) geom.Mat4 {
	if axis.prev == nil {
		return axis.LocalTransform(frame)
	}
	parent := instr.GetTransform(axis.prev, FrameOutgoing)
	return parent.Mul(axis.LocalTransform(frame))
}

// Clone deep-copies the instrument, relinking the chain's prev pointers.
// This is the per-worker clone the rasteriser's worker pool takes so each
// goroutine rasterises its rows against an independent instrument state.
func (instr *Instrument) Clone() *Instrument {
	mono := instr.Monochromator.Clone()
	sample := instr.Sample.Clone()
	ana := instr.Analyser.Clone()
	sample.prev = mono
	ana.prev = sample
	return &Instrument{Monochromator: mono, Sample: sample, Analyser: ana, A3OffsetDeg: instr.A3OffsetDeg}
}

// Component is one geometry primitive's world-space footprint, tagged with
// the axis that owns it (the rigid body it is rigidly attached to), the
// granularity CheckCollision2D's collision whitelist is built over.
type Component struct {
	Owner string
	Poly  []geom.Vec2
}

// AxisIDs returns the instrument's three fixed axis ids, in chain order.
func (instr *Instrument) AxisIDs() []string {
	return []string{instr.Monochromator.ID, instr.Sample.ID, instr.Analyser.ID}
}

// WorldComponents returns the world-space footprint of every geometry
// primitive currently attached to the instrument, across all three axes
// and all three frames each axis carries, each tagged with its owning
// axis id.
func (instr *Instrument) WorldComponents() []Component {
	var out []Component
	for _, axis := range []*Axis{instr.Monochromator, instr.Sample, instr.Analyser} {
		for _, frame := range []AxisFrame{FrameIncoming, FrameInternal, FrameOutgoing} {
			world := instr.GetTransform(axis, frame)
			for _, comp := range axis.Comps(frame) {
				out = append(out, Component{Owner: axis.ID, Poly: comp.WorldPolygon(world)})
			}
		}
	}
	return out
}
