// Package geom provides the planar geometry primitives the planner's core
// operates on: 2D vectors, 4x4 homogeneous transforms for axis kinematics,
// the closed {Box, Cylinder, Sphere} primitive variant, and the two
// interchangeable 2D collision-test backends (sweep-line intersection and
// half-plane containment).
//
// The transform type is a fixed-size specialization rather than a generic
// matrix: axis composition is always 4x4 and sits on the hot path of the
// config-space rasteriser's per-pixel collision query, so the flat-array,
// branchless style of a dense linear-algebra kernel is kept but the
// dimension is fixed at compile time instead of validated at runtime.
package geom
