// Package selection maps an externally owned selection set onto per-point
// emphasis and defines the toggle round-trip.
//
// # Snapshots
//
// The host owns the live selection. Every computation here reads a
// [Selection], an immutable snapshot of identity keys taken at the start
// of an update. Nothing in this package keeps a reference to the host's
// selection manager.
//
// # Emphasis
//
//	empty selection          -> every point 1.0
//	point's key in selection -> 1.0
//	otherwise                -> 0.5
//
// # Toggling
//
// [NewToggleIntent] proposes flipping one identity. The collaborator that
// owns the selection applies it (for example [Store.Toggle]) and reports
// the resulting snapshot back. Until then only the interacted point is
// painted at full emphasis ([Optimistic]); the rest wait for the
// round-trip.
package selection
