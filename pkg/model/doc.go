// Package model defines the value types shared by every imagewall stage.
//
// The types sit at the boundary between the host adapter (which extracts
// points from a data source) and the layout, resolution, selection and
// reconcile stages. Everything here is a plain value: stages never mutate
// a point they were given, they return fresh copies.
//
// # Core Types
//
//   - [DataPoint]: one weighted, image-bearing item with an [Identity]
//   - [Settings]: per-update configuration (columns, threshold, mode)
//   - [Viewport]: the bounded area the layout must fit in
//   - [PositionedPoint]: a DataPoint plus geometry, image and emphasis
//
// # Layout Modes
//
//	model.ModeGrid               // "grid"
//	model.ModeCirclePackWeighted // "circle"
//	model.ModeCirclePackTopList  // "circle-toplist"
//
// [ParseMode] also accepts the upper-case names used by the original host
// configuration ("GRID", "CIRCLE", "CIRCLETOPLIST").
package model
