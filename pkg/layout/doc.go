// Package layout groups the spatial layout engines.
//
// Two strategies are provided, selected by [model.Mode]:
//
//   - [grid]: rectangular tiling with an automatic column-count search
//   - [pack]: weighted circle packing inside a bounding circle
//
// Both engines are pure functions over immutable inputs and return
// [model.PositionedPoint] values in input order. Neither assigns images or
// emphasis; those are later stages of the pipeline.
package layout
