// Package pack computes weighted circle-packing layouts.
//
// Every point becomes a leaf circle whose area is proportional to its
// weight. Leaves are packed tightly around each other, an enclosing
// container circle is fitted around them, and the whole hierarchy is
// scaled to fill the smaller viewport dimension and centred.
//
// # Weighting
//
// Weights are derived from points before packing, under one of two
// policies (see [Weights]):
//
//   - Proportional: w = v - min + 0.1*|max| + 1, null values weigh 1
//   - Top-list: rank 0 weighs n*n*factor*0.1, rank i weighs n-i
//
// # Container Node
//
// The packing introduces a container node that has no data point. It is
// returned explicitly tagged as [KindContainer] in [Result.Nodes] so
// downstream stages can filter it with [Leaves] instead of probing for
// missing fields.
//
// # Determinism
//
// The enclosing-circle search shuffles its input. A fixed-seed generator
// is used so the same input always yields the same layout.
package pack
