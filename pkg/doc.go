// Package pkg provides the core libraries for imagewall.
//
// # Overview
//
// Imagewall lays out a dataset of image-bearing points as a grid or as a
// circle pack, picks a low- or high-resolution image per point from its
// rendered size and dims everything outside the current selection. The pkg
// directory is organized into three areas:
//
//  1. Domain logic: [model], [layout/grid], [layout/pack], [resolution],
//     [selection], [reconcile] and [hover]
//  2. Orchestration: [pipeline] runs one update cycle and owns the session
//     state of a visual
//  3. Adapters: [io] (datasets), [config] (settings files),
//     [render/sink] (SVG, PNG, JSON) and [cache]
//
// # Architecture
//
// The data flow of one update:
//
//	points.json ──[io]──▶ []DataPoint
//	                          ↓
//	             [layout/grid] or [layout/pack]
//	                          ↓
//	                    [resolution]
//	                          ↓
//	             [selection] emphasis ◀── selection snapshot
//	                          ↓
//	                [reconcile] against the previous frame
//	                          ↓
//	                  [render/sink] SVG/PNG/JSON
//
// # Quick Start
//
//	ds, _ := io.ImportJSON("points.json")
//	v := pipeline.NewVisual(nil, selection.Highlighter{}, nil)
//	frame, _ := v.Update(ctx, pipeline.Input{
//	    Points:   ds.Points,
//	    Viewport: model.Viewport{Width: 800, Height: 600},
//	    Settings: model.DefaultSettings(),
//	})
//	svg, _ := sink.RenderSVG(frame)
//
// # Cross-cutting Packages
//
// [errors] - Structured errors with codes, mapped onto exit messages and HTTP
// statuses by the front ends.
//
// [observability] - Hook registry for layout, selection, cache and HTTP
// events. No-op by default.
//
// [buildinfo] - Version information stamped in at link time.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Layout engines only
//	go test -run Property ./pkg/...      # Property tests only
package pkg
