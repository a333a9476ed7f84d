// Package io reads and writes imagewall datasets as JSON.
//
// # Overview
//
// A dataset is the tabular input of one visual: one row per data point,
// carrying an identity, an optional weight and up to two image references.
// This package is the file-based stand-in for the host's data extraction.
//
// # JSON Format
//
// Either an object with a "points" array or a bare array:
//
//	{
//	  "points": [
//	    {"id": "amsterdam", "value": 872, "image": "thumbs/ams.jpg", "image_hq": "full/ams.jpg"},
//	    {"id": "berlin", "value": 3645, "image": "thumbs/ber.jpg"},
//	    {"id": "cairo", "image_hq": "full/cai.jpg"}
//	  ]
//	}
//
// # Row Fields
//
//   - id: Identity key used for selection matching. Rows may share an id;
//     an empty id never matches any selection.
//   - value: Optional weight. Missing or null means unweighted.
//   - image, image_hq: Low- and high-resolution image references. When only
//     one is present it is used for both. Rows with neither are dropped.
//
// # Import
//
// Use [ImportJSON] to read a dataset from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	ds, err := io.ImportJSON("points.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger.Info("loaded dataset", "points", len(ds.Points), "dropped", ds.Dropped)
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the object form. Export followed by
// import yields the same points.
package io
