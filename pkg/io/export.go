package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/imagewall/pkg/model"
)

// WriteJSON encodes points as a dataset object and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(points []model.DataPoint, w io.Writer) error {
	out := dataset{Points: make([]row, len(points))}
	for i, p := range points {
		out.Points[i] = row{
			ID:      p.Identity.Key,
			Value:   p.Value,
			Image:   p.ImageLowRes,
			ImageHQ: p.ImageHighRes,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes points to a JSON file at path.
func ExportJSON(points []model.DataPoint, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteJSON(points, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
