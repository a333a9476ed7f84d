package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/imagewall/pkg/errors"
	"github.com/matzehuels/imagewall/pkg/model"
)

type dataset struct {
	Points []row `json:"points"`
}

type row struct {
	ID      string   `json:"id"`
	Value   *float64 `json:"value,omitempty"`
	Image   string   `json:"image,omitempty"`
	ImageHQ string   `json:"image_hq,omitempty"`
}

// Dataset is a decoded dataset.
type Dataset struct {
	// Points holds the admitted rows in input order.
	Points []model.DataPoint

	// Rows is the number of rows read, admitted or not.
	Rows int

	// Dropped counts rows without any image reference.
	Dropped int
}

// ReadJSON decodes a dataset from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or neither an object nor an array
//   - An image reference uses an unsupported scheme or contains control
//     characters
//
// Errors carry the index of the offending row. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read dataset")
	}

	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Points: make([]model.DataPoint, 0, len(rows)), Rows: len(rows)}
	for i, rw := range rows {
		p := model.DataPoint{
			Value:        rw.Value,
			ImageLowRes:  rw.Image,
			ImageHighRes: rw.ImageHQ,
			Identity:     model.ID(rw.ID),
		}
		if !p.HasImage() {
			ds.Dropped++
			continue
		}
		p = p.WithImageFallback()
		for _, ref := range []string{p.ImageLowRes, p.ImageHighRes} {
			if err := errors.ValidateImageRef(ref); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidImageRef, err, "row %d (%q)", i, rw.ID)
			}
		}
		ds.Points = append(ds.Points, p)
	}
	return ds, nil
}

func decodeRows(data []byte) ([]row, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset is empty")
	}

	switch data[0] {
	case '[':
		var rows []row
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode")
		}
		return rows, nil
	case '{':
		var ds dataset
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode")
		}
		return ds.Points, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset must be a JSON object or array")
	}
}

// ImportJSON reads a JSON file at path and returns the decoded dataset.
//
// A missing file is reported with [errors.ErrCodeFileNotFound]; decoding
// failures carry the same codes as [ReadJSON].
func ImportJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
