// Package pipeline runs the per-update computation for imagewall:
// layout, resolution choice, emphasis and frame reconciliation.
//
// This package is shared by every front end (the render command, the
// terminal browser and the HTTP server) so they all produce the same
// frames for the same inputs.
//
// # Architecture
//
// One update cycle runs these stages in order:
//
//  1. Layout: grid or circle pack, chosen by the layout mode
//  2. Resolution: pick the low- or high-resolution image per point
//  3. Emphasis: derive per-point emphasis from the active selection
//  4. Sync: reconcile against the previous frame
//
// Stages 1 and 2 are memoized by a [Runner]; stages 3 and 4 are owned by a
// [Visual], which also tracks pending toggle intents.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil, logger)
//	v := pipeline.NewVisual(runner, selection.Highlighter{}, logger)
//	frame, err := v.Update(ctx, pipeline.Input{
//	    Points:    points,
//	    Viewport:  model.Viewport{Width: 800, Height: 600},
//	    Settings:  model.DefaultSettings(),
//	    Selection: store.Snapshot(),
//	})
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/imagewall/pkg/cache"
	"github.com/matzehuels/imagewall/pkg/errors"
	"github.com/matzehuels/imagewall/pkg/model"
)

// =============================================================================
// Default Values - Front-end Flag Defaults
// =============================================================================

const (
	// DefaultWidth is the viewport width the front ends start from.
	DefaultWidth = 800.0

	// DefaultHeight is the viewport height the front ends start from.
	DefaultHeight = 600.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains the configuration of one layout computation.
type Options struct {
	Settings model.Settings `json:"settings"`
	Viewport model.Viewport `json:"viewport"`

	// Formats lists the artifacts to render. Only the render front ends
	// read it.
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMode resolves a layout mode name, accepting the host's
// upper-case names too.
func ValidateMode(m model.Mode) (model.Mode, error) {
	parsed, err := model.ParseMode(string(m))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidMode, err, "invalid layout mode")
	}
	return parsed, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults fills in zero settings and a logger. The viewport is
// the host's and is never defaulted: an empty one lays out to zero size.
// An explicitly unknown mode is left alone so ValidateForLayout can
// report it.
func (o *Options) SetLayoutDefaults() {
	if o.Settings == (model.Settings{}) {
		o.Settings = model.DefaultSettings()
	}
	if o.Settings.Mode == "" {
		o.Settings.Mode = model.DefaultMode
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults, rejects an unknown mode and clamps the
// remaining settings into range.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	mode, err := ValidateMode(o.Settings.Mode)
	if err != nil {
		return err
	}
	o.Settings.Mode = mode
	o.Settings = o.Settings.Normalize()
	o.Viewport = o.Viewport.Normalize()
	return nil
}

// ValidateForRender validates layout options and the requested formats.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Mode:          string(o.Settings.Mode),
		Width:         o.Viewport.Width,
		Height:        o.Viewport.Height,
		MaxColumns:    o.Settings.MaxColumns,
		TopListWeight: o.Settings.TopListWeightFactor,
		Threshold:     o.Settings.ResolutionThreshold,
	}
}

func (o Options) String() string {
	return fmt.Sprintf("%s %gx%g", o.Settings.Mode, o.Viewport.Width, o.Viewport.Height)
}
