// Package config loads visual settings from TOML or YAML files.
//
// A settings file carries the four host-configurable options:
//
//	max_columns          = 4
//	resolution_threshold = 200
//	layout_mode          = "circle-toplist"
//	top_list_weight      = 1
//
// Missing fields keep their defaults. The format is chosen by extension:
// .toml, or .yaml / .yml.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/imagewall/pkg/errors"
	"github.com/matzehuels/imagewall/pkg/model"
)

// Format is a settings file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported settings file %q (want .toml, .yaml or .yml)", filepath.Base(path))
	}
}

// Load reads settings from path.
func Load(path string) (model.Settings, error) {
	format, err := FormatFor(path)
	if err != nil {
		return model.Settings{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.Settings{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s", path)
	}
	if err != nil {
		return model.Settings{}, errors.Wrap(errors.ErrCodeInvalidSettings, err, "read %s", path)
	}
	return Parse(data, format)
}

// Parse decodes settings over the defaults and validates the result.
// Out-of-range numbers are clamped; an unknown layout mode is an error.
func Parse(data []byte, format Format) (model.Settings, error) {
	s := model.DefaultSettings()

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &s); err != nil {
			return model.Settings{}, errors.Wrap(errors.ErrCodeInvalidSettings, err, "decode toml")
		}
	case FormatYAML:
		if len(bytes.TrimSpace(data)) > 0 {
			if err := yaml.Unmarshal(data, &s); err != nil {
				return model.Settings{}, errors.Wrap(errors.ErrCodeInvalidSettings, err, "decode yaml")
			}
		}
	default:
		return model.Settings{}, errors.New(errors.ErrCodeUnsupported, "unsupported settings format %q", format)
	}

	mode, err := model.ParseMode(string(s.Mode))
	if err != nil {
		return model.Settings{}, errors.Wrap(errors.ErrCodeInvalidMode, err, "layout_mode")
	}
	s.Mode = mode
	return s.Normalize(), nil
}

// Overrides holds values set explicitly on the command line. nil fields
// leave the loaded value alone.
type Overrides struct {
	MaxColumns          *int
	ResolutionThreshold *float64
	Mode                *model.Mode
	TopListWeightFactor *float64
}

// Apply returns s with the overrides applied.
func (o Overrides) Apply(s model.Settings) (model.Settings, error) {
	if o.MaxColumns != nil {
		s.MaxColumns = *o.MaxColumns
	}
	if o.ResolutionThreshold != nil {
		s.ResolutionThreshold = *o.ResolutionThreshold
	}
	if o.TopListWeightFactor != nil {
		s.TopListWeightFactor = *o.TopListWeightFactor
	}
	if o.Mode != nil {
		mode, err := model.ParseMode(string(*o.Mode))
		if err != nil {
			return model.Settings{}, errors.Wrap(errors.ErrCodeInvalidMode, err, "layout mode")
		}
		s.Mode = mode
	}
	return s.Normalize(), nil
}
