package model

import (
	"fmt"
	"math"
	"strings"
)

// =============================================================================
// Layout Modes
// =============================================================================

// Mode selects the spatial layout strategy.
type Mode string

const (
	ModeGrid               Mode = "grid"
	ModeCirclePackWeighted Mode = "circle"
	ModeCirclePackTopList  Mode = "circle-toplist"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeGrid, ModeCirclePackWeighted, ModeCirclePackTopList}

// hostModeNames maps the upper-case names stored by the original host
// configuration onto modes.
var hostModeNames = map[string]Mode{
	"GRID":          ModeGrid,
	"CIRCLE":        ModeCirclePackWeighted,
	"CIRCLETOPLIST": ModeCirclePackTopList,
}

// ParseMode resolves a mode name. Both the canonical lower-case names and
// the host's upper-case names are accepted.
func ParseMode(s string) (Mode, error) {
	if m, ok := hostModeNames[strings.TrimSpace(s)]; ok {
		return m, nil
	}
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m, nil
	}
	return "", fmt.Errorf("unknown layout mode %q (must be one of: grid, circle, circle-toplist)", s)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeGrid, ModeCirclePackWeighted, ModeCirclePackTopList:
		return true
	}
	return false
}

// IsCirclePack reports whether m is one of the packing modes.
func (m Mode) IsCirclePack() bool {
	return m == ModeCirclePackWeighted || m == ModeCirclePackTopList
}

// Next returns the mode after m in [Modes], wrapping around.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return Modes[0]
}

// =============================================================================
// Settings
// =============================================================================

const (
	DefaultMaxColumns          = 4
	DefaultResolutionThreshold = 200.0
	DefaultMode                = ModeCirclePackTopList
	DefaultTopListWeight       = 1.0
)

// Settings is the immutable per-update configuration.
type Settings struct {
	MaxColumns          int     `json:"max_columns" toml:"max_columns" yaml:"max_columns"`
	ResolutionThreshold float64 `json:"resolution_threshold" toml:"resolution_threshold" yaml:"resolution_threshold"`
	Mode                Mode    `json:"layout_mode" toml:"layout_mode" yaml:"layout_mode"`
	TopListWeightFactor float64 `json:"top_list_weight" toml:"top_list_weight" yaml:"top_list_weight"`
}

// DefaultSettings returns the settings used when the host supplies none.
func DefaultSettings() Settings {
	return Settings{
		MaxColumns:          DefaultMaxColumns,
		ResolutionThreshold: DefaultResolutionThreshold,
		Mode:                DefaultMode,
		TopListWeightFactor: DefaultTopListWeight,
	}
}

// Normalize clamps out-of-range values to the nearest valid one rather
// than rejecting them: MaxColumns to at least 1, the threshold and the
// top-list factor to at least 0, and an unknown mode to [DefaultMode].
func (s Settings) Normalize() Settings {
	if s.MaxColumns < 1 {
		s.MaxColumns = 1
	}
	if math.IsNaN(s.ResolutionThreshold) || s.ResolutionThreshold < 0 {
		s.ResolutionThreshold = 0
	}
	if math.IsNaN(s.TopListWeightFactor) || s.TopListWeightFactor < 0 {
		s.TopListWeightFactor = 0
	}
	if !s.Mode.Valid() {
		if m, err := ParseMode(string(s.Mode)); err == nil {
			s.Mode = m
		} else {
			s.Mode = DefaultMode
		}
	}
	return s
}
