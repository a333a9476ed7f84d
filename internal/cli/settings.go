package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/imagewall/pkg/config"
	wallio "github.com/matzehuels/imagewall/pkg/io"
	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/pipeline"
	"github.com/matzehuels/imagewall/pkg/selection"
)

// settingsFlags are the flags shared by every command that lays out a
// dataset. Flags given explicitly override the settings file.
type settingsFlags struct {
	config     string
	maxColumns int
	threshold  float64
	mode       string
	topList    float64
	width      float64
	height     float64
	selected   []string
	noCache    bool
}

func newSettingsFlags() *settingsFlags {
	return &settingsFlags{
		maxColumns: model.DefaultMaxColumns,
		threshold:  model.DefaultResolutionThreshold,
		mode:       string(model.DefaultMode),
		topList:    model.DefaultTopListWeight,
		width:      pipeline.DefaultWidth,
		height:     pipeline.DefaultHeight,
	}
}

func (f *settingsFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.config, "config", "", "settings file (.toml, .yaml)")
	flags.IntVar(&f.maxColumns, "max-columns", f.maxColumns, "maximum grid columns")
	flags.Float64Var(&f.threshold, "threshold", f.threshold, "rendered size in px above which the high-resolution image is used")
	flags.StringVarP(&f.mode, "mode", "m", f.mode, "layout mode: grid, circle, circle-toplist")
	flags.Float64Var(&f.topList, "top-list-weight", f.topList, "weight step between ranks (circle-toplist)")
	flags.Float64Var(&f.width, "width", f.width, "viewport width")
	flags.Float64Var(&f.height, "height", f.height, "viewport height")
	flags.StringSliceVarP(&f.selected, "select", "s", nil, "identity keys to select (repeatable)")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable layout caching")
}

// settings loads the settings file, if any, and applies explicit flags on
// top of it.
func (f *settingsFlags) settings(cmd *cobra.Command) (model.Settings, error) {
	s := model.DefaultSettings()

	path := f.config
	if path == "" {
		path, _ = defaultConfigPath()
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return model.Settings{}, fmt.Errorf("load settings %s: %w", path, err)
		}
		s = loaded
	}

	var o config.Overrides
	changed := cmd.Flags().Changed
	if changed("max-columns") {
		o.MaxColumns = &f.maxColumns
	}
	if changed("threshold") {
		o.ResolutionThreshold = &f.threshold
	}
	if changed("top-list-weight") {
		o.TopListWeightFactor = &f.topList
	}
	if changed("mode") {
		mode := model.Mode(f.mode)
		o.Mode = &mode
	}
	return o.Apply(s)
}

func (f *settingsFlags) viewport() model.Viewport {
	return model.Viewport{Width: f.width, Height: f.height}.Normalize()
}

func (f *settingsFlags) identities() []model.Identity {
	ids := make([]model.Identity, 0, len(f.selected))
	for _, key := range f.selected {
		ids = append(ids, model.ID(key))
	}
	return ids
}

// loadDataset reads the points file and reports dropped rows.
func (c *CLI) loadDataset(path string) (*wallio.Dataset, error) {
	ds, err := wallio.ImportJSON(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	if ds.Dropped > 0 {
		c.Logger.Warn("dropped rows without an image", "dropped", ds.Dropped, "rows", ds.Rows)
	}
	c.Logger.Debug("loaded dataset", "path", path, "points", len(ds.Points))
	return ds, nil
}

// session is one visual wired to its selection store.
type session struct {
	visual   *pipeline.Visual
	store    *selection.Store
	points   []model.DataPoint
	viewport model.Viewport
	settings model.Settings
}

// newSession loads input and runs the first update.
func (c *CLI) newSession(ctx context.Context, cmd *cobra.Command, input string, f *settingsFlags) (*session, *pipeline.Frame, error) {
	settings, err := f.settings(cmd)
	if err != nil {
		return nil, nil, err
	}
	ds, err := c.loadDataset(input)
	if err != nil {
		return nil, nil, err
	}

	s := &session{
		visual:   pipeline.NewVisual(c.newRunner(f.noCache), selection.Highlighter{}, c.Logger),
		store:    selection.NewStore(f.identities()...),
		points:   ds.Points,
		viewport: f.viewport(),
		settings: settings,
	}
	frame, err := s.update(ctx)
	if err != nil {
		return nil, nil, err
	}
	return s, frame, nil
}

func (s *session) update(ctx context.Context) (*pipeline.Frame, error) {
	return s.visual.Update(ctx, pipeline.Input{
		Points:    s.points,
		Viewport:  s.viewport,
		Settings:  s.settings,
		Selection: s.store.Snapshot(),
	})
}
