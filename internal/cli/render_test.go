package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/imagewall/pkg/errors"
)

const testPoints = `[
  {"id": "a", "value": 5, "image": "a.png", "image_hq": "a-hq.png"},
  {"id": "b", "value": 3, "image": "b.png"},
  {"id": "c", "value": 1, "image": "c.png"},
  {"id": "d"}
]`

// writeDataset writes testPoints to a temp dir and isolates the user
// config directory.
func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	path := filepath.Join(dir, "points.json")
	if err := os.WriteFile(path, []byte(testPoints), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,json", []string{"svg", "png", "json"}},
		{"spaces and empty parts", " svg, ,json ", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/points.json", "data/points.wall"},
		{"out/wall.svg", "points.json", "out/wall"},
		{"out/wall.png", "points.json", "out/wall"},
		{"out/wall", "points.json", "out/wall"},
		{"out/wall.v2", "points.json", "out/wall.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRenderCommandWritesEveryFormat(t *testing.T) {
	input := writeDataset(t)
	base := filepath.Join(filepath.Dir(input), "out", "wall")

	err := execute(t, "render", input, "-f", "svg,png,json", "-o", base, "-s", "a", "--mode", "grid")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), `data-key="a"`) {
		t.Error("SVG misses point a")
	}
	if strings.Contains(string(svg), `data-key="d"`) {
		t.Error("imageless point d should have been dropped")
	}

	png, err := os.ReadFile(base + ".png")
	if err != nil || !strings.HasPrefix(string(png), "\x89PNG") {
		t.Errorf("PNG output invalid: %v", err)
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	var frame struct {
		Mode      string   `json:"mode"`
		Selection []string `json:"selection"`
		Points    []struct {
			Key      string  `json:"key"`
			Emphasis float64 `json:"emphasis"`
		} `json:"points"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.Mode != "grid" || !slices.Equal(frame.Selection, []string{"a"}) || len(frame.Points) != 3 {
		t.Errorf("frame = %+v", frame)
	}
	for _, p := range frame.Points {
		want := 0.5
		if p.Key == "a" {
			want = 1
		}
		if p.Emphasis != want {
			t.Errorf("%s emphasis = %v, want %v", p.Key, p.Emphasis, want)
		}
	}
}

func TestRenderCommandSingleOutputPath(t *testing.T) {
	input := writeDataset(t)
	out := filepath.Join(filepath.Dir(input), "frame.svg")

	if err := execute(t, "render", input, "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeDataset(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"render", input, "-f", "pdf"}, errors.ErrCodeInvalidFormat},
		{"bad mode", []string{"render", input, "--mode", "spiral"}, errors.ErrCodeInvalidMode},
		{"missing file", []string{"render", input + ".missing"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSettingsFlagsOverrideConfig(t *testing.T) {
	input := writeDataset(t)
	cfg := filepath.Join(filepath.Dir(input), "settings.yaml")
	if err := os.WriteFile(cfg, []byte("max_columns: 1\nlayout_mode: GRID\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(filepath.Dir(input), "frame.json")

	if err := execute(t, "render", input, "--config", cfg, "--max-columns", "3", "-f", "json", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var frame struct {
		Mode    string `json:"mode"`
		Columns int    `json:"columns"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.Mode != "grid" {
		t.Errorf("mode = %q, want grid from the config file", frame.Mode)
	}
	if frame.Columns != 3 {
		t.Errorf("columns = %d, want 3 from the flag", frame.Columns)
	}
}
