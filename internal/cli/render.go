package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/imagewall/pkg/observability"
	"github.com/matzehuels/imagewall/pkg/pipeline"
	"github.com/matzehuels/imagewall/pkg/render/sink"
)

// renderOpts holds the render-only flags.
type renderOpts struct {
	output      string  // output file (single format) or base path
	formats     []string
	title       string  // SVG title
	static      bool    // omit the hover script
	scale       float64 // PNG scale factor
	includeDiff bool    // add the enter/update/exit diff to JSON output
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	flags := newSettingsFlags()
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render [points.json]",
		Short: "Render a dataset to SVG, PNG or JSON",
		Long: `Render a dataset to SVG, PNG or JSON.

The dataset is laid out once with the given settings and selection, then every
requested format is rendered from the same frame. Multiple formats are
rendered concurrently and written next to each other:

  imagewall render points.json -f svg,png -o out/wall   # out/wall.svg, out/wall.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd, args[0], flags, opts)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG document title")
	cmd.Flags().BoolVar(&opts.static, "static", false, "omit hover interaction from SVG output")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.includeDiff, "diff", false, "include the frame diff in JSON output")

	return cmd
}

// runRender lays out the dataset and writes one file per format.
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, flags *settingsFlags, opts renderOpts) error {
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	s, frame, err := c.newSession(ctx, cmd, input, flags)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	artifacts, err := c.renderFormats(ctx, frame, opts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(artifacts, opts.formats, basePath(opts.output, input), opts.output)
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %d format(s)", len(paths)))
	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(frame.Points), s.store.Snapshot().Len(), frame.Mode, frame.CacheHit)
	return nil
}

// renderFormats renders every format of frame concurrently.
func (c *CLI) renderFormats(ctx context.Context, frame *pipeline.Frame, opts renderOpts) (map[string][]byte, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.formats)
	start := time.Now()

	results := make([][]byte, len(opts.formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := c.renderFrame(frame, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			c.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
			results[i] = data
			return nil
		})
	}
	err := g.Wait()
	observability.Pipeline().OnRenderComplete(ctx, opts.formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.formats))
	for i, format := range opts.formats {
		artifacts[format] = results[i]
	}
	return artifacts, nil
}

// renderFrame dispatches to the sink for format.
func (c *CLI) renderFrame(frame *pipeline.Frame, format string, opts renderOpts) ([]byte, error) {
	switch format {
	case pipeline.FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithLogger(c.Logger)}
		if opts.title != "" {
			svgOpts = append(svgOpts, sink.WithTitle(opts.title))
		}
		if opts.static {
			svgOpts = append(svgOpts, sink.WithoutInteraction())
		}
		return sink.RenderSVG(frame, svgOpts...)
	case pipeline.FormatPNG:
		return sink.RenderPNG(frame, sink.WithScale(opts.scale), sink.WithPNGLogger(c.Logger))
	case pipeline.FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONIndent()}
		if opts.includeDiff {
			jsonOpts = append(jsonOpts, sink.WithJSONDiff())
		}
		return sink.RenderJSON(frame, jsonOpts...)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .json), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input)) + ".wall"
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes artifacts in format order. A single format with an
// explicit output path is written to that path unchanged.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
