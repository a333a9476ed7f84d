package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/pipeline"
	"github.com/matzehuels/imagewall/pkg/resolution"
)

// layoutCommand creates the layout command for inspecting computed layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		limit  int
	)
	flags := newSettingsFlags()

	cmd := &cobra.Command{
		Use:   "layout [points.json]",
		Short: "Compute and print the layout of a dataset",
		Long: `Compute and print the layout of a dataset.

Prints one row per positioned point with its geometry, emphasis and the image
resolution picked for its rendered size. With -o the layout is also written as
JSON so external renderers can reuse it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd, args[0], flags, output, limit)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout as JSON to this file")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows to print (0 prints all)")

	return cmd
}

// runLayout computes the layout and prints it.
func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, input string, flags *settingsFlags, output string, limit int) error {
	s, frame, err := c.newSession(ctx, cmd, input, flags)
	if err != nil {
		return err
	}

	fmt.Println(layoutTable(frame, s.settings.ResolutionThreshold, limit))

	if output != "" {
		data, err := pipeline.MarshalLayout(s.visual.Layout())
		if err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printFile(output)
	}

	printStats(len(frame.Points), s.store.Snapshot().Len(), frame.Mode, frame.CacheHit)
	if frame.Mode == model.ModeGrid {
		printKeyValue("Columns", strconv.Itoa(frame.Columns))
		printKeyValue("Height", fmt.Sprintf("%.0fpx", frame.TotalHeight))
	}
	printNewline()
	printNextStep("Render", "imagewall render "+filepath.Base(input)+" -m "+string(frame.Mode))
	return nil
}

// layoutTable renders up to limit points of frame as a table.
func layoutTable(frame *pipeline.Frame, threshold float64, limit int) string {
	points := frame.Points
	if limit > 0 && len(points) > limit {
		points = points[:limit]
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		b := p.Bounds()
		res := "low"
		if resolution.IsHighRes(p.RenderedSize(), threshold) {
			res = "high"
		}
		rows = append(rows, []string{
			strconv.Itoa(p.Index),
			p.Identity().Key,
			p.Shape.String(),
			fmt.Sprintf("%.1f,%.1f", b.X, b.Y),
			fmt.Sprintf("%.1f", p.RenderedSize()),
			res,
			fmt.Sprintf("%.1f", p.Emphasis),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Key", "Shape", "Origin", "Size", "Image", "Emphasis").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < len(points) && points[row].Emphasis < 1 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if col == 1 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		})

	var b strings.Builder
	b.WriteString(t.Render())
	if hidden := len(frame.Points) - len(points); hidden > 0 {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("  … %d more", hidden)))
	}
	return b.String()
}
