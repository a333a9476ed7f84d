package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/pipeline"
	"github.com/matzehuels/imagewall/pkg/selection"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command, an interactive selection
// transport for one visual.
func (c *CLI) browseCommand() *cobra.Command {
	flags := newSettingsFlags()

	cmd := &cobra.Command{
		Use:   "browse [points.json]",
		Short: "Browse a dataset and toggle the selection interactively",
		Long: `Browse a dataset and toggle the selection interactively.

Keys:
  ↑/↓/←/→  move        space  toggle the point under the cursor
  c        clear       m      cycle layout mode
  r        relayout    q      quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, frame, err := c.newSession(ctx, cmd, args[0], flags)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(newBrowseModel(ctx, s, frame), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(browseModel); ok && m.err != nil {
				return m.err
			}
			printSuccess("Selection: %s", s.store.Snapshot())
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

// =============================================================================
// Messages
// =============================================================================

// toggleResolvedMsg carries the selection reported back for a toggle intent.
type toggleResolvedMsg struct {
	intent selection.ToggleIntent
	sel    selection.Selection
	err    error
}

// selectionClearedMsg carries the selection after a clear.
type selectionClearedMsg struct {
	sel selection.Selection
	err error
}

// =============================================================================
// browseModel
// =============================================================================

// browseModel is the bubbletea model of the browse command.
type browseModel struct {
	ctx     context.Context
	session *session
	frame   *pipeline.Frame
	cursor  int
	offset  int
	height  int
	status  string
	err     error
}

func newBrowseModel(ctx context.Context, s *session, frame *pipeline.Frame) browseModel {
	return browseModel{ctx: ctx, session: s, frame: frame, height: 15}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case toggleResolvedMsg:
		if msg.err != nil {
			m.frame = m.session.visual.Abandon(m.ctx, msg.intent, m.session.store.Snapshot())
			m.status = "toggle failed: " + msg.err.Error()
			return m, nil
		}
		frame, ok := m.session.visual.Resolve(m.ctx, msg.intent, msg.sel)
		m.frame = frame
		if !ok {
			m.status = "discarded stale toggle for " + msg.intent.Identity.Key
		} else {
			m.status = "selection " + msg.sel.String()
		}

	case selectionClearedMsg:
		if msg.err != nil {
			m.status = "clear failed: " + msg.err.Error()
			return m, nil
		}
		m.frame = m.session.visual.Notify(m.ctx, msg.sel)
		m.status = "selection cleared"

	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.frame.Points)
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-m.rowStep())
	case "down", "j":
		m.moveCursor(m.rowStep())
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case " ":
		if n == 0 {
			return m, nil
		}
		return m.toggle(m.frame.Points[m.cursor].Identity())
	case "c":
		store := m.session.store
		ctx := m.ctx
		return m, func() tea.Msg {
			sel, err := store.Clear(ctx)
			return selectionClearedMsg{sel: sel, err: err}
		}
	case "m":
		m.session.settings.Mode = m.session.settings.Mode.Next()
		return m.relayout()
	case "r":
		return m.relayout()
	}
	return m, nil
}

// toggle paints the optimistic frame right away and commits the intent to
// the store asynchronously.
func (m browseModel) toggle(id model.Identity) (tea.Model, tea.Cmd) {
	intent, frame, err := m.session.visual.RequestToggle(m.ctx, id)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.frame = frame
	m.status = "toggling " + id.Key

	store := m.session.store
	ctx := m.ctx
	return m, func() tea.Msg {
		sel, err := store.Toggle(ctx, intent)
		return toggleResolvedMsg{intent: intent, sel: sel, err: err}
	}
}

// relayout runs a full update. Any toggle still in flight becomes stale.
func (m browseModel) relayout() (tea.Model, tea.Cmd) {
	frame, err := m.session.update(m.ctx)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.frame = frame
	m.moveCursor(0)
	m.status = "layout " + string(frame.Mode)
	return m, nil
}

// rowStep is the cursor step of the vertical keys: one grid row, or one
// point in the circle layouts.
func (m browseModel) rowStep() int {
	if m.frame.Mode == model.ModeGrid && m.frame.Columns > 0 {
		return m.frame.Columns
	}
	return 1
}

func (m *browseModel) moveCursor(delta int) {
	n := len(m.frame.Points)
	if n == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("imagewall"))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("cycle %d", m.frame.Cycle)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓/←/→ move  space toggle  c clear  m mode  q quit"))
	b.WriteString("\n\n")

	if m.frame.Hidden {
		b.WriteString(listDimStyle.Render("  (no points)"))
		b.WriteString("\n")
	}

	end := min(m.offset+m.height, len(m.frame.Points))
	for i := m.offset; i < end; i++ {
		p := m.frame.Points[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		mark := "○"
		if m.session.store.Snapshot().Contains(p.Identity()) {
			mark = StyleSuccess.Render("●")
		}

		line := fmt.Sprintf("%s%s %-24s %6.1fpx  %.1f", cursor, mark, p.Identity().Key, p.RenderedSize(), p.Emphasis)
		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case p.Emphasis < selection.Full:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statsLine(len(m.frame.Points), len(m.frame.Selection), m.frame.Mode, m.frame.CacheHit))
	if m.status != "" {
		b.WriteString("\n  ")
		b.WriteString(listDimStyle.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}
