package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spf13/cobra"

	"github.com/vadim-stepanov/grid/pkg/grid"
	"github.com/vadim-stepanov/grid/pkg/layout"
	"github.com/vadim-stepanov/grid/pkg/pipeline"
	"github.com/vadim-stepanov/grid/pkg/render/sink"
	"github.com/vadim-stepanov/grid/pkg/spec"
)

// previewCommand creates the preview command for live terminal rendering.
func (c *CLI) previewCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [spec.toml]",
		Short: "Preview a layout live in the terminal",
		Long: `Preview a layout live in the terminal.

The preview command arranges the spec once and re-resolves it against
the terminal size on every resize, so you can watch how the layout
responds to different bounding sizes.

Keys: m toggles fill/scroll, f toggles rows/columns flow, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SpecPath = args[0]
			opts.Logger = c.Logger
			return c.runPreview(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Flow, "flow", "", "flow override: rows or columns")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "content mode override: fill or scroll")
	cmd.Flags().StringVar(&opts.SpanPolicy, "span-policy", "", "oversized span policy override: drop, clamp, or error")

	return cmd
}

func (c *CLI) runPreview(opts pipeline.Options) error {
	s, err := pipeline.ParseSpec(opts)
	if err != nil {
		return err
	}

	model, err := newPreviewModel(s, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run preview: %w", err)
	}
	if m, ok := final.(previewModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

// =============================================================================
// PreviewModel - Live layout preview
// =============================================================================

// previewModel is the bubbletea model for the live preview. The
// arrangement is computed once per flow; resolution runs on every
// resize against the terminal's character grid.
type previewModel struct {
	spec *spec.Spec
	opts pipeline.Options

	arr  layout.Arrangement
	body string
	cols int
	rows int
	err  error
}

func newPreviewModel(s *spec.Spec, opts pipeline.Options) (previewModel, error) {
	arr, err := pipeline.ArrangeSpec(context.Background(), s, opts)
	if err != nil {
		return previewModel{}, err
	}
	return previewModel{spec: s, opts: opts, arr: arr}, nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "m":
			if m.spec.Mode == grid.ContentModeFill {
				m.spec.Mode = grid.ContentModeScroll
			} else {
				m.spec.Mode = grid.ContentModeFill
			}
			m.resolve()
		case "f":
			if m.spec.Flow == grid.FlowRows {
				m.spec.Flow = grid.FlowColumns
			} else {
				m.spec.Flow = grid.FlowRows
			}
			m.rearrange()
		}
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height
		m.resolve()
	}
	if m.err != nil {
		return m, tea.Quit
	}
	return m, nil
}

// rearrange reruns placement, then resolution. Needed when the flow
// changes because placement order depends on it.
func (m *previewModel) rearrange() {
	arr, err := pipeline.ArrangeSpec(context.Background(), m.spec, m.opts)
	if err != nil {
		m.err = err
		return
	}
	m.arr = arr
	m.resolve()
}

// resolve reruns the resolution pass against the current terminal size.
// Terminal cells are roughly twice as tall as wide, so the bounding
// height doubles to keep proportions.
func (m *previewModel) resolve() {
	if m.cols <= 0 || m.rows <= 0 {
		return
	}

	s := *m.spec
	s.Bounding = grid.Size{
		Width:  float64(m.cols),
		Height: float64((m.rows - previewChromeRows) * 2),
	}

	l, err := pipeline.ResolveArrangement(context.Background(), m.arr, &s, m.opts)
	if err != nil {
		m.err = err
		return
	}
	m.body = string(sink.RenderText(l, sink.WithTextWidth(m.cols)))
}

// previewChromeRows is the number of terminal rows the header takes.
const previewChromeRows = 3

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %s · %dx%d",
		m.spec.Flow, m.spec.Mode, m.cols, m.rows)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("m mode  f flow  q quit"))
	b.WriteString("\n\n")

	if m.body == "" {
		b.WriteString(StyleDim.Render("waiting for terminal size..."))
	} else {
		b.WriteString(m.body)
	}

	return b.String()
}
