package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browse opens the interactive result browser.
func browse(ctx context.Context, r *derive.Result) error {
	if _, err := tea.NewProgram(NewResultModel(r), tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(context.Cause(ctx), context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}

// =============================================================================
// ResultModel - Interactive result browser
// =============================================================================

// ResultRow is one distinct string of a result.
type ResultRow struct {
	String string
	Count  uint64   // derivations reaching the string
	Paths  []string // formatted derivations, if recorded
}

// ResultModel is the bubbletea model for browsing a generation result.
type ResultModel struct {
	Shape    derive.Shape
	Depth    int
	Rows     []ResultRow
	Cursor   int
	Height   int
	Offset   int
	Expanded bool // show the derivations of the current row
}

// NewResultModel creates a browser model with one row per distinct string,
// in ascending order.
func NewResultModel(r *derive.Result) ResultModel {
	return ResultModel{
		Shape:  r.Shape,
		Depth:  r.Depth,
		Rows:   resultRows(r),
		Height: 15,
	}
}

func resultRows(r *derive.Result) []ResultRow {
	strs := r.Strings()
	rows := make([]ResultRow, len(strs))
	for i, s := range strs {
		rows[i] = ResultRow{String: s, Count: 1}
	}

	switch r.Shape {
	case derive.ShapeList:
		n := make(map[string]uint64, len(strs))
		for _, s := range r.List {
			n[s]++
		}
		for i := range rows {
			rows[i].Count = n[rows[i].String]
		}
	case derive.ShapeCounts:
		for i := range rows {
			rows[i].Count = r.Counts[rows[i].String]
		}
	case derive.ShapeDerivations:
		for i := range rows {
			if r.LowMemory() {
				rows[i].Paths = formatPaths(r.Productions[rows[i].String])
			} else {
				rows[i].Paths = formatPaths(r.Steps[rows[i].String])
			}
			rows[i].Count = uint64(len(rows[i].Paths))
		}
	}
	return rows
}

func formatPaths[R derive.Record](paths []derive.Path[R]) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = render.FormatPath(p)
	}
	return out
}

func (m ResultModel) Init() tea.Cmd {
	return nil
}

func (m ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ResultModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s at depth %d", m.Shape, m.Depth)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ derivations  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no strings within this depth"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		r := m.Rows[i]
		rows = append(rows, []string{cursor, displayString(r.String), fmt.Sprint(r.Count)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "String", "Derivations").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			base := lipgloss.NewStyle()
			if col == 2 {
				base = base.Foreground(colorCyan)
				if idx < len(m.Rows) && m.Rows[idx].Count > 1 {
					base = base.Foreground(colorYellow)
				}
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	b.WriteString("\n")

	if m.Expanded {
		b.WriteString("\n")
		b.WriteString(m.detail())
	}

	return b.String()
}

// detail lists the derivations of the current row.
func (m ResultModel) detail() string {
	r := m.Rows[m.Cursor]
	if len(r.Paths) == 0 {
		return listDimStyle.Render("  derivations were not recorded (rerun with --derivations)") + "\n"
	}
	var b strings.Builder
	b.WriteString(listSelectedStyle.Render(displayString(r.String)))
	b.WriteString("\n")
	for _, p := range r.Paths {
		b.WriteString("  ")
		b.WriteString(listNormalStyle.Render(p))
		b.WriteString("\n")
	}
	return b.String()
}

func displayString(s string) string {
	if s == "" {
		return "ε"
	}
	return s
}
