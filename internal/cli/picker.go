package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pinmap/pkg/region"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RegionListModel - Interactive region selection
// =============================================================================

// RegionListModel is the bubbletea model for interactive region selection.
type RegionListModel struct {
	Regions  []region.Code
	Cursor   int
	Selected *region.Code
	Height   int
	Offset   int
}

// NewRegionListModel creates a new region list model.
func NewRegionListModel(regions []region.Code) RegionListModel {
	return RegionListModel{
		Regions: regions,
		Height:  15,
	}
}

func (m RegionListModel) Init() tea.Cmd {
	return nil
}

func (m RegionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Regions)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Regions) == 0 {
				return m, tea.Quit
			}
			code := m.Regions[m.Cursor]
			m.Selected = &code
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RegionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Region"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Regions) {
		end = len(m.Regions)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, regionRow(m.Regions[i])...))
	}

	t := regionTable(rows, func(row int) bool { return m.Offset+row == m.Cursor })
	t.Headers(append([]string{""}, regionHeaders...)...)

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Regions))))

	return b.String()
}

// =============================================================================
// Region table
// =============================================================================

var regionHeaders = []string{"Code", "Region", "North", "South", "East", "West", "Insets"}

func regionRow(c region.Code) []string {
	b := c.FixedArea().Bounds
	insets := ""
	if c == region.US {
		insets = "AK, HI"
	}
	return []string{
		string(c),
		c.Label(),
		fmt.Sprintf("%.1f", b.North.Float()),
		fmt.Sprintf("%.1f", b.South.Float()),
		fmt.Sprintf("%.1f", b.East.Float()),
		fmt.Sprintf("%.1f", b.West.Float()),
		insets,
	}
}

// regionTable builds the shared table style; highlight marks the current row.
func regionTable(rows [][]string, highlight func(row int) bool) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(regionHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if highlight != nil && highlight(row) {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base.Foreground(colorWhite)
		})
}
