package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flowsketch/flowsketch/pkg/cfg"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BlockListModel - Interactive block browser
// =============================================================================

// BlockListModel is the bubbletea model for browsing a graph's blocks.
// The left side lists blocks; the detail pane shows the selected block's
// source lines and outgoing edges.
type BlockListModel struct {
	Graph  cfg.Graph
	Cursor int
	Height int
	Offset int
}

// NewBlockListModel creates a block browser for the given graph.
func NewBlockListModel(g cfg.Graph) BlockListModel {
	return BlockListModel{
		Graph:  g,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m BlockListModel) Init() tea.Cmd {
	return nil
}

func (m BlockListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Graph.Blocks)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			m.Cursor = len(m.Graph.Blocks) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BlockListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Control-Flow Graph"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d blocks, %d edges", len(m.Graph.Blocks), len(m.Graph.Edges))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Graph.Blocks) {
		end = len(m.Graph.Blocks)
	}

	for i := m.Offset; i < end; i++ {
		blk := m.Graph.Blocks[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s#%-3d %-10s %s", cursor, blk.ID, blk.Kind, summarize(blk))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(blockStyle(blk.Kind).Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.Graph.Blocks) > 0 {
		b.WriteString("\n")
		b.WriteString(m.detailView(m.Graph.Blocks[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Graph.Blocks))))

	return b.String()
}

// detailView renders the selected block's lines and outgoing edges.
func (m BlockListModel) detailView(blk cfg.Block) string {
	var b strings.Builder

	b.WriteString(listDimStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")

	for _, line := range blk.Lines {
		b.WriteString("  " + listNormalStyle.Render(line) + "\n")
	}
	if len(blk.Lines) == 0 && blk.Label != "" {
		b.WriteString("  " + listNormalStyle.Render(blk.Label) + "\n")
	}

	for _, e := range m.Graph.Outgoing(blk.ID) {
		label := e.Label
		style := listDimStyle
		switch e.Label {
		case cfg.LabelTrue:
			style = styleEdgeTrue
		case cfg.LabelFalse:
			style = styleEdgeFalse
		default:
			label = "next"
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			listDimStyle.Render(iconArrow),
			listNormalStyle.Render(fmt.Sprintf("#%d", e.To)),
			style.Render(label)))
	}

	return b.String()
}

// summarize returns a one-line description of a block for the list pane.
func summarize(blk cfg.Block) string {
	text := blk.DisplayText()
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx] + " …"
	}
	text = strings.TrimSpace(text)
	if len(text) > 48 {
		text = text[:47] + "…"
	}
	return text
}

// blockStyle picks a list style based on block kind.
func blockStyle(k cfg.Kind) lipgloss.Style {
	switch k {
	case cfg.KindDecision:
		return StyleWarning
	case cfg.KindEntry, cfg.KindExit:
		return listDimStyle
	default:
		return listNormalStyle
	}
}
