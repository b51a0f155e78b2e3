package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sunwheel-labs/sunwheel/pkg/document"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorFaint)

// DocListModel drives the interactive picker behind "sunwheel docs browse".
// It renders the store's documents as a scrolling table; the pick lands in
// Selected when the program exits.
type DocListModel struct {
	Docs     []*document.Document
	Cursor   int
	Selected *document.Document
	Height   int
	Offset   int
}

// NewDocListModel builds a picker over docs with a default viewport height.
// The height adjusts once the terminal reports its size.
func NewDocListModel(docs []*document.Document) DocListModel {
	return DocListModel{Docs: docs, Height: 15}
}

func (m DocListModel) Init() tea.Cmd { return nil }

// move shifts the cursor by delta, clamped to the list, and drags the
// viewport along so the cursor stays visible.
func (m *DocListModel) move(delta int) {
	if len(m.Docs) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Docs)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m DocListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "enter":
			if len(m.Docs) > 0 {
				m.Selected = m.Docs[m.Cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.move(0)
	}
	return m, nil
}

func (m DocListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Documents"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render("↑/↓ move · ⏎ open · q quit"))
	b.WriteString("\n\n")

	first := m.Offset
	last := min(first+m.Height, len(m.Docs))

	rows := make([][]string, 0, last-first)
	for i := first; i < last; i++ {
		d := m.Docs[i]
		marker := "  "
		if i == m.Cursor {
			marker = "▸ "
		}
		rows = append(rows, []string{
			marker,
			d.Name,
			shortID(d.ID),
			fmt.Sprintf("%d", d.NodeCount()),
			fmt.Sprintf("r%d", d.Revision),
			formatRelativeTime(d.UpdatedAt),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("", "Document", "ID", "Nodes", "Rev", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			i := first + row
			if i >= len(m.Docs) {
				return lipgloss.NewStyle()
			}
			// The name column carries the emphasis; id, counts, and
			// timestamps stay muted so the list scans well.
			meta := col >= 2
			switch {
			case i == m.Cursor && !meta:
				return lipgloss.NewStyle().Foreground(colorOK).Bold(true)
			case i == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorText)
			case meta:
				return lipgloss.NewStyle().Foreground(colorFaint)
			default:
				return lipgloss.NewStyle()
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	pos := fmt.Sprintf("  %d of %d", m.Cursor+1, len(m.Docs))
	if last < len(m.Docs) {
		pos += "  ↓ more"
	}
	b.WriteString(listDimStyle.Render(pos))

	return b.String()
}

// shortID returns the first 8 characters of a document ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
