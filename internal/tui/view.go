package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emprendo/copiloto/internal/model"
)

// View renders the board
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	board := m.renderBoard()
	statusBar := m.renderStatusBar()

	content := lipgloss.JoinVertical(lipgloss.Left, header, board)

	switch m.mode {
	case ModeAddClient:
		content = m.placeModal(m.renderAddModal())
	case ModeFilter:
		content = m.placeModal(m.renderFilterModal())
	case ModeConfirmDelete:
		content = m.placeModal(m.renderConfirmModal())
	case ModeHelp:
		content = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m Model) placeModal(modal string) string {
	return lipgloss.Place(
		m.width, m.height-2,
		lipgloss.Center, lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("Copiloto")
	stats := HelpStyle.Render(fmt.Sprintf(
		"%d clients · %.0f€ · conv %.0f%% · avg %.0f€",
		m.metrics.TotalClients,
		m.metrics.TotalValue,
		m.metrics.ConversionRate*100,
		m.metrics.AverageDealSize))
	filter := ""
	if m.filterText != "" {
		filter = HelpStyle.Render(fmt.Sprintf("  filter: %q", m.filterText))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", stats, filter)
}

func (m Model) renderBoard() string {
	colWidth := m.width/len(model.AllStages) - 3
	if colWidth < 14 {
		colWidth = 14
	}
	colHeight := m.height - 5

	cols := make([]string, 0, len(model.AllStages))
	for i, st := range model.AllStages {
		cols = append(cols, m.renderColumn(i, st, colWidth, colHeight))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderColumn(idx int, st model.Stage, width, height int) string {
	clients := m.visibleColumn(st)

	var s strings.Builder
	value := 0.0
	for _, c := range clients {
		value += c.Value
	}
	s.WriteString(stageStyle(st).Render(fmt.Sprintf("%s (%d)", st.Label(), len(clients))))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render(fmt.Sprintf("%.0f€", value)))
	s.WriteString("\n\n")

	for j, c := range clients {
		s.WriteString(m.renderCard(idx, j, c, width))
		s.WriteString("\n")
	}

	style := ColumnStyle
	if idx == m.col {
		style = ColumnSelectedStyle
	}
	return style.Width(width).Height(height).Render(s.String())
}

func (m Model) renderCard(colIdx, rowIdx int, c model.Client, width int) string {
	cursor := "  "
	style := CardStyle
	if colIdx == m.col && rowIdx == m.rows[m.col] {
		cursor = "❯ "
		style = CardSelectedStyle
	}

	dot := potentialStyle(c.Potential).Render("●")
	name := truncate(c.Name, width-8)
	line := fmt.Sprintf("%s%s %s", cursor, dot, name)
	sub := HelpStyle.Render(fmt.Sprintf("   %s · %.0f€", truncate(c.Company, width-12), c.Value))

	return style.Render(line) + "\n" + sub
}

func (m Model) renderStatusBar() string {
	left := m.message
	if left == "" {
		left = "a add · H/L move · J/K reorder · d delete · / filter · ? help · q quit"
	}
	return StatusStyle.Width(m.width).Render(left)
}

func (m Model) renderAddModal() string {
	titles := map[addStep]string{
		stepName:  "New client: name",
		stepEmail: "New client: email",
		stepValue: "New client: deal value",
	}
	var s strings.Builder
	s.WriteString(HeaderStyle.Render(titles[m.step]) + "\n\n")
	s.WriteString(m.input.View() + "\n\n")
	s.WriteString(HelpStyle.Render(fmt.Sprintf("stage: %s · enter next · esc cancel", m.currentStage().Label())))
	return ModalStyle.Render(s.String())
}

func (m Model) renderFilterModal() string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("Filter clients") + "\n\n")
	s.WriteString(m.input.View() + "\n\n")

	total := 0
	for _, st := range model.AllStages {
		total += len(m.visibleColumn(st))
	}
	s.WriteString(HelpStyle.Render(fmt.Sprintf("%d match(es) · enter apply · esc clear", total)))
	return ModalStyle.Render(s.String())
}

func (m Model) renderConfirmModal() string {
	c := m.selected()
	name := ""
	if c != nil {
		name = c.Name
	}
	var s strings.Builder
	s.WriteString(HeaderStyle.Render("Delete client") + "\n\n")
	s.WriteString(fmt.Sprintf("Delete %q and all its records?\n\n", name))
	s.WriteString(HelpStyle.Render("y confirm · n cancel"))
	return ModalStyle.Render(s.String())
}

func (m Model) renderHelp() string {
	help := `
  Copiloto board

  Navigation
    ←/h  →/l     switch stage column
    ↑/k  ↓/j     move between cards

  Actions
    a            add client to the selected stage
    H / L        move the selected client back / forward
    J / K        reorder within the stage
    d            delete the selected client
    /            filter cards by text
    esc          clear filter / message

  Press any key to close.
`
	return lipgloss.Place(
		m.width, m.height-2,
		lipgloss.Center, lipgloss.Center,
		ModalStyle.Render(help),
		lipgloss.WithWhitespaceChars(" "),
	)
}
