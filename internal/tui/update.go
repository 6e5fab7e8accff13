package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddClient:
			return m.updateAddClient(msg)
		case ModeFilter:
			return m.updateFilter(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}
	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Left):
		if m.col > 0 {
			m.col--
		}

	case key.Matches(msg, keys.Right):
		if m.col < len(model.AllStages)-1 {
			m.col++
		}

	case key.Matches(msg, keys.Up):
		if m.rows[m.col] > 0 {
			m.rows[m.col]--
		}

	case key.Matches(msg, keys.Down):
		if m.rows[m.col] < len(m.visibleColumn(m.currentStage()))-1 {
			m.rows[m.col]++
		}

	case key.Matches(msg, keys.MoveLeft):
		m.moveSelected(-1)

	case key.Matches(msg, keys.MoveRight):
		m.moveSelected(+1)

	case key.Matches(msg, keys.MoveUp):
		m.reorderSelected(-1)

	case key.Matches(msg, keys.MoveDown):
		m.reorderSelected(+1)

	case key.Matches(msg, keys.Add):
		m.mode = ModeAddClient
		m.step = stepName
		m.draft = pipeline.ClientInput{Status: m.currentStage()}
		m.input = freshInput("Client name...")
		return m, textinput.Blink

	case key.Matches(msg, keys.Delete):
		if m.selected() != nil {
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, keys.Filter):
		m.mode = ModeFilter
		m.input = freshInput("Filter clients...")
		m.input.SetValue(m.filterText)
		return m, textinput.Blink

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Escape):
		m.filterText = ""
		m.message = ""
		m.loadData()
	}
	return m, nil
}

// moveSelected shifts the selected client delta columns along the
// pipeline.
func (m *Model) moveSelected(delta int) {
	c := m.selected()
	if c == nil {
		return
	}
	target := m.col + delta
	if target < 0 || target >= len(model.AllStages) {
		return
	}
	from := m.currentStage()
	to := model.AllStages[target]
	if err := m.store.MoveClient(c.ID, from, to); err != nil {
		m.message = err.Error()
		return
	}
	m.loadData()
	m.col = target
	m.rows[m.col] = len(m.visibleColumn(to)) - 1
	m.message = fmt.Sprintf("Moved %s to %s", c.Name, to.Label())
}

// reorderSelected moves the selected client delta positions within its
// column.
func (m *Model) reorderSelected(delta int) {
	c := m.selected()
	if c == nil || m.filterText != "" {
		return
	}
	pos := m.rows[m.col] + delta
	if pos < 0 || pos >= len(m.board[m.currentStage()]) {
		return
	}
	if err := m.store.Reorder(c.ID, pos); err != nil {
		m.message = err.Error()
		return
	}
	m.loadData()
	m.rows[m.col] = pos
}

func (m Model) updateAddClient(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		switch m.step {
		case stepName:
			m.draft.Name = value
			m.step = stepEmail
			m.input = freshInput("Email...")
			return m, textinput.Blink
		case stepEmail:
			m.draft.Email = value
			m.step = stepValue
			m.input = freshInput("Deal value (optional)...")
			return m, textinput.Blink
		case stepValue:
			if value != "" {
				v, err := strconv.ParseFloat(value, 64)
				if err != nil {
					m.message = "value must be a number"
					return m, nil
				}
				m.draft.Value = v
			}
			c, err := m.store.CreateClient(m.draft)
			if err != nil {
				// Show the full field list; start over on the name
				m.message = err.Error()
				m.step = stepName
				m.input = freshInput("Client name...")
				m.input.SetValue(m.draft.Name)
				return m, textinput.Blink
			}
			m.mode = ModeNormal
			m.loadData()
			m.message = fmt.Sprintf("Added %s to %s", c.Name, c.Status.Label())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.filterText = ""
		m.loadData()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.loadData()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filterText = m.input.Value()
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if c := m.selected(); c != nil {
			if err := m.store.DeleteClient(c.ID); err != nil {
				m.message = err.Error()
			} else {
				m.message = fmt.Sprintf("Deleted %s", c.Name)
			}
			m.loadData()
		}
		m.mode = ModeNormal
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func freshInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()
	return ti
}
