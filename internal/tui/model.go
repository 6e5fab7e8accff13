package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/emprendo/copiloto/internal/logger"
	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddClient
	ModeFilter
	ModeConfirmDelete
	ModeHelp
)

// addStep is the field the add-client modal is currently collecting.
type addStep int

const (
	stepName addStep = iota
	stepEmail
	stepValue
)

// Model is the board TUI model. Columns are the six pipeline stages.
type Model struct {
	store *pipeline.Store

	// Board state, reloaded from the store after every mutation
	board   map[model.Stage][]model.Client
	metrics pipeline.Metrics

	// UI state
	width  int
	height int
	col    int   // selected stage column
	rows   []int // cursor per column
	mode   Mode

	// Input
	input textinput.Model
	step  addStep
	draft pipeline.ClientInput

	// Filter (applied to card rendering, cleared with esc)
	filterText string

	message string
}

// NewModel creates the board model around a store.
func NewModel(store *pipeline.Store) Model {
	logger.Info("initializing board model")

	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40

	m := Model{
		store: store,
		rows:  make([]int, len(model.AllStages)),
		input: ti,
	}
	m.loadData()
	logger.Debug("board model initialized", logger.F("clients", m.metrics.TotalClients))
	return m
}

func (m *Model) loadData() {
	m.board = m.store.Board()
	m.metrics = m.store.Metrics()
	for i, st := range model.AllStages {
		if n := len(m.visibleColumn(st)); m.rows[i] >= n && n > 0 {
			m.rows[i] = n - 1
		} else if n == 0 {
			m.rows[i] = 0
		}
	}
}

// visibleColumn applies the free-text filter to one stage column.
func (m *Model) visibleColumn(st model.Stage) []model.Client {
	col := m.board[st]
	if m.filterText == "" {
		return col
	}
	return pipeline.FilterClients(col, pipeline.ClientFilter{Text: m.filterText})
}

// selected returns the client under the cursor, if any.
func (m *Model) selected() *model.Client {
	col := m.visibleColumn(model.AllStages[m.col])
	if len(col) == 0 {
		return nil
	}
	row := m.rows[m.col]
	if row >= len(col) {
		row = len(col) - 1
	}
	c := col[row]
	return &c
}

func (m *Model) currentStage() model.Stage {
	return model.AllStages[m.col]
}
