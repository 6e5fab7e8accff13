package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/emprendo/copiloto/internal/model"
)

// Color palette
var (
	// Potential colors
	PotentialHigh   = lipgloss.Color("#FF6B6B")
	PotentialMedium = lipgloss.Color("#FFE66D")
	PotentialLow    = lipgloss.Color("#4ECDC4")

	// Stage accent colors
	stageColors = map[model.Stage]lipgloss.Color{
		model.StageLead:        lipgloss.Color("#6C757D"),
		model.StageQualified:   lipgloss.Color("#4ECDC4"),
		model.StageProposal:    lipgloss.Color("#FFE66D"),
		model.StageNegotiation: lipgloss.Color("#FFB347"),
		model.StageClosedWon:   lipgloss.Color("#95E1A3"),
		model.StageClosedLost:  lipgloss.Color("#FF6B6B"),
	}

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	ColumnStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	ColumnSelectedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	ModalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	StatusStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// potentialStyle returns the accent style for a potential rating.
func potentialStyle(p model.Potential) lipgloss.Style {
	switch p {
	case model.PotentialHigh:
		return lipgloss.NewStyle().Foreground(PotentialHigh).Bold(true)
	case model.PotentialLow:
		return lipgloss.NewStyle().Foreground(PotentialLow)
	default:
		return lipgloss.NewStyle().Foreground(PotentialMedium)
	}
}

// stageStyle returns the header style for a stage column.
func stageStyle(st model.Stage) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(stageColors[st]).Bold(true)
}
