package model

// Stage is a pipeline position. Every client occupies exactly one stage.
type Stage string

const (
	StageLead        Stage = "lead"
	StageQualified   Stage = "qualified"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageClosedWon   Stage = "closed-won"
	StageClosedLost  Stage = "closed-lost"
)

// AllStages lists the stages in pipeline order.
var AllStages = []Stage{
	StageLead,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// Valid reports whether s is one of the six known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageLead, StageQualified, StageProposal, StageNegotiation, StageClosedWon, StageClosedLost:
		return true
	}
	return false
}

// Terminal reports whether s is a closed stage.
func (s Stage) Terminal() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// Label returns a human-readable stage name for display.
func (s Stage) Label() string {
	switch s {
	case StageLead:
		return "Lead"
	case StageQualified:
		return "Qualified"
	case StageProposal:
		return "Proposal"
	case StageNegotiation:
		return "Negotiation"
	case StageClosedWon:
		return "Closed Won"
	case StageClosedLost:
		return "Closed Lost"
	default:
		return string(s)
	}
}

// ParseStage converts a string to a Stage, reporting whether it is known.
func ParseStage(s string) (Stage, bool) {
	st := Stage(s)
	return st, st.Valid()
}

// CanTransition reports whether a move between two stages is allowed.
// The pipeline is deliberately permissive: any stage can move to any
// other, including out of the closed stages (matching how the board UI
// behaves). The table exists so tightening the graph later is a
// one-place change.
func CanTransition(from, to Stage) bool {
	return from.Valid() && to.Valid()
}
