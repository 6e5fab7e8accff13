package model

import "testing"

func TestParseStage(t *testing.T) {
	tests := []struct {
		in    string
		want  Stage
		valid bool
	}{
		{"lead", StageLead, true},
		{"qualified", StageQualified, true},
		{"proposal", StageProposal, true},
		{"negotiation", StageNegotiation, true},
		{"closed-won", StageClosedWon, true},
		{"closed-lost", StageClosedLost, true},
		{"won", "", false},
		{"", "", false},
		{"LEAD", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStage(tt.in)
			if ok != tt.valid {
				t.Errorf("ParseStage(%q) valid = %v, want %v", tt.in, ok, tt.valid)
			}
			if ok && got != tt.want {
				t.Errorf("ParseStage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStageTerminal(t *testing.T) {
	for _, st := range AllStages {
		terminal := st == StageClosedWon || st == StageClosedLost
		if st.Terminal() != terminal {
			t.Errorf("%s.Terminal() = %v, want %v", st, st.Terminal(), terminal)
		}
	}
}

func TestCanTransition(t *testing.T) {
	// The board allows every move between known stages, including out
	// of closed stages.
	for _, from := range AllStages {
		for _, to := range AllStages {
			if !CanTransition(from, to) {
				t.Errorf("CanTransition(%s, %s) = false, want true", from, to)
			}
		}
	}

	if CanTransition("bogus", StageLead) {
		t.Error("expected transition from unknown stage to be rejected")
	}
	if CanTransition(StageLead, "bogus") {
		t.Error("expected transition to unknown stage to be rejected")
	}
}

func TestAllStagesCount(t *testing.T) {
	if len(AllStages) != 6 {
		t.Errorf("expected 6 stages, got %d", len(AllStages))
	}
}
