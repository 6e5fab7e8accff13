package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emprendo/copiloto/internal/model"
)

func filterFixture() []model.Client {
	return []model.Client{
		{ID: "1", Name: "Ana Martín", Company: "RetailPlus", Email: "ana@retailplus.com", Status: model.StageLead, Potential: model.PotentialMedium},
		{ID: "2", Name: "Carlos Ruiz", Company: "TechFlow", Email: "carlos@techflow.es", Status: model.StageQualified, Potential: model.PotentialHigh},
		{ID: "3", Name: "Lucía Fernández", Company: "RetailPlus", Email: "lucia@retailplus.com", Status: model.StageQualified, Potential: model.PotentialLow},
	}
}

func ids(cs []model.Client) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestFilterClients(t *testing.T) {
	fix := filterFixture()

	tests := []struct {
		name   string
		filter ClientFilter
		want   []string
	}{
		{"empty filter passes everything", ClientFilter{}, []string{"1", "2", "3"}},
		{"text matches name", ClientFilter{Text: "ana"}, []string{"1"}},
		{"text is case-insensitive", ClientFilter{Text: "RETAILPLUS"}, []string{"1", "3"}},
		{"text matches email", ClientFilter{Text: "techflow.es"}, []string{"2"}},
		{"stage only", ClientFilter{Stage: model.StageQualified}, []string{"2", "3"}},
		{"potential only", ClientFilter{Potential: model.PotentialHigh}, []string{"2"}},
		{"predicates AND together", ClientFilter{Text: "retailplus", Stage: model.StageQualified}, []string{"3"}},
		{"no match", ClientFilter{Text: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterClients(fix, tt.filter)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

// Every filtered result is a subset of the input in the input's order,
// and filtering twice with the same filter is a fixpoint.
func TestFilterClientsIdempotent(t *testing.T) {
	fix := filterFixture()
	f := ClientFilter{Stage: model.StageQualified}

	once := FilterClients(fix, f)
	twice := FilterClients(once, f)
	assert.Equal(t, once, twice)
}

func TestFilterClientsDoesNotMutateInput(t *testing.T) {
	fix := filterFixture()
	FilterClients(fix, ClientFilter{Text: "ana"})
	assert.Equal(t, filterFixture(), fix)
}

func TestStoreSearch(t *testing.T) {
	s := NewStore()
	newTestClient(t, s, "Ana Martín", "ana@retailplus.com", model.StageLead)
	newTestClient(t, s, "Carlos Ruiz", "carlos@techflow.es", model.StageQualified)

	got := s.Search(ClientFilter{Text: "carlos"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Carlos Ruiz", got[0].Name)
}

func TestMetricsZeroGuards(t *testing.T) {
	s := NewStore()
	m := s.Metrics()

	assert.Equal(t, 0, m.TotalClients)
	assert.Equal(t, 0.0, m.ConversionRate)
	assert.Equal(t, 0.0, m.AverageDealSize)
	assert.Equal(t, 0, m.CountByStage[model.StageLead], "every stage key is present")
}

func TestMetricsConversionRate(t *testing.T) {
	s := NewStore()
	newTestClient(t, s, "Won A", "a@x.com", model.StageClosedWon)
	newTestClient(t, s, "Won B", "b@x.com", model.StageClosedWon)
	newTestClient(t, s, "Lost", "c@x.com", model.StageClosedLost)
	newTestClient(t, s, "Open", "d@x.com", model.StageLead)

	m := s.Metrics()
	assert.InDelta(t, 2.0/3.0, m.ConversionRate, 1e-9, "open deals do not count")
}

func TestMetricsAggregates(t *testing.T) {
	s := NewStore()
	c, err := s.CreateClient(ClientInput{Name: "A", Email: "a@x.com", Value: 1000, Status: model.StageLead})
	assert.NoError(t, err)
	_, err = s.CreateClient(ClientInput{Name: "B", Email: "b@x.com", Value: 3000, Status: model.StageProposal})
	assert.NoError(t, err)

	m := s.Metrics()
	assert.Equal(t, 2, m.TotalClients)
	assert.Equal(t, 4000.0, m.TotalValue)
	assert.Equal(t, 2000.0, m.AverageDealSize)
	assert.Equal(t, 1000.0, m.ValueByStage[model.StageLead])

	// Metrics follow moves immediately; nothing is cached.
	assert.NoError(t, s.MoveClient(c.ID, model.StageLead, model.StageProposal))
	m = s.Metrics()
	assert.Equal(t, 0, m.CountByStage[model.StageLead])
	assert.Equal(t, 4000.0, m.ValueByStage[model.StageProposal])
}
