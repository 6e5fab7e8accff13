package pipeline

import "github.com/emprendo/copiloto/internal/model"

// Metrics is a point-in-time aggregate over the whole pipeline. It is
// recomputed from current state on every call; no cached aggregate is
// ever authoritative.
type Metrics struct {
	TotalClients    int                     `json:"total_clients"`
	TotalValue      float64                 `json:"total_value"`
	CountByStage    map[model.Stage]int     `json:"count_by_stage"`
	ValueByStage    map[model.Stage]float64 `json:"value_by_stage"`
	ConversionRate  float64                 `json:"conversion_rate"`
	AverageDealSize float64                 `json:"average_deal_size"`
}

// Metrics folds over the registry and stage assignment under a read
// lock. The ratios are zero-guarded: an empty pipeline reports 0, not
// NaN.
func (s *Store) Metrics() Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := Metrics{
		CountByStage: make(map[model.Stage]int, len(model.AllStages)),
		ValueByStage: make(map[model.Stage]float64, len(model.AllStages)),
	}
	for _, st := range model.AllStages {
		m.CountByStage[st] = 0
		m.ValueByStage[st] = 0
	}

	for _, c := range s.clients {
		m.TotalClients++
		m.TotalValue += c.Value
		m.CountByStage[c.Status]++
		m.ValueByStage[c.Status] += c.Value
	}

	won := m.CountByStage[model.StageClosedWon]
	lost := m.CountByStage[model.StageClosedLost]
	if won+lost > 0 {
		m.ConversionRate = float64(won) / float64(won+lost)
	}
	if m.TotalClients > 0 {
		m.AverageDealSize = m.TotalValue / float64(m.TotalClients)
	}
	return m
}
