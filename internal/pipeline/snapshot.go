package pipeline

import (
	"github.com/emprendo/copiloto/internal/model"
)

// Snapshot is a plain, serializable copy of the whole store. The CLI
// shell persists it between invocations; the core itself never touches
// disk.
type Snapshot struct {
	Clients    []model.Client           `json:"clients"` // creation order
	StageOrder map[model.Stage][]string `json:"stage_order"`
	Notes      []model.Note             `json:"notes"`
	Tasks      []model.Task             `json:"tasks"`
	Comms      []model.Communication    `json:"comms"`
}

// Export copies the current state into a snapshot.
func (s *Store) Export() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Clients:    s.listLocked(),
		StageOrder: make(map[model.Stage][]string, len(model.AllStages)),
	}
	for _, st := range model.AllStages {
		ids := make([]string, len(s.stages[st]))
		copy(ids, s.stages[st])
		snap.StageOrder[st] = ids
	}
	for _, id := range s.order {
		snap.Notes = append(snap.Notes, s.notes[id]...)
		snap.Tasks = append(snap.Tasks, s.tasks[id]...)
		snap.Comms = append(snap.Comms, s.comms[id]...)
	}
	return snap
}

// Import replaces the store's state with the snapshot. Stage buckets
// are the source of truth: each client's status is rewritten from the
// bucket containing it, and a client missing from every bucket is
// appended to the bucket its status names, so the single-stage
// invariant holds no matter what the snapshot carried.
func (s *Store) Import(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = make(map[string]model.Client, len(snap.Clients))
	s.order = make([]string, 0, len(snap.Clients))
	s.stages = make(map[model.Stage][]string, len(model.AllStages))
	s.stageIndex = make(map[string]model.Stage, len(snap.Clients))
	s.notes = make(map[string][]model.Note)
	s.tasks = make(map[string][]model.Task)
	s.comms = make(map[string][]model.Communication)

	for _, c := range snap.Clients {
		s.clients[c.ID] = c
		s.order = append(s.order, c.ID)
	}

	for _, st := range model.AllStages {
		s.stages[st] = []string{}
		for _, id := range snap.StageOrder[st] {
			c, ok := s.clients[id]
			if !ok {
				continue // bucket entry for a client the snapshot no longer has
			}
			if _, dup := s.stageIndex[id]; dup {
				continue
			}
			s.stages[st] = append(s.stages[st], id)
			s.stageIndex[id] = st
			c.Status = st
			s.clients[id] = c
		}
	}
	for _, id := range s.order {
		if _, ok := s.stageIndex[id]; ok {
			continue
		}
		st := s.clients[id].Status
		if !st.Valid() {
			st = model.StageLead
			c := s.clients[id]
			c.Status = st
			s.clients[id] = c
		}
		s.stages[st] = append(s.stages[st], id)
		s.stageIndex[id] = st
	}

	for _, n := range snap.Notes {
		if _, ok := s.clients[n.ClientID]; ok {
			s.notes[n.ClientID] = append(s.notes[n.ClientID], n)
		}
	}
	for _, t := range snap.Tasks {
		if _, ok := s.clients[t.ClientID]; ok {
			s.tasks[t.ClientID] = append(s.tasks[t.ClientID], t)
		}
	}
	for _, cm := range snap.Comms {
		if _, ok := s.clients[cm.ClientID]; ok {
			s.comms[cm.ClientID] = append(s.comms[cm.ClientID], cm)
		}
	}
}

// Reset drops all state.
func (s *Store) Reset() {
	s.Import(Snapshot{})
}
