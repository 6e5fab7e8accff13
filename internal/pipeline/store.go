// Package pipeline implements the CRM sales pipeline: the client
// registry, the stage assignment engine, the per-client sub-record
// stores, and the derived filter and metrics views.
//
// All state lives in one Store guarded by a single RWMutex. MoveClient
// touches the stage buckets and the client record together, so readers
// can never observe a client in zero or two stages. Stage buckets are
// the single source of truth for membership and order; Client.Status
// is written only here, under the same lock, as the buckets change.
package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emprendo/copiloto/internal/logger"
	"github.com/emprendo/copiloto/internal/model"
)

// Store owns all pipeline state for one session.
type Store struct {
	mu sync.RWMutex

	clients map[string]model.Client
	order   []string // client ids in creation order

	stages     map[model.Stage][]string // stage -> ordered client ids
	stageIndex map[string]model.Stage   // client id -> current stage

	notes map[string][]model.Note
	tasks map[string][]model.Task
	comms map[string][]model.Communication
}

// NewStore creates an empty store with all stage buckets in place.
func NewStore() *Store {
	s := &Store{
		clients:    make(map[string]model.Client),
		stages:     make(map[model.Stage][]string),
		stageIndex: make(map[string]model.Stage),
		notes:      make(map[string][]model.Note),
		tasks:      make(map[string][]model.Task),
		comms:      make(map[string][]model.Communication),
	}
	for _, st := range model.AllStages {
		s.stages[st] = []string{}
	}
	return s
}

// CreateClient validates the input, assigns a fresh id and inserts the
// client into the registry and its starting stage bucket.
func (s *Store) CreateClient(in ClientInput) (model.Client, error) {
	if err := validateClientInput(in); err != nil {
		return model.Client{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.NewClient(uuid.New().String(), in.Name, in.Email)
	c.Company = in.Company
	c.Phone = in.Phone
	c.Value = in.Value
	c.Source = in.Source
	if in.Potential != "" {
		c.Potential = in.Potential
	}
	if in.Status != "" {
		c.Status = in.Status
	}

	s.clients[c.ID] = c
	s.order = append(s.order, c.ID)
	s.stages[c.Status] = append(s.stages[c.Status], c.ID)
	s.stageIndex[c.ID] = c.Status

	logger.Info("client created",
		logger.F("id", c.ID),
		logger.F("stage", c.Status))
	return c, nil
}

// UpdateClient merges the patch into an existing client, validating
// only the fields the patch carries. A status change is applied as a
// stage move.
func (s *Store) UpdateClient(id string, p ClientPatch) (model.Client, error) {
	if err := validateClientPatch(p); err != nil {
		return model.Client{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return model.Client{}, &NotFoundError{Kind: "client", ID: id}
	}

	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Value != nil {
		c.Value = *p.Value
	}
	if p.Potential != nil {
		c.Potential = *p.Potential
	}
	if p.Source != nil {
		c.Source = *p.Source
	}
	if p.Status != nil && *p.Status != c.Status {
		if err := s.moveLocked(id, c.Status, *p.Status); err != nil {
			return model.Client{}, err
		}
		c.Status = *p.Status
		c.LastContactAt = time.Now()
	}

	s.clients[id] = c
	return c, nil
}

// DeleteClient removes the client from the registry and its stage
// bucket, cascade-deleting its notes, tasks and communications.
func (s *Store) DeleteClient(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return &NotFoundError{Kind: "client", ID: id}
	}

	s.stages[c.Status] = removeID(s.stages[c.Status], id)
	delete(s.stageIndex, id)
	delete(s.clients, id)
	s.order = removeID(s.order, id)

	delete(s.notes, id)
	delete(s.tasks, id)
	delete(s.comms, id)

	logger.Info("client deleted", logger.F("id", id))
	return nil
}

// GetClient returns a client by id.
func (s *Store) GetClient(id string) (model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return model.Client{}, &NotFoundError{Kind: "client", ID: id}
	}
	return c, nil
}

// ListClients returns all clients in creation order.
func (s *Store) ListClients() []model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked()
}

func (s *Store) listLocked() []model.Client {
	out := make([]model.Client, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.clients[id])
	}
	return out
}

// ResolveClientID expands a unique id prefix to a full client id. Used
// by the CLI for short-id input; ambiguous or unknown prefixes come
// back as NotFoundError.
func (s *Store) ResolveClientID(prefix string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.clients[prefix]; ok {
		return prefix, nil
	}
	var matches []string
	for id := range s.clients {
		if len(prefix) > 0 && len(id) >= len(prefix) && id[:len(prefix)] == prefix {
			matches = append(matches, id)
		}
	}
	if len(matches) != 1 {
		return "", &NotFoundError{Kind: "client", ID: prefix}
	}
	return matches[0], nil
}

// MoveClient moves a client between stage buckets. The id must
// actually be in the from bucket; anything else means the caller's
// view of the board is stale and the move is refused. Moving a client
// onto its current stage succeeds without touching anything.
func (s *Store) MoveClient(id string, from, to model.Stage) error {
	if !from.Valid() || !to.Valid() {
		return &InvariantViolation{Op: "MoveClient", Detail: "unknown stage"}
	}
	if !model.CanTransition(from, to) {
		return &InvariantViolation{Op: "MoveClient", Detail: "transition not allowed"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return &NotFoundError{Kind: "client", ID: id}
	}
	if from == to {
		return nil
	}
	if err := s.moveLocked(id, from, to); err != nil {
		logger.Error("stage move refused",
			logger.F("id", id),
			logger.F("from", from),
			logger.F("to", to),
			logger.F("error", err))
		return err
	}

	c.Status = to
	c.LastContactAt = time.Now()
	s.clients[id] = c

	logger.Info("client moved",
		logger.F("id", id),
		logger.F("from", from),
		logger.F("to", to))
	return nil
}

// moveLocked shifts the id between buckets. Caller holds the write
// lock and updates the client's Status itself.
func (s *Store) moveLocked(id string, from, to model.Stage) error {
	if s.stageIndex[id] != from || !containsID(s.stages[from], id) {
		return &InvariantViolation{Op: "MoveClient", Detail: "client not in source stage"}
	}
	s.stages[from] = removeID(s.stages[from], id)
	s.stages[to] = append(s.stages[to], id)
	s.stageIndex[id] = to
	return nil
}

// StageOf returns the current stage of a client.
func (s *Store) StageOf(id string) (model.Stage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stageIndex[id]
	if !ok {
		return "", &NotFoundError{Kind: "client", ID: id}
	}
	return st, nil
}

// Board returns every stage's clients in bucket order, for kanban
// rendering.
func (s *Store) Board() map[model.Stage][]model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board := make(map[model.Stage][]model.Client, len(model.AllStages))
	for _, st := range model.AllStages {
		ids := s.stages[st]
		col := make([]model.Client, 0, len(ids))
		for _, id := range ids {
			col = append(col, s.clients[id])
		}
		board[st] = col
	}
	return board
}

// Reorder moves a client to position pos within its own stage bucket.
// The board UI uses it for drag-style reordering.
func (s *Store) Reorder(id string, pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stageIndex[id]
	if !ok {
		return &NotFoundError{Kind: "client", ID: id}
	}
	bucket := removeID(s.stages[st], id)
	if pos < 0 {
		pos = 0
	}
	if pos > len(bucket) {
		pos = len(bucket)
	}
	bucket = append(bucket[:pos], append([]string{id}, bucket[pos:]...)...)
	s.stages[st] = bucket
	return nil
}

// Search runs the pure client filter over the registry in creation
// order.
func (s *Store) Search(f ClientFilter) []model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterClients(s.listLocked(), f)
}

// touchLocked bumps the client's last-contact date. Caller holds the
// write lock and has already checked the client exists.
func (s *Store) touchLocked(id string) {
	c := s.clients[id]
	c.LastContactAt = time.Now()
	s.clients[id] = c
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
