package pipeline

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emprendo/copiloto/internal/model"
)

// CommInput carries the caller-settable fields for a new
// communication entry.
type CommInput struct {
	Type         model.CommType     `json:"type"`
	Direction    model.Direction    `json:"direction"`
	Subject      string             `json:"subject"`
	Content      string             `json:"content"`
	DurationMins int                `json:"duration_mins"`
	Participants []string           `json:"participants"`
	Attachments  []model.Attachment `json:"attachments"`
	Status       model.CommStatus   `json:"status"`
	Priority     model.Priority     `json:"priority"`
	Outcome      model.Outcome      `json:"outcome"`
	Author       string             `json:"author"`
}

// CommPatch carries optional updates; nil fields are untouched.
type CommPatch struct {
	Subject      *string           `json:"subject,omitempty"`
	Content      *string           `json:"content,omitempty"`
	DurationMins *int              `json:"duration_mins,omitempty"`
	Status       *model.CommStatus `json:"status,omitempty"`
	Priority     *model.Priority   `json:"priority,omitempty"`
	Outcome      *model.Outcome    `json:"outcome,omitempty"`
}

// CommFilter selects communications; unset predicates impose no
// constraint.
type CommFilter struct {
	Type     model.CommType
	Status   model.CommStatus
	Priority model.Priority
}

func validateCommInput(in CommInput) error {
	ve := &ValidationError{}
	if !in.Type.Valid() {
		ve.add("type", "unknown communication type")
	}
	if !in.Direction.Valid() {
		ve.add("direction", "must be inbound or outbound")
	}
	if strings.TrimSpace(in.Content) == "" {
		ve.add("content", "required")
	}
	if in.DurationMins < 0 {
		ve.add("duration_mins", "must not be negative")
	}
	if in.Status != "" && !in.Status.Valid() {
		ve.add("status", "unknown status")
	}
	if in.Priority != "" && !in.Priority.Valid() {
		ve.add("priority", "unknown priority")
	}
	if !in.Outcome.Valid() {
		ve.add("outcome", "unknown outcome")
	}
	return ve.orNil()
}

// AddCommunication logs an interaction with a client and bumps the
// client's last-contact date.
func (s *Store) AddCommunication(clientID string, in CommInput) (model.Communication, error) {
	if err := validateCommInput(in); err != nil {
		return model.Communication{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return model.Communication{}, &NotFoundError{Kind: "client", ID: clientID}
	}

	cm := model.NewCommunication(uuid.New().String(), clientID, in.Content, in.Type, in.Direction)
	cm.Subject = in.Subject
	cm.DurationMins = in.DurationMins
	cm.Participants = in.Participants
	cm.Attachments = in.Attachments
	cm.Outcome = in.Outcome
	cm.Author = in.Author
	if in.Status != "" {
		cm.Status = in.Status
	}
	if in.Priority != "" {
		cm.Priority = in.Priority
	}

	s.comms[clientID] = append(s.comms[clientID], cm)
	s.touchLocked(clientID)
	return cm, nil
}

// UpdateCommunication edits a logged communication in place.
func (s *Store) UpdateCommunication(clientID, commID string, p CommPatch) (model.Communication, error) {
	ve := &ValidationError{}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		ve.add("content", "required")
	}
	if p.DurationMins != nil && *p.DurationMins < 0 {
		ve.add("duration_mins", "must not be negative")
	}
	if p.Status != nil && !p.Status.Valid() {
		ve.add("status", "unknown status")
	}
	if p.Priority != nil && !p.Priority.Valid() {
		ve.add("priority", "unknown priority")
	}
	if p.Outcome != nil && !p.Outcome.Valid() {
		ve.add("outcome", "unknown outcome")
	}
	if err := ve.orNil(); err != nil {
		return model.Communication{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return model.Communication{}, &NotFoundError{Kind: "client", ID: clientID}
	}
	for i, cm := range s.comms[clientID] {
		if cm.ID != commID {
			continue
		}
		if p.Subject != nil {
			cm.Subject = *p.Subject
		}
		if p.Content != nil {
			cm.Content = *p.Content
		}
		if p.DurationMins != nil {
			cm.DurationMins = *p.DurationMins
		}
		if p.Status != nil {
			cm.Status = *p.Status
		}
		if p.Priority != nil {
			cm.Priority = *p.Priority
		}
		if p.Outcome != nil {
			cm.Outcome = *p.Outcome
		}
		cm.UpdatedAt = time.Now()
		s.comms[clientID][i] = cm
		return cm, nil
	}
	return model.Communication{}, &NotFoundError{Kind: "communication", ID: commID}
}

// RemoveCommunication deletes a logged communication.
func (s *Store) RemoveCommunication(clientID, commID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return &NotFoundError{Kind: "client", ID: clientID}
	}
	for i, cm := range s.comms[clientID] {
		if cm.ID == commID {
			s.comms[clientID] = append(s.comms[clientID][:i], s.comms[clientID][i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "communication", ID: commID}
}

// ListCommunications returns a client's communications in insertion
// order, AND-filtered by the set predicates.
func (s *Store) ListCommunications(clientID string, f CommFilter) ([]model.Communication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.clients[clientID]; !ok {
		return nil, &NotFoundError{Kind: "client", ID: clientID}
	}
	out := make([]model.Communication, 0, len(s.comms[clientID]))
	for _, cm := range s.comms[clientID] {
		if f.Type != "" && cm.Type != f.Type {
			continue
		}
		if f.Status != "" && cm.Status != f.Status {
			continue
		}
		if f.Priority != "" && cm.Priority != f.Priority {
			continue
		}
		out = append(out, cm)
	}
	return out, nil
}
