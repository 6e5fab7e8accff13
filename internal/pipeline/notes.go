package pipeline

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emprendo/copiloto/internal/model"
)

// NoteInput carries the caller-settable fields for a new note.
type NoteInput struct {
	Content  string         `json:"content"`
	Type     model.NoteType `json:"type"`
	Priority model.Priority `json:"priority"`
	Author   string         `json:"author"`
}

// NotePatch carries optional note updates; nil fields are untouched.
type NotePatch struct {
	Content  *string         `json:"content,omitempty"`
	Type     *model.NoteType `json:"type,omitempty"`
	Priority *model.Priority `json:"priority,omitempty"`
}

// NoteFilter selects notes by type and priority; unset predicates
// impose no constraint.
type NoteFilter struct {
	Type     model.NoteType
	Priority model.Priority
}

func validateNoteInput(in NoteInput) error {
	ve := &ValidationError{}
	if strings.TrimSpace(in.Content) == "" {
		ve.add("content", "required")
	}
	if in.Type != "" && !in.Type.Valid() {
		ve.add("type", "unknown note type")
	}
	if in.Priority != "" && !in.Priority.Valid() {
		ve.add("priority", "unknown priority")
	}
	return ve.orNil()
}

// AddNote attaches a note to a client and bumps the client's
// last-contact date.
func (s *Store) AddNote(clientID string, in NoteInput) (model.Note, error) {
	if err := validateNoteInput(in); err != nil {
		return model.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return model.Note{}, &NotFoundError{Kind: "client", ID: clientID}
	}

	n := model.NewNote(uuid.New().String(), clientID, in.Content)
	if in.Type != "" {
		n.Type = in.Type
	}
	if in.Priority != "" {
		n.Priority = in.Priority
	}
	n.Author = in.Author

	s.notes[clientID] = append(s.notes[clientID], n)
	s.touchLocked(clientID)
	return n, nil
}

// UpdateNote edits a note in place.
func (s *Store) UpdateNote(clientID, noteID string, p NotePatch) (model.Note, error) {
	ve := &ValidationError{}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		ve.add("content", "required")
	}
	if p.Type != nil && !p.Type.Valid() {
		ve.add("type", "unknown note type")
	}
	if p.Priority != nil && !p.Priority.Valid() {
		ve.add("priority", "unknown priority")
	}
	if err := ve.orNil(); err != nil {
		return model.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return model.Note{}, &NotFoundError{Kind: "client", ID: clientID}
	}
	for i, n := range s.notes[clientID] {
		if n.ID != noteID {
			continue
		}
		if p.Content != nil {
			n.Content = *p.Content
		}
		if p.Type != nil {
			n.Type = *p.Type
		}
		if p.Priority != nil {
			n.Priority = *p.Priority
		}
		n.UpdatedAt = time.Now()
		s.notes[clientID][i] = n
		return n, nil
	}
	return model.Note{}, &NotFoundError{Kind: "note", ID: noteID}
}

// RemoveNote deletes a note outright.
func (s *Store) RemoveNote(clientID, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return &NotFoundError{Kind: "client", ID: clientID}
	}
	for i, n := range s.notes[clientID] {
		if n.ID == noteID {
			s.notes[clientID] = append(s.notes[clientID][:i], s.notes[clientID][i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "note", ID: noteID}
}

// ListNotes returns a client's notes in insertion order, AND-filtered
// by the set predicates.
func (s *Store) ListNotes(clientID string, f NoteFilter) ([]model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.clients[clientID]; !ok {
		return nil, &NotFoundError{Kind: "client", ID: clientID}
	}
	out := make([]model.Note, 0, len(s.notes[clientID]))
	for _, n := range s.notes[clientID] {
		if f.Type != "" && n.Type != f.Type {
			continue
		}
		if f.Priority != "" && n.Priority != f.Priority {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
