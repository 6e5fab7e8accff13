package model

import "time"

// Priority levels for notes, tasks, and communications
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent" // tasks only
)

// Valid reports whether p is a known priority. Urgent is reserved for
// tasks; use ValidForTask where that applies.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidForTask reports whether p is usable on a task.
func (p Priority) ValidForTask() bool {
	return p.Valid() || p == PriorityUrgent
}

// NoteType classifies a note.
type NoteType string

const (
	NoteGeneral   NoteType = "general"
	NoteCall      NoteType = "call"
	NoteEmail     NoteType = "email"
	NoteMeeting   NoteType = "meeting"
	NoteFollowUp  NoteType = "follow-up"
	NoteImportant NoteType = "important"
)

// Valid reports whether t is a known note type.
func (t NoteType) Valid() bool {
	switch t {
	case NoteGeneral, NoteCall, NoteEmail, NoteMeeting, NoteFollowUp, NoteImportant:
		return true
	}
	return false
}

// Note is a free-text annotation attached to a client by id.
type Note struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Content   string    `json:"content"`
	Type      NoteType  `json:"type"`
	Priority  Priority  `json:"priority"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a note with defaults.
func NewNote(id, clientID, content string) Note {
	now := time.Now()
	return Note{
		ID:        id,
		ClientID:  clientID,
		Content:   content,
		Type:      NoteGeneral,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
