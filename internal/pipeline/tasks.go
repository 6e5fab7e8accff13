package pipeline

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emprendo/copiloto/internal/model"
)

// TaskInput carries the caller-settable fields for a new task. DueDate
// is required on creation.
type TaskInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        model.TaskType   `json:"type"`
	Priority    model.Priority   `json:"priority"`
	Status      model.TaskStatus `json:"status"`
	DueDate     time.Time        `json:"due_date"`
	Reminder    *model.Reminder  `json:"reminder,omitempty"`
	Assignee    string           `json:"assignee"`
}

// TaskPatch carries optional task updates; nil fields are untouched.
// Status changes keep the completedAt invariant: setting completed
// stamps it, leaving completed clears it.
type TaskPatch struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Type        *model.TaskType   `json:"type,omitempty"`
	Priority    *model.Priority   `json:"priority,omitempty"`
	Status      *model.TaskStatus `json:"status,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	Reminder    *model.Reminder   `json:"reminder,omitempty"`
	Assignee    *string           `json:"assignee,omitempty"`
}

// TaskFilter selects tasks; unset predicates impose no constraint.
type TaskFilter struct {
	Type     model.TaskType
	Priority model.Priority
	Status   model.TaskStatus
}

func validateTaskInput(in TaskInput) error {
	ve := &ValidationError{}
	if strings.TrimSpace(in.Title) == "" {
		ve.add("title", "required")
	}
	if in.DueDate.IsZero() {
		ve.add("due_date", "required")
	}
	if in.Type != "" && !in.Type.Valid() {
		ve.add("type", "unknown task type")
	}
	if in.Priority != "" && !in.Priority.ValidForTask() {
		ve.add("priority", "unknown priority")
	}
	if in.Status != "" && !in.Status.Valid() {
		ve.add("status", "unknown status")
	}
	return ve.orNil()
}

// AddTask attaches a task to a client. Tasks do not bump last-contact;
// only notes and communications do.
func (s *Store) AddTask(clientID string, in TaskInput) (model.Task, error) {
	if err := validateTaskInput(in); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return model.Task{}, &NotFoundError{Kind: "client", ID: clientID}
	}

	t := model.NewTask(uuid.New().String(), clientID, in.Title, in.DueDate)
	t.Description = in.Description
	t.Assignee = in.Assignee
	t.Reminder = in.Reminder
	if in.Type != "" {
		t.Type = in.Type
	}
	if in.Priority != "" {
		t.Priority = in.Priority
	}
	if in.Status != "" {
		t.Status = in.Status
	}
	if t.Status == model.TaskCompleted {
		now := time.Now()
		t.CompletedAt = &now
	}

	s.tasks[clientID] = append(s.tasks[clientID], t)
	return t, nil
}

// UpdateTask edits a task in place, maintaining the completedAt
// invariant on status changes.
func (s *Store) UpdateTask(clientID, taskID string, p TaskPatch) (model.Task, error) {
	ve := &ValidationError{}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		ve.add("title", "required")
	}
	if p.DueDate != nil && p.DueDate.IsZero() {
		ve.add("due_date", "required")
	}
	if p.Type != nil && !p.Type.Valid() {
		ve.add("type", "unknown task type")
	}
	if p.Priority != nil && !p.Priority.ValidForTask() {
		ve.add("priority", "unknown priority")
	}
	if p.Status != nil && !p.Status.Valid() {
		ve.add("status", "unknown status")
	}
	if err := ve.orNil(); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return model.Task{}, &NotFoundError{Kind: "client", ID: clientID}
	}
	for i, t := range s.tasks[clientID] {
		if t.ID != taskID {
			continue
		}
		if p.Title != nil {
			t.Title = *p.Title
		}
		if p.Description != nil {
			t.Description = *p.Description
		}
		if p.Type != nil {
			t.Type = *p.Type
		}
		if p.Priority != nil {
			t.Priority = *p.Priority
		}
		if p.DueDate != nil {
			t.DueDate = *p.DueDate
		}
		if p.Reminder != nil {
			t.Reminder = p.Reminder
		}
		if p.Assignee != nil {
			t.Assignee = *p.Assignee
		}
		if p.Status != nil && *p.Status != t.Status {
			t.Status = *p.Status
			if t.Status == model.TaskCompleted {
				now := time.Now()
				t.CompletedAt = &now
			} else {
				t.CompletedAt = nil
			}
		}
		t.UpdatedAt = time.Now()
		s.tasks[clientID][i] = t
		return t, nil
	}
	return model.Task{}, &NotFoundError{Kind: "task", ID: taskID}
}

// RemoveTask deletes a task outright.
func (s *Store) RemoveTask(clientID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return &NotFoundError{Kind: "client", ID: clientID}
	}
	for i, t := range s.tasks[clientID] {
		if t.ID == taskID {
			s.tasks[clientID] = append(s.tasks[clientID][:i], s.tasks[clientID][i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "task", ID: taskID}
}

// ToggleComplete flips a task between pending and completed, stamping
// or clearing completedAt. Every other field survives the round trip.
func (s *Store) ToggleComplete(clientID, taskID string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return model.Task{}, &NotFoundError{Kind: "client", ID: clientID}
	}
	for i, t := range s.tasks[clientID] {
		if t.ID != taskID {
			continue
		}
		if t.Status == model.TaskCompleted {
			t.Status = model.TaskPending
			t.CompletedAt = nil
		} else {
			now := time.Now()
			t.Status = model.TaskCompleted
			t.CompletedAt = &now
		}
		t.UpdatedAt = time.Now()
		s.tasks[clientID][i] = t
		return t, nil
	}
	return model.Task{}, &NotFoundError{Kind: "task", ID: taskID}
}

// ListTasks returns a client's tasks in insertion order, AND-filtered
// by the set predicates.
func (s *Store) ListTasks(clientID string, f TaskFilter) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.clients[clientID]; !ok {
		return nil, &NotFoundError{Kind: "client", ID: clientID}
	}
	out := make([]model.Task, 0, len(s.tasks[clientID]))
	for _, t := range s.tasks[clientID] {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
