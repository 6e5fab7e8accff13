package model

import "time"

// TaskType classifies a follow-up task.
type TaskType string

const (
	TaskCall     TaskType = "call"
	TaskEmail    TaskType = "email"
	TaskMeeting  TaskType = "meeting"
	TaskFollowUp TaskType = "follow-up"
	TaskProposal TaskType = "proposal"
	TaskContract TaskType = "contract"
	TaskPayment  TaskType = "payment"
	TaskOther    TaskType = "other"
)

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	switch t {
	case TaskCall, TaskEmail, TaskMeeting, TaskFollowUp, TaskProposal, TaskContract, TaskPayment, TaskOther:
		return true
	}
	return false
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

// Reminder is an optional alert attached to a task. The timestamp is
// only meaningful while Enabled is set.
type Reminder struct {
	At      time.Time `json:"at"`
	Enabled bool      `json:"enabled"`
}

// Task is an actionable follow-up attached to a client by id.
//
// Invariant: CompletedAt is non-nil iff Status == TaskCompleted.
type Task struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        TaskType   `json:"type"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	DueDate     time.Time  `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Reminder    *Reminder  `json:"reminder,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a task with defaults.
func NewTask(id, clientID, title string, due time.Time) Task {
	now := time.Now()
	return Task{
		ID:        id,
		ClientID:  clientID,
		Title:     title,
		Type:      TaskFollowUp,
		Priority:  PriorityMedium,
		Status:    TaskPending,
		DueDate:   due,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOverdue reports whether the task is past its due date and not yet
// completed. Derived against the clock at call time, never stored.
func (t *Task) IsOverdue() bool {
	if t.Status == TaskCompleted {
		return false
	}
	return t.DueDate.Before(time.Now())
}
