package model

import (
	"testing"
	"time"
)

func TestTaskIsOverdue(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)
	tomorrow := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name   string
		due    time.Time
		status TaskStatus
		want   bool
	}{
		{"past due pending", yesterday, TaskPending, true},
		{"past due in progress", yesterday, TaskInProgress, true},
		{"past due completed", yesterday, TaskCompleted, false},
		{"past due cancelled", yesterday, TaskCancelled, true},
		{"future due pending", tomorrow, TaskPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewTask("t1", "c1", "call back", tt.due)
			task.Status = tt.status
			if got := task.IsOverdue(); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTaskDefaults(t *testing.T) {
	due := time.Now().Add(48 * time.Hour)
	task := NewTask("t1", "c1", "send proposal", due)

	if task.Status != TaskPending {
		t.Errorf("expected pending status, got %s", task.Status)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("expected medium priority, got %s", task.Priority)
	}
	if task.Type != TaskFollowUp {
		t.Errorf("expected follow-up type, got %s", task.Type)
	}
	if task.CompletedAt != nil {
		t.Error("new task should not have a completion timestamp")
	}
}
