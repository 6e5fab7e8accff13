package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendo/copiloto/internal/model"
)

func TestAddNoteBumpsLastContact(t *testing.T) {
	s := NewStore()
	c := newTestClient(t, s, "Ana", "ana@x.com", model.StageLead)
	before, _ := s.GetClient(c.ID)

	time.Sleep(5 * time.Millisecond)
	n, err := s.AddNote(c.ID, NoteInput{Content: "first call went well", Author: "maria"})
	require.NoError(t, err)
	assert.Equal(t, model.NoteGeneral, n.Type, "type defaults when unset")
	assert.Equal(t, model.PriorityMedium, n.Priority)

	after, _ := s.GetClient(c.ID)
	assert.True(t, after.LastContactAt.After(before.LastContactAt))
}

func TestAddNoteValidation(t *testing.T) {
	s := NewStore()
	c := newTestClient(t, s, "Ana", "ana@x.com", model.StageLead)

	_, err := s.AddNote(c.ID, NoteInput{Content: "   "})
	assert.True(t, IsValidation(err))

	_, err = s.AddNote(c.ID, NoteInput{Content: "x", Type: "sticky", Priority: "mild"})
	require.Error(t, err)
	ve := err.(*ValidationError)
	assert.Len(t, ve.Fields, 2)

	_, err = s.AddNote("missing", NoteInput{Content: "x"})
	assert.True(t, IsNotFound(err))
}

func TestNoteUpdateAndFilter(t *testing.T) {
	s := NewStore()
	c := newTestClient(t, s, "Ana", "ana@x.com", model.StageLead)

	a, err := s.AddNote(c.ID, NoteInput{Content: "a", Type: model.NoteCall})
	require.NoError(t, err)
	_, err = s.AddNote(c.ID, NoteInput{Content: "b", Type: model.NoteMeeting, Priority: model.PriorityHigh})
	require.NoError(t, err)

	content := "a, edited"
	got, err := s.UpdateNote(c.ID, a.ID, NotePatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "a, edited", got.Content)
	assert.Equal(t, model.NoteCall, got.Type, "unpatched fields survive")

	calls, err := s.ListNotes(c.ID, NoteFilter{Type: model.NoteCall})
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, a.ID, calls[0].ID)

	require.NoError(t, s.RemoveNote(c.ID, a.ID))
	assert.True(t, IsNotFound(s.RemoveNote(c.ID, a.ID)))

	all, err := s.ListNotes(c.ID, NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAddTaskDoesNotBumpLastContact(t *testing.T) {
	s := NewStore()
	c := newTestClient(t, s, "Ana", "ana@x.com", model.StageLead)
	before, _ := s.GetClient(c.ID)

	time.Sleep(5 * time.Millisecond)
	_, err := s.AddTask(c.ID, TaskInput{Title: "send proposal", DueDate: time.Now().Add(48 * time.Hour)})
	require.NoError(t, err)

	after, _ := s.GetClient(c.ID)
	assert.Equal(t, before.LastContactAt, after.LastContactAt, "tasks are internal reminders, not contact")
}

func TestTaskValidationRequiresDueDate(t *testing.T) {
	s := NewStore()
	c := newTestClient(t, s, "Ana", "ana@x.com", model.StageLead)

	_, err := s.AddTask(c.ID, TaskInput{Title: "no date"})
	require.Error(t, err)
	ve := err.(*ValidationError)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "due_date", ve.Fields[0].Field)
}

func TestToggleCompleteRoundTrip(t *testing.T) {
	s := NewStore()
	c := newTestClient(t, s, "Ana", "ana@x.com", model.StageLead)

	orig, err := s.AddTask(c.ID, TaskInput{
		Title:       "follow up",
		Description: "ask about budget",
		Priority:    model.PriorityUrgent,
		DueDate:     time.Now().Add(time.Hour),
		Assignee:    "maria",
	})
	require.NoError(t, err)
	require.Nil(t, orig.CompletedAt)

	done, err := s.ToggleComplete(c.ID, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	back, err := s.ToggleComplete(c.ID, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskPending, back.Status)
	assert.Nil(t, back.CompletedAt)

	// Everything but status, timestamps and completion survives.
	assert.Equal(t, orig.Title, back.Title)
	assert.Equal(t, orig.Description, back.Description)
	assert.Equal(t, orig.Priority, back.Priority)
	assert.Equal(t, orig.Assignee, back.Assignee)
	assert.True(t, orig.DueDate.Equal(back.DueDate))
}

func TestUpdateTaskStatusKeepsCompletionInvariant(t *testing.T) {
	s := NewStore()
	c := newTestClient(t, s, "Ana", "ana@x.com", model.StageLead)
	task, err := s.AddTask(c.ID, TaskInput{Title: "x", DueDate: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	done := model.TaskCompleted
	got, err := s.UpdateTask(c.ID, task.ID, TaskPatch{Status: &done})
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)

	cancelled := model.TaskCancelled
	got, err = s.UpdateTask(c.ID, task.ID, TaskPatch{Status: &cancelled})
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt, "leaving completed clears the stamp")
}

func TestAddCommunicationBumpsLastContact(t *testing.T) {
	s := NewStore()
	c := newTestClient(t, s, "Ana", "ana@x.com", model.StageLead)
	before, _ := s.GetClient(c.ID)

	time.Sleep(5 * time.Millisecond)
	cm, err := s.AddCommunication(c.ID, CommInput{
		Type:      model.CommCall,
		Direction: model.DirectionOutbound,
		Content:   "quoted the premium plan",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CommCompleted, cm.Status, "status defaults when unset")
	assert.Empty(t, cm.Outcome, "outcome may be recorded later")

	after, _ := s.GetClient(c.ID)
	assert.True(t, after.LastContactAt.After(before.LastContactAt))
}

func TestAddCommunicationValidation(t *testing.T) {
	s := NewStore()
	c := newTestClient(t, s, "Ana", "ana@x.com", model.StageLead)

	_, err := s.AddCommunication(c.ID, CommInput{})
	require.Error(t, err)
	ve := err.(*ValidationError)
	fields := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		fields[i] = f.Field
	}
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "direction")
	assert.Contains(t, fields, "content")
}

func TestListCommunicationsFiltered(t *testing.T) {
	s := NewStore()
	c := newTestClient(t, s, "Ana", "ana@x.com", model.StageLead)

	_, err := s.AddCommunication(c.ID, CommInput{Type: model.CommCall, Direction: model.DirectionOutbound, Content: "call"})
	require.NoError(t, err)
	_, err = s.AddCommunication(c.ID, CommInput{Type: model.CommEmail, Direction: model.DirectionInbound, Content: "email", Priority: model.PriorityHigh})
	require.NoError(t, err)

	calls, err := s.ListCommunications(c.ID, CommFilter{Type: model.CommCall})
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, "call", calls[0].Content)

	high, err := s.ListCommunications(c.ID, CommFilter{Priority: model.PriorityHigh})
	require.NoError(t, err)
	assert.Len(t, high, 1)
}
