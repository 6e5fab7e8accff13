package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "copiloto.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadSnapshotEmpty(t *testing.T) {
	db := openTestDB(t)

	snap, err := db.LoadSnapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Clients)
	assert.Empty(t, snap.Notes)
}

func TestSnapshotPersistRoundTrip(t *testing.T) {
	store := pipeline.NewStore()
	require.NoError(t, store.Seed())
	clients := store.ListClients()
	require.NotEmpty(t, clients)

	ana := clients[0]
	_, err := store.AddNote(ana.ID, pipeline.NoteInput{Content: "prefiere llamadas por la tarde", Author: "maria"})
	require.NoError(t, err)
	reminder := &model.Reminder{At: time.Now().Add(23 * time.Hour).Truncate(time.Millisecond), Enabled: true}
	task, err := store.AddTask(ana.ID, pipeline.TaskInput{
		Title:    "enviar propuesta",
		DueDate:  time.Now().Add(72 * time.Hour),
		Priority: model.PriorityUrgent,
		Reminder: reminder,
	})
	require.NoError(t, err)
	_, err = store.ToggleComplete(ana.ID, task.ID)
	require.NoError(t, err)
	_, err = store.AddCommunication(ana.ID, pipeline.CommInput{
		Type:         model.CommVideoCall,
		Direction:    model.DirectionOutbound,
		Content:      "demo del producto",
		DurationMins: 30,
		Participants: []string{"maria", "ana"},
		Attachments:  []model.Attachment{{Name: "propuesta.pdf", Kind: "pdf", Size: 120000}},
		Outcome:      model.OutcomePositive,
	})
	require.NoError(t, err)

	db := openTestDB(t)
	require.NoError(t, db.SaveSnapshot(store.Export()))

	loaded, err := db.LoadSnapshot()
	require.NoError(t, err)

	restored := pipeline.NewStore()
	restored.Import(loaded)

	assert.Equal(t, len(clients), len(restored.ListClients()))
	assert.Equal(t, store.Metrics(), restored.Metrics())

	// Bucket order survives per stage.
	want := store.Export().StageOrder
	got := restored.Export().StageOrder
	for _, st := range model.AllStages {
		assert.Equal(t, want[st], got[st], "stage %s order", st)
	}

	notes, err := restored.ListNotes(ana.ID, pipeline.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "prefiere llamadas por la tarde", notes[0].Content)
	assert.Equal(t, "maria", notes[0].Author)

	// Seed already attaches a task to this client, so find ours by id.
	tasks, err := restored.ListTasks(ana.ID, pipeline.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	var added *model.Task
	for i := range tasks {
		if tasks[i].ID == task.ID {
			added = &tasks[i]
		}
	}
	require.NotNil(t, added, "added task survives the round trip")
	assert.Equal(t, model.TaskCompleted, added.Status)
	require.NotNil(t, added.CompletedAt)
	require.NotNil(t, added.Reminder)
	assert.True(t, added.Reminder.Enabled)
	assert.True(t, added.Reminder.At.Equal(reminder.At))

	comms, err := restored.ListCommunications(ana.ID, pipeline.CommFilter{})
	require.NoError(t, err)
	require.Len(t, comms, 1)
	assert.Equal(t, []string{"maria", "ana"}, comms[0].Participants)
	require.Len(t, comms[0].Attachments, 1)
	assert.Equal(t, "propuesta.pdf", comms[0].Attachments[0].Name)
	assert.Equal(t, model.OutcomePositive, comms[0].Outcome)
}

// Saving twice keeps a single copy; the old rows are replaced.
func TestSaveSnapshotReplaces(t *testing.T) {
	db := openTestDB(t)

	store := pipeline.NewStore()
	require.NoError(t, store.Seed())
	require.NoError(t, db.SaveSnapshot(store.Export()))

	store.Reset()
	_, err := store.CreateClient(pipeline.ClientInput{Name: "Solo", Email: "solo@x.com"})
	require.NoError(t, err)
	require.NoError(t, db.SaveSnapshot(store.Export()))

	loaded, err := db.LoadSnapshot()
	require.NoError(t, err)
	require.Len(t, loaded.Clients, 1)
	assert.Equal(t, "Solo", loaded.Clients[0].Name)
}
