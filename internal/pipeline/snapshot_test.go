package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendo/copiloto/internal/model"
)

func TestSnapshotRoundTrip(t *testing.T) {
	src := NewStore()
	a := newTestClient(t, src, "Ana", "ana@x.com", model.StageLead)
	b := newTestClient(t, src, "Carlos", "carlos@x.com", model.StageNegotiation)
	_, err := src.AddNote(a.ID, NoteInput{Content: "hola"})
	require.NoError(t, err)
	_, err = src.AddTask(b.ID, TaskInput{Title: "call", DueDate: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	_, err = src.AddCommunication(a.ID, CommInput{Type: model.CommEmail, Direction: model.DirectionInbound, Content: "re: pricing"})
	require.NoError(t, err)
	require.NoError(t, src.Reorder(b.ID, 0))

	dst := NewStore()
	dst.Import(src.Export())

	assert.Equal(t, src.ListClients(), dst.ListClients())
	assert.Equal(t, src.Board(), dst.Board())
	checkSingleStage(t, dst)

	notes, err := dst.ListNotes(a.ID, NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	tasks, err := dst.ListTasks(b.ID, TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
	comms, err := dst.ListCommunications(a.ID, CommFilter{})
	require.NoError(t, err)
	assert.Len(t, comms, 1)
}

// Buckets win over the status field when a snapshot disagrees with
// itself.
func TestImportRewritesStatusFromBuckets(t *testing.T) {
	c := model.NewClient("c1", "Ana", "ana@x.com")
	c.Status = model.StageClosedWon // lies about the bucket

	s := NewStore()
	s.Import(Snapshot{
		Clients:    []model.Client{c},
		StageOrder: map[model.Stage][]string{model.StageProposal: {"c1"}},
	})

	got, err := s.GetClient("c1")
	require.NoError(t, err)
	assert.Equal(t, model.StageProposal, got.Status)
	checkSingleStage(t, s)
}

func TestImportRecoversClientMissingFromBuckets(t *testing.T) {
	c := model.NewClient("c1", "Ana", "ana@x.com")
	c.Status = model.StageQualified

	s := NewStore()
	s.Import(Snapshot{Clients: []model.Client{c}})

	st, err := s.StageOf("c1")
	require.NoError(t, err)
	assert.Equal(t, model.StageQualified, st)
	checkSingleStage(t, s)
}

func TestImportDropsOrphanRecords(t *testing.T) {
	kept := model.NewClient("c1", "Ana", "ana@x.com")

	s := NewStore()
	s.Import(Snapshot{
		Clients:    []model.Client{kept},
		StageOrder: map[model.Stage][]string{model.StageLead: {"c1", "ghost"}},
		Notes:      []model.Note{model.NewNote("n1", "ghost", "orphan")},
	})

	assert.Len(t, s.ListClients(), 1)
	notes, err := s.ListNotes("c1", NoteFilter{})
	require.NoError(t, err)
	assert.Empty(t, notes)
	checkSingleStage(t, s)
}
