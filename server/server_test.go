package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

func newTestServer(t *testing.T, token string) *Server {
	t.Helper()
	return New(pipeline.NewStore(), token)
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createClient(t *testing.T, srv *Server, body string) model.Client {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/v1/clients", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c model.Client
	decode(t, rec, &c)
	return c
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, "")
	rec := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateClient(t *testing.T) {
	srv := newTestServer(t, "")
	c := createClient(t, srv, `{"name":"Ana Martín","email":"ana@retailplus.com","value":5000}`)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Ana Martín", c.Name)
	assert.Equal(t, model.StageLead, c.Status, "stage defaults to lead")
}

func TestCreateClientValidationBody(t *testing.T) {
	srv := newTestServer(t, "")
	rec := do(t, srv, http.MethodPost, "/api/v1/clients", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string `json:"error"`
		Fields []struct {
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"fields"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "validation failed", body.Error)

	fields := make([]string, len(body.Fields))
	for i, f := range body.Fields {
		fields[i] = f.Field
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
}

func TestGetClientNotFound(t *testing.T) {
	srv := newTestServer(t, "")
	rec := do(t, srv, http.MethodGet, "/api/v1/clients/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListClientsFiltered(t *testing.T) {
	srv := newTestServer(t, "")
	createClient(t, srv, `{"name":"Ana","email":"ana@retailplus.com","company":"RetailPlus"}`)
	createClient(t, srv, `{"name":"Carlos","email":"carlos@techflow.es","status":"qualified"}`)

	rec := do(t, srv, http.MethodGet, "/api/v1/clients?q=retailplus", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []model.Client
	decode(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Name)

	rec = do(t, srv, http.MethodGet, "/api/v1/clients?stage=qualified", "")
	decode(t, rec, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Carlos", got[0].Name)

	rec = do(t, srv, http.MethodGet, "/api/v1/clients?stage=limbo", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateClient(t *testing.T) {
	srv := newTestServer(t, "")
	c := createClient(t, srv, `{"name":"Ana","email":"ana@x.com"}`)

	rec := do(t, srv, http.MethodPatch, "/api/v1/clients/"+c.ID, `{"value":9000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Client
	decode(t, rec, &got)
	assert.Equal(t, 9000.0, got.Value)
	assert.Equal(t, "Ana", got.Name)

	rec = do(t, srv, http.MethodPatch, "/api/v1/clients/"+c.ID, `{"email":"broken"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteClient(t *testing.T) {
	srv := newTestServer(t, "")
	c := createClient(t, srv, `{"name":"Ana","email":"ana@x.com"}`)

	rec := do(t, srv, http.MethodDelete, "/api/v1/clients/"+c.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodDelete, "/api/v1/clients/"+c.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMoveClientAndBoard(t *testing.T) {
	srv := newTestServer(t, "")
	c := createClient(t, srv, `{"name":"Ana","email":"ana@x.com","value":5000}`)

	rec := do(t, srv, http.MethodPost, "/api/v1/clients/"+c.ID+"/move", `{"to":"qualified"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var moved model.Client
	decode(t, rec, &moved)
	assert.Equal(t, model.StageQualified, moved.Status)

	rec = do(t, srv, http.MethodPost, "/api/v1/clients/"+c.ID+"/move", `{"to":"limbo"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/v1/board", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var board map[model.Stage][]model.Client
	decode(t, rec, &board)
	assert.Empty(t, board[model.StageLead])
	assert.Len(t, board[model.StageQualified], 1)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, "")
	createClient(t, srv, `{"name":"Won","email":"w@x.com","value":1000,"status":"closed-won"}`)
	createClient(t, srv, `{"name":"Lost","email":"l@x.com","status":"closed-lost"}`)

	rec := do(t, srv, http.MethodGet, "/api/v1/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var m pipeline.Metrics
	decode(t, rec, &m)
	assert.Equal(t, 2, m.TotalClients)
	assert.Equal(t, 0.5, m.ConversionRate)
	assert.Equal(t, 500.0, m.AverageDealSize)
}

func TestTaskEndpoints(t *testing.T) {
	srv := newTestServer(t, "")
	c := createClient(t, srv, `{"name":"Ana","email":"ana@x.com"}`)

	rec := do(t, srv, http.MethodPost, "/api/v1/clients/"+c.ID+"/tasks",
		`{"title":"call back","due_date":"2020-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		model.Task
		Overdue bool `json:"overdue"`
	}
	decode(t, rec, &created)
	assert.True(t, created.Overdue, "due date in the past")

	rec = do(t, srv, http.MethodPost, "/api/v1/clients/"+c.ID+"/tasks/"+created.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled struct {
		model.Task
		Overdue bool `json:"overdue"`
	}
	decode(t, rec, &toggled)
	assert.Equal(t, model.TaskCompleted, toggled.Status)
	assert.False(t, toggled.Overdue)
}

func TestNoteEndpoints(t *testing.T) {
	srv := newTestServer(t, "")
	c := createClient(t, srv, `{"name":"Ana","email":"ana@x.com"}`)

	rec := do(t, srv, http.MethodPost, "/api/v1/clients/"+c.ID+"/notes", `{"content":"hola"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/v1/clients/"+c.ID+"/notes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var notes []model.Note
	decode(t, rec, &notes)
	assert.Len(t, notes, 1)

	rec = do(t, srv, http.MethodGet, "/api/v1/clients/nope/notes", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeedAndReset(t *testing.T) {
	srv := newTestServer(t, "")

	rec := do(t, srv, http.MethodPost, "/api/v1/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/v1/clients", "")
	var got []model.Client
	decode(t, rec, &got)
	assert.Len(t, got, 6)

	rec = do(t, srv, http.MethodPost, "/api/v1/reset", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/v1/clients", "")
	decode(t, rec, &got)
	assert.Empty(t, got)
}

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(t, "hunter2")

	rec := do(t, srv, http.MethodGet, "/api/v1/clients", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer hunter2")
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays open
	rec = do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
