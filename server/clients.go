package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

func (s *Server) handleCreateClient(c echo.Context) error {
	var in pipeline.ClientInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	client, err := s.store.CreateClient(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, client)
}

// handleListClients supports q (free text), stage and potential query
// filters, AND-combined.
func (s *Server) handleListClients(c echo.Context) error {
	f := pipeline.ClientFilter{
		Text:      c.QueryParam("q"),
		Stage:     model.Stage(c.QueryParam("stage")),
		Potential: model.Potential(c.QueryParam("potential")),
	}
	if f.Stage != "" && !f.Stage.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown stage"})
	}
	if f.Potential != "" && !f.Potential.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown potential"})
	}
	return c.JSON(http.StatusOK, s.store.Search(f))
}

func (s *Server) handleGetClient(c echo.Context) error {
	client, err := s.store.GetClient(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

func (s *Server) handleUpdateClient(c echo.Context) error {
	var p pipeline.ClientPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	client, err := s.store.UpdateClient(c.Param("id"), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

func (s *Server) handleDeleteClient(c echo.Context) error {
	if err := s.store.DeleteClient(c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type moveRequest struct {
	To model.Stage `json:"to"`
}

// handleMoveClient moves a client to another stage. The source stage
// is the client's current one; a stale client id comes back 404.
func (s *Server) handleMoveClient(c echo.Context) error {
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if !req.To.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown stage"})
	}

	id := c.Param("id")
	from, err := s.store.StageOf(id)
	if err != nil {
		return writeError(c, err)
	}
	if err := s.store.MoveClient(id, from, req.To); err != nil {
		return writeError(c, err)
	}
	client, err := s.store.GetClient(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// handleBoard returns all stages with their clients in bucket order.
func (s *Server) handleBoard(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Board())
}

func (s *Server) handleMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Metrics())
}

func (s *Server) handleSeed(c echo.Context) error {
	s.store.Reset()
	if err := s.store.Seed(); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"clients": s.store.Metrics().TotalClients})
}

func (s *Server) handleReset(c echo.Context) error {
	s.store.Reset()
	return c.NoContent(http.StatusNoContent)
}
