// Package server exposes the pipeline over an HTTP API. It is a thin
// presentation boundary: every route maps onto one store operation and
// no business logic lives here.
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/emprendo/copiloto/internal/pipeline"
)

// Server is the pipeline API server. Its store lives for the server's
// lifetime only; state is deliberately in-memory.
type Server struct {
	store *pipeline.Store
	token string // optional static bearer token; empty disables auth
	echo  *echo.Echo
}

// New creates a new server around a store.
func New(store *pipeline.Store, token string) *Server {
	s := &Server{
		store: store,
		token: token,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	e.Use(s.loggingMiddleware)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")
	if s.token != "" {
		api.Use(s.authMiddleware)
	}

	api.POST("/clients", s.handleCreateClient)
	api.GET("/clients", s.handleListClients)
	api.GET("/clients/:id", s.handleGetClient)
	api.PATCH("/clients/:id", s.handleUpdateClient)
	api.DELETE("/clients/:id", s.handleDeleteClient)
	api.POST("/clients/:id/move", s.handleMoveClient)

	api.POST("/clients/:id/notes", s.handleAddNote)
	api.GET("/clients/:id/notes", s.handleListNotes)
	api.PATCH("/clients/:id/notes/:noteID", s.handleUpdateNote)
	api.DELETE("/clients/:id/notes/:noteID", s.handleRemoveNote)

	api.POST("/clients/:id/tasks", s.handleAddTask)
	api.GET("/clients/:id/tasks", s.handleListTasks)
	api.PATCH("/clients/:id/tasks/:taskID", s.handleUpdateTask)
	api.DELETE("/clients/:id/tasks/:taskID", s.handleRemoveTask)
	api.POST("/clients/:id/tasks/:taskID/toggle", s.handleToggleTask)

	api.POST("/clients/:id/comms", s.handleAddComm)
	api.GET("/clients/:id/comms", s.handleListComms)
	api.PATCH("/clients/:id/comms/:commID", s.handleUpdateComm)
	api.DELETE("/clients/:id/comms/:commID", s.handleRemoveComm)

	api.GET("/board", s.handleBoard)
	api.GET("/metrics", s.handleMetrics)
	api.POST("/seed", s.handleSeed)
	api.POST("/reset", s.handleReset)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
