package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emprendo/copiloto/internal/model"
	"github.com/emprendo/copiloto/internal/pipeline"
)

// Notes

func (s *Server) handleAddNote(c echo.Context) error {
	var in pipeline.NoteInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	n, err := s.store.AddNote(c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (s *Server) handleListNotes(c echo.Context) error {
	f := pipeline.NoteFilter{
		Type:     model.NoteType(c.QueryParam("type")),
		Priority: model.Priority(c.QueryParam("priority")),
	}
	notes, err := s.store.ListNotes(c.Param("id"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

func (s *Server) handleUpdateNote(c echo.Context) error {
	var p pipeline.NotePatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	n, err := s.store.UpdateNote(c.Param("id"), c.Param("noteID"), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

func (s *Server) handleRemoveNote(c echo.Context) error {
	if err := s.store.RemoveNote(c.Param("id"), c.Param("noteID")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Tasks

func (s *Server) handleAddTask(c echo.Context) error {
	var in pipeline.TaskInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	t, err := s.store.AddTask(c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, viewTask(t))
}

// taskView adds the derived overdue flag to a task response.
type taskView struct {
	model.Task
	Overdue bool `json:"overdue"`
}

func viewTask(t model.Task) taskView {
	return taskView{Task: t, Overdue: t.IsOverdue()}
}

func (s *Server) handleListTasks(c echo.Context) error {
	f := pipeline.TaskFilter{
		Type:     model.TaskType(c.QueryParam("type")),
		Priority: model.Priority(c.QueryParam("priority")),
		Status:   model.TaskStatus(c.QueryParam("status")),
	}
	tasks, err := s.store.ListTasks(c.Param("id"), f)
	if err != nil {
		return writeError(c, err)
	}
	views := make([]taskView, len(tasks))
	for i, t := range tasks {
		views[i] = viewTask(t)
	}
	return c.JSON(http.StatusOK, views)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var p pipeline.TaskPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	t, err := s.store.UpdateTask(c.Param("id"), c.Param("taskID"), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewTask(t))
}

func (s *Server) handleRemoveTask(c echo.Context) error {
	if err := s.store.RemoveTask(c.Param("id"), c.Param("taskID")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleToggleTask(c echo.Context) error {
	t, err := s.store.ToggleComplete(c.Param("id"), c.Param("taskID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewTask(t))
}

// Communications

func (s *Server) handleAddComm(c echo.Context) error {
	var in pipeline.CommInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	cm, err := s.store.AddCommunication(c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, cm)
}

func (s *Server) handleListComms(c echo.Context) error {
	f := pipeline.CommFilter{
		Type:     model.CommType(c.QueryParam("type")),
		Status:   model.CommStatus(c.QueryParam("status")),
		Priority: model.Priority(c.QueryParam("priority")),
	}
	comms, err := s.store.ListCommunications(c.Param("id"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comms)
}

func (s *Server) handleUpdateComm(c echo.Context) error {
	var p pipeline.CommPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	cm, err := s.store.UpdateCommunication(c.Param("id"), c.Param("commID"), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cm)
}

func (s *Server) handleRemoveComm(c echo.Context) error {
	if err := s.store.RemoveCommunication(c.Param("id"), c.Param("commID")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
