package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/emprendo/copiloto/internal/logger"
	"github.com/emprendo/copiloto/internal/pipeline"
)

// loggingMiddleware logs every request and response with timing.
func (s *Server) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)

		res := c.Response()
		logger.Info("HTTP request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("remote", req.RemoteAddr),
			logger.F("status", res.Status),
			logger.F("duration", time.Since(start).String()))

		return err
	}
}

// authMiddleware checks the static bearer token. Real accounts and
// sessions are out of scope; this only gates a deployment exposed
// beyond localhost.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authorization required"})
		}
		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth || token != s.token {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
		}
		return next(c)
	}
}

// writeError maps pipeline errors onto HTTP statuses. Validation and
// not-found are expected user-facing outcomes; an invariant violation
// is a bug and gets logged before the 409 goes out.
func writeError(c echo.Context, err error) error {
	var ve *pipeline.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
	case pipeline.IsNotFound(err):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case pipeline.IsInvariant(err):
		logger.Error("invariant violation", logger.F("error", err))
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		logger.Error("internal error", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
