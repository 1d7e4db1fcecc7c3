package presenter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"github.com/totegamma/jobtrack/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type partialSyncResponse struct {
	Error         string `json:"error"`
	ApplicationID string `json:"applicationId"`
	Stage         string `json:"stage"`
	Retry         string `json:"retry"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

// Cached writes payload with an ETag and answers 304 when the client
// already holds the same body.
func Cached(c echo.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return InternalError(c, err)
	}

	etag := fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSONBlob(http.StatusOK, body)
}

func BadRequest(c echo.Context, err error) error {
	slog.DebugContext(c.Request().Context(), "bad request", slog.String("error", err.Error()), slog.String("module", "rest"))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func Unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func InternalError(c echo.Context, err error) error {
	slog.ErrorContext(c.Request().Context(), "internal error", slog.String("error", err.Error()), slog.String("module", "rest"))
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// Error maps a domain error kind onto its status code.
func Error(c echo.Context, err error) error {
	var partial domain.PartialSyncError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return BadRequest(c, err)
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, err.Error())
	case errors.As(err, &partial):
		slog.WarnContext(
			c.Request().Context(), "partial synchronization",
			slog.String("error", err.Error()),
			slog.String("applicationId", partial.ApplicationID),
			slog.String("module", "rest"),
		)
		return c.JSON(http.StatusConflict, partialSyncResponse{
			Error:         err.Error(),
			ApplicationID: partial.ApplicationID,
			Stage:         string(partial.Stage),
			Retry:         fmt.Sprintf("PUT /api/v1/applications/%s/contacts", partial.ApplicationID),
		})
	default:
		return InternalError(c, err)
	}
}
