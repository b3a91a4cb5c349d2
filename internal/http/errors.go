package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var notFound *content.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: notFound.Error()}
	}

	switch {
	case errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	case errors.Is(err, content.ErrInvalidInput), errors.Is(err, generator.ErrUnsupportedLocale):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := "http_error"
		if he.Code == http.StatusNotFound {
			code = "not_found"
		}
		return he.Code, errorResponse{Error: code, Message: fmt.Sprintf("%v", he.Message)}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "internal server error"}
}

// ErrorHandler renders errors as JSON. Invalid input and missing content are
// both reported as 404.
func ErrorHandler(logger interfaces.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, payload := mapError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("http.unhandled_error", "error", err, "path", c.Request().URL.Path)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, payload)
	}
}
