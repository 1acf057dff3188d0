// AngelaMos | 2026
// response.go

package core

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

const internalMessage = "Something went wrong"

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(data)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageResponse{Message: message})
}

// JSONError renders err. Anything that is not an *AppError becomes a
// generic 500 so internals never reach the client.
func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = InternalError(err, internalMessage)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		slog.Error("request failed",
			"code", appErr.Code,
			"error", appErr.Err,
		)
	}

	JSON(w, appErr.StatusCode, ErrorResponse{
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

func InternalServerError(w http.ResponseWriter, err error) {
	JSONError(w, InternalError(err, internalMessage))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource))
}

func Unauthorized(w http.ResponseWriter) {
	JSONError(w, UnauthorizedError())
}
