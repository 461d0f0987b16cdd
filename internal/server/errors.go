// Package server is the local jobdesk console: an ATS analysis proxy, a
// per-user kanban board and SVG chart endpoints.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/jobdesk/internal/api"
)

// ErrNotFound indicates a board job that does not exist.
type ErrNotFound struct {
	JobID int64
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("job not found: %d", e.JobID)
}

// ErrNoDrag indicates a drop without a preceding drag.
type ErrNoDrag struct{}

func (e *ErrNoDrag) Error() string {
	return "no job is being dragged"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Backend failures keep their 4xx status; unreachable or failing backends
// become 502.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrNoDrag:
		return http.StatusConflict
	case *ErrValidation:
		return http.StatusBadRequest
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsNetwork() || apiErr.IsServer() {
			return http.StatusBadGateway
		}
		return apiErr.Status
	}
	var valErr *api.ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
