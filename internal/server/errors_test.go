package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobdesk/internal/api"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "job not found: 7", (&ErrNotFound{JobID: 7}).Error())
	assert.Equal(t, "no job is being dragged", (&ErrNoDrag{}).Error())
	assert.Equal(t, "validation error: stage - unknown", (&ErrValidation{Field: "stage", Message: "unknown"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &ErrNotFound{JobID: 1}, http.StatusNotFound},
		{"no drag", &ErrNoDrag{}, http.StatusConflict},
		{"validation", &ErrValidation{Field: "f"}, http.StatusBadRequest},
		{"backend 404", &api.APIError{Status: 404, Message: "Not found"}, http.StatusNotFound},
		{"backend 401", &api.APIError{Status: 401}, http.StatusUnauthorized},
		{"backend 503", &api.APIError{Status: 503}, http.StatusBadGateway},
		{"network", &api.APIError{Message: api.MsgNetwork}, http.StatusBadGateway},
		{"wrapped backend", fmt.Errorf("load: %w", &api.APIError{Status: 422}), http.StatusUnprocessableEntity},
		{"client validation", &api.ValidationError{Message: "Company is required"}, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
