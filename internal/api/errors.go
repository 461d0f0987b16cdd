package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/jobdesk/internal/types"
)

// Messages shown for the failure classes that have no backend detail.
const (
	MsgNetwork      = "Unable to reach the server. Please check your connection."
	MsgUnauthorized = "Your session has expired. Please sign in again."
	MsgServer       = "The service is temporarily unavailable. Please try again."
)

// APIError is the single error type for failed backend calls.
// Status is 0 when the request never produced an HTTP response.
type APIError struct {
	Message string
	Status  int
	Data    map[string]any
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNetwork reports a transport failure.
func (e *APIError) IsNetwork() bool { return e.Status == 0 }

// IsUnauthorized reports a 401 or 403 response.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsServer reports a 5xx response.
func (e *APIError) IsServer() bool { return e.Status >= 500 }

// Detail returns the backend's detail string, if it sent one.
func (e *APIError) Detail() string {
	if e.Data == nil {
		return ""
	}
	s, _ := e.Data["detail"].(string)
	return s
}

// ValidationError reports a request rejected before it was sent.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validate runs struct validation and converts failures into a ValidationError.
func validate(req any) error {
	if err := types.ValidateStruct(req); err != nil {
		return &ValidationError{Message: types.ValidationMessage(err), Err: err}
	}
	return nil
}

// newHTTPError builds an APIError from a non-2xx response body.
func newHTTPError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var data map[string]any
	if len(body) > 0 && json.Unmarshal(body, &data) == nil {
		apiErr.Data = data
	}

	apiErr.Message = messageFromData(data)
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("Request failed with status %d", status)
	}
	return apiErr
}

// messageFromData extracts a message from a backend error body. A string
// detail is used verbatim; a list of validation items is joined.
func messageFromData(data map[string]any) string {
	if data == nil {
		return ""
	}
	switch detail := data["detail"].(type) {
	case string:
		return detail
	case []any:
		var msgs []string
		for _, item := range detail {
			if m, ok := item.(map[string]any); ok {
				if msg, ok := m["msg"].(string); ok {
					msgs = append(msgs, msg)
				}
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	if msg, ok := data["message"].(string); ok {
		return msg
	}
	return ""
}

// UserMessage returns the text to show inline for a failed action.
// fallback is used when the error carries nothing more specific.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	switch {
	case apiErr.IsNetwork():
		return MsgNetwork
	case apiErr.IsUnauthorized():
		return MsgUnauthorized
	case apiErr.IsServer():
		return MsgServer
	case apiErr.Detail() != "":
		return apiErr.Detail()
	case apiErr.Status >= 400 && apiErr.Message != "" && apiErr.Data != nil:
		return apiErr.Message
	default:
		return fallback
	}
}
