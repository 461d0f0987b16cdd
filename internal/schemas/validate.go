// Package schemas validates JSON documents against the embedded schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/jobdesk/internal/types"
	schemadocs "github.com/jonathan/jobdesk/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)", gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent))
}

// ValidateDocument validates data against one of the embedded schemas.
func ValidateDocument(schemaName string, data []byte) error {
	schema, err := schemadocs.FS.ReadFile(schemaName)
	if err != nil {
		return &SchemaLoadError{Path: schemaName, Message: "schema not embedded", Cause: err}
	}
	return validate(schemaName, gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(data))
}

func validate(path string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    path,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// ValidateCVContent checks a CV content document.
func ValidateCVContent(data []byte) error {
	return ValidateDocument(schemadocs.CVContent, data)
}

// LoadCreateCVRequest reads a CV import file: either a full create request
// ({"title", "template_id", "content"}) or bare content, in which case
// title must be supplied.
func LoadCreateCVRequest(path, title string) (*types.CreateCVRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	req := &types.CreateCVRequest{}
	content := data
	if _, ok := top["content"]; ok {
		if err := ValidateDocument(schemadocs.CreateCV, data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, req); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		content = top["content"]
	} else if err := json.Unmarshal(data, &req.Content); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := ValidateCVContent(content); err != nil {
		return nil, err
	}
	if title != "" {
		req.Title = title
	}
	return req, nil
}

// LoadCreateJobRequest reads a job application document for bulk import.
func LoadCreateJobRequest(path string) (*types.CreateJobRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := ValidateDocument(schemadocs.Job, data); err != nil {
		return nil, err
	}
	req := &types.CreateJobRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return req, nil
}
