package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/statusdeck/internal/domain/project"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unmapped errors yield nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for known ids"}
	case errors.Is(err, project.ErrUpdateNotFound):
		return &APIError{Code: "UPDATE_NOT_FOUND", Message: "weekly update not found", RecoveryHint: "Call get_project to see its updates"}
	case errors.Is(err, project.ErrInvalidProgress):
		return &APIError{Code: "INVALID_PROGRESS", Message: "progress must be between 0 and 100"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

// asToolError converts a store error into the error surfaced to clients,
// passing unmapped errors through unchanged.
func asToolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func invalidInput(format string, args ...any) *APIError {
	return &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf(format, args...)}
}

func invalidDate(field, value string) *APIError {
	return &APIError{
		Code:         "INVALID_DATE",
		Message:      fmt.Sprintf("%s %q is not a valid ISO date", field, value),
		RecoveryHint: "Use YYYY-MM-DD",
	}
}

func duplicateWeek(projectID, weekStart string) *APIError {
	return &APIError{
		Code:         "DUPLICATE_WEEK",
		Message:      fmt.Sprintf("project %s already has an update for the week of %s", projectID, weekStart),
		RecoveryHint: "Edit the existing update with edit_update or pick another week",
	}
}
