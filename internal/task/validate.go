package task

import (
	"strings"

	"github.com/taskdeck/taskdeck/internal/clierr"
)

// Validate checks the task for form-level errors. Only the title is
// enforced; out-of-range scores or negative effort are accepted and
// merely produce an unexpected priority score.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return clierr.New(clierr.InvalidInput, "title is required")
	}
	return nil
}

// Validate checks the draft for form-level errors, mirroring Task.Validate.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return clierr.New(clierr.InvalidInput, "title is required")
	}
	return nil
}

// ValidateTaskID returns a CLIError for invalid task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// ValidateBoundaryError returns a CLIError for moves past the first or
// last column.
func ValidateBoundaryError(id int64, status Status, direction string) *clierr.Error {
	return clierr.Newf(clierr.BoundaryError,
		"task #%d is already at the %s status (%s)", id, direction, status).
		WithDetails(map[string]any{
			"id":        id,
			"status":    status.String(),
			"direction": direction,
		})
}
