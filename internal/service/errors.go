package service

import (
	"errors"
	"fmt"
)

// ErrCourseNotFound signals an id that resolves to no stored course.
var ErrCourseNotFound = errors.New("course not found")

// ValidationError reports a malformed draft or commit payload. Reported to
// the caller, never silently corrected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}
