package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "COURSE_SAVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent carries the common fields; concrete events are built through the
// constructors below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewCourseSaved fires when a room draft is committed to the store.
func NewCourseSaved(courseID uuid.UUID, moduleCount int) Event {
	return BaseEvent{
		Type: "COURSE_SAVED",
		Data: map[string]interface{}{
			"course_id":    courseID.String(),
			"module_count": moduleCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewCoursePublished fires on the explicit publish transition.
func NewCoursePublished(courseID uuid.UUID) Event {
	return BaseEvent{
		Type: "COURSE_PUBLISHED",
		Data: map[string]interface{}{
			"course_id": courseID.String(),
		},
		OccurredAt: time.Now(),
	}
}

// NewCourseDeleted fires on administrative delete (modules cascade).
func NewCourseDeleted(courseID uuid.UUID) Event {
	return BaseEvent{
		Type: "COURSE_DELETED",
		Data: map[string]interface{}{
			"course_id": courseID.String(),
		},
		OccurredAt: time.Now(),
	}
}
