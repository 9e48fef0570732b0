package entity

import (
	"time"

	"github.com/google/uuid"
)

// Module belongs to exactly one course. Order is unique within a course and
// contiguous 0..N-1 at rest; the committer renumbers it on every save.
type Module struct {
	Id        uuid.UUID
	Name      string
	Duration  string
	Subtopics []string
	Features  []string
	Content   string
	Order     int
	CourseId  uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}
