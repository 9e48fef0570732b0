package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateOutlineRequest struct {
	Topic          string    `json:"topic" validate:"required"`
	Time           string    `json:"time" validate:"required"`
	OrganizationId uuid.UUID `json:"organization_id" validate:"required"`
}

type ModuleResponse struct {
	Id        uuid.UUID `json:"uuid"`
	Name      string    `json:"name"`
	Duration  string    `json:"duration"`
	Subtopics []string  `json:"subtopics"`
	Features  []string  `json:"features"`
	Content   string    `json:"content,omitempty"`
	Order     int       `json:"order"`
}

type CourseResponse struct {
	Id             uuid.UUID        `json:"uuid"`
	Title          string           `json:"title"`
	Objectives     []string         `json:"objectives"`
	Duration       string           `json:"duration"`
	Summary        string           `json:"summary"`
	Status         string           `json:"status"`
	OrganizationId uuid.UUID        `json:"organization"`
	Modules        []ModuleResponse `json:"modules"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at"`
}

// PublishGeneratePageMessage is the queue payload for one page generation
// job.
type PublishGeneratePageMessage struct {
	ModuleId uuid.UUID `json:"module_id"`
	CourseId uuid.UUID `json:"course_id"`
}

type InitializePagesRequest struct {
	CourseId uuid.UUID `json:"course" validate:"required"`
}

type InitializePagesResponse struct {
	CourseId uuid.UUID `json:"course"`
	Queued   int       `json:"queued"`
}
