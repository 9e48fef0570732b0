package entity

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id             uuid.UUID
	Title          string
	Objectives     []string
	Duration       string
	Summary        string
	Status         string
	OrganizationId uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
