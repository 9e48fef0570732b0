package mapper

import (
	"time"

	"ai-courselab-be/internal/entity"
	"ai-courselab-be/internal/model"
)

type CourseMapper struct{}

func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func (m *CourseMapper) ToEntity(c *model.Course) *entity.Course {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Course{
		Id:             c.Id,
		Title:          c.Title,
		Objectives:     c.Objectives,
		Duration:       c.Duration,
		Summary:        c.Summary,
		Status:         c.Status,
		OrganizationId: c.OrganizationId,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *CourseMapper) ToModel(c *entity.Course) *model.Course {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Course{
		Id:             c.Id,
		Title:          c.Title,
		Objectives:     c.Objectives,
		Duration:       c.Duration,
		Summary:        c.Summary,
		Status:         c.Status,
		OrganizationId: c.OrganizationId,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *CourseMapper) ToEntities(courses []*model.Course) []*entity.Course {
	entities := make([]*entity.Course, len(courses))
	for i, c := range courses {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
