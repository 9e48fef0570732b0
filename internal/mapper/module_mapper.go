package mapper

import (
	"time"

	"ai-courselab-be/internal/entity"
	"ai-courselab-be/internal/model"
)

type ModuleMapper struct{}

func NewModuleMapper() *ModuleMapper {
	return &ModuleMapper{}
}

func (m *ModuleMapper) ToEntity(mod *model.Module) *entity.Module {
	if mod == nil {
		return nil
	}

	var updatedAt *time.Time
	if !mod.UpdatedAt.IsZero() {
		t := mod.UpdatedAt
		updatedAt = &t
	}

	return &entity.Module{
		Id:        mod.Id,
		Name:      mod.Name,
		Duration:  mod.Duration,
		Subtopics: mod.Subtopics,
		Features:  mod.Features,
		Content:   mod.Content,
		Order:     mod.Order,
		CourseId:  mod.CourseId,
		CreatedAt: mod.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ModuleMapper) ToModel(mod *entity.Module) *model.Module {
	if mod == nil {
		return nil
	}

	var updatedAt time.Time
	if mod.UpdatedAt != nil {
		updatedAt = *mod.UpdatedAt
	}

	return &model.Module{
		Id:        mod.Id,
		Name:      mod.Name,
		Duration:  mod.Duration,
		Subtopics: mod.Subtopics,
		Features:  mod.Features,
		Content:   mod.Content,
		Order:     mod.Order,
		CourseId:  mod.CourseId,
		CreatedAt: mod.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ModuleMapper) ToEntities(modules []*model.Module) []*entity.Module {
	entities := make([]*entity.Module, len(modules))
	for i, mod := range modules {
		entities[i] = m.ToEntity(mod)
	}
	return entities
}
