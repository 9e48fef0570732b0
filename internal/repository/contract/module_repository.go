package contract

import (
	"context"

	"ai-courselab-be/internal/entity"
	"ai-courselab-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ModuleRepository interface {
	Create(ctx context.Context, module *entity.Module) error
	Update(ctx context.Context, module *entity.Module) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByCourseId(ctx context.Context, courseId uuid.UUID) error // Cascade delete
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Module, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Module, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
