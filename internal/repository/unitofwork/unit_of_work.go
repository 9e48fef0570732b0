package unitofwork

import (
	"context"

	"ai-courselab-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CourseRepository() contract.CourseRepository
	ModuleRepository() contract.ModuleRepository
}
