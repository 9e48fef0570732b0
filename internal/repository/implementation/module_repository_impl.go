package implementation

import (
	"context"
	"errors"

	"ai-courselab-be/internal/entity"
	"ai-courselab-be/internal/mapper"
	"ai-courselab-be/internal/model"
	"ai-courselab-be/internal/repository/contract"
	"ai-courselab-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModuleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ModuleMapper
}

func NewModuleRepository(db *gorm.DB) contract.ModuleRepository {
	return &ModuleRepositoryImpl{
		db:     db,
		mapper: mapper.NewModuleMapper(),
	}
}

func (r *ModuleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ModuleRepositoryImpl) Create(ctx context.Context, module *entity.Module) error {
	m := r.mapper.ToModel(module)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*module = *r.mapper.ToEntity(m)
	return nil
}

func (r *ModuleRepositoryImpl) Update(ctx context.Context, module *entity.Module) error {
	m := r.mapper.ToModel(module)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*module = *r.mapper.ToEntity(m)
	return nil
}

func (r *ModuleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Module{}, id).Error
}

func (r *ModuleRepositoryImpl) DeleteAllByCourseId(ctx context.Context, courseId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("course_id = ?", courseId).Delete(&model.Module{}).Error
}

func (r *ModuleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Module, error) {
	var m model.Module
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ModuleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Module, error) {
	var models []*model.Module
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ModuleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Module{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
