package service

import (
	"context"
	"errors"

	"ai-courselab-be/internal/repository/specification"
	"ai-courselab-be/internal/repository/unitofwork"
	"ai-courselab-be/pkg/outline"
	"ai-courselab-be/pkg/store"

	"github.com/google/uuid"
)

type IPageService interface {
	// GetPageByCourse resolves the cursor for a course id alone, i.e. the
	// module with order 0.
	GetPageByCourse(ctx context.Context, courseId uuid.UUID) (*store.PageCursor, error)

	// GetPageByModule resolves the cursor for an explicit page id.
	GetPageByModule(ctx context.Context, moduleId uuid.UUID) (*store.PageCursor, error)

	// SeedPageRoom resolves a document room id, which may be either a course
	// id (open at the first page) or a module id (open at that page).
	SeedPageRoom(ctx context.Context, roomId uuid.UUID) (*store.DraftState, *store.PageCursor, error)
}

type pageService struct {
	uowFactory    unitofwork.RepositoryFactory
	courseService ICourseService
}

func NewPageService(uowFactory unitofwork.RepositoryFactory, courseService ICourseService) IPageService {
	return &pageService{
		uowFactory:    uowFactory,
		courseService: courseService,
	}
}

func (p *pageService) GetPageByCourse(ctx context.Context, courseId uuid.UUID) (*store.PageCursor, error) {
	draft, err := p.courseService.SeedDraft(ctx, courseId)
	if err != nil {
		return nil, err
	}
	return outline.ResolveFirst(draft)
}

func (p *pageService) GetPageByModule(ctx context.Context, moduleId uuid.UUID) (*store.PageCursor, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)

	module, err := uow.ModuleRepository().FindOne(ctx, specification.ByID{ID: moduleId})
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, outline.ErrModuleNotFound
	}

	draft, err := p.courseService.SeedDraft(ctx, module.CourseId)
	if err != nil {
		return nil, err
	}
	return outline.ResolveCursor(draft, moduleId)
}

func (p *pageService) SeedPageRoom(ctx context.Context, roomId uuid.UUID) (*store.DraftState, *store.PageCursor, error) {
	// A document room id is a course id or a module id; try the course
	// interpretation first.
	draft, err := p.courseService.SeedDraft(ctx, roomId)
	if err == nil {
		cursor, err := outline.ResolveFirst(draft)
		if err != nil {
			return nil, nil, err
		}
		return draft, cursor, nil
	}
	if !errors.Is(err, ErrCourseNotFound) {
		return nil, nil, err
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	module, err := uow.ModuleRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return nil, nil, err
	}
	if module == nil {
		return nil, nil, outline.ErrModuleNotFound
	}

	draft, err = p.courseService.SeedDraft(ctx, module.CourseId)
	if err != nil {
		return nil, nil, err
	}
	cursor, err := outline.ResolveCursor(draft, roomId)
	if err != nil {
		return nil, nil, err
	}
	return draft, cursor, nil
}
