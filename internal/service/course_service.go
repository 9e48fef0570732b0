package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-courselab-be/internal/dto"
	"ai-courselab-be/internal/entity"
	"ai-courselab-be/internal/repository/specification"
	"ai-courselab-be/internal/repository/unitofwork"
	"ai-courselab-be/pkg/events"
	pktNats "ai-courselab-be/pkg/nats"
	"ai-courselab-be/pkg/scribo"
	"ai-courselab-be/pkg/store"

	"github.com/google/uuid"
)

type ICourseService interface {
	CreateOutline(ctx context.Context, req *dto.CreateOutlineRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error)
	Publish(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// InitializePages queues one page generation job per module that has no
	// lesson text yet.
	InitializePages(ctx context.Context, courseId uuid.UUID) (*dto.InitializePagesResponse, error)

	// SeedDraft projects a stored course into the denormalized working copy
	// a room edits.
	SeedDraft(ctx context.Context, courseId uuid.UUID) (*store.DraftState, error)

	// Commit persists a room draft: scalar fields are validated, every
	// module gets order = its draft list position, modules absent from the
	// draft are deleted from the store.
	Commit(ctx context.Context, draft *store.DraftState) (*dto.CourseResponse, error)
}

type courseService struct {
	uowFactory       unitofwork.RepositoryFactory
	generator        scribo.OutlineGenerator
	publisherService IPublisherService
	natsPub          *pktNats.Publisher
}

func NewCourseService(
	uowFactory unitofwork.RepositoryFactory,
	generator scribo.OutlineGenerator,
	publisherService IPublisherService,
	natsPub *pktNats.Publisher,
) ICourseService {
	return &courseService{
		uowFactory:       uowFactory,
		generator:        generator,
		publisherService: publisherService,
		natsPub:          natsPub,
	}
}

func (c *courseService) CreateOutline(ctx context.Context, req *dto.CreateOutlineRequest) (*dto.CourseResponse, error) {
	outline, err := c.generator.GenerateOutline(ctx, req.Topic, req.Time)
	if err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	course := entity.Course{
		Id:             uuid.New(),
		Title:          outline.Title,
		Objectives:     outline.Objectives,
		Duration:       outline.Duration,
		Summary:        outline.Summary,
		Status:         store.StatusTemp,
		OrganizationId: req.OrganizationId,
		CreatedAt:      time.Now(),
	}
	if err := uow.CourseRepository().Create(ctx, &course); err != nil {
		uow.Rollback()
		return nil, err
	}

	modules := make([]*entity.Module, 0, len(outline.Modules))
	for i, gm := range outline.Modules {
		module := entity.Module{
			Id:        uuid.New(),
			Name:      gm.Name,
			Duration:  gm.Duration,
			Subtopics: gm.Subtopics,
			Features:  gm.Features,
			Order:     i,
			CourseId:  course.Id,
			CreatedAt: time.Now(),
		}
		if err := uow.ModuleRepository().Create(ctx, &module); err != nil {
			uow.Rollback()
			return nil, err
		}
		modules = append(modules, &module)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return toCourseResponse(&course, modules), nil
}

func (c *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	modules, err := uow.ModuleRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: id},
		specification.OrderByModuleOrder{},
	)
	if err != nil {
		return nil, err
	}

	return toCourseResponse(course, modules), nil
}

func (c *courseService) Publish(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	course.Status = store.StatusPublished
	if err := uow.CourseRepository().Update(ctx, course); err != nil {
		return nil, err
	}

	c.publishEvent(ctx, events.NewCoursePublished(course.Id))

	modules, err := uow.ModuleRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: id},
		specification.OrderByModuleOrder{},
	)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(course, modules), nil
}

func (c *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		uow.Rollback()
		return err
	}
	if course == nil {
		uow.Rollback()
		return ErrCourseNotFound
	}

	// Modules cascade with their course
	if err := uow.ModuleRepository().DeleteAllByCourseId(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.CourseRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	c.publishEvent(ctx, events.NewCourseDeleted(id))
	return nil
}

func (c *courseService) InitializePages(ctx context.Context, courseId uuid.UUID) (*dto.InitializePagesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	modules, err := uow.ModuleRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderByModuleOrder{},
	)
	if err != nil {
		return nil, err
	}

	queued := 0
	for _, m := range modules {
		if m.Content != "" {
			continue
		}
		payload, err := json.Marshal(dto.PublishGeneratePageMessage{
			ModuleId: m.Id,
			CourseId: courseId,
		})
		if err != nil {
			return nil, err
		}
		if err := c.publisherService.Publish(ctx, payload); err != nil {
			return nil, err
		}
		queued++
	}

	return &dto.InitializePagesResponse{CourseId: courseId, Queued: queued}, nil
}

func (c *courseService) SeedDraft(ctx context.Context, courseId uuid.UUID) (*store.DraftState, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: courseId})
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	modules, err := uow.ModuleRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderByModuleOrder{},
	)
	if err != nil {
		return nil, err
	}

	draft := &store.DraftState{
		Uuid:         course.Id,
		Title:        course.Title,
		Objectives:   course.Objectives,
		Duration:     course.Duration,
		Summary:      course.Summary,
		Status:       course.Status,
		Organization: course.OrganizationId,
		Modules:      make([]store.DraftModule, len(modules)),
	}
	for i, m := range modules {
		draft.Modules[i] = store.DraftModule{
			Uuid:      m.Id,
			Name:      m.Name,
			Duration:  m.Duration,
			Subtopics: m.Subtopics,
			Features:  m.Features,
			Content:   m.Content,
			Order:     m.Order,
		}
	}
	return draft, nil
}

func (c *courseService) Commit(ctx context.Context, draft *store.DraftState) (*dto.CourseResponse, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: draft.Uuid})
	if err != nil {
		uow.Rollback()
		return nil, err
	}
	if course == nil {
		uow.Rollback()
		return nil, &ValidationError{Field: "uuid", Reason: "references a course that does not exist"}
	}

	course.Title = draft.Title
	course.Objectives = draft.Objectives
	course.Duration = draft.Duration
	course.Summary = draft.Summary
	if course.Status == store.StatusTemp {
		// First collaborative save promotes a generated course to a draft
		course.Status = store.StatusDraft
	}
	if err := uow.CourseRepository().Update(ctx, course); err != nil {
		uow.Rollback()
		return nil, err
	}

	existing, err := uow.ModuleRepository().FindAll(ctx, specification.ByCourseID{CourseID: course.Id})
	if err != nil {
		uow.Rollback()
		return nil, err
	}
	known := make(map[uuid.UUID]*entity.Module, len(existing))
	for _, m := range existing {
		known[m.Id] = m
	}

	// Upsert by id; order is the draft list position, 0-based
	saved := make([]*entity.Module, 0, len(draft.Modules))
	inDraft := make(map[uuid.UUID]struct{}, len(draft.Modules))
	for i, dm := range draft.Modules {
		inDraft[dm.Uuid] = struct{}{}
		if prev, ok := known[dm.Uuid]; ok {
			prev.Name = dm.Name
			prev.Duration = dm.Duration
			prev.Subtopics = dm.Subtopics
			prev.Features = dm.Features
			prev.Content = dm.Content
			prev.Order = i
			if err := uow.ModuleRepository().Update(ctx, prev); err != nil {
				uow.Rollback()
				return nil, err
			}
			saved = append(saved, prev)
			continue
		}

		module := entity.Module{
			Id:        dm.Uuid,
			Name:      dm.Name,
			Duration:  dm.Duration,
			Subtopics: dm.Subtopics,
			Features:  dm.Features,
			Content:   dm.Content,
			Order:     i,
			CourseId:  course.Id,
			CreatedAt: time.Now(),
		}
		if module.Id == uuid.Nil {
			module.Id = uuid.New()
		}
		if err := uow.ModuleRepository().Create(ctx, &module); err != nil {
			uow.Rollback()
			return nil, err
		}
		saved = append(saved, &module)
	}

	// Modules dropped from the draft are deleted from the store
	for _, m := range existing {
		if _, ok := inDraft[m.Id]; !ok {
			if err := uow.ModuleRepository().Delete(ctx, m.Id); err != nil {
				uow.Rollback()
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	c.publishEvent(ctx, events.NewCourseSaved(course.Id, len(saved)))

	return toCourseResponse(course, saved), nil
}

func (c *courseService) publishEvent(ctx context.Context, event events.Event) {
	if c.natsPub == nil {
		return
	}
	if err := c.natsPub.Publish(ctx, event); err != nil {
		log.Printf("[WARN] Failed to publish %s: %v", event.EventType(), err)
	}
}

func validateDraft(draft *store.DraftState) error {
	if draft == nil {
		return &ValidationError{Field: "draft", Reason: "is missing"}
	}
	if draft.Uuid == uuid.Nil {
		return &ValidationError{Field: "uuid", Reason: "is required"}
	}
	if draft.Title == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	switch draft.Status {
	case "", store.StatusTemp, store.StatusDraft, store.StatusPublished:
	default:
		return &ValidationError{Field: "status", Reason: "is not a known state"}
	}
	for i, m := range draft.Modules {
		if m.Name == "" {
			return &ValidationError{Field: "modules", Reason: fmt.Sprintf("entry at position %d has no name", i)}
		}
	}
	return nil
}

func toCourseResponse(course *entity.Course, modules []*entity.Module) *dto.CourseResponse {
	res := &dto.CourseResponse{
		Id:             course.Id,
		Title:          course.Title,
		Objectives:     course.Objectives,
		Duration:       course.Duration,
		Summary:        course.Summary,
		Status:         course.Status,
		OrganizationId: course.OrganizationId,
		Modules:        make([]dto.ModuleResponse, len(modules)),
		CreatedAt:      course.CreatedAt,
		UpdatedAt:      course.UpdatedAt,
	}
	for i, m := range modules {
		res.Modules[i] = dto.ModuleResponse{
			Id:        m.Id,
			Name:      m.Name,
			Duration:  m.Duration,
			Subtopics: m.Subtopics,
			Features:  m.Features,
			Content:   m.Content,
			Order:     m.Order,
		}
	}
	return res
}
