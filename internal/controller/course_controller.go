package controller

import (
	"ai-courselab-be/internal/dto"
	"ai-courselab-be/internal/pkg/serverutils"
	"ai-courselab-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	CreateOutline(ctx *fiber.Ctx) error
	GetCourse(ctx *fiber.Ctx) error
	GetPage(ctx *fiber.Ctx) error
	InitializePages(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type courseController struct {
	courseService service.ICourseService
	pageService   service.IPageService
}

func NewCourseController(courseService service.ICourseService, pageService service.IPageService) ICourseController {
	return &courseController{
		courseService: courseService,
		pageService:   pageService,
	}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/course/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("create-outline", c.CreateOutline)
	h.Get("get-course", c.GetCourse)
	h.Get("get-page", c.GetPage)
	h.Post("initialize-pages", c.InitializePages)
	h.Patch(":id/publish", c.Publish)
	h.Delete(":id", c.Delete)
}

func (c *courseController) CreateOutline(ctx *fiber.Ctx) error {
	var req dto.CreateOutlineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.courseService.CreateOutline(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create outline", res))
}

func (c *courseController) GetCourse(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Query("course"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	res, err := c.courseService.GetCourse(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show course", res))
}

// GetPage resolves a paging cursor. Either ?course=<uuid> (opens the first
// page) or ?currentPage=<uuid> (opens that page) must be given.
func (c *courseController) GetPage(ctx *fiber.Ctx) error {
	if courseParam := ctx.Query("course"); courseParam != "" {
		courseId, err := uuid.Parse(courseParam)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
		}
		res, err := c.pageService.GetPageByCourse(ctx.Context(), courseId)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success show page", res))
	}

	pageParam := ctx.Query("currentPage")
	if pageParam == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Provide 'course' or 'currentPage'")
	}
	pageId, err := uuid.Parse(pageParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid page id")
	}

	res, err := c.pageService.GetPageByModule(ctx.Context(), pageId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show page", res))
}

func (c *courseController) InitializePages(ctx *fiber.Ctx) error {
	var req dto.InitializePagesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.courseService.InitializePages(ctx.Context(), req.CourseId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue page generation", res))
}

func (c *courseController) Publish(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	res, err := c.courseService.Publish(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success publish course", res))
}

func (c *courseController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	if err := c.courseService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete course", nil))
}
