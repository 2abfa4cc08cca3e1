package controller

import (
	"conote-be/internal/dto"
	"conote-be/internal/pkg/serverutils"
	"conote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBookmarkController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type bookmarkController struct {
	bookmarkService service.IBookmarkService
	authMiddleware  fiber.Handler
}

func NewBookmarkController(bookmarkService service.IBookmarkService, authMiddleware fiber.Handler) IBookmarkController {
	return &bookmarkController{
		bookmarkService: bookmarkService,
		authMiddleware:  authMiddleware,
	}
}

func (c *bookmarkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/bookmark/v1")
	h.Use(c.authMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *bookmarkController) GetAll(ctx *fiber.Ctx) error {
	notebookId, err := notebookQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.bookmarkService.GetAll(ctx.Context(), principalFrom(ctx), notebookId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get bookmarks", res))
}

func (c *bookmarkController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateBookmarkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.bookmarkService.Create(ctx.Context(), principalFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create bookmark", res))
}

func (c *bookmarkController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.bookmarkService.Show(ctx.Context(), principalFrom(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get bookmark", res))
}

func (c *bookmarkController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateBookmarkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.bookmarkService.Update(ctx.Context(), principalFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update bookmark", res))
}

func (c *bookmarkController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.bookmarkService.Delete(ctx.Context(), principalFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete bookmark", nil))
}
