package controller

import (
	"conote-be/internal/dto"
	"conote-be/internal/pkg/serverutils"
	"conote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICommentController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type commentController struct {
	commentService service.ICommentService
	authMiddleware fiber.Handler
}

func NewCommentController(commentService service.ICommentService, authMiddleware fiber.Handler) ICommentController {
	return &commentController{
		commentService: commentService,
		authMiddleware: authMiddleware,
	}
}

func (c *commentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/comment/v1")
	h.Use(c.authMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *commentController) GetAll(ctx *fiber.Ctx) error {
	notebookId, err := notebookQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.commentService.GetAll(ctx.Context(), principalFrom(ctx), notebookId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get comments", res))
}

func (c *commentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCommentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commentService.Create(ctx.Context(), principalFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create comment", res))
}

func (c *commentController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.commentService.Show(ctx.Context(), principalFrom(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get comment", res))
}

func (c *commentController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateCommentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commentService.Update(ctx.Context(), principalFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update comment", res))
}

func (c *commentController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.commentService.Delete(ctx.Context(), principalFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete comment", nil))
}
