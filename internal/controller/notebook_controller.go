package controller

import (
	"conote-be/internal/access"
	"conote-be/internal/apperrors"
	"conote-be/internal/dto"
	"conote-be/internal/pkg/serverutils"
	"conote-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INotebookController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
	AssignPerm(ctx *fiber.Ctx) error
	RemovePerm(ctx *fiber.Ctx) error
}

type notebookController struct {
	notebookService service.INotebookService
	authMiddleware  fiber.Handler
}

func NewNotebookController(notebookService service.INotebookService, authMiddleware fiber.Handler) INotebookController {
	return &notebookController{
		notebookService: notebookService,
		authMiddleware:  authMiddleware,
	}
}

func (c *notebookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notebook/v1")
	h.Use(c.authMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/archive", c.Archive)
	h.Post(":id/assign-perm", c.AssignPerm)
	h.Post(":id/remove-perm", c.RemovePerm)
}

func principalFrom(ctx *fiber.Ctx) access.Principal {
	return ctx.Locals("principal").(access.Principal)
}

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid_id", "invalid id parameter")
	}
	return id, nil
}

func (c *notebookController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.notebookService.GetAll(ctx.Context(), principalFrom(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get notebooks", res))
}

func (c *notebookController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNotebookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.notebookService.Create(ctx.Context(), principalFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create notebook", res))
}

func (c *notebookController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.notebookService.Show(ctx.Context(), principalFrom(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get notebook", res))
}

func (c *notebookController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNotebookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.notebookService.Update(ctx.Context(), principalFrom(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update notebook", res))
}

func (c *notebookController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.notebookService.Delete(ctx.Context(), principalFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete notebook", nil))
}

func (c *notebookController) Archive(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.notebookService.Archive(ctx.Context(), principalFrom(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success archive notebook", nil))
}

func (c *notebookController) AssignPerm(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AssignPermRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.notebookService.AssignPerm(ctx.Context(), principalFrom(ctx), &req); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success assign permission", nil))
}

func (c *notebookController) RemovePerm(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.RemovePermRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.notebookService.RemovePerm(ctx.Context(), principalFrom(ctx), &req); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success remove permission", nil))
}
