package controller

import (
	"errors"
	"strconv"

	"mentoring-marketplace-be/internal/dto"
	"mentoring-marketplace-be/internal/entity"
	"mentoring-marketplace-be/internal/pkg/serverutils"
	"mentoring-marketplace-be/internal/service"
	"mentoring-marketplace-be/pkg/lifecycle"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IClassController interface {
	RegisterRoutes(r fiber.Router)
}

type classController struct {
	service  service.IClassService
	validate *validator.Validate
}

func NewClassController(svc service.IClassService) IClassController {
	return &classController{
		service:  svc,
		validate: validator.New(),
	}
}

func (c *classController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mentoring/classes", serverutils.JwtMiddleware)
	h.Post("/", c.Book)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
	h.Post("/:id/accept", c.Accept)
	h.Post("/:id/reject", c.Reject)
	h.Post("/:id/review", c.Review)
}

func (c *classController) Book(ctx *fiber.Ctx) error {
	var req dto.BookClassRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Book(ctx.Context(), serverutils.ProfileID(ctx), &req)
	if err != nil {
		return c.mapError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Class requested", res))
}

func (c *classController) Accept(ctx *fiber.Ctx) error {
	classId, err := c.classId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid class id"))
	}

	res, err := c.service.Accept(ctx.Context(), serverutils.ProfileID(ctx), classId)
	if err != nil {
		return c.mapError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Class accepted", res))
}

func (c *classController) Reject(ctx *fiber.Ctx) error {
	classId, err := c.classId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid class id"))
	}

	res, err := c.service.Reject(ctx.Context(), serverutils.ProfileID(ctx), classId)
	if err != nil {
		return c.mapError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Class rejected", res))
}

func (c *classController) Review(ctx *fiber.Ctx) error {
	classId, err := c.classId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid class id"))
	}

	var req dto.SubmitReviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.SubmitReview(ctx.Context(), serverutils.ProfileID(ctx), classId, &req)
	if err != nil {
		return c.mapError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Review submitted", res))
}

func (c *classController) List(ctx *fiber.Ctx) error {
	var status *lifecycle.ClassStatus
	if raw := ctx.Query("status"); raw != "" {
		st := lifecycle.ClassStatus(raw)
		if !st.Valid() {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "unknown status "+raw))
		}
		status = &st
	}

	res, err := c.service.List(ctx.Context(), serverutils.ProfileID(ctx), status)
	if err != nil {
		return c.mapError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Classes fetched", res))
}

func (c *classController) Get(ctx *fiber.Ctx) error {
	classId, err := c.classId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid class id"))
	}

	res, err := c.service.Get(ctx.Context(), serverutils.ProfileID(ctx), classId)
	if err != nil {
		return c.mapError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Class fetched", res))
}

func (c *classController) classId(ctx *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(ctx.Params("id"), 10, 64)
}

func (c *classController) mapError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrClassNotFound), errors.Is(err, service.ErrProfessorNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	case errors.Is(err, service.ErrNotParticipant):
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
	case errors.Is(err, service.ErrInvalidTransition):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	case errors.Is(err, entity.ErrInvalidWindow):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
}
