package controller

import (
	"errors"
	"strconv"

	"mentoring-marketplace-be/internal/pkg/serverutils"
	"mentoring-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMentoringController interface {
	RegisterRoutes(r fiber.Router)
	TriggerSweep(ctx *fiber.Ctx) error
	ListEligible(ctx *fiber.Ctx) error
	TestTransition(ctx *fiber.Ctx) error
}

type mentoringController struct {
	service service.IAutoTransitionService
}

func NewMentoringController(svc service.IAutoTransitionService) IMentoringController {
	return &mentoringController{service: svc}
}

func (c *mentoringController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mentoring")
	h.Post("/auto-transition", serverutils.JwtMiddleware, c.TriggerSweep)
	h.Get("/auto-transition", serverutils.JwtMiddleware, c.ListEligible)

	// Ops/testing only; see AdminOnly.
	h.Post("/test-transition", serverutils.JwtMiddleware, serverutils.AdminOnly, c.TestTransition)
}

// TriggerSweep is the on-demand sweep invocation; attached clients also call
// it on their periodic timer.
func (c *mentoringController) TriggerSweep(ctx *fiber.Ctx) error {
	report, err := c.service.Sweep(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return ctx.JSON(report)
}

func (c *mentoringController) ListEligible(ctx *fiber.Ctx) error {
	var profileId *int64
	if raw := ctx.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid userId"))
		}
		profileId = &id
	}

	res, err := c.service.ListEligible(ctx.Context(), profileId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}

func (c *mentoringController) TestTransition(ctx *fiber.Ctx) error {
	raw := ctx.Query("classId")
	if raw == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "classId is required"))
	}
	classId, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || classId <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid classId"))
	}

	if err := c.service.ForceEligible(ctx.Context(), classId); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "class not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Class forced eligible for auto-transition", fiber.Map{
		"class_id": classId,
	}))
}
