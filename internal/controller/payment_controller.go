package controller

import (
	"errors"

	"mentoring-marketplace-be/internal/dto"
	"mentoring-marketplace-be/internal/pkg/serverutils"
	"mentoring-marketplace-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Checkout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	service  service.IPaymentService
	validate *validator.Validate
}

func NewPaymentController(svc service.IPaymentService) IPaymentController {
	return &paymentController{
		service:  svc,
		validate: validator.New(),
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment")
	// The gateway calls the webhook server-to-server; no JWT there.
	h.Post("/midtrans/notification", c.Webhook)
	h.Post("/checkout", serverutils.JwtMiddleware, c.Checkout)
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Checkout(ctx.Context(), serverutils.ProfileID(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrProfessorNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid payload"))
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSignature):
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
		case errors.Is(err, service.ErrOrderNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(fiber.Map{"status": "ok"})
}
