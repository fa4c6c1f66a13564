package handler

import (
	"errors"
	"strconv"

	"mentoring-marketplace-be/internal/pkg/logger"
	"mentoring-marketplace-be/internal/pkg/serverutils"
	"mentoring-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service service.INotificationService
	logger  logger.ILogger
}

func NewNotificationHandler(svc service.INotificationService, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service: svc,
		logger:  log,
	}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/notifications", serverutils.JwtMiddleware)
	g.Get("/", h.List)
	g.Get("/unread-count", h.UnreadCount)
	g.Patch("/read-all", h.MarkAllRead)
	g.Patch("/:id/read", h.MarkRead)
}

func (h *NotificationHandler) List(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	res, err := h.service.List(ctx.Context(), serverutils.ProfileID(ctx), limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Notifications fetched", res))
}

func (h *NotificationHandler) UnreadCount(ctx *fiber.Ctx) error {
	count, err := h.service.UnreadCount(ctx.Context(), serverutils.ProfileID(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Unread count", fiber.Map{"count": count}))
}

func (h *NotificationHandler) MarkRead(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid notification id"))
	}

	if err := h.service.MarkRead(ctx.Context(), serverutils.ProfileID(ctx), id); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "notification not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Notification marked as read", nil))
}

func (h *NotificationHandler) MarkAllRead(ctx *fiber.Ctx) error {
	if err := h.service.MarkAllRead(ctx.Context(), serverutils.ProfileID(ctx)); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("All notifications marked as read", nil))
}
