package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brehanbank/promotion-service/internal/core/notification"
)

// NotificationHandler は通知関連のエンドポイントを提供します。
type NotificationHandler struct {
	usecase notification.UseCase
}

// NewNotificationHandler は NotificationHandler を生成します。
func NewNotificationHandler(usecase notification.UseCase) *NotificationHandler {
	return &NotificationHandler{usecase: usecase}
}

// List は呼び出し元宛ての通知を新しい順に返します。
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	caller, ok := CallerFromCtx(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "missing caller identity")
	}

	notifications, err := h.usecase.List(c.Context(), caller)
	if err != nil {
		return respondError(c, err)
	}

	responses := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, toNotificationResponse(n))
	}
	return c.JSON(fiber.Map{"notifications": responses})
}

// UnreadCount は未読件数を返します。
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	caller, ok := CallerFromCtx(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "missing caller identity")
	}

	count, err := h.usecase.UnreadCount(c.Context(), caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"unread_count": count})
}

// MarkRead は通知 1 件を既読にします。
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.usecase.MarkRead(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead は呼び出し元宛ての通知をすべて既読にします。
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	caller, ok := CallerFromCtx(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "missing caller identity")
	}

	if err := h.usecase.MarkAllRead(c.Context(), caller); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
