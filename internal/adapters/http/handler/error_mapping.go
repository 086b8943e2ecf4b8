package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brehanbank/promotion-service/internal/core/identity"
	"github.com/brehanbank/promotion-service/internal/core/notification"
	"github.com/brehanbank/promotion-service/internal/core/promotion"
)

// jsonError は統一フォーマットのエラーレスポンスを返します。
func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// respondError はドメインエラーを HTTP ステータスへ変換します。
func respondError(c *fiber.Ctx, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return jsonError(c, fiber.StatusBadRequest, validationErrs.Error())
	}

	switch {
	case errors.Is(err, promotion.ErrInvalidEmployeeID),
		errors.Is(err, promotion.ErrUnknownField),
		errors.Is(err, promotion.ErrValueOutOfRange),
		errors.Is(err, promotion.ErrInvalidPageSize),
		errors.Is(err, promotion.ErrInvalidPageToken),
		errors.Is(err, notification.ErrInvalidID),
		errors.Is(err, notification.ErrInvalidRecipient),
		errors.Is(err, identity.ErrUnknownRole):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, promotion.ErrFieldNotOwnedByRole),
		errors.Is(err, promotion.ErrOutOfScope):
		return jsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, promotion.ErrEmployeeNotFound),
		errors.Is(err, notification.ErrNotificationNotFound):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, promotion.ErrConcurrencyConflict),
		errors.Is(err, promotion.ErrVersionConflict):
		return jsonError(c, fiber.StatusConflict, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
