// file: internals/features/finance/invoices/controller/http_error.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	service "sekolahku_backend/internals/features/finance/invoices/service"
	helper "sekolahku_backend/internals/helpers"
)

// jsonServiceError memetakan taksonomi error service → HTTP status
// + error_code yang stabil untuk caller.
func jsonServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNothingToPay):
		return helper.JsonErrorWithCode(c, fiber.StatusConflict, "NOTHING_TO_PAY", "tidak ada yang bisa dibayar")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}
