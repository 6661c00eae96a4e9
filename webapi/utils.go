// Package webapi exposes the REST surface over Fiber. Every response uses the
// same envelope: a string status ("success" or "failed"), a human message and
// an optional data object.
package webapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nokolie/kudiwallet/pkg/domain"
)

// Response is the standard API envelope.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// SuccessResponseJSON writes a success envelope with the given HTTP status.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON writes a failure envelope with the given HTTP status.
func ErrorResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  "failed",
		Message: message,
		Data:    data,
	})
}

// ErrorToResponse maps a service error to the HTTP status, message and data of
// its failure envelope. Insufficient-balance failures include the current
// balance so clients can show the shortfall. Unknown errors are reported
// without detail.
func ErrorToResponse(err error) (status int, message string, data any) {
	var insufficient *domain.InsufficientBalanceError
	switch {
	case errors.As(err, &insufficient):
		return fiber.StatusBadRequest, "Insufficient balance", fiber.Map{"balance": insufficient.Balance}
	case errors.Is(err, domain.ErrInsufficientBalance):
		return fiber.StatusBadRequest, "Insufficient balance", nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid credentials", nil
	case errors.Is(err, domain.ErrEmailTaken):
		return fiber.StatusConflict, "Email already registered", nil
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "User not found", nil
	case errors.Is(err, domain.ErrTransactionNotFound):
		return fiber.StatusNotFound, "Transaction not found", nil
	case errors.Is(err, domain.ErrBeneficiaryNotFound):
		return fiber.StatusNotFound, "Beneficiary not found", nil
	case errors.Is(err, domain.ErrGateway):
		return fiber.StatusBadGateway, "Payment gateway request failed", nil
	default:
		return fiber.StatusInternalServerError, "Something went wrong", nil
	}
}

// ServiceErrorJSON writes the failure envelope for a service error.
func ServiceErrorJSON(c *fiber.Ctx, err error) error {
	status, message, data := ErrorToResponse(err)
	return ErrorResponseJSON(c, status, message, data)
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure the error response has already been
// written; callers just return the error.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		_ = ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
		return nil, err
	}
	return &input, nil
}
