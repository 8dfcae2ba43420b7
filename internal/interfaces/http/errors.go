package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
)

// respondDomainError traduce errores de dominio a respuestas HTTP. Los
// handlers lo usan para todo lo que no sea un caso especial propio.
func respondDomainError(c *fiber.Ctx, err error) error {
	var (
		transitionErr *domain.InvalidStateTransitionError
		overAllocErr  *domain.OverAllocationError
		overpayErr    *domain.InvoiceOverpaymentError
		exceedsErr    *domain.PaymentExceedsBalanceError
		belowIntErr   *domain.PaymentBelowInterestError
		unbalancedErr *domain.UnbalancedPostingError
	)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "email o contraseña incorrectos"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "ya existe un usuario con ese email"})
	case errors.Is(err, domain.ErrDuplicateInvoice):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_INVOICE", Message: "el presupuesto ya tiene una factura asociada"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrQuoteNotApproved):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "QUOTE_NOT_APPROVED", Message: "el presupuesto no está aprobado por DG"})
	case errors.Is(err, domain.ErrEmptyQuote):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_QUOTE", Message: "el presupuesto no tiene líneas"})
	case errors.Is(err, domain.ErrCrossCustomerAllocation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CROSS_CUSTOMER_ALLOCATION", Message: "la factura imputada pertenece a otro cliente"})
	case errors.As(err, &transitionErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: transitionErr.Error()})
	case errors.As(err, &overAllocErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OVER_ALLOCATION", Message: overAllocErr.Error()})
	case errors.As(err, &overpayErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVOICE_OVERPAYMENT", Message: overpayErr.Error()})
	case errors.As(err, &exceedsErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PAYMENT_EXCEEDS_BALANCE", Message: exceedsErr.Error()})
	case errors.As(err, &belowIntErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PAYMENT_BELOW_INTEREST", Message: belowIntErr.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.As(err, &unbalancedErr), errors.Is(err, domain.ErrSequenceCorrupted):
		// Invariantes internos rotos: nunca culpa del cliente.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno de contabilidad"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
