package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/treasury"
)

// LoanHandler maneja las peticiones HTTP de préstamos a empleados (protegido).
type LoanHandler struct {
	uc *treasury.LoanUseCase
}

// NewLoanHandler construye el handler.
func NewLoanHandler(uc *treasury.LoanUseCase) *LoanHandler {
	return &LoanHandler{uc: uc}
}

// Create POST /api/loans
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CreateLoan(c.Context(), GetActor(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RecordPayment POST /api/loans/:id/payments
func (h *LoanHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordLoanPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.RecordPayment(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListPayments GET /api/loans/:id/payments
func (h *LoanHandler) ListPayments(c *fiber.Ctx) error {
	list, err := h.uc.ListPayments(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/loans/:id
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// List GET /api/loans?limit=20&offset=0
func (h *LoanHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	list, err := h.uc.List(c.Context(), GetCompanyID(c), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}
