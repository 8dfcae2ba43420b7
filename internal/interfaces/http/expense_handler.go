package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/treasury"
)

// ExpenseHandler maneja las peticiones HTTP de gastos (protegido).
type ExpenseHandler struct {
	uc *treasury.ExpenseUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *treasury.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Record POST /api/expenses
func (h *ExpenseHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Record(c.Context(), GetActor(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get GET /api/expenses/:id
func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// List GET /api/expenses?limit=20&offset=0
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
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
