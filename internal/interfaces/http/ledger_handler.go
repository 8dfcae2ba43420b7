package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/ledger"
)

// LedgerHandler consultas de solo lectura del libro mayor (protegido).
type LedgerHandler struct {
	uc *ledger.QueryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.QueryUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// ListEntries GET /api/ledger/entries?source_type=INVOICE&source_id=...
func (h *LedgerHandler) ListEntries(c *fiber.Ctx) error {
	list, err := h.uc.ListEntriesBySource(c.Context(), GetCompanyID(c), c.Query("source_type"), c.Query("source_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}

// ListCashFlows GET /api/ledger/cash-flows?limit=20&offset=0
func (h *LedgerHandler) ListCashFlows(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	list, err := h.uc.ListCashFlows(c.Context(), GetCompanyID(c), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(list)
}
