package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pro/internal/application/billing"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
)

// QuoteHandler maneja las peticiones HTTP de presupuestos y su circuito de
// aprobación (protegido).
type QuoteHandler struct {
	uc *billing.QuoteUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *billing.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Create POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Submit POST /api/quotes/:id/submit
func (h *QuoteHandler) Submit(c *fiber.Ctx) error {
	resp, err := h.uc.SubmitForApproval(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// ApproveService POST /api/quotes/:id/approve-service
func (h *QuoteHandler) ApproveService(c *fiber.Ctx) error {
	var in dto.ApproveQuoteRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.ApproveByServiceManager(c.Context(), GetActor(c), c.Params("id"), in.Comment)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// ApproveDG POST /api/quotes/:id/approve-dg
func (h *QuoteHandler) ApproveDG(c *fiber.Ctx) error {
	var in dto.ApproveQuoteRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.ApproveByDG(c.Context(), GetActor(c), c.Params("id"), in.Comment)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// Reject POST /api/quotes/:id/reject
func (h *QuoteHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Reject(c.Context(), GetActor(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// Get GET /api/quotes/:id
func (h *QuoteHandler) Get(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// List GET /api/quotes?limit=20&offset=0
func (h *QuoteHandler) List(c *fiber.Ctx) error {
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
