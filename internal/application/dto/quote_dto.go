package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItemRequest línea de presupuesto entrante. Porcentajes en 0..100.
type QuoteItemRequest struct {
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceHT  decimal.Decimal `json:"unit_price_ht"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	VATRate      decimal.Decimal `json:"vat_rate"`
}

// CreateQuoteRequest alta de presupuesto (nace en DRAFT).
type CreateQuoteRequest struct {
	CustomerID string             `json:"customer_id"`
	ServiceID  string             `json:"service_id"`
	Items      []QuoteItemRequest `json:"items"`
}

// RejectQuoteRequest rechazo con motivo obligatorio.
type RejectQuoteRequest struct {
	Reason string `json:"reason"`
}

// ApproveQuoteRequest comentario opcional del aprobador.
type ApproveQuoteRequest struct {
	Comment string `json:"comment"`
}

// QuoteItemResponse línea de presupuesto saliente.
type QuoteItemResponse struct {
	ID           string          `json:"id"`
	Position     int             `json:"position"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceHT  decimal.Decimal `json:"unit_price_ht"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	VATRate      decimal.Decimal `json:"vat_rate"`
}

// QuoteResponse presupuesto completo.
type QuoteResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customer_id"`
	ServiceID    string              `json:"service_id"`
	Number       string              `json:"number"`
	Status       string              `json:"status"`
	SubtotalHT   decimal.Decimal     `json:"subtotal_ht"`
	TotalVAT     decimal.Decimal     `json:"total_vat"`
	TotalTTC     decimal.Decimal     `json:"total_ttc"`
	RejectReason string              `json:"reject_reason,omitempty"`
	Items        []QuoteItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
}
