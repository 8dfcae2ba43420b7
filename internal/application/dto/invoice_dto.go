package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest alta de factura desde líneas sueltas.
// PaymentTermsDays, si es > 0, reemplaza el plazo por defecto del cliente.
// Send true emite la factura directamente en SENT en vez de DRAFT.
type CreateInvoiceRequest struct {
	CustomerID       string             `json:"customer_id"`
	Items            []QuoteItemRequest `json:"items"`
	PaymentTermsDays int                `json:"payment_terms_days"`
	Send             bool               `json:"send"`
}

// InvoiceItemResponse línea de factura saliente.
type InvoiceItemResponse struct {
	ID           string          `json:"id"`
	Position     int             `json:"position"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceHT  decimal.Decimal `json:"unit_price_ht"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	VATRate      decimal.Decimal `json:"vat_rate"`
}

// InvoiceResponse factura completa. Status es el estado efectivo en lectura
// (incluye OVERDUE derivado); StoredStatus el almacenado.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	CustomerID   string                `json:"customer_id"`
	QuoteID      string                `json:"quote_id,omitempty"`
	Number       string                `json:"number"`
	Status       string                `json:"status"`
	StoredStatus string                `json:"stored_status"`
	SubtotalHT   decimal.Decimal       `json:"subtotal_ht"`
	TotalVAT     decimal.Decimal       `json:"total_vat"`
	TotalTTC     decimal.Decimal       `json:"total_ttc"`
	PaidAmount   decimal.Decimal       `json:"paid_amount"`
	BalanceDue   decimal.Decimal       `json:"balance_due"`
	IssueDate    time.Time             `json:"issue_date"`
	DueDate      time.Time             `json:"due_date"`
	Items        []InvoiceItemResponse `json:"items"`
}
