package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllocationRequest imputación de una parte del pago a una factura.
type AllocationRequest struct {
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// RecordPaymentRequest registro de un pago de cliente con cero o más imputaciones.
type RecordPaymentRequest struct {
	CustomerID  string              `json:"customer_id"`
	Amount      decimal.Decimal     `json:"amount"`
	Method      string              `json:"method"` // cash | bank_transfer | check | card
	Reference   string              `json:"reference"`
	Allocations []AllocationRequest `json:"allocations"`
}

// AllocationResponse imputación persistida.
type AllocationResponse struct {
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// PaymentResponse pago persistido con sus imputaciones.
type PaymentResponse struct {
	ID          string               `json:"id"`
	CustomerID  string               `json:"customer_id"`
	Number      string               `json:"number"`
	Amount      decimal.Decimal      `json:"amount"`
	Method      string               `json:"method"`
	Reference   string               `json:"reference,omitempty"`
	Date        time.Time            `json:"date"`
	Allocations []AllocationResponse `json:"allocations"`
}
