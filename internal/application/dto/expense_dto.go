package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordExpenseRequest registro de un gasto.
type RecordExpenseRequest struct {
	Label     string          `json:"label"`
	Supplier  string          `json:"supplier"`
	AmountHT  decimal.Decimal `json:"amount_ht"`
	VATAmount decimal.Decimal `json:"vat_amount"`
	Method    string          `json:"method"`
	Date      time.Time       `json:"date"`
}

// ExpenseResponse gasto persistido.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Label     string          `json:"label"`
	Supplier  string          `json:"supplier,omitempty"`
	AmountHT  decimal.Decimal `json:"amount_ht"`
	VATAmount decimal.Decimal `json:"vat_amount"`
	TotalTTC  decimal.Decimal `json:"total_ttc"`
	Method    string          `json:"method"`
	Date      time.Time       `json:"date"`
}
