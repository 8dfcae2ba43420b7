package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto de la empresa (compra, servicio, etc.).
// TotalTTC = AmountHT + VATAmount.
type Expense struct {
	ID        string
	CompanyID string
	Number    string // DEP-2026-0001
	Label     string
	Supplier  string
	AmountHT  decimal.Decimal
	VATAmount decimal.Decimal
	TotalTTC  decimal.Decimal
	Method    PaymentMethod
	Date      time.Time
	CreatedBy string
	CreatedAt time.Time
}
