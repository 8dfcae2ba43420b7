package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod método de pago; cada método enruta a una cuenta de tesorería distinta.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCard         PaymentMethod = "card"
)

// Valid indica si el método de pago es uno de los soportados.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodCard:
		return true
	}
	return false
}

// Payment representa un pago de cliente, imputable a cero o más facturas.
// Invariante: sum(Allocations.Amount) <= Amount y cada factura imputada
// pertenece al mismo cliente que el pago.
type Payment struct {
	ID          string
	CompanyID   string
	CustomerID  string
	Number      string // REG-2026-0001
	Amount      decimal.Decimal
	Method      PaymentMethod
	Date        time.Time
	Reference   string
	Allocations []PaymentAllocation
	CreatedAt   time.Time
}

// PaymentAllocation imputación de una parte del pago a una factura.
type PaymentAllocation struct {
	ID        string
	PaymentID string
	InvoiceID string
	Amount    decimal.Decimal
}
