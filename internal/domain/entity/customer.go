package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la empresa.
// PaymentTermsDays define el plazo de pago por defecto de sus facturas.
type Customer struct {
	ID                   string
	CompanyID            string
	Number               string // CLI-0001
	Name                 string
	TaxID                string
	Email                string
	Phone                string
	PaymentTermsDays     int
	DefaultPaymentMethod PaymentMethod
	CreditLimit          decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
