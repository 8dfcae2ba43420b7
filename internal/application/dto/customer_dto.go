package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name                 string          `json:"name"`
	TaxID                string          `json:"tax_id"`
	Email                string          `json:"email"`
	Phone                string          `json:"phone"`
	PaymentTermsDays     int             `json:"payment_terms_days"`
	DefaultPaymentMethod string          `json:"default_payment_method"`
	CreditLimit          decimal.Decimal `json:"credit_limit"`
}

// CustomerResponse cliente persistido.
type CustomerResponse struct {
	ID                   string          `json:"id"`
	Number               string          `json:"number"`
	Name                 string          `json:"name"`
	TaxID                string          `json:"tax_id"`
	Email                string          `json:"email,omitempty"`
	Phone                string          `json:"phone,omitempty"`
	PaymentTermsDays     int             `json:"payment_terms_days"`
	DefaultPaymentMethod string          `json:"default_payment_method"`
	CreditLimit          decimal.Decimal `json:"credit_limit"`
}
