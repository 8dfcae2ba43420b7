package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLoanRequest alta de préstamo a empleado. InterestRate en % anual.
type CreateLoanRequest struct {
	EmployeeID     string          `json:"employee_id"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Method         string          `json:"method"` // método de desembolso
}

// RecordLoanPaymentRequest cuota de préstamo.
type RecordLoanPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Date   time.Time       `json:"date"`
}

// LoanPaymentResponse cuota desglosada.
type LoanPaymentResponse struct {
	ID        string          `json:"id"`
	LoanID    string          `json:"loan_id"`
	Amount    decimal.Decimal `json:"amount"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Date      time.Time       `json:"date"`
}

// LoanResponse préstamo con su saldo.
type LoanResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	Number          string          `json:"number"`
	Amount          decimal.Decimal `json:"amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status"`
	StartDate       time.Time       `json:"start_date"`
}
