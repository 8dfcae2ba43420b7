package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un préstamo a empleado.
const (
	LoanStatusActive    = "ACTIVE"
	LoanStatusCompleted = "COMPLETED"
)

// Loan representa un préstamo concedido a un empleado.
// InterestRate es la tasa anual en porcentaje (12 = 12% anual).
type Loan struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	Number          string // PRT-0001
	Amount          decimal.Decimal // principal concedido
	InterestRate    decimal.Decimal // % anual
	MonthlyPayment  decimal.Decimal // cuota objetivo
	RemainingAmount decimal.Decimal // arranca igual a Amount, nunca crece
	Status          string
	StartDate       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MonthlyInterest devuelve el interés devengado sobre el saldo restante
// para un período mensual: saldo * (tasa/100) / 12.
func (l *Loan) MonthlyInterest() decimal.Decimal {
	return l.RemainingAmount.
		Mul(l.InterestRate.Div(decimal.NewFromInt(100))).
		Div(decimal.NewFromInt(12))
}

// LoanPayment cuota pagada, desglosada en principal e interés.
type LoanPayment struct {
	ID        string
	LoanID    string
	Amount    decimal.Decimal
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
}
