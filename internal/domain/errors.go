package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidCredentials     = errors.New("credenciales inválidas")
	ErrEmptyQuote             = errors.New("el presupuesto no tiene líneas")
	ErrQuoteNotApproved       = errors.New("el presupuesto no está aprobado por la DG")
	ErrDuplicateInvoice       = errors.New("el presupuesto ya tiene una factura asociada")
	ErrCrossCustomerAllocation = errors.New("la factura imputada pertenece a otro cliente")
	ErrSequenceCorrupted      = errors.New("secuencia de numeración corrupta")
)

// InvalidStateTransitionError indica un intento de transición desde un estado
// que no cumple la precondición. Nombra el estado actual y el solicitado.
type InvalidStateTransitionError struct {
	Entity    string
	Current   string
	Requested string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("transición inválida de %s: estado actual %s, solicitado %s", e.Entity, e.Current, e.Requested)
}

// OverAllocationError indica que la suma de imputaciones supera el monto del pago.
type OverAllocationError struct {
	PaymentAmount  decimal.Decimal
	AllocatedTotal decimal.Decimal
}

func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("imputaciones por %s superan el monto del pago %s",
		e.AllocatedTotal.StringFixed(2), e.PaymentAmount.StringFixed(2))
}

// InvoiceOverpaymentError indica una imputación mayor que el saldo pendiente de la factura.
type InvoiceOverpaymentError struct {
	InvoiceID  string
	BalanceDue decimal.Decimal
	Allocated  decimal.Decimal
}

func (e *InvoiceOverpaymentError) Error() string {
	return fmt.Sprintf("imputación de %s supera el saldo pendiente %s de la factura %s",
		e.Allocated.StringFixed(2), e.BalanceDue.StringFixed(2), e.InvoiceID)
}

// PaymentExceedsBalanceError indica un pago de préstamo mayor que el saldo restante.
type PaymentExceedsBalanceError struct {
	LoanID    string
	Remaining decimal.Decimal
	Amount    decimal.Decimal
}

func (e *PaymentExceedsBalanceError) Error() string {
	return fmt.Sprintf("pago de %s supera el saldo restante %s del préstamo %s",
		e.Amount.StringFixed(2), e.Remaining.StringFixed(2), e.LoanID)
}

// PaymentBelowInterestError indica un pago de préstamo menor que el interés devengado
// del período; aceptarlo produciría un principal negativo y un saldo creciente.
type PaymentBelowInterestError struct {
	LoanID   string
	Interest decimal.Decimal
	Amount   decimal.Decimal
}

func (e *PaymentBelowInterestError) Error() string {
	return fmt.Sprintf("pago de %s no cubre el interés devengado %s del préstamo %s",
		e.Amount.StringFixed(2), e.Interest.StringFixed(2), e.LoanID)
}

// UnbalancedPostingError indica un asiento contable cuyo total debe no iguala al haber.
// Es un error de programación o de datos, nunca corregible por el usuario.
type UnbalancedPostingError struct {
	DocumentType string
	DocumentID   string
	DebitTotal   decimal.Decimal
	CreditTotal  decimal.Decimal
}

func (e *UnbalancedPostingError) Error() string {
	return fmt.Sprintf("asiento desbalanceado para %s %s: debe %s, haber %s",
		e.DocumentType, e.DocumentID, e.DebitTotal.StringFixed(2), e.CreditTotal.StringFixed(2))
}
