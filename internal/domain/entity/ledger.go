package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan de cuentas mínimo (inspirado en SYSCOHADA). Las cuentas 51x/52x/57x son
// las cuentas de tesorería a las que enruta cada método de pago.
const (
	AccountReceivable      = "411" // clientes
	AccountSales           = "701" // ventas
	AccountVATCollected    = "443" // IVA facturado
	AccountPayable         = "401" // proveedores
	AccountPurchases       = "601" // compras
	AccountVATDeductible   = "445" // IVA deducible
	AccountCash            = "571" // caja
	AccountBank            = "521" // banco
	AccountChecksPending   = "511" // cheques por cobrar
	AccountCardSettlements = "512" // liquidaciones de tarjeta
	AccountEmployeeLoans   = "421" // anticipos y préstamos al personal
	AccountInterestIncome  = "771" // ingresos financieros
)

// Tipos de documento fuente para asientos y flujos de caja.
const (
	DocumentTypeInvoice = "INVOICE"
	DocumentTypePayment = "PAYMENT"
	DocumentTypeExpense = "EXPENSE"
	DocumentTypeLoan    = "LOAN"
)

// Direcciones de flujo de caja.
const (
	CashFlowInflow  = "INFLOW"
	CashFlowOutflow = "OUTFLOW"
)

// TreasuryAccount devuelve la cuenta de tesorería correspondiente al método de pago.
func TreasuryAccount(m PaymentMethod) string {
	switch m {
	case PaymentMethodCash:
		return AccountCash
	case PaymentMethodCheck:
		return AccountChecksPending
	case PaymentMethodCard:
		return AccountCardSettlements
	default:
		return AccountBank
	}
}

// AccountingEntry línea de asiento contable, inmutable y append-only.
// Exactamente uno de Debit/Credit es distinto de cero. Las líneas que comparten
// (SourceDocumentType, SourceDocumentID) de un mismo asiento balancean:
// sum(Debit) == sum(Credit).
type AccountingEntry struct {
	ID                 string
	CompanyID          string
	AccountNumber      string
	Label              string
	Debit              decimal.Decimal
	Credit             decimal.Decimal
	SourceDocumentType string
	SourceDocumentID   string
	EntryDate          time.Time
	CreatedAt          time.Time
}

// CashFlow registro inmutable de movimiento de caja: exactamente uno por
// evento que mueve dinero, con referencia al documento fuente.
type CashFlow struct {
	ID                 string
	CompanyID          string
	Type               string // INFLOW | OUTFLOW
	Amount             decimal.Decimal
	Label              string
	SourceDocumentType string
	SourceDocumentID   string
	Date               time.Time
	CreatedAt          time.Time
}
