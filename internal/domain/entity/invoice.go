package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados almacenados de una factura. OVERDUE nunca se persiste: es un estado
// derivado en lectura (fecha de vencimiento pasada con saldo pendiente).
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusSent      = "SENT"
	InvoiceStatusPartial   = "PARTIAL"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusCancelled = "CANCELLED"
	InvoiceStatusOverdue   = "OVERDUE" // solo derivado, ver EffectiveStatus
)

// Invoice representa una factura de cliente. Invariantes tras cada mutación:
// TotalTTC == SubtotalHT + TotalVAT y BalanceDue == TotalTTC - PaidAmount.
type Invoice struct {
	ID         string
	CompanyID  string
	CustomerID string
	QuoteID    string // vacío si no proviene de un presupuesto; como máximo una factura por presupuesto
	Number     string // FAC-2026-0001
	Status     string
	Items      []InvoiceItem
	SubtotalHT decimal.Decimal
	TotalVAT   decimal.Decimal
	TotalTTC   decimal.Decimal
	PaidAmount decimal.Decimal
	BalanceDue decimal.Decimal
	IssueDate  time.Time
	DueDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceItem línea de factura, espejo de QuoteItem.
type InvoiceItem struct {
	ID           string
	InvoiceID    string
	Position     int
	Description  string
	Quantity     decimal.Decimal
	UnitPriceHT  decimal.Decimal
	DiscountRate decimal.Decimal
	VATRate      decimal.Decimal
}

// IsOverdue indica si la factura está vencida con saldo pendiente.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled {
		return false
	}
	return now.After(i.DueDate) && i.BalanceDue.GreaterThan(decimal.Zero)
}

// EffectiveStatus devuelve el estado visible: OVERDUE si corresponde,
// si no el estado almacenado.
func (i *Invoice) EffectiveStatus(now time.Time) string {
	if i.IsOverdue(now) {
		return InvoiceStatusOverdue
	}
	return i.Status
}

// ApplyAllocation imputa un monto pagado y recalcula saldo y estado almacenado.
// El caller valida antes que amount <= BalanceDue.
func (i *Invoice) ApplyAllocation(amount decimal.Decimal) {
	i.PaidAmount = i.PaidAmount.Add(amount)
	i.BalanceDue = i.TotalTTC.Sub(i.PaidAmount)
	switch {
	case i.BalanceDue.LessThanOrEqual(decimal.Zero):
		i.Status = InvoiceStatusPaid
	case i.PaidAmount.GreaterThan(decimal.Zero):
		i.Status = InvoiceStatusPartial
	}
}
