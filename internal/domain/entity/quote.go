package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del circuito de aprobación de presupuestos.
// APPROVED_BY_DG y REJECTED son terminales.
const (
	QuoteStatusDraft                  = "DRAFT"
	QuoteStatusPendingServiceApproval = "PENDING_SERVICE_APPROVAL"
	QuoteStatusPendingDGApproval      = "PENDING_DG_APPROVAL"
	QuoteStatusApprovedByDG           = "APPROVED_BY_DG"
	QuoteStatusRejected               = "REJECTED"
)

// Etapas registradas en quote_approvals.
const (
	ApprovalStageService = "SERVICE"
	ApprovalStageDG      = "DG"
	ApprovalStageReject  = "REJECT"
)

// Quote representa un presupuesto (devis). Solo muta a través del circuito de
// aprobación; una vez aprobado nunca se elimina.
type Quote struct {
	ID           string
	CompanyID    string
	CustomerID   string
	ServiceID    string // servicio (departamento) propietario del presupuesto
	Number       string // DEV-2026-0001
	Status       string
	Items        []QuoteItem
	SubtotalHT   decimal.Decimal
	TotalVAT     decimal.Decimal
	TotalTTC     decimal.Decimal
	RejectReason string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTerminal indica si el presupuesto ya no admite transiciones.
func (q *Quote) IsTerminal() bool {
	return q.Status == QuoteStatusApprovedByDG || q.Status == QuoteStatusRejected
}

// QuoteItem línea de presupuesto. Cantidades y precios en decimal;
// DiscountRate y VATRate son porcentajes 0..100.
type QuoteItem struct {
	ID           string
	QuoteID      string
	Position     int
	Description  string
	Quantity     decimal.Decimal
	UnitPriceHT  decimal.Decimal
	DiscountRate decimal.Decimal
	VATRate      decimal.Decimal
}

// QuoteApproval registro de auditoría de cada paso del circuito (append-only).
type QuoteApproval struct {
	ID         string
	QuoteID    string
	Stage      string // SERVICE | DG | REJECT
	ActorID    string
	Comment    string
	ApprovedAt time.Time
}
