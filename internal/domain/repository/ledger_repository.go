package repository

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// LedgerRepository puerto de persistencia del libro mayor y los flujos de caja.
// Ambas tablas son append-only: no hay Update ni Delete.
type LedgerRepository interface {
	CreateEntry(ctx context.Context, entry *entity.AccountingEntry) error
	CreateCashFlow(ctx context.Context, flow *entity.CashFlow) error
	ListEntriesBySource(ctx context.Context, companyID, documentType, documentID string) ([]*entity.AccountingEntry, error)
	ListCashFlows(ctx context.Context, companyID string, limit, offset int) ([]*entity.CashFlow, error)
}
