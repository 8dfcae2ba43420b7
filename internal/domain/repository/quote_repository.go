package repository

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// QuoteRepository puerto de persistencia para presupuestos.
// GetByID carga el presupuesto con sus líneas ordenadas por posición.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	// GetByIDForUpdate carga el presupuesto con bloqueo de fila; solo válido
	// dentro de una transacción (transiciones del circuito de aprobación).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Quote, error)
	// Update persiste status, totales y motivo de rechazo. Las líneas no mutan
	// después de la creación.
	Update(ctx context.Context, quote *entity.Quote) error
	AddApproval(ctx context.Context, approval *entity.QuoteApproval) error
	ListApprovals(ctx context.Context, quoteID string) ([]*entity.QuoteApproval, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Quote, error)
}
