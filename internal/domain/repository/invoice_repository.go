package repository

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia para facturas.
type InvoiceRepository interface {
	// Create persiste cabecera y líneas. La columna quote_id tiene índice único
	// (máximo una factura por presupuesto); la violación se reporta como duplicado.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetByIDForUpdate carga la factura con SELECT ... FOR UPDATE; solo válido
	// dentro de una transacción (imputación de pagos concurrentes).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetByQuoteID(ctx context.Context, quoteID string) (*entity.Invoice, error)
	// Update persiste status, paid_amount y balance_due.
	Update(ctx context.Context, invoice *entity.Invoice) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error)
}
