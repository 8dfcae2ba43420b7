package repository

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// PaymentRepository puerto de persistencia para pagos e imputaciones.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	CreateAllocation(ctx context.Context, allocation *entity.PaymentAllocation) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Payment, error)
}
