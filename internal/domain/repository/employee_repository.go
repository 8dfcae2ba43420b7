package repository

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// EmployeeRepository puerto de persistencia para empleados.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Employee, error)
}
