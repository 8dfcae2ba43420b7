package repository

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// LoanRepository puerto de persistencia para préstamos a empleados.
type LoanRepository interface {
	Create(ctx context.Context, loan *entity.Loan) error
	GetByID(ctx context.Context, id string) (*entity.Loan, error)
	// GetByIDForUpdate carga el préstamo con bloqueo de fila; solo válido dentro
	// de una transacción (el saldo restante es la fila en disputa).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Loan, error)
	// Update persiste remaining_amount y status.
	Update(ctx context.Context, loan *entity.Loan) error
	CreatePayment(ctx context.Context, payment *entity.LoanPayment) error
	ListPayments(ctx context.Context, loanID string) ([]*entity.LoanPayment, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Loan, error)
}
