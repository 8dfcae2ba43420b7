package treasury

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// tesorería atados a esa tx. Si fn retorna error se hace rollback completo.
type TxRunner interface {
	RunTreasury(ctx context.Context, fn func(
		seqRepo repository.SequenceRepository,
		employeeRepo repository.EmployeeRepository,
		loanRepo repository.LoanRepository,
		expenseRepo repository.ExpenseRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
