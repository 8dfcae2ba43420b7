package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/gestion-pro/internal/application/billing"
	"github.com/tu-usuario/gestion-pro/internal/application/treasury"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)
var _ treasury.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción con los repos de facturación atados a ella
// y hace Commit o Rollback según el resultado de fn.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	seqRepo repository.SequenceRepository,
	customerRepo repository.CustomerRepository,
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewSequenceRepository(tx),
		NewCustomerRepository(tx),
		NewQuoteRepository(tx),
		NewInvoiceRepository(tx),
		NewPaymentRepository(tx),
		NewLedgerRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTreasury inicia una transacción con los repos de tesorería atados a ella.
func (r *TxRunner) RunTreasury(ctx context.Context, fn func(
	seqRepo repository.SequenceRepository,
	employeeRepo repository.EmployeeRepository,
	loanRepo repository.LoanRepository,
	expenseRepo repository.ExpenseRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewSequenceRepository(tx),
		NewEmployeeRepository(tx),
		NewLoanRepository(tx),
		NewExpenseRepository(tx),
		NewLedgerRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
