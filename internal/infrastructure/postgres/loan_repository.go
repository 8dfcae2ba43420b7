package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

// LoanRepo implementación de LoanRepository (usable con pool o tx).
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

const loanColumns = `id, company_id, employee_id, number, amount, interest_rate,
	monthly_payment, remaining_amount, status, start_date, created_at, updated_at`

// Create persiste un préstamo.
func (r *LoanRepo) Create(ctx context.Context, l *entity.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CompanyID, l.EmployeeID, l.Number, l.Amount, l.InterestRate,
		l.MonthlyPayment, l.RemainingAmount, l.Status, l.StartDate, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID.
func (r *LoanRepo) GetByID(ctx context.Context, id string) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate obtiene el préstamo con bloqueo de fila. Solo válido dentro
// de una transacción; el saldo restante es la fila en disputa.
func (r *LoanRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *LoanRepo) getOne(ctx context.Context, query, id string) (*entity.Loan, error) {
	var l entity.Loan
	err := scanLoan(r.q.QueryRow(ctx, query, id), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &l, nil
}

// Update persiste remaining_amount y status.
func (r *LoanRepo) Update(ctx context.Context, l *entity.Loan) error {
	query := `
		UPDATE loans SET remaining_amount = $2, status = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, l.ID, l.RemainingAmount, l.Status, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	return nil
}

// CreatePayment persiste una cuota (append-only).
func (r *LoanRepo) CreatePayment(ctx context.Context, p *entity.LoanPayment) error {
	query := `
		INSERT INTO loan_payments (id, loan_id, amount, principal, interest, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.LoanID, p.Amount, p.Principal, p.Interest, p.Date, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert loan payment: %w", err)
	}
	return nil
}

// ListPayments lista las cuotas de un préstamo en orden cronológico.
func (r *LoanRepo) ListPayments(ctx context.Context, loanID string) ([]*entity.LoanPayment, error) {
	query := `
		SELECT id, loan_id, amount, principal, interest, date, created_at
		FROM loan_payments WHERE loan_id = $1 ORDER BY date`
	rows, err := r.q.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("list loan payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.LoanPayment
	for rows.Next() {
		var p entity.LoanPayment
		if err := rows.Scan(&p.ID, &p.LoanID, &p.Amount, &p.Principal, &p.Interest, &p.Date, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan loan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListByCompany lista préstamos de la empresa con paginación.
func (r *LoanRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
		WHERE company_id = $1 ORDER BY start_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Loan
	for rows.Next() {
		var l entity.Loan
		if err := scanLoan(rows, &l); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func scanLoan(row pgx.Row, l *entity.Loan) error {
	return row.Scan(
		&l.ID, &l.CompanyID, &l.EmployeeID, &l.Number, &l.Amount, &l.InterestRate,
		&l.MonthlyPayment, &l.RemainingAmount, &l.Status, &l.StartDate, &l.CreatedAt, &l.UpdatedAt,
	)
}
