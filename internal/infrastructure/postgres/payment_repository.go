package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, company_id, customer_id, number, amount, method, date, reference, created_at`

// Create persiste un pago (sin imputaciones; ver CreateAllocation).
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.CustomerID, p.Number, p.Amount, p.Method, p.Date, p.Reference, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// CreateAllocation persiste la imputación de una parte del pago a una factura.
func (r *PaymentRepo) CreateAllocation(ctx context.Context, a *entity.PaymentAllocation) error {
	query := `
		INSERT INTO payment_allocations (id, payment_id, invoice_id, amount)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, a.ID, a.PaymentID, a.InvoiceID, a.Amount)
	if err != nil {
		return fmt.Errorf("insert payment allocation: %w", err)
	}
	return nil
}

// GetByID obtiene un pago con sus imputaciones.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	var p entity.Payment
	err := scanPayment(r.q.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	allocs, err := r.listAllocations(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Allocations = allocs
	return &p, nil
}

func (r *PaymentRepo) listAllocations(ctx context.Context, paymentID string) ([]entity.PaymentAllocation, error) {
	query := `
		SELECT id, payment_id, invoice_id, amount
		FROM payment_allocations WHERE payment_id = $1`
	rows, err := r.q.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list payment allocations: %w", err)
	}
	defer rows.Close()
	var list []entity.PaymentAllocation
	for rows.Next() {
		var a entity.PaymentAllocation
		if err := rows.Scan(&a.ID, &a.PaymentID, &a.InvoiceID, &a.Amount); err != nil {
			return nil, fmt.Errorf("scan payment allocation: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListByCompany lista pagos (sin imputaciones) con paginación.
func (r *PaymentRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func scanPayment(row pgx.Row, p *entity.Payment) error {
	return row.Scan(
		&p.ID, &p.CompanyID, &p.CustomerID, &p.Number, &p.Amount, &p.Method, &p.Date, &p.Reference, &p.CreatedAt,
	)
}
