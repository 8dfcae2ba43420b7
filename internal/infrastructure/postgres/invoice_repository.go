package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, customer_id, quote_id, number, status,
	subtotal_ht, total_vat, total_ttc, paid_amount, balance_due,
	issue_date, due_date, created_at, updated_at`

// Create persiste cabecera y líneas. El índice único sobre quote_id garantiza
// como máximo una factura por presupuesto; la violación se reporta como
// ErrDuplicateInvoice.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.CustomerID, inv.QuoteID, inv.Number, inv.Status,
		inv.SubtotalHT, inv.TotalVAT, inv.TotalTTC, inv.PaidAmount, inv.BalanceDue,
		inv.IssueDate, inv.DueDate, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for _, it := range inv.Items {
		if err := r.insertItem(ctx, inv.ID, it); err != nil {
			return err
		}
	}
	return nil
}

func (r *InvoiceRepo) insertItem(ctx context.Context, invoiceID string, it entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, description, quantity, unit_price_ht, discount_rate, vat_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		it.ID, invoiceID, it.Position, it.Description, it.Quantity, it.UnitPriceHT, it.DiscountRate, it.VATRate,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene una factura con sus líneas.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate obtiene la factura con bloqueo de fila. Solo válido dentro
// de una transacción; serializa imputaciones de pago concurrentes.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

// GetByQuoteID obtiene la factura asociada a un presupuesto, si existe.
func (r *InvoiceRepo) GetByQuoteID(ctx context.Context, quoteID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE quote_id = $1`
	return r.getOne(ctx, query, quoteID)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query, arg string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := scanInvoice(r.q.QueryRow(ctx, query, arg), &inv)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.listItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return &inv, nil
}

func (r *InvoiceRepo) listItems(ctx context.Context, invoiceID string) ([]entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, position, description, quantity, unit_price_ht, discount_rate, vat_rate
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.Description, &it.Quantity,
			&it.UnitPriceHT, &it.DiscountRate, &it.VATRate); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update persiste status, paid_amount y balance_due.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET status = $2, paid_amount = $3, balance_due = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.Status, inv.PaidAmount, inv.BalanceDue, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// ListByCompany lista facturas (cabeceras, sin líneas) con paginación.
func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE company_id = $1 ORDER BY issue_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func scanInvoice(row pgx.Row, inv *entity.Invoice) error {
	var quoteID *string
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &quoteID, &inv.Number, &inv.Status,
		&inv.SubtotalHT, &inv.TotalVAT, &inv.TotalTTC, &inv.PaidAmount, &inv.BalanceDue,
		&inv.IssueDate, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if quoteID != nil {
		inv.QuoteID = *quoteID
	}
	return nil
}
