package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación de QuoteRepository (usable con pool o tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, company_id, customer_id, service_id, number, status,
	subtotal_ht, total_vat, total_ttc, reject_reason, created_by, created_at, updated_at`

// Create persiste cabecera y líneas del presupuesto.
func (r *QuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		quote.ID, quote.CompanyID, quote.CustomerID, quote.ServiceID, quote.Number, quote.Status,
		quote.SubtotalHT, quote.TotalVAT, quote.TotalTTC, quote.RejectReason, quote.CreatedBy,
		quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	for _, it := range quote.Items {
		if err := r.insertItem(ctx, quote.ID, it); err != nil {
			return err
		}
	}
	return nil
}

func (r *QuoteRepo) insertItem(ctx context.Context, quoteID string, it entity.QuoteItem) error {
	query := `
		INSERT INTO quote_items (id, quote_id, position, description, quantity, unit_price_ht, discount_rate, vat_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		it.ID, quoteID, it.Position, it.Description, it.Quantity, it.UnitPriceHT, it.DiscountRate, it.VATRate,
	)
	if err != nil {
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

// GetByID obtiene un presupuesto con sus líneas ordenadas por posición.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate obtiene el presupuesto con bloqueo de fila. Solo válido
// dentro de una transacción.
func (r *QuoteRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *QuoteRepo) getOne(ctx context.Context, query, id string) (*entity.Quote, error) {
	var q entity.Quote
	err := scanQuote(r.q.QueryRow(ctx, query, id), &q)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	items, err := r.listItems(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return &q, nil
}

func (r *QuoteRepo) listItems(ctx context.Context, quoteID string) ([]entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, position, description, quantity, unit_price_ht, discount_rate, vat_rate
		FROM quote_items WHERE quote_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var items []entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.Position, &it.Description, &it.Quantity,
			&it.UnitPriceHT, &it.DiscountRate, &it.VATRate); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update persiste status, totales y motivo de rechazo. Las líneas no mutan
// después de la creación.
func (r *QuoteRepo) Update(ctx context.Context, quote *entity.Quote) error {
	query := `
		UPDATE quotes SET status = $2, subtotal_ht = $3, total_vat = $4, total_ttc = $5,
			reject_reason = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		quote.ID, quote.Status, quote.SubtotalHT, quote.TotalVAT, quote.TotalTTC,
		quote.RejectReason, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}

// AddApproval registra un paso del circuito de aprobación (append-only).
func (r *QuoteRepo) AddApproval(ctx context.Context, a *entity.QuoteApproval) error {
	query := `
		INSERT INTO quote_approvals (id, quote_id, stage, actor_id, comment, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, a.ID, a.QuoteID, a.Stage, a.ActorID, a.Comment, a.ApprovedAt)
	if err != nil {
		return fmt.Errorf("insert quote approval: %w", err)
	}
	return nil
}

// ListApprovals lista los pasos de aprobación en orden cronológico.
func (r *QuoteRepo) ListApprovals(ctx context.Context, quoteID string) ([]*entity.QuoteApproval, error) {
	query := `
		SELECT id, quote_id, stage, actor_id, comment, approved_at
		FROM quote_approvals WHERE quote_id = $1 ORDER BY approved_at`
	rows, err := r.q.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote approvals: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuoteApproval
	for rows.Next() {
		var a entity.QuoteApproval
		if err := rows.Scan(&a.ID, &a.QuoteID, &a.Stage, &a.ActorID, &a.Comment, &a.ApprovedAt); err != nil {
			return nil, fmt.Errorf("scan quote approval: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ListByCompany lista presupuestos (cabeceras, sin líneas) con paginación.
func (r *QuoteRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		var q entity.Quote
		if err := scanQuote(rows, &q); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

func scanQuote(row pgx.Row, q *entity.Quote) error {
	return row.Scan(
		&q.ID, &q.CompanyID, &q.CustomerID, &q.ServiceID, &q.Number, &q.Status,
		&q.SubtotalHT, &q.TotalVAT, &q.TotalTTC, &q.RejectReason, &q.CreatedBy,
		&q.CreatedAt, &q.UpdatedAt,
	)
}
