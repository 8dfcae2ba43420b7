package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository. Las tablas de asientos y
// flujos de caja son append-only: este adaptador no expone Update ni Delete.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// CreateEntry persiste una línea de asiento.
func (r *LedgerRepo) CreateEntry(ctx context.Context, e *entity.AccountingEntry) error {
	query := `
		INSERT INTO accounting_entries (id, company_id, account_number, label, debit, credit,
			source_document_type, source_document_id, entry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.AccountNumber, e.Label, e.Debit, e.Credit,
		e.SourceDocumentType, e.SourceDocumentID, e.EntryDate, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert accounting entry: %w", err)
	}
	return nil
}

// CreateCashFlow persiste un flujo de caja.
func (r *LedgerRepo) CreateCashFlow(ctx context.Context, f *entity.CashFlow) error {
	query := `
		INSERT INTO cash_flows (id, company_id, type, amount, label,
			source_document_type, source_document_id, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.CompanyID, f.Type, f.Amount, f.Label,
		f.SourceDocumentType, f.SourceDocumentID, f.Date, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash flow: %w", err)
	}
	return nil
}

// ListEntriesBySource lista las líneas de asiento de un documento fuente.
func (r *LedgerRepo) ListEntriesBySource(ctx context.Context, companyID, documentType, documentID string) ([]*entity.AccountingEntry, error) {
	query := `
		SELECT id, company_id, account_number, label, debit, credit,
			source_document_type, source_document_id, entry_date, created_at
		FROM accounting_entries
		WHERE company_id = $1 AND source_document_type = $2 AND source_document_id = $3
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, companyID, documentType, documentID)
	if err != nil {
		return nil, fmt.Errorf("list accounting entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountingEntry
	for rows.Next() {
		var e entity.AccountingEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.AccountNumber, &e.Label, &e.Debit, &e.Credit,
			&e.SourceDocumentType, &e.SourceDocumentID, &e.EntryDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan accounting entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListCashFlows lista flujos de caja de la empresa, más recientes primero.
func (r *LedgerRepo) ListCashFlows(ctx context.Context, companyID string, limit, offset int) ([]*entity.CashFlow, error) {
	query := `
		SELECT id, company_id, type, amount, label,
			source_document_type, source_document_id, date, created_at
		FROM cash_flows
		WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cash flows: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashFlow
	for rows.Next() {
		var f entity.CashFlow
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.Type, &f.Amount, &f.Label,
			&f.SourceDocumentType, &f.SourceDocumentID, &f.Date, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash flow: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
