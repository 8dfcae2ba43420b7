package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador de numeración por (empresa, familia, año).
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next avanza el contador en un solo upsert atómico y devuelve el nuevo valor.
// Dos transacciones concurrentes serializan sobre la fila del contador, por lo
// que nunca observan el mismo valor; si la transacción del documento se
// revierte, el avance se revierte con ella.
func (r *SequenceRepo) Next(ctx context.Context, companyID, family string, year int) (int64, error) {
	query := `
		INSERT INTO document_sequences (company_id, family, year, last_value, updated_at)
		VALUES ($1, $2, $3, 1, now())
		ON CONFLICT (company_id, family, year)
		DO UPDATE SET last_value = document_sequences.last_value + 1, updated_at = now()
		RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(ctx, query, companyID, family, year).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence %s/%s/%d: %w", companyID, family, year, err)
	}
	return n, nil
}
