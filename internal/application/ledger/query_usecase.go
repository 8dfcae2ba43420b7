package ledger

import (
	"context"
	"fmt"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el libro mayor y los flujos de
// caja. Opera sobre el pool directamente: no necesita transacción.
type QueryUseCase struct {
	repo repository.LedgerRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(repo repository.LedgerRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// ListEntriesBySource devuelve las líneas de asiento generadas por un
// documento fuente (factura, pago, gasto, préstamo o cuota).
func (uc *QueryUseCase) ListEntriesBySource(ctx context.Context, companyID, documentType, documentID string) ([]*dto.AccountingEntryResponse, error) {
	if documentType == "" || documentID == "" {
		return nil, fmt.Errorf("%w: source_type y source_id son requeridos", domain.ErrInvalidInput)
	}
	entries, err := uc.repo.ListEntriesBySource(ctx, companyID, documentType, documentID)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.AccountingEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, &dto.AccountingEntryResponse{
			ID:                 e.ID,
			AccountNumber:      e.AccountNumber,
			Label:              e.Label,
			Debit:              e.Debit,
			Credit:             e.Credit,
			SourceDocumentType: e.SourceDocumentType,
			SourceDocumentID:   e.SourceDocumentID,
			EntryDate:          e.EntryDate,
		})
	}
	return result, nil
}

// ListCashFlows devuelve los movimientos de tesorería de la empresa, más
// recientes primero.
func (uc *QueryUseCase) ListCashFlows(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.CashFlowResponse, error) {
	page.DefaultPage()
	flows, err := uc.repo.ListCashFlows(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.CashFlowResponse, 0, len(flows))
	for _, f := range flows {
		result = append(result, &dto.CashFlowResponse{
			ID:                 f.ID,
			Type:               f.Type,
			Amount:             f.Amount,
			Label:              f.Label,
			SourceDocumentType: f.SourceDocumentType,
			SourceDocumentID:   f.SourceDocumentID,
			Date:               f.Date,
		})
	}
	return result, nil
}
