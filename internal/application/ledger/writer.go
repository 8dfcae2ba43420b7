// Package ledger escribe las consecuencias contables de los eventos que mueven
// dinero: un asiento balanceado (partida doble) más exactamente un flujo de caja
// por documento fuente. Ambas tablas son append-only.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/logger"
)

// Line línea de asiento propuesta por el caller: exactamente uno de
// Debit/Credit debe ser distinto de cero.
type Line struct {
	Account string
	Label   string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Posting asiento completo de un documento: líneas balanceadas más el flujo
// de caja asociado.
type Posting struct {
	CompanyID     string
	DocumentType  string // entity.DocumentType*
	DocumentID    string
	Label         string
	Lines         []Line
	CashAmount    decimal.Decimal
	CashDirection string // entity.CashFlowInflow | entity.CashFlowOutflow
	Date          time.Time
}

// Writer valida y persiste asientos. Se invoca siempre dentro de la
// transacción del documento que contabiliza, con el repo atado a esa tx.
type Writer struct {
	log *logger.Logger
}

// NewWriter construye el writer.
func NewWriter(log *logger.Logger) *Writer {
	return &Writer{log: log}
}

// Post verifica que el asiento balancee (sum(debe) == sum(haber), una sola
// cara por línea) y escribe las líneas más un único CashFlow. Las líneas se
// redondean a 2 decimales antes de la verificación: lo que balancea es
// exactamente lo que se persiste. Un asiento desbalanceado es un error de
// programación: se registra en el log y se propaga como
// UnbalancedPostingError, nunca se persiste parcialmente.
func (w *Writer) Post(ctx context.Context, repo repository.LedgerRepository, p Posting) error {
	if len(p.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	lines := make([]Line, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = Line{Account: l.Account, Label: l.Label, Debit: l.Debit.Round(2), Credit: l.Credit.Round(2)}
	}
	var debitTotal, creditTotal decimal.Decimal
	for _, l := range lines {
		oneSided := (l.Debit.IsZero() && l.Credit.GreaterThan(decimal.Zero)) ||
			(l.Credit.IsZero() && l.Debit.GreaterThan(decimal.Zero))
		if !oneSided {
			return w.unbalanced(p, debitTotal, creditTotal)
		}
		debitTotal = debitTotal.Add(l.Debit)
		creditTotal = creditTotal.Add(l.Credit)
	}
	if !debitTotal.Equal(creditTotal) {
		return w.unbalanced(p, debitTotal, creditTotal)
	}

	now := time.Now()
	for _, l := range lines {
		entry := &entity.AccountingEntry{
			ID:                 uuid.New().String(),
			CompanyID:          p.CompanyID,
			AccountNumber:      l.Account,
			Label:              l.Label,
			Debit:              l.Debit,
			Credit:             l.Credit,
			SourceDocumentType: p.DocumentType,
			SourceDocumentID:   p.DocumentID,
			EntryDate:          p.Date,
			CreatedAt:          now,
		}
		if err := repo.CreateEntry(ctx, entry); err != nil {
			return err
		}
	}
	flow := &entity.CashFlow{
		ID:                 uuid.New().String(),
		CompanyID:          p.CompanyID,
		Type:               p.CashDirection,
		Amount:             p.CashAmount.Round(2),
		Label:              p.Label,
		SourceDocumentType: p.DocumentType,
		SourceDocumentID:   p.DocumentID,
		Date:               p.Date,
		CreatedAt:          now,
	}
	return repo.CreateCashFlow(ctx, flow)
}

func (w *Writer) unbalanced(p Posting, debit, credit decimal.Decimal) error {
	err := &domain.UnbalancedPostingError{
		DocumentType: p.DocumentType,
		DocumentID:   p.DocumentID,
		DebitTotal:   debit,
		CreditTotal:  credit,
	}
	if w.log != nil {
		w.log.Error().
			Str("document_type", p.DocumentType).
			Str("document_id", p.DocumentID).
			Str("debit", debit.StringFixed(2)).
			Str("credit", credit.StringFixed(2)).
			Msg("asiento contable desbalanceado")
	}
	return err
}
