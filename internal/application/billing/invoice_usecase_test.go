package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/application/billing"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/ledger"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

func newInvoiceUseCase(s *fakeStore) *billing.InvoiceUseCase {
	return billing.NewInvoiceUseCase(&fakeTxRunner{store: s}, &fakeInvoiceRepo{s}, ledger.NewWriter(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación desde líneas sueltas
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceCreate_TotalesVencimientoYAsiento(t *testing.T) {
	s := newFakeStore()
	seedCustomer(s) // plazo de pago 30 días
	uc := newInvoiceUseCase(s)

	resp, err := uc.Create(context.Background(), agentActor(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		Items:      twoStandardItems(),
		Send:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusSent, resp.StoredStatus)
	assert.True(t, resp.TotalTTC.Equal(decimal.NewFromInt(2360)))
	assert.True(t, resp.BalanceDue.Equal(decimal.NewFromInt(2360)), "el saldo inicial es el TTC completo")
	assert.True(t, resp.PaidAmount.IsZero())
	assert.Equal(t, resp.IssueDate.AddDate(0, 0, 30), resp.DueDate, "vencimiento = emisión + plazo del cliente")
	assert.Equal(t, formatYearNumber("FAC", time.Now().Year(), 1), resp.Number)

	// Asiento balanceado: 411 TTC al debe, 701 HT + 443 IVA al haber.
	require.Len(t, s.entries, 3)
	var debit, credit decimal.Decimal
	for _, e := range s.entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
		assert.Equal(t, entity.DocumentTypeInvoice, e.SourceDocumentType)
		assert.Equal(t, resp.ID, e.SourceDocumentID)
	}
	assert.True(t, debit.Equal(credit), "debe %s != haber %s", debit, credit)

	require.Len(t, s.flows, 1)
	assert.Equal(t, entity.CashFlowInflow, s.flows[0].Type)
	assert.True(t, s.flows[0].Amount.Equal(decimal.NewFromInt(2360)))
}

func TestInvoiceCreate_PlazoExplicitoReemplazaAlDelCliente(t *testing.T) {
	s := newFakeStore()
	seedCustomer(s)
	uc := newInvoiceUseCase(s)

	resp, err := uc.Create(context.Background(), agentActor(), dto.CreateInvoiceRequest{
		CustomerID:       testCustomerID,
		Items:            twoStandardItems(),
		PaymentTermsDays: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, resp.IssueDate.AddDate(0, 0, 15), resp.DueDate)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.StoredStatus, "sin Send la factura nace en borrador")
}

func TestInvoiceCreate_SinLineas(t *testing.T) {
	s := newFakeStore()
	seedCustomer(s)
	uc := newInvoiceUseCase(s)

	_, err := uc.Create(context.Background(), agentActor(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación desde presupuesto aprobado
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceCreateFromQuote_CopiaExacta(t *testing.T) {
	s := newFakeStore()
	seedCustomer(s)
	q := createDraftQuote(t, s)
	advanceTo(t, s, q.ID, entity.QuoteStatusApprovedByDG)
	uc := newInvoiceUseCase(s)

	resp, err := uc.CreateFromQuote(context.Background(), agentActor(), q.ID)
	require.NoError(t, err)

	assert.Equal(t, q.ID, resp.QuoteID)
	assert.True(t, resp.SubtotalHT.Equal(q.SubtotalHT), "los totales se copian sin recalcular")
	assert.True(t, resp.TotalVAT.Equal(q.TotalVAT))
	assert.True(t, resp.TotalTTC.Equal(q.TotalTTC))
	require.Len(t, resp.Items, len(q.Items))
	for i, it := range resp.Items {
		assert.Equal(t, q.Items[i].Description, it.Description)
		assert.True(t, it.UnitPriceHT.Equal(q.Items[i].UnitPriceHT))
	}
	assert.Equal(t, entity.InvoiceStatusSent, resp.StoredStatus)
}

func TestInvoiceCreateFromQuote_NoAprobado(t *testing.T) {
	s := newFakeStore()
	seedCustomer(s)
	uc := newInvoiceUseCase(s)
	ctx := context.Background()

	for _, status := range []string{
		entity.QuoteStatusDraft,
		entity.QuoteStatusPendingServiceApproval,
		entity.QuoteStatusPendingDGApproval,
	} {
		t.Run(status, func(t *testing.T) {
			q := createDraftQuote(t, s)
			if status != entity.QuoteStatusDraft {
				advanceTo(t, s, q.ID, status)
			}

			_, err := uc.CreateFromQuote(ctx, agentActor(), q.ID)

			require.ErrorIs(t, err, domain.ErrQuoteNotApproved)
			assert.Empty(t, s.invoices, "no debe quedar factura persistida")
		})
	}
}

func TestInvoiceCreateFromQuote_SegundaFacturaRechazada(t *testing.T) {
	s := newFakeStore()
	seedCustomer(s)
	q := createDraftQuote(t, s)
	advanceTo(t, s, q.ID, entity.QuoteStatusApprovedByDG)
	uc := newInvoiceUseCase(s)
	ctx := context.Background()

	_, err := uc.CreateFromQuote(ctx, agentActor(), q.ID)
	require.NoError(t, err)

	_, err = uc.CreateFromQuote(ctx, agentActor(), q.ID)

	require.ErrorIs(t, err, domain.ErrDuplicateInvoice)
	assert.Len(t, s.invoices, 1, "el presupuesto admite como máximo una factura")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida posterior
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoiceMarkSent_SoloDesdeBorrador(t *testing.T) {
	s := newFakeStore()
	seedCustomer(s)
	uc := newInvoiceUseCase(s)
	ctx := context.Background()

	draft, err := uc.Create(ctx, agentActor(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		Items:      twoStandardItems(),
	})
	require.NoError(t, err)

	sent, err := uc.MarkSent(ctx, agentActor(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, sent.StoredStatus)

	_, err = uc.MarkSent(ctx, agentActor(), draft.ID)
	var transErr *domain.InvalidStateTransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, entity.InvoiceStatusSent, transErr.Current)
}

func TestInvoiceCancel_SoloSinCobros(t *testing.T) {
	s := newFakeStore()
	seedCustomer(s)
	uc := newInvoiceUseCase(s)
	ctx := context.Background()

	resp, err := uc.Create(ctx, agentActor(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		Items:      twoStandardItems(),
		Send:       true,
	})
	require.NoError(t, err)

	t.Run("sin cobros se anula", func(t *testing.T) {
		cancelled, err := uc.Cancel(ctx, agentActor(), resp.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.InvoiceStatusCancelled, cancelled.StoredStatus)
	})

	t.Run("con cobro parcial se rechaza", func(t *testing.T) {
		other, err := uc.Create(ctx, agentActor(), dto.CreateInvoiceRequest{
			CustomerID: testCustomerID,
			Items:      twoStandardItems(),
			Send:       true,
		})
		require.NoError(t, err)

		inv := s.invoices[other.ID]
		inv.ApplyAllocation(decimal.NewFromInt(100))
		s.invoices[other.ID] = inv

		_, err = uc.Cancel(ctx, agentActor(), other.ID)
		var transErr *domain.InvalidStateTransitionError
		require.ErrorAs(t, err, &transErr)
	})
}

// OVERDUE nunca se almacena: se deriva en lectura cuando el vencimiento pasó
// con saldo pendiente.
func TestInvoiceEstadoVencido_DerivadoEnLectura(t *testing.T) {
	s := newFakeStore()
	seedCustomer(s)
	uc := newInvoiceUseCase(s)
	ctx := context.Background()

	resp, err := uc.Create(ctx, agentActor(), dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		Items:      twoStandardItems(),
		Send:       true,
	})
	require.NoError(t, err)

	// Retroceder el vencimiento directamente en el almacén.
	inv := s.invoices[resp.ID]
	inv.DueDate = time.Now().AddDate(0, 0, -5)
	s.invoices[resp.ID] = inv

	got, err := uc.GetByID(ctx, testCompanyID, resp.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusOverdue, got.Status, "el estado efectivo es OVERDUE")
	assert.Equal(t, entity.InvoiceStatusSent, got.StoredStatus, "el estado almacenado no cambia")
	assert.Equal(t, entity.InvoiceStatusSent, s.invoices[resp.ID].Status)
}
