package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/ledger"
	"github.com/tu-usuario/gestion-pro/internal/application/numbering"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	domainbilling "github.com/tu-usuario/gestion-pro/internal/domain/billing"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// InvoiceUseCase generación y ciclo de vida de facturas: desde líneas sueltas
// o desde un presupuesto aprobado (como máximo una factura por presupuesto).
// Cada factura creada deja su asiento contable en la misma transacción.
type InvoiceUseCase struct {
	txRunner TxRunner
	invoices repository.InvoiceRepository
	writer   *ledger.Writer
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(txRunner TxRunner, invoices repository.InvoiceRepository, writer *ledger.Writer) *InvoiceUseCase {
	return &InvoiceUseCase{txRunner: txRunner, invoices: invoices, writer: writer}
}

// Create genera una factura desde líneas sueltas. El vencimiento es
// IssueDate + PaymentTermsDays del request si es > 0, si no el plazo por
// defecto del cliente. Con Send true la factura nace en SENT.
func (uc *InvoiceUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	quoteItems := make([]entity.QuoteItem, 0, len(in.Items))
	for i, it := range in.Items {
		if it.Description == "" {
			return nil, domain.ErrInvalidInput
		}
		quoteItems = append(quoteItems, entity.QuoteItem{
			Position:     i + 1,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitPriceHT:  it.UnitPriceHT,
			DiscountRate: it.DiscountRate,
			VATRate:      it.VATRate,
		})
	}
	totals, err := domainbilling.ComputeTotals(quoteItems)
	if err != nil {
		return nil, err
	}
	rounded := totals.Rounded()

	status := entity.InvoiceStatusDraft
	if in.Send {
		status = entity.InvoiceStatusSent
	}
	now := time.Now()
	invoice := &entity.Invoice{
		ID:         uuid.New().String(),
		CompanyID:  actor.CompanyID,
		CustomerID: in.CustomerID,
		Status:     status,
		SubtotalHT: rounded.SubtotalHT,
		TotalVAT:   rounded.TotalVAT,
		TotalTTC:   rounded.TotalTTC,
		PaidAmount: decimal.Zero,
		BalanceDue: rounded.TotalTTC,
		IssueDate:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for i, it := range quoteItems {
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			ID:           uuid.New().String(),
			InvoiceID:    invoice.ID,
			Position:     i + 1,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitPriceHT:  it.UnitPriceHT,
			DiscountRate: it.DiscountRate,
			VATRate:      it.VATRate,
		})
	}

	err = uc.txRunner.RunBilling(ctx, func(
		seqRepo repository.SequenceRepository,
		customerRepo repository.CustomerRepository,
		_ repository.QuoteRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		customer, err := customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		if customer.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}
		terms := customer.PaymentTermsDays
		if in.PaymentTermsDays > 0 {
			terms = in.PaymentTermsDays
		}
		invoice.DueDate = invoice.IssueDate.AddDate(0, 0, terms)
		return uc.persist(ctx, seqRepo, invoiceRepo, ledgerRepo, invoice, now)
	})
	if err != nil {
		return nil, err
	}
	return invoiceToResponse(invoice, time.Now()), nil
}

// CreateFromQuote genera la factura de un presupuesto aprobado por la DG.
// Líneas y totales se copian tal cual del presupuesto, sin recalcular: la
// factura refleja exactamente lo que se aprobó. Un presupuesto admite como
// máximo una factura.
func (uc *InvoiceUseCase) CreateFromQuote(ctx context.Context, actor entity.Actor, quoteID string) (*dto.InvoiceResponse, error) {
	var invoice *entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(
		seqRepo repository.SequenceRepository,
		customerRepo repository.CustomerRepository,
		quoteRepo repository.QuoteRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		quote, err := quoteRepo.GetByIDForUpdate(ctx, quoteID)
		if err != nil {
			return err
		}
		if quote == nil {
			return domain.ErrNotFound
		}
		if quote.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}
		if quote.Status != entity.QuoteStatusApprovedByDG {
			return domain.ErrQuoteNotApproved
		}
		existing, err := invoiceRepo.GetByQuoteID(ctx, quote.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateInvoice
		}
		customer, err := customerRepo.GetByID(ctx, quote.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		invoice = &entity.Invoice{
			ID:         uuid.New().String(),
			CompanyID:  quote.CompanyID,
			CustomerID: quote.CustomerID,
			QuoteID:    quote.ID,
			Status:     entity.InvoiceStatusSent,
			SubtotalHT: quote.SubtotalHT,
			TotalVAT:   quote.TotalVAT,
			TotalTTC:   quote.TotalTTC,
			PaidAmount: decimal.Zero,
			BalanceDue: quote.TotalTTC,
			IssueDate:  now,
			DueDate:    now.AddDate(0, 0, customer.PaymentTermsDays),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		for _, it := range quote.Items {
			invoice.Items = append(invoice.Items, entity.InvoiceItem{
				ID:           uuid.New().String(),
				InvoiceID:    invoice.ID,
				Position:     it.Position,
				Description:  it.Description,
				Quantity:     it.Quantity,
				UnitPriceHT:  it.UnitPriceHT,
				DiscountRate: it.DiscountRate,
				VATRate:      it.VATRate,
			})
		}
		return uc.persist(ctx, seqRepo, invoiceRepo, ledgerRepo, invoice, now)
	})
	if err != nil {
		return nil, err
	}
	return invoiceToResponse(invoice, time.Now()), nil
}

// persist numera, guarda y contabiliza la factura dentro de la tx del caller.
func (uc *InvoiceUseCase) persist(
	ctx context.Context,
	seqRepo repository.SequenceRepository,
	invoiceRepo repository.InvoiceRepository,
	ledgerRepo repository.LedgerRepository,
	invoice *entity.Invoice,
	now time.Time,
) error {
	number, err := numbering.Next(ctx, seqRepo, invoice.CompanyID, numbering.FamilyInvoice, now)
	if err != nil {
		return err
	}
	invoice.Number = number
	if err := invoiceRepo.Create(ctx, invoice); err != nil {
		return err
	}
	return uc.writer.Post(ctx, ledgerRepo, ledger.Posting{
		CompanyID:     invoice.CompanyID,
		DocumentType:  entity.DocumentTypeInvoice,
		DocumentID:    invoice.ID,
		Label:         "Factura " + invoice.Number,
		Lines:         ledger.InvoiceLines(invoice),
		CashAmount:    invoice.TotalTTC,
		CashDirection: entity.CashFlowInflow,
		Date:          invoice.IssueDate,
	})
}

// MarkSent emite una factura DRAFT.
func (uc *InvoiceUseCase) MarkSent(ctx context.Context, actor entity.Actor, invoiceID string) (*dto.InvoiceResponse, error) {
	return uc.mutate(ctx, actor, invoiceID, func(inv *entity.Invoice) error {
		if inv.Status != entity.InvoiceStatusDraft {
			return &domain.InvalidStateTransitionError{
				Entity: "invoice", Current: inv.Status, Requested: entity.InvoiceStatusSent,
			}
		}
		inv.Status = entity.InvoiceStatusSent
		return nil
	})
}

// Cancel anula una factura sin cobros: solo mientras el saldo pendiente sigue
// igual al total.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, actor entity.Actor, invoiceID string) (*dto.InvoiceResponse, error) {
	return uc.mutate(ctx, actor, invoiceID, func(inv *entity.Invoice) error {
		if inv.Status == entity.InvoiceStatusPaid || inv.Status == entity.InvoiceStatusCancelled ||
			inv.PaidAmount.GreaterThan(decimal.Zero) {
			return &domain.InvalidStateTransitionError{
				Entity: "invoice", Current: inv.Status, Requested: entity.InvoiceStatusCancelled,
			}
		}
		inv.Status = entity.InvoiceStatusCancelled
		return nil
	})
}

func (uc *InvoiceUseCase) mutate(
	ctx context.Context,
	actor entity.Actor,
	invoiceID string,
	apply func(inv *entity.Invoice) error,
) (*dto.InvoiceResponse, error) {
	var out *entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.SequenceRepository,
		_ repository.CustomerRepository,
		_ repository.QuoteRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		_ repository.LedgerRepository,
	) error {
		invoice, err := invoiceRepo.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}
		if err := apply(invoice); err != nil {
			return err
		}
		invoice.UpdatedAt = time.Now()
		if err := invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}
		out = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoiceToResponse(out, time.Now()), nil
}

// GetByID obtiene una factura; el estado devuelto es el efectivo (incluye
// OVERDUE derivado en lectura).
func (uc *InvoiceUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return invoiceToResponse(invoice, time.Now()), nil
}

// List lista facturas de la empresa con estado efectivo.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()
	list, err := uc.invoices.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, invoiceToResponse(inv, now))
	}
	return out, nil
}

func invoiceToResponse(inv *entity.Invoice, now time.Time) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		CustomerID:   inv.CustomerID,
		QuoteID:      inv.QuoteID,
		Number:       inv.Number,
		Status:       inv.EffectiveStatus(now),
		StoredStatus: inv.Status,
		SubtotalHT:   inv.SubtotalHT,
		TotalVAT:     inv.TotalVAT,
		TotalTTC:     inv.TotalTTC,
		PaidAmount:   inv.PaidAmount,
		BalanceDue:   inv.BalanceDue,
		IssueDate:    inv.IssueDate,
		DueDate:      inv.DueDate,
		Items:        make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:           it.ID,
			Position:     it.Position,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitPriceHT:  it.UnitPriceHT,
			DiscountRate: it.DiscountRate,
			VATRate:      it.VATRate,
		})
	}
	return resp
}
