package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/numbering"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	domainbilling "github.com/tu-usuario/gestion-pro/internal/domain/billing"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// QuoteUseCase circuito de vida del presupuesto: alta en DRAFT y máquina de
// estados de aprobación DRAFT -> PENDING_SERVICE_APPROVAL -> PENDING_DG_APPROVAL
// -> APPROVED_BY_DG, con REJECTED alcanzable desde ambos estados pendientes.
// Toda transición corre en una transacción con bloqueo de fila sobre el
// presupuesto.
type QuoteUseCase struct {
	txRunner TxRunner
	quotes   repository.QuoteRepository
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(txRunner TxRunner, quotes repository.QuoteRepository) *QuoteUseCase {
	return &QuoteUseCase{txRunner: txRunner, quotes: quotes}
}

// Create da de alta un presupuesto en DRAFT con sus líneas y totales.
// Un DRAFT puede nacer sin líneas; el guard de "al menos una línea" se aplica
// al enviarlo a aprobación.
func (uc *QuoteUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if in.CustomerID == "" || in.ServiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.QuoteItem, 0, len(in.Items))
	for i, it := range in.Items {
		if it.Description == "" {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.QuoteItem{
			ID:           uuid.New().String(),
			Position:     i + 1,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitPriceHT:  it.UnitPriceHT,
			DiscountRate: it.DiscountRate,
			VATRate:      it.VATRate,
		})
	}
	totals, err := domainbilling.ComputeTotals(items)
	if err != nil {
		return nil, err
	}
	rounded := totals.Rounded()

	now := time.Now()
	quote := &entity.Quote{
		ID:         uuid.New().String(),
		CompanyID:  actor.CompanyID,
		CustomerID: in.CustomerID,
		ServiceID:  in.ServiceID,
		Status:     entity.QuoteStatusDraft,
		Items:      items,
		SubtotalHT: rounded.SubtotalHT,
		TotalVAT:   rounded.TotalVAT,
		TotalTTC:   rounded.TotalTTC,
		CreatedBy:  actor.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		seqRepo repository.SequenceRepository,
		customerRepo repository.CustomerRepository,
		quoteRepo repository.QuoteRepository,
		_ repository.InvoiceRepository,
		_ repository.PaymentRepository,
		_ repository.LedgerRepository,
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
		number, err := numbering.Next(ctx, seqRepo, actor.CompanyID, numbering.FamilyQuote, now)
		if err != nil {
			return err
		}
		quote.Number = number
		return quoteRepo.Create(ctx, quote)
	})
	if err != nil {
		return nil, err
	}
	return quoteToResponse(quote), nil
}

// SubmitForApproval pasa un DRAFT con al menos una línea a PENDING_SERVICE_APPROVAL.
func (uc *QuoteUseCase) SubmitForApproval(ctx context.Context, actor entity.Actor, quoteID string) (*dto.QuoteResponse, error) {
	return uc.transition(ctx, actor, quoteID, entity.QuoteStatusPendingServiceApproval,
		func(q *entity.Quote) (*entity.QuoteApproval, error) {
			if q.Status != entity.QuoteStatusDraft {
				return nil, &domain.InvalidStateTransitionError{
					Entity: "quote", Current: q.Status, Requested: entity.QuoteStatusPendingServiceApproval,
				}
			}
			if len(q.Items) == 0 {
				return nil, domain.ErrEmptyQuote
			}
			return nil, nil
		})
}

// ApproveByServiceManager aprueba en nombre del responsable del servicio
// propietario del presupuesto y pasa a PENDING_DG_APPROVAL.
func (uc *QuoteUseCase) ApproveByServiceManager(ctx context.Context, actor entity.Actor, quoteID, comment string) (*dto.QuoteResponse, error) {
	return uc.transition(ctx, actor, quoteID, entity.QuoteStatusPendingDGApproval,
		func(q *entity.Quote) (*entity.QuoteApproval, error) {
			if q.Status != entity.QuoteStatusPendingServiceApproval {
				return nil, &domain.InvalidStateTransitionError{
					Entity: "quote", Current: q.Status, Requested: entity.QuoteStatusPendingDGApproval,
				}
			}
			if !actor.CanApproveService(q.ServiceID) {
				return nil, domain.ErrForbidden
			}
			return &entity.QuoteApproval{Stage: entity.ApprovalStageService, Comment: comment}, nil
		})
}

// ApproveByDG aprobación final de dirección general; estado terminal APPROVED_BY_DG.
func (uc *QuoteUseCase) ApproveByDG(ctx context.Context, actor entity.Actor, quoteID, comment string) (*dto.QuoteResponse, error) {
	return uc.transition(ctx, actor, quoteID, entity.QuoteStatusApprovedByDG,
		func(q *entity.Quote) (*entity.QuoteApproval, error) {
			if q.Status != entity.QuoteStatusPendingDGApproval {
				return nil, &domain.InvalidStateTransitionError{
					Entity: "quote", Current: q.Status, Requested: entity.QuoteStatusApprovedByDG,
				}
			}
			if !actor.CanApproveDG() {
				return nil, domain.ErrForbidden
			}
			return &entity.QuoteApproval{Stage: entity.ApprovalStageDG, Comment: comment}, nil
		})
}

// Reject rechaza desde cualquier estado no terminal, registrando el motivo.
func (uc *QuoteUseCase) Reject(ctx context.Context, actor entity.Actor, quoteID, reason string) (*dto.QuoteResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, actor, quoteID, entity.QuoteStatusRejected,
		func(q *entity.Quote) (*entity.QuoteApproval, error) {
			if q.IsTerminal() {
				return nil, &domain.InvalidStateTransitionError{
					Entity: "quote", Current: q.Status, Requested: entity.QuoteStatusRejected,
				}
			}
			q.RejectReason = reason
			return &entity.QuoteApproval{Stage: entity.ApprovalStageReject, Comment: reason}, nil
		})
}

// transition ejecuta una transición bajo bloqueo de fila: carga el presupuesto
// con FOR UPDATE, aplica el guard, persiste el nuevo estado y el registro de
// auditoría dentro de la misma transacción.
func (uc *QuoteUseCase) transition(
	ctx context.Context,
	actor entity.Actor,
	quoteID, target string,
	guard func(q *entity.Quote) (*entity.QuoteApproval, error),
) (*dto.QuoteResponse, error) {
	var out *entity.Quote
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.SequenceRepository,
		_ repository.CustomerRepository,
		quoteRepo repository.QuoteRepository,
		_ repository.InvoiceRepository,
		_ repository.PaymentRepository,
		_ repository.LedgerRepository,
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
		approval, err := guard(quote)
		if err != nil {
			return err
		}
		quote.Status = target
		quote.UpdatedAt = time.Now()
		if err := quoteRepo.Update(ctx, quote); err != nil {
			return err
		}
		if approval != nil {
			approval.ID = uuid.New().String()
			approval.QuoteID = quote.ID
			approval.ActorID = actor.UserID
			approval.ApprovedAt = quote.UpdatedAt
			if err := quoteRepo.AddApproval(ctx, approval); err != nil {
				return err
			}
		}
		out = quote
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quoteToResponse(out), nil
}

// GetByID obtiene un presupuesto con sus líneas.
func (uc *QuoteUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.QuoteResponse, error) {
	quote, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return quoteToResponse(quote), nil
}

// List lista presupuestos de la empresa.
func (uc *QuoteUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.QuoteResponse, error) {
	page.DefaultPage()
	list, err := uc.quotes.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, quoteToResponse(q))
	}
	return out, nil
}

func quoteToResponse(q *entity.Quote) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:           q.ID,
		CustomerID:   q.CustomerID,
		ServiceID:    q.ServiceID,
		Number:       q.Number,
		Status:       q.Status,
		SubtotalHT:   q.SubtotalHT,
		TotalVAT:     q.TotalVAT,
		TotalTTC:     q.TotalTTC,
		RejectReason: q.RejectReason,
		Items:        make([]dto.QuoteItemResponse, 0, len(q.Items)),
		CreatedAt:    q.CreatedAt,
	}
	for _, it := range q.Items {
		resp.Items = append(resp.Items, dto.QuoteItemResponse{
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
