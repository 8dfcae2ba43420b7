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
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// PaymentUseCase registro de pagos de cliente y su imputación a facturas.
// Pago, actualizaciones de facturas, imputaciones y asiento contable se
// persisten en una sola transacción: cualquier validación fallida revierte
// todo el paso.
type PaymentUseCase struct {
	txRunner TxRunner
	payments repository.PaymentRepository
	writer   *ledger.Writer
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner TxRunner, payments repository.PaymentRepository, writer *ledger.Writer) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner, payments: payments, writer: writer}
}

// RecordPayment registra un pago con cero o más imputaciones. Orden de
// validación: cliente existe, suma de imputaciones <= monto del pago, cada
// factura existe y pertenece al mismo cliente, cada imputación <= saldo
// pendiente de su factura. Una imputación que supera el saldo se rechaza, no
// se recorta. Las facturas imputadas se releen con bloqueo de fila dentro de
// la transacción.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, actor entity.Actor, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if in.CustomerID == "" || in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	method := entity.PaymentMethod(in.Method)
	if !method.Valid() {
		return nil, domain.ErrInvalidInput
	}
	allocatedTotal := decimal.Zero
	for _, a := range in.Allocations {
		if a.InvoiceID == "" || a.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		allocatedTotal = allocatedTotal.Add(a.Amount)
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:         uuid.New().String(),
		CompanyID:  actor.CompanyID,
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Method:     method,
		Date:       now,
		Reference:  in.Reference,
		CreatedAt:  now,
	}

	err := uc.txRunner.RunBilling(ctx, func(
		seqRepo repository.SequenceRepository,
		customerRepo repository.CustomerRepository,
		_ repository.QuoteRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
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
		// La sobreimputación se valida después de la existencia del cliente.
		if allocatedTotal.GreaterThan(in.Amount) {
			return &domain.OverAllocationError{
				PaymentAmount:  in.Amount,
				AllocatedTotal: allocatedTotal,
			}
		}

		number, err := numbering.Next(ctx, seqRepo, actor.CompanyID, numbering.FamilyPayment, now)
		if err != nil {
			return err
		}
		payment.Number = number
		if err := paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		for _, a := range in.Allocations {
			invoice, err := invoiceRepo.GetByIDForUpdate(ctx, a.InvoiceID)
			if err != nil {
				return err
			}
			if invoice == nil {
				return domain.ErrNotFound
			}
			if invoice.CompanyID != actor.CompanyID || invoice.CustomerID != in.CustomerID {
				return domain.ErrCrossCustomerAllocation
			}
			if a.Amount.GreaterThan(invoice.BalanceDue) {
				return &domain.InvoiceOverpaymentError{
					InvoiceID:  invoice.ID,
					BalanceDue: invoice.BalanceDue,
					Allocated:  a.Amount,
				}
			}
			invoice.ApplyAllocation(a.Amount)
			invoice.UpdatedAt = now
			if err := invoiceRepo.Update(ctx, invoice); err != nil {
				return err
			}
			alloc := entity.PaymentAllocation{
				ID:        uuid.New().String(),
				PaymentID: payment.ID,
				InvoiceID: invoice.ID,
				Amount:    a.Amount,
			}
			if err := paymentRepo.CreateAllocation(ctx, &alloc); err != nil {
				return err
			}
			payment.Allocations = append(payment.Allocations, alloc)
		}

		// Un solo asiento por el monto total del pago, no uno por imputación.
		return uc.writer.Post(ctx, ledgerRepo, ledger.Posting{
			CompanyID:     payment.CompanyID,
			DocumentType:  entity.DocumentTypePayment,
			DocumentID:    payment.ID,
			Label:         "Pago " + payment.Number,
			Lines:         ledger.PaymentLines(payment),
			CashAmount:    payment.Amount,
			CashDirection: entity.CashFlowInflow,
			Date:          payment.Date,
		})
	})
	if err != nil {
		return nil, err
	}
	return paymentToResponse(payment), nil
}

// GetByID obtiene un pago con sus imputaciones.
func (uc *PaymentUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PaymentResponse, error) {
	payment, err := uc.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return paymentToResponse(payment), nil
}

// List lista pagos de la empresa.
func (uc *PaymentUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.PaymentResponse, error) {
	page.DefaultPage()
	list, err := uc.payments.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, paymentToResponse(p))
	}
	return out, nil
}

func paymentToResponse(p *entity.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		Number:      p.Number,
		Amount:      p.Amount,
		Method:      string(p.Method),
		Reference:   p.Reference,
		Date:        p.Date,
		Allocations: make([]dto.AllocationResponse, 0, len(p.Allocations)),
	}
	for _, a := range p.Allocations {
		resp.Allocations = append(resp.Allocations, dto.AllocationResponse{
			InvoiceID: a.InvoiceID,
			Amount:    a.Amount,
		})
	}
	return resp
}
