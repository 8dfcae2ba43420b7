package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/numbering"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// CustomerUseCase alta y consulta de clientes.
type CustomerUseCase struct {
	txRunner  TxRunner
	customers repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(txRunner TxRunner, customers repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{txRunner: txRunner, customers: customers}
}

// Create da de alta un cliente con número CLI-XXXX. El NIF es único por empresa.
func (uc *CustomerUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	method := entity.PaymentMethod(in.DefaultPaymentMethod)
	if in.DefaultPaymentMethod == "" {
		method = entity.PaymentMethodBankTransfer
	}
	if !method.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentTermsDays < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:                   uuid.New().String(),
		CompanyID:            actor.CompanyID,
		Name:                 in.Name,
		TaxID:                in.TaxID,
		Email:                in.Email,
		Phone:                in.Phone,
		PaymentTermsDays:     in.PaymentTermsDays,
		DefaultPaymentMethod: method,
		CreditLimit:          in.CreditLimit,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err := uc.txRunner.RunBilling(ctx, func(
		seqRepo repository.SequenceRepository,
		customerRepo repository.CustomerRepository,
		_ repository.QuoteRepository,
		_ repository.InvoiceRepository,
		_ repository.PaymentRepository,
		_ repository.LedgerRepository,
	) error {
		if in.TaxID != "" {
			existing, err := customerRepo.GetByCompanyAndTaxID(ctx, actor.CompanyID, in.TaxID)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrDuplicate
			}
		}
		number, err := numbering.Next(ctx, seqRepo, actor.CompanyID, numbering.FamilyCustomer, now)
		if err != nil {
			return err
		}
		customer.Number = number
		return customerRepo.Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customerToResponse(customer), nil
}

// List lista clientes de la empresa.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.customers.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, customerToResponse(c))
	}
	return out, nil
}

func customerToResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                   c.ID,
		Number:               c.Number,
		Name:                 c.Name,
		TaxID:                c.TaxID,
		Email:                c.Email,
		Phone:                c.Phone,
		PaymentTermsDays:     c.PaymentTermsDays,
		DefaultPaymentMethod: string(c.DefaultPaymentMethod),
		CreditLimit:          c.CreditLimit,
	}
}
