package treasury

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

// ExpenseUseCase registro de gastos con su asiento y flujo de salida.
type ExpenseUseCase struct {
	txRunner TxRunner
	expenses repository.ExpenseRepository
	writer   *ledger.Writer
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(txRunner TxRunner, expenses repository.ExpenseRepository, writer *ledger.Writer) *ExpenseUseCase {
	return &ExpenseUseCase{txRunner: txRunner, expenses: expenses, writer: writer}
}

// Record registra un gasto: numera DEP-YYYY-XXXX, persiste y contabiliza
// (601 compras + 445 IVA deducible al debe, 401 proveedores al haber).
func (uc *ExpenseUseCase) Record(ctx context.Context, actor entity.Actor, in dto.RecordExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Label == "" || in.AmountHT.LessThanOrEqual(decimal.Zero) || in.VATAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	method := entity.PaymentMethod(in.Method)
	if in.Method == "" {
		method = entity.PaymentMethodBankTransfer
	}
	if !method.Valid() {
		return nil, domain.ErrInvalidInput
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	now := time.Now()
	expense := &entity.Expense{
		ID:        uuid.New().String(),
		CompanyID: actor.CompanyID,
		Label:     in.Label,
		Supplier:  in.Supplier,
		AmountHT:  in.AmountHT.Round(2),
		VATAmount: in.VATAmount.Round(2),
		Method:    method,
		Date:      date,
		CreatedBy: actor.UserID,
		CreatedAt: now,
	}
	expense.TotalTTC = expense.AmountHT.Add(expense.VATAmount)

	err := uc.txRunner.RunTreasury(ctx, func(
		seqRepo repository.SequenceRepository,
		_ repository.EmployeeRepository,
		_ repository.LoanRepository,
		expenseRepo repository.ExpenseRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		number, err := numbering.Next(ctx, seqRepo, actor.CompanyID, numbering.FamilyExpense, date)
		if err != nil {
			return err
		}
		expense.Number = number
		if err := expenseRepo.Create(ctx, expense); err != nil {
			return err
		}
		return uc.writer.Post(ctx, ledgerRepo, ledger.Posting{
			CompanyID:     expense.CompanyID,
			DocumentType:  entity.DocumentTypeExpense,
			DocumentID:    expense.ID,
			Label:         "Gasto " + expense.Number,
			Lines:         ledger.ExpenseLines(expense),
			CashAmount:    expense.TotalTTC,
			CashDirection: entity.CashFlowOutflow,
			Date:          date,
		})
	})
	if err != nil {
		return nil, err
	}
	return expenseToResponse(expense), nil
}

// GetByID obtiene un gasto.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if expense.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return expenseToResponse(expense), nil
}

// List lista gastos de la empresa.
func (uc *ExpenseUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.ExpenseResponse, error) {
	page.DefaultPage()
	list, err := uc.expenses.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, expenseToResponse(e))
	}
	return out, nil
}

func expenseToResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:        e.ID,
		Number:    e.Number,
		Label:     e.Label,
		Supplier:  e.Supplier,
		AmountHT:  e.AmountHT,
		VATAmount: e.VATAmount,
		TotalTTC:  e.TotalTTC,
		Method:    string(e.Method),
		Date:      e.Date,
	}
}
