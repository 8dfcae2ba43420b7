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

// LoanUseCase préstamos a empleados: desembolso y amortización. Cada cuota se
// desglosa en interés (sobre el saldo restante) y principal; el saldo nunca
// crece y el préstamo pasa a COMPLETED exactamente cuando llega a cero.
type LoanUseCase struct {
	txRunner TxRunner
	loans    repository.LoanRepository
	writer   *ledger.Writer
}

// NewLoanUseCase construye el caso de uso.
func NewLoanUseCase(txRunner TxRunner, loans repository.LoanRepository, writer *ledger.Writer) *LoanUseCase {
	return &LoanUseCase{txRunner: txRunner, loans: loans, writer: writer}
}

// CreateLoan concede un préstamo: numera PRT-XXXX, persiste el préstamo con
// saldo igual al principal y contabiliza el desembolso (421 al debe, tesorería
// al haber, flujo de salida).
func (uc *LoanUseCase) CreateLoan(ctx context.Context, actor entity.Actor, in dto.CreateLoanRequest) (*dto.LoanResponse, error) {
	if in.EmployeeID == "" || in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.InterestRate.LessThan(decimal.Zero) || in.MonthlyPayment.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	method := entity.PaymentMethod(in.Method)
	if in.Method == "" {
		method = entity.PaymentMethodBankTransfer
	}
	if !method.Valid() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	loan := &entity.Loan{
		ID:              uuid.New().String(),
		CompanyID:       actor.CompanyID,
		EmployeeID:      in.EmployeeID,
		Amount:          in.Amount,
		InterestRate:    in.InterestRate,
		MonthlyPayment:  in.MonthlyPayment,
		RemainingAmount: in.Amount,
		Status:          entity.LoanStatusActive,
		StartDate:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.txRunner.RunTreasury(ctx, func(
		seqRepo repository.SequenceRepository,
		employeeRepo repository.EmployeeRepository,
		loanRepo repository.LoanRepository,
		_ repository.ExpenseRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		employee, err := employeeRepo.GetByID(ctx, in.EmployeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return domain.ErrNotFound
		}
		if employee.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}
		number, err := numbering.Next(ctx, seqRepo, actor.CompanyID, numbering.FamilyLoan, now)
		if err != nil {
			return err
		}
		loan.Number = number
		if err := loanRepo.Create(ctx, loan); err != nil {
			return err
		}
		return uc.writer.Post(ctx, ledgerRepo, ledger.Posting{
			CompanyID:     loan.CompanyID,
			DocumentType:  entity.DocumentTypeLoan,
			DocumentID:    loan.ID,
			Label:         "Desembolso préstamo " + loan.Number,
			Lines:         ledger.LoanDisbursementLines(loan, method),
			CashAmount:    loan.Amount,
			CashDirection: entity.CashFlowOutflow,
			Date:          now,
		})
	})
	if err != nil {
		return nil, err
	}
	return loanToResponse(loan), nil
}

// RecordPayment registra una cuota. Interés = saldo * (tasa/100) / 12,
// redondeado al céntimo; el resto amortiza principal. Una cuota mayor que
// saldo + interés del período se rechaza; una cuota que no cubre el interés
// devengado también, porque produciría un saldo creciente.
func (uc *LoanUseCase) RecordPayment(ctx context.Context, actor entity.Actor, loanID string, in dto.RecordLoanPaymentRequest) (*dto.LoanPaymentResponse, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	method := entity.PaymentMethod(in.Method)
	if in.Method == "" {
		method = entity.PaymentMethodCash
	}
	if !method.Valid() {
		return nil, domain.ErrInvalidInput
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	var payment *entity.LoanPayment
	err := uc.txRunner.RunTreasury(ctx, func(
		_ repository.SequenceRepository,
		_ repository.EmployeeRepository,
		loanRepo repository.LoanRepository,
		_ repository.ExpenseRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		loan, err := loanRepo.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return domain.ErrNotFound
		}
		if loan.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}
		if loan.Status != entity.LoanStatusActive {
			return &domain.InvalidStateTransitionError{
				Entity: "loan", Current: loan.Status, Requested: entity.LoanStatusActive,
			}
		}
		// Interés y principal se redondean al céntimo: son los montos que se
		// persisten y los que el asiento contable debe balancear.
		interest := loan.MonthlyInterest().Round(2)
		// La cuota de cierre exacta paga el saldo más el interés del período;
		// cualquier monto por encima se rechaza, no se recorta.
		if in.Amount.GreaterThan(loan.RemainingAmount.Add(interest)) {
			return &domain.PaymentExceedsBalanceError{
				LoanID:    loan.ID,
				Remaining: loan.RemainingAmount,
				Amount:    in.Amount,
			}
		}
		if in.Amount.LessThan(interest) {
			return &domain.PaymentBelowInterestError{
				LoanID:   loan.ID,
				Interest: interest,
				Amount:   in.Amount,
			}
		}
		principal := in.Amount.Sub(interest).Round(2)

		payment = &entity.LoanPayment{
			ID:        uuid.New().String(),
			LoanID:    loan.ID,
			Amount:    in.Amount,
			Principal: principal,
			Interest:  interest,
			Date:      date,
			CreatedAt: time.Now(),
		}
		if err := loanRepo.CreatePayment(ctx, payment); err != nil {
			return err
		}

		loan.RemainingAmount = loan.RemainingAmount.Sub(principal).Round(2)
		if loan.RemainingAmount.LessThanOrEqual(decimal.Zero) {
			loan.RemainingAmount = decimal.Zero
			loan.Status = entity.LoanStatusCompleted
		}
		loan.UpdatedAt = time.Now()
		if err := loanRepo.Update(ctx, loan); err != nil {
			return err
		}

		return uc.writer.Post(ctx, ledgerRepo, ledger.Posting{
			CompanyID:     loan.CompanyID,
			DocumentType:  entity.DocumentTypeLoan,
			DocumentID:    payment.ID,
			Label:         "Cuota préstamo " + loan.Number,
			Lines:         ledger.LoanRepaymentLines(loan, payment, method),
			CashAmount:    payment.Amount,
			CashDirection: entity.CashFlowInflow,
			Date:          date,
		})
	})
	if err != nil {
		return nil, err
	}
	return loanPaymentToResponse(payment), nil
}

// GetByID obtiene un préstamo.
func (uc *LoanUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.LoanResponse, error) {
	loan, err := uc.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, domain.ErrNotFound
	}
	if loan.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return loanToResponse(loan), nil
}

// ListPayments lista las cuotas de un préstamo.
func (uc *LoanUseCase) ListPayments(ctx context.Context, companyID, loanID string) ([]*dto.LoanPaymentResponse, error) {
	loan, err := uc.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, domain.ErrNotFound
	}
	if loan.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	payments, err := uc.loans.ListPayments(ctx, loanID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LoanPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, loanPaymentToResponse(p))
	}
	return out, nil
}

// List lista préstamos de la empresa.
func (uc *LoanUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.LoanResponse, error) {
	page.DefaultPage()
	list, err := uc.loans.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LoanResponse, 0, len(list))
	for _, l := range list {
		out = append(out, loanToResponse(l))
	}
	return out, nil
}

func loanToResponse(l *entity.Loan) *dto.LoanResponse {
	return &dto.LoanResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		Number:          l.Number,
		Amount:          l.Amount,
		InterestRate:    l.InterestRate,
		MonthlyPayment:  l.MonthlyPayment,
		RemainingAmount: l.RemainingAmount,
		Status:          l.Status,
		StartDate:       l.StartDate,
	}
}

func loanPaymentToResponse(p *entity.LoanPayment) *dto.LoanPaymentResponse {
	return &dto.LoanPaymentResponse{
		ID:        p.ID,
		LoanID:    p.LoanID,
		Amount:    p.Amount,
		Principal: p.Principal,
		Interest:  p.Interest,
		Date:      p.Date,
	}
}
