package treasury_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/ledger"
	"github.com/tu-usuario/gestion-pro/internal/application/treasury"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

const (
	testCompanyID  = "company-1"
	testEmployeeID = "employee-1"
)

func testActor() entity.Actor {
	return entity.Actor{UserID: "user-1", CompanyID: testCompanyID, Role: entity.RoleAccountant}
}

func seedEmployee(s *fakeStore) {
	s.employees[testEmployeeID] = entity.Employee{
		ID:        testEmployeeID,
		CompanyID: testCompanyID,
		Number:    "EMP-0001",
		FirstName: "Awa",
		LastName:  "Diop",
	}
}

func newLoanUseCase(s *fakeStore) *treasury.LoanUseCase {
	return treasury.NewLoanUseCase(&fakeTxRunner{store: s}, &fakeLoanRepo{s}, ledger.NewWriter(nil))
}

func createLoan(t *testing.T, s *fakeStore, amount, rate int64) *dto.LoanResponse {
	t.Helper()
	uc := newLoanUseCase(s)
	resp, err := uc.CreateLoan(context.Background(), testActor(), dto.CreateLoanRequest{
		EmployeeID:     testEmployeeID,
		Amount:         decimal.NewFromInt(amount),
		InterestRate:   decimal.NewFromInt(rate),
		MonthlyPayment: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Desembolso
// ──────────────────────────────────────────────────────────────────────────────

func TestLoanCreate_DesembolsoContabilizado(t *testing.T) {
	s := newFakeStore()
	seedEmployee(s)

	resp := createLoan(t, s, 100_000, 12)

	assert.Equal(t, "PRT-0001", resp.Number)
	assert.Equal(t, entity.LoanStatusActive, resp.Status)
	assert.True(t, resp.RemainingAmount.Equal(resp.Amount), "el saldo arranca igual al principal")

	// Asiento: 421 al debe / tesorería al haber, más flujo de salida.
	require.Len(t, s.entries, 2)
	assert.Equal(t, entity.AccountEmployeeLoans, s.entries[0].AccountNumber)
	assert.True(t, s.entries[0].Debit.Equal(decimal.NewFromInt(100_000)))
	assert.Equal(t, entity.AccountBank, s.entries[1].AccountNumber)
	require.Len(t, s.flows, 1)
	assert.Equal(t, entity.CashFlowOutflow, s.flows[0].Type)
}

func TestLoanCreate_EmpleadoInexistente(t *testing.T) {
	s := newFakeStore()
	uc := newLoanUseCase(s)

	_, err := uc.CreateLoan(context.Background(), testActor(), dto.CreateLoanRequest{
		EmployeeID: "no-existe",
		Amount:     decimal.NewFromInt(1000),
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.loans)
	assert.Empty(t, s.entries, "un alta fallida no deja asiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Amortización
// ──────────────────────────────────────────────────────────────────────────────

// Préstamo de 100000 al 12% anual: una cuota de 5000 devenga 1000 de interés
// (100000 * 12% / 12) y amortiza 4000 de principal, dejando el saldo en 96000.
func TestLoanPayment_DesgloseInteresPrincipal(t *testing.T) {
	s := newFakeStore()
	seedEmployee(s)
	loan := createLoan(t, s, 100_000, 12)
	uc := newLoanUseCase(s)

	resp, err := uc.RecordPayment(context.Background(), testActor(), loan.ID, dto.RecordLoanPaymentRequest{
		Amount: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	assert.True(t, resp.Interest.Equal(decimal.NewFromInt(1000)), "interés: %s", resp.Interest)
	assert.True(t, resp.Principal.Equal(decimal.NewFromInt(4000)), "principal: %s", resp.Principal)

	stored := s.loans[loan.ID]
	assert.True(t, stored.RemainingAmount.Equal(decimal.NewFromInt(96_000)), "saldo: %s", stored.RemainingAmount)
	assert.Equal(t, entity.LoanStatusActive, stored.Status)
}

func TestLoanPayment_SaldoNuncaCrece(t *testing.T) {
	s := newFakeStore()
	seedEmployee(s)
	loan := createLoan(t, s, 100_000, 12)
	uc := newLoanUseCase(s)
	ctx := context.Background()

	previous := decimal.NewFromInt(100_000)
	for i := 0; i < 6; i++ {
		_, err := uc.RecordPayment(ctx, testActor(), loan.ID, dto.RecordLoanPaymentRequest{
			Amount: decimal.NewFromInt(5000),
		})
		require.NoError(t, err)
		current := s.loans[loan.ID].RemainingAmount
		assert.True(t, current.LessThan(previous), "cuota %d: saldo %s no bajó de %s", i+1, current, previous)
		previous = current
	}
}

// El cierre exacto paga el saldo restante más el interés del período y deja el
// préstamo en COMPLETED con saldo exactamente cero.
func TestLoanPayment_CierreExacto(t *testing.T) {
	s := newFakeStore()
	seedEmployee(s)
	loan := createLoan(t, s, 12_000, 12)
	uc := newLoanUseCase(s)

	// Interés del período: 12000 * 1% = 120. Cuota de cierre: 12120.
	resp, err := uc.RecordPayment(context.Background(), testActor(), loan.ID, dto.RecordLoanPaymentRequest{
		Amount: decimal.NewFromInt(12_120),
	})
	require.NoError(t, err)

	assert.True(t, resp.Interest.Equal(decimal.NewFromInt(120)))
	assert.True(t, resp.Principal.Equal(decimal.NewFromInt(12_000)))

	stored := s.loans[loan.ID]
	assert.True(t, stored.RemainingAmount.IsZero(), "saldo: %s", stored.RemainingAmount)
	assert.Equal(t, entity.LoanStatusCompleted, stored.Status)
}

func TestLoanPayment_CuotaExcedeSaldo(t *testing.T) {
	s := newFakeStore()
	seedEmployee(s)
	loan := createLoan(t, s, 12_000, 12)
	uc := newLoanUseCase(s)

	// Por encima de saldo + interés (12120) se rechaza, no se recorta.
	_, err := uc.RecordPayment(context.Background(), testActor(), loan.ID, dto.RecordLoanPaymentRequest{
		Amount: decimal.NewFromInt(12_121),
	})

	var exceedsErr *domain.PaymentExceedsBalanceError
	require.ErrorAs(t, err, &exceedsErr)
	assert.Equal(t, loan.ID, exceedsErr.LoanID)
	assert.True(t, exceedsErr.Remaining.Equal(decimal.NewFromInt(12_000)))
	assert.True(t, s.loans[loan.ID].RemainingAmount.Equal(decimal.NewFromInt(12_000)), "el saldo no cambia")
	assert.Empty(t, s.loanPayments)
}

func TestLoanPayment_CuotaNoCubreInteres(t *testing.T) {
	s := newFakeStore()
	seedEmployee(s)
	loan := createLoan(t, s, 100_000, 12)
	uc := newLoanUseCase(s)

	// Interés devengado: 1000. Una cuota menor dejaría el saldo creciendo.
	_, err := uc.RecordPayment(context.Background(), testActor(), loan.ID, dto.RecordLoanPaymentRequest{
		Amount: decimal.NewFromInt(999),
	})

	var belowErr *domain.PaymentBelowInterestError
	require.ErrorAs(t, err, &belowErr)
	assert.True(t, belowErr.Interest.Equal(decimal.NewFromInt(1000)))
	assert.True(t, s.loans[loan.ID].RemainingAmount.Equal(decimal.NewFromInt(100_000)))
	assert.Empty(t, s.loanPayments)
	assert.Len(t, s.entries, 2, "solo queda el asiento del desembolso")
}

// Una cuota exactamente igual al interés devengado es válida: amortiza cero
// principal, el saldo no cambia y el asiento omite la línea de principal.
func TestLoanPayment_CuotaSoloInteres(t *testing.T) {
	s := newFakeStore()
	seedEmployee(s)
	loan := createLoan(t, s, 100_000, 12)
	uc := newLoanUseCase(s)

	resp, err := uc.RecordPayment(context.Background(), testActor(), loan.ID, dto.RecordLoanPaymentRequest{
		Amount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	assert.True(t, resp.Interest.Equal(decimal.NewFromInt(1000)), "interés: %s", resp.Interest)
	assert.True(t, resp.Principal.IsZero(), "principal: %s", resp.Principal)

	stored := s.loans[loan.ID]
	assert.True(t, stored.RemainingAmount.Equal(decimal.NewFromInt(100_000)), "saldo: %s", stored.RemainingAmount)
	assert.Equal(t, entity.LoanStatusActive, stored.Status)

	// Dos líneas: tesorería al debe, 771 al haber. Sin línea 421 en cero.
	repo := &fakeLedgerRepo{s}
	entries, err := repo.ListEntriesBySource(context.Background(), testCompanyID, entity.DocumentTypeLoan, resp.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	var debit, credit decimal.Decimal
	for _, e := range entries {
		assert.NotEqual(t, entity.AccountEmployeeLoans, e.AccountNumber)
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	assert.True(t, debit.Equal(credit), "debe %s != haber %s", debit, credit)
}

// Con montos que no dividen exacto, interés y principal se redondean al
// céntimo antes de persistir y el asiento de la cuota balancea igual.
func TestLoanPayment_RedondeoAlCentimo(t *testing.T) {
	s := newFakeStore()
	seedEmployee(s)
	uc := newLoanUseCase(s)
	ctx := context.Background()

	loan, err := uc.CreateLoan(ctx, testActor(), dto.CreateLoanRequest{
		EmployeeID:     testEmployeeID,
		Amount:         decimal.RequireFromString("100000.50"),
		InterestRate:   decimal.NewFromInt(12),
		MonthlyPayment: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	// Interés bruto 1000.005 -> 1000.01; principal 3999.99.
	resp, err := uc.RecordPayment(ctx, testActor(), loan.ID, dto.RecordLoanPaymentRequest{
		Amount: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	assert.True(t, resp.Interest.Equal(decimal.RequireFromString("1000.01")), "interés: %s", resp.Interest)
	assert.True(t, resp.Principal.Equal(decimal.RequireFromString("3999.99")), "principal: %s", resp.Principal)

	stored := s.loans[loan.ID]
	assert.True(t, stored.RemainingAmount.Equal(decimal.RequireFromString("96000.51")), "saldo: %s", stored.RemainingAmount)

	repo := &fakeLedgerRepo{s}
	entries, err := repo.ListEntriesBySource(ctx, testCompanyID, entity.DocumentTypeLoan, resp.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	var debit, credit decimal.Decimal
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	assert.True(t, debit.Equal(credit), "debe %s != haber %s", debit, credit)
	assert.True(t, debit.Equal(decimal.NewFromInt(5000)))
}

func TestLoanPayment_PrestamoCompletadoNoAdmiteMasCuotas(t *testing.T) {
	s := newFakeStore()
	seedEmployee(s)
	loan := createLoan(t, s, 12_000, 12)
	uc := newLoanUseCase(s)
	ctx := context.Background()

	_, err := uc.RecordPayment(ctx, testActor(), loan.ID, dto.RecordLoanPaymentRequest{
		Amount: decimal.NewFromInt(12_120),
	})
	require.NoError(t, err)

	_, err = uc.RecordPayment(ctx, testActor(), loan.ID, dto.RecordLoanPaymentRequest{
		Amount: decimal.NewFromInt(100),
	})

	var transErr *domain.InvalidStateTransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, entity.LoanStatusCompleted, transErr.Current)
}

// La cuota deja su asiento balanceado: tesorería al debe por la cuota, 421 por
// el principal y 771 por el interés al haber, más un flujo de entrada.
func TestLoanPayment_AsientoBalanceado(t *testing.T) {
	s := newFakeStore()
	seedEmployee(s)
	loan := createLoan(t, s, 100_000, 12)
	uc := newLoanUseCase(s)

	resp, err := uc.RecordPayment(context.Background(), testActor(), loan.ID, dto.RecordLoanPaymentRequest{
		Amount: decimal.NewFromInt(5000),
		Method: "cash",
	})
	require.NoError(t, err)

	repo := &fakeLedgerRepo{s}
	entries, err := repo.ListEntriesBySource(context.Background(), testCompanyID, entity.DocumentTypeLoan, resp.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var debit, credit decimal.Decimal
	for _, e := range entries {
		debit = debit.Add(e.Debit)
		credit = credit.Add(e.Credit)
	}
	assert.True(t, debit.Equal(credit), "debe %s != haber %s", debit, credit)
	assert.Equal(t, entity.AccountCash, entries[0].AccountNumber, "cash enruta a caja")

	require.Len(t, s.flows, 2) // desembolso + cuota
	assert.Equal(t, entity.CashFlowInflow, s.flows[1].Type)
	assert.True(t, s.flows[1].Amount.Equal(decimal.NewFromInt(5000)))
}
