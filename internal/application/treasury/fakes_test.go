package treasury_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de tesorería, con la misma semántica
// transaccional snapshot/restore que los de facturación.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	seq          map[string]int64
	employees    map[string]entity.Employee
	loans        map[string]entity.Loan
	loanPayments []entity.LoanPayment
	expenses     map[string]entity.Expense
	entries      []entity.AccountingEntry
	flows        []entity.CashFlow
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seq:       make(map[string]int64),
		employees: make(map[string]entity.Employee),
		loans:     make(map[string]entity.Loan),
		expenses:  make(map[string]entity.Expense),
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.loans {
		c.loans[k] = v
	}
	for k, v := range s.expenses {
		c.expenses[k] = v
	}
	c.loanPayments = append([]entity.LoanPayment(nil), s.loanPayments...)
	c.entries = append([]entity.AccountingEntry(nil), s.entries...)
	c.flows = append([]entity.CashFlow(nil), s.flows...)
	return c
}

type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) RunTreasury(ctx context.Context, fn func(
	seqRepo repository.SequenceRepository,
	employeeRepo repository.EmployeeRepository,
	loanRepo repository.LoanRepository,
	expenseRepo repository.ExpenseRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	snap := r.store.clone()
	err := fn(
		&fakeSequenceRepo{r.store},
		&fakeEmployeeRepo{r.store},
		&fakeLoanRepo{r.store},
		&fakeExpenseRepo{r.store},
		&fakeLedgerRepo{r.store},
	)
	if err != nil {
		*r.store = *snap
	}
	return err
}

type fakeSequenceRepo struct{ s *fakeStore }

func (r *fakeSequenceRepo) Next(_ context.Context, companyID, family string, year int) (int64, error) {
	key := fmt.Sprintf("%s/%s/%d", companyID, family, year)
	r.s.seq[key]++
	return r.s.seq[key], nil
}

type fakeEmployeeRepo struct{ s *fakeStore }

func (r *fakeEmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.s.employees[e.ID] = *e
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	e, ok := r.s.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeEmployeeRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.s.employees {
		if e.CompanyID == companyID {
			ee := e
			out = append(out, &ee)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

type fakeLoanRepo struct{ s *fakeStore }

func (r *fakeLoanRepo) Create(_ context.Context, l *entity.Loan) error {
	r.s.loans[l.ID] = *l
	return nil
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id string) (*entity.Loan, error) {
	l, ok := r.s.loans[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *fakeLoanRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Loan, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeLoanRepo) Update(_ context.Context, l *entity.Loan) error {
	r.s.loans[l.ID] = *l
	return nil
}

func (r *fakeLoanRepo) CreatePayment(_ context.Context, p *entity.LoanPayment) error {
	r.s.loanPayments = append(r.s.loanPayments, *p)
	return nil
}

func (r *fakeLoanRepo) ListPayments(_ context.Context, loanID string) ([]*entity.LoanPayment, error) {
	var out []*entity.LoanPayment
	for i := range r.s.loanPayments {
		if r.s.loanPayments[i].LoanID == loanID {
			p := r.s.loanPayments[i]
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Loan, error) {
	var out []*entity.Loan
	for _, l := range r.s.loans {
		if l.CompanyID == companyID {
			ll := l
			out = append(out, &ll)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

type fakeExpenseRepo struct{ s *fakeStore }

func (r *fakeExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.s.expenses[e.ID] = *e
	return nil
}

func (r *fakeExpenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	e, ok := r.s.expenses[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeExpenseRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.s.expenses {
		if e.CompanyID == companyID {
			ee := e
			out = append(out, &ee)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

type fakeLedgerRepo struct{ s *fakeStore }

func (r *fakeLedgerRepo) CreateEntry(_ context.Context, e *entity.AccountingEntry) error {
	r.s.entries = append(r.s.entries, *e)
	return nil
}

func (r *fakeLedgerRepo) CreateCashFlow(_ context.Context, f *entity.CashFlow) error {
	r.s.flows = append(r.s.flows, *f)
	return nil
}

func (r *fakeLedgerRepo) ListEntriesBySource(_ context.Context, companyID, documentType, documentID string) ([]*entity.AccountingEntry, error) {
	var out []*entity.AccountingEntry
	for i := range r.s.entries {
		e := r.s.entries[i]
		if e.CompanyID == companyID && e.SourceDocumentType == documentType && e.SourceDocumentID == documentID {
			out = append(out, &e)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) ListCashFlows(_ context.Context, companyID string, limit, offset int) ([]*entity.CashFlow, error) {
	var out []*entity.CashFlow
	for i := range r.s.flows {
		f := r.s.flows[i]
		if f.CompanyID == companyID {
			out = append(out, &f)
		}
	}
	return page(out, limit, offset), nil
}

func formatYearNumber(prefix string, year, n int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, n)
}

func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
