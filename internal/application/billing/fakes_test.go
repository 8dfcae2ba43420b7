package billing_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de facturación.
//
// fakeStore guarda copias de las entidades (como lo haría la base de datos) y
// fakeTxRunner emula la semántica transaccional: toma un snapshot antes de
// ejecutar fn y lo restaura si fn retorna error, de modo que los tests puedan
// afirmar que un paso fallido no deja NINGUNA escritura visible.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	seq       map[string]int64
	seqErr    error
	customers map[string]entity.Customer
	quotes    map[string]entity.Quote
	approvals []entity.QuoteApproval
	invoices  map[string]entity.Invoice
	payments  map[string]entity.Payment
	allocs    []entity.PaymentAllocation
	entries   []entity.AccountingEntry
	flows     []entity.CashFlow
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seq:       make(map[string]int64),
		customers: make(map[string]entity.Customer),
		quotes:    make(map[string]entity.Quote),
		invoices:  make(map[string]entity.Invoice),
		payments:  make(map[string]entity.Payment),
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.seqErr = s.seqErr
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.quotes {
		v.Items = append([]entity.QuoteItem(nil), v.Items...)
		c.quotes[k] = v
	}
	for k, v := range s.invoices {
		v.Items = append([]entity.InvoiceItem(nil), v.Items...)
		c.invoices[k] = v
	}
	for k, v := range s.payments {
		v.Allocations = append([]entity.PaymentAllocation(nil), v.Allocations...)
		c.payments[k] = v
	}
	c.approvals = append([]entity.QuoteApproval(nil), s.approvals...)
	c.allocs = append([]entity.PaymentAllocation(nil), s.allocs...)
	c.entries = append([]entity.AccountingEntry(nil), s.entries...)
	c.flows = append([]entity.CashFlow(nil), s.flows...)
	return c
}

// fakeTxRunner snapshot/restore en lugar de BEGIN/ROLLBACK.
type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	seqRepo repository.SequenceRepository,
	customerRepo repository.CustomerRepository,
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	snap := r.store.clone()
	err := fn(
		&fakeSequenceRepo{r.store},
		&fakeCustomerRepo{r.store},
		&fakeQuoteRepo{r.store},
		&fakeInvoiceRepo{r.store},
		&fakePaymentRepo{r.store},
		&fakeLedgerRepo{r.store},
	)
	if err != nil {
		*r.store = *snap
	}
	return err
}

// ── Secuencias ────────────────────────────────────────────────────────────────

type fakeSequenceRepo struct{ s *fakeStore }

func (r *fakeSequenceRepo) Next(_ context.Context, companyID, family string, year int) (int64, error) {
	if r.s.seqErr != nil {
		return 0, r.s.seqErr
	}
	key := fmt.Sprintf("%s/%s/%d", companyID, family, year)
	r.s.seq[key]++
	return r.s.seq[key], nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCustomerRepo) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.CompanyID == companyID && c.TaxID == taxID {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.CompanyID == companyID {
			cc := c
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

// ── Presupuestos ──────────────────────────────────────────────────────────────

type fakeQuoteRepo struct{ s *fakeStore }

func (r *fakeQuoteRepo) Create(_ context.Context, q *entity.Quote) error {
	cp := *q
	cp.Items = append([]entity.QuoteItem(nil), q.Items...)
	r.s.quotes[q.ID] = cp
	return nil
}

func (r *fakeQuoteRepo) GetByID(_ context.Context, id string) (*entity.Quote, error) {
	q, ok := r.s.quotes[id]
	if !ok {
		return nil, nil
	}
	q.Items = append([]entity.QuoteItem(nil), q.Items...)
	return &q, nil
}

func (r *fakeQuoteRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Quote, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeQuoteRepo) Update(_ context.Context, q *entity.Quote) error {
	cp := *q
	cp.Items = append([]entity.QuoteItem(nil), q.Items...)
	r.s.quotes[q.ID] = cp
	return nil
}

func (r *fakeQuoteRepo) AddApproval(_ context.Context, a *entity.QuoteApproval) error {
	r.s.approvals = append(r.s.approvals, *a)
	return nil
}

func (r *fakeQuoteRepo) ListApprovals(_ context.Context, quoteID string) ([]*entity.QuoteApproval, error) {
	var out []*entity.QuoteApproval
	for i := range r.s.approvals {
		if r.s.approvals[i].QuoteID == quoteID {
			a := r.s.approvals[i]
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r *fakeQuoteRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Quote, error) {
	var out []*entity.Quote
	for _, q := range r.s.quotes {
		if q.CompanyID == companyID {
			qq := q
			out = append(out, &qq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

// ── Facturas ──────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct{ s *fakeStore }

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	cp.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	r.s.invoices[inv.ID] = cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	inv.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return &inv, nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeInvoiceRepo) GetByQuoteID(_ context.Context, quoteID string) (*entity.Invoice, error) {
	for _, inv := range r.s.invoices {
		if inv.QuoteID == quoteID {
			out := inv
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	cp.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	r.s.invoices[inv.ID] = cp
	return nil
}

func (r *fakeInvoiceRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CompanyID == companyID {
			ii := inv
			out = append(out, &ii)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

type fakePaymentRepo struct{ s *fakeStore }

func (r *fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	cp := *p
	cp.Allocations = append([]entity.PaymentAllocation(nil), p.Allocations...)
	r.s.payments[p.ID] = cp
	return nil
}

func (r *fakePaymentRepo) CreateAllocation(_ context.Context, a *entity.PaymentAllocation) error {
	r.s.allocs = append(r.s.allocs, *a)
	return nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	p.Allocations = nil
	for _, a := range r.s.allocs {
		if a.PaymentID == id {
			p.Allocations = append(p.Allocations, a)
		}
	}
	return &p, nil
}

func (r *fakePaymentRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.CompanyID == companyID {
			pp := p
			out = append(out, &pp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return page(out, limit, offset), nil
}

// ── Libro mayor ───────────────────────────────────────────────────────────────

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
