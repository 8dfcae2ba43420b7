package billing

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// facturación atados a esa tx. Si fn retorna error se hace rollback completo:
// ninguna de las escrituras del paso (documento, contadores, asientos, flujos)
// queda persistida.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		seqRepo repository.SequenceRepository,
		customerRepo repository.CustomerRepository,
		quoteRepo repository.QuoteRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer) ([]byte, error)
}
