package billing

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// PDFUseCase genera la representación PDF de una factura.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoices repository.InvoiceRepository, customers repository.CustomerRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, customers: customers, generator: generator}
}

// GenerateInvoicePDF devuelve el PDF de la factura junto a su número de
// documento (para el nombre del archivo descargado).
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	customer, err := uc.customers.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.GenerateInvoicePDF(ctx, invoice, customer)
	if err != nil {
		return nil, "", err
	}
	return pdf, invoice.Number, nil
}
