package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// Asientos estándar. Cada builder devuelve las líneas balanceadas del evento;
// el caller las entrega a Writer.Post junto con el flujo de caja.

// InvoiceLines asiento de facturación:
// debe 411 clientes TTC / haber 701 ventas HT / haber 443 IVA (omitido si es cero).
func InvoiceLines(inv *entity.Invoice) []Line {
	lines := []Line{
		{Account: entity.AccountReceivable, Label: "Factura " + inv.Number, Debit: inv.TotalTTC},
		{Account: entity.AccountSales, Label: "Factura " + inv.Number, Credit: inv.SubtotalHT},
	}
	if inv.TotalVAT.GreaterThan(decimal.Zero) {
		lines = append(lines, Line{Account: entity.AccountVATCollected, Label: "IVA factura " + inv.Number, Credit: inv.TotalVAT})
	}
	return lines
}

// PaymentLines asiento de cobro: debe cuenta de tesorería según el método /
// haber 411 clientes, por el monto total del pago (un solo asiento por pago,
// no por imputación).
func PaymentLines(p *entity.Payment) []Line {
	return []Line{
		{Account: entity.TreasuryAccount(p.Method), Label: "Pago " + p.Number, Debit: p.Amount},
		{Account: entity.AccountReceivable, Label: "Pago " + p.Number, Credit: p.Amount},
	}
}

// ExpenseLines asiento de gasto:
// debe 601 compras HT / debe 445 IVA deducible (si >0) / haber 401 proveedores TTC.
func ExpenseLines(e *entity.Expense) []Line {
	lines := []Line{
		{Account: entity.AccountPurchases, Label: "Gasto " + e.Number, Debit: e.AmountHT},
	}
	if e.VATAmount.GreaterThan(decimal.Zero) {
		lines = append(lines, Line{Account: entity.AccountVATDeductible, Label: "IVA gasto " + e.Number, Debit: e.VATAmount})
	}
	lines = append(lines, Line{Account: entity.AccountPayable, Label: "Gasto " + e.Number, Credit: e.TotalTTC})
	return lines
}

// LoanDisbursementLines asiento de desembolso de préstamo al empleado:
// debe 421 anticipos al personal / haber tesorería.
func LoanDisbursementLines(l *entity.Loan, method entity.PaymentMethod) []Line {
	return []Line{
		{Account: entity.AccountEmployeeLoans, Label: "Préstamo " + l.Number, Debit: l.Amount},
		{Account: entity.TreasuryAccount(method), Label: "Préstamo " + l.Number, Credit: l.Amount},
	}
}

// LoanRepaymentLines asiento de cuota de préstamo: debe tesorería por la cuota /
// haber 421 por el principal / haber 771 por el interés. Las caras en cero se
// omiten: una cuota que solo cubre el interés no lleva línea de principal.
func LoanRepaymentLines(l *entity.Loan, p *entity.LoanPayment, method entity.PaymentMethod) []Line {
	lines := []Line{
		{Account: entity.TreasuryAccount(method), Label: "Cuota préstamo " + l.Number, Debit: p.Amount},
	}
	if p.Principal.GreaterThan(decimal.Zero) {
		lines = append(lines, Line{Account: entity.AccountEmployeeLoans, Label: "Principal préstamo " + l.Number, Credit: p.Principal})
	}
	if p.Interest.GreaterThan(decimal.Zero) {
		lines = append(lines, Line{Account: entity.AccountInterestIncome, Label: "Interés préstamo " + l.Number, Credit: p.Interest})
	}
	return lines
}
