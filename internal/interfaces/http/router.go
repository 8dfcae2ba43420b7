package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pro/internal/application/auth"
	"github.com/tu-usuario/gestion-pro/internal/application/billing"
	"github.com/tu-usuario/gestion-pro/internal/application/ledger"
	"github.com/tu-usuario/gestion-pro/internal/application/treasury"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CustomerUC *billing.CustomerUseCase
	QuoteUC    *billing.QuoteUseCase
	InvoiceUC  *billing.InvoiceUseCase
	PDFUC      *billing.PDFUseCase
	PaymentUC  *billing.PaymentUseCase
	EmployeeUC *treasury.EmployeeUseCase
	LoanUC     *treasury.LoanUseCase
	ExpenseUC  *treasury.ExpenseUseCase
	LedgerUC   *ledger.QueryUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)

	// Quotes + circuito de aprobación (protegido)
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.Get)
	quotes.Post("/:id/submit", quoteHandler.Submit)
	quotes.Post("/:id/approve-service", RequireRole(string(entity.RoleServiceManager)), quoteHandler.ApproveService)
	quotes.Post("/:id/approve-dg", RequireRole(string(entity.RoleDG)), quoteHandler.ApproveDG)
	quotes.Post("/:id/reject", RequireRole(string(entity.RoleServiceManager), string(entity.RoleDG)), quoteHandler.Reject)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Post("/from-quote/:quoteID", invoiceHandler.CreateFromQuote)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/send", invoiceHandler.Send)
	invoices.Post("/:id/cancel", invoiceHandler.Cancel)

	// Payments (protegido)
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Record)
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.Get)

	// Employees (protegido)
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.Get)

	// Loans (protegido)
	loans := protected.Group("/loans")
	loanHandler := NewLoanHandler(deps.LoanUC)
	loans.Post("/", loanHandler.Create)
	loans.Get("/", loanHandler.List)
	loans.Get("/:id", loanHandler.Get)
	loans.Post("/:id/payments", loanHandler.RecordPayment)
	loans.Get("/:id/payments", loanHandler.ListPayments)

	// Expenses (protegido)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Record)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.Get)

	// Ledger, solo lectura (protegido)
	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledgerGroup.Get("/entries", ledgerHandler.ListEntries)
	ledgerGroup.Get("/cash-flows", ledgerHandler.ListCashFlows)
}
