package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/gestion-pro/internal/application/auth"
	"github.com/tu-usuario/gestion-pro/internal/application/billing"
	appledger "github.com/tu-usuario/gestion-pro/internal/application/ledger"
	"github.com/tu-usuario/gestion-pro/internal/application/treasury"
	infrapdf "github.com/tu-usuario/gestion-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/gestion-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/gestion-pro/internal/interfaces/http"
	"github.com/tu-usuario/gestion-pro/pkg/config"
	"github.com/tu-usuario/gestion-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios ligados al pool (lecturas fuera de transacción).
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)

	// Escrituras: todas pasan por el TxRunner, que liga los repos a la tx.
	txRunner := postgres.NewTxRunner(pool)
	writer := appledger.NewWriter(log)

	customerUC := billing.NewCustomerUseCase(txRunner, customerRepo)
	quoteUC := billing.NewQuoteUseCase(txRunner, quoteRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, writer)
	paymentUC := billing.NewPaymentUseCase(txRunner, paymentRepo, writer)
	employeeUC := treasury.NewEmployeeUseCase(txRunner, employeeRepo)
	loanUC := treasury.NewLoanUseCase(txRunner, loanRepo, writer)
	expenseUC := treasury.NewExpenseUseCase(txRunner, expenseRepo, writer)
	ledgerUC := appledger.NewQueryUseCase(ledgerRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, pdfGenerator)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestion Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CustomerUC: customerUC,
		QuoteUC:    quoteUC,
		InvoiceUC:  invoiceUC,
		PDFUC:      pdfUC,
		PaymentUC:  paymentUC,
		EmployeeUC: employeeUC,
		LoanUC:     loanUC,
		ExpenseUC:  expenseUC,
		LedgerUC:   ledgerUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
