// Package numbering genera los números legibles de documento (CLI-0001,
// FAC-2026-0012, ...) a partir de contadores atómicos por familia.
package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// Familias de documento numeradas.
const (
	FamilyCustomer = "CUSTOMER"
	FamilyEmployee = "EMPLOYEE"
	FamilyQuote    = "QUOTE"
	FamilyInvoice  = "INVOICE"
	FamilyPayment  = "PAYMENT"
	FamilyLoan     = "LOAN"
	FamilyExpense  = "EXPENSE"
)

// FamilySpec formato de numeración de una familia. Si YearScoped, el prefijo
// incluye el año y el contador se reinicia en 1 cada año (fila de contador
// distinta por año).
type FamilySpec struct {
	Prefix     string
	YearScoped bool
	Width      int
}

var families = map[string]FamilySpec{
	FamilyCustomer: {Prefix: "CLI", YearScoped: false, Width: 4},
	FamilyEmployee: {Prefix: "EMP", YearScoped: false, Width: 4},
	FamilyQuote:    {Prefix: "DEV", YearScoped: true, Width: 4},
	FamilyInvoice:  {Prefix: "FAC", YearScoped: true, Width: 4},
	FamilyPayment:  {Prefix: "REG", YearScoped: true, Width: 4},
	FamilyLoan:     {Prefix: "PRT", YearScoped: false, Width: 4},
	FamilyExpense:  {Prefix: "DEP", YearScoped: true, Width: 4},
}

// Spec devuelve el formato de una familia.
func Spec(family string) (FamilySpec, bool) {
	s, ok := families[family]
	return s, ok
}

// Next avanza el contador de la familia y devuelve el número formateado
// (PREFIX-0001 o PREFIX-YYYY-0001). El avance es un upsert atómico en el
// repositorio, por lo que debe invocarse dentro de la transacción del
// documento que consume el número: si esta se revierte, el hueco se revierte
// con ella. Un contador no positivo se reporta como secuencia corrupta, nunca
// se reinicia en silencio (riesgo de colisión de números).
func Next(ctx context.Context, seqs repository.SequenceRepository, companyID, family string, now time.Time) (string, error) {
	spec, ok := families[family]
	if !ok {
		return "", fmt.Errorf("familia de documento desconocida %q: %w", family, domain.ErrInvalidInput)
	}
	year := 0
	if spec.YearScoped {
		year = now.Year()
	}
	n, err := seqs.Next(ctx, companyID, family, year)
	if err != nil {
		return "", fmt.Errorf("avanzar secuencia %s: %w", family, err)
	}
	if n <= 0 {
		return "", fmt.Errorf("contador %s/%d devolvió %d: %w", family, year, n, domain.ErrSequenceCorrupted)
	}
	if spec.YearScoped {
		return fmt.Sprintf("%s-%d-%0*d", spec.Prefix, year, spec.Width, n), nil
	}
	return fmt.Sprintf("%s-%0*d", spec.Prefix, spec.Width, n), nil
}
