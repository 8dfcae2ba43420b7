// Package billing contiene los servicios de dominio puros de facturación.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals totales de un documento: neto, IVA y total con impuestos.
type Totals struct {
	SubtotalHT decimal.Decimal
	TotalVAT   decimal.Decimal
	TotalTTC   decimal.Decimal
}

// Rounded devuelve los totales redondeados a 2 decimales para persistencia.
// El TTC se recalcula como HT + IVA ya redondeados, de modo que el invariante
// TotalTTC == SubtotalHT + TotalVAT se cumpla sobre los valores almacenados.
func (t Totals) Rounded() Totals {
	ht := t.SubtotalHT.Round(2)
	vat := t.TotalVAT.Round(2)
	return Totals{SubtotalHT: ht, TotalVAT: vat, TotalTTC: ht.Add(vat)}
}

// ComputeTotals calcula los totales de una lista de líneas. Función pura, sin I/O.
// Por línea: lineHT = cantidad * precioHT * (1 - descuento/100); lineVAT = lineHT * iva/100.
// No redondea resultados intermedios: el redondeo a 2 decimales ocurre una sola
// vez, en el punto de persistencia (Rounded), para no acumular deriva.
func ComputeTotals(items []entity.QuoteItem) (Totals, error) {
	var t Totals
	for _, it := range items {
		if err := validateItem(it); err != nil {
			return Totals{}, err
		}
		discountFactor := decimal.NewFromInt(1).Sub(it.DiscountRate.Div(hundred))
		lineHT := it.Quantity.Mul(it.UnitPriceHT).Mul(discountFactor)
		lineVAT := lineHT.Mul(it.VATRate.Div(hundred))
		t.SubtotalHT = t.SubtotalHT.Add(lineHT)
		t.TotalVAT = t.TotalVAT.Add(lineVAT)
	}
	t.TotalTTC = t.SubtotalHT.Add(t.TotalVAT)
	return t, nil
}

func validateItem(it entity.QuoteItem) error {
	if it.Quantity.IsNegative() || it.UnitPriceHT.IsNegative() {
		return domain.ErrInvalidInput
	}
	if it.DiscountRate.IsNegative() || it.DiscountRate.GreaterThan(hundred) {
		return domain.ErrInvalidInput
	}
	if it.VATRate.IsNegative() || it.VATRate.GreaterThan(hundred) {
		return domain.ErrInvalidInput
	}
	return nil
}
