package repository

import "context"

// SequenceRepository puerto del contador de numeración por familia de documento.
// Next avanza el contador (company, family, year) en una sola operación atómica
// y devuelve el nuevo valor; year = 0 para familias sin reinicio anual.
// Debe llamarse dentro de la transacción del documento que consume el número.
type SequenceRepository interface {
	Next(ctx context.Context, companyID, family string, year int) (int64, error)
}
