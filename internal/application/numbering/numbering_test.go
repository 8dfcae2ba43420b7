package numbering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/domain"
)

// fakeSequenceRepo contador en memoria, clave (company, family, year).
type fakeSequenceRepo struct {
	counters map[string]int64
	err      error
	forced   map[string]int64 // valores forzados para simular corrupción
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: map[string]int64{}, forced: map[string]int64{}}
}

func (f *fakeSequenceRepo) key(companyID, family string, year int) string {
	return companyID + "|" + family + "|" + time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}

func (f *fakeSequenceRepo) Next(_ context.Context, companyID, family string, year int) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	k := f.key(companyID, family, year)
	if v, ok := f.forced[k]; ok {
		return v, nil
	}
	f.counters[k]++
	return f.counters[k], nil
}

var enero2026 = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

// Primera emisión arranca en 1, las siguientes incrementan con padding fijo.
func TestNext_SecuenciaIncremental(t *testing.T) {
	repo := newFakeSequenceRepo()

	n1, err := Next(context.Background(), repo, "co-1", FamilyCustomer, enero2026)
	require.NoError(t, err)
	n2, err := Next(context.Background(), repo, "co-1", FamilyCustomer, enero2026)
	require.NoError(t, err)

	assert.Equal(t, "CLI-0001", n1)
	assert.Equal(t, "CLI-0002", n2)
}

// Las familias anuales incluyen el año y reinician en 1 al cambiar de año.
func TestNext_FamiliaAnualReiniciaPorAno(t *testing.T) {
	repo := newFakeSequenceRepo()

	n2026, err := Next(context.Background(), repo, "co-1", FamilyInvoice, enero2026)
	require.NoError(t, err)
	assert.Equal(t, "FAC-2026-0001", n2026)

	_, err = Next(context.Background(), repo, "co-1", FamilyInvoice, enero2026)
	require.NoError(t, err)

	n2027, err := Next(context.Background(), repo, "co-1", FamilyInvoice, enero2026.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "FAC-2027-0001", n2027, "nuevo año arranca de nuevo en 1")
}

// Los contadores son independientes por empresa y por familia.
func TestNext_ContadoresIndependientes(t *testing.T) {
	repo := newFakeSequenceRepo()

	a, _ := Next(context.Background(), repo, "co-1", FamilyQuote, enero2026)
	b, _ := Next(context.Background(), repo, "co-2", FamilyQuote, enero2026)
	c, _ := Next(context.Background(), repo, "co-1", FamilyPayment, enero2026)

	assert.Equal(t, "DEV-2026-0001", a)
	assert.Equal(t, "DEV-2026-0001", b)
	assert.Equal(t, "REG-2026-0001", c)
}

// Un contador corrupto (valor no positivo) es un error de integridad:
// jamás se reinicia en silencio a 1.
func TestNext_ContadorCorrupto(t *testing.T) {
	repo := newFakeSequenceRepo()
	repo.forced[repo.key("co-1", FamilyLoan, 0)] = -3

	_, err := Next(context.Background(), repo, "co-1", FamilyLoan, enero2026)
	assert.ErrorIs(t, err, domain.ErrSequenceCorrupted)
}

// Familia desconocida y errores del repositorio se propagan.
func TestNext_Errores(t *testing.T) {
	repo := newFakeSequenceRepo()

	_, err := Next(context.Background(), repo, "co-1", "NOPE", enero2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.err = errors.New("db caída")
	_, err = Next(context.Background(), repo, "co-1", FamilyCustomer, enero2026)
	require.Error(t, err)
	assert.ErrorContains(t, err, "avanzar secuencia")
}
