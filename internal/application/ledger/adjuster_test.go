package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodegapro/bodega-api/internal/application/ledger"
	"github.com/bodegapro/bodega-api/internal/application/ledger/ledgertest"
	"github.com/bodegapro/bodega-api/internal/domain"
)

const (
	prodA = "prod-a"
	prodB = "prod-b"
	whA   = "wh-a"
	whB   = "wh-b"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Deducción normal: baja la cantidad y respeta el piso de stock.
func TestApplyMovements_Deduccion(t *testing.T) {
	repo := ledgertest.NewStockRepo()
	repo.Seed(prodA, whA, dec("100"))

	err := ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.Deduction(prodA, whA, dec("30"), false),
	}, time.Now())

	require.NoError(t, err)
	assert.True(t, repo.Quantity(prodA, whA).Equal(dec("70")))
}

// Deducción exacta hasta cero: permitida (el piso es >= 0, no > 0).
func TestApplyMovements_DeduccionHastaCero(t *testing.T) {
	repo := ledgertest.NewStockRepo()
	repo.Seed(prodA, whA, dec("30"))

	err := ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.Deduction(prodA, whA, dec("30"), false),
	}, time.Now())

	require.NoError(t, err)
	assert.True(t, repo.Quantity(prodA, whA).IsZero())
}

// Stock insuficiente: error tipado con cantidades, sin mutación.
func TestApplyMovements_StockInsuficiente(t *testing.T) {
	repo := ledgertest.NewStockRepo()
	repo.Seed(prodA, whA, dec("10"))

	err := ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.Deduction(prodA, whA, dec("25"), false),
	}, time.Now())

	require.Error(t, err)
	ise, ok := domain.IsInsufficientStock(err)
	require.True(t, ok, "debe ser InsufficientStockError")
	assert.Equal(t, prodA, ise.ProductID)
	assert.Equal(t, whA, ise.WarehouseID)
	assert.True(t, ise.Available.Equal(dec("10")))
	assert.True(t, ise.Requested.Equal(dec("25")))
	assert.True(t, repo.Quantity(prodA, whA).Equal(dec("10")), "el stock no debe cambiar")
}

// Producto sin fila de stock en la bodega: error distinto al de insuficiencia.
func TestApplyMovements_ProductoSinFilaDeStock(t *testing.T) {
	repo := ledgertest.NewStockRepo()

	err := ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.Deduction(prodA, whA, dec("5"), false),
	}, time.Now())

	assert.ErrorIs(t, err, domain.ErrProductNotInWarehouse)
}

// Producto ilimitado: no-op simétrico, ni deduce ni restaura.
func TestApplyMovements_IlimitadoNoTocaElLibro(t *testing.T) {
	repo := ledgertest.NewStockRepo()
	repo.Seed(prodA, whA, dec("50"))

	err := ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.Deduction(prodA, whA, dec("500"), true),
	}, time.Now())
	require.NoError(t, err, "deducir un ilimitado nunca falla por stock")
	assert.True(t, repo.Quantity(prodA, whA).Equal(dec("50")))

	err = ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.Restoration(prodA, whA, dec("500"), true),
	}, time.Now())
	require.NoError(t, err)
	assert.True(t, repo.Quantity(prodA, whA).Equal(dec("50")), "restaurar tampoco debe sumar")
}

// Restauración como upsert: recrea la fila si desapareció.
func TestApplyMovements_RestauracionRecreaFila(t *testing.T) {
	repo := ledgertest.NewStockRepo()

	err := ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.Restoration(prodA, whA, dec("12"), false),
	}, time.Now())

	require.NoError(t, err)
	require.True(t, repo.Has(prodA, whA))
	assert.True(t, repo.Quantity(prodA, whA).Equal(dec("12")))
}

// Deducción sin piso: puede dejar saldo negativo y crea la fila si falta.
func TestApplyMovements_DeduccionSinPiso(t *testing.T) {
	repo := ledgertest.NewStockRepo()
	repo.Seed(prodA, whA, dec("10"))

	err := ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.UncheckedDeduction(prodA, whA, dec("25")),
	}, time.Now())
	require.NoError(t, err)
	assert.True(t, repo.Quantity(prodA, whA).Equal(dec("-15")))

	// Sin fila previa también procede (queda en negativo desde cero).
	err = ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.UncheckedDeduction(prodB, whB, dec("3")),
	}, time.Now())
	require.NoError(t, err)
	assert.True(t, repo.Quantity(prodB, whB).Equal(dec("-3")))
}

// El primer movimiento que falla aborta la secuencia.
func TestApplyMovements_PrimerErrorAborta(t *testing.T) {
	repo := ledgertest.NewStockRepo()
	repo.Seed(prodA, whA, dec("100"))
	repo.Seed(prodB, whA, dec("1"))

	err := ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.Deduction(prodA, whA, dec("10"), false),
		ledger.Deduction(prodB, whA, dec("5"), false), // insuficiente
	}, time.Now())

	require.Error(t, err)
	_, ok := domain.IsInsufficientStock(err)
	assert.True(t, ok)
	// El caller hace rollback de la tx; aquí solo validamos que el error sube.
}

// Varias líneas sobre el mismo producto se aplican en secuencia.
func TestApplyMovements_MovimientosAcumulados(t *testing.T) {
	repo := ledgertest.NewStockRepo()
	repo.Seed(prodA, whA, dec("100"))

	err := ledger.ApplyMovements(repo, []ledger.Movement{
		ledger.Deduction(prodA, whA, dec("40"), false),
		ledger.Deduction(prodA, whA, dec("40"), false),
		ledger.Addition(prodA, whA, dec("10")),
	}, time.Now())

	require.NoError(t, err)
	assert.True(t, repo.Quantity(prodA, whA).Equal(dec("30")))
}
