package receipts_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodegapro/bodega-api/internal/application/dto"
	"github.com/bodegapro/bodega-api/internal/application/ledger/ledgertest"
	"github.com/bodegapro/bodega-api/internal/application/receipts"
	"github.com/bodegapro/bodega-api/internal/domain"
	"github.com/bodegapro/bodega-api/internal/domain/entity"
	"github.com/bodegapro/bodega-api/pkg/logger"
)

const (
	testUser = "user-1"
	prodA    = "prod-a"
	whMain   = "wh-main"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	uc    *receipts.UseCase
	stock *ledgertest.StockRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	products := ledgertest.NewProductRepo()
	products.Seed(&entity.Product{ID: prodA, SKU: "SKU-A", Name: "Producto A", Price: dec("10")})

	warehouses := ledgertest.NewWarehouseRepo()
	warehouses.Seed(&entity.Warehouse{ID: whMain, Name: "Bodega Central"})

	stock := ledgertest.NewStockRepo()
	receiptRepo := ledgertest.NewReceiptRepo()
	tx := ledgertest.NewTxRunner(stock, ledgertest.NewOrderRepo(), ledgertest.NewTransferRepo(), receiptRepo)

	uc := receipts.NewUseCase(tx, products, warehouses, receiptRepo, ledgertest.NewActivityRepo(), logger.Nop())
	return &fixture{uc: uc, stock: stock}
}

func request(code, qty string) dto.CreateReceiptRequest {
	return dto.CreateReceiptRequest{
		Code:        code,
		WarehouseID: whMain,
		Items: []dto.ReceiptItemRequest{{
			ProductID: prodA,
			Quantity:  dec(qty),
			UnitCost:  dec("4"),
		}},
	}
}

// Primer ingreso de un producto en una bodega: crea la fila de stock.
func TestCreate_PrimerIngresoCreaFila(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), testUser, request("GR-001", "25"))
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	require.True(t, f.stock.Has(prodA, whMain))
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("25")))
}

// Ingresos posteriores acumulan sobre la fila existente.
func TestCreate_IngresosAcumulan(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("10"))

	_, err := f.uc.Create(context.Background(), testUser, request("GR-002", "15"))
	require.NoError(t, err)

	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("25")))
}

// Código duplicado: rechazado sin sumar stock.
func TestCreate_CodigoDuplicado(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), testUser, request("GR-003", "10"))
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), testUser, request("GR-003", "10"))

	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("10")))
}

// Cantidad no positiva: error de validación.
func TestCreate_CantidadInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), testUser, request("GR-004", "0"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Producto inexistente: not found, nada persiste.
func TestCreate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	req := request("GR-005", "10")
	req.Items[0].ProductID = "prod-fantasma"

	_, err := f.uc.Create(context.Background(), testUser, req)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El monto de la línea se calcula como cantidad por costo unitario.
func TestCreate_CalculaImporte(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), testUser, request("GR-006", "5"))
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Amount.Equal(dec("20")))
}
