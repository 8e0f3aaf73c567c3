package transfers_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodegapro/bodega-api/internal/application/dto"
	"github.com/bodegapro/bodega-api/internal/application/ledger/ledgertest"
	"github.com/bodegapro/bodega-api/internal/application/transfers"
	"github.com/bodegapro/bodega-api/internal/domain"
	"github.com/bodegapro/bodega-api/internal/domain/entity"
	"github.com/bodegapro/bodega-api/pkg/logger"
)

const (
	testUser = "user-1"
	prodA    = "prod-a"
	whFrom   = "wh-from"
	whTo     = "wh-to"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	uc        *transfers.UseCase
	stock     *ledgertest.StockRepo
	transfers *ledgertest.TransferRepo
}

func newFixture(t *testing.T, enforceFloor bool) *fixture {
	t.Helper()

	products := ledgertest.NewProductRepo()
	products.Seed(&entity.Product{ID: prodA, SKU: "SKU-A", Name: "Producto A", Price: dec("10")})

	warehouses := ledgertest.NewWarehouseRepo()
	warehouses.Seed(&entity.Warehouse{ID: whFrom, Name: "Origen"})
	warehouses.Seed(&entity.Warehouse{ID: whTo, Name: "Destino"})

	stock := ledgertest.NewStockRepo()
	transferRepo := ledgertest.NewTransferRepo()
	tx := ledgertest.NewTxRunner(stock, ledgertest.NewOrderRepo(), transferRepo, ledgertest.NewReceiptRepo())

	uc := transfers.NewUseCase(tx, products, warehouses, transferRepo, ledgertest.NewActivityRepo(), logger.Nop(), enforceFloor)
	return &fixture{uc: uc, stock: stock, transfers: transferRepo}
}

func request(code string, out, in string) dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		Code:            code,
		FromWarehouseID: whFrom,
		ToWarehouseID:   whTo,
		Items: []dto.TransferItemRequest{{
			ProductID:   prodA,
			QuantityOut: dec(out),
			QuantityIn:  dec(in),
		}},
	}
}

// Traslado COMPLETED: descuenta en origen y suma en destino al crearse.
func TestCreate_MueveStockEntreBodegas(t *testing.T) {
	f := newFixture(t, false)
	f.stock.Seed(prodA, whFrom, dec("50"))

	out, err := f.uc.Create(context.Background(), testUser, request("TR-001", "20", "20"))
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusCompleted, out.Status)
	assert.True(t, f.stock.Quantity(prodA, whFrom).Equal(dec("30")))
	assert.True(t, f.stock.Quantity(prodA, whTo).Equal(dec("20")), "la fila destino se crea si no existe")
}

// quantity_in puede diferir de quantity_out (merma en tránsito).
func TestCreate_MermaEnTransito(t *testing.T) {
	f := newFixture(t, false)
	f.stock.Seed(prodA, whFrom, dec("50"))

	_, err := f.uc.Create(context.Background(), testUser, request("TR-002", "20", "18"))
	require.NoError(t, err)

	assert.True(t, f.stock.Quantity(prodA, whFrom).Equal(dec("30")))
	assert.True(t, f.stock.Quantity(prodA, whTo).Equal(dec("18")))
}

// Bodega origen y destino iguales: rechazado antes de tocar nada.
func TestCreate_MismaBodegaRechazada(t *testing.T) {
	f := newFixture(t, false)
	req := request("TR-003", "10", "10")
	req.ToWarehouseID = whFrom

	_, err := f.uc.Create(context.Background(), testUser, req)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Código duplicado: rechazado sin mutación de stock.
func TestCreate_CodigoDuplicado(t *testing.T) {
	f := newFixture(t, false)
	f.stock.Seed(prodA, whFrom, dec("50"))
	_, err := f.uc.Create(context.Background(), testUser, request("TR-004", "10", "10"))
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), testUser, request("TR-004", "10", "10"))

	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	assert.True(t, f.stock.Quantity(prodA, whFrom).Equal(dec("40")), "solo el primer traslado debe aplicarse")
}

// Sin piso de salida (defecto): la bodega origen puede quedar en negativo.
func TestCreate_SalidaSinPisoPermiteNegativo(t *testing.T) {
	f := newFixture(t, false)
	f.stock.Seed(prodA, whFrom, dec("10"))

	_, err := f.uc.Create(context.Background(), testUser, request("TR-005", "25", "25"))
	require.NoError(t, err)

	assert.True(t, f.stock.Quantity(prodA, whFrom).Equal(dec("-15")))
	assert.True(t, f.stock.Quantity(prodA, whTo).Equal(dec("25")))
}

// Con STOCK_ENFORCE_TRANSFER_FLOOR: la salida respeta el piso y todo aborta.
func TestCreate_ConPisoDeSalidaAborta(t *testing.T) {
	f := newFixture(t, true)
	f.stock.Seed(prodA, whFrom, dec("10"))

	_, err := f.uc.Create(context.Background(), testUser, request("TR-006", "25", "25"))

	require.Error(t, err)
	ise, ok := domain.IsInsufficientStock(err)
	require.True(t, ok)
	assert.True(t, ise.Available.Equal(dec("10")))
	assert.True(t, f.stock.Quantity(prodA, whFrom).Equal(dec("10")), "nada debe aplicarse")
	assert.False(t, f.stock.Has(prodA, whTo), "el destino no debe crearse")

	transfer, _ := f.transfers.GetByCode("TR-006")
	assert.Nil(t, transfer, "el documento tampoco debe persistir")
}

// Traslado DRAFT: solo persiste el documento, el stock no cambia.
func TestCreate_DraftNoMueveStock(t *testing.T) {
	f := newFixture(t, false)
	f.stock.Seed(prodA, whFrom, dec("50"))
	req := request("TR-007", "20", "20")
	req.Status = entity.TransferStatusDraft

	out, err := f.uc.Create(context.Background(), testUser, req)
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusDraft, out.Status)
	assert.True(t, f.stock.Quantity(prodA, whFrom).Equal(dec("50")))
	assert.False(t, f.stock.Has(prodA, whTo))
}

// La suma total por producto se conserva cuando out == in.
func TestCreate_ConservacionDelTotal(t *testing.T) {
	f := newFixture(t, false)
	f.stock.Seed(prodA, whFrom, dec("50"))
	f.stock.Seed(prodA, whTo, dec("5"))

	_, err := f.uc.Create(context.Background(), testUser, request("TR-008", "20", "20"))
	require.NoError(t, err)

	total := f.stock.Quantity(prodA, whFrom).Add(f.stock.Quantity(prodA, whTo))
	assert.True(t, total.Equal(dec("55")))
}

// Cantidades inválidas: out debe ser > 0 e in >= 0.
func TestCreate_CantidadesInvalidas(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.uc.Create(context.Background(), testUser, request("TR-009", "0", "5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), testUser, request("TR-010", "5", "-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
