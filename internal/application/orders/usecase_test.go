package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodegapro/bodega-api/internal/application/dto"
	"github.com/bodegapro/bodega-api/internal/application/ledger/ledgertest"
	"github.com/bodegapro/bodega-api/internal/application/orders"
	"github.com/bodegapro/bodega-api/internal/domain"
	"github.com/bodegapro/bodega-api/internal/domain/entity"
	"github.com/bodegapro/bodega-api/pkg/logger"
)

const (
	testUser = "user-1"
	prodA    = "prod-a"
	prodB    = "prod-b"
	prodInf  = "prod-inf"
	whMain   = "wh-main"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeStorage registra los paths eliminados; puede fallar a voluntad.
type fakeStorage struct {
	removed []string
	fail    error
}

func (s *fakeStorage) Remove(path string) error {
	if s.fail != nil {
		return s.fail
	}
	s.removed = append(s.removed, path)
	return nil
}

type fixture struct {
	uc       *orders.UseCase
	stock    *ledgertest.StockRepo
	orders   *ledgertest.OrderRepo
	activity *ledgertest.ActivityRepo
	storage  *fakeStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	products := ledgertest.NewProductRepo()
	products.Seed(&entity.Product{ID: prodA, SKU: "SKU-A", Name: "Producto A", Price: dec("10")})
	products.Seed(&entity.Product{ID: prodB, SKU: "SKU-B", Name: "Producto B", Price: dec("5")})
	products.Seed(&entity.Product{ID: prodInf, SKU: "SKU-INF", Name: "Servicio", Price: dec("20"), IsUnlimited: true})

	warehouses := ledgertest.NewWarehouseRepo()
	warehouses.Seed(&entity.Warehouse{ID: whMain, Name: "Bodega Central"})

	stock := ledgertest.NewStockRepo()
	orderRepo := ledgertest.NewOrderRepo()
	activity := ledgertest.NewActivityRepo()
	storage := &fakeStorage{}
	tx := ledgertest.NewTxRunner(stock, orderRepo, ledgertest.NewTransferRepo(), ledgertest.NewReceiptRepo())

	uc := orders.NewUseCase(tx, products, warehouses, orderRepo, activity, storage, logger.Nop())
	return &fixture{uc: uc, stock: stock, orders: orderRepo, activity: activity, storage: storage}
}

func (f *fixture) mustCreate(t *testing.T, code, status string, items ...dto.OrderItemRequest) *dto.OrderResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), testUser, dto.CreateOrderRequest{
		Code:        code,
		WarehouseID: whMain,
		Status:      status,
		Items:       items,
	})
	require.NoError(t, err)
	return out
}

func item(productID, qty string) dto.OrderItemRequest {
	return dto.OrderItemRequest{ProductID: productID, Quantity: dec(qty)}
}

// Una orden DRAFT no toca el stock.
func TestCreate_DraftNoMueveStock(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))

	out := f.mustCreate(t, "ORD-001", "", item(prodA, "30"))

	assert.Equal(t, entity.OrderStatusDraft, out.Status)
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("100")))
}

// Una orden que nace COMPLETED deduce en la misma operación.
func TestCreate_CompletadaDeduceStock(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))

	out := f.mustCreate(t, "ORD-002", entity.OrderStatusCompleted, item(prodA, "30"))

	assert.Equal(t, entity.OrderStatusCompleted, out.Status)
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("70")))
}

// Código de documento duplicado: error de validación, nada persiste.
func TestCreate_CodigoDuplicado(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	f.mustCreate(t, "ORD-003", "", item(prodA, "1"))

	_, err := f.uc.Create(context.Background(), testUser, dto.CreateOrderRequest{
		Code:        "ORD-003",
		WarehouseID: whMain,
		Items:       []dto.OrderItemRequest{item(prodA, "1")},
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

// Completar y descompletar devuelve el stock exactamente al valor inicial.
func TestUpdate_CompletarYDescompletarEsSimetrico(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	out := f.mustCreate(t, "ORD-010", "", item(prodA, "30"))

	completed := entity.OrderStatusCompleted
	_, err := f.uc.Update(context.Background(), out.ID, testUser, dto.UpdateOrderRequest{Status: &completed})
	require.NoError(t, err)
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("70")))

	draft := entity.OrderStatusDraft
	_, err = f.uc.Update(context.Background(), out.ID, testUser, dto.UpdateOrderRequest{Status: &draft})
	require.NoError(t, err)
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("100")))
}

// Transiciones que no cruzan COMPLETED no mueven stock.
func TestUpdate_TransicionIntermediaNoMueveStock(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	out := f.mustCreate(t, "ORD-011", "", item(prodA, "30"))

	for _, status := range []string{
		entity.OrderStatusPending,
		entity.OrderStatusConfirmed,
		entity.OrderStatusShipped,
		entity.OrderStatusCancelled,
	} {
		s := status
		_, err := f.uc.Update(context.Background(), out.ID, testUser, dto.UpdateOrderRequest{Status: &s})
		require.NoError(t, err)
	}
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("100")))
}

// Un faltante en cualquier línea aborta todo: ni stock ni documento cambian.
func TestUpdate_FaltanteAbortaTodaLaOperacion(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	f.stock.Seed(prodB, whMain, dec("2"))
	out := f.mustCreate(t, "ORD-012", "", item(prodA, "10"), item(prodB, "5"))

	completed := entity.OrderStatusCompleted
	_, err := f.uc.Update(context.Background(), out.ID, testUser, dto.UpdateOrderRequest{Status: &completed})

	require.Error(t, err)
	_, ok := domain.IsInsufficientStock(err)
	assert.True(t, ok)
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("100")), "la línea buena también debe revertirse")
	assert.True(t, f.stock.Quantity(prodB, whMain).Equal(dec("2")))

	persisted, err2 := f.orders.GetByID(out.ID)
	require.NoError(t, err2)
	assert.Equal(t, entity.OrderStatusDraft, persisted.Status, "el documento debe quedar intacto")
}

// Producto ilimitado: completar y descompletar nunca toca su stock registrado.
func TestUpdate_IlimitadoNoAfectaStock(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodInf, whMain, dec("7"))
	out := f.mustCreate(t, "ORD-013", "", item(prodInf, "9999"))

	completed := entity.OrderStatusCompleted
	_, err := f.uc.Update(context.Background(), out.ID, testUser, dto.UpdateOrderRequest{Status: &completed})
	require.NoError(t, err)
	assert.True(t, f.stock.Quantity(prodInf, whMain).Equal(dec("7")))

	draft := entity.OrderStatusDraft
	_, err = f.uc.Update(context.Background(), out.ID, testUser, dto.UpdateOrderRequest{Status: &draft})
	require.NoError(t, err)
	assert.True(t, f.stock.Quantity(prodInf, whMain).Equal(dec("7")))
}

// Completar una orden de un producto que nunca ingresó a la bodega.
func TestUpdate_ProductoSinFilaDeStock(t *testing.T) {
	f := newFixture(t)
	out := f.mustCreate(t, "ORD-014", "", item(prodA, "1"))

	completed := entity.OrderStatusCompleted
	_, err := f.uc.Update(context.Background(), out.ID, testUser, dto.UpdateOrderRequest{Status: &completed})

	assert.ErrorIs(t, err, domain.ErrProductNotInWarehouse)
}

// Eliminar una orden COMPLETED restaura el stock que había descontado.
func TestDelete_CompletadaRestauraStock(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	out := f.mustCreate(t, "ORD-020", entity.OrderStatusCompleted, item(prodA, "40"))
	require.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("60")))

	err := f.uc.Delete(context.Background(), out.ID, testUser)
	require.NoError(t, err)

	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("100")))
	deleted, _ := f.orders.GetByID(out.ID)
	assert.Nil(t, deleted)
}

// Eliminar una orden no COMPLETED no toca el stock.
func TestDelete_DraftNoMueveStock(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	out := f.mustCreate(t, "ORD-021", "", item(prodA, "40"))

	err := f.uc.Delete(context.Background(), out.ID, testUser)
	require.NoError(t, err)
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("100")))
}

// Los adjuntos se borran después del commit; un fallo de filesystem no
// revierte la eliminación ya confirmada.
func TestDelete_FalloDeAdjuntoNoRevierte(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	out := f.mustCreate(t, "ORD-022", "", item(prodA, "1"))

	doc := "orders/ORD-022/remision.pdf"
	_, err := f.uc.Update(context.Background(), out.ID, testUser, dto.UpdateOrderRequest{DocumentPath: &doc})
	require.NoError(t, err)

	f.storage.fail = errors.New("disco lleno")
	err = f.uc.Delete(context.Background(), out.ID, testUser)
	require.NoError(t, err, "el fallo de borrado de archivo no debe propagar")

	deleted, _ := f.orders.GetByID(out.ID)
	assert.Nil(t, deleted)
}

// La bitácora se escribe después del commit; su caída no afecta la operación.
func TestCreate_BitacoraCaidaNoFalla(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	f.activity.FailCreate = errors.New("bitácora caída")

	out := f.mustCreate(t, "ORD-030", entity.OrderStatusCompleted, item(prodA, "10"))

	assert.NotEmpty(t, out.ID)
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("90")))
}

// La actividad registrada lleva la transición de estado.
func TestUpdate_RegistraActividad(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	out := f.mustCreate(t, "ORD-031", "", item(prodA, "5"))

	completed := entity.OrderStatusCompleted
	_, err := f.uc.Update(context.Background(), out.ID, testUser, dto.UpdateOrderRequest{Status: &completed})
	require.NoError(t, err)

	require.NotEmpty(t, f.activity.Logs)
	last := f.activity.Logs[len(f.activity.Logs)-1]
	assert.Equal(t, entity.ActivityUpdate, last.Action)
	assert.Equal(t, "order", last.Entity)
	assert.Contains(t, last.Detail, "DRAFT -> COMPLETED")
}

// Si otra petición completó la orden entre la lectura inicial y el bloqueo de
// la fila, la transición se decide sobre el estado vigente: una orden ya
// COMPLETED no vuelve a deducir.
func TestUpdate_CompletadoConcurrenteNoDeduceDosVeces(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	out := f.mustCreate(t, "ORD-040", "", item(prodA, "30"))

	// Emula el commit de un PUT concurrente: la orden quedó COMPLETED y su
	// deducción ya se aplicó una vez.
	f.orders.BeforeLock = func(string) {
		f.orders.Orders[out.ID].Status = entity.OrderStatusCompleted
		f.stock.Seed(prodA, whMain, dec("70"))
		f.orders.BeforeLock = nil
	}

	completed := entity.OrderStatusCompleted
	updated, err := f.uc.Update(context.Background(), out.ID, testUser, dto.UpdateOrderRequest{Status: &completed})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, updated.Status)
	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("70")),
		"el stock debe deducirse una sola vez")
}

// El DELETE también decide sobre la fila bloqueada: si la orden se completó de
// forma concurrente, la eliminación restaura el stock igual.
func TestDelete_CompletadoConcurrenteRestaura(t *testing.T) {
	f := newFixture(t)
	f.stock.Seed(prodA, whMain, dec("100"))
	out := f.mustCreate(t, "ORD-041", "", item(prodA, "30"))

	f.orders.BeforeLock = func(string) {
		f.orders.Orders[out.ID].Status = entity.OrderStatusCompleted
		f.stock.Seed(prodA, whMain, dec("70"))
		f.orders.BeforeLock = nil
	}

	require.NoError(t, f.uc.Delete(context.Background(), out.ID, testUser))

	assert.True(t, f.stock.Quantity(prodA, whMain).Equal(dec("100")))
	got, err := f.orders.GetByID(out.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
