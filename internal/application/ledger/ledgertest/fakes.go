// Package ledgertest provee dobles en memoria de los puertos de persistencia
// para probar los casos de uso que mueven stock. El TxRunner falso emula el
// rollback: si la función devuelve error, todo estado previo se restaura.
package ledgertest

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bodegapro/bodega-api/internal/application/ledger"
	"github.com/bodegapro/bodega-api/internal/domain/entity"
	"github.com/bodegapro/bodega-api/internal/domain/repository"
)

// ── Stock ─────────────────────────────────────────────────────────────────────

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

// StockRepo implementación en memoria de repository.StockRepository.
type StockRepo struct {
	Rows map[string]*entity.Stock
}

var _ repository.StockRepository = (*StockRepo)(nil)

// NewStockRepo construye el doble vacío.
func NewStockRepo() *StockRepo {
	return &StockRepo{Rows: make(map[string]*entity.Stock)}
}

// Seed registra una fila de stock inicial.
func (r *StockRepo) Seed(productID, warehouseID string, qty decimal.Decimal) {
	r.Rows[stockKey(productID, warehouseID)] = &entity.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
	}
}

// Quantity devuelve la cantidad actual, o cero si la fila no existe.
func (r *StockRepo) Quantity(productID, warehouseID string) decimal.Decimal {
	if s, ok := r.Rows[stockKey(productID, warehouseID)]; ok {
		return s.Quantity
	}
	return decimal.Zero
}

// Has reporta si la fila existe.
func (r *StockRepo) Has(productID, warehouseID string) bool {
	_, ok := r.Rows[stockKey(productID, warehouseID)]
	return ok
}

func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	s, ok := r.Rows[stockKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *StockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.Rows[stockKey(stock.ProductID, stock.WarehouseID)] = &cp
	return nil
}

func (r *StockRepo) ListLevels(filter repository.StockFilter) ([]*entity.StockLevel, int, error) {
	var levels []*entity.StockLevel
	for _, s := range r.Rows {
		if filter.WarehouseID != "" && s.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.ProductID != "" && s.ProductID != filter.ProductID {
			continue
		}
		levels = append(levels, &entity.StockLevel{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return levels, len(levels), nil
}

// snapshot/restore para emular rollback de transacción.
func (r *StockRepo) snapshot() map[string]*entity.Stock {
	snap := make(map[string]*entity.Stock, len(r.Rows))
	for k, v := range r.Rows {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func (r *StockRepo) restore(snap map[string]*entity.Stock) {
	r.Rows = snap
}

// ── Products ──────────────────────────────────────────────────────────────────

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct {
	Products map[string]*entity.Product
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

// NewProductRepo construye el doble vacío.
func NewProductRepo() *ProductRepo {
	return &ProductRepo{Products: make(map[string]*entity.Product)}
}

// Seed registra un producto.
func (r *ProductRepo) Seed(p *entity.Product) {
	r.Products[p.ID] = p
}

func (r *ProductRepo) Create(p *entity.Product) error {
	r.Products[p.ID] = p
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.Products[id], nil
}

func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.Products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.Products[p.ID] = p
	return nil
}

func (r *ProductRepo) List(search string, limit, offset int) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.Products {
		if search == "" || strings.Contains(p.SKU, search) || strings.Contains(p.Name, search) {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

// ── Warehouses ────────────────────────────────────────────────────────────────

// WarehouseRepo implementación en memoria de repository.WarehouseRepository.
type WarehouseRepo struct {
	Warehouses map[string]*entity.Warehouse
}

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// NewWarehouseRepo construye el doble vacío.
func NewWarehouseRepo() *WarehouseRepo {
	return &WarehouseRepo{Warehouses: make(map[string]*entity.Warehouse)}
}

// Seed registra una bodega.
func (r *WarehouseRepo) Seed(w *entity.Warehouse) {
	r.Warehouses[w.ID] = w
}

func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	r.Warehouses[w.ID] = w
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.Warehouses[id], nil
}

func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	r.Warehouses[w.ID] = w
	return nil
}

func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, int, error) {
	var out []*entity.Warehouse
	for _, w := range r.Warehouses {
		out = append(out, w)
	}
	return out, len(out), nil
}

// ── Orders ────────────────────────────────────────────────────────────────────

// OrderRepo implementación en memoria de repository.OrderRepository.
// BeforeLock, si está definido, se invoca al inicio de GetForUpdate; permite
// simular una escritura concurrente confirmada entre la lectura inicial del
// caso de uso y el bloqueo de la fila dentro de la transacción.
type OrderRepo struct {
	Orders     map[string]*entity.Order
	Items      map[string][]*entity.OrderItem
	BeforeLock func(id string)
}

var _ repository.OrderRepository = (*OrderRepo)(nil)

// NewOrderRepo construye el doble vacío.
func NewOrderRepo() *OrderRepo {
	return &OrderRepo{
		Orders: make(map[string]*entity.Order),
		Items:  make(map[string][]*entity.OrderItem),
	}
}

// Seed registra una orden con sus líneas.
func (r *OrderRepo) Seed(o *entity.Order) {
	r.Orders[o.ID] = o
	r.Items[o.ID] = o.Items
}

func (r *OrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.Orders[o.ID] = &cp
	return nil
}

func (r *OrderRepo) CreateItem(it *entity.OrderItem) error {
	r.Items[it.OrderID] = append(r.Items[it.OrderID], it)
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.Orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = r.Items[id]
	return &cp, nil
}

func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	if r.BeforeLock != nil {
		r.BeforeLock(id)
	}
	return r.GetByID(id)
}

func (r *OrderRepo) GetByCode(code string) (*entity.Order, error) {
	for _, o := range r.Orders {
		if o.Code == code {
			return r.GetByID(o.ID)
		}
	}
	return nil, nil
}

func (r *OrderRepo) Update(o *entity.Order) error {
	cp := *o
	r.Orders[o.ID] = &cp
	return nil
}

func (r *OrderRepo) Delete(id string) error {
	delete(r.Orders, id)
	delete(r.Items, id)
	return nil
}

func (r *OrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, int, error) {
	var out []*entity.Order
	for _, o := range r.Orders {
		if filter.Search != "" && !strings.Contains(o.Code, filter.Search) {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, len(out), nil
}

// ── Transfers ─────────────────────────────────────────────────────────────────

// TransferRepo implementación en memoria de repository.TransferRepository.
type TransferRepo struct {
	Transfers map[string]*entity.StockTransfer
	Items     map[string][]*entity.StockTransferItem
}

var _ repository.TransferRepository = (*TransferRepo)(nil)

// NewTransferRepo construye el doble vacío.
func NewTransferRepo() *TransferRepo {
	return &TransferRepo{
		Transfers: make(map[string]*entity.StockTransfer),
		Items:     make(map[string][]*entity.StockTransferItem),
	}
}

func (r *TransferRepo) Create(tr *entity.StockTransfer) error {
	cp := *tr
	r.Transfers[tr.ID] = &cp
	return nil
}

func (r *TransferRepo) CreateItem(it *entity.StockTransferItem) error {
	r.Items[it.TransferID] = append(r.Items[it.TransferID], it)
	return nil
}

func (r *TransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	tr, ok := r.Transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *tr
	cp.Items = r.Items[id]
	return &cp, nil
}

func (r *TransferRepo) GetByCode(code string) (*entity.StockTransfer, error) {
	for _, tr := range r.Transfers {
		if tr.Code == code {
			return r.GetByID(tr.ID)
		}
	}
	return nil, nil
}

func (r *TransferRepo) List(filter repository.TransferFilter) ([]*entity.StockTransfer, int, error) {
	var out []*entity.StockTransfer
	for _, tr := range r.Transfers {
		if filter.Search != "" && !strings.Contains(tr.Code, filter.Search) {
			continue
		}
		if filter.Status != "" && tr.Status != filter.Status {
			continue
		}
		out = append(out, tr)
	}
	return out, len(out), nil
}

// ── Receipts ──────────────────────────────────────────────────────────────────

// ReceiptRepo implementación en memoria de repository.ReceiptRepository.
type ReceiptRepo struct {
	Receipts map[string]*entity.GoodsReceipt
	Items    map[string][]*entity.GoodsReceiptItem
}

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// NewReceiptRepo construye el doble vacío.
func NewReceiptRepo() *ReceiptRepo {
	return &ReceiptRepo{
		Receipts: make(map[string]*entity.GoodsReceipt),
		Items:    make(map[string][]*entity.GoodsReceiptItem),
	}
}

func (r *ReceiptRepo) Create(g *entity.GoodsReceipt) error {
	cp := *g
	r.Receipts[g.ID] = &cp
	return nil
}

func (r *ReceiptRepo) CreateItem(it *entity.GoodsReceiptItem) error {
	r.Items[it.ReceiptID] = append(r.Items[it.ReceiptID], it)
	return nil
}

func (r *ReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	g, ok := r.Receipts[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	cp.Items = r.Items[id]
	return &cp, nil
}

func (r *ReceiptRepo) GetByCode(code string) (*entity.GoodsReceipt, error) {
	for _, g := range r.Receipts {
		if g.Code == code {
			return r.GetByID(g.ID)
		}
	}
	return nil, nil
}

func (r *ReceiptRepo) List(filter repository.ReceiptFilter) ([]*entity.GoodsReceipt, int, error) {
	var out []*entity.GoodsReceipt
	for _, g := range r.Receipts {
		if filter.Search != "" && !strings.Contains(g.Code, filter.Search) {
			continue
		}
		out = append(out, g)
	}
	return out, len(out), nil
}

// ── Activity ──────────────────────────────────────────────────────────────────

// ActivityRepo implementación en memoria de repository.ActivityRepository.
// FailCreate permite simular una bitácora caída (el caso de uso solo loggea).
type ActivityRepo struct {
	Logs       []*entity.ActivityLog
	FailCreate error
}

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// NewActivityRepo construye el doble vacío.
func NewActivityRepo() *ActivityRepo {
	return &ActivityRepo{}
}

func (r *ActivityRepo) Create(l *entity.ActivityLog) error {
	if r.FailCreate != nil {
		return r.FailCreate
	}
	r.Logs = append(r.Logs, l)
	return nil
}

func (r *ActivityRepo) List(filter repository.ActivityFilter) ([]*entity.ActivityLog, int, error) {
	var out []*entity.ActivityLog
	for _, l := range r.Logs {
		if filter.Entity != "" && l.Entity != filter.Entity {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		out = append(out, l)
	}
	return out, len(out), nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner doble de ledger.TxRunner: ejecuta fn contra los dobles y, si fn
// devuelve error, restaura el estado de stock y documentos (rollback).
type TxRunner struct {
	Stock     *StockRepo
	Orders    *OrderRepo
	Transfers *TransferRepo
	Receipts  *ReceiptRepo
}

var _ ledger.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el doble con los repos dados.
func NewTxRunner(stock *StockRepo, orders *OrderRepo, transfers *TransferRepo, receipts *ReceiptRepo) *TxRunner {
	return &TxRunner{Stock: stock, Orders: orders, Transfers: transfers, Receipts: receipts}
}

// Run ejecuta fn. Ante error restaura el snapshot previo, emulando el
// rollback de la transacción real.
func (t *TxRunner) Run(_ context.Context, fn func(
	repository.StockRepository,
	repository.OrderRepository,
	repository.TransferRepository,
	repository.ReceiptRepository,
) error) error {
	stockSnap := t.Stock.snapshot()
	orderSnap, itemSnap := snapshotOrders(t.Orders)
	transferSnap, transferItemSnap := snapshotTransfers(t.Transfers)
	receiptSnap, receiptItemSnap := snapshotReceipts(t.Receipts)

	if err := fn(t.Stock, t.Orders, t.Transfers, t.Receipts); err != nil {
		t.Stock.restore(stockSnap)
		t.Orders.Orders, t.Orders.Items = orderSnap, itemSnap
		t.Transfers.Transfers, t.Transfers.Items = transferSnap, transferItemSnap
		t.Receipts.Receipts, t.Receipts.Items = receiptSnap, receiptItemSnap
		return err
	}
	return nil
}

func snapshotOrders(r *OrderRepo) (map[string]*entity.Order, map[string][]*entity.OrderItem) {
	orders := make(map[string]*entity.Order, len(r.Orders))
	for k, v := range r.Orders {
		cp := *v
		orders[k] = &cp
	}
	items := make(map[string][]*entity.OrderItem, len(r.Items))
	for k, v := range r.Items {
		items[k] = append([]*entity.OrderItem(nil), v...)
	}
	return orders, items
}

func snapshotTransfers(r *TransferRepo) (map[string]*entity.StockTransfer, map[string][]*entity.StockTransferItem) {
	transfers := make(map[string]*entity.StockTransfer, len(r.Transfers))
	for k, v := range r.Transfers {
		cp := *v
		transfers[k] = &cp
	}
	items := make(map[string][]*entity.StockTransferItem, len(r.Items))
	for k, v := range r.Items {
		items[k] = append([]*entity.StockTransferItem(nil), v...)
	}
	return transfers, items
}

func snapshotReceipts(r *ReceiptRepo) (map[string]*entity.GoodsReceipt, map[string][]*entity.GoodsReceiptItem) {
	receipts := make(map[string]*entity.GoodsReceipt, len(r.Receipts))
	for k, v := range r.Receipts {
		cp := *v
		receipts[k] = &cp
	}
	items := make(map[string][]*entity.GoodsReceiptItem, len(r.Items))
	for k, v := range r.Items {
		items[k] = append([]*entity.GoodsReceiptItem(nil), v...)
	}
	return receipts, items
}
