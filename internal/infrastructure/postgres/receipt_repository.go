package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bodegapro/bodega-api/internal/domain"
	"github.com/bodegapro/bodega-api/internal/domain/entity"
	"github.com/bodegapro/bodega-api/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository sobre PostgreSQL.
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

const receiptColumns = `id, code, date, warehouse_id, supplier_name, note, created_by, created_at`

// Create persiste la cabecera del ingreso.
func (r *ReceiptRepo) Create(receipt *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.Code, receipt.Date, receipt.WarehouseID,
		receipt.SupplierName, receipt.Note, receipt.CreatedBy, receipt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del ingreso.
func (r *ReceiptRepo) CreateItem(item *entity.GoodsReceiptItem) error {
	query := `
		INSERT INTO goods_receipt_items (id, receipt_id, product_id, quantity, unit_cost, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ReceiptID, item.ProductID, item.Quantity, item.UnitCost, item.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert receipt item: %w", err)
	}
	return nil
}

// GetByID obtiene el ingreso completo (con líneas). nil = no existe.
func (r *ReceiptRepo) GetByID(id string) (*entity.GoodsReceipt, error) {
	return r.getBy("id", id)
}

// GetByCode obtiene el ingreso por código de documento. nil = no existe.
func (r *ReceiptRepo) GetByCode(code string) (*entity.GoodsReceipt, error) {
	return r.getBy("code", code)
}

func (r *ReceiptRepo) getBy(column, value string) (*entity.GoodsReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM goods_receipts WHERE ` + column + ` = $1`
	receipt, err := r.scanReceipt(r.q.QueryRow(context.Background(), query, value))
	if err != nil || receipt == nil {
		return receipt, err
	}
	items, err := r.itemsFor(receipt.ID)
	if err != nil {
		return nil, err
	}
	receipt.Items = items
	return receipt, nil
}

func (r *ReceiptRepo) scanReceipt(row pgx.Row) (*entity.GoodsReceipt, error) {
	var g entity.GoodsReceipt
	err := row.Scan(
		&g.ID, &g.Code, &g.Date, &g.WarehouseID, &g.SupplierName,
		&g.Note, &g.CreatedBy, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &g, nil
}

func (r *ReceiptRepo) itemsFor(receiptID string) ([]*entity.GoodsReceiptItem, error) {
	query := `
		SELECT id, receipt_id, product_id, quantity, unit_cost, amount
		FROM goods_receipt_items WHERE receipt_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list receipt items: %w", err)
	}
	defer rows.Close()

	var items []*entity.GoodsReceiptItem
	for rows.Next() {
		var it entity.GoodsReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.ProductID, &it.Quantity, &it.UnitCost, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan receipt item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista ingresos (sin líneas) con búsqueda por código.
func (r *ReceiptRepo) List(filter repository.ReceiptFilter) ([]*entity.GoodsReceipt, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND code ILIKE $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT COUNT(*) FROM goods_receipts"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count receipts: %w", err)
	}

	query := fmt.Sprintf("SELECT "+receiptColumns+" FROM goods_receipts"+where+
		" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*entity.GoodsReceipt
	for rows.Next() {
		receipt, err := r.scanReceipt(rows)
		if err != nil {
			return nil, 0, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, total, rows.Err()
}
