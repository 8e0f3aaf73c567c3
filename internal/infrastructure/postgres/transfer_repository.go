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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, code, date, from_warehouse_id, to_warehouse_id, status, note, created_by, created_at`

// Create persiste la cabecera del traslado.
func (r *TransferRepo) Create(transfer *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.Code, transfer.Date, transfer.FromWarehouseID,
		transfer.ToWarehouseID, transfer.Status, transfer.Note, transfer.CreatedBy, transfer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del traslado.
func (r *TransferRepo) CreateItem(item *entity.StockTransferItem) error {
	query := `
		INSERT INTO stock_transfer_items (id, transfer_id, product_id, quantity_out, quantity_in, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TransferID, item.ProductID, item.QuantityOut, item.QuantityIn, item.UnitPrice, item.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert transfer item: %w", err)
	}
	return nil
}

// GetByID obtiene el traslado completo (con líneas). nil = no existe.
func (r *TransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	return r.getBy("id", id)
}

// GetByCode obtiene el traslado por código de documento. nil = no existe.
func (r *TransferRepo) GetByCode(code string) (*entity.StockTransfer, error) {
	return r.getBy("code", code)
}

func (r *TransferRepo) getBy(column, value string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE ` + column + ` = $1`
	transfer, err := r.scanTransfer(r.q.QueryRow(context.Background(), query, value))
	if err != nil || transfer == nil {
		return transfer, err
	}
	items, err := r.itemsFor(transfer.ID)
	if err != nil {
		return nil, err
	}
	transfer.Items = items
	return transfer, nil
}

func (r *TransferRepo) scanTransfer(row pgx.Row) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	err := row.Scan(
		&t.ID, &t.Code, &t.Date, &t.FromWarehouseID, &t.ToWarehouseID,
		&t.Status, &t.Note, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

func (r *TransferRepo) itemsFor(transferID string) ([]*entity.StockTransferItem, error) {
	query := `
		SELECT id, transfer_id, product_id, quantity_out, quantity_in, unit_price, amount
		FROM stock_transfer_items WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockTransferItem
	for rows.Next() {
		var it entity.StockTransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.QuantityOut, &it.QuantityIn, &it.UnitPrice, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista traslados (sin líneas) con búsqueda por código y filtro de estado.
func (r *TransferRepo) List(filter repository.TransferFilter) ([]*entity.StockTransfer, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND code ILIKE $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := r.q.QueryRow(context.Background(), "SELECT COUNT(*) FROM stock_transfers"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transfers: %w", err)
	}

	query := fmt.Sprintf("SELECT "+transferColumns+" FROM stock_transfers"+where+
		" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*entity.StockTransfer
	for rows.Next() {
		transfer, err := r.scanTransfer(rows)
		if err != nil {
			return nil, 0, err
		}
		transfers = append(transfers, transfer)
	}
	return transfers, total, rows.Err()
}
