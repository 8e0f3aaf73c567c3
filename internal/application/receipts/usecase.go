// Package receipts implementa los ingresos de mercancía: documentos que solo
// suman stock (camino de adición puro del ledger).
package receipts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bodegapro/bodega-api/internal/application/dto"
	"github.com/bodegapro/bodega-api/internal/application/ledger"
	"github.com/bodegapro/bodega-api/internal/domain"
	"github.com/bodegapro/bodega-api/internal/domain/entity"
	"github.com/bodegapro/bodega-api/internal/domain/repository"
	"github.com/bodegapro/bodega-api/pkg/logger"
)

// UseCase casos de uso de ingresos de mercancía.
type UseCase struct {
	txRunner      ledger.TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	receiptRepo   repository.ReceiptRepository
	activityRepo  repository.ActivityRepository
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ledger.TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	receiptRepo repository.ReceiptRepository,
	activityRepo repository.ActivityRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		receiptRepo:   receiptRepo,
		activityRepo:  activityRepo,
		log:           log,
	}
}

// Create valida y persiste un ingreso, sumando stock por cada línea (la fila
// de stock se crea si es el primer ingreso del producto en esa bodega).
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if in.Code == "" || in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	wh, _ := uc.warehouseRepo.GetByID(in.WarehouseID)
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.receiptRepo.GetByCode(in.Code); existing != nil {
		return nil, domain.ErrDuplicateCode
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	receipt := &entity.GoodsReceipt{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Date:         date,
		WarehouseID:  in.WarehouseID,
		SupplierName: in.SupplierName,
		Note:         in.Note,
		CreatedBy:    userID,
		CreatedAt:    now,
	}
	var movements []ledger.Movement
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		receipt.Items = append(receipt.Items, &entity.GoodsReceiptItem{
			ID:        uuid.New().String(),
			ReceiptID: receipt.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			Amount:    it.Quantity.Mul(it.UnitCost),
		})
		movements = append(movements, ledger.Addition(it.ProductID, in.WarehouseID, it.Quantity))
	}

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.OrderRepository,
		_ repository.TransferRepository,
		receiptRepo repository.ReceiptRepository,
	) error {
		if err := ledger.ApplyMovements(stockRepo, movements, now); err != nil {
			return err
		}
		if err := receiptRepo.Create(receipt); err != nil {
			return err
		}
		for _, item := range receipt.Items {
			if err := receiptRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recordActivity(userID, receipt.ID, "ingreso "+receipt.Code+" registrado en "+receipt.WarehouseID)
	return toReceiptResponse(receipt), nil
}

// GetByID obtiene un ingreso con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	return toReceiptResponse(receipt), nil
}

// List lista ingresos con búsqueda por código.
func (uc *UseCase) List(search string, page dto.PageRequest) (*dto.ReceiptListResponse, error) {
	page.DefaultPage()
	receiptsList, total, err := uc.receiptRepo.List(repository.ReceiptFilter{
		Search: search,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ReceiptListResponse{
		Receipts:   make([]dto.ReceiptResponse, 0, len(receiptsList)),
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}
	for _, r := range receiptsList {
		out.Receipts = append(out.Receipts, *toReceiptResponse(r))
	}
	return out, nil
}

func (uc *UseCase) recordActivity(userID, entityID, detail string) {
	err := uc.activityRepo.Create(&entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    entity.ActivityCreate,
		Entity:    "receipt",
		EntityID:  entityID,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("entity_id", entityID).Msg("bitácora de ingreso no registrada")
	}
}

func toReceiptResponse(r *entity.GoodsReceipt) *dto.ReceiptResponse {
	out := &dto.ReceiptResponse{
		ID:           r.ID,
		Code:         r.Code,
		Date:         r.Date,
		WarehouseID:  r.WarehouseID,
		SupplierName: r.SupplierName,
		Note:         r.Note,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		Items:        make([]dto.ReceiptItemResponse, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		out.Items = append(out.Items, dto.ReceiptItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			Amount:    it.Amount,
		})
	}
	return out
}
