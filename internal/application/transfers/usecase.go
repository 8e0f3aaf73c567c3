// Package transfers implementa los traslados de mercancía entre bodegas.
// Un traslado COMPLETED es efectivo en el momento de crearse: no existe
// promoción posterior de un borrador a COMPLETED.
package transfers

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

// UseCase casos de uso de traslados entre bodegas.
//
// enforceFloor controla si la salida en bodega origen respeta el piso de
// stock. Desactivado reproduce el comportamiento heredado: la deducción es
// incondicional y puede dejar la bodega origen en negativo (correcciones
// históricas). Pendiente de definición por el área de producto.
type UseCase struct {
	txRunner      ledger.TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	transferRepo  repository.TransferRepository
	activityRepo  repository.ActivityRepository
	log           *logger.Logger
	enforceFloor  bool
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ledger.TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	transferRepo repository.TransferRepository,
	activityRepo repository.ActivityRepository,
	log *logger.Logger,
	enforceFloor bool,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		transferRepo:  transferRepo,
		activityRepo:  activityRepo,
		log:           log,
		enforceFloor:  enforceFloor,
	}
}

// Create valida y persiste un traslado. Si el estado es COMPLETED (el
// defecto), por cada línea deduce quantity_out en origen y suma quantity_in
// en destino (creando la fila destino si no existe), todo en una transacción
// junto con el documento. Ninguna mutación de stock ocurre si la validación
// falla.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.Code == "" || in.FromWarehouseID == "" || in.ToWarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.TransferStatusCompleted
	}
	if status != entity.TransferStatusCompleted && status != entity.TransferStatusDraft {
		return nil, domain.ErrInvalidInput
	}

	fromWh, _ := uc.warehouseRepo.GetByID(in.FromWarehouseID)
	toWh, _ := uc.warehouseRepo.GetByID(in.ToWarehouseID)
	if fromWh == nil || toWh == nil {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.transferRepo.GetByCode(in.Code); existing != nil {
		return nil, domain.ErrDuplicateCode
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	transfer := &entity.StockTransfer{
		ID:              uuid.New().String(),
		Code:            in.Code,
		Date:            date,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Status:          status,
		Note:            in.Note,
		CreatedBy:       userID,
		CreatedAt:       now,
	}
	var movements []ledger.Movement
	for _, it := range in.Items {
		if it.ProductID == "" || !it.QuantityOut.GreaterThan(decimal.Zero) || it.QuantityIn.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		price := it.UnitPrice
		if price.IsZero() {
			price = product.Price
		}
		transfer.Items = append(transfer.Items, &entity.StockTransferItem{
			ID:          uuid.New().String(),
			TransferID:  transfer.ID,
			ProductID:   it.ProductID,
			QuantityOut: it.QuantityOut,
			QuantityIn:  it.QuantityIn,
			UnitPrice:   price,
			Amount:      it.QuantityOut.Mul(price),
		})
		if uc.enforceFloor {
			movements = append(movements, ledger.Deduction(it.ProductID, in.FromWarehouseID, it.QuantityOut, false))
		} else {
			movements = append(movements, ledger.UncheckedDeduction(it.ProductID, in.FromWarehouseID, it.QuantityOut))
		}
		movements = append(movements, ledger.Addition(it.ProductID, in.ToWarehouseID, it.QuantityIn))
	}

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.OrderRepository,
		transferRepo repository.TransferRepository,
		_ repository.ReceiptRepository,
	) error {
		if transfer.Status == entity.TransferStatusCompleted {
			if err := ledger.ApplyMovements(stockRepo, movements, now); err != nil {
				return err
			}
		}
		if err := transferRepo.Create(transfer); err != nil {
			return err
		}
		for _, item := range transfer.Items {
			if err := transferRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recordActivity(userID, transfer.ID, "traslado "+transfer.Code+" creado: "+transfer.FromWarehouseID+" -> "+transfer.ToWarehouseID)
	return toTransferResponse(transfer), nil
}

// GetByID obtiene un traslado con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(transfer), nil
}

// List lista traslados con búsqueda por código y filtro de estado.
func (uc *UseCase) List(search, status string, page dto.PageRequest) (*dto.TransferListResponse, error) {
	page.DefaultPage()
	transfersList, total, err := uc.transferRepo.List(repository.TransferFilter{
		Search: search,
		Status: status,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := &dto.TransferListResponse{
		Transfers:  make([]dto.TransferResponse, 0, len(transfersList)),
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}
	for _, tr := range transfersList {
		out.Transfers = append(out.Transfers, *toTransferResponse(tr))
	}
	return out, nil
}

func (uc *UseCase) recordActivity(userID, entityID, detail string) {
	err := uc.activityRepo.Create(&entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    entity.ActivityCreate,
		Entity:    "transfer",
		EntityID:  entityID,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("entity_id", entityID).Msg("bitácora de traslado no registrada")
	}
}

func toTransferResponse(tr *entity.StockTransfer) *dto.TransferResponse {
	out := &dto.TransferResponse{
		ID:              tr.ID,
		Code:            tr.Code,
		Date:            tr.Date,
		FromWarehouseID: tr.FromWarehouseID,
		ToWarehouseID:   tr.ToWarehouseID,
		Status:          tr.Status,
		Note:            tr.Note,
		CreatedBy:       tr.CreatedBy,
		CreatedAt:       tr.CreatedAt,
		Items:           make([]dto.TransferItemResponse, 0, len(tr.Items)),
	}
	for _, it := range tr.Items {
		out.Items = append(out.Items, dto.TransferItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			QuantityOut: it.QuantityOut,
			QuantityIn:  it.QuantityIn,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
		})
	}
	return out
}
