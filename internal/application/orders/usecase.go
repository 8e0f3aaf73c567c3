// Package orders implementa el disparador de transición de estado de órdenes:
// decide cuándo un cambio de estado mueve stock y delega el ajuste al ledger.
package orders

import (
	"context"
	"fmt"
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

// UseCase casos de uso de órdenes de venta: crear, transicionar, eliminar, listar.
// Solo entrar o salir de COMPLETED mueve stock; el resto de transiciones solo
// persiste el documento.
type UseCase struct {
	txRunner      ledger.TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	orderRepo     repository.OrderRepository
	activityRepo  repository.ActivityRepository
	storage       FileStorage
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ledger.TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.OrderRepository,
	activityRepo repository.ActivityRepository,
	storage FileStorage,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		orderRepo:     orderRepo,
		activityRepo:  activityRepo,
		storage:       storage,
		log:           log,
	}
}

// Create valida y persiste una orden. Si nace directamente en COMPLETED,
// deduce el stock de cada línea en la misma transacción que crea el documento.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Code == "" || in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.OrderStatusDraft
	}
	if !entity.IsValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	wh, _ := uc.warehouseRepo.GetByID(in.WarehouseID)
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.orderRepo.GetByCode(in.Code); existing != nil {
		return nil, domain.ErrDuplicateCode
	}

	products, err := uc.resolveProducts(itemProductIDs(in.Items))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Status:       status,
		WarehouseID:  in.WarehouseID,
		CustomerName: in.CustomerName,
		Note:         in.Note,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		price := it.UnitPrice
		if price.IsZero() {
			price = products[it.ProductID].Price
		}
		order.Items = append(order.Items, &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: price,
			Amount:    it.Quantity.Mul(price),
		})
	}

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		_ repository.TransferRepository,
		_ repository.ReceiptRepository,
	) error {
		if status == entity.OrderStatusCompleted {
			if err := ledger.ApplyMovements(stockRepo, uc.deductions(order, products), now); err != nil {
				return err
			}
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recordActivity(userID, entity.ActivityCreate, order.ID, "orden "+order.Code+" creada en "+order.Status)
	return toOrderResponse(order), nil
}

// Update aplica cambios de estado y adjuntos a una orden.
//
// Entrar a COMPLETED deduce cada línea con piso de stock: un solo faltante
// aborta toda la operación y el documento queda intacto. Salir de COMPLETED
// restaura cada línea como upsert (si la fila de stock desapareció se recrea).
// Las demás transiciones no mueven stock.
func (uc *UseCase) Update(ctx context.Context, id, userID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	if in.Status != nil && !entity.IsValidOrderStatus(*in.Status) {
		return nil, domain.ErrInvalidInput
	}

	// Los productos se resuelven fuera de la transacción: las líneas de una
	// orden no cambian después de creada.
	var products map[string]*entity.Product
	if in.Status != nil {
		products, err = uc.resolveProducts(orderProductIDs(order))
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	var oldStatus string
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		_ repository.TransferRepository,
		_ repository.ReceiptRepository,
	) error {
		// La transición se decide sobre la fila bloqueada, no sobre la lectura
		// inicial: dos PUT concurrentes a COMPLETED no deducen dos veces.
		current, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		oldStatus = current.Status
		newStatus := oldStatus
		if in.Status != nil {
			newStatus = *in.Status
		}
		entering := oldStatus != entity.OrderStatusCompleted && newStatus == entity.OrderStatusCompleted
		leaving := oldStatus == entity.OrderStatusCompleted && newStatus != entity.OrderStatusCompleted

		current.Status = newStatus
		if in.DocumentPath != nil {
			current.DocumentPath = *in.DocumentPath
		}
		if in.PaymentReceiptPath != nil {
			current.PaymentReceiptPath = *in.PaymentReceiptPath
		}
		current.UpdatedAt = now

		switch {
		case entering:
			if err := ledger.ApplyMovements(stockRepo, uc.deductions(current, products), now); err != nil {
				return err
			}
		case leaving:
			if err := ledger.ApplyMovements(stockRepo, uc.restorations(current, products), now); err != nil {
				return err
			}
		}
		if err := orderRepo.Update(current); err != nil {
			return err
		}
		order = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if oldStatus != order.Status {
		uc.recordActivity(userID, entity.ActivityUpdate, order.ID,
			fmt.Sprintf("orden %s: %s -> %s", order.Code, oldStatus, order.Status))
	} else {
		uc.recordActivity(userID, entity.ActivityUpdate, order.ID, "orden "+order.Code+" actualizada")
	}
	return toOrderResponse(order), nil
}

// Delete elimina la orden. Si estaba COMPLETED primero restaura el stock de
// cada línea en la misma transacción que borra líneas y cabecera. Los archivos
// adjuntos se borran después del commit, best-effort: un fallo de filesystem
// no revierte la transacción ya confirmada, solo queda en el log.
func (uc *UseCase) Delete(ctx context.Context, id, userID string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}

	// Se resuelven siempre: el estado vigente se conoce recién dentro de la
	// transacción, sobre la fila bloqueada.
	products, err := uc.resolveProducts(orderProductIDs(order))
	if err != nil {
		return err
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		_ repository.TransferRepository,
		_ repository.ReceiptRepository,
	) error {
		current, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.Status == entity.OrderStatusCompleted {
			if err := ledger.ApplyMovements(stockRepo, uc.restorations(current, products), now); err != nil {
				return err
			}
		}
		order = current
		return orderRepo.Delete(current.ID)
	})
	if err != nil {
		return err
	}

	uc.removeFile(order.DocumentPath)
	uc.removeFile(order.PaymentReceiptPath)
	uc.recordActivity(userID, entity.ActivityDelete, order.ID, "orden "+order.Code+" eliminada")
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *UseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista órdenes con búsqueda por código y filtro de estado.
func (uc *UseCase) List(search, status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	ordersList, total, err := uc.orderRepo.List(repository.OrderFilter{
		Search: search,
		Status: status,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Orders:     make([]dto.OrderResponse, 0, len(ordersList)),
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}
	for _, o := range ordersList {
		out.Orders = append(out.Orders, *toOrderResponse(o))
	}
	return out, nil
}

// deductions construye los movimientos de entrada a COMPLETED (despacho).
func (uc *UseCase) deductions(order *entity.Order, products map[string]*entity.Product) []ledger.Movement {
	movs := make([]ledger.Movement, 0, len(order.Items))
	for _, item := range order.Items {
		movs = append(movs, ledger.Deduction(
			item.ProductID, order.WarehouseID, item.Quantity, products[item.ProductID].IsUnlimited,
		))
	}
	return movs
}

// restorations construye los movimientos de salida de COMPLETED (reversa exacta).
func (uc *UseCase) restorations(order *entity.Order, products map[string]*entity.Product) []ledger.Movement {
	movs := make([]ledger.Movement, 0, len(order.Items))
	for _, item := range order.Items {
		movs = append(movs, ledger.Restoration(
			item.ProductID, order.WarehouseID, item.Quantity, products[item.ProductID].IsUnlimited,
		))
	}
	return movs
}

// resolveProducts carga los productos referenciados (lectura fuera de la tx).
func (uc *UseCase) resolveProducts(ids []string) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := products[id]; ok {
			continue
		}
		p, err := uc.productRepo.GetByID(id)
		if err != nil || p == nil {
			return nil, domain.ErrNotFound
		}
		products[id] = p
	}
	return products, nil
}

// recordActivity escribe la bitácora después del commit; un fallo solo se loggea.
func (uc *UseCase) recordActivity(userID, action, entityID, detail string) {
	err := uc.activityRepo.Create(&entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Entity:    "order",
		EntityID:  entityID,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("entity_id", entityID).Msg("bitácora de orden no registrada")
	}
}

func (uc *UseCase) removeFile(path string) {
	if path == "" {
		return
	}
	if err := uc.storage.Remove(path); err != nil {
		uc.log.Warn().Err(err).Str("path", path).Msg("adjunto de orden no eliminado")
	}
}

func itemProductIDs(items []dto.OrderItemRequest) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

func orderProductIDs(order *entity.Order) []string {
	ids := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:                 o.ID,
		Code:               o.Code,
		Status:             o.Status,
		WarehouseID:        o.WarehouseID,
		CustomerName:       o.CustomerName,
		DocumentPath:       o.DocumentPath,
		PaymentReceiptPath: o.PaymentReceiptPath,
		Note:               o.Note,
		CreatedBy:          o.CreatedBy,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		Items:              make([]dto.OrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Amount:    it.Amount,
		})
	}
	return out
}
