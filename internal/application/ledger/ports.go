package ledger

import (
	"context"

	"github.com/bodegapro/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el documento
// (orden/traslado/ingreso) y el libro de stock: o se persisten ambos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
		transferRepo repository.TransferRepository,
		receiptRepo repository.ReceiptRepository,
	) error) error
}
