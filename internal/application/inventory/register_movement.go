package inventory

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/heleta-pos/internal/application/dto"
	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas y salidas manuales de stock de forma
// transaccional: bloqueo de fila, validación, ajuste de stock y movimiento en la misma tx.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, now: time.Now}
}

// maxStock tope de las columnas stock y quantity (INTEGER).
const maxStock = math.MaxInt32

// RegisterMovement bloquea el producto, aplica la entrada o salida y guarda el movimiento.
// Una salida mayor al stock devuelve *domain.InsufficientStockError sin efectos.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, actor entity.Actor, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	direction := strings.ToLower(strings.TrimSpace(in.Direction))
	if direction == "" {
		direction = entity.MovementIn
	}
	switch {
	case in.ProductID == "":
		return nil, domain.NewInvalidRequest("product_id requerido")
	case !entity.IsValidDirection(direction):
		return nil, domain.NewInvalidRequest("direction debe ser in u out")
	case in.Quantity <= 0:
		return nil, domain.NewInvalidRequest("la cantidad debe ser positiva")
	case in.Quantity > maxStock:
		return nil, domain.NewInvalidRequest("la cantidad no puede superar %d", maxStock)
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = entity.ReasonRestock
		if direction == entity.MovementOut {
			reason = "ajuste"
		}
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Direction: direction,
		Quantity:  in.Quantity,
		Reason:    reason,
		UserID:    actor.UserID,
		CreatedAt: uc.now(),
	}
	var stockAfter int

	err := uc.txRunner.Run(ctx, func(ledger repository.StockLedger) error {
		// Bloquea la fila del producto (SELECT FOR UPDATE) antes de validar
		locked, err := ledger.LockAndRead(ctx, []string{in.ProductID})
		if err != nil {
			return err
		}
		p := locked[in.ProductID]

		if direction == entity.MovementOut {
			if p.Stock < in.Quantity {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   in.Quantity,
					Available:   p.Stock,
				}
			}
			if err := ledger.ApplyDecrement(ctx, p.ID, in.Quantity); err != nil {
				return err
			}
			stockAfter = p.Stock - in.Quantity
		} else {
			if p.Stock > maxStock-in.Quantity {
				return domain.NewInvalidRequest("el stock resultante superaría %d", maxStock)
			}
			if err := ledger.ApplyIncrement(ctx, p.ID, in.Quantity); err != nil {
				return err
			}
			stockAfter = p.Stock + in.Quantity
		}
		return ledger.RecordMovement(ctx, mov)
	})
	if err != nil {
		var txErr *domain.TransactionFailureError
		if domain.IsRejection(err) || errors.As(err, &txErr) {
			return nil, err
		}
		return nil, &domain.TransactionFailureError{Cause: err}
	}

	return &dto.RegisterMovementResponse{
		Movement: ToMovementResponse(mov),
		Stock:    stockAfter,
	}, nil
}
