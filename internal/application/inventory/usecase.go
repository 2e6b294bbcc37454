package inventory

import (
	"context"

	"github.com/jhoicas/heleta-pos/internal/application/dto"
	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

// maxMovements tope del listado de movimientos.
const maxMovements = 100

// MovementQueryUseCase lectura del historial de movimientos.
type MovementQueryUseCase struct {
	repo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(repo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{repo: repo}
}

// List devuelve los movimientos más recientes, filtrando por producto y dirección si se indican.
func (uc *MovementQueryUseCase) List(ctx context.Context, productID, direction string, limit int) ([]dto.MovementResponse, error) {
	if direction != "" && !entity.IsValidDirection(direction) {
		return nil, domain.NewInvalidRequest("direction debe ser in u out")
	}
	if limit <= 0 || limit > maxMovements {
		limit = maxMovements
	}
	list, err := uc.repo.List(ctx, repository.MovementFilter{
		ProductID: productID,
		Direction: direction,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Direction: m.Direction,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}
