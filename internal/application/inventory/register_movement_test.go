package inventory_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/heleta-pos/internal/application/dto"
	"github.com/jhoicas/heleta-pos/internal/application/inventory"
	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/infrastructure/memory"
)

var bodeguero = entity.Actor{UserID: "u-bodega", Username: "luis", Role: entity.RoleBodeguero}

func newStore() *memory.Store {
	s := memory.New(time.Second)
	s.Seed(entity.Product{ID: "p1", Name: "Helado de coco", Price: decimal.NewFromInt(9), Stock: 4, Category: "Helados"})
	return s
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	s := newStore()
	uc := inventory.NewRegisterMovementUseCase(s)

	res, err := uc.RegisterMovement(context.Background(), bodeguero, dto.RegisterMovementRequest{
		ProductID: "p1", Quantity: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Stock)
	assert.Equal(t, entity.MovementIn, res.Movement.Direction, "dirección por defecto")
	assert.Equal(t, entity.ReasonRestock, res.Movement.Reason)
	assert.Equal(t, bodeguero.UserID, res.Movement.UserID)

	p, err := s.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

func TestRegisterMovement_SalidaMayorAlStockRechazada(t *testing.T) {
	s := newStore()
	uc := inventory.NewRegisterMovementUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), bodeguero, dto.RegisterMovementRequest{
		ProductID: "p1", Direction: "out", Quantity: 5, Reason: "merma",
	})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 4, stockErr.Available)

	list, err := inventory.NewMovementQueryUseCase(s.Movements()).List(context.Background(), "", "", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRegisterMovement_SalidaValida(t *testing.T) {
	s := newStore()
	uc := inventory.NewRegisterMovementUseCase(s)

	res, err := uc.RegisterMovement(context.Background(), bodeguero, dto.RegisterMovementRequest{
		ProductID: "p1", Direction: "OUT", Quantity: 4, Reason: "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stock)
	assert.Equal(t, "merma", res.Movement.Reason)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	uc := inventory.NewRegisterMovementUseCase(newStore())
	cases := map[string]dto.RegisterMovementRequest{
		"sin producto":            {Quantity: 1},
		"cantidad cero":           {ProductID: "p1"},
		"cantidad sobre el tope":  {ProductID: "p1", Quantity: math.MaxInt},
		"stock resultante enorme": {ProductID: "p1", Quantity: math.MaxInt32},
		"dirección inválida":      {ProductID: "p1", Quantity: 1, Direction: "sideways"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.RegisterMovement(context.Background(), bodeguero, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	uc := inventory.NewRegisterMovementUseCase(newStore())
	_, err := uc.RegisterMovement(context.Background(), bodeguero, dto.RegisterMovementRequest{
		ProductID: "zz", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMovementQuery_FiltraPorDireccion(t *testing.T) {
	s := newStore()
	uc := inventory.NewRegisterMovementUseCase(s)
	ctx := context.Background()
	_, err := uc.RegisterMovement(ctx, bodeguero, dto.RegisterMovementRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = uc.RegisterMovement(ctx, bodeguero, dto.RegisterMovementRequest{ProductID: "p1", Direction: "out", Quantity: 1})
	require.NoError(t, err)

	q := inventory.NewMovementQueryUseCase(s.Movements())
	outs, err := q.List(ctx, "p1", entity.MovementOut, 10)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, 1, outs[0].Quantity)

	_, err = q.List(ctx, "", "sideways", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
