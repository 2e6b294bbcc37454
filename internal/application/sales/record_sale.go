package sales

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/heleta-pos/internal/application/dto"
	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RecordSaleUseCase registra una venta completa en una sola transacción:
// bloquea los productos, valida stock, descuenta, registra movimientos y
// guarda cabecera y líneas. Todo o nada.
type RecordSaleUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(txRunner TxRunner) *RecordSaleUseCase {
	return &RecordSaleUseCase{txRunner: txRunner, now: time.Now}
}

const (
	// maxLineQuantity tope de la columna quantity (INTEGER).
	maxLineQuantity = math.MaxInt32
	// priceScale decimales de NUMERIC(12,2) en precios, subtotales y total.
	priceScale = 2
)

// stagedLine línea ya validada contra el stock bloqueado, lista para escribirse.
type stagedLine struct {
	productID   string
	productName string
	quantity    int
	unitPrice   decimal.Decimal
	subtotal    decimal.Decimal
}

// RecordSale valida la canasta y la confirma de forma atómica.
// Errores: *domain.InvalidRequestError, *domain.ProductNotFoundError,
// *domain.InsufficientStockError o *domain.TransactionFailureError.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, actor entity.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	paymentMethod, err := validateSaleRequest(in)
	if err != nil {
		return nil, err
	}
	productIDs := uniqueIDs(in.Lines)
	lockOrder := append([]string(nil), productIDs...)
	sort.Strings(lockOrder)

	sale, err := InTx(ctx, uc.txRunner, func(ledger repository.StockLedger, saleRepo repository.SaleRepository) (*entity.Sale, error) {
		// 1) Bloqueos antes de cualquier validación. El libro los toma en orden
		// ascendente; recibe el orden de la canasta para informar el primer faltante.
		locked, err := ledger.LockAndRead(ctx, productIDs)
		if err != nil {
			return nil, err
		}

		// 2) Validación en el orden de la canasta; nada se escribe todavía
		staged, decrements, total, err := stageLines(in.Lines, locked)
		if err != nil {
			return nil, err
		}

		now := uc.now()
		saleID := uuid.New().String()

		// 3) Un descuento por producto, en el mismo orden de los bloqueos
		for _, id := range lockOrder {
			if err := ledger.ApplyDecrement(ctx, id, decrements[id]); err != nil {
				return nil, err
			}
		}
		// Un movimiento de salida por línea
		for _, l := range staged {
			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: l.productID,
				Direction: entity.MovementOut,
				Quantity:  l.quantity,
				Reason:    entity.ReasonSale,
				UserID:    actor.UserID,
				CreatedAt: now,
			}
			if err := ledger.RecordMovement(ctx, mov); err != nil {
				return nil, err
			}
		}

		// 4) Cabecera y líneas con precio congelado
		sale := &entity.Sale{
			ID:            saleID,
			Total:         total,
			PaymentMethod: paymentMethod,
			UserID:        actor.UserID,
			CreatedAt:     now,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return nil, err
		}
		for _, l := range staged {
			line := &entity.SaleLine{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				ProductID:   l.productID,
				ProductName: l.productName,
				Quantity:    l.quantity,
				UnitPrice:   l.unitPrice,
				Subtotal:    l.subtotal,
			}
			if err := saleRepo.CreateLine(ctx, line); err != nil {
				return nil, err
			}
			sale.Lines = append(sale.Lines, line)
		}
		return sale, nil
	})
	if err != nil {
		if domain.IsRejection(err) {
			return nil, err
		}
		var txErr *domain.TransactionFailureError
		if errors.As(err, &txErr) {
			return nil, err
		}
		return nil, &domain.TransactionFailureError{Cause: err}
	}
	return toSaleResponse(sale), nil
}

// validateSaleRequest revisa la forma de la canasta sin tocar el almacenamiento.
// Devuelve el medio de pago efectivo (cash si no se informa).
func validateSaleRequest(in dto.CreateSaleRequest) (string, error) {
	if len(in.Lines) == 0 {
		return "", domain.NewInvalidRequest("la venta debe tener al menos una línea")
	}
	for i, l := range in.Lines {
		if l.ProductID == "" {
			return "", domain.NewInvalidRequest("línea %d: product_id requerido", i+1)
		}
		if l.Quantity <= 0 {
			return "", domain.NewInvalidRequest("línea %d: la cantidad debe ser positiva", i+1)
		}
		if l.Quantity > maxLineQuantity {
			return "", domain.NewInvalidRequest("línea %d: la cantidad no puede superar %d", i+1, maxLineQuantity)
		}
		if l.UnitPrice != nil {
			if !l.UnitPrice.IsPositive() {
				return "", domain.NewInvalidRequest("línea %d: el precio unitario debe ser positivo", i+1)
			}
			if !l.UnitPrice.Equal(l.UnitPrice.Round(priceScale)) {
				return "", domain.NewInvalidRequest("línea %d: el precio unitario admite a lo sumo %d decimales", i+1, priceScale)
			}
		}
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentCash
	}
	if !entity.IsValidPaymentMethod(method) {
		return "", domain.NewInvalidRequest("medio de pago desconocido: %s", in.PaymentMethod)
	}
	return method, nil
}

// stageLines valida cada línea contra el stock bloqueado acumulando lo pedido
// por producto, y calcula subtotales y total. decrements agrupa por producto.
func stageLines(lines []dto.SaleLineRequest, locked map[string]repository.LockedProduct) ([]stagedLine, map[string]int, decimal.Decimal, error) {
	staged := make([]stagedLine, 0, len(lines))
	decrements := make(map[string]int, len(locked))
	total := decimal.Zero

	for _, l := range lines {
		p, ok := locked[l.ProductID]
		if !ok {
			return nil, nil, decimal.Zero, &domain.ProductNotFoundError{ProductID: l.ProductID}
		}
		// lo ya reservado nunca supera el stock, así que la resta no desborda
		already := decrements[l.ProductID]
		if l.Quantity > p.Stock-already {
			return nil, nil, decimal.Zero, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   already + l.Quantity,
				Available:   p.Stock,
			}
		}
		decrements[l.ProductID] = already + l.Quantity

		price := p.Price
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		total = total.Add(subtotal)
		staged = append(staged, stagedLine{
			productID:   l.ProductID,
			productName: p.Name,
			quantity:    l.Quantity,
			unitPrice:   price,
			subtotal:    subtotal,
		})
	}
	return staged, decrements, total, nil
}

// uniqueIDs deduplica conservando el orden de la canasta.
func uniqueIDs(lines []dto.SaleLineRequest) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	lines := make([]dto.SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SaleLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return &dto.SaleResponse{
		SaleID:        s.ID,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		UserID:        s.UserID,
		Lines:         lines,
		CreatedAt:     s.CreatedAt,
	}
}
