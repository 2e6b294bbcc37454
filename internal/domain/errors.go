package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInUse             = errors.New("recurso en uso")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrLockTimeout       = errors.New("tiempo de espera de bloqueo agotado")
	ErrTransaction       = errors.New("fallo en la transacción")
)

// InvalidRequestError solicitud mal formada o vacía. No produce efectos.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "solicitud inválida: " + e.Reason
}

func (e *InvalidRequestError) Unwrap() error { return ErrInvalidInput }

// NewInvalidRequest construye un InvalidRequestError con el motivo formateado.
func NewInvalidRequest(format string, args ...any) *InvalidRequestError {
	return &InvalidRequestError{Reason: fmt.Sprintf(format, args...)}
}

// ProductNotFoundError un producto de la canasta no existe.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return "producto no encontrado: " + e.ProductID
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }

// InsufficientStockError lleva el nombre y la cantidad disponible para que el
// vendedor ajuste la canasta.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s. Disponible: %d", e.ProductName, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// TransactionFailureError envuelve fallos inesperados de almacenamiento o bloqueo.
// La causa se registra en logs y nunca se expone al cliente.
type TransactionFailureError struct {
	Cause error
}

func (e *TransactionFailureError) Error() string {
	if e.Cause == nil {
		return ErrTransaction.Error()
	}
	return ErrTransaction.Error() + ": " + e.Cause.Error()
}

// Unwrap permite errors.Is tanto con ErrTransaction como con la causa (ej. ErrLockTimeout).
func (e *TransactionFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransaction}
	}
	return []error{ErrTransaction, e.Cause}
}

// IsRejection indica si el error es corregible por el cliente
// (solicitud inválida, producto inexistente o stock insuficiente).
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInsufficientStock)
}
