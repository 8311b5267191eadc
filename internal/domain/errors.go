package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrUnknownMovementType = errors.New("tipo de movimiento desconocido")
)

// InsufficientStockError indica que una salida o baja pide más unidades de las
// que hay en stock. Envuelve ErrInsufficientStock para que errors.Is funcione.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: hay %d, se requieren %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// UnknownMovementTypeError indica un tipo de movimiento fuera del conjunto
// cerrado INCOME/OUTCOME/WRITE_OFF. Recibir otro tag es un bug de integración
// aguas arriba, no un error del usuario final.
type UnknownMovementTypeError struct {
	Type string
}

func (e *UnknownMovementTypeError) Error() string {
	return fmt.Sprintf("tipo de movimiento desconocido: %q", e.Type)
}

func (e *UnknownMovementTypeError) Unwrap() error { return ErrUnknownMovementType }
