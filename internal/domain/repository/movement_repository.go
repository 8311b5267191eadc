package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementRepository puerto de persistencia para el ledger de movimientos.
// Solo inserta y lee: los movimientos son inmutables una vez creados.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*entity.Movement, error)
}
