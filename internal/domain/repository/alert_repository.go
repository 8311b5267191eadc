package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// AlertRepository puerto de persistencia para alertas de stock bajo.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.StockAlert) error
	List(ctx context.Context, limit, offset int) ([]*entity.StockAlert, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
