package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Los métodos Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete elimina el producto; sus movimientos caen en cascada (owned-by).
	Delete(ctx context.Context, id string) error
	// IncrementQuantity aplica un delta (positivo o negativo) sobre quantity.
	// Devuelve el número de filas afectadas.
	IncrementQuantity(ctx context.Context, id string, delta int) (int64, error)
	// FindAtOrBelowMinStock lista los productos con quantity <= min_stock.
	FindAtOrBelowMinStock(ctx context.Context) ([]*entity.Product, error)
	// DetachSupplier pone supplier_id en NULL para todos los productos del proveedor.
	DetachSupplier(ctx context.Context, supplierID string) error
}
