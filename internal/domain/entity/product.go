package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MinStock por defecto cuando el alta no lo especifica.
const DefaultMinStock = 10

// Product representa un producto del almacén. Quantity solo se modifica a
// través de movimientos (motor de inventario); el resto de campos por edición
// directa. Invariante: Quantity >= 0 siempre.
type Product struct {
	ID         string
	Name       string
	Article    string // código de artículo, único por proveedor
	Quantity   int
	Price      decimal.Decimal
	SupplierID *string // nil cuando el proveedor fue eliminado
	MinStock   int     // umbral de alerta de stock bajo
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsLowStock indica si el producto está en o bajo su mínimo (umbral inclusivo).
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}
