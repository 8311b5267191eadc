package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Quantity inicial entra como alta directa, no como movimiento.
type CreateProductRequest struct {
	Name       string          `json:"name"`
	Article    string          `json:"article"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	SupplierID *string         `json:"supplier_id,omitempty"`
	MinStock   *int            `json:"min_stock,omitempty"` // nil = DefaultMinStock
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se tocan.
// Quantity no es editable por esta vía: se maneja solo vía movimientos.
type UpdateProductRequest struct {
	Name       *string          `json:"name,omitempty"`
	Article    *string          `json:"article,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	SupplierID *string          `json:"supplier_id,omitempty"`
	MinStock   *int             `json:"min_stock,omitempty"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Article    string          `json:"article"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	SupplierID *string         `json:"supplier_id,omitempty"`
	MinStock   int             `json:"min_stock"`
	LowStock   bool            `json:"low_stock"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
