package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusReportRowDTO fila del reporte de estado de inventario.
type StatusReportRowDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Article      string          `json:"article"`
	Quantity     int             `json:"quantity"`
	MinStock     int             `json:"min_stock"`
	Price        decimal.Decimal `json:"price"`
	SupplierName string          `json:"supplier_name,omitempty"`
	LowStock     bool            `json:"low_stock"`
}

// StatusReportDTO reporte de estado completo.
type StatusReportDTO struct {
	Rows          []StatusReportRowDTO `json:"rows"`
	TotalProducts int                  `json:"total_products"`
	LowStockCount int                  `json:"low_stock_count"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

// DynamicsReportRowDTO totales de movimiento por día.
type DynamicsReportRowDTO struct {
	Day      time.Time `json:"day"`
	Income   int       `json:"income"`
	Outcome  int       `json:"outcome"`
	WriteOff int       `json:"write_off"`
}

// DynamicsReportDTO dinámica de movimientos en un período.
type DynamicsReportDTO struct {
	From          time.Time              `json:"from"`
	To            time.Time              `json:"to"`
	Rows          []DynamicsReportRowDTO `json:"rows"`
	TotalIncome   int                    `json:"total_income"`
	TotalOutcome  int                    `json:"total_outcome"`
	TotalWriteOff int                    `json:"total_write_off"`
}

// FinancialReportRowDTO valoración por producto.
type FinancialReportRowDTO struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Article    string          `json:"article"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// FinancialReportDTO valoración total del inventario.
type FinancialReportDTO struct {
	Rows        []FinancialReportRowDTO `json:"rows"`
	TotalValue  decimal.Decimal         `json:"total_value"`
	GeneratedAt time.Time               `json:"generated_at"`
}
