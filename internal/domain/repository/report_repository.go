package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatusRow fila del reporte de estado de inventario.
type StatusRow struct {
	ProductID    string
	Name         string
	Article      string
	Quantity     int
	MinStock     int
	Price        decimal.Decimal
	SupplierName string // vacío si el proveedor fue eliminado
	LowStock     bool
}

// DynamicsRow totales de movimiento por día dentro del período consultado.
type DynamicsRow struct {
	Day      time.Time
	Income   int
	Outcome  int
	WriteOff int
}

// FinancialRow valoración de inventario por producto (Quantity * Price).
type FinancialRow struct {
	ProductID  string
	Name       string
	Article    string
	Quantity   int
	Price      decimal.Decimal
	TotalValue decimal.Decimal
}

// ReportRepository proyecciones de solo lectura para los reportes (admin).
type ReportRepository interface {
	StatusRows(ctx context.Context) ([]StatusRow, error)
	DynamicsRows(ctx context.Context, from, to time.Time) ([]DynamicsRow, error)
	FinancialRows(ctx context.Context) ([]FinancialRow, error)
}
