package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo proyecciones de solo lectura para reportes. Las agregaciones se
// resuelven en SQL; el caso de uso solo suma totales.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StatusRows estado actual del inventario con nombre de proveedor.
func (r *ReportRepo) StatusRows(ctx context.Context) ([]repository.StatusRow, error) {
	query := `
		SELECT p.id, p.name, p.article, p.quantity, p.min_stock, p.price,
		       COALESCE(s.name, ''), p.quantity <= p.min_stock
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("status report: %w", err)
	}
	defer rows.Close()
	var list []repository.StatusRow
	for rows.Next() {
		var row repository.StatusRow
		if err := rows.Scan(
			&row.ProductID, &row.Name, &row.Article, &row.Quantity,
			&row.MinStock, &row.Price, &row.SupplierName, &row.LowStock,
		); err != nil {
			return nil, fmt.Errorf("scan status row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// DynamicsRows totales de movimiento por día y tipo dentro del período.
func (r *ReportRepo) DynamicsRows(ctx context.Context, from, to time.Time) ([]repository.DynamicsRow, error) {
	query := `
		SELECT date_trunc('day', created_at) AS day,
		       COALESCE(SUM(quantity) FILTER (WHERE type = $3), 0),
		       COALESCE(SUM(quantity) FILTER (WHERE type = $4), 0),
		       COALESCE(SUM(quantity) FILTER (WHERE type = $5), 0)
		FROM movements
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, from, to,
		entity.MovementTypeIncome, entity.MovementTypeOutcome, entity.MovementTypeWriteOff,
	)
	if err != nil {
		return nil, fmt.Errorf("dynamics report: %w", err)
	}
	defer rows.Close()
	var list []repository.DynamicsRow
	for rows.Next() {
		var row repository.DynamicsRow
		if err := rows.Scan(&row.Day, &row.Income, &row.Outcome, &row.WriteOff); err != nil {
			return nil, fmt.Errorf("scan dynamics row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// FinancialRows valoración por producto (quantity * price).
func (r *ReportRepo) FinancialRows(ctx context.Context) ([]repository.FinancialRow, error) {
	query := `
		SELECT id, name, article, quantity, price, quantity * price AS total_value
		FROM products
		ORDER BY total_value DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("financial report: %w", err)
	}
	defer rows.Close()
	var list []repository.FinancialRow
	for rows.Next() {
		var row repository.FinancialRow
		if err := rows.Scan(
			&row.ProductID, &row.Name, &row.Article, &row.Quantity,
			&row.Price, &row.TotalValue,
		); err != nil {
			return nil, fmt.Errorf("scan financial row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
