package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL (usable con pool o tx).
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste una alerta de stock bajo.
func (r *AlertRepo) Create(ctx context.Context, alert *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (id, product_id, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		alert.ID, alert.ProductID, alert.Message, alert.IsRead, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock alert: %w", err)
	}
	return nil
}

// List lista alertas persistidas, más recientes primero.
func (r *AlertRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockAlert, error) {
	query := `
		SELECT id, product_id, message, is_read, created_at
		FROM stock_alerts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		var a entity.StockAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Message, &a.IsRead, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkRead marca una alerta como leída.
func (r *AlertRepo) MarkRead(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE stock_alerts SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark stock alert read: %w", err)
	}
	return nil
}

// Delete elimina una alerta persistida.
func (r *AlertRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_alerts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock alert: %w", err)
	}
	return nil
}
