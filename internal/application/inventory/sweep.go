package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/notify"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockAlertEngine recorre el catálogo completo tras cada mutación y emite
// una alerta por cada producto con quantity <= min_stock (umbral inclusivo).
// El barrido no deduplica: cada pasada que encuentra un producto calificado
// emite una alerta nueva, igual que cada movimiento re-chequea todo el catálogo.
type StockAlertEngine struct {
	productRepo repository.ProductRepository
	fanout      *notify.Fanout
	registry    *notify.Registry
}

// NewStockAlertEngine construye el motor de alertas.
func NewStockAlertEngine(productRepo repository.ProductRepository, fanout *notify.Fanout, registry *notify.Registry) *StockAlertEngine {
	return &StockAlertEngine{productRepo: productRepo, fanout: fanout, registry: registry}
}

// Run hace un barrido y devuelve las alertas emitidas. Un barrido vacío es
// válido y silencioso. Cada alerta se entrega a los observers del fan-out y
// al registry; ambos destinos son independientes entre sí.
func (e *StockAlertEngine) Run(ctx context.Context) ([]*entity.StockAlert, error) {
	products, err := e.productRepo.FindAtOrBelowMinStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer productos bajo mínimo: %w", err)
	}

	now := time.Now()
	alerts := make([]*entity.StockAlert, 0, len(products))
	for _, p := range products {
		alert := &entity.StockAlert{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Message:   fmt.Sprintf("stock bajo: %q tiene %d unidades (mínimo %d)", p.Name, p.Quantity, p.MinStock),
			CreatedAt: now,
		}
		e.fanout.NotifyAll(ctx, alert)
		e.registry.Notify(alert)
		alerts = append(alerts, alert)
	}
	return alerts, nil
}
