package usecase

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/notify"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// AlertUseCase superficie de lectura de alertas: las persistidas (storage) y
// las cacheadas (registry en memoria). Ambas son independientes: marcar leída
// no desaloja del cache y limpiar del cache no marca leída.
type AlertUseCase struct {
	repo     repository.AlertRepository
	registry *notify.Registry
}

// NewAlertUseCase construye el caso de uso de alertas.
func NewAlertUseCase(repo repository.AlertRepository, registry *notify.Registry) *AlertUseCase {
	return &AlertUseCase{repo: repo, registry: registry}
}

// ListPersisted lista las alertas persistidas con paginación.
func (uc *AlertUseCase) ListPersisted(ctx context.Context, limit, offset int) ([]dto.AlertResponse, error) {
	alerts, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAlertResponse(a))
	}
	return out, nil
}

// MarkRead marca una alerta persistida como leída.
func (uc *AlertUseCase) MarkRead(ctx context.Context, id string) error {
	return uc.repo.MarkRead(ctx, id)
}

// Stats devuelve el estado del registry: alertas cacheadas en orden de
// inserción y contadores.
func (uc *AlertUseCase) Stats() dto.AlertStatsResponse {
	cached := uc.registry.AllCached()
	out := dto.AlertStatsResponse{
		CachedAlerts:     make([]dto.AlertResponse, 0, len(cached)),
		AlertsCount:      uc.registry.Count(),
		SubscribersCount: uc.registry.SubscribersCount(),
	}
	for _, a := range cached {
		out.CachedAlerts = append(out.CachedAlerts, toAlertResponse(a))
	}
	return out
}

// ClearCached quita una alerta del cache. Devuelve false si no estaba.
func (uc *AlertUseCase) ClearCached(id string) bool {
	return uc.registry.Clear(id)
}

func toAlertResponse(a *entity.StockAlert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:        a.ID,
		ProductID: a.ProductID,
		Message:   a.Message,
		IsRead:    a.IsRead,
		CreatedAt: a.CreatedAt,
	}
}
