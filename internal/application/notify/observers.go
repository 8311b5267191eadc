package notify

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// PersistObserver guarda la alerta en storage. La entrega es best-effort: si
// el insert falla, el Fanout registra el error y el movimiento que disparó la
// alerta no se ve afectado.
type PersistObserver struct {
	repo repository.AlertRepository
}

// NewPersistObserver construye el observer de persistencia.
func NewPersistObserver(repo repository.AlertRepository) *PersistObserver {
	return &PersistObserver{repo: repo}
}

func (o *PersistObserver) Name() string { return "persist" }

func (o *PersistObserver) Notify(ctx context.Context, alert *entity.StockAlert) error {
	return o.repo.Create(ctx, alert)
}

// LogObserver deja la alerta en el log estructurado.
type LogObserver struct {
	log *logger.Logger
}

// NewLogObserver construye el observer de log.
func NewLogObserver(log *logger.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) Name() string { return "log" }

func (o *LogObserver) Notify(_ context.Context, alert *entity.StockAlert) error {
	o.log.Warn().
		Str("alert_id", alert.ID).
		Str("product_id", alert.ProductID).
		Msg(alert.Message)
	return nil
}

// EmailObserver stub de notificación por correo: simula el envío y lo deja en
// el log. La entrega real por SMTP queda fuera de este servicio.
type EmailObserver struct {
	log *logger.Logger
	to  string
}

// NewEmailObserver construye el stub de correo.
func NewEmailObserver(log *logger.Logger, to string) *EmailObserver {
	return &EmailObserver{log: log, to: to}
}

func (o *EmailObserver) Name() string { return "email" }

func (o *EmailObserver) Notify(_ context.Context, alert *entity.StockAlert) error {
	o.log.Info().
		Str("to", o.to).
		Str("alert_id", alert.ID).
		Msg("correo de alerta simulado")
	return nil
}
