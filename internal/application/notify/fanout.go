package notify

import (
	"context"
	"sync"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Observer recibe alertas de stock bajo. Las implementaciones no deben asumir
// orden de llegada entre alertas de productos distintos.
type Observer interface {
	Name() string
	Notify(ctx context.Context, alert *entity.StockAlert) error
}

// Fanout entrega cada alerta a una lista ordenada de observers.
// Un observer que falla (error o panic) no impide la entrega a los siguientes:
// el fallo se registra y la iteración continúa.
type Fanout struct {
	mu        sync.Mutex
	observers []Observer
	log       *logger.Logger
}

// NewFanout construye el fan-out vacío.
func NewFanout(log *logger.Logger) *Fanout {
	return &Fanout{log: log}
}

// Attach agrega un observer al final de la lista. La lista es un conjunto
// ordenado: re-agregar uno ya registrado es un no-op y conserva su posición.
func (f *Fanout) Attach(o Observer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, attached := range f.observers {
		if attached == o {
			return
		}
	}
	f.observers = append(f.observers, o)
}

// Detach quita un observer de la lista. Quitar uno no registrado es un no-op.
func (f *Fanout) Detach(o Observer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, attached := range f.observers {
		if attached == o {
			f.observers = append(f.observers[:i], f.observers[i+1:]...)
			return
		}
	}
}

// Len devuelve la cantidad de observers registrados.
func (f *Fanout) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.observers)
}

// NotifyAll entrega la alerta a todos los observers en orden de registro.
// Nunca devuelve error: el fallo de un observer queda aislado y registrado.
func (f *Fanout) NotifyAll(ctx context.Context, alert *entity.StockAlert) {
	f.mu.Lock()
	observers := make([]Observer, len(f.observers))
	copy(observers, f.observers)
	f.mu.Unlock()

	for _, o := range observers {
		f.deliver(ctx, o, alert)
	}
}

// deliver entrega a un observer conteniendo errores y panics.
func (f *Fanout) deliver(ctx context.Context, o Observer, alert *entity.StockAlert) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error().
				Str("observer", o.Name()).
				Str("alert_id", alert.ID).
				Interface("panic", r).
				Msg("panic en observer de alertas")
		}
	}()
	if err := o.Notify(ctx, alert); err != nil {
		f.log.Error().
			Err(err).
			Str("observer", o.Name()).
			Str("alert_id", alert.ID).
			Msg("observer de alertas falló")
	}
}
