package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/notify"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Observers de prueba
// ──────────────────────────────────────────────────────────────────────────────

// recordingObserver apunta los ids de las alertas recibidas.
type recordingObserver struct {
	name     string
	received []string
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) Notify(_ context.Context, alert *entity.StockAlert) error {
	o.received = append(o.received, alert.ID)
	return nil
}

// failingObserver siempre devuelve error.
type failingObserver struct{ called int }

func (o *failingObserver) Name() string { return "failing" }

func (o *failingObserver) Notify(_ context.Context, _ *entity.StockAlert) error {
	o.called++
	return errors.New("canal caído")
}

// panickingObserver hace panic en cada entrega.
type panickingObserver struct{}

func (o *panickingObserver) Name() string { return "panicking" }

func (o *panickingObserver) Notify(_ context.Context, _ *entity.StockAlert) error {
	panic("observer roto")
}

func alerta(id string) *entity.StockAlert {
	return &entity.StockAlert{ID: id, ProductID: "p1", Message: "stock bajo"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Attach / Detach
// ──────────────────────────────────────────────────────────────────────────────

func TestFanout_AttachDetach(t *testing.T) {
	f := notify.NewFanout(logger.Nop())
	a := &recordingObserver{name: "a"}
	b := &recordingObserver{name: "b"}

	f.Attach(a)
	f.Attach(b)
	assert.Equal(t, 2, f.Len())

	// Re-agregar uno ya registrado es un no-op: conjunto ordenado, sin duplicados.
	f.Attach(a)
	assert.Equal(t, 2, f.Len())

	f.NotifyAll(context.Background(), alerta("pre-1"))
	assert.Equal(t, []string{"pre-1"}, a.received, "un observer re-agregado recibe cada alerta una sola vez")

	f.Detach(a)
	assert.Equal(t, 1, f.Len())

	// Quitar uno que no está registrado es un no-op.
	f.Detach(a)
	assert.Equal(t, 1, f.Len())

	f.NotifyAll(context.Background(), alerta("a-1"))
	assert.Equal(t, []string{"pre-1"}, a.received, "un observer quitado no recibe más alertas")
	assert.Equal(t, []string{"pre-1", "a-1"}, b.received)
}

// La entrega respeta el orden de registro.
func TestFanout_EntregaEnOrden(t *testing.T) {
	f := notify.NewFanout(logger.Nop())
	var orden []string
	for _, name := range []string{"primero", "segundo", "tercero"} {
		name := name
		f.Attach(&observerFunc{name, func() { orden = append(orden, name) }})
	}

	f.NotifyAll(context.Background(), alerta("a-1"))
	assert.Equal(t, []string{"primero", "segundo", "tercero"}, orden)
}

// observerFunc adapta un func() a Observer para tests de orden.
type observerFunc struct {
	name string
	fn   func()
}

func (o *observerFunc) Name() string                                     { return o.name }
func (o *observerFunc) Notify(context.Context, *entity.StockAlert) error { o.fn(); return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento de fallos
// ──────────────────────────────────────────────────────────────────────────────

// Un observer que devuelve error no impide la entrega a los siguientes.
func TestFanout_ErrorNoCortaLaEntrega(t *testing.T) {
	f := notify.NewFanout(logger.Nop())
	failing := &failingObserver{}
	after := &recordingObserver{name: "after"}
	f.Attach(failing)
	f.Attach(after)

	f.NotifyAll(context.Background(), alerta("a-1"))
	f.NotifyAll(context.Background(), alerta("a-2"))

	assert.Equal(t, 2, failing.called, "el observer fallido se sigue intentando en cada alerta")
	assert.Equal(t, []string{"a-1", "a-2"}, after.received)
}

// Un panic en un observer se contiene y no tumba el fan-out.
func TestFanout_PanicContenido(t *testing.T) {
	f := notify.NewFanout(logger.Nop())
	after := &recordingObserver{name: "after"}
	f.Attach(&panickingObserver{})
	f.Attach(after)

	require.NotPanics(t, func() {
		f.NotifyAll(context.Background(), alerta("a-1"))
	})
	assert.Equal(t, []string{"a-1"}, after.received)
}
