package notify

import (
	"sync"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Registry cache en memoria de las alertas más recientes, indexado por id y
// con orden de inserción. Vive lo que vive el proceso: no se persiste y se
// reinicia en cada arranque (es un cache, no fuente de verdad). Se construye
// una vez en main y se inyecta donde haga falta; no hay global oculto.
//
// Seguro para uso concurrente desde múltiples requests en vuelo.
type Registry struct {
	mu          sync.Mutex
	alerts      map[string]*entity.StockAlert
	order       []string // ids en orden de primera inserción
	subscribers []subscription
	nextSubID   int
}

type subscription struct {
	id int
	fn func(*entity.StockAlert)
}

// NewRegistry construye el registry vacío.
func NewRegistry() *Registry {
	return &Registry{alerts: make(map[string]*entity.StockAlert)}
}

// Notify cachea la alerta (upsert por id; re-notificar el mismo id conserva su
// posición original) e invoca los callbacks suscritos. Los callbacks corren
// fuera del lock del mapa.
func (r *Registry) Notify(alert *entity.StockAlert) {
	r.mu.Lock()
	if _, exists := r.alerts[alert.ID]; !exists {
		r.order = append(r.order, alert.ID)
	}
	r.alerts[alert.ID] = alert
	subs := make([]subscription, len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.Unlock()

	for _, s := range subs {
		s.fn(alert)
	}
}

// AllCached devuelve las alertas cacheadas en orden de inserción.
func (r *Registry) AllCached() []*entity.StockAlert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.StockAlert, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.alerts[id])
	}
	return out
}

// Count devuelve la cantidad de ids distintos cacheados.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}

// SubscribersCount devuelve la cantidad de callbacks actualmente suscritos.
func (r *Registry) SubscribersCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}

// Clear quita exactamente una entrada del cache. Devuelve false si el id no
// estaba cacheado. No toca la alerta persistida ni su estado de lectura.
func (r *Registry) Clear(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.alerts[id]; !exists {
		return false
	}
	delete(r.alerts, id)
	for i, cached := range r.order {
		if cached == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Subscribe registra un callback que se invoca en cada Notify y devuelve la
// función para desuscribirlo. Desuscribir dos veces es un no-op.
func (r *Registry) Subscribe(fn func(*entity.StockAlert)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextSubID
	r.nextSubID++
	r.subscribers = append(r.subscribers, subscription{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.subscribers {
			if s.id == id {
				r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
				return
			}
		}
	}
}
