package inventory

import (
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// processor describe el comportamiento de un tipo de movimiento: las notas
// derivadas, el signo del delta sobre el stock y si exige stock suficiente.
// La tabla es el conjunto cerrado {INCOME, OUTCOME, WRITE_OFF}: un tag fuera
// de ella se rechaza antes de cualquier llamada a storage.
type processor struct {
	notes         string
	sign          int // +1 suma stock, -1 resta
	requiresStock bool
}

var processors = map[string]processor{
	entity.MovementTypeIncome:   {notes: "reposición de stock", sign: +1},
	entity.MovementTypeOutcome:  {notes: "salida por despacho", sign: -1, requiresStock: true},
	entity.MovementTypeWriteOff: {notes: "baja por pérdida o daño", sign: -1, requiresStock: true},
}

// processorFor selecciona el processor para el tag dado.
func processorFor(movementType string) (processor, error) {
	p, ok := processors[movementType]
	if !ok {
		return processor{}, &domain.UnknownMovementTypeError{Type: movementType}
	}
	return p, nil
}

// delta devuelve el cambio con signo a aplicar sobre quantity.
func (p processor) delta(quantity int) int {
	return p.sign * quantity
}
