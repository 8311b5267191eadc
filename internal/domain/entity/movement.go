package entity

import "time"

// Tipos de movimiento de inventario (conjunto cerrado).
const (
	MovementTypeIncome   = "INCOME"    // entrada / reposición
	MovementTypeOutcome  = "OUTCOME"   // salida por despacho
	MovementTypeWriteOff = "WRITE_OFF" // baja por pérdida o daño
)

// Movement es el hecho inmutable de un cambio de stock: ledger append-only.
// Quantity siempre es positivo; el signo lo determina Type.
// Notes se deriva del tipo, el caller no puede fijarlo.
type Movement struct {
	ID             string
	ProductID      string
	Type           string
	Quantity       int
	DocumentNumber string // documento soporte (remisión, acta, etc.)
	Notes          string
	CreatedAt      time.Time
}
