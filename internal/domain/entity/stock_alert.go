package entity

import "time"

// StockAlert aviso de que un producto está en o bajo su stock mínimo.
// La crea el barrido de stock bajo; un observer la persiste y el registry
// la cachea en memoria. Leída y limpiada son estados independientes.
type StockAlert struct {
	ID        string
	ProductID string
	Message   string // incluye nombre, cantidad actual y mínimo
	IsRead    bool
	CreatedAt time.Time
}
