package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Type debe ser INCOME, OUTCOME o WRITE_OFF; Quantity > 0 siempre.
type RegisterMovementRequest struct {
	ProductID      string `json:"product_id"`
	Type           string `json:"type"`
	Quantity       int    `json:"quantity"`
	DocumentNumber string `json:"document_number"`
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	DocumentNumber string    `json:"document_number"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// AlertResponse representación de una alerta de stock bajo.
type AlertResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertStatsResponse estado del registry de alertas en memoria.
type AlertStatsResponse struct {
	CachedAlerts     []AlertResponse `json:"cached_alerts"`
	AlertsCount      int             `json:"alerts_count"`
	SubscribersCount int             `json:"subscribers_count"`
}
