package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/segmentio/kafka-go"
)

// alertEvent payload publicado en el topic de alertas.
type alertEvent struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertPublisher observer opcional que publica cada alerta de stock bajo en
// un topic Kafka, para consumidores externos (dashboards, bots). Se habilita
// solo si hay brokers configurados; el Fanout aísla sus fallos igual que los
// de cualquier otro observer.
type AlertPublisher struct {
	writer *kafka.Writer
}

// NewAlertPublisher construye el publisher.
func NewAlertPublisher(brokers []string, topic string) *AlertPublisher {
	return &AlertPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *AlertPublisher) Name() string { return "kafka" }

// Notify publica la alerta. La key es el product_id para que las alertas de
// un mismo producto caigan en la misma partición.
func (p *AlertPublisher) Notify(ctx context.Context, alert *entity.StockAlert) error {
	payload, err := json.Marshal(alertEvent{
		ID:        alert.ID,
		ProductID: alert.ProductID,
		Message:   alert.Message,
		CreatedAt: alert.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(alert.ProductID),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	return nil
}

// Close cierra el writer subyacente.
func (p *AlertPublisher) Close() error {
	return p.writer.Close()
}
