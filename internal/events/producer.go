package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Ahsankhan2345/shopping-hify/internal/domain"
)

const topic = "storefront-events"

type OrderPlacedEvent struct {
	EventID    string       `json:"event_id"`
	Type       string       `json:"type"`
	UserID     string       `json:"user_id"`
	InvoiceNo  string       `json:"invoice_no"`
	GrandTotal int64        `json:"grand_total"`
	Order      domain.Order `json:"order"`
	Timestamp  time.Time    `json:"timestamp"`
}

type ReceiptExportedEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	InvoiceNo string    `json:"invoice_no"`
	Timestamp time.Time `json:"timestamp"`
}

// Producer publishes storefront lifecycle events to Kafka. A nil Producer is
// a no-op, so the service runs without a broker configured.
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewProducer(brokers string, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// OrderPlaced emits the event recording a completed checkout.
func (p *Producer) OrderPlaced(ctx context.Context, userID string, order domain.Order) error {
	if p == nil {
		return nil
	}
	event := OrderPlacedEvent{
		EventID:    uuid.New().String(),
		Type:       "order.placed",
		UserID:     userID,
		InvoiceNo:  order.InvoiceNo,
		GrandTotal: order.GrandTotal,
		Order:      order,
		Timestamp:  time.Now(),
	}
	return p.publish(ctx, order.InvoiceNo, event)
}

// ReceiptExported emits the event recording a receipt export.
func (p *Producer) ReceiptExported(ctx context.Context, userID, invoiceNo string) error {
	if p == nil {
		return nil
	}
	event := ReceiptExportedEvent{
		EventID:   uuid.New().String(),
		Type:      "receipt.exported",
		UserID:    userID,
		InvoiceNo: invoiceNo,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, invoiceNo, event)
}

func (p *Producer) publish(ctx context.Context, key string, event any) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: eventBytes,
	})
	if err != nil {
		p.logger.Error("failed to publish event",
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	p.logger.Info("event published", zap.String("key", key))
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
