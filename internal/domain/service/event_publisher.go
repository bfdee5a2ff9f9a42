package service

import (
	"context"
)

// OrderEvent represents a newly placed order, published for operator alerting.
// Delivery is best-effort: a publish failure is logged and never fails or
// rolls back the order it describes.
type OrderEvent struct {
	RequestID    string `json:"request_id,omitempty"` // For distributed tracing
	OrderID      string `json:"order_id"`
	OrderNumber  string `json:"order_number"`
	CustomerName string `json:"customer_name"`
	Total        string `json:"total"`
	ItemCount    int    `json:"item_count"`
}

// EventPublisher defines the interface for publishing order events to a
// message queue or webhook.
type EventPublisher interface {
	// PublishOrderEvent publishes an order-placed event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
