package models

import "time"

// OrderCreatedEvent is published to SNS after a successful checkout.
type OrderCreatedEvent struct {
	EventType      string    `json:"event_type"`
	OrderID        string    `json:"order_id"`
	CustomerEmail  string    `json:"customer_email"`
	Wilaya         string    `json:"wilaya"`
	DeliveryMethod string    `json:"delivery_method"`
	ItemCount      int       `json:"item_count"`
	ShippingCost   int64     `json:"shipping_cost"`
	TotalAmount    int64     `json:"total_amount"`
	Timestamp      time.Time `json:"timestamp"`
}

// OrderStatusChangedEvent is published when an admin moves an order.
type OrderStatusChangedEvent struct {
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// CatalogChangedEvent is published when an admin edits the product table.
type CatalogChangedEvent struct {
	EventType string    `json:"event_type"`
	ProductID int64     `json:"product_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
