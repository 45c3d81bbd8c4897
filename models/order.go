package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryMethod is how an order reaches the customer.
type DeliveryMethod string

const (
	DeliveryHome   DeliveryMethod = "home"
	DeliveryOffice DeliveryMethod = "office"
)

// Order is an orders row with its items.
type Order struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        string          `gorm:"column:order_id;type:varchar(32);uniqueIndex;not null" json:"order_id"`
	CustomerName   string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail  string          `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	CustomerPhone  string          `gorm:"type:varchar(32);not null" json:"customer_phone"`
	Wilaya         string          `gorm:"type:varchar(120);not null" json:"wilaya"`
	Commune        string          `gorm:"type:varchar(120);not null" json:"commune"`
	DeliveryMethod DeliveryMethod  `gorm:"type:varchar(16);not null" json:"delivery_method"`
	ShippingCost   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shipping_cost"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status         OrderStatus     `gorm:"column:statut;type:varchar(20);not null;default:'pending';index" json:"statut"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is an order_items row. ProductName is a copy, not a reference.
type OrderItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"not null;index" json:"order_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// CheckoutRequest is the shopper's delivery form.
type CheckoutRequest struct {
	FirstName      string         `json:"first_name" binding:"required,max=100"`
	LastName       string         `json:"last_name" binding:"required,max=100"`
	Email          string         `json:"email" binding:"required,email"`
	Phone          string         `json:"phone" binding:"required,min=9,max=20"`
	Wilaya         int            `json:"wilaya" binding:"required,wilaya"`
	Commune        string         `json:"commune" binding:"required,max=120"`
	DeliveryMethod DeliveryMethod `json:"delivery_method" binding:"required,oneof=home office"`
}

// CustomerName joins first and last name the way orders store it.
func (r *CheckoutRequest) CustomerName() string {
	return r.FirstName + " " + r.LastName
}

// UpdateOrderStatusRequest is the admin payload for moving an order.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"statut" binding:"required,order_status"`
}

// OrderFilter narrows the admin order list.
type OrderFilter struct {
	Query  string
	Status OrderStatus
	Page   int
	Limit  int
}

// OrderCreationKind tells which step of order creation failed.
type OrderCreationKind string

const (
	// OrderCreationFailed means the order header could not be written.
	OrderCreationFailed OrderCreationKind = "failed"
	// OrderCreationIncomplete means the header was written but its items
	// were not, and the header was rolled back.
	OrderCreationIncomplete OrderCreationKind = "incomplete"
)

// OrderCreationError wraps a persistence failure during checkout.
type OrderCreationError struct {
	Kind    OrderCreationKind
	OrderID string
	Err     error
}

func (e *OrderCreationError) Error() string {
	return fmt.Sprintf("order %s creation %s: %v", e.OrderID, e.Kind, e.Err)
}

func (e *OrderCreationError) Unwrap() error {
	return e.Err
}
