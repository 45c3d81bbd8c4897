package models

import "fmt"

// OrderStatus is the lifecycle state of an order, stored in orders.statut.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions lists the states reachable from each state. Delivered and
// cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusInTransit, OrderStatusCancelled},
	OrderStatusInTransit: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: nil,
	OrderStatusCancelled: nil,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "En attente",
	OrderStatusInTransit: "En cours de livraison",
	OrderStatusDelivered: "Livrée",
	OrderStatusCancelled: "Annulée",
}

// OrderStatuses returns every status in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled}
}

// ValidationError is returned when input breaks a domain rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", &ValidationError{Field: "statut", Message: fmt.Sprintf("unknown order status %q", raw)}
	}
	return s, nil
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

// Next lists the statuses reachable from s.
func (s OrderStatus) Next() []OrderStatus {
	next := orderTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next when the move is allowed and a ValidationError
// otherwise.
func (s OrderStatus) TransitionTo(next OrderStatus) (OrderStatus, error) {
	if !s.Valid() {
		return s, &ValidationError{Field: "statut", Message: fmt.Sprintf("unknown current status %q", s)}
	}
	if !next.Valid() {
		return s, &ValidationError{Field: "statut", Message: fmt.Sprintf("unknown order status %q", next)}
	}
	if !s.CanTransitionTo(next) {
		return s, &ValidationError{Field: "statut", Message: fmt.Sprintf("cannot move order from %s to %s", s, next)}
	}
	return next, nil
}

// Label is the French wording shown in the admin panel.
func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}
