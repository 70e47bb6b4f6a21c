package models

import "strings"

// OrderStatus is the fulfillment stage of an order, distinct from its
// payment status. Transitions are admin-initiated only.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusCompleted,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether an admin may move an order from one
// status to another. Any valid status is reachable from a non-terminal
// one; completed and cancelled orders are final.
func CanTransition(from, to OrderStatus) bool {
	return from.Valid() && to.Valid() && !from.Terminal()
}

func (s OrderStatus) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Badge holds the style classes a front-end uses to render a status pill.
type Badge struct {
	Background string `json:"background"`
	Text       string `json:"text"`
}

// BadgeStyle maps every status to its badge styling. Unknown input gets
// a neutral gray; with validation in place that branch is unreachable.
func (s OrderStatus) BadgeStyle() Badge {
	switch s {
	case StatusPending:
		return Badge{Background: "bg-pink-100", Text: "text-pink-600"}
	case StatusProcessing:
		return Badge{Background: "bg-rose-100", Text: "text-rose-600"}
	case StatusShipped:
		return Badge{Background: "bg-fuchsia-100", Text: "text-fuchsia-600"}
	case StatusCompleted:
		return Badge{Background: "bg-green-100", Text: "text-green-600"}
	case StatusCancelled:
		return Badge{Background: "bg-red-100", Text: "text-red-600"}
	default:
		return Badge{Background: "bg-gray-100", Text: "text-gray-800"}
	}
}

// FilterByStatus keeps only orders in the given status. "all" (or an
// empty filter) passes everything through; filtering is client-side.
func FilterByStatus(orders []Order, status string) []Order {
	if status == "" || status == "all" {
		return orders
	}
	filtered := make([]Order, 0, len(orders))
	for _, o := range orders {
		if string(o.OrderStatus) == status {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
