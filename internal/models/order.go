package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order. The values are stored and
// transmitted as the literal strings below.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusDeployed  OrderStatus = "DEPLOYED"
)

// statusTransitions is the explicit allow-list of valid status moves. Any
// requested transition not listed for the order's current status is rejected,
// including backward moves and repeating the current status. DEPLOYED is
// terminal: equipment can be deployed directly from any earlier state, and
// nothing follows it.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusShipped, StatusDeployed},
	StatusShipped:   {StatusDelivered, StatusDeployed},
	StatusDelivered: {StatusDeployed},
	StatusDeployed:  {},
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// AllowedTransitions returns the statuses an order in status s may move to.
func AllowedTransitions(s OrderStatus) []OrderStatus {
	return statusTransitions[s]
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError is returned when a requested status change is not in
// the allow-list for the order's current status.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	allowed := AllowedTransitions(e.From)
	if len(allowed) == 0 {
		return fmt.Sprintf("invalid status transition from %s to %s: %s is a terminal state", e.From, e.To, e.From)
	}
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("invalid status transition from %s to %s: allowed next statuses are %s", e.From, e.To, strings.Join(names, ", "))
}

// OrderItem is a snapshot of a cart line at order-creation time. It is frozen
// into the order: later cart mutations never affect a placed order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	SKU       string  `json:"sku,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// OrderItems is stored as a JSON document in a single column, mirroring the
// snapshot nature of the data (it is never queried per-row).
type OrderItems []OrderItem

// Value implements driver.Valuer for GORM.
func (items OrderItems) Value() (driver.Value, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for GORM.
func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for order items", value)
	}
	if err := json.Unmarshal(data, items); err != nil {
		return fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	return nil
}

// ShippingAddress is the destination captured when the order is created.
type ShippingAddress struct {
	Department string `json:"department" validate:"required,max=100"`
	Contact    string `json:"contact" validate:"required,max=255"`
	Address    string `json:"address" validate:"required,max=500"`
}

// TrackingInfo carries the carrier details attachable only when an order
// transitions to SHIPPED.
type TrackingInfo struct {
	Carrier           string `json:"carrier,omitempty"`
	TrackingNumber    string `json:"tracking_number,omitempty"`
	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
}

// Order represents a purchase request placed by a procurement manager. Items
// are an immutable snapshot; only the status (and its companion fields) ever
// changes after creation, and orders are never deleted.
type Order struct {
	ID                string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber       string      `json:"order_number" gorm:"uniqueIndex;type:varchar(64)"`
	CreatedBy         string      `json:"created_by" gorm:"index;type:varchar(36)"`
	Status            OrderStatus `json:"status" gorm:"type:varchar(20)"`
	Items             OrderItems  `json:"items" gorm:"type:text"`
	TotalAmount       float64     `json:"total_amount"`
	ShipToDepartment  string      `json:"ship_to_department" gorm:"type:varchar(100)"`
	ShipToContact     string      `json:"ship_to_contact" gorm:"type:varchar(255)"`
	ShipToAddress     string      `json:"ship_to_address" gorm:"type:varchar(500)"`
	Carrier           string      `json:"carrier,omitempty" gorm:"type:varchar(100)"`
	TrackingNumber    string      `json:"tracking_number,omitempty" gorm:"type:varchar(100)"`
	EstimatedDelivery string      `json:"estimated_delivery,omitempty" gorm:"type:varchar(100)"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	ShippedAt         *time.Time  `json:"shipped_at,omitempty"`
	DeliveredAt       *time.Time  `json:"delivered_at,omitempty"`
	DeployedAt        *time.Time  `json:"deployed_at,omitempty"`
}

// OrderStatusHistory is an append-only record of one status change. The
// creation event is recorded with an empty FromStatus.
type OrderStatusHistory struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string      `json:"order_id" gorm:"index;type:varchar(36)"`
	FromStatus OrderStatus `json:"from_status,omitempty" gorm:"type:varchar(20)"`
	ToStatus   OrderStatus `json:"to_status" gorm:"type:varchar(20)"`
	Notes      string      `json:"notes,omitempty" gorm:"type:varchar(500)"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderEvent is the message published to the event bus when an order is
// created or changes status, consumed by the deployment-tracking console.
type OrderEvent struct {
	OrderID     string      `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	Type        string      `json:"type"` // created, status_changed
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	Occurred    time.Time   `json:"occurred"`
}

// ApplyTransition moves the order to newStatus, stamping the matching
// lifecycle timestamp exactly once and attaching tracking details on the
// SHIPPED transition. It returns the history entry to append alongside the
// mutation, or an InvalidTransitionError leaving the order untouched.
func (o *Order) ApplyTransition(newStatus OrderStatus, notes string, tracking *TrackingInfo, now time.Time) (*OrderStatusHistory, error) {
	if !CanTransition(o.Status, newStatus) {
		return nil, &InvalidTransitionError{From: o.Status, To: newStatus}
	}

	entry := &OrderStatusHistory{
		OrderID:    o.ID,
		FromStatus: o.Status,
		ToStatus:   newStatus,
		Notes:      notes,
		CreatedAt:  now,
	}

	o.Status = newStatus
	o.UpdatedAt = now

	switch newStatus {
	case StatusShipped:
		if o.ShippedAt == nil {
			t := now
			o.ShippedAt = &t
		}
		if tracking != nil {
			if tracking.Carrier != "" {
				o.Carrier = tracking.Carrier
			}
			if tracking.TrackingNumber != "" {
				o.TrackingNumber = tracking.TrackingNumber
			}
			if tracking.EstimatedDelivery != "" {
				o.EstimatedDelivery = tracking.EstimatedDelivery
			}
		}
	case StatusDelivered:
		if o.DeliveredAt == nil {
			t := now
			o.DeliveredAt = &t
		}
	case StatusDeployed:
		if o.DeployedAt == nil {
			t := now
			o.DeployedAt = &t
		}
	}

	return entry, nil
}
