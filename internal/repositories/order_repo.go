package repositories

import (
	"errors"

	"procure/internal/models"
)

// ErrOrderNotFound is returned when a referenced order id does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access. Orders are
// never deleted; the only mutation after creation is the guarded status
// update, which must persist the order change and the history append as a
// single logical unit.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByCreator(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	// Create persists a new order, generating its ID and human-readable
	// order number, and records the creation history entry
	// (empty FromStatus -> the order's initial status).
	Create(order *models.Order) error
	// UpdateStatus re-fetches the order, validates the transition against
	// the current persisted status, applies it, and appends the history
	// entry. On any failure the order is left completely unchanged.
	UpdateStatus(id string, newStatus models.OrderStatus, notes string, tracking *models.TrackingInfo) (*models.Order, error)
	GetHistory(orderID string) ([]models.OrderStatusHistory, error)
}
