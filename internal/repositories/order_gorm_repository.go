package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"procure/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// generateOrderNumber builds the human-readable purchase order number, e.g.
// "PO-20260829-1A2B3C4D". Uniqueness is backed by the unique index on the
// column; the uuid fragment keeps same-day collisions out of reach.
func generateOrderNumber(now time.Time) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("PO-%s-%s", now.Format("20060102"), fragment)
}

// GetAll retrieves all orders, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByCreator retrieves the orders created by the given user, newest first.
func (r *GORMOrderRepository) GetByCreator(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("created_by = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID from the database.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// Create persists a new order together with its creation history entry in one
// transaction.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	now := time.Now()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.OrderNumber == "" {
		order.OrderNumber = generateOrderNumber(now)
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		entry := models.OrderStatusHistory{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ToStatus:  order.Status,
			CreatedAt: now,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateStatus applies a guarded status transition. The order is re-fetched
// inside the transaction so the transition is validated against the current
// persisted status, and the order mutation and history append commit or roll
// back together.
func (r *GORMOrderRepository) UpdateStatus(id string, newStatus models.OrderStatus, notes string, tracking *models.TrackingInfo) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
			}
			return fmt.Errorf("failed to get order by ID %s: %w", id, err)
		}

		entry, err := order.ApplyTransition(newStatus, notes, tracking, time.Now())
		if err != nil {
			return err
		}
		entry.ID = uuid.New().String()

		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed to update order %s: %w", id, err)
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to append status history for order %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetHistory retrieves the full status history of an order, oldest first.
func (r *GORMOrderRepository) GetHistory(orderID string) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	if err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to get status history for order %s: %w", orderID, err)
	}
	return history, nil
}
