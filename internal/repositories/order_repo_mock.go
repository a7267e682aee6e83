package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"procure/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders  map[string]models.Order
	history map[string][]models.OrderStatusHistory
	mu      sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:  make(map[string]models.Order),
		history: make(map[string][]models.OrderStatusHistory),
	}
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// GetByCreator returns the orders created by the given user, newest first.
func (r *MockOrderRepository) GetByCreator(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if order.CreatedBy == userID {
			orderList = append(orderList, order)
		}
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	return &order, nil
}

// Create adds a new order and its creation history entry.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.OrderNumber == "" {
		order.OrderNumber = generateOrderNumber(now)
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.ID] = *order
	r.history[order.ID] = append(r.history[order.ID], models.OrderStatusHistory{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		ToStatus:  order.Status,
		CreatedAt: now,
	})
	return nil
}

// UpdateStatus applies a guarded status transition. The order mutation and
// history append happen under a single lock hold, so readers never observe
// one without the other.
func (r *MockOrderRepository) UpdateStatus(id string, newStatus models.OrderStatus, notes string, tracking *models.TrackingInfo) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}

	entry, err := order.ApplyTransition(newStatus, notes, tracking, time.Now())
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.New().String()

	r.orders[id] = order
	r.history[id] = append(r.history[id], *entry)
	return &order, nil
}

// GetHistory returns the status history of an order, oldest first.
func (r *MockOrderRepository) GetHistory(orderID string) ([]models.OrderStatusHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.history[orderID]
	out := make([]models.OrderStatusHistory, len(entries))
	copy(out, entries)
	return out, nil
}
