package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"procure/internal/models"
	"procure/internal/repositories"
)

// EventPublisher publishes order lifecycle events to the message bus. A nil
// publisher disables publication; a publish failure never rolls back the
// committed mutation.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// OrderService handles the order lifecycle: creation, guarded status
// transitions, and the read-side role filter.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	publisher   EventPublisher
	shippingFee float64
	taxRate     float64
}

// NewOrderService creates a new OrderService. shippingFee and taxRate are
// fixed configuration, never user input.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, publisher EventPublisher, shippingFee, taxRate float64) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		shippingFee: shippingFee,
		taxRate:     taxRate,
	}
}

// CreatorProfile is the creator identity joined onto an order detail view.
type CreatorProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

// OrderDetail is an order with its creator profile and full status history.
type OrderDetail struct {
	models.Order
	Creator *CreatorProfile             `json:"created_by_profile,omitempty"`
	History []models.OrderStatusHistory `json:"status_history"`
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateOrder validates the caller and items, computes the total from the
// configured shipping fee and tax rate, and persists a new PENDING order with
// an immutable snapshot of the items. The caller's live cart is never
// touched; clearing it after success is the caller's separate responsibility.
func (s *OrderService) CreateOrder(userID string, items []models.CartItem, address models.ShippingAddress) (*models.Order, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, &AuthorizationError{Message: "failed to verify user profile"}
		}
		return nil, fmt.Errorf("failed to verify user profile: %w", err)
	}
	if user.Role != models.RoleBuyer {
		return nil, &AuthorizationError{Message: "only procurement managers can create orders"}
	}

	if len(items) == 0 {
		return nil, &ValidationError{Message: "order must contain at least one item"}
	}

	subtotal := 0.0
	snapshot := make(models.OrderItems, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			return nil, &ValidationError{Message: "order item must have a product id"}
		}
		if item.Quantity < 1 {
			return nil, &ValidationError{Message: fmt.Sprintf("order item %s must have a quantity of at least 1", item.ProductID)}
		}
		if item.UnitPrice < 0 {
			return nil, &ValidationError{Message: fmt.Sprintf("order item %s must not have a negative unit price", item.ProductID)}
		}
		snapshot = append(snapshot, models.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			SKU:       item.SKU,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	order := &models.Order{
		CreatedBy:        userID,
		Status:           models.StatusPending,
		Items:            snapshot,
		TotalAmount:      roundCents(subtotal + s.shippingFee + subtotal*s.taxRate),
		ShipToDepartment: address.Department,
		ShipToContact:    address.Contact,
		ShipToAddress:    address.Address,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishEvent("order.created", order)
	return order, nil
}

// UpdateOrderStatus advances an order along the allowed-status table. The
// repository re-fetches the current status immediately before validating, and
// applies the order mutation and history append as one unit; on any failure
// the order is completely unchanged.
func (s *OrderService) UpdateOrderStatus(orderID string, newStatus models.OrderStatus, notes string, tracking *models.TrackingInfo) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown order status: %s", newStatus)}
	}

	order, err := s.orderRepo.UpdateStatus(orderID, newStatus, notes, tracking)
	if err != nil {
		return nil, err
	}

	s.publishEvent("order.status_changed", order)
	return order, nil
}

// FetchOrders returns all orders for administrators, and only the caller's
// own orders for procurement managers. This filter is the read-side gate that
// keeps one buyer from seeing another's orders.
func (s *OrderService) FetchOrders(userID string, role models.Role) ([]models.Order, error) {
	if role == models.RoleAdmin {
		return s.orderRepo.GetAll()
	}
	return s.orderRepo.GetByCreator(userID)
}

// FetchOrderByID returns the order joined with its creator profile and the
// full status history.
func (s *OrderService) FetchOrderByID(orderID string) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	detail := &OrderDetail{Order: *order}

	if creator, err := s.userRepo.GetByID(order.CreatedBy); err != nil {
		log.Printf("Could not load creator profile for order %s: %v", orderID, err)
	} else {
		detail.Creator = &CreatorProfile{
			Name:       creator.Name,
			Email:      creator.Email,
			Department: creator.Department,
		}
	}

	history, err := s.orderRepo.GetHistory(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history for order %s: %w", orderID, err)
	}
	detail.History = history

	return detail, nil
}

func (s *OrderService) publishEvent(eventType string, order *models.Order) {
	if s.publisher == nil {
		return
	}

	event := models.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Type:        eventType,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Occurred:    time.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", eventType, order.ID, err)
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}
