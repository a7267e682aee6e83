package handlers

import (
	"errors"
	"fmt"
	"log"

	"procure/internal/middleware"
	"procure/internal/models"
	"procure/internal/repositories"
	"procure/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders: checkout for procurement
// managers, fulfillment transitions for administrators.
type OrderHandler struct {
	service     *services.OrderService
	cartService *services.CartService
	validate    *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, cartService *services.CartService) *OrderHandler {
	return &OrderHandler{
		service:     service,
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. Checkout is
// gated to buyers, status transitions to administrators.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, buyerOnly, adminOnly fiber.Handler) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", buyerOnly, h.HandleCreateOrder)
	orderRoutes.Patch("/:id/status", adminOnly, h.HandleUpdateOrderStatus)
}

// orderErrorResponse maps domain errors onto HTTP statuses: validation 400,
// authorization 403, not-found 404, invalid transition 409, anything else 500.
func orderErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validationErr.Message,
		})
	}
	var authErr *services.AuthorizationError
	if errors.As(err, &authErr) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": authErr.Message,
		})
	}
	if errors.Is(err, repositories.ErrOrderNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	}
	var transitionErr *models.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": transitionErr.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
		"error":   err.Error(),
	})
}

// HandleGetOrders lists orders for the caller: all orders for an
// administrator, only the caller's own for a procurement manager.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.FetchOrders(middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		log.Printf("Error fetching orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order with its creator profile and
// status history. Procurement managers can only see their own orders; an
// order owned by someone else reads as not found.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	detail, err := h.service.FetchOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return orderErrorResponse(c, err, "Could not retrieve order")
	}

	if middleware.UserRole(c) != models.RoleAdmin && detail.CreatedBy != middleware.UserID(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	}

	return c.JSON(detail)
}

// CreateOrderRequest represents the checkout request body: the shipping
// destination. The order's items come from the caller's current cart.
type CreateOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address" validate:"required"`
}

// HandleCreateOrder performs checkout: it snapshots the caller's current
// cart into a new PENDING order and, once the order is placed, clears the
// cart as a separate follow-up step.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	userID := middleware.UserID(c)
	items := h.cartService.Initialize(userID)

	createdOrder, err := h.service.CreateOrder(userID, items, req.ShippingAddress)
	if err != nil {
		log.Printf("Error creating order for user %s: %v", userID, err)
		return orderErrorResponse(c, err, "Could not create order")
	}

	// The order holds its own snapshot now; the live cart is cleared as a
	// separate step so a clear failure never undoes the placed order.
	if err := h.cartService.Clear(userID); err != nil {
		log.Printf("Order %s placed but cart for user %s could not be cleared: %v", createdOrder.ID, userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// UpdateOrderStatusRequest represents the request body for a status change.
// Tracking details are honored only on the transition to SHIPPED.
type UpdateOrderStatusRequest struct {
	Status   models.OrderStatus   `json:"status" validate:"required"`
	Notes    string               `json:"notes" validate:"omitempty,max=500"`
	Tracking *models.TrackingInfo `json:"tracking"`
}

// HandleUpdateOrderStatus advances an order along the allowed-status table.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	order, err := h.service.UpdateOrderStatus(orderID, req.Status, req.Notes, req.Tracking)
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return orderErrorResponse(c, err, "Could not update order status")
	}

	return c.JSON(order)
}
