package handlers

import (
	"fmt"
	"log"

	"procure/internal/middleware"
	"procure/internal/models"
	"procure/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart. Every route
// operates on the authenticated user's own cart; there is no path to another
// user's cart data.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:product_id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:product_id", h.HandleRemoveItem)
}

func cartResponse(items []models.CartItem) fiber.Map {
	return fiber.Map{
		"items":      items,
		"item_count": services.ItemCount(items),
		"subtotal":   services.Subtotal(items),
	}
}

// HandleGetCart returns the caller's current cart with derived totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items := h.service.Initialize(middleware.UserID(c))
	return c.JSON(cartResponse(items))
}

// AddItemRequest represents the request body for adding a product to the
// cart. A missing or non-positive quantity is treated as 1.
type AddItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Title     string  `json:"title" validate:"required,max=255"`
	SKU       string  `json:"sku" validate:"omitempty,max=64"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// HandleAddItem adds a product to the caller's cart, incrementing the
// quantity when the product is already present.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart item request body: %v", err)
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

	item := models.CartItem{
		ProductID: req.ProductID,
		Title:     req.Title,
		SKU:       req.SKU,
		UnitPrice: req.UnitPrice,
		Image:     req.Image,
	}
	items, err := h.service.AddItem(middleware.UserID(c), item, req.Quantity)
	if err != nil {
		log.Printf("Error adding cart item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(cartResponse(items))
}

// UpdateQuantityRequest represents the request body for a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity sets the quantity of one cart entry. A quantity below
// 1 removes the entry.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	items, err := h.service.UpdateQuantity(middleware.UserID(c), c.Params("product_id"), req.Quantity)
	if err != nil {
		log.Printf("Error updating cart quantity: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
			"error":   err.Error(),
		})
	}

	return c.JSON(cartResponse(items))
}

// HandleRemoveItem removes one entry from the caller's cart. Removing a
// product that is not in the cart succeeds with the cart unchanged.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	items, err := h.service.RemoveItem(middleware.UserID(c), c.Params("product_id"))
	if err != nil {
		log.Printf("Error removing cart item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart item",
			"error":   err.Error(),
		})
	}

	return c.JSON(cartResponse(items))
}

// HandleClearCart empties the caller's cart and erases the persisted
// snapshot.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(middleware.UserID(c)); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
