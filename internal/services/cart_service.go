package services

import (
	"encoding/json"
	"fmt"
	"log"

	"procure/internal/models"
	"procure/internal/repositories"
)

// CartService maintains the per-user pre-checkout cart. Every mutation loads
// the user's persisted snapshot, applies the change, and writes the snapshot
// back before returning, so a crash or reload immediately after a mutation
// never loses it. Carts are keyed by user identity and never shared: storage
// keys follow the "cart_<userID>" format and switching users always reads
// from the new user's own key.
type CartService struct {
	store repositories.CartStore
}

// NewCartService creates a new CartService.
func NewCartService(store repositories.CartStore) *CartService {
	return &CartService{
		store: store,
	}
}

func cartKey(userID string) string {
	return "cart_" + userID
}

// Initialize loads the persisted cart snapshot for userID. With no signed-in
// user the cart is empty and storage is never read. Unreadable or corrupted
// snapshots fall back to an empty cart and are logged rather than failing the
// session. Calling Initialize twice with the same userID reloads the same
// snapshot; it never duplicates items.
func (s *CartService) Initialize(userID string) []models.CartItem {
	if userID == "" {
		return []models.CartItem{}
	}

	data, ok, err := s.store.Load(cartKey(userID))
	if err != nil {
		log.Printf("Failed to load cart for user %s, starting empty: %v", userID, err)
		return []models.CartItem{}
	}
	if !ok {
		return []models.CartItem{}
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Corrupted cart snapshot for user %s, starting empty: %v", userID, err)
		return []models.CartItem{}
	}
	return items
}

// AddItem adds a product to the user's cart. An item with the same product id
// has its quantity incremented instead of a second entry being inserted; a
// non-positive quantity is normalized to 1. Returns the resulting cart. On a
// storage write failure the returned items are still the mutated cart (the
// in-memory state stays authoritative for the session) and the error reports
// the failed persist.
func (s *CartService) AddItem(userID string, item models.CartItem, quantity int) ([]models.CartItem, error) {
	if userID == "" {
		return nil, &ValidationError{Message: "a signed-in user is required to modify the cart"}
	}
	if item.ProductID == "" {
		return nil, &ValidationError{Message: "cart item must have a product id"}
	}
	if item.UnitPrice < 0 {
		return nil, &ValidationError{Message: "cart item unit price must not be negative"}
	}
	if quantity < 1 {
		quantity = 1
	}

	items := s.Initialize(userID)
	found := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		item.Quantity = quantity
		items = append(items, item)
	}

	return items, s.persist(userID, items)
}

// RemoveItem deletes the entry with the given product id. Removing an id that
// is not in the cart is a no-op, not an error.
func (s *CartService) RemoveItem(userID, productID string) ([]models.CartItem, error) {
	if userID == "" {
		return nil, &ValidationError{Message: "a signed-in user is required to modify the cart"}
	}

	items := s.Initialize(userID)
	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}

	return kept, s.persist(userID, kept)
}

// UpdateQuantity sets the quantity of the entry with the given product id.
// Policy: a quantity below 1 removes the item rather than clamping to 1, so
// the cart never holds a zero-quantity line. Unknown ids are a no-op.
func (s *CartService) UpdateQuantity(userID, productID string, quantity int) ([]models.CartItem, error) {
	if quantity < 1 {
		return s.RemoveItem(userID, productID)
	}
	if userID == "" {
		return nil, &ValidationError{Message: "a signed-in user is required to modify the cart"}
	}

	items := s.Initialize(userID)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}

	return items, s.persist(userID, items)
}

// Clear empties the cart and erases the persisted snapshot for that user.
func (s *CartService) Clear(userID string) error {
	if userID == "" {
		return &ValidationError{Message: "a signed-in user is required to modify the cart"}
	}
	if err := s.store.Delete(cartKey(userID)); err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}

func (s *CartService) persist(userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart for user %s: %w", userID, err)
	}
	if err := s.store.Save(cartKey(userID), data); err != nil {
		return fmt.Errorf("failed to persist cart for user %s: %w", userID, err)
	}
	return nil
}

// ItemCount is the sum of quantities across all cart entries.
func ItemCount(items []models.CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// Subtotal is the sum of unit price times quantity across all cart entries.
func Subtotal(items []models.CartItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}
