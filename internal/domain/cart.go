package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinItemQuantity = 1
	MaxItemQuantity = 50
)

// Cart holds a session's not-yet-submitted items. It is a distinct aggregate
// from Order: items stay editable here and are promoted to an immutable Order
// on submit, so staged and fulfillment-tracked state never mix.
type Cart struct {
	ID           uuid.UUID  `json:"id"`
	SessionID    uuid.UUID  `json:"session_id"`
	RestaurantID uuid.UUID  `json:"restaurant_id"`
	Items        []CartItem `json:"items"`
	Subtotal     float64    `json:"subtotal"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CartItem captures the menu price at add time; the unit price never changes
// afterwards even if the menu does.
type CartItem struct {
	ID                  uuid.UUID  `json:"id"`
	CartID              uuid.UUID  `json:"cart_id"`
	GuestID             uuid.UUID  `json:"guest_id"`
	MenuItemID          uuid.UUID  `json:"menu_item_id"`
	VariationID         *uuid.UUID `json:"variation_id,omitempty"`
	Name                string     `json:"name"`
	UnitPrice           float64    `json:"unit_price"`
	Quantity            int        `json:"quantity"`
	TotalPrice          float64    `json:"total_price"`
	PrepTimeMinutes     int        `json:"prep_time_minutes"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`
	AddedAt             time.Time  `json:"added_at"`
}

func NewCart(sessionID, restaurantID uuid.UUID) *Cart {
	return &Cart{
		ID:           uuid.New(),
		SessionID:    sessionID,
		RestaurantID: restaurantID,
		UpdatedAt:    time.Now(),
	}
}

func ValidateQuantity(quantity int) error {
	if quantity < MinItemQuantity || quantity > MaxItemQuantity {
		return Validationf("quantity %d outside range %d-%d", quantity, MinItemQuantity, MaxItemQuantity)
	}
	return nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) AddItem(item CartItem) error {
	if err := ValidateQuantity(item.Quantity); err != nil {
		return err
	}
	item.CartID = c.ID
	item.TotalPrice = Round2(item.UnitPrice * float64(item.Quantity))
	c.Items = append(c.Items, item)
	c.Recalculate()
	return nil
}

func (c *Cart) UpdateItem(itemID uuid.UUID, quantity int, instructions string) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.Items[i].TotalPrice = Round2(c.Items[i].UnitPrice * float64(quantity))
			c.Items[i].SpecialInstructions = instructions
			c.Recalculate()
			return nil
		}
	}
	return NotFoundf("cart item", itemID)
}

func (c *Cart) RemoveItem(itemID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Recalculate()
			return nil
		}
	}
	return NotFoundf("cart item", itemID)
}

// Recalculate recomputes the subtotal from scratch. Runs after every item
// mutation, never partially.
func (c *Cart) Recalculate() {
	subtotal := 0.0
	for _, item := range c.Items {
		subtotal += item.TotalPrice
	}
	c.Subtotal = Round2(subtotal)
	c.UpdatedAt = time.Now()
}

// MaxPrepTimeMinutes is the kitchen bottleneck across all items; the
// estimated-ready time for a submitted order derives from it.
func (c *Cart) MaxPrepTimeMinutes() int {
	max := 0
	for _, item := range c.Items {
		if item.PrepTimeMinutes > max {
			max = item.PrepTimeMinutes
		}
	}
	return max
}

func (c *Cart) ItemsForGuest(guestID uuid.UUID) []CartItem {
	var items []CartItem
	for _, item := range c.Items {
		if item.GuestID == guestID {
			items = append(items, item)
		}
	}
	return items
}
