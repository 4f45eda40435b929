package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderType string

const (
	OrderDineIn   OrderType = "DINE_IN"
	OrderTakeaway OrderType = "TAKEAWAY"
	OrderDelivery OrderType = "DELIVERY"
	OrderPreOrder OrderType = "PRE_ORDER"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderServed    OrderStatus = "SERVED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderRefunded  OrderStatus = "REFUNDED"
)

// Order is a submitted, fulfillment-tracked order. Dine-in orders are
// promoted from a session cart and enter at CONFIRMED; staff-created
// takeaway/delivery/pre-orders may enter at PENDING.
//
// Totals invariant: TotalAmount == Subtotal + TaxAmount + ServiceCharge +
// DeliveryFee - DiscountAmount, all components non-negative.
type Order struct {
	ID                  uuid.UUID   `json:"id"`
	RestaurantID        uuid.UUID   `json:"restaurant_id"`
	TableID             *uuid.UUID  `json:"table_id,omitempty"`
	SessionID           *uuid.UUID  `json:"session_id,omitempty"`
	OrderNumber         string      `json:"order_number"`
	Type                OrderType   `json:"order_type"`
	Status              OrderStatus `json:"status"`
	CustomerName        string      `json:"customer_name,omitempty"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
	Subtotal            float64     `json:"subtotal"`
	TaxAmount           float64     `json:"tax_amount"`
	ServiceCharge       float64     `json:"service_charge"`
	DeliveryFee         float64     `json:"delivery_fee"`
	DiscountAmount      float64     `json:"discount_amount"`
	TotalAmount         float64     `json:"total_amount"`
	PaymentStatus       string      `json:"payment_status"`
	EstimatedReadyAt    *time.Time  `json:"estimated_ready_at,omitempty"`
	ReadyAt             *time.Time  `json:"ready_at,omitempty"`
	ServedAt            *time.Time  `json:"served_at,omitempty"`
	Items               []OrderItem `json:"items"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// OrderItem is owned exclusively by its order; unit price was captured when
// the item entered the cart and is immutable here.
type OrderItem struct {
	ID                  uuid.UUID   `json:"id"`
	OrderID             uuid.UUID   `json:"order_id"`
	GuestID             uuid.UUID   `json:"guest_id"`
	MenuItemID          uuid.UUID   `json:"menu_item_id"`
	VariationID         *uuid.UUID  `json:"variation_id,omitempty"`
	Name                string      `json:"name"`
	Quantity            int         `json:"quantity"`
	UnitPrice           float64     `json:"unit_price"`
	TotalPrice          float64     `json:"total_price"`
	PrepTimeMinutes     int         `json:"prep_time_minutes"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
	Status              OrderStatus `json:"status"`
}

func (o *Order) IsPending() bool   { return o.Status == OrderPending }
func (o *Order) IsConfirmed() bool { return o.Status == OrderConfirmed }
func (o *Order) IsCancelled() bool { return o.Status == OrderCancelled }

func (o *Order) IsActive() bool {
	return o.Status != OrderCancelled && o.Status != OrderRefunded
}

func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderPending || o.Status == OrderConfirmed
}

func (o *Order) IsDelivery() bool {
	return o.Type == OrderDelivery
}

// The fulfillment transitions below deliberately no-op when the precondition
// does not hold: staff UIs retry and duplicate actions, and a second
// "confirm" must be harmless rather than an error.

func (o *Order) Confirm() {
	if o.IsPending() {
		o.Status = OrderConfirmed
		o.SetEstimatedReady(o.MaxPrepTimeMinutes())
		o.touch()
	}
}

func (o *Order) StartPreparing() {
	if o.IsConfirmed() {
		o.Status = OrderPreparing
		o.touch()
	}
}

func (o *Order) MarkReady() {
	if o.Status == OrderPreparing {
		now := time.Now()
		o.Status = OrderReady
		o.ReadyAt = &now
		o.touch()
	}
}

func (o *Order) MarkServed() {
	if o.Status == OrderReady {
		now := time.Now()
		o.Status = OrderServed
		o.ServedAt = &now
		o.touch()
	}
}

// Complete is reachable from READY directly as well as SERVED, so a busy
// floor can skip the served step.
func (o *Order) Complete() {
	if o.Status == OrderServed || o.Status == OrderReady {
		if o.ServedAt == nil {
			now := time.Now()
			o.ServedAt = &now
		}
		o.Status = OrderCompleted
		o.touch()
	}
}

// Cancel is guarded: unlike the tolerant transitions above it reports an
// error, because cancelling a prepared order is a real business failure.
func (o *Order) Cancel() error {
	if !o.CanBeCancelled() {
		return InvalidStatef("order", o.OrderNumber, string(o.Status))
	}
	o.Status = OrderCancelled
	for i := range o.Items {
		o.Items[i].Status = OrderCancelled
	}
	o.touch()
	return nil
}

func (o *Order) SetEstimatedReady(maxPrepMinutes int) {
	if maxPrepMinutes <= 0 {
		return
	}
	ready := time.Now().Add(time.Duration(maxPrepMinutes) * time.Minute)
	o.EstimatedReadyAt = &ready
}

// RecalculateTotals recomputes every derived amount from scratch after any
// item or discount change.
func (o *Order) RecalculateTotals(cfg BillingConfig) {
	subtotal := 0.0
	for _, item := range o.Items {
		subtotal += item.TotalPrice
	}
	o.Subtotal = Round2(subtotal)
	o.TaxAmount = Round2(o.Subtotal * cfg.TaxRate)
	o.ServiceCharge = Round2(o.Subtotal * cfg.ServiceChargeRate)
	if o.IsDelivery() {
		o.DeliveryFee = cfg.DeliveryFee
	} else {
		o.DeliveryFee = 0
	}
	o.TotalAmount = Round2(o.Subtotal + o.TaxAmount + o.ServiceCharge + o.DeliveryFee - o.DiscountAmount)
}

func (o *Order) MaxPrepTimeMinutes() int {
	max := 0
	for _, item := range o.Items {
		if item.PrepTimeMinutes > max {
			max = item.PrepTimeMinutes
		}
	}
	return max
}

func (o *Order) TotalItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
}

// OrderFromCart promotes a cart into an immutable order. The order enters the
// fulfillment machine at CONFIRMED with an estimated-ready time derived from
// the slowest item.
func OrderFromCart(cart *Cart, orderNumber, customerName string, cfg BillingConfig) *Order {
	now := time.Now()
	sessionID := cart.SessionID
	order := &Order{
		ID:            uuid.New(),
		RestaurantID:  cart.RestaurantID,
		SessionID:     &sessionID,
		OrderNumber:   orderNumber,
		Type:          OrderDineIn,
		Status:        OrderConfirmed,
		CustomerName:  customerName,
		PaymentStatus: PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, ci := range cart.Items {
		order.Items = append(order.Items, OrderItem{
			ID:                  uuid.New(),
			OrderID:             order.ID,
			GuestID:             ci.GuestID,
			MenuItemID:          ci.MenuItemID,
			VariationID:         ci.VariationID,
			Name:                ci.Name,
			Quantity:            ci.Quantity,
			UnitPrice:           ci.UnitPrice,
			TotalPrice:          ci.TotalPrice,
			PrepTimeMinutes:     ci.PrepTimeMinutes,
			SpecialInstructions: ci.SpecialInstructions,
			Status:              OrderConfirmed,
		})
	}
	order.SetEstimatedReady(cart.MaxPrepTimeMinutes())
	order.RecalculateTotals(cfg)
	return order
}
