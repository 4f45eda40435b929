package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

// AddItemRequest carries a guest's add-to-cart input.
type AddItemRequest struct {
	MenuItemID          uuid.UUID  `json:"menu_item_id"`
	VariationID         *uuid.UUID `json:"variation_id,omitempty"`
	Quantity            int        `json:"quantity"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`
}

// CartService is the cart/order engine: it accumulates a session's cart,
// promotes it to an order on submit, and drives the fulfillment state
// machine afterwards.
type CartService struct {
	carts     CartRepository
	orders    OrderRepository
	sessions  SessionRepository
	menu      MenuCatalog
	config    RestaurantConfig
	publisher EventPublisher
}

func NewCartService(carts CartRepository, orders OrderRepository, sessions SessionRepository, menu MenuCatalog, config RestaurantConfig, publisher EventPublisher) *CartService {
	return &CartService{
		carts:     carts,
		orders:    orders,
		sessions:  sessions,
		menu:      menu,
		config:    config,
		publisher: publisher,
	}
}

func (s *CartService) GetCart(ctx context.Context, sessionID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.carts.GetCartBySession(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		session, err := s.sessions.GetSession(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return domain.NewCart(sessionID, session.RestaurantID), nil
	}
	return cart, err
}

// AddToCart resolves the current menu price, captures it as the item's
// immutable unit price, and recalculates the cart. The session must be
// ACTIVE.
func (s *CartService) AddToCart(ctx context.Context, sessionID, guestID uuid.UUID, req AddItemRequest) (*domain.Cart, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	pricing, err := s.menu.GetItemPricing(ctx, req.MenuItemID, req.VariationID)
	if err != nil {
		return nil, err
	}
	if !pricing.IsAvailable {
		return nil, domain.ErrItemUnavailable
	}

	cart, err := s.carts.GetCartBySession(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		cart = domain.NewCart(sessionID, session.RestaurantID)
	} else if err != nil {
		return nil, err
	}

	item := domain.CartItem{
		ID:                  uuid.New(),
		GuestID:             guestID,
		MenuItemID:          req.MenuItemID,
		VariationID:         req.VariationID,
		Name:                pricing.Name,
		UnitPrice:           pricing.UnitPrice(),
		Quantity:            req.Quantity,
		PrepTimeMinutes:     pricing.PreparationTimeMinutes,
		SpecialInstructions: req.SpecialInstructions,
		AddedAt:             time.Now(),
	}
	if err := cart.AddItem(item); err != nil {
		return nil, err
	}
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) UpdateCartItem(ctx context.Context, sessionID, itemID uuid.UUID, quantity int, instructions string) (*domain.Cart, error) {
	if _, err := s.activeSession(ctx, sessionID); err != nil {
		return nil, err
	}
	cart, err := s.carts.GetCartBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := cart.UpdateItem(itemID, quantity, instructions); err != nil {
		return nil, err
	}
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, sessionID, itemID uuid.UUID) (*domain.Cart, error) {
	if _, err := s.activeSession(ctx, sessionID); err != nil {
		return nil, err
	}
	cart, err := s.carts.GetCartBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SubmitOrder promotes the whole cart into one immutable order: the order is
// created with all items and the cart removed in a single transaction, then
// the session's running total is recomputed.
func (s *CartService) SubmitOrder(ctx context.Context, sessionID, guestID uuid.UUID) (*domain.Order, error) {
	session, err := s.activeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetCartBySession(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	cfg, err := s.config.GetBillingConfig(ctx, session.RestaurantID)
	if err != nil {
		return nil, err
	}

	order, err := s.createWithFreshNumber(ctx, cart, session, *cfg)
	if err != nil {
		return nil, err
	}

	if err := s.recalculateSessionTotal(ctx, session); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.Event{
		Type:         domain.EventOrderSubmitted,
		RestaurantID: order.RestaurantID,
		SessionID:    sessionID,
		OrderID:      order.ID,
		Status:       string(order.Status),
		Amount:       order.TotalAmount,
		Timestamp:    time.Now(),
	})
	return order, nil
}

func (s *CartService) createWithFreshNumber(ctx context.Context, cart *domain.Cart, session *domain.DiningSession, cfg domain.BillingConfig) (*domain.Order, error) {
	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		number, err := NewOrderNumber()
		if err != nil {
			return nil, err
		}
		order := domain.OrderFromCart(cart, number, session.HostName, cfg)
		tableID := session.TableID
		order.TableID = &tableID
		if err := s.orders.PromoteCart(ctx, cart.ID, order); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return order, nil
	}
	return nil, lastErr
}

func (s *CartService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, orderID)
}

func (s *CartService) ListSessionOrders(ctx context.Context, sessionID uuid.UUID) ([]domain.Order, error) {
	return s.orders.ListSessionOrders(ctx, sessionID)
}

// UpdateOrderStatus applies a staff fulfillment action. Transitions whose
// precondition does not hold are no-ops, so duplicate actions from a flaky
// staff UI stay harmless.
func (s *CartService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.OrderConfirmed:
		order.Confirm()
	case domain.OrderPreparing:
		order.StartPreparing()
	case domain.OrderReady:
		order.MarkReady()
	case domain.OrderServed:
		order.MarkServed()
	case domain.OrderCompleted:
		order.Complete()
	case domain.OrderCancelled:
		return s.CancelOrder(ctx, orderID)
	default:
		return nil, domain.Validationf("unsupported order status %q", status)
	}

	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.Event{
		Type:         domain.EventOrderStatusChanged,
		RestaurantID: order.RestaurantID,
		OrderID:      order.ID,
		Status:       string(order.Status),
		Timestamp:    time.Now(),
	})
	return order, nil
}

// CancelOrder is guarded: only PENDING and CONFIRMED orders cancel. The
// session total shrinks accordingly.
func (s *CartService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	if order.SessionID != nil {
		session, err := s.sessions.GetSession(ctx, *order.SessionID)
		if err == nil {
			if err := s.recalculateSessionTotal(ctx, session); err != nil {
				log.Printf("[cart-svc] failed to recalculate session %s total: %v", session.SessionCode, err)
			}
		}
	}

	s.publish(ctx, domain.Event{
		Type:         domain.EventOrderStatusChanged,
		RestaurantID: order.RestaurantID,
		OrderID:      order.ID,
		Status:       string(order.Status),
		Timestamp:    time.Now(),
	})
	return order, nil
}

func (s *CartService) activeSession(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.CanAcceptOrders() {
		return nil, domain.InvalidStatef("session", session.SessionCode, string(session.Status))
	}
	return session, nil
}

func (s *CartService) recalculateSessionTotal(ctx context.Context, session *domain.DiningSession) error {
	total, err := s.orders.SumActiveOrderTotals(ctx, session.ID)
	if err != nil {
		return err
	}
	session.RecalculateTotal(total)
	return s.sessions.UpdateSession(ctx, session)
}

func (s *CartService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("[cart-svc] failed to publish %s event: %v", event.Type, err)
	}
}

var _ CartServiceInterface = (*CartService)(nil)
