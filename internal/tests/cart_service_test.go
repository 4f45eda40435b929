package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"qrdine/internal/domain"
	"qrdine/internal/mocks"
	"qrdine/internal/service"
)

type cartFixture struct {
	carts     *mocks.CartRepository
	orders    *mocks.OrderRepository
	sessions  *mocks.SessionRepository
	menu      *mocks.MenuCatalog
	config    *mocks.RestaurantConfig
	publisher *mocks.EventPublisher
	svc       *service.CartService
}

func newCartFixture(t *testing.T) *cartFixture {
	f := &cartFixture{
		carts:     mocks.NewCartRepository(t),
		orders:    mocks.NewOrderRepository(t),
		sessions:  mocks.NewSessionRepository(t),
		menu:      mocks.NewMenuCatalog(t),
		config:    mocks.NewRestaurantConfig(t),
		publisher: mocks.NewEventPublisher(t),
	}
	f.svc = service.NewCartService(f.carts, f.orders, f.sessions, f.menu, f.config, f.publisher)
	return f
}

func activeTestSession(sessionID uuid.UUID) *domain.DiningSession {
	s := domain.NewDiningSession(uuid.New(), uuid.New(), "AB12CD", "Alice", "")
	s.ID = sessionID
	return s
}

func TestCartService_AddToCart(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()
	guestID := uuid.New()
	menuItemID := uuid.New()

	tests := []struct {
		name          string
		req           service.AddItemRequest
		prepareMocks  func(f *cartFixture)
		expectedError error
	}{
		{
			name: "captures_menu_price_at_add_time",
			req:  service.AddItemRequest{MenuItemID: menuItemID, Quantity: 2},
			prepareMocks: func(f *cartFixture) {
				f.sessions.On("GetSession", ctx, sessionID).Return(activeTestSession(sessionID), nil).Once()
				f.menu.On("GetItemPricing", ctx, menuItemID, (*uuid.UUID)(nil)).
					Return(&domain.ItemPricing{Name: "Pad Thai", BasePrice: 11.50, PriceAdjustment: 0.50, PreparationTimeMinutes: 20, IsAvailable: true}, nil).Once()
				f.carts.On("GetCartBySession", ctx, sessionID).Return(nil, domain.NotFoundf("cart", sessionID)).Once()
				f.carts.On("SaveCart", ctx, mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "unavailable_item_rejected",
			req:  service.AddItemRequest{MenuItemID: menuItemID, Quantity: 1},
			prepareMocks: func(f *cartFixture) {
				f.sessions.On("GetSession", ctx, sessionID).Return(activeTestSession(sessionID), nil).Once()
				f.menu.On("GetItemPricing", ctx, menuItemID, (*uuid.UUID)(nil)).
					Return(&domain.ItemPricing{Name: "Pad Thai", BasePrice: 12.00, IsAvailable: false}, nil).Once()
			},
			expectedError: domain.ErrItemUnavailable,
		},
		{
			name: "quantity_out_of_range",
			req:  service.AddItemRequest{MenuItemID: menuItemID, Quantity: 51},
			prepareMocks: func(f *cartFixture) {
				f.sessions.On("GetSession", ctx, sessionID).Return(activeTestSession(sessionID), nil).Once()
			},
			expectedError: domain.ErrValidation,
		},
		{
			name: "paused_session_rejected",
			req:  service.AddItemRequest{MenuItemID: menuItemID, Quantity: 1},
			prepareMocks: func(f *cartFixture) {
				paused := activeTestSession(sessionID)
				paused.Pause()
				f.sessions.On("GetSession", ctx, sessionID).Return(paused, nil).Once()
			},
			expectedError: domain.ErrInvalidState,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newCartFixture(t)
			testCase.prepareMocks(f)

			cart, err := f.svc.AddToCart(ctx, sessionID, guestID, testCase.req)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, cart.Items, 1)
			assert.Equal(t, 12.00, cart.Items[0].UnitPrice)
			assert.Equal(t, 24.00, cart.Items[0].TotalPrice)
			assert.Equal(t, 24.00, cart.Subtotal)
			assert.Equal(t, guestID, cart.Items[0].GuestID)
		})
	}
}

func TestCartService_SubmitOrder(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()
	guestID := uuid.New()

	t.Run("promotes_cart_to_confirmed_order", func(t *testing.T) {
		f := newCartFixture(t)
		session := activeTestSession(sessionID)

		cart := domain.NewCart(sessionID, session.RestaurantID)
		assert.NoError(t, cart.AddItem(domain.CartItem{ID: uuid.New(), GuestID: guestID, Name: "Pad Thai", UnitPrice: 10.00, Quantity: 2, PrepTimeMinutes: 20}))
		assert.NoError(t, cart.AddItem(domain.CartItem{ID: uuid.New(), GuestID: guestID, Name: "Spring Rolls", UnitPrice: 5.50, Quantity: 1, PrepTimeMinutes: 10}))

		f.sessions.On("GetSession", ctx, sessionID).Return(session, nil).Once()
		f.carts.On("GetCartBySession", ctx, sessionID).Return(cart, nil).Once()
		f.config.On("GetBillingConfig", ctx, session.RestaurantID).Return(&domain.BillingConfig{TaxRate: 0.08, ServiceChargeRate: 0.10}, nil).Once()
		f.orders.On("PromoteCart", ctx, cart.ID, mock.Anything).Return(nil).Once()
		f.orders.On("SumActiveOrderTotals", ctx, sessionID).Return(30.09, nil).Once()
		f.sessions.On("UpdateSession", ctx, mock.MatchedBy(func(s *domain.DiningSession) bool {
			return s.TotalAmount == 30.09
		})).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.Event) bool {
			return e.Type == domain.EventOrderSubmitted
		})).Return(nil).Once()

		order, err := f.svc.SubmitOrder(ctx, sessionID, guestID)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderConfirmed, order.Status)
		assert.Equal(t, 25.50, order.Subtotal)
		assert.Equal(t, 30.09, order.TotalAmount)
		assert.Len(t, order.Items, 2)
		assert.Equal(t, session.TableID, *order.TableID)
	})

	t.Run("empty_cart_rejected", func(t *testing.T) {
		f := newCartFixture(t)
		session := activeTestSession(sessionID)

		f.sessions.On("GetSession", ctx, sessionID).Return(session, nil).Once()
		f.carts.On("GetCartBySession", ctx, sessionID).Return(domain.NewCart(sessionID, session.RestaurantID), nil).Once()

		_, err := f.svc.SubmitOrder(ctx, sessionID, guestID)
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("missing_cart_means_empty", func(t *testing.T) {
		f := newCartFixture(t)
		f.sessions.On("GetSession", ctx, sessionID).Return(activeTestSession(sessionID), nil).Once()
		f.carts.On("GetCartBySession", ctx, sessionID).Return(nil, domain.NotFoundf("cart", sessionID)).Once()

		_, err := f.svc.SubmitOrder(ctx, sessionID, guestID)
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("failed_promotion_leaves_no_order_behind", func(t *testing.T) {
		f := newCartFixture(t)
		session := activeTestSession(sessionID)

		cart := domain.NewCart(sessionID, session.RestaurantID)
		assert.NoError(t, cart.AddItem(domain.CartItem{ID: uuid.New(), GuestID: guestID, UnitPrice: 10.00, Quantity: 1}))

		f.sessions.On("GetSession", ctx, sessionID).Return(session, nil).Once()
		f.carts.On("GetCartBySession", ctx, sessionID).Return(cart, nil).Once()
		f.config.On("GetBillingConfig", ctx, session.RestaurantID).Return(&domain.BillingConfig{}, nil).Once()
		f.orders.On("PromoteCart", ctx, cart.ID, mock.Anything).Return(assert.AnError).Once()

		_, err := f.svc.SubmitOrder(ctx, sessionID, guestID)
		assert.ErrorIs(t, err, assert.AnError)
		f.sessions.AssertNotCalled(t, "UpdateSession", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("retries_on_duplicate_order_number", func(t *testing.T) {
		f := newCartFixture(t)
		session := activeTestSession(sessionID)

		cart := domain.NewCart(sessionID, session.RestaurantID)
		assert.NoError(t, cart.AddItem(domain.CartItem{ID: uuid.New(), GuestID: guestID, UnitPrice: 10.00, Quantity: 1}))

		f.sessions.On("GetSession", ctx, sessionID).Return(session, nil).Once()
		f.carts.On("GetCartBySession", ctx, sessionID).Return(cart, nil).Once()
		f.config.On("GetBillingConfig", ctx, session.RestaurantID).Return(&domain.BillingConfig{}, nil).Once()
		f.orders.On("PromoteCart", ctx, cart.ID, mock.Anything).Return(domain.Conflictf("order", "x", "already exists")).Once()
		f.orders.On("PromoteCart", ctx, cart.ID, mock.Anything).Return(nil).Once()
		f.orders.On("SumActiveOrderTotals", ctx, sessionID).Return(10.00, nil).Once()
		f.sessions.On("UpdateSession", ctx, mock.Anything).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		order, err := f.svc.SubmitOrder(ctx, sessionID, guestID)
		assert.NoError(t, err)
		assert.NotNil(t, order)
	})
}

func TestCartService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("confirmed_to_preparing", func(t *testing.T) {
		f := newCartFixture(t)
		order := &domain.Order{ID: orderID, Status: domain.OrderConfirmed, OrderNumber: "ORD-AAAA1111"}

		f.orders.On("GetOrder", ctx, orderID).Return(order, nil).Once()
		f.orders.On("UpdateOrder", ctx, order).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.Event) bool {
			return e.Type == domain.EventOrderStatusChanged && e.Status == string(domain.OrderPreparing)
		})).Return(nil).Once()

		updated, err := f.svc.UpdateOrderStatus(ctx, orderID, domain.OrderPreparing)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderPreparing, updated.Status)
	})

	t.Run("unknown_status_rejected", func(t *testing.T) {
		f := newCartFixture(t)
		f.orders.On("GetOrder", ctx, orderID).Return(&domain.Order{ID: orderID, Status: domain.OrderConfirmed}, nil).Once()

		_, err := f.svc.UpdateOrderStatus(ctx, orderID, domain.OrderStatus("BOGUS"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCartService_CancelOrder(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	sessionID := uuid.New()

	t.Run("cancelling_shrinks_session_total", func(t *testing.T) {
		f := newCartFixture(t)
		session := activeTestSession(sessionID)
		order := &domain.Order{ID: orderID, SessionID: &sessionID, Status: domain.OrderConfirmed, TotalAmount: 20.00}

		f.orders.On("GetOrder", ctx, orderID).Return(order, nil).Once()
		f.orders.On("UpdateOrder", ctx, order).Return(nil).Once()
		f.sessions.On("GetSession", ctx, sessionID).Return(session, nil).Once()
		f.orders.On("SumActiveOrderTotals", ctx, sessionID).Return(0.0, nil).Once()
		f.sessions.On("UpdateSession", ctx, mock.MatchedBy(func(s *domain.DiningSession) bool {
			return s.TotalAmount == 0
		})).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		cancelled, err := f.svc.CancelOrder(ctx, orderID)
		assert.NoError(t, err)
		assert.Equal(t, domain.OrderCancelled, cancelled.Status)
	})

	t.Run("preparing_order_cannot_cancel", func(t *testing.T) {
		f := newCartFixture(t)
		f.orders.On("GetOrder", ctx, orderID).Return(&domain.Order{ID: orderID, Status: domain.OrderPreparing}, nil).Once()

		_, err := f.svc.CancelOrder(ctx, orderID)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}
