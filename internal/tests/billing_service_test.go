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

type billingFixture struct {
	vouchers *mocks.VoucherRepository
	orders   *mocks.OrderRepository
	sessions *mocks.SessionRepository
	guests   *mocks.GuestRepository
	splits   *mocks.BillSplitRepository
	config   *mocks.RestaurantConfig
	svc      *service.BillingService
}

func newBillingFixture(t *testing.T) *billingFixture {
	f := &billingFixture{
		vouchers: mocks.NewVoucherRepository(t),
		orders:   mocks.NewOrderRepository(t),
		sessions: mocks.NewSessionRepository(t),
		guests:   mocks.NewGuestRepository(t),
		splits:   mocks.NewBillSplitRepository(t),
		config:   mocks.NewRestaurantConfig(t),
	}
	f.svc = service.NewBillingService(f.vouchers, f.orders, f.sessions, f.guests, f.splits, f.config)
	return f
}

func awaitingPaymentSession(sessionID uuid.UUID, total float64) *domain.DiningSession {
	s := domain.NewDiningSession(uuid.New(), uuid.New(), "AB12CD", "Alice", "")
	s.ID = sessionID
	if err := s.RequestPayment(total); err != nil {
		panic(err)
	}
	return s
}

func TestBillingService_PreviewDiscount(t *testing.T) {
	ctx := context.Background()
	restaurantID := uuid.New()

	f := newBillingFixture(t)
	maxDiscount := 10.0
	f.vouchers.On("GetVoucherByCode", ctx, restaurantID, "SAVE20").Return(&domain.Voucher{
		ID:                    uuid.New(),
		Type:                  domain.VoucherPercentage,
		Status:                domain.VoucherActive,
		DiscountValue:         20,
		MaximumDiscountAmount: &maxDiscount,
	}, nil).Twice()

	// Cap kicks in above 50 and previewing never touches the usage count.
	discount, err := f.svc.PreviewDiscount(ctx, restaurantID, "SAVE20", 50)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, discount)

	discount, err = f.svc.PreviewDiscount(ctx, restaurantID, "SAVE20", 30)
	assert.NoError(t, err)
	assert.Equal(t, 6.0, discount)
}

func TestBillingService_ApplyVoucher(t *testing.T) {
	ctx := context.Background()
	restaurantID := uuid.New()
	orderID := uuid.New()

	voucher := func() *domain.Voucher {
		return &domain.Voucher{
			ID:            uuid.New(),
			RestaurantID:  restaurantID,
			Code:          "SAVE20",
			Type:          domain.VoucherPercentage,
			Status:        domain.VoucherActive,
			DiscountValue: 20,
		}
	}

	t.Run("redeems_and_counts_usage", func(t *testing.T) {
		f := newBillingFixture(t)
		v := voucher()
		order := &domain.Order{
			ID:           orderID,
			RestaurantID: restaurantID,
			Status:       domain.OrderConfirmed,
			Subtotal:     50.00,
			Items:        []domain.OrderItem{{TotalPrice: 50.00}},
		}

		f.vouchers.On("GetVoucherByCode", ctx, restaurantID, "SAVE20").Return(v, nil).Once()
		f.orders.On("GetOrder", ctx, orderID).Return(order, nil).Once()
		f.config.On("GetBillingConfig", ctx, restaurantID).Return(&domain.BillingConfig{TaxRate: 0.08}, nil).Once()
		f.vouchers.On("IncrementVoucherUsage", ctx, v.ID).Return(nil).Once()
		f.orders.On("UpdateOrder", ctx, mock.MatchedBy(func(o *domain.Order) bool {
			return o.DiscountAmount == 10.00
		})).Return(nil).Once()

		updated, err := f.svc.ApplyVoucher(ctx, restaurantID, "SAVE20", orderID)
		assert.NoError(t, err)
		assert.Equal(t, 10.00, updated.DiscountAmount)
		assert.Equal(t, 44.00, updated.TotalAmount)
	})

	t.Run("exhausted_voucher_leaves_order_untouched", func(t *testing.T) {
		f := newBillingFixture(t)
		v := voucher()
		order := &domain.Order{
			ID:           orderID,
			RestaurantID: restaurantID,
			Status:       domain.OrderConfirmed,
			Subtotal:     50.00,
		}

		f.vouchers.On("GetVoucherByCode", ctx, restaurantID, "SAVE20").Return(v, nil).Once()
		f.orders.On("GetOrder", ctx, orderID).Return(order, nil).Once()
		f.config.On("GetBillingConfig", ctx, restaurantID).Return(&domain.BillingConfig{TaxRate: 0.08}, nil).Once()
		f.vouchers.On("IncrementVoucherUsage", ctx, v.ID).
			Return(domain.Conflictf("voucher", v.Code, "usage limit reached")).Once()

		_, err := f.svc.ApplyVoucher(ctx, restaurantID, "SAVE20", orderID)
		assert.ErrorIs(t, err, domain.ErrConflict)
		f.orders.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything)
	})

	t.Run("locked_order_rejected", func(t *testing.T) {
		f := newBillingFixture(t)
		f.vouchers.On("GetVoucherByCode", ctx, restaurantID, "SAVE20").Return(voucher(), nil).Once()
		f.orders.On("GetOrder", ctx, orderID).Return(&domain.Order{ID: orderID, Status: domain.OrderPreparing, Subtotal: 50}, nil).Once()

		_, err := f.svc.ApplyVoucher(ctx, restaurantID, "SAVE20", orderID)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("below_minimum_rejected", func(t *testing.T) {
		f := newBillingFixture(t)
		minOrder := 100.0
		v := voucher()
		v.MinimumOrderAmount = &minOrder

		f.vouchers.On("GetVoucherByCode", ctx, restaurantID, "SAVE20").Return(v, nil).Once()
		f.orders.On("GetOrder", ctx, orderID).Return(&domain.Order{ID: orderID, Status: domain.OrderConfirmed, Subtotal: 50}, nil).Once()

		_, err := f.svc.ApplyVoucher(ctx, restaurantID, "SAVE20", orderID)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestBillingService_ComputeSplits(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	guestA := domain.SessionGuest{ID: uuid.New(), SessionID: sessionID, GuestName: "Alice", IsHost: true}
	guestB := domain.SessionGuest{ID: uuid.New(), SessionID: sessionID, GuestName: "Bob"}
	guestC := domain.SessionGuest{ID: uuid.New(), SessionID: sessionID, GuestName: "Carol"}
	allGuests := []domain.SessionGuest{guestA, guestB, guestC}

	t.Run("session_not_awaiting_payment", func(t *testing.T) {
		f := newBillingFixture(t)
		active := domain.NewDiningSession(uuid.New(), uuid.New(), "AB12CD", "Alice", "")
		active.ID = sessionID
		f.sessions.On("GetSession", ctx, sessionID).Return(active, nil).Once()

		_, err := f.svc.ComputeSplits(ctx, sessionID, service.SplitRequest{Type: domain.SplitEqual})
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("equal_split_remainder_on_first", func(t *testing.T) {
		f := newBillingFixture(t)
		f.sessions.On("GetSession", ctx, sessionID).Return(awaitingPaymentSession(sessionID, 100.00), nil).Once()
		f.guests.On("ListSessionGuests", ctx, sessionID).Return(allGuests, nil).Once()
		f.splits.On("ReplaceSessionSplits", ctx, sessionID, mock.Anything).Return(nil).Once()

		splits, err := f.svc.ComputeSplits(ctx, sessionID, service.SplitRequest{Type: domain.SplitEqual})
		assert.NoError(t, err)
		assert.Len(t, splits, 3)
		assert.Equal(t, 33.34, splits[0].Amount)
		assert.Equal(t, 33.33, splits[1].Amount)
		assert.Equal(t, 33.33, splits[2].Amount)
	})

	t.Run("percentage_split", func(t *testing.T) {
		f := newBillingFixture(t)
		f.sessions.On("GetSession", ctx, sessionID).Return(awaitingPaymentSession(sessionID, 80.00), nil).Once()
		f.guests.On("ListSessionGuests", ctx, sessionID).Return(allGuests, nil).Once()
		f.splits.On("ReplaceSessionSplits", ctx, sessionID, mock.Anything).Return(nil).Once()

		splits, err := f.svc.ComputeSplits(ctx, sessionID, service.SplitRequest{
			Type: domain.SplitPercentage,
			Percentages: map[uuid.UUID]float64{
				guestA.ID: 50,
				guestB.ID: 30,
				guestC.ID: 20,
			},
		})
		assert.NoError(t, err)
		assert.Len(t, splits, 3)
		total := 0.0
		for _, split := range splits {
			total += split.Amount
		}
		assert.Equal(t, 80.00, domain.Round2(total))
	})

	t.Run("percentages_must_sum_to_100", func(t *testing.T) {
		f := newBillingFixture(t)
		f.sessions.On("GetSession", ctx, sessionID).Return(awaitingPaymentSession(sessionID, 80.00), nil).Once()
		f.guests.On("ListSessionGuests", ctx, sessionID).Return(allGuests, nil).Once()

		_, err := f.svc.ComputeSplits(ctx, sessionID, service.SplitRequest{
			Type:        domain.SplitPercentage,
			Percentages: map[uuid.UUID]float64{guestA.ID: 50, guestB.ID: 30},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("custom_split_must_cover_total", func(t *testing.T) {
		f := newBillingFixture(t)
		f.sessions.On("GetSession", ctx, sessionID).Return(awaitingPaymentSession(sessionID, 90.00), nil).Once()
		f.guests.On("ListSessionGuests", ctx, sessionID).Return(allGuests, nil).Once()

		_, err := f.svc.ComputeSplits(ctx, sessionID, service.SplitRequest{
			Type:   domain.SplitCustom,
			Custom: map[uuid.UUID]float64{guestA.ID: 40, guestB.ID: 30, guestC.ID: 10},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("item_based_split_scales_to_session_total", func(t *testing.T) {
		f := newBillingFixture(t)
		// 60 of items becomes 66 after tax and tip; shares scale with it.
		f.sessions.On("GetSession", ctx, sessionID).Return(awaitingPaymentSession(sessionID, 66.00), nil).Once()
		f.guests.On("ListSessionGuests", ctx, sessionID).Return([]domain.SessionGuest{guestA, guestB}, nil).Once()
		f.orders.On("ListSessionOrders", ctx, sessionID).Return([]domain.Order{
			{
				Status: domain.OrderServed,
				Items: []domain.OrderItem{
					{GuestID: guestA.ID, TotalPrice: 40.00},
					{GuestID: guestB.ID, TotalPrice: 20.00},
				},
			},
			{
				Status: domain.OrderCancelled,
				Items:  []domain.OrderItem{{GuestID: guestB.ID, TotalPrice: 99.00}},
			},
		}, nil).Once()
		f.splits.On("ReplaceSessionSplits", ctx, sessionID, mock.Anything).Return(nil).Once()

		splits, err := f.svc.ComputeSplits(ctx, sessionID, service.SplitRequest{Type: domain.SplitItemBased})
		assert.NoError(t, err)
		assert.Len(t, splits, 2)
		assert.Equal(t, 44.00, domain.Round2(splits[0].Amount))
		assert.Equal(t, 22.00, domain.Round2(splits[1].Amount))
	})
}

func TestBillingService_MarkSplitPaid(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("last_share_settles_the_session", func(t *testing.T) {
		f := newBillingFixture(t)
		split := domain.NewBillSplit(sessionID, uuid.New(), domain.SplitEqual, 38.75)
		other := domain.NewBillSplit(sessionID, uuid.New(), domain.SplitEqual, 38.75)
		other.MarkPaid("CARD")

		session := awaitingPaymentSession(sessionID, 77.50)

		// The listing reflects the state after the update lands, with the
		// settled share already PAID.
		settled := *split
		settled.MarkPaid("CASH")

		f.splits.On("GetSplit", ctx, split.ID).Return(split, nil).Once()
		f.splits.On("UpdateSplit", ctx, split).Return(nil).Once()
		f.splits.On("ListSessionSplits", ctx, sessionID).Return([]domain.BillSplit{settled, *other}, nil).Once()
		f.sessions.On("GetSession", ctx, sessionID).Return(session, nil).Once()
		f.sessions.On("UpdateSession", ctx, mock.MatchedBy(func(s *domain.DiningSession) bool {
			return s.PaymentStatus == domain.PaymentPaid
		})).Return(nil).Once()

		paid, err := f.svc.MarkSplitPaid(ctx, split.ID, "CASH")
		assert.NoError(t, err)
		assert.True(t, paid.IsPaid())
		assert.NotNil(t, paid.PaidAt)
	})

	t.Run("outstanding_shares_leave_session_pending", func(t *testing.T) {
		f := newBillingFixture(t)
		split := domain.NewBillSplit(sessionID, uuid.New(), domain.SplitEqual, 38.75)
		unpaid := domain.NewBillSplit(sessionID, uuid.New(), domain.SplitEqual, 38.75)

		settled := *split
		settled.MarkPaid("CARD")

		f.splits.On("GetSplit", ctx, split.ID).Return(split, nil).Once()
		f.splits.On("UpdateSplit", ctx, split).Return(nil).Once()
		f.splits.On("ListSessionSplits", ctx, sessionID).Return([]domain.BillSplit{settled, *unpaid}, nil).Once()

		_, err := f.svc.MarkSplitPaid(ctx, split.ID, "CARD")
		assert.NoError(t, err)
	})

	t.Run("paying_twice_is_idempotent", func(t *testing.T) {
		f := newBillingFixture(t)
		split := domain.NewBillSplit(sessionID, uuid.New(), domain.SplitEqual, 38.75)
		split.MarkPaid("CARD")

		f.splits.On("GetSplit", ctx, split.ID).Return(split, nil).Once()

		paid, err := f.svc.MarkSplitPaid(ctx, split.ID, "CASH")
		assert.NoError(t, err)
		assert.Equal(t, "CARD", paid.PaymentMethod)
	})
}
