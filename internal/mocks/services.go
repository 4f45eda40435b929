package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"qrdine/internal/domain"
	"qrdine/internal/service"
)

// --- TableServiceInterface ---

type TableServiceInterface struct {
	mock.Mock
}

func NewTableServiceInterface(t testingT) *TableServiceInterface {
	m := &TableServiceInterface{}
	setup(t, &m.Mock)
	return m
}

func (_m *TableServiceInterface) Register(ctx context.Context, table *domain.Table) error {
	return _m.Called(ctx, table).Error(0)
}

func (_m *TableServiceInterface) Get(ctx context.Context, tableID uuid.UUID) (*domain.Table, error) {
	ret := _m.Called(ctx, tableID)
	var r0 *domain.Table
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Table)
	}
	return r0, ret.Error(1)
}

func (_m *TableServiceInterface) GetByQRCode(ctx context.Context, qrCode string) (*domain.Table, error) {
	ret := _m.Called(ctx, qrCode)
	var r0 *domain.Table
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Table)
	}
	return r0, ret.Error(1)
}

func (_m *TableServiceInterface) List(ctx context.Context, restaurantID uuid.UUID) ([]domain.Table, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 []domain.Table
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Table)
	}
	return r0, ret.Error(1)
}

func (_m *TableServiceInterface) Occupy(ctx context.Context, tableID, sessionID uuid.UUID) error {
	return _m.Called(ctx, tableID, sessionID).Error(0)
}

func (_m *TableServiceInterface) Release(ctx context.Context, tableID uuid.UUID) error {
	return _m.Called(ctx, tableID).Error(0)
}

func (_m *TableServiceInterface) MarkNeedsCleaning(ctx context.Context, tableID uuid.UUID) error {
	return _m.Called(ctx, tableID).Error(0)
}

func (_m *TableServiceInterface) QRImage(ctx context.Context, tableID uuid.UUID) ([]byte, error) {
	ret := _m.Called(ctx, tableID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// --- SessionServiceInterface ---

type SessionServiceInterface struct {
	mock.Mock
}

func NewSessionServiceInterface(t testingT) *SessionServiceInterface {
	m := &SessionServiceInterface{}
	setup(t, &m.Mock)
	return m
}

func (_m *SessionServiceInterface) Create(ctx context.Context, tableID uuid.UUID, hostName, hostPhone string) (*service.SessionWithHost, error) {
	ret := _m.Called(ctx, tableID, hostName, hostPhone)
	var r0 *service.SessionWithHost
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.SessionWithHost)
	}
	return r0, ret.Error(1)
}

func (_m *SessionServiceInterface) sessionResult(ret mock.Arguments) (*domain.DiningSession, error) {
	var r0 *domain.DiningSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DiningSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionServiceInterface) Get(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	return _m.sessionResult(_m.Called(ctx, sessionID))
}

func (_m *SessionServiceInterface) GetByCode(ctx context.Context, code string) (*domain.DiningSession, error) {
	return _m.sessionResult(_m.Called(ctx, code))
}

func (_m *SessionServiceInterface) Pause(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	return _m.sessionResult(_m.Called(ctx, sessionID))
}

func (_m *SessionServiceInterface) Resume(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	return _m.sessionResult(_m.Called(ctx, sessionID))
}

func (_m *SessionServiceInterface) RequestPayment(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	return _m.sessionResult(_m.Called(ctx, sessionID))
}

func (_m *SessionServiceInterface) Complete(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	return _m.sessionResult(_m.Called(ctx, sessionID))
}

func (_m *SessionServiceInterface) Cancel(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	return _m.sessionResult(_m.Called(ctx, sessionID))
}

func (_m *SessionServiceInterface) CallWaiter(ctx context.Context, sessionID uuid.UUID) error {
	return _m.Called(ctx, sessionID).Error(0)
}

func (_m *SessionServiceInterface) WaiterResponded(ctx context.Context, sessionID uuid.UUID) error {
	return _m.Called(ctx, sessionID).Error(0)
}

func (_m *SessionServiceInterface) SetTip(ctx context.Context, sessionID uuid.UUID, amount float64) (*domain.DiningSession, error) {
	return _m.sessionResult(_m.Called(ctx, sessionID, amount))
}

func (_m *SessionServiceInterface) RecalculateTotal(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error) {
	return _m.sessionResult(_m.Called(ctx, sessionID))
}

func (_m *SessionServiceInterface) ListActive(ctx context.Context, restaurantID uuid.UUID) ([]domain.DiningSession, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 []domain.DiningSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.DiningSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionServiceInterface) History(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]service.SessionSummary, error) {
	ret := _m.Called(ctx, restaurantID, limit, offset)
	var r0 []service.SessionSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]service.SessionSummary)
	}
	return r0, ret.Error(1)
}

// --- GuestServiceInterface ---

type GuestServiceInterface struct {
	mock.Mock
}

func NewGuestServiceInterface(t testingT) *GuestServiceInterface {
	m := &GuestServiceInterface{}
	setup(t, &m.Mock)
	return m
}

func (_m *GuestServiceInterface) guestResult(ret mock.Arguments) (*domain.SessionGuest, error) {
	var r0 *domain.SessionGuest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.SessionGuest)
	}
	return r0, ret.Error(1)
}

func (_m *GuestServiceInterface) AdmitHost(ctx context.Context, session *domain.DiningSession, name, phone string) (*domain.SessionGuest, error) {
	return _m.guestResult(_m.Called(ctx, session, name, phone))
}

func (_m *GuestServiceInterface) AdmitGuest(ctx context.Context, sessionID uuid.UUID, name, phone string) (*domain.SessionGuest, error) {
	return _m.guestResult(_m.Called(ctx, sessionID, name, phone))
}

func (_m *GuestServiceInterface) ResolveByToken(ctx context.Context, token string) (*domain.SessionGuest, error) {
	return _m.guestResult(_m.Called(ctx, token))
}

func (_m *GuestServiceInterface) TouchActivity(ctx context.Context, guestID uuid.UUID) error {
	return _m.Called(ctx, guestID).Error(0)
}

func (_m *GuestServiceInterface) ListGuests(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionGuest, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 []domain.SessionGuest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.SessionGuest)
	}
	return r0, ret.Error(1)
}

func (_m *GuestServiceInterface) Leave(ctx context.Context, sessionID uuid.UUID, token string) error {
	return _m.Called(ctx, sessionID, token).Error(0)
}

// --- CartServiceInterface ---

type CartServiceInterface struct {
	mock.Mock
}

func NewCartServiceInterface(t testingT) *CartServiceInterface {
	m := &CartServiceInterface{}
	setup(t, &m.Mock)
	return m
}

func (_m *CartServiceInterface) cartResult(ret mock.Arguments) (*domain.Cart, error) {
	var r0 *domain.Cart
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Cart)
	}
	return r0, ret.Error(1)
}

func (_m *CartServiceInterface) orderResult(ret mock.Arguments) (*domain.Order, error) {
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *CartServiceInterface) GetCart(ctx context.Context, sessionID uuid.UUID) (*domain.Cart, error) {
	return _m.cartResult(_m.Called(ctx, sessionID))
}

func (_m *CartServiceInterface) AddToCart(ctx context.Context, sessionID, guestID uuid.UUID, req service.AddItemRequest) (*domain.Cart, error) {
	return _m.cartResult(_m.Called(ctx, sessionID, guestID, req))
}

func (_m *CartServiceInterface) UpdateCartItem(ctx context.Context, sessionID, itemID uuid.UUID, quantity int, instructions string) (*domain.Cart, error) {
	return _m.cartResult(_m.Called(ctx, sessionID, itemID, quantity, instructions))
}

func (_m *CartServiceInterface) RemoveFromCart(ctx context.Context, sessionID, itemID uuid.UUID) (*domain.Cart, error) {
	return _m.cartResult(_m.Called(ctx, sessionID, itemID))
}

func (_m *CartServiceInterface) SubmitOrder(ctx context.Context, sessionID, guestID uuid.UUID) (*domain.Order, error) {
	return _m.orderResult(_m.Called(ctx, sessionID, guestID))
}

func (_m *CartServiceInterface) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return _m.orderResult(_m.Called(ctx, orderID))
}

func (_m *CartServiceInterface) ListSessionOrders(ctx context.Context, sessionID uuid.UUID) ([]domain.Order, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *CartServiceInterface) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	return _m.orderResult(_m.Called(ctx, orderID, status))
}

func (_m *CartServiceInterface) CancelOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return _m.orderResult(_m.Called(ctx, orderID))
}

// --- BillingServiceInterface ---

type BillingServiceInterface struct {
	mock.Mock
}

func NewBillingServiceInterface(t testingT) *BillingServiceInterface {
	m := &BillingServiceInterface{}
	setup(t, &m.Mock)
	return m
}

func (_m *BillingServiceInterface) PreviewDiscount(ctx context.Context, restaurantID uuid.UUID, code string, orderAmount float64) (float64, error) {
	ret := _m.Called(ctx, restaurantID, code, orderAmount)
	return ret.Get(0).(float64), ret.Error(1)
}

func (_m *BillingServiceInterface) ApplyVoucher(ctx context.Context, restaurantID uuid.UUID, code string, orderID uuid.UUID) (*domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, code, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *BillingServiceInterface) ComputeSplits(ctx context.Context, sessionID uuid.UUID, req service.SplitRequest) ([]domain.BillSplit, error) {
	ret := _m.Called(ctx, sessionID, req)
	var r0 []domain.BillSplit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.BillSplit)
	}
	return r0, ret.Error(1)
}

func (_m *BillingServiceInterface) ListSplits(ctx context.Context, sessionID uuid.UUID) ([]domain.BillSplit, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 []domain.BillSplit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.BillSplit)
	}
	return r0, ret.Error(1)
}

func (_m *BillingServiceInterface) MarkSplitPaid(ctx context.Context, splitID uuid.UUID, method string) (*domain.BillSplit, error) {
	ret := _m.Called(ctx, splitID, method)
	var r0 *domain.BillSplit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.BillSplit)
	}
	return r0, ret.Error(1)
}

func (_m *BillingServiceInterface) MarkSplitFailed(ctx context.Context, splitID uuid.UUID) (*domain.BillSplit, error) {
	ret := _m.Called(ctx, splitID)
	var r0 *domain.BillSplit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.BillSplit)
	}
	return r0, ret.Error(1)
}
