// Package mocks provides testify mocks for the service-layer interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"qrdine/internal/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func setup(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// --- TableRepository ---

type TableRepository struct {
	mock.Mock
}

func NewTableRepository(t testingT) *TableRepository {
	m := &TableRepository{}
	setup(t, &m.Mock)
	return m
}

func (_m *TableRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	return _m.Called(ctx, table).Error(0)
}

func (_m *TableRepository) GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Table
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Table)
	}
	return r0, ret.Error(1)
}

func (_m *TableRepository) GetTableByQRCode(ctx context.Context, qrCode string) (*domain.Table, error) {
	ret := _m.Called(ctx, qrCode)
	var r0 *domain.Table
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Table)
	}
	return r0, ret.Error(1)
}

func (_m *TableRepository) ListTables(ctx context.Context, restaurantID uuid.UUID) ([]domain.Table, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 []domain.Table
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Table)
	}
	return r0, ret.Error(1)
}

func (_m *TableRepository) OccupyTable(ctx context.Context, tableID, sessionID uuid.UUID, version int) error {
	return _m.Called(ctx, tableID, sessionID, version).Error(0)
}

func (_m *TableRepository) ReleaseTable(ctx context.Context, tableID uuid.UUID) error {
	return _m.Called(ctx, tableID).Error(0)
}

func (_m *TableRepository) SetTableStatus(ctx context.Context, tableID uuid.UUID, status domain.TableStatus) error {
	return _m.Called(ctx, tableID, status).Error(0)
}

func (_m *TableRepository) SaveTableQRImage(ctx context.Context, tableID uuid.UUID, png []byte) error {
	return _m.Called(ctx, tableID, png).Error(0)
}

func (_m *TableRepository) GetTableQRImage(ctx context.Context, tableID uuid.UUID) ([]byte, error) {
	ret := _m.Called(ctx, tableID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// --- SessionRepository ---

type SessionRepository struct {
	mock.Mock
}

func NewSessionRepository(t testingT) *SessionRepository {
	m := &SessionRepository{}
	setup(t, &m.Mock)
	return m
}

func (_m *SessionRepository) CreateSession(ctx context.Context, session *domain.DiningSession) error {
	return _m.Called(ctx, session).Error(0)
}

func (_m *SessionRepository) GetSession(ctx context.Context, id uuid.UUID) (*domain.DiningSession, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.DiningSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DiningSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionRepository) GetSessionByCode(ctx context.Context, code string) (*domain.DiningSession, error) {
	ret := _m.Called(ctx, code)
	var r0 *domain.DiningSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DiningSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionRepository) GetActiveSessionByTable(ctx context.Context, tableID uuid.UUID) (*domain.DiningSession, error) {
	ret := _m.Called(ctx, tableID)
	var r0 *domain.DiningSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DiningSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionRepository) UpdateSession(ctx context.Context, session *domain.DiningSession) error {
	return _m.Called(ctx, session).Error(0)
}

func (_m *SessionRepository) ListActiveSessions(ctx context.Context, restaurantID uuid.UUID) ([]domain.DiningSession, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 []domain.DiningSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.DiningSession)
	}
	return r0, ret.Error(1)
}

func (_m *SessionRepository) ListSessionHistory(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]domain.DiningSession, error) {
	ret := _m.Called(ctx, restaurantID, limit, offset)
	var r0 []domain.DiningSession
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.DiningSession)
	}
	return r0, ret.Error(1)
}

// --- GuestRepository ---

type GuestRepository struct {
	mock.Mock
}

func NewGuestRepository(t testingT) *GuestRepository {
	m := &GuestRepository{}
	setup(t, &m.Mock)
	return m
}

func (_m *GuestRepository) CreateGuest(ctx context.Context, guest *domain.SessionGuest) error {
	return _m.Called(ctx, guest).Error(0)
}

func (_m *GuestRepository) GetGuest(ctx context.Context, id uuid.UUID) (*domain.SessionGuest, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.SessionGuest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.SessionGuest)
	}
	return r0, ret.Error(1)
}

func (_m *GuestRepository) GetGuestByToken(ctx context.Context, token string) (*domain.SessionGuest, error) {
	ret := _m.Called(ctx, token)
	var r0 *domain.SessionGuest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.SessionGuest)
	}
	return r0, ret.Error(1)
}

func (_m *GuestRepository) ListSessionGuests(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionGuest, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 []domain.SessionGuest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.SessionGuest)
	}
	return r0, ret.Error(1)
}

func (_m *GuestRepository) CountSessionGuests(ctx context.Context, sessionID uuid.UUID) (int, error) {
	ret := _m.Called(ctx, sessionID)
	return ret.Get(0).(int), ret.Error(1)
}

func (_m *GuestRepository) UpdateGuestActivity(ctx context.Context, guestID uuid.UUID, at time.Time) error {
	return _m.Called(ctx, guestID, at).Error(0)
}

func (_m *GuestRepository) DeleteGuest(ctx context.Context, guestID uuid.UUID) error {
	return _m.Called(ctx, guestID).Error(0)
}

// --- CartRepository ---

type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t testingT) *CartRepository {
	m := &CartRepository{}
	setup(t, &m.Mock)
	return m
}

func (_m *CartRepository) GetCartBySession(ctx context.Context, sessionID uuid.UUID) (*domain.Cart, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 *domain.Cart
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Cart)
	}
	return r0, ret.Error(1)
}

func (_m *CartRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	return _m.Called(ctx, cart).Error(0)
}

// --- OrderRepository ---

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	setup(t, &m.Mock)
	return m
}

func (_m *OrderRepository) PromoteCart(ctx context.Context, cartID uuid.UUID, order *domain.Order) error {
	return _m.Called(ctx, cartID, order).Error(0)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	return _m.Called(ctx, order).Error(0)
}

func (_m *OrderRepository) ListSessionOrders(ctx context.Context, sessionID uuid.UUID) ([]domain.Order, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListRestaurantOrders(ctx context.Context, restaurantID uuid.UUID, status string, limit, offset int) ([]domain.Order, error) {
	ret := _m.Called(ctx, restaurantID, status, limit, offset)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) SumActiveOrderTotals(ctx context.Context, sessionID uuid.UUID) (float64, error) {
	ret := _m.Called(ctx, sessionID)
	return ret.Get(0).(float64), ret.Error(1)
}

// --- VoucherRepository ---

type VoucherRepository struct {
	mock.Mock
}

func NewVoucherRepository(t testingT) *VoucherRepository {
	m := &VoucherRepository{}
	setup(t, &m.Mock)
	return m
}

func (_m *VoucherRepository) GetVoucherByCode(ctx context.Context, restaurantID uuid.UUID, code string) (*domain.Voucher, error) {
	ret := _m.Called(ctx, restaurantID, code)
	var r0 *domain.Voucher
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Voucher)
	}
	return r0, ret.Error(1)
}

func (_m *VoucherRepository) IncrementVoucherUsage(ctx context.Context, voucherID uuid.UUID) error {
	return _m.Called(ctx, voucherID).Error(0)
}

// --- BillSplitRepository ---

type BillSplitRepository struct {
	mock.Mock
}

func NewBillSplitRepository(t testingT) *BillSplitRepository {
	m := &BillSplitRepository{}
	setup(t, &m.Mock)
	return m
}

func (_m *BillSplitRepository) ReplaceSessionSplits(ctx context.Context, sessionID uuid.UUID, splits []domain.BillSplit) error {
	return _m.Called(ctx, sessionID, splits).Error(0)
}

func (_m *BillSplitRepository) GetSplit(ctx context.Context, id uuid.UUID) (*domain.BillSplit, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.BillSplit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.BillSplit)
	}
	return r0, ret.Error(1)
}

func (_m *BillSplitRepository) ListSessionSplits(ctx context.Context, sessionID uuid.UUID) ([]domain.BillSplit, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 []domain.BillSplit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.BillSplit)
	}
	return r0, ret.Error(1)
}

func (_m *BillSplitRepository) UpdateSplit(ctx context.Context, split *domain.BillSplit) error {
	return _m.Called(ctx, split).Error(0)
}
