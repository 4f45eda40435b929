package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"qrdine/internal/domain"
)

// --- MenuCatalog ---

type MenuCatalog struct {
	mock.Mock
}

func NewMenuCatalog(t testingT) *MenuCatalog {
	m := &MenuCatalog{}
	setup(t, &m.Mock)
	return m
}

func (_m *MenuCatalog) GetItemPricing(ctx context.Context, menuItemID uuid.UUID, variationID *uuid.UUID) (*domain.ItemPricing, error) {
	ret := _m.Called(ctx, menuItemID, variationID)
	var r0 *domain.ItemPricing
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.ItemPricing)
	}
	return r0, ret.Error(1)
}

// --- RestaurantConfig ---

type RestaurantConfig struct {
	mock.Mock
}

func NewRestaurantConfig(t testingT) *RestaurantConfig {
	m := &RestaurantConfig{}
	setup(t, &m.Mock)
	return m
}

func (_m *RestaurantConfig) GetBillingConfig(ctx context.Context, restaurantID uuid.UUID) (*domain.BillingConfig, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 *domain.BillingConfig
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.BillingConfig)
	}
	return r0, ret.Error(1)
}

// --- GuestTokenCache ---

type GuestTokenCache struct {
	mock.Mock
}

func NewGuestTokenCache(t testingT) *GuestTokenCache {
	m := &GuestTokenCache{}
	setup(t, &m.Mock)
	return m
}

func (_m *GuestTokenCache) TokenKey(token string) string {
	return _m.Called(token).String(0)
}

func (_m *GuestTokenCache) CacheToken(ctx context.Context, token string, guestID uuid.UUID) error {
	return _m.Called(ctx, token, guestID).Error(0)
}

func (_m *GuestTokenCache) LookupToken(ctx context.Context, token string) (uuid.UUID, error) {
	ret := _m.Called(ctx, token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func (_m *GuestTokenCache) DropToken(ctx context.Context, token string) error {
	return _m.Called(ctx, token).Error(0)
}

// --- EventPublisher ---

type EventPublisher struct {
	mock.Mock
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	setup(t, &m.Mock)
	return m
}

func (_m *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	return _m.Called(ctx, event).Error(0)
}

// --- BoardStore ---

type BoardStore struct {
	mock.Mock
}

func NewBoardStore(t testingT) *BoardStore {
	m := &BoardStore{}
	setup(t, &m.Mock)
	return m
}

func (_m *BoardStore) UpdateTable(ctx context.Context, restaurantID uuid.UUID, tableNumber, status string, amount float64) error {
	return _m.Called(ctx, restaurantID, tableNumber, status, amount).Error(0)
}

func (_m *BoardStore) RecordWaiterCall(ctx context.Context, restaurantID uuid.UUID, tableNumber string) error {
	return _m.Called(ctx, restaurantID, tableNumber).Error(0)
}

// --- QRGenerator ---

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	setup(t, &m.Mock)
	return m
}

func (_m *QRGenerator) Generate(code string) ([]byte, error) {
	ret := _m.Called(code)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// --- TableRegistry ---

type TableRegistry struct {
	mock.Mock
}

func NewTableRegistry(t testingT) *TableRegistry {
	m := &TableRegistry{}
	setup(t, &m.Mock)
	return m
}

func (_m *TableRegistry) Get(ctx context.Context, tableID uuid.UUID) (*domain.Table, error) {
	ret := _m.Called(ctx, tableID)
	var r0 *domain.Table
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Table)
	}
	return r0, ret.Error(1)
}

func (_m *TableRegistry) Occupy(ctx context.Context, tableID, sessionID uuid.UUID) error {
	return _m.Called(ctx, tableID, sessionID).Error(0)
}

func (_m *TableRegistry) Release(ctx context.Context, tableID uuid.UUID) error {
	return _m.Called(ctx, tableID).Error(0)
}

// --- GuestRegistry ---

type GuestRegistry struct {
	mock.Mock
}

func NewGuestRegistry(t testingT) *GuestRegistry {
	m := &GuestRegistry{}
	setup(t, &m.Mock)
	return m
}

func (_m *GuestRegistry) AdmitHost(ctx context.Context, session *domain.DiningSession, name, phone string) (*domain.SessionGuest, error) {
	ret := _m.Called(ctx, session, name, phone)
	var r0 *domain.SessionGuest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.SessionGuest)
	}
	return r0, ret.Error(1)
}
