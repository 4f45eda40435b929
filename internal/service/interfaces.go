package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

// Repository interfaces implemented by internal/storage.

type TableRepository interface {
	CreateTable(ctx context.Context, table *domain.Table) error
	GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error)
	GetTableByQRCode(ctx context.Context, qrCode string) (*domain.Table, error)
	ListTables(ctx context.Context, restaurantID uuid.UUID) ([]domain.Table, error)
	OccupyTable(ctx context.Context, tableID, sessionID uuid.UUID, version int) error
	ReleaseTable(ctx context.Context, tableID uuid.UUID) error
	SetTableStatus(ctx context.Context, tableID uuid.UUID, status domain.TableStatus) error
	SaveTableQRImage(ctx context.Context, tableID uuid.UUID, png []byte) error
	GetTableQRImage(ctx context.Context, tableID uuid.UUID) ([]byte, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *domain.DiningSession) error
	GetSession(ctx context.Context, id uuid.UUID) (*domain.DiningSession, error)
	GetSessionByCode(ctx context.Context, code string) (*domain.DiningSession, error)
	GetActiveSessionByTable(ctx context.Context, tableID uuid.UUID) (*domain.DiningSession, error)
	UpdateSession(ctx context.Context, session *domain.DiningSession) error
	ListActiveSessions(ctx context.Context, restaurantID uuid.UUID) ([]domain.DiningSession, error)
	ListSessionHistory(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]domain.DiningSession, error)
}

type GuestRepository interface {
	CreateGuest(ctx context.Context, guest *domain.SessionGuest) error
	GetGuest(ctx context.Context, id uuid.UUID) (*domain.SessionGuest, error)
	GetGuestByToken(ctx context.Context, token string) (*domain.SessionGuest, error)
	ListSessionGuests(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionGuest, error)
	CountSessionGuests(ctx context.Context, sessionID uuid.UUID) (int, error)
	UpdateGuestActivity(ctx context.Context, guestID uuid.UUID, at time.Time) error
	DeleteGuest(ctx context.Context, guestID uuid.UUID) error
}

type CartRepository interface {
	GetCartBySession(ctx context.Context, sessionID uuid.UUID) (*domain.Cart, error)
	SaveCart(ctx context.Context, cart *domain.Cart) error
}

type OrderRepository interface {
	PromoteCart(ctx context.Context, cartID uuid.UUID, order *domain.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) error
	ListSessionOrders(ctx context.Context, sessionID uuid.UUID) ([]domain.Order, error)
	ListRestaurantOrders(ctx context.Context, restaurantID uuid.UUID, status string, limit, offset int) ([]domain.Order, error)
	SumActiveOrderTotals(ctx context.Context, sessionID uuid.UUID) (float64, error)
}

type VoucherRepository interface {
	GetVoucherByCode(ctx context.Context, restaurantID uuid.UUID, code string) (*domain.Voucher, error)
	IncrementVoucherUsage(ctx context.Context, voucherID uuid.UUID) error
}

type BillSplitRepository interface {
	ReplaceSessionSplits(ctx context.Context, sessionID uuid.UUID, splits []domain.BillSplit) error
	GetSplit(ctx context.Context, id uuid.UUID) (*domain.BillSplit, error)
	ListSessionSplits(ctx context.Context, sessionID uuid.UUID) ([]domain.BillSplit, error)
	UpdateSplit(ctx context.Context, split *domain.BillSplit) error
}

// External collaborators consumed by the core.

type MenuCatalog interface {
	GetItemPricing(ctx context.Context, menuItemID uuid.UUID, variationID *uuid.UUID) (*domain.ItemPricing, error)
}

type RestaurantConfig interface {
	GetBillingConfig(ctx context.Context, restaurantID uuid.UUID) (*domain.BillingConfig, error)
}

type GuestTokenCache interface {
	TokenKey(token string) string
	CacheToken(ctx context.Context, token string, guestID uuid.UUID) error
	LookupToken(ctx context.Context, token string) (uuid.UUID, error)
	DropToken(ctx context.Context, token string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type BoardStore interface {
	UpdateTable(ctx context.Context, restaurantID uuid.UUID, tableNumber, status string, amount float64) error
	RecordWaiterCall(ctx context.Context, restaurantID uuid.UUID, tableNumber string) error
}

// Narrow views other services depend on; keeps the session manager decoupled
// from the full table/guest service surfaces.

type TableRegistry interface {
	Get(ctx context.Context, tableID uuid.UUID) (*domain.Table, error)
	Occupy(ctx context.Context, tableID, sessionID uuid.UUID) error
	Release(ctx context.Context, tableID uuid.UUID) error
}

type GuestRegistry interface {
	AdmitHost(ctx context.Context, session *domain.DiningSession, name, phone string) (*domain.SessionGuest, error)
}

// Service interfaces exposed to the HTTP layer.

type TableServiceInterface interface {
	Register(ctx context.Context, table *domain.Table) error
	Get(ctx context.Context, tableID uuid.UUID) (*domain.Table, error)
	GetByQRCode(ctx context.Context, qrCode string) (*domain.Table, error)
	List(ctx context.Context, restaurantID uuid.UUID) ([]domain.Table, error)
	Occupy(ctx context.Context, tableID, sessionID uuid.UUID) error
	Release(ctx context.Context, tableID uuid.UUID) error
	MarkNeedsCleaning(ctx context.Context, tableID uuid.UUID) error
	QRImage(ctx context.Context, tableID uuid.UUID) ([]byte, error)
}

type SessionServiceInterface interface {
	Create(ctx context.Context, tableID uuid.UUID, hostName, hostPhone string) (*SessionWithHost, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error)
	GetByCode(ctx context.Context, code string) (*domain.DiningSession, error)
	Pause(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error)
	Resume(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error)
	RequestPayment(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error)
	Complete(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error)
	Cancel(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error)
	CallWaiter(ctx context.Context, sessionID uuid.UUID) error
	WaiterResponded(ctx context.Context, sessionID uuid.UUID) error
	SetTip(ctx context.Context, sessionID uuid.UUID, amount float64) (*domain.DiningSession, error)
	RecalculateTotal(ctx context.Context, sessionID uuid.UUID) (*domain.DiningSession, error)
	ListActive(ctx context.Context, restaurantID uuid.UUID) ([]domain.DiningSession, error)
	History(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]SessionSummary, error)
}

type GuestServiceInterface interface {
	AdmitHost(ctx context.Context, session *domain.DiningSession, name, phone string) (*domain.SessionGuest, error)
	AdmitGuest(ctx context.Context, sessionID uuid.UUID, name, phone string) (*domain.SessionGuest, error)
	ResolveByToken(ctx context.Context, token string) (*domain.SessionGuest, error)
	TouchActivity(ctx context.Context, guestID uuid.UUID) error
	ListGuests(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionGuest, error)
	Leave(ctx context.Context, sessionID uuid.UUID, token string) error
}

type CartServiceInterface interface {
	GetCart(ctx context.Context, sessionID uuid.UUID) (*domain.Cart, error)
	AddToCart(ctx context.Context, sessionID, guestID uuid.UUID, req AddItemRequest) (*domain.Cart, error)
	UpdateCartItem(ctx context.Context, sessionID, itemID uuid.UUID, quantity int, instructions string) (*domain.Cart, error)
	RemoveFromCart(ctx context.Context, sessionID, itemID uuid.UUID) (*domain.Cart, error)
	SubmitOrder(ctx context.Context, sessionID, guestID uuid.UUID) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ListSessionOrders(ctx context.Context, sessionID uuid.UUID) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
}

type BillingServiceInterface interface {
	PreviewDiscount(ctx context.Context, restaurantID uuid.UUID, code string, orderAmount float64) (float64, error)
	ApplyVoucher(ctx context.Context, restaurantID uuid.UUID, code string, orderID uuid.UUID) (*domain.Order, error)
	ComputeSplits(ctx context.Context, sessionID uuid.UUID, req SplitRequest) ([]domain.BillSplit, error)
	ListSplits(ctx context.Context, sessionID uuid.UUID) ([]domain.BillSplit, error)
	MarkSplitPaid(ctx context.Context, splitID uuid.UUID, method string) (*domain.BillSplit, error)
	MarkSplitFailed(ctx context.Context, splitID uuid.UUID) (*domain.BillSplit, error)
}
