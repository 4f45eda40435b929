package tests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "qrdine/internal/api/http"
	"qrdine/internal/domain"
	"qrdine/internal/mocks"
	"qrdine/internal/service"
)

type handlerFixture struct {
	tables   *mocks.TableServiceInterface
	sessions *mocks.SessionServiceInterface
	guests   *mocks.GuestServiceInterface
	carts    *mocks.CartServiceInterface
	billing  *mocks.BillingServiceInterface
	router   *mux.Router
}

func setupTestRouter(t *testing.T) *handlerFixture {
	f := &handlerFixture{
		tables:   mocks.NewTableServiceInterface(t),
		sessions: mocks.NewSessionServiceInterface(t),
		guests:   mocks.NewGuestServiceInterface(t),
		carts:    mocks.NewCartServiceInterface(t),
		billing:  mocks.NewBillingServiceInterface(t),
	}
	handler := httpapi.NewHandler(f.tables, f.sessions, f.guests, f.carts, f.billing)
	f.router = mux.NewRouter()
	handler.RegisterRoutes(f.router)
	return f
}

func (f *handlerFixture) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_Health(t *testing.T) {
	f := setupTestRouter(t)

	recorder := f.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ok"`)
}

func TestHandler_ScanTable(t *testing.T) {
	t.Run("free_table_returns_table_only", func(t *testing.T) {
		f := setupTestRouter(t)
		f.tables.On("GetByQRCode", mock.Anything, "TBL-ABCDE12345").
			Return(&domain.Table{ID: uuid.New(), TableNumber: "T1", Status: domain.TableAvailable}, nil).Once()

		recorder := f.do(http.MethodGet, "/api/scan/TBL-ABCDE12345", "", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"table"`)
		assert.NotContains(t, recorder.Body.String(), `"session"`)
	})

	t.Run("occupied_table_includes_running_session", func(t *testing.T) {
		f := setupTestRouter(t)
		sessionID := uuid.New()
		f.tables.On("GetByQRCode", mock.Anything, "TBL-ABCDE12345").
			Return(&domain.Table{ID: uuid.New(), TableNumber: "T1", Status: domain.TableOccupied, CurrentSessionID: &sessionID}, nil).Once()
		f.sessions.On("Get", mock.Anything, sessionID).
			Return(&domain.DiningSession{ID: sessionID, SessionCode: "AB12CD", Status: domain.SessionActive}, nil).Once()

		recorder := f.do(http.MethodGet, "/api/scan/TBL-ABCDE12345", "", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"AB12CD"`)
	})

	t.Run("unknown_code_is_404", func(t *testing.T) {
		f := setupTestRouter(t)
		f.tables.On("GetByQRCode", mock.Anything, "TBL-UNKNOWN").
			Return(nil, domain.NotFoundf("table", "TBL-UNKNOWN")).Once()

		recorder := f.do(http.MethodGet, "/api/scan/TBL-UNKNOWN", "", nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandler_StartSession(t *testing.T) {
	tableID := uuid.New()

	tests := []struct {
		name           string
		payload        string
		prepareMocks   func(f *handlerFixture)
		expectedStatus int
	}{
		{
			name:    "created",
			payload: `{"host_name":"Alice"}`,
			prepareMocks: func(f *handlerFixture) {
				f.sessions.On("Create", mock.Anything, tableID, "Alice", "").
					Return(&service.SessionWithHost{
						Session: &domain.DiningSession{ID: uuid.New(), SessionCode: "AB12CD", Status: domain.SessionActive},
						Host:    &domain.SessionGuest{GuestName: "Alice", IsHost: true},
					}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "table_taken_is_conflict",
			payload: `{"host_name":"Alice"}`,
			prepareMocks: func(f *handlerFixture) {
				f.sessions.On("Create", mock.Anything, tableID, "Alice", "").
					Return(nil, domain.Conflictf("table", "T1", "already seated")).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:    "missing_host_name_is_bad_request",
			payload: `{}`,
			prepareMocks: func(f *handlerFixture) {
				f.sessions.On("Create", mock.Anything, tableID, "", "").
					Return(nil, domain.Validationf("host name is required")).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed_body",
			payload:        `{"host_name":`,
			prepareMocks:   func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := setupTestRouter(t)
			testCase.prepareMocks(f)

			recorder := f.do(http.MethodPost, "/api/tables/"+tableID.String()+"/sessions", testCase.payload, nil)

			assert.Equal(t, testCase.expectedStatus, recorder.Code)
		})
	}
}

func TestHandler_JoinSession(t *testing.T) {
	sessionID := uuid.New()

	t.Run("full_table_is_conflict", func(t *testing.T) {
		f := setupTestRouter(t)
		f.guests.On("AdmitGuest", mock.Anything, sessionID, "Eve", "").
			Return(nil, domain.ErrCapacityExceeded).Once()

		recorder := f.do(http.MethodPost, "/api/sessions/"+sessionID.String()+"/guests", `{"guest_name":"Eve"}`, nil)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("join_token_returned_once_on_join", func(t *testing.T) {
		f := setupTestRouter(t)
		f.guests.On("AdmitGuest", mock.Anything, sessionID, "Bob", "").
			Return(&domain.SessionGuest{ID: uuid.New(), SessionID: sessionID, GuestName: "Bob", JoinToken: "a1b2c3"}, nil).Once()

		recorder := f.do(http.MethodPost, "/api/sessions/"+sessionID.String()+"/guests", `{"guest_name":"Bob"}`, nil)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "a1b2c3")
	})

	t.Run("listing_never_echoes_tokens", func(t *testing.T) {
		f := setupTestRouter(t)
		f.guests.On("ListGuests", mock.Anything, sessionID).
			Return([]domain.SessionGuest{
				{ID: uuid.New(), SessionID: sessionID, GuestName: "Alice", IsHost: true, JoinToken: "secret-a"},
				{ID: uuid.New(), SessionID: sessionID, GuestName: "Bob", JoinToken: "secret-b"},
			}, nil).Once()

		recorder := f.do(http.MethodGet, "/api/sessions/"+sessionID.String()+"/guests", "", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "secret-a")
		assert.NotContains(t, recorder.Body.String(), "secret-b")
	})
}

func TestHandler_AddCartItem(t *testing.T) {
	sessionID := uuid.New()
	guestID := uuid.New()
	menuItemID := uuid.New()
	token := map[string]string{"X-Guest-Token": "tok-123"}

	t.Run("guest_token_authorizes_the_add", func(t *testing.T) {
		f := setupTestRouter(t)
		f.guests.On("ResolveByToken", mock.Anything, "tok-123").
			Return(&domain.SessionGuest{ID: guestID, SessionID: sessionID, GuestName: "Bob"}, nil).Once()
		f.guests.On("TouchActivity", mock.Anything, guestID).Return(nil).Once()
		f.carts.On("AddToCart", mock.Anything, sessionID, guestID, service.AddItemRequest{MenuItemID: menuItemID, Quantity: 2}).
			Return(&domain.Cart{ID: uuid.New(), SessionID: sessionID, Subtotal: 24.00}, nil).Once()

		recorder := f.do(http.MethodPost, "/api/sessions/"+sessionID.String()+"/cart/items",
			`{"menu_item_id":"`+menuItemID.String()+`","quantity":2}`, token)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "24")
	})

	t.Run("token_for_another_session_is_404", func(t *testing.T) {
		f := setupTestRouter(t)
		f.guests.On("ResolveByToken", mock.Anything, "tok-123").
			Return(&domain.SessionGuest{ID: guestID, SessionID: uuid.New(), GuestName: "Bob"}, nil).Once()

		recorder := f.do(http.MethodPost, "/api/sessions/"+sessionID.String()+"/cart/items",
			`{"menu_item_id":"`+menuItemID.String()+`","quantity":2}`, token)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("missing_token_is_404", func(t *testing.T) {
		f := setupTestRouter(t)
		f.guests.On("ResolveByToken", mock.Anything, "").
			Return(nil, domain.NotFoundf("guest token", "")).Once()

		recorder := f.do(http.MethodPost, "/api/sessions/"+sessionID.String()+"/cart/items",
			`{"menu_item_id":"`+menuItemID.String()+`","quantity":2}`, nil)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("unavailable_item_is_bad_request", func(t *testing.T) {
		f := setupTestRouter(t)
		f.guests.On("ResolveByToken", mock.Anything, "tok-123").
			Return(&domain.SessionGuest{ID: guestID, SessionID: sessionID, GuestName: "Bob"}, nil).Once()
		f.guests.On("TouchActivity", mock.Anything, guestID).Return(nil).Once()
		f.carts.On("AddToCart", mock.Anything, sessionID, guestID, mock.Anything).
			Return(nil, domain.ErrItemUnavailable).Once()

		recorder := f.do(http.MethodPost, "/api/sessions/"+sessionID.String()+"/cart/items",
			`{"menu_item_id":"`+menuItemID.String()+`","quantity":2}`, token)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_SubmitOrder(t *testing.T) {
	sessionID := uuid.New()
	guestID := uuid.New()
	token := map[string]string{"X-Guest-Token": "tok-123"}

	t.Run("empty_cart_is_bad_request", func(t *testing.T) {
		f := setupTestRouter(t)
		f.guests.On("ResolveByToken", mock.Anything, "tok-123").
			Return(&domain.SessionGuest{ID: guestID, SessionID: sessionID}, nil).Once()
		f.guests.On("TouchActivity", mock.Anything, guestID).Return(nil).Once()
		f.carts.On("SubmitOrder", mock.Anything, sessionID, guestID).
			Return(nil, domain.ErrEmptyCart).Once()

		recorder := f.do(http.MethodPost, "/api/sessions/"+sessionID.String()+"/orders", `{}`, token)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("created", func(t *testing.T) {
		f := setupTestRouter(t)
		f.guests.On("ResolveByToken", mock.Anything, "tok-123").
			Return(&domain.SessionGuest{ID: guestID, SessionID: sessionID}, nil).Once()
		f.guests.On("TouchActivity", mock.Anything, guestID).Return(nil).Once()
		f.carts.On("SubmitOrder", mock.Anything, sessionID, guestID).
			Return(&domain.Order{ID: uuid.New(), OrderNumber: "ORD-AAAA1111", Status: domain.OrderConfirmed}, nil).Once()

		recorder := f.do(http.MethodPost, "/api/sessions/"+sessionID.String()+"/orders", `{}`, token)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "ORD-AAAA1111")
	})
}

func TestHandler_UpdateOrderStatus(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name           string
		payload        string
		prepareMocks   func(f *handlerFixture)
		expectedStatus int
	}{
		{
			name:    "preparing",
			payload: `{"status":"PREPARING"}`,
			prepareMocks: func(f *handlerFixture) {
				f.carts.On("UpdateOrderStatus", mock.Anything, orderID, domain.OrderPreparing).
					Return(&domain.Order{ID: orderID, Status: domain.OrderPreparing}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "unknown_status",
			payload: `{"status":"BOGUS"}`,
			prepareMocks: func(f *handlerFixture) {
				f.carts.On("UpdateOrderStatus", mock.Anything, orderID, domain.OrderStatus("BOGUS")).
					Return(nil, domain.Validationf("unsupported order status")).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "missing_order",
			payload: `{"status":"PREPARING"}`,
			prepareMocks: func(f *handlerFixture) {
				f.carts.On("UpdateOrderStatus", mock.Anything, orderID, domain.OrderPreparing).
					Return(nil, domain.NotFoundf("order", orderID)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := setupTestRouter(t)
			testCase.prepareMocks(f)

			recorder := f.do(http.MethodPut, "/api/orders/"+orderID.String()+"/status", testCase.payload, nil)

			assert.Equal(t, testCase.expectedStatus, recorder.Code)
		})
	}
}

func TestHandler_ComputeSplits(t *testing.T) {
	sessionID := uuid.New()

	t.Run("equal_split_created", func(t *testing.T) {
		f := setupTestRouter(t)
		f.billing.On("ComputeSplits", mock.Anything, sessionID, service.SplitRequest{Type: domain.SplitEqual}).
			Return([]domain.BillSplit{
				{ID: uuid.New(), SessionID: sessionID, Type: domain.SplitEqual, Amount: 33.34},
				{ID: uuid.New(), SessionID: sessionID, Type: domain.SplitEqual, Amount: 33.33},
			}, nil).Once()

		recorder := f.do(http.MethodPost, "/api/sessions/"+sessionID.String()+"/splits", `{"split_type":"EQUAL"}`, nil)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "33.34")
	})

	t.Run("session_not_frozen_is_conflict", func(t *testing.T) {
		f := setupTestRouter(t)
		f.billing.On("ComputeSplits", mock.Anything, sessionID, mock.Anything).
			Return(nil, domain.InvalidStatef("session", "AB12CD", "ACTIVE")).Once()

		recorder := f.do(http.MethodPost, "/api/sessions/"+sessionID.String()+"/splits", `{"split_type":"EQUAL"}`, nil)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestHandler_PaySplit(t *testing.T) {
	splitID := uuid.New()

	f := setupTestRouter(t)
	f.billing.On("MarkSplitPaid", mock.Anything, splitID, "CARD").
		Return(&domain.BillSplit{ID: splitID, PaymentStatus: domain.SplitPaid, PaymentMethod: "CARD"}, nil).Once()

	recorder := f.do(http.MethodPost, "/api/splits/"+splitID.String()+"/pay", `{"payment_method":"CARD"}`, nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"PAID"`)
}

func TestHandler_BadPathIDs(t *testing.T) {
	f := setupTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/sessions/not-a-uuid", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/orders/not-a-uuid", "", nil).Code)
}
