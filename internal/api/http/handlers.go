package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"qrdine/internal/domain"
	"qrdine/internal/service"
)

const guestTokenHeader = "X-Guest-Token"

type Handler struct {
	Tables   service.TableServiceInterface
	Sessions service.SessionServiceInterface
	Guests   service.GuestServiceInterface
	Carts    service.CartServiceInterface
	Billing  service.BillingServiceInterface
}

func NewHandler(tables service.TableServiceInterface, sessions service.SessionServiceInterface,
	guests service.GuestServiceInterface, carts service.CartServiceInterface,
	billing service.BillingServiceInterface) *Handler {
	return &Handler{
		Tables:   tables,
		Sessions: sessions,
		Guests:   guests,
		Carts:    carts,
		Billing:  billing,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.health).Methods("GET")

	// Guest flow: scan, join, order.
	r.HandleFunc("/api/scan/{qrCode}", h.scanTable).Methods("GET")
	r.HandleFunc("/api/tables/{tableId}/sessions", h.startSession).Methods("POST")
	r.HandleFunc("/api/sessions/code/{code}", h.getSessionByCode).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}", h.getSession).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/guests", h.joinSession).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/guests", h.listGuests).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/leave", h.leaveSession).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/cart/items/{itemId}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/sessions/{sessionId}/cart/items/{itemId}", h.removeCartItem).Methods("DELETE")
	r.HandleFunc("/api/sessions/{sessionId}/orders", h.submitOrder).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/orders", h.listSessionOrders).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/waiter", h.callWaiter).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/tip", h.setTip).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/payment-request", h.requestPayment).Methods("POST")
	r.HandleFunc("/api/orders/{orderId}", h.getOrder).Methods("GET")

	// Billing: vouchers and bill splits.
	r.HandleFunc("/api/restaurants/{restaurantId}/vouchers/preview", h.previewVoucher).Methods("POST")
	r.HandleFunc("/api/orders/{orderId}/voucher", h.applyVoucher).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/splits", h.computeSplits).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/splits", h.listSplits).Methods("GET")
	r.HandleFunc("/api/splits/{splitId}/pay", h.paySplit).Methods("POST")
	r.HandleFunc("/api/splits/{splitId}/fail", h.failSplit).Methods("POST")

	// Staff surface.
	r.HandleFunc("/api/restaurants/{restaurantId}/tables", h.registerTable).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/tables", h.listTables).Methods("GET")
	r.HandleFunc("/api/tables/{tableId}", h.getTable).Methods("GET")
	r.HandleFunc("/api/tables/{tableId}/qr", h.tableQRImage).Methods("GET")
	r.HandleFunc("/api/tables/{tableId}/needs-cleaning", h.markNeedsCleaning).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/sessions", h.listActiveSessions).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/sessions/history", h.sessionHistory).Methods("GET")
	r.HandleFunc("/api/sessions/{sessionId}/pause", h.pauseSession).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/resume", h.resumeSession).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/complete", h.completeSession).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/cancel", h.cancelSession).Methods("POST")
	r.HandleFunc("/api/sessions/{sessionId}/waiter-response", h.waiterResponded).Methods("POST")
	r.HandleFunc("/api/orders/{orderId}/status", h.updateOrderStatus).Methods("PUT")
	r.HandleFunc("/api/orders/{orderId}/cancel", h.cancelOrder).Methods("POST")
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- tables ---

func (h *Handler) registerTable(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "restaurantId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var table domain.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	table.RestaurantID = restaurantID

	if err := h.Tables.Register(r.Context(), &table); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, table)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "restaurantId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tables, err := h.Tables.List(r.Context(), restaurantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *Handler) getTable(w http.ResponseWriter, r *http.Request) {
	tableID, err := pathUUID(r, "tableId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	table, err := h.Tables.Get(r.Context(), tableID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *Handler) tableQRImage(w http.ResponseWriter, r *http.Request) {
	tableID, err := pathUUID(r, "tableId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	png, err := h.Tables.QRImage(r.Context(), tableID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) markNeedsCleaning(w http.ResponseWriter, r *http.Request) {
	tableID, err := pathUUID(r, "tableId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Tables.MarkNeedsCleaning(r.Context(), tableID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// scanTable is the QR entry point: it returns the table and, when a session
// is already running on it, the session so the guest can join instead of
// starting a new one.
func (h *Handler) scanTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.Tables.GetByQRCode(r.Context(), mux.Vars(r)["qrCode"])
	if err != nil {
		writeError(w, err)
		return
	}

	response := map[string]interface{}{"table": table}
	if table.CurrentSessionID != nil {
		if session, err := h.Sessions.Get(r.Context(), *table.CurrentSessionID); err == nil {
			response["session"] = session
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// --- sessions ---

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	tableID, err := pathUUID(r, "tableId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload struct {
		HostName  string `json:"host_name"`
		HostPhone string `json:"host_phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Sessions.Create(r.Context(), tableID, payload.HostName, payload.HostPhone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session, err := h.Sessions.Get(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) getSessionByCode(w http.ResponseWriter, r *http.Request) {
	session, err := h.Sessions.GetByCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) sessionTransition(w http.ResponseWriter, r *http.Request,
	transition func(r *http.Request, sessionID uuid.UUID) (*domain.DiningSession, error)) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session, err := transition(r, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) pauseSession(w http.ResponseWriter, r *http.Request) {
	h.sessionTransition(w, r, func(r *http.Request, id uuid.UUID) (*domain.DiningSession, error) {
		return h.Sessions.Pause(r.Context(), id)
	})
}

func (h *Handler) resumeSession(w http.ResponseWriter, r *http.Request) {
	h.sessionTransition(w, r, func(r *http.Request, id uuid.UUID) (*domain.DiningSession, error) {
		return h.Sessions.Resume(r.Context(), id)
	})
}

func (h *Handler) requestPayment(w http.ResponseWriter, r *http.Request) {
	h.sessionTransition(w, r, func(r *http.Request, id uuid.UUID) (*domain.DiningSession, error) {
		return h.Sessions.RequestPayment(r.Context(), id)
	})
}

func (h *Handler) completeSession(w http.ResponseWriter, r *http.Request) {
	h.sessionTransition(w, r, func(r *http.Request, id uuid.UUID) (*domain.DiningSession, error) {
		return h.Sessions.Complete(r.Context(), id)
	})
}

func (h *Handler) cancelSession(w http.ResponseWriter, r *http.Request) {
	h.sessionTransition(w, r, func(r *http.Request, id uuid.UUID) (*domain.DiningSession, error) {
		return h.Sessions.Cancel(r.Context(), id)
	})
}

func (h *Handler) callWaiter(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Sessions.CallWaiter(r.Context(), sessionID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) waiterResponded(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Sessions.WaiterResponded(r.Context(), sessionID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setTip(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.sessionTransition(w, r, func(r *http.Request, id uuid.UUID) (*domain.DiningSession, error) {
		return h.Sessions.SetTip(r.Context(), id, payload.Amount)
	})
}

func (h *Handler) listActiveSessions(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "restaurantId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sessions, err := h.Sessions.ListActive(r.Context(), restaurantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *Handler) sessionHistory(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "restaurantId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	summaries, err := h.Sessions.History(r.Context(), restaurantID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// --- guests ---

func (h *Handler) joinSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload struct {
		GuestName  string `json:"guest_name"`
		GuestPhone string `json:"guest_phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	guest, err := h.Guests.AdmitGuest(r.Context(), sessionID, payload.GuestName, payload.GuestPhone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, guest)
}

func (h *Handler) listGuests(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	guests, err := h.Guests.ListGuests(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	// Join tokens are capabilities; never echo other guests' tokens.
	for i := range guests {
		guests[i].JoinToken = ""
	}
	writeJSON(w, http.StatusOK, guests)
}

func (h *Handler) leaveSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Guests.Leave(r.Context(), sessionID, r.Header.Get(guestTokenHeader)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// guestFromRequest authorizes a guest-scoped action from the token header and
// stamps the guest's activity.
func (h *Handler) guestFromRequest(r *http.Request, sessionID uuid.UUID) (*domain.SessionGuest, error) {
	guest, err := h.Guests.ResolveByToken(r.Context(), r.Header.Get(guestTokenHeader))
	if err != nil {
		return nil, err
	}
	if guest.SessionID != sessionID {
		return nil, domain.NotFoundf("guest", guest.ID)
	}
	if err := h.Guests.TouchActivity(r.Context(), guest.ID); err != nil {
		return nil, err
	}
	return guest, nil
}

// --- cart and orders ---

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cart, err := h.Carts.GetCart(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	guest, err := h.guestFromRequest(r, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	var req service.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cart, err := h.Carts.AddToCart(r.Context(), sessionID, guest.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cart)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	itemID, err := pathUUID(r, "itemId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.guestFromRequest(r, sessionID); err != nil {
		writeError(w, err)
		return
	}

	var payload struct {
		Quantity            int    `json:"quantity"`
		SpecialInstructions string `json:"special_instructions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cart, err := h.Carts.UpdateCartItem(r.Context(), sessionID, itemID, payload.Quantity, payload.SpecialInstructions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	itemID, err := pathUUID(r, "itemId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.guestFromRequest(r, sessionID); err != nil {
		writeError(w, err)
		return
	}

	cart, err := h.Carts.RemoveFromCart(r.Context(), sessionID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	guest, err := h.guestFromRequest(r, sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.Carts.SubmitOrder(r.Context(), sessionID, guest.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listSessionOrders(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	orders, err := h.Carts.ListSessionOrders(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Carts.GetOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Carts.UpdateOrderStatus(r.Context(), orderID, domain.OrderStatus(payload.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Carts.CancelOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// --- billing ---

func (h *Handler) previewVoucher(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := pathUUID(r, "restaurantId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload struct {
		Code        string  `json:"code"`
		OrderAmount float64 `json:"order_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	discount, err := h.Billing.PreviewDiscount(r.Context(), restaurantID, payload.Code, payload.OrderAmount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"discount": discount})
}

func (h *Handler) applyVoucher(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "orderId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload struct {
		RestaurantID uuid.UUID `json:"restaurant_id"`
		Code         string    `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Billing.ApplyVoucher(r.Context(), payload.RestaurantID, payload.Code, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) computeSplits(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req service.SplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	splits, err := h.Billing.ComputeSplits(r.Context(), sessionID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, splits)
}

func (h *Handler) listSplits(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathUUID(r, "sessionId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	splits, err := h.Billing.ListSplits(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, splits)
}

func (h *Handler) paySplit(w http.ResponseWriter, r *http.Request) {
	splitID, err := pathUUID(r, "splitId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var payload struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	split, err := h.Billing.MarkSplitPaid(r.Context(), splitID, payload.PaymentMethod)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, split)
}

func (h *Handler) failSplit(w http.ResponseWriter, r *http.Request) {
	splitID, err := pathUUID(r, "splitId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	split, err := h.Billing.MarkSplitFailed(r.Context(), splitID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, split)
}

// --- helpers ---

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

func queryInt(r *http.Request, name string, fallback int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the domain error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrCapacityExceeded):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrItemUnavailable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
