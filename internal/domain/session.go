package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionActive          SessionStatus = "ACTIVE"
	SessionPaused          SessionStatus = "PAUSED"
	SessionAwaitingPayment SessionStatus = "AWAITING_PAYMENT"
	SessionCompleted       SessionStatus = "COMPLETED"
	SessionCancelled       SessionStatus = "CANCELLED"
)

const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

// DiningSession is the aggregate root for one group's visit at a table, from
// first QR scan to close-out. Guests, orders and bill splits belong to it and
// reference it by id.
type DiningSession struct {
	ID                 uuid.UUID     `json:"id"`
	RestaurantID       uuid.UUID     `json:"restaurant_id"`
	TableID            uuid.UUID     `json:"table_id"`
	SessionCode        string        `json:"session_code"`
	Status             SessionStatus `json:"status"`
	GuestCount         int           `json:"guest_count"`
	HostName           string        `json:"host_name"`
	HostPhone          string        `json:"host_phone,omitempty"`
	SpecialRequests    string        `json:"special_requests,omitempty"`
	TotalAmount        float64       `json:"total_amount"`
	TipAmount          float64       `json:"tip_amount"`
	PaymentStatus      string        `json:"payment_status"`
	WaiterCalled       bool          `json:"waiter_called"`
	WaiterCallTime     *time.Time    `json:"waiter_call_time,omitempty"`
	WaiterResponseTime *time.Time    `json:"waiter_response_time,omitempty"`
	StartedAt          time.Time     `json:"started_at"`
	EndedAt            *time.Time    `json:"ended_at,omitempty"`
	Version            int           `json:"-"`
}

func NewDiningSession(restaurantID, tableID uuid.UUID, code, hostName, hostPhone string) *DiningSession {
	return &DiningSession{
		ID:            uuid.New(),
		RestaurantID:  restaurantID,
		TableID:       tableID,
		SessionCode:   code,
		Status:        SessionActive,
		GuestCount:    1,
		HostName:      hostName,
		HostPhone:     hostPhone,
		PaymentStatus: PaymentPending,
		StartedAt:     time.Now(),
	}
}

func (s *DiningSession) IsActive() bool {
	return s.Status == SessionActive
}

func (s *DiningSession) IsPaused() bool {
	return s.Status == SessionPaused
}

func (s *DiningSession) IsAwaitingPayment() bool {
	return s.Status == SessionAwaitingPayment
}

func (s *DiningSession) IsTerminal() bool {
	return s.Status == SessionCompleted || s.Status == SessionCancelled
}

// CanAcceptOrders reports whether guest-facing cart mutations are allowed.
func (s *DiningSession) CanAcceptOrders() bool {
	return s.IsActive()
}

// Pause is a no-op unless the session is ACTIVE.
func (s *DiningSession) Pause() {
	if s.IsActive() {
		s.Status = SessionPaused
	}
}

// Resume is a no-op unless the session is PAUSED.
func (s *DiningSession) Resume() {
	if s.IsPaused() {
		s.Status = SessionActive
	}
}

// RequestPayment escalates to AWAITING_PAYMENT and freezes the running total
// as the sum of non-cancelled order totals plus tip. Escalation is
// one-directional: there is no way back to ACTIVE or PAUSED.
func (s *DiningSession) RequestPayment(activeOrderTotal float64) error {
	if !s.IsActive() && !s.IsPaused() {
		return InvalidStatef("session", s.SessionCode, string(s.Status))
	}
	s.Status = SessionAwaitingPayment
	s.RecalculateTotal(activeOrderTotal)
	return nil
}

// Complete ends the session. Reachable from any non-terminal state so staff
// can always close out a table.
func (s *DiningSession) Complete() error {
	if s.IsTerminal() {
		return InvalidStatef("session", s.SessionCode, string(s.Status))
	}
	now := time.Now()
	s.Status = SessionCompleted
	s.EndedAt = &now
	return nil
}

// Cancel ends an abandoned session.
func (s *DiningSession) Cancel() error {
	if s.IsTerminal() {
		return InvalidStatef("session", s.SessionCode, string(s.Status))
	}
	now := time.Now()
	s.Status = SessionCancelled
	s.EndedAt = &now
	return nil
}

// CallWaiter raises the waiter flag. Re-calling resets the response
// timestamp, so at most one outstanding call exists per session.
func (s *DiningSession) CallWaiter() {
	now := time.Now()
	s.WaiterCalled = true
	s.WaiterCallTime = &now
	s.WaiterResponseTime = nil
}

func (s *DiningSession) WaiterResponded() {
	if s.WaiterCalled {
		now := time.Now()
		s.WaiterResponseTime = &now
		s.WaiterCalled = false
	}
}

func (s *DiningSession) HasWaiterRequest() bool {
	return s.WaiterCalled && s.WaiterResponseTime == nil
}

// RecalculateTotal recomputes the running total from scratch. Callers supply
// the sum of non-cancelled order totals so the invariant
// TotalAmount == activeOrderTotal + TipAmount holds after every mutation.
func (s *DiningSession) RecalculateTotal(activeOrderTotal float64) {
	s.TotalAmount = Round2(activeOrderTotal + s.TipAmount)
}

// SetTip adjusts the tip while the bill is still open. Once the session is
// AWAITING_PAYMENT the frozen total backs any computed bill splits and may
// not move.
func (s *DiningSession) SetTip(amount float64, activeOrderTotal float64) error {
	if !s.IsActive() && !s.IsPaused() {
		return InvalidStatef("session", s.SessionCode, string(s.Status))
	}
	if amount < 0 {
		return Validationf("tip amount %.2f is negative", amount)
	}
	s.TipAmount = amount
	s.RecalculateTotal(activeOrderTotal)
	return nil
}

func (s *DiningSession) DurationMinutes() int64 {
	end := time.Now()
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	return int64(end.Sub(s.StartedAt).Minutes())
}
