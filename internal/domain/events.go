package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event types published to the lifecycle stream.
const (
	EventSessionStarted     = "session_started"
	EventSessionClosed      = "session_closed"
	EventOrderSubmitted     = "order_submitted"
	EventOrderStatusChanged = "order_status_changed"
	EventWaiterCalled       = "waiter_called"
)

// Event is the JSON payload written to Kafka for every session/order
// lifecycle change; the live floor board consumer reads it back.
type Event struct {
	Type         string    `json:"type"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	SessionID    uuid.UUID `json:"session_id,omitempty"`
	OrderID      uuid.UUID `json:"order_id,omitempty"`
	TableNumber  string    `json:"table_number,omitempty"`
	Status       string    `json:"status,omitempty"`
	Amount       float64   `json:"amount,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
