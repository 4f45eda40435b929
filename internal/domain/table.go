package domain

import (
	"time"

	"github.com/google/uuid"
)

type TableStatus string

const (
	TableAvailable     TableStatus = "AVAILABLE"
	TableOccupied      TableStatus = "OCCUPIED"
	TableReserved      TableStatus = "RESERVED"
	TableNeedsCleaning TableStatus = "NEEDS_CLEANING"
	TableOutOfService  TableStatus = "OUT_OF_SERVICE"
)

// Table is a physical restaurant table. It is the long-lived anchor a dining
// session occupies; the session is referenced by id only, never embedded.
// Invariant: Status == OCCUPIED exactly when CurrentSessionID is set.
type Table struct {
	ID                  uuid.UUID   `json:"id"`
	RestaurantID        uuid.UUID   `json:"restaurant_id"`
	TableNumber         string      `json:"table_number"`
	Capacity            int         `json:"capacity"`
	LocationDescription string      `json:"location_description,omitempty"`
	QRCode              string      `json:"qr_code"`
	Status              TableStatus `json:"status"`
	CurrentSessionID    *uuid.UUID  `json:"current_session_id,omitempty"`
	Version             int         `json:"-"`
	LastCleanedAt       *time.Time  `json:"last_cleaned_at,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
}

func (t *Table) IsAvailable() bool {
	return t.Status == TableAvailable
}

func (t *Table) IsOccupied() bool {
	return t.Status == TableOccupied
}

// Occupy claims the table for a session. The repository enforces the same
// guard with a conditional update; this check catches stale in-memory copies.
func (t *Table) Occupy(sessionID uuid.UUID) error {
	if !t.IsAvailable() {
		return Conflictf("table", t.TableNumber, "not available")
	}
	t.Status = TableOccupied
	t.CurrentSessionID = &sessionID
	return nil
}

func (t *Table) Release() {
	now := time.Now()
	t.Status = TableAvailable
	t.CurrentSessionID = nil
	t.LastCleanedAt = &now
}

func (t *Table) MarkNeedsCleaning() {
	t.Status = TableNeedsCleaning
	t.CurrentSessionID = nil
}
