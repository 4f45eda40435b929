package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionGuest is a participant in one dining session. The join token is a
// capability credential scoped to the session, not a user account.
type SessionGuest struct {
	ID             uuid.UUID `json:"id"`
	SessionID      uuid.UUID `json:"session_id"`
	GuestName      string    `json:"guest_name"`
	GuestPhone     string    `json:"guest_phone,omitempty"`
	IsHost         bool      `json:"is_host"`
	JoinToken      string    `json:"join_token,omitempty"`
	JoinedAt       time.Time `json:"joined_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

func NewSessionGuest(sessionID uuid.UUID, name, phone, token string, isHost bool) *SessionGuest {
	now := time.Now()
	return &SessionGuest{
		ID:             uuid.New(),
		SessionID:      sessionID,
		GuestName:      name,
		GuestPhone:     phone,
		IsHost:         isHost,
		JoinToken:      token,
		JoinedAt:       now,
		LastActivityAt: now,
	}
}

func (g *SessionGuest) TouchActivity() {
	g.LastActivityAt = time.Now()
}

func (g *SessionGuest) IsRecentlyActive() bool {
	return g.LastActivityAt.After(time.Now().Add(-30 * time.Minute))
}

func (g *SessionGuest) DisplayName() string {
	if g.IsHost {
		return g.GuestName + " (Host)"
	}
	return g.GuestName
}
