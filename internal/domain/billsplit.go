package domain

import (
	"time"

	"github.com/google/uuid"
)

type SplitType string

const (
	SplitEqual      SplitType = "EQUAL"
	SplitPercentage SplitType = "PERCENTAGE"
	SplitCustom     SplitType = "CUSTOM"
	SplitItemBased  SplitType = "ITEM_BASED"
)

type SplitPaymentStatus string

const (
	SplitPending       SplitPaymentStatus = "PENDING"
	SplitPaid          SplitPaymentStatus = "PAID"
	SplitPartiallyPaid SplitPaymentStatus = "PARTIALLY_PAID"
	SplitFailed        SplitPaymentStatus = "FAILED"
)

// BillSplit is one guest's share of a session's bill. Each split settles
// independently; the session is only paid once every split is.
type BillSplit struct {
	ID            uuid.UUID          `json:"id"`
	SessionID     uuid.UUID          `json:"session_id"`
	GuestID       uuid.UUID          `json:"guest_id"`
	Type          SplitType          `json:"split_type"`
	Amount        float64            `json:"amount"`
	Percentage    *float64           `json:"percentage,omitempty"`
	PaymentStatus SplitPaymentStatus `json:"payment_status"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

func NewBillSplit(sessionID, guestID uuid.UUID, splitType SplitType, amount float64) *BillSplit {
	return &BillSplit{
		ID:            uuid.New(),
		SessionID:     sessionID,
		GuestID:       guestID,
		Type:          splitType,
		Amount:        Round2(amount),
		PaymentStatus: SplitPending,
		CreatedAt:     time.Now(),
	}
}

func (b *BillSplit) IsPaid() bool {
	return b.PaymentStatus == SplitPaid
}

func (b *BillSplit) MarkPaid(method string) {
	now := time.Now()
	b.PaymentStatus = SplitPaid
	b.PaymentMethod = method
	b.PaidAt = &now
}

func (b *BillSplit) MarkPartiallyPaid(method string) {
	now := time.Now()
	b.PaymentStatus = SplitPartiallyPaid
	b.PaymentMethod = method
	b.PaidAt = &now
}

func (b *BillSplit) MarkFailed() {
	b.PaymentStatus = SplitFailed
	b.PaidAt = nil
}
