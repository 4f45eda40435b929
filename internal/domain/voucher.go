package domain

import (
	"time"

	"github.com/google/uuid"
)

type VoucherType string

const (
	VoucherPercentage  VoucherType = "PERCENTAGE"
	VoucherFixedAmount VoucherType = "FIXED_AMOUNT"
)

type VoucherStatus string

const (
	VoucherActive   VoucherStatus = "ACTIVE"
	VoucherInactive VoucherStatus = "INACTIVE"
	VoucherExpired  VoucherStatus = "EXPIRED"
)

// Voucher is a restaurant-issued discount code. Discount calculation is a
// pure preview; usage only increments at actual redemption.
type Voucher struct {
	ID                    uuid.UUID     `json:"id"`
	RestaurantID          uuid.UUID     `json:"restaurant_id"`
	Code                  string        `json:"code"`
	Description           string        `json:"description,omitempty"`
	Type                  VoucherType   `json:"type"`
	Status                VoucherStatus `json:"status"`
	DiscountValue         float64       `json:"discount_value"`
	MinimumOrderAmount    *float64      `json:"minimum_order_amount,omitempty"`
	MaximumDiscountAmount *float64      `json:"maximum_discount_amount,omitempty"`
	UsageLimit            *int          `json:"usage_limit,omitempty"`
	UsedCount             int           `json:"used_count"`
	ValidFrom             time.Time     `json:"valid_from"`
	ExpiresAt             *time.Time    `json:"expires_at,omitempty"`
}

func (v *Voucher) IsExpired() bool {
	return v.ExpiresAt != nil && time.Now().After(*v.ExpiresAt)
}

func (v *Voucher) IsUsageLimitReached() bool {
	return v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit
}

func (v *Voucher) IsActive() bool {
	return v.Status == VoucherActive && !v.IsExpired() && !v.IsUsageLimitReached()
}

func (v *Voucher) IsValidForOrder(orderAmount float64) bool {
	if !v.IsActive() {
		return false
	}
	if v.MinimumOrderAmount != nil && orderAmount < *v.MinimumOrderAmount {
		return false
	}
	return true
}

// CalculateDiscount returns the discount for an order amount, 0 when the
// voucher does not apply. The result is capped at MaximumDiscountAmount when
// set and can never exceed the order amount. No side effects.
func (v *Voucher) CalculateDiscount(orderAmount float64) float64 {
	if !v.IsValidForOrder(orderAmount) {
		return 0
	}

	var discount float64
	switch v.Type {
	case VoucherPercentage:
		discount = orderAmount * v.DiscountValue / 100
	case VoucherFixedAmount:
		discount = v.DiscountValue
	}

	if v.MaximumDiscountAmount != nil && discount > *v.MaximumDiscountAmount {
		discount = *v.MaximumDiscountAmount
	}
	if discount > orderAmount {
		discount = orderAmount
	}
	return Round2(discount)
}

// IncrementUsage records a redemption. Call only after the discount was
// actually applied to an order.
func (v *Voucher) IncrementUsage() {
	v.UsedCount++
}
