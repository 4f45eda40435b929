package service

import (
	"context"
	"log"
	"math"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

// SplitRequest describes how a session's frozen bill should be divided.
// Percentages and Custom are keyed by guest id and only read for their
// respective split types.
type SplitRequest struct {
	Type        domain.SplitType      `json:"split_type"`
	Percentages map[uuid.UUID]float64 `json:"percentages,omitempty"`
	Custom      map[uuid.UUID]float64 `json:"custom_amounts,omitempty"`
}

// BillingService handles voucher discounts and bill splitting.
type BillingService struct {
	vouchers VoucherRepository
	orders   OrderRepository
	sessions SessionRepository
	guests   GuestRepository
	splits   BillSplitRepository
	config   RestaurantConfig
}

func NewBillingService(vouchers VoucherRepository, orders OrderRepository, sessions SessionRepository, guests GuestRepository, splits BillSplitRepository, config RestaurantConfig) *BillingService {
	return &BillingService{
		vouchers: vouchers,
		orders:   orders,
		sessions: sessions,
		guests:   guests,
		splits:   splits,
		config:   config,
	}
}

// PreviewDiscount computes what a voucher would take off an order amount
// without touching usage counts. An inapplicable voucher previews as 0.
func (s *BillingService) PreviewDiscount(ctx context.Context, restaurantID uuid.UUID, code string, orderAmount float64) (float64, error) {
	voucher, err := s.vouchers.GetVoucherByCode(ctx, restaurantID, code)
	if err != nil {
		return 0, err
	}
	return voucher.CalculateDiscount(orderAmount), nil
}

// ApplyVoucher redeems a voucher against an order: the usage count increments
// first, and only then does the discount land on the order. A voucher at its
// usage limit never discounts anything.
func (s *BillingService) ApplyVoucher(ctx context.Context, restaurantID uuid.UUID, code string, orderID uuid.UUID) (*domain.Order, error) {
	voucher, err := s.vouchers.GetVoucherByCode(ctx, restaurantID, code)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanBeCancelled() {
		return nil, domain.InvalidStatef("order", order.OrderNumber, string(order.Status))
	}
	if !voucher.IsValidForOrder(order.Subtotal) {
		return nil, domain.Validationf("voucher %s is not applicable to this order", code)
	}

	cfg, err := s.config.GetBillingConfig(ctx, order.RestaurantID)
	if err != nil {
		return nil, err
	}

	if err := s.vouchers.IncrementVoucherUsage(ctx, voucher.ID); err != nil {
		return nil, err
	}

	order.DiscountAmount = voucher.CalculateDiscount(order.Subtotal)
	order.RecalculateTotals(*cfg)
	if err := s.orders.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ComputeSplits divides the session's frozen bill between its guests. The
// session must be AWAITING_PAYMENT; recomputing replaces any earlier split
// set wholesale. Whatever the split type, the shares always sum exactly to
// the session total.
func (s *BillingService) ComputeSplits(ctx context.Context, sessionID uuid.UUID, req SplitRequest) ([]domain.BillSplit, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsAwaitingPayment() {
		return nil, domain.InvalidStatef("session", session.SessionCode, string(session.Status))
	}

	guests, err := s.guests.ListSessionGuests(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(guests) == 0 {
		return nil, domain.Validationf("session %s has no guests to split between", session.SessionCode)
	}

	var splits []domain.BillSplit
	switch req.Type {
	case domain.SplitEqual:
		splits = s.splitEqual(session, guests)
	case domain.SplitPercentage:
		splits, err = s.splitPercentage(session, guests, req.Percentages)
	case domain.SplitCustom:
		splits, err = s.splitCustom(session, guests, req.Custom)
	case domain.SplitItemBased:
		splits, err = s.splitItemBased(ctx, session, guests)
	default:
		return nil, domain.Validationf("unsupported split type %q", req.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := s.splits.ReplaceSessionSplits(ctx, sessionID, splits); err != nil {
		return nil, err
	}
	return splits, nil
}

// splitEqual gives every guest total/n; the rounding remainder lands on the
// first guest so the shares still sum to the total.
func (s *BillingService) splitEqual(session *domain.DiningSession, guests []domain.SessionGuest) []domain.BillSplit {
	n := len(guests)
	share := domain.Round2(session.TotalAmount / float64(n))
	remainder := domain.Round2(session.TotalAmount - share*float64(n))

	splits := make([]domain.BillSplit, 0, n)
	for i, guest := range guests {
		amount := share
		if i == 0 {
			amount = domain.Round2(share + remainder)
		}
		splits = append(splits, *domain.NewBillSplit(session.ID, guest.ID, domain.SplitEqual, amount))
	}
	return splits
}

func (s *BillingService) splitPercentage(session *domain.DiningSession, guests []domain.SessionGuest, percentages map[uuid.UUID]float64) ([]domain.BillSplit, error) {
	if len(percentages) == 0 {
		return nil, domain.Validationf("percentage split requires per-guest percentages")
	}
	sum := 0.0
	for _, p := range percentages {
		if p < 0 {
			return nil, domain.Validationf("percentage %.2f is negative", p)
		}
		sum += p
	}
	if math.Abs(sum-100) > 0.01 {
		return nil, domain.Validationf("percentages sum to %.2f, expected 100", sum)
	}

	splits := make([]domain.BillSplit, 0, len(percentages))
	for _, guest := range guests {
		pct, ok := percentages[guest.ID]
		if !ok {
			continue
		}
		p := pct
		split := domain.NewBillSplit(session.ID, guest.ID, domain.SplitPercentage, session.TotalAmount*p/100)
		split.Percentage = &p
		splits = append(splits, *split)
	}
	if len(splits) != len(percentages) {
		return nil, domain.Validationf("percentages reference guests outside the session")
	}
	return s.settleRemainder(session, splits), nil
}

func (s *BillingService) splitCustom(session *domain.DiningSession, guests []domain.SessionGuest, amounts map[uuid.UUID]float64) ([]domain.BillSplit, error) {
	if len(amounts) == 0 {
		return nil, domain.Validationf("custom split requires per-guest amounts")
	}
	sum := 0.0
	for _, a := range amounts {
		if a < 0 {
			return nil, domain.Validationf("split amount %.2f is negative", a)
		}
		sum += a
	}
	if math.Abs(domain.Round2(sum)-session.TotalAmount) > 0.01 {
		return nil, domain.Validationf("split amounts sum to %.2f, expected %.2f", sum, session.TotalAmount)
	}

	splits := make([]domain.BillSplit, 0, len(amounts))
	for _, guest := range guests {
		amount, ok := amounts[guest.ID]
		if !ok {
			continue
		}
		splits = append(splits, *domain.NewBillSplit(session.ID, guest.ID, domain.SplitCustom, amount))
	}
	if len(splits) != len(amounts) {
		return nil, domain.Validationf("split amounts reference guests outside the session")
	}
	return splits, nil
}

// splitItemBased charges each guest for the items they personally added.
// Tax, service charge and tip are distributed proportionally to each guest's
// item subtotal.
func (s *BillingService) splitItemBased(ctx context.Context, session *domain.DiningSession, guests []domain.SessionGuest) ([]domain.BillSplit, error) {
	orders, err := s.orders.ListSessionOrders(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	perGuest := make(map[uuid.UUID]float64, len(guests))
	itemTotal := 0.0
	for _, order := range orders {
		if !order.IsActive() {
			continue
		}
		for _, item := range order.Items {
			perGuest[item.GuestID] += item.TotalPrice
			itemTotal += item.TotalPrice
		}
	}
	if itemTotal == 0 {
		return nil, domain.Validationf("session %s has no items to split by", session.SessionCode)
	}

	splits := make([]domain.BillSplit, 0, len(guests))
	for _, guest := range guests {
		share, ok := perGuest[guest.ID]
		if !ok {
			continue
		}
		amount := session.TotalAmount * share / itemTotal
		splits = append(splits, *domain.NewBillSplit(session.ID, guest.ID, domain.SplitItemBased, amount))
	}
	return s.settleRemainder(session, splits), nil
}

// settleRemainder pushes the rounding residue onto the first split so the
// shares sum exactly to the session total.
func (s *BillingService) settleRemainder(session *domain.DiningSession, splits []domain.BillSplit) []domain.BillSplit {
	if len(splits) == 0 {
		return splits
	}
	sum := 0.0
	for _, split := range splits {
		sum += split.Amount
	}
	if diff := domain.Round2(session.TotalAmount - sum); diff != 0 {
		splits[0].Amount = domain.Round2(splits[0].Amount + diff)
	}
	return splits
}

func (s *BillingService) ListSplits(ctx context.Context, sessionID uuid.UUID) ([]domain.BillSplit, error) {
	return s.splits.ListSessionSplits(ctx, sessionID)
}

// MarkSplitPaid settles one guest's share. When it is the last outstanding
// share, the whole session flips to PAID.
func (s *BillingService) MarkSplitPaid(ctx context.Context, splitID uuid.UUID, method string) (*domain.BillSplit, error) {
	split, err := s.splits.GetSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if split.IsPaid() {
		return split, nil
	}
	split.MarkPaid(method)
	if err := s.splits.UpdateSplit(ctx, split); err != nil {
		return nil, err
	}

	if err := s.settleSessionIfPaid(ctx, split.SessionID); err != nil {
		log.Printf("[billing-svc] failed to settle session payment status: %v", err)
	}
	return split, nil
}

func (s *BillingService) MarkSplitFailed(ctx context.Context, splitID uuid.UUID) (*domain.BillSplit, error) {
	split, err := s.splits.GetSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	split.MarkFailed()
	if err := s.splits.UpdateSplit(ctx, split); err != nil {
		return nil, err
	}
	return split, nil
}

func (s *BillingService) settleSessionIfPaid(ctx context.Context, sessionID uuid.UUID) error {
	splits, err := s.splits.ListSessionSplits(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, split := range splits {
		if !split.IsPaid() {
			return nil
		}
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.PaymentStatus == domain.PaymentPaid {
		return nil
	}
	session.PaymentStatus = domain.PaymentPaid
	return s.sessions.UpdateSession(ctx, session)
}

var _ BillingServiceInterface = (*BillingService)(nil)
