package storage

import (
	"context"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

func (r *PostgresRepository) GetVoucherByCode(ctx context.Context, restaurantID uuid.UUID, code string) (*domain.Voucher, error) {
	var voucher domain.Voucher
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, restaurant_id, code, COALESCE(description, ''), voucher_type, status,
			discount_value, minimum_order_amount, maximum_discount_amount, usage_limit,
			used_count, valid_from, expires_at
		FROM vouchers
		WHERE restaurant_id = $1 AND code = $2`, restaurantID, code).
		Scan(&voucher.ID, &voucher.RestaurantID, &voucher.Code, &voucher.Description,
			&voucher.Type, &voucher.Status, &voucher.DiscountValue, &voucher.MinimumOrderAmount,
			&voucher.MaximumDiscountAmount, &voucher.UsageLimit, &voucher.UsedCount,
			&voucher.ValidFrom, &voucher.ExpiresAt)
	if err != nil {
		return nil, mapError(err, "voucher", code)
	}
	return &voucher, nil
}

// IncrementVoucherUsage bumps the counter only while still under the limit,
// so two concurrent redemptions cannot overshoot it.
func (r *PostgresRepository) IncrementVoucherUsage(ctx context.Context, voucherID uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE vouchers
		SET used_count = used_count + 1
		WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)`, voucherID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.Conflictf("voucher", voucherID, "usage limit reached")
	}
	return nil
}

// ReplaceSessionSplits swaps the session's whole split set atomically so a
// recompute never leaves a mix of old and new shares.
func (r *PostgresRepository) ReplaceSessionSplits(ctx context.Context, sessionID uuid.UUID, splits []domain.BillSplit) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM bill_splits WHERE session_id = $1`, sessionID); err != nil {
		return err
	}

	for _, split := range splits {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bill_splits (id, session_id, guest_id, split_type, amount, percentage,
				payment_status, payment_method, paid_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			split.ID, split.SessionID, split.GuestID, split.Type, split.Amount, split.Percentage,
			split.PaymentStatus, split.PaymentMethod, split.PaidAt, split.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const splitColumns = `id, session_id, guest_id, split_type, amount, percentage, payment_status, COALESCE(payment_method, ''), paid_at, created_at`

func (r *PostgresRepository) scanSplit(row interface{ Scan(...any) error }) (*domain.BillSplit, error) {
	var split domain.BillSplit
	if err := row.Scan(&split.ID, &split.SessionID, &split.GuestID, &split.Type, &split.Amount,
		&split.Percentage, &split.PaymentStatus, &split.PaymentMethod, &split.PaidAt,
		&split.CreatedAt); err != nil {
		return nil, err
	}
	return &split, nil
}

func (r *PostgresRepository) GetSplit(ctx context.Context, id uuid.UUID) (*domain.BillSplit, error) {
	split, err := r.scanSplit(r.DB.QueryRowContext(ctx,
		`SELECT `+splitColumns+` FROM bill_splits WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "bill split", id)
	}
	return split, nil
}

func (r *PostgresRepository) ListSessionSplits(ctx context.Context, sessionID uuid.UUID) ([]domain.BillSplit, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+splitColumns+` FROM bill_splits WHERE session_id = $1 ORDER BY created_at`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var splits []domain.BillSplit
	for rows.Next() {
		split, err := r.scanSplit(rows)
		if err != nil {
			return nil, err
		}
		splits = append(splits, *split)
	}
	return splits, rows.Err()
}

func (r *PostgresRepository) UpdateSplit(ctx context.Context, split *domain.BillSplit) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE bill_splits
		SET payment_status = $1, payment_method = $2, paid_at = $3
		WHERE id = $4`,
		split.PaymentStatus, split.PaymentMethod, split.PaidAt, split.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("bill split", split.ID)
	}
	return nil
}
