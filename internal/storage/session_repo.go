package storage

import (
	"context"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

func (r *PostgresRepository) CreateSession(ctx context.Context, session *domain.DiningSession) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO dining_sessions (id, restaurant_id, table_id, session_code, status, guest_count,
			host_name, host_phone, special_requests, total_amount, tip_amount, payment_status,
			waiter_called, version, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1, $14)`,
		session.ID, session.RestaurantID, session.TableID, session.SessionCode, session.Status,
		session.GuestCount, session.HostName, session.HostPhone, session.SpecialRequests,
		session.TotalAmount, session.TipAmount, session.PaymentStatus, session.WaiterCalled,
		session.StartedAt)
	if err != nil {
		return mapError(err, "session", session.SessionCode)
	}
	session.Version = 1
	return nil
}

const sessionColumns = `id, restaurant_id, table_id, session_code, status, guest_count,
	host_name, COALESCE(host_phone, ''), COALESCE(special_requests, ''), total_amount, tip_amount,
	payment_status, waiter_called, waiter_call_time, waiter_response_time, version, started_at, ended_at`

func (r *PostgresRepository) scanSession(row interface{ Scan(...any) error }) (*domain.DiningSession, error) {
	var session domain.DiningSession
	if err := row.Scan(&session.ID, &session.RestaurantID, &session.TableID, &session.SessionCode,
		&session.Status, &session.GuestCount, &session.HostName, &session.HostPhone,
		&session.SpecialRequests, &session.TotalAmount, &session.TipAmount, &session.PaymentStatus,
		&session.WaiterCalled, &session.WaiterCallTime, &session.WaiterResponseTime,
		&session.Version, &session.StartedAt, &session.EndedAt); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *PostgresRepository) GetSession(ctx context.Context, id uuid.UUID) (*domain.DiningSession, error) {
	session, err := r.scanSession(r.DB.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM dining_sessions WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "session", id)
	}
	return session, nil
}

func (r *PostgresRepository) GetSessionByCode(ctx context.Context, code string) (*domain.DiningSession, error) {
	session, err := r.scanSession(r.DB.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM dining_sessions WHERE session_code = $1`, code))
	if err != nil {
		return nil, mapError(err, "session", code)
	}
	return session, nil
}

func (r *PostgresRepository) GetActiveSessionByTable(ctx context.Context, tableID uuid.UUID) (*domain.DiningSession, error) {
	session, err := r.scanSession(r.DB.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM dining_sessions
		WHERE table_id = $1 AND status IN ($2, $3, $4)`,
		tableID, domain.SessionActive, domain.SessionPaused, domain.SessionAwaitingPayment))
	if err != nil {
		return nil, mapError(err, "session", tableID)
	}
	return session, nil
}

// UpdateSession writes the whole mutable state back under a version check;
// a lost race surfaces as Conflict so the caller can re-read and retry.
func (r *PostgresRepository) UpdateSession(ctx context.Context, session *domain.DiningSession) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE dining_sessions
		SET status = $1, guest_count = $2, special_requests = $3, total_amount = $4,
			tip_amount = $5, payment_status = $6, waiter_called = $7, waiter_call_time = $8,
			waiter_response_time = $9, ended_at = $10, version = version + 1
		WHERE id = $11 AND version = $12`,
		session.Status, session.GuestCount, session.SpecialRequests, session.TotalAmount,
		session.TipAmount, session.PaymentStatus, session.WaiterCalled, session.WaiterCallTime,
		session.WaiterResponseTime, session.EndedAt, session.ID, session.Version)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.Conflictf("session", session.SessionCode, "modified concurrently")
	}
	session.Version++
	return nil
}

func (r *PostgresRepository) ListActiveSessions(ctx context.Context, restaurantID uuid.UUID) ([]domain.DiningSession, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM dining_sessions
		WHERE restaurant_id = $1 AND status IN ($2, $3, $4)
		ORDER BY started_at`,
		restaurantID, domain.SessionActive, domain.SessionPaused, domain.SessionAwaitingPayment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.DiningSession
	for rows.Next() {
		session, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func (r *PostgresRepository) ListSessionHistory(ctx context.Context, restaurantID uuid.UUID, limit, offset int) ([]domain.DiningSession, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM dining_sessions
		WHERE restaurant_id = $1 AND status IN ($2, $3)
		ORDER BY ended_at DESC
		LIMIT $4 OFFSET $5`,
		restaurantID, domain.SessionCompleted, domain.SessionCancelled, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.DiningSession
	for rows.Next() {
		session, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}
