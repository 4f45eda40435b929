package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

func (r *PostgresRepository) CreateGuest(ctx context.Context, guest *domain.SessionGuest) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO session_guests (id, session_id, guest_name, guest_phone, is_host, join_token, joined_at, last_activity_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		guest.ID, guest.SessionID, guest.GuestName, guest.GuestPhone, guest.IsHost,
		guest.JoinToken, guest.JoinedAt, guest.LastActivityAt)
	return mapError(err, "guest", guest.GuestName)
}

const guestColumns = `id, session_id, guest_name, COALESCE(guest_phone, ''), is_host, join_token, joined_at, last_activity_at`

func (r *PostgresRepository) scanGuest(row interface{ Scan(...any) error }) (*domain.SessionGuest, error) {
	var guest domain.SessionGuest
	if err := row.Scan(&guest.ID, &guest.SessionID, &guest.GuestName, &guest.GuestPhone,
		&guest.IsHost, &guest.JoinToken, &guest.JoinedAt, &guest.LastActivityAt); err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *PostgresRepository) GetGuest(ctx context.Context, id uuid.UUID) (*domain.SessionGuest, error) {
	guest, err := r.scanGuest(r.DB.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM session_guests WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "guest", id)
	}
	return guest, nil
}

func (r *PostgresRepository) GetGuestByToken(ctx context.Context, token string) (*domain.SessionGuest, error) {
	guest, err := r.scanGuest(r.DB.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM session_guests WHERE join_token = $1`, token))
	if err != nil {
		return nil, mapError(err, "guest token", "(redacted)")
	}
	return guest, nil
}

func (r *PostgresRepository) ListSessionGuests(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionGuest, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+guestColumns+` FROM session_guests WHERE session_id = $1 ORDER BY joined_at`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []domain.SessionGuest
	for rows.Next() {
		guest, err := r.scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, *guest)
	}
	return guests, rows.Err()
}

func (r *PostgresRepository) CountSessionGuests(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_guests WHERE session_id = $1`, sessionID).Scan(&count)
	return count, err
}

func (r *PostgresRepository) UpdateGuestActivity(ctx context.Context, guestID uuid.UUID, at time.Time) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE session_guests SET last_activity_at = $1 WHERE id = $2`, at, guestID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("guest", guestID)
	}
	return nil
}

func (r *PostgresRepository) DeleteGuest(ctx context.Context, guestID uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM session_guests WHERE id = $1`, guestID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("guest", guestID)
	}
	return nil
}
