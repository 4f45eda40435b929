package storage

import (
	"context"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

func (r *PostgresRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO restaurant_tables (id, restaurant_id, table_number, capacity, location_description, qr_code, status, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1)
		RETURNING created_at`,
		table.ID, table.RestaurantID, table.TableNumber, table.Capacity,
		table.LocationDescription, table.QRCode, table.Status).
		Scan(&table.CreatedAt)
	if err != nil {
		return mapError(err, "table", table.TableNumber)
	}
	table.Version = 1
	return nil
}

const tableColumns = `id, restaurant_id, table_number, capacity, COALESCE(location_description, ''), qr_code, status, current_session_id, version, last_cleaned_at, created_at`

func (r *PostgresRepository) scanTable(row interface{ Scan(...any) error }) (*domain.Table, error) {
	var table domain.Table
	var sessionID uuid.NullUUID
	if err := row.Scan(&table.ID, &table.RestaurantID, &table.TableNumber, &table.Capacity,
		&table.LocationDescription, &table.QRCode, &table.Status, &sessionID,
		&table.Version, &table.LastCleanedAt, &table.CreatedAt); err != nil {
		return nil, err
	}
	if sessionID.Valid {
		table.CurrentSessionID = &sessionID.UUID
	}
	return &table, nil
}

func (r *PostgresRepository) GetTable(ctx context.Context, id uuid.UUID) (*domain.Table, error) {
	table, err := r.scanTable(r.DB.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM restaurant_tables WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "table", id)
	}
	return table, nil
}

func (r *PostgresRepository) GetTableByQRCode(ctx context.Context, qrCode string) (*domain.Table, error) {
	table, err := r.scanTable(r.DB.QueryRowContext(ctx,
		`SELECT `+tableColumns+` FROM restaurant_tables WHERE qr_code = $1`, qrCode))
	if err != nil {
		return nil, mapError(err, "table", qrCode)
	}
	return table, nil
}

func (r *PostgresRepository) ListTables(ctx context.Context, restaurantID uuid.UUID) ([]domain.Table, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+tableColumns+` FROM restaurant_tables WHERE restaurant_id = $1 ORDER BY table_number`,
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []domain.Table
	for rows.Next() {
		table, err := r.scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *table)
	}
	return tables, rows.Err()
}

// OccupyTable claims the table in one conditional update. A concurrent claim
// or a stale version leaves zero rows affected, which surfaces as Conflict.
func (r *PostgresRepository) OccupyTable(ctx context.Context, tableID, sessionID uuid.UUID, version int) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE restaurant_tables
		SET status = $1, current_session_id = $2, version = version + 1
		WHERE id = $3 AND status = $4 AND version = $5`,
		domain.TableOccupied, sessionID, tableID, domain.TableAvailable, version)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.Conflictf("table", tableID, "claimed concurrently")
	}
	return nil
}

func (r *PostgresRepository) ReleaseTable(ctx context.Context, tableID uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE restaurant_tables
		SET status = $1, current_session_id = NULL, last_cleaned_at = NOW(), version = version + 1
		WHERE id = $2`,
		domain.TableAvailable, tableID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("table", tableID)
	}
	return nil
}

func (r *PostgresRepository) SetTableStatus(ctx context.Context, tableID uuid.UUID, status domain.TableStatus) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE restaurant_tables
		SET status = $1, current_session_id = NULL, version = version + 1
		WHERE id = $2`,
		status, tableID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("table", tableID)
	}
	return nil
}

func (r *PostgresRepository) SaveTableQRImage(ctx context.Context, tableID uuid.UUID, png []byte) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE restaurant_tables SET qr_image = $1 WHERE id = $2`, png, tableID)
	return err
}

func (r *PostgresRepository) GetTableQRImage(ctx context.Context, tableID uuid.UUID) ([]byte, error) {
	var png []byte
	if err := r.DB.QueryRowContext(ctx,
		`SELECT qr_image FROM restaurant_tables WHERE id = $1`, tableID).Scan(&png); err != nil {
		return nil, mapError(err, "table", tableID)
	}
	return png, nil
}
