package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"qrdine/internal/domain"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// mapError translates driver errors into the domain taxonomy so callers can
// branch with errors.Is instead of inspecting pq internals.
func mapError(err error, entity string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf(entity, id)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.Conflictf(entity, id, "already exists")
	}
	return err
}

// uuidArray adapts a uuid slice for a Postgres ANY($1) clause.
func uuidArray(ids []uuid.UUID) any {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return pq.Array(strs)
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurant_tables (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL,
			table_number TEXT NOT NULL,
			capacity INT NOT NULL,
			location_description TEXT,
			qr_code TEXT NOT NULL UNIQUE,
			qr_image BYTEA,
			status TEXT NOT NULL,
			current_session_id UUID,
			version INT NOT NULL DEFAULT 1,
			last_cleaned_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (restaurant_id, table_number)
		)`,
		`CREATE TABLE IF NOT EXISTS dining_sessions (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL,
			table_id UUID NOT NULL,
			session_code TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL,
			guest_count INT NOT NULL,
			host_name TEXT NOT NULL,
			host_phone TEXT,
			special_requests TEXT,
			total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			tip_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			payment_status TEXT NOT NULL,
			waiter_called BOOLEAN NOT NULL DEFAULT FALSE,
			waiter_call_time TIMESTAMPTZ,
			waiter_response_time TIMESTAMPTZ,
			version INT NOT NULL DEFAULT 1,
			started_at TIMESTAMPTZ NOT NULL,
			ended_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS session_guests (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL REFERENCES dining_sessions(id),
			guest_name TEXT NOT NULL,
			guest_phone TEXT,
			is_host BOOLEAN NOT NULL,
			join_token TEXT NOT NULL UNIQUE,
			joined_at TIMESTAMPTZ NOT NULL,
			last_activity_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL UNIQUE REFERENCES dining_sessions(id),
			restaurant_id UUID NOT NULL,
			subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id UUID PRIMARY KEY,
			cart_id UUID NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
			guest_id UUID NOT NULL,
			menu_item_id UUID NOT NULL,
			variation_id UUID,
			name TEXT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			quantity INT NOT NULL,
			total_price DOUBLE PRECISION NOT NULL,
			prep_time_minutes INT NOT NULL DEFAULT 0,
			special_instructions TEXT,
			added_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL,
			table_id UUID,
			session_id UUID,
			order_number TEXT NOT NULL UNIQUE,
			order_type TEXT NOT NULL,
			status TEXT NOT NULL,
			customer_name TEXT,
			special_instructions TEXT,
			subtotal DOUBLE PRECISION NOT NULL,
			tax_amount DOUBLE PRECISION NOT NULL,
			service_charge DOUBLE PRECISION NOT NULL,
			delivery_fee DOUBLE PRECISION NOT NULL,
			discount_amount DOUBLE PRECISION NOT NULL,
			total_amount DOUBLE PRECISION NOT NULL,
			payment_status TEXT NOT NULL,
			estimated_ready_at TIMESTAMPTZ,
			ready_at TIMESTAMPTZ,
			served_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			guest_id UUID NOT NULL,
			menu_item_id UUID NOT NULL,
			variation_id UUID,
			name TEXT NOT NULL,
			quantity INT NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			total_price DOUBLE PRECISION NOT NULL,
			prep_time_minutes INT NOT NULL DEFAULT 0,
			special_instructions TEXT,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS vouchers (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL,
			code TEXT NOT NULL,
			description TEXT,
			voucher_type TEXT NOT NULL,
			status TEXT NOT NULL,
			discount_value DOUBLE PRECISION NOT NULL,
			minimum_order_amount DOUBLE PRECISION,
			maximum_discount_amount DOUBLE PRECISION,
			usage_limit INT,
			used_count INT NOT NULL DEFAULT 0,
			valid_from TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ,
			UNIQUE (restaurant_id, code)
		)`,
		`CREATE TABLE IF NOT EXISTS bill_splits (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL REFERENCES dining_sessions(id),
			guest_id UUID NOT NULL,
			split_type TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			percentage DOUBLE PRECISION,
			payment_status TEXT NOT NULL,
			payment_method TEXT,
			paid_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL,
			name TEXT NOT NULL,
			base_price DOUBLE PRECISION NOT NULL,
			prep_time_minutes INT NOT NULL DEFAULT 0,
			is_available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS menu_item_variations (
			id UUID PRIMARY KEY,
			menu_item_id UUID NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			price_adjustment DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS restaurant_settings (
			restaurant_id UUID PRIMARY KEY,
			tax_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			service_charge_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
			currency_code TEXT NOT NULL DEFAULT 'USD'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_table_status ON dining_sessions(table_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_session ON orders(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_guests_session ON session_guests(session_id)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
