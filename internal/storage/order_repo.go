package storage

import (
	"context"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

// PromoteCart persists the order with all its items and removes the source
// cart in one transaction, so a submitted cart can never produce a second
// order. A duplicate order number rolls the whole thing back as Conflict.
func (r *PostgresRepository) PromoteCart(ctx context.Context, cartID uuid.UUID, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, restaurant_id, table_id, session_id, order_number, order_type,
			status, customer_name, special_instructions, subtotal, tax_amount, service_charge,
			delivery_fee, discount_amount, total_amount, payment_status, estimated_ready_at,
			ready_at, served_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		order.ID, order.RestaurantID, order.TableID, order.SessionID, order.OrderNumber,
		order.Type, order.Status, order.CustomerName, order.SpecialInstructions,
		order.Subtotal, order.TaxAmount, order.ServiceCharge, order.DeliveryFee,
		order.DiscountAmount, order.TotalAmount, order.PaymentStatus, order.EstimatedReadyAt,
		order.ReadyAt, order.ServedAt, order.CreatedAt, order.UpdatedAt); err != nil {
		return mapError(err, "order", order.OrderNumber)
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, guest_id, menu_item_id, variation_id, name,
				quantity, unit_price, total_price, prep_time_minutes, special_instructions, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			item.ID, order.ID, item.GuestID, item.MenuItemID, item.VariationID, item.Name,
			item.Quantity, item.UnitPrice, item.TotalPrice, item.PrepTimeMinutes,
			item.SpecialInstructions, item.Status); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return err
	}

	return tx.Commit()
}

const orderColumns = `id, restaurant_id, table_id, session_id, order_number, order_type, status,
	COALESCE(customer_name, ''), COALESCE(special_instructions, ''), subtotal, tax_amount,
	service_charge, delivery_fee, discount_amount, total_amount, payment_status,
	estimated_ready_at, ready_at, served_at, created_at, updated_at`

func (r *PostgresRepository) scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var order domain.Order
	var tableID, sessionID uuid.NullUUID
	if err := row.Scan(&order.ID, &order.RestaurantID, &tableID, &sessionID, &order.OrderNumber,
		&order.Type, &order.Status, &order.CustomerName, &order.SpecialInstructions,
		&order.Subtotal, &order.TaxAmount, &order.ServiceCharge, &order.DeliveryFee,
		&order.DiscountAmount, &order.TotalAmount, &order.PaymentStatus, &order.EstimatedReadyAt,
		&order.ReadyAt, &order.ServedAt, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	if tableID.Valid {
		order.TableID = &tableID.UUID
	}
	if sessionID.Valid {
		order.SessionID = &sessionID.UUID
	}
	return &order, nil
}

func (r *PostgresRepository) loadOrderItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderItem, error) {
	if len(orderIDs) == 0 {
		return map[uuid.UUID][]domain.OrderItem{}, nil
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, guest_id, menu_item_id, variation_id, name, quantity, unit_price,
			total_price, prep_time_minutes, COALESCE(special_instructions, ''), status
		FROM order_items WHERE order_id = ANY($1)`, uuidArray(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		var variationID uuid.NullUUID
		if err := rows.Scan(&item.ID, &item.OrderID, &item.GuestID, &item.MenuItemID, &variationID,
			&item.Name, &item.Quantity, &item.UnitPrice, &item.TotalPrice, &item.PrepTimeMinutes,
			&item.SpecialInstructions, &item.Status); err != nil {
			return nil, err
		}
		if variationID.Valid {
			item.VariationID = &variationID.UUID
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := r.scanOrder(r.DB.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "order", id)
	}
	items, err := r.loadOrderItems(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *PostgresRepository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, discount_amount = $2, total_amount = $3, tax_amount = $4,
			service_charge = $5, delivery_fee = $6, subtotal = $7, payment_status = $8,
			estimated_ready_at = $9, ready_at = $10, served_at = $11, updated_at = $12
		WHERE id = $13`,
		order.Status, order.DiscountAmount, order.TotalAmount, order.TaxAmount,
		order.ServiceCharge, order.DeliveryFee, order.Subtotal, order.PaymentStatus,
		order.EstimatedReadyAt, order.ReadyAt, order.ServedAt, order.UpdatedAt, order.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFoundf("order", order.ID)
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx,
			`UPDATE order_items SET status = $1 WHERE id = $2`, item.Status, item.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) ListSessionOrders(ctx context.Context, sessionID uuid.UUID) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE session_id = $1 ORDER BY created_at`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders, err := r.collectOrders(ctx, rows)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) ListRestaurantOrders(ctx context.Context, restaurantID uuid.UUID, status string, limit, offset int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE restaurant_id = $1`
	args := []any{restaurantID}
	if status != "" {
		query += ` AND status = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectOrders(ctx, rows)
}

// SumActiveOrderTotals is the source of truth for a session's running total:
// cancelled and refunded orders never count.
func (r *PostgresRepository) SumActiveOrderTotals(ctx context.Context, sessionID uuid.UUID) (float64, error) {
	var total float64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE session_id = $1 AND status NOT IN ($2, $3)`,
		sessionID, domain.OrderCancelled, domain.OrderRefunded).Scan(&total)
	return total, err
}

type sqlRows interface {
	Next() bool
	Scan(...any) error
	Err() error
}

func (r *PostgresRepository) collectOrders(ctx context.Context, rows sqlRows) ([]domain.Order, error) {
	var orders []domain.Order
	var ids []uuid.UUID
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.loadOrderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}
