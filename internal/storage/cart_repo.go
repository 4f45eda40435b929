package storage

import (
	"context"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

func (r *PostgresRepository) GetCartBySession(ctx context.Context, sessionID uuid.UUID) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, session_id, restaurant_id, subtotal, updated_at
		FROM carts WHERE session_id = $1`, sessionID).
		Scan(&cart.ID, &cart.SessionID, &cart.RestaurantID, &cart.Subtotal, &cart.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "cart", sessionID)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, cart_id, guest_id, menu_item_id, variation_id, name, unit_price, quantity,
			total_price, prep_time_minutes, COALESCE(special_instructions, ''), added_at
		FROM cart_items WHERE cart_id = $1 ORDER BY added_at`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		var variationID uuid.NullUUID
		if err := rows.Scan(&item.ID, &item.CartID, &item.GuestID, &item.MenuItemID, &variationID,
			&item.Name, &item.UnitPrice, &item.Quantity, &item.TotalPrice, &item.PrepTimeMinutes,
			&item.SpecialInstructions, &item.AddedAt); err != nil {
			return nil, err
		}
		if variationID.Valid {
			item.VariationID = &variationID.UUID
		}
		cart.Items = append(cart.Items, item)
	}
	return &cart, rows.Err()
}

// SaveCart writes the cart and its items atomically: the row is upserted and
// the item set replaced wholesale, so a reader never sees a half-saved cart.
func (r *PostgresRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO carts (id, session_id, restaurant_id, subtotal, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id) DO UPDATE
		SET subtotal = EXCLUDED.subtotal, updated_at = EXCLUDED.updated_at`,
		cart.ID, cart.SessionID, cart.RestaurantID, cart.Subtotal, cart.UpdatedAt); err != nil {
		return mapError(err, "cart", cart.SessionID)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return err
	}

	for _, item := range cart.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (id, cart_id, guest_id, menu_item_id, variation_id, name,
				unit_price, quantity, total_price, prep_time_minutes, special_instructions, added_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			item.ID, cart.ID, item.GuestID, item.MenuItemID, item.VariationID, item.Name,
			item.UnitPrice, item.Quantity, item.TotalPrice, item.PrepTimeMinutes,
			item.SpecialInstructions, item.AddedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}
