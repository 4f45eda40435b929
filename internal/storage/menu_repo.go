package storage

import (
	"context"

	"github.com/google/uuid"

	"qrdine/internal/domain"
)

// GetItemPricing resolves a (menu item, variation) pair to its current price.
// The pair is unavailable when either side is.
func (r *PostgresRepository) GetItemPricing(ctx context.Context, menuItemID uuid.UUID, variationID *uuid.UUID) (*domain.ItemPricing, error) {
	var pricing domain.ItemPricing
	err := r.DB.QueryRowContext(ctx, `
		SELECT name, base_price, prep_time_minutes, is_available
		FROM menu_items WHERE id = $1`, menuItemID).
		Scan(&pricing.Name, &pricing.BasePrice, &pricing.PreparationTimeMinutes, &pricing.IsAvailable)
	if err != nil {
		return nil, mapError(err, "menu item", menuItemID)
	}

	if variationID != nil {
		var variationName string
		var available bool
		err := r.DB.QueryRowContext(ctx, `
			SELECT name, price_adjustment, is_available
			FROM menu_item_variations WHERE id = $1 AND menu_item_id = $2`,
			*variationID, menuItemID).
			Scan(&variationName, &pricing.PriceAdjustment, &available)
		if err != nil {
			return nil, mapError(err, "menu item variation", *variationID)
		}
		pricing.Name = pricing.Name + " (" + variationName + ")"
		pricing.IsAvailable = pricing.IsAvailable && available
	}

	return &pricing, nil
}

func (r *PostgresRepository) GetBillingConfig(ctx context.Context, restaurantID uuid.UUID) (*domain.BillingConfig, error) {
	var cfg domain.BillingConfig
	err := r.DB.QueryRowContext(ctx, `
		SELECT tax_rate, service_charge_rate, delivery_fee, currency_code
		FROM restaurant_settings WHERE restaurant_id = $1`, restaurantID).
		Scan(&cfg.TaxRate, &cfg.ServiceChargeRate, &cfg.DeliveryFee, &cfg.CurrencyCode)
	if err != nil {
		return nil, mapError(err, "restaurant settings", restaurantID)
	}
	return &cfg, nil
}
