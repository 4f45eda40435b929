package domain

// ItemPricing is what the external menu catalog returns for a
// (menu item, variation) pair. The cart engine captures the resolved unit
// price at add time.
type ItemPricing struct {
	Name                   string  `json:"name"`
	BasePrice              float64 `json:"base_price"`
	PriceAdjustment        float64 `json:"price_adjustment"`
	PreparationTimeMinutes int     `json:"preparation_time_minutes"`
	IsAvailable            bool    `json:"is_available"`
}

func (p ItemPricing) UnitPrice() float64 {
	return Round2(p.BasePrice + p.PriceAdjustment)
}

// BillingConfig is the read-only restaurant configuration billing consumes.
type BillingConfig struct {
	TaxRate           float64 `json:"tax_rate"`
	ServiceChargeRate float64 `json:"service_charge_rate"`
	DeliveryFee       float64 `json:"delivery_fee"`
	CurrencyCode      string  `json:"currency_code"`
}
