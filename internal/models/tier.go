package models

// Tier is one of the fixed service packages sold on the booking page. Price
// is display copy only; Stripe's price object is authoritative.
type Tier struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Sessions     int    `json:"sessions"`
	PriceID      string `json:"price_id"`
	DisplayPrice string `json:"display_price"`
	PayPalURL    string `json:"paypal_url"`
}
