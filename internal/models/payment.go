package models

type CreateCheckoutSessionRequest struct {
	PriceID string `json:"priceId" validate:"required"`
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type PaymentConfig struct {
	PublishableKey string `json:"publishableKey"`
}
