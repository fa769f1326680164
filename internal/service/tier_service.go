package service

import (
	"errors"

	"github.com/ashleighd/voice-coaching-backend/internal/config"
	"github.com/ashleighd/voice-coaching-backend/internal/models"
)

var ErrTierNotFound = errors.New("tier not found")

type TierService struct {
	tiers          []models.Tier
	publishableKey string
}

func NewTierService(cfg config.StripeConfig) *TierService {
	return &TierService{
		tiers: []models.Tier{
			{
				Key:          "single",
				Name:         "Single Session",
				Sessions:     1,
				PriceID:      cfg.PriceSingle,
				DisplayPrice: "£45",
				PayPalURL:    "https://www.paypal.com/paypalme/AshleighDowler/45GBP",
			},
			{
				Key:          "block-5",
				Name:         "Block of 5 Sessions",
				Sessions:     5,
				PriceID:      cfg.PriceBlock5,
				DisplayPrice: "£205",
				PayPalURL:    "https://www.paypal.com/paypalme/AshleighDowler/205GBP",
			},
			{
				Key:          "block-10",
				Name:         "Block of 10 Sessions",
				Sessions:     10,
				PriceID:      cfg.PriceBlock10,
				DisplayPrice: "£385",
				PayPalURL:    "https://www.paypal.com/paypalme/AshleighDowler/385GBP",
			},
		},
		publishableKey: cfg.PublishableKey,
	}
}

func (s *TierService) GetAllTiers() []models.Tier {
	out := make([]models.Tier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

func (s *TierService) GetTierByKey(key string) (*models.Tier, error) {
	for _, t := range s.tiers {
		if t.Key == key {
			tier := t
			return &tier, nil
		}
	}
	return nil, ErrTierNotFound
}

func (s *TierService) GetPaymentConfig() models.PaymentConfig {
	return models.PaymentConfig{PublishableKey: s.publishableKey}
}
