package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	AllowOrigins    string        `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:3000"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"20"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	BookingPath     string        `env:"BOOKING_PATH" envDefault:"/book-now"`
}

type StripeConfig struct {
	SecretKey      string `env:"STRIPE_SECRET_KEY"`
	WebhookSecret  string `env:"STRIPE_WEBHOOK_SECRET"`
	PublishableKey string `env:"STRIPE_PUBLISHABLE_KEY"`

	// Price ids of the three tiers, created in the Stripe dashboard.
	PriceSingle  string `env:"STRIPE_PRICE_SINGLE" envDefault:"price_single"`
	PriceBlock5  string `env:"STRIPE_PRICE_BLOCK_5" envDefault:"price_block_5"`
	PriceBlock10 string `env:"STRIPE_PRICE_BLOCK_10" envDefault:"price_block_10"`
}

type MailConfig struct {
	Driver       string `env:"MAIL_DRIVER" envDefault:"smtp"`
	Host         string `env:"EMAIL_HOST" envDefault:"smtp.gmail.com"`
	Port         int    `env:"EMAIL_PORT" envDefault:"587"`
	User         string `env:"EMAIL_USER"`
	Password     string `env:"EMAIL_PASS"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromAddress  string `env:"EMAIL_FROM_ADDRESS"`
	FromName     string `env:"EMAIL_FROM_NAME" envDefault:"Ashleigh D Voice Coaching"`
}

type BusinessConfig struct {
	Name          string `env:"BUSINESS_NAME" envDefault:"Ashleigh D Voice Coaching"`
	ConfirmCC     string `env:"CONFIRMATION_CC" envDefault:"ashleigh.dowler@hotmail.co.uk"`
	ContactInbox  string `env:"CONTACT_INBOX" envDefault:"ashleigh.dowler@hotmail.co.uk"`
	SchedulingURL string `env:"SCHEDULING_URL" envDefault:"https://calendly.com/vocalcoachashleigh"`
}

type CaptchaConfig struct {
	TurnstileSecret string `env:"TURNSTILE_SECRET_KEY"`
}

type LoggerConfig struct {
	Level  string `env:"LOGGER_LEVEL" envDefault:"info"`
	AsJSON bool   `env:"LOGGER_AS_JSON" envDefault:"true"`
}

type Config struct {
	App      AppConfig
	Stripe   StripeConfig
	Mail     MailConfig
	Business BusinessConfig
	Captcha  CaptchaConfig
	Logger   LoggerConfig
}

// Load reads an optional .env file and then the process environment.
func Load(paths ...string) (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: load .env: %w", op, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Gmail style relays only accept the authenticated user as sender.
	if cfg.Mail.FromAddress == "" {
		cfg.Mail.FromAddress = cfg.Mail.User
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Mail.Driver {
	case "smtp", "resend":
	default:
		return fmt.Errorf("unsupported MAIL_DRIVER %q", c.Mail.Driver)
	}

	if !strings.HasPrefix(c.App.BookingPath, "/") {
		return fmt.Errorf("BOOKING_PATH must start with '/', got %q", c.App.BookingPath)
	}

	return nil
}
