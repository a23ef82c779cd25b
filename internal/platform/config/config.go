package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/srgjo27/rental_booking/internal/core/pricing"
)

type App struct {
	ServiceName string `envconfig:"SERVICE_NAME" default:"rental-booking"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// Store is "postgres" or "memory".
	Store string `envconfig:"STORE" default:"postgres"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"rental_booking"`
	DBMaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`

	RedisHost       string        `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort       string        `envconfig:"REDIS_PORT" default:"6379"`
	VehicleCacheTTL time.Duration `envconfig:"VEHICLE_CACHE_TTL" default:"5m"`

	// Empty RabbitURL logs events instead of publishing them.
	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
	PaymentExchange string `envconfig:"PAYMENT_EXCHANGE" default:"payment.exchange"`
	PaymentQueue    string `envconfig:"PAYMENT_QUEUE" default:"rental.payment.q"`

	PricingStrategy string        `envconfig:"PRICING_STRATEGY" default:"min-of-both"`
	PendingTTL      time.Duration `envconfig:"PENDING_TTL" default:"0"`
	SweepInterval   time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Pricing is PricingStrategy parsed by Load.
	Pricing pricing.Strategy `ignored:"true"`
}

// Load reads envFile if it exists, then the process environment.
func Load(envFile string) (App, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return App{}, fmt.Errorf("load %s: %w", envFile, err)
			}
			log.Printf("File %s not found, using OS environment.", envFile)
		}
	}

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, err
	}

	st, err := pricing.ParseStrategy(c.PricingStrategy)
	if err != nil {
		return App{}, err
	}
	c.Pricing = st

	switch c.Store {
	case "postgres", "memory":
	default:
		return App{}, fmt.Errorf("unknown STORE %q", c.Store)
	}

	return c, nil
}

func (c App) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
