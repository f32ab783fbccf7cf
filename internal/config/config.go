package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	API     APIConfig     `envPrefix:"API_"`
	Cart    CartConfig    `envPrefix:"CART_"`
	Pricing PricingConfig `envPrefix:"PRICING_"`
	MockAPI MockAPIConfig `envPrefix:"MOCK_API_"`
}

type APIConfig struct {
	BaseURL    string        `env:"BASE_URL" envDefault:"http://localhost:8000/api"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
	RetryCount int           `env:"RETRY_COUNT" envDefault:"3"`
}

type CartConfig struct {
	// MergeStrategy decides what happens to guest cart lines on login:
	// discard-local, union-by-product or prefer-server.
	MergeStrategy string `env:"MERGE_STRATEGY" envDefault:"discard-local"`
}

type PricingConfig struct {
	FreeShippingThreshold float64 `env:"FREE_SHIPPING_THRESHOLD" envDefault:"50"`
	TaxRate               float64 `env:"TAX_RATE" envDefault:"0.08"`
}

type MockAPIConfig struct {
	Addr string `env:"ADDR" envDefault:":8000"`
	// PageSize is the product listing page size above which the mock wraps
	// results in a paginated envelope.
	PageSize int `env:"PAGE_SIZE" envDefault:"12"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
