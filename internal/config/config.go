package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the ship-date policy
// service. Identifier defaults (terms, location, asset account) match
// the production ERP account this logic was written for; role ids are
// deployment-specific and normally supplied via ENFORCED_ROLES.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`

	// RedisAddr switches the distance cache from SQL to Redis when set.
	RedisAddr string `env:"REDIS_ADDR"`

	OriginAddress string `env:"ORIGIN_ADDRESS" envDefault:"8610 Cherry Lane, Laurel, Maryland 20707"`

	SpecialItemCode     string `env:"SPECIAL_ITEM_CODE" envDefault:"00401"`
	DefaultCalendarID   string `env:"DEFAULT_CALENDAR_ID" envDefault:"blackout-default"`
	AlternateCalendarID string `env:"ALTERNATE_CALENDAR_ID" envDefault:"blackout-special"`

	EnforcedRoles []int64 `env:"ENFORCED_ROLES" envSeparator:"," envDefault:"1022"`

	FinancingTermsID    int64 `env:"FINANCING_TERMS_ID" envDefault:"8"`
	MaterialsLocationID int64 `env:"MATERIALS_LOCATION_ID" envDefault:"17"`
	CabinetAccountID    int64 `env:"CABINET_ACCOUNT_ID" envDefault:"726"`

	SeedPath string `env:"SEED_PATH" envDefault:"data/seeds/policy.json"`
	Debug    bool   `env:"DEBUG"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
