package config

import (
	"fmt"
	"os"

	"market-pulse/src/helpers"
	"market-pulse/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Apply environment overrides before validation so a missing webhook
	// URL in the file can still come from the environment.
	config.applyEnvOverrides()

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		c.WebhookURL = v
	}
	if v := os.Getenv("PULSE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PULSE_DB_PATH"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("PULSE_DB_CONNECTION_STRING"); v != "" {
		c.Storage.DBConnectionString = v
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation. The webhook URL check is
// the pre-flight gate: without it no network activity is ever attempted.
func (c *Config) Validate() error {
	// Validate App configuration
	if c.Name == "" {
		return helpers.NewConfigurationError("application name cannot be empty")
	}
	if c.WebhookURL == "" {
		return helpers.NewConfigurationError("webhook URL missing: set webhook_url or DISCORD_WEBHOOK_URL")
	}
	if c.IntervalMinutes <= 0 {
		return helpers.NewConfigurationError("interval_minutes must be greater than 0")
	}

	// Validate Server configuration
	if c.Host == "" {
		return helpers.NewConfigurationError("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return helpers.NewConfigurationError("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Storage configuration
	switch c.Storage.DBType {
	case "none":
	case "sqlite":
		if c.Storage.DBPath == "" {
			return helpers.NewConfigurationError("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return helpers.NewConfigurationError("connection string cannot be empty for postgres")
		}
	default:
		return helpers.NewConfigurationError("unknown db_type '%s' (expected none, sqlite or postgres)", c.Storage.DBType)
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return helpers.NewConfigurationError("request timeout must be greater than 0")
	}

	// Validate Sources configuration
	if c.Sources.Stooq.BaseURL == "" {
		return helpers.NewConfigurationError("stooq base_url cannot be empty")
	}
	if c.Sources.Coingecko.BaseURL == "" {
		return helpers.NewConfigurationError("coingecko base_url cannot be empty")
	}
	if c.Sources.Coingecko.VsCurrency == "" {
		return helpers.NewConfigurationError("coingecko vs_currency cannot be empty")
	}

	// Validate Session configuration
	if c.Session.Timezone == "" {
		return helpers.NewConfigurationError("session timezone cannot be empty")
	}

	// Validate Watchlist configuration
	if err := validateSymbols("mag7", c.Watchlist.MAG7); err != nil {
		return err
	}
	if err := validateSymbols("etfs", c.Watchlist.ETFs); err != nil {
		return err
	}
	if err := validateSymbols("small_caps", c.Watchlist.SmallCaps); err != nil {
		return err
	}
	if c.Watchlist.GoldSymbol == "" {
		return helpers.NewConfigurationError("watchlist gold_symbol cannot be empty")
	}
	if len(c.Watchlist.Crypto) == 0 {
		return helpers.NewConfigurationError("watchlist must have at least one crypto asset")
	}
	for i, cc := range c.Watchlist.Crypto {
		if cc.ID == "" || cc.Label == "" {
			return helpers.NewConfigurationError("crypto entry %d must have id and label", i)
		}
	}

	// Validate Report configuration
	if c.Report.TopN <= 0 {
		return helpers.NewConfigurationError("report top_n must be greater than 0")
	}
	// The fenced section body reserves 12 characters for the diff fence and 3
	// for the truncation ellipsis, so anything at or below 15 leaves no room
	// for content.
	if c.Report.SectionLimit <= 15 {
		return helpers.NewConfigurationError("report section_limit must be greater than 15")
	}

	return nil
}

// -----------------------------------------------------------------------------

func validateSymbols(bucket string, symbols []models.MSymbolConfig) error {
	if len(symbols) == 0 {
		return helpers.NewConfigurationError("watchlist bucket '%s' must have at least one symbol", bucket)
	}
	for i, s := range symbols {
		if s.Symbol == "" || s.Label == "" {
			return helpers.NewConfigurationError("entry %d of bucket '%s' must have symbol and label", i, bucket)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
