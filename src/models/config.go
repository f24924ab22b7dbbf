package models

// MConfig Structure
type MConfig struct {
	Name            string           `yaml:"name"`
	Host            string           `yaml:"host"`
	Port            int              `yaml:"port"`
	LogLevel        string           `yaml:"log_level"`
	IntervalMinutes int              `yaml:"interval_minutes"`
	WebhookURL      string           `yaml:"webhook_url"`
	Storage         MStorageConfig   `yaml:"storage"`
	Network         MNetworkConfig   `yaml:"network"`
	Sources         MSourcesConfig   `yaml:"sources"`
	Session         MSessionConfig   `yaml:"session"`
	Watchlist       MWatchlistConfig `yaml:"watchlist"`
	Report          MReportConfig    `yaml:"report"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	UserAgent      string `yaml:"user_agent"`
}

type MSourcesConfig struct {
	Stooq     MStooqConfig     `yaml:"stooq"`
	Coingecko MCoingeckoConfig `yaml:"coingecko"`
}

type MStooqConfig struct {
	BaseURL string `yaml:"base_url"`
}

type MCoingeckoConfig struct {
	BaseURL    string `yaml:"base_url"`
	VsCurrency string `yaml:"vs_currency"`
}

type MSessionConfig struct {
	Timezone        string `yaml:"timezone"`
	RespectHolidays bool   `yaml:"respect_holidays"`
}

// MSymbolConfig is one watchlist entry: exchange symbol plus display label.
type MSymbolConfig struct {
	Symbol string `yaml:"symbol"`
	Label  string `yaml:"label"`
}

// MCryptoConfig is one crypto watchlist entry keyed by provider asset id.
type MCryptoConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type MWatchlistConfig struct {
	MAG7       []MSymbolConfig `yaml:"mag7"`
	ETFs       []MSymbolConfig `yaml:"etfs"`
	SmallCaps  []MSymbolConfig `yaml:"small_caps"`
	GoldSymbol string          `yaml:"gold_symbol"`
	GoldLabel  string          `yaml:"gold_label"`
	Crypto     []MCryptoConfig `yaml:"crypto"`
}

type MReportConfig struct {
	TopN           int `yaml:"top_n"`
	SectionLimit   int `yaml:"section_limit"`
	DashboardColor int `yaml:"dashboard_color"`
	TapeColor      int `yaml:"tape_color"`
	WeekendColor   int `yaml:"weekend_color"`
}
