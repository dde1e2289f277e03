package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Telegram    TelegramConfig `mapstructure:"telegram"`
	Ledger      LedgerConfig   `mapstructure:"ledger"`
	Pricing     PricingConfig  `mapstructure:"pricing"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TelegramConfig contains settings for the outbound user notification channel
type TelegramConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Token       string        `mapstructure:"token"`
	SendTimeout time.Duration `mapstructure:"sendTimeout"` // seconds
}

// LedgerConfig contains the ledger's business settings
type LedgerConfig struct {
	// WelcomeBalance seeds every newly registered user
	WelcomeBalance int64 `mapstructure:"welcomeBalance"`
}

// PricingConfig maps paid amounts to token grants
type PricingConfig struct {
	// PurchaseMarker is the phrase that marks a direct token purchase in the
	// payment description ("<marker>: <n>")
	PurchaseMarker string `mapstructure:"purchaseMarker"`
	// PurchaseBonusPercent is the fixed bonus applied to direct purchases
	PurchaseBonusPercent int64 `mapstructure:"purchaseBonusPercent"`
	// Tiers are consulted in order; the first match wins
	Tiers []TierConfig `mapstructure:"tiers"`
}

// TierConfig is a single pricing bracket
type TierConfig struct {
	Label  string  `mapstructure:"label"`
	Low    float64 `mapstructure:"low"`
	High   float64 `mapstructure:"high"`
	Tokens int64   `mapstructure:"tokens"`
}
