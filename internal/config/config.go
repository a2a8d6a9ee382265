package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Debug         bool   `mapstructure:"DEBUG"`
	ListenAddr    string `mapstructure:"LISTEN_ADDR"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	ClickHouseDSN string `mapstructure:"CLICKHOUSE_DSN"`

	// External catalog source (Steam storefront).
	SteamStoreURL    string        `mapstructure:"STEAM_STORE_URL"`
	SteamHTTPTimeout time.Duration `mapstructure:"STEAM_HTTP_TIMEOUT"`
	SteamMaxUpcoming int           `mapstructure:"STEAM_MAX_UPCOMING"`

	// Reconciliation.
	SyncInterval    time.Duration `mapstructure:"SYNC_INTERVAL"`
	SyncConcurrency int           `mapstructure:"SYNC_CONCURRENCY"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("STEAM_STORE_URL", "https://store.steampowered.com")
	viper.SetDefault("STEAM_HTTP_TIMEOUT", 15*time.Second)
	viper.SetDefault("STEAM_MAX_UPCOMING", 50)
	viper.SetDefault("SYNC_INTERVAL", 6*time.Hour)
	viper.SetDefault("SYNC_CONCURRENCY", 4)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
