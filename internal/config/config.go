package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/logger"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// LedgerConfig holds the network selector and contract/registry addresses.
// Addresses are loaded at process start and immutable afterwards.
type LedgerConfig struct {
	Network         domain.Network `mapstructure:"network"`
	RPCURL          string         `mapstructure:"rpc_url"`
	PackageID       string         `mapstructure:"package_id"`
	TrackRegistryID string         `mapstructure:"track_registry_id"`
	ListenConfigID  string         `mapstructure:"listen_config_id"`
	ParentPoolID    string         `mapstructure:"parent_pool_id"`
	TreasuryID      string         `mapstructure:"treasury_id"`
	StakeRegistryID string         `mapstructure:"stake_registry_id"`
}

// StorageConfig holds content-gateway endpoints and the URL cache policy
type StorageConfig struct {
	PublisherURL  string        `mapstructure:"publisher_url"`
	AggregatorURL string        `mapstructure:"aggregator_url"`
	URLCacheTTL   time.Duration `mapstructure:"url_cache_ttl"`
	UploadEpochs  int           `mapstructure:"upload_epochs"`
}

// RedisConfig holds the optional shared URL cache backend
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ClientConfig holds configuration for the client
type ClientConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Ledger      LedgerConfig  `mapstructure:"ledger"`
	Storage     StorageConfig `mapstructure:"storage"`
	Redis       RedisConfig   `mapstructure:"redis"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	FetchPool   int           `mapstructure:"fetch_pool"`
}

// LoadClientConfig loads the client configuration from file and environment
func LoadClientConfig(configFile string, envPath string) (*ClientConfig, error) {
	v := configureViper(configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("ledger.network", "testnet")
	v.SetDefault("ledger.rpc_url", "https://fullnode.testnet.sui.io:443")
	v.SetDefault("ledger.package_id", "0x0")
	v.SetDefault("ledger.track_registry_id", "0x0")
	v.SetDefault("ledger.listen_config_id", "0x0")
	v.SetDefault("ledger.parent_pool_id", "0x0")
	v.SetDefault("ledger.treasury_id", "0x0")
	v.SetDefault("ledger.stake_registry_id", "0x0")
	v.SetDefault("storage.publisher_url", "https://publisher.walrus-testnet.walrus.space")
	v.SetDefault("storage.aggregator_url", "https://aggregator.walrus-testnet.walrus.space")
	v.SetDefault("storage.url_cache_ttl", "1h")
	v.SetDefault("storage.upload_epochs", 5)
	v.SetDefault("http_timeout", "30s")
	v.SetDefault("fetch_pool", 8)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !domain.IsValidNetwork(cfg.Ledger.Network) {
		return nil, fmt.Errorf("invalid network: %s", cfg.Ledger.Network)
	}

	return &cfg, nil
}

// WarnMissing logs a warning for every contract address still at its
// placeholder value. Missing addresses are not fatal; the client keeps
// running so test-mode flows stay usable before contracts are deployed.
func (c *ClientConfig) WarnMissing() {
	required := map[string]string{
		"ledger.package_id":        c.Ledger.PackageID,
		"ledger.track_registry_id": c.Ledger.TrackRegistryID,
		"ledger.listen_config_id":  c.Ledger.ListenConfigID,
		"ledger.parent_pool_id":    c.Ledger.ParentPoolID,
		"ledger.treasury_id":       c.Ledger.TreasuryID,
		"ledger.stake_registry_id": c.Ledger.StakeRegistryID,
	}

	var missing []string
	for key, value := range required {
		if value == "" || value == "0x0" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		logger.Warn("missing contract configuration, deploy contracts and update the environment",
			zap.Strings("keys", missing))
	}
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("MELODIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields when no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"http_timeout",
		"fetch_pool",
		// Ledger
		"ledger.network",
		"ledger.rpc_url",
		"ledger.package_id",
		"ledger.track_registry_id",
		"ledger.listen_config_id",
		"ledger.parent_pool_id",
		"ledger.treasury_id",
		"ledger.stake_registry_id",
		// Storage
		"storage.publisher_url",
		"storage.aggregator_url",
		"storage.url_cache_ttl",
		"storage.upload_epochs",
		// Redis
		"redis.enabled",
		"redis.addr",
		"redis.password",
		"redis.db",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string) {
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range []string{".env", ".env.local"} {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}
