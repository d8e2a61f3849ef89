// Package config loads application configuration from config.yaml and the
// environment, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Geo        GeoConfig        `yaml:"geo" mapstructure:"geo"`
	EIA        EIAConfig        `yaml:"eia" mapstructure:"eia"`
	CollectAPI CollectAPIConfig `yaml:"collectapi" mapstructure:"collectapi"`
	Refresh    RefreshConfig    `yaml:"refresh" mapstructure:"refresh"`
	Gazetteer  GazetteerConfig  `yaml:"gazetteer" mapstructure:"gazetteer"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the price persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// GeoConfig configures zipcode to MSA assignment.
type GeoConfig struct {
	RadiusMiles      float64 `yaml:"radius_miles" mapstructure:"radius_miles"`
	CacheSize        int     `yaml:"cache_size" mapstructure:"cache_size"`
	SupplementPath   string  `yaml:"supplement_path" mapstructure:"supplement_path"`
	BatchConcurrency int     `yaml:"batch_concurrency" mapstructure:"batch_concurrency"`
}

// EIAConfig holds EIA open data API settings.
type EIAConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// CollectAPIConfig holds CollectAPI gas price settings.
type CollectAPIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// RefreshConfig configures price refresh behavior.
type RefreshConfig struct {
	StaleAfterHours int `yaml:"stale_after_hours" mapstructure:"stale_after_hours"`
}

// GazetteerConfig configures Census gazetteer imports.
type GazetteerConfig struct {
	FTPHost    string `yaml:"ftp_host" mapstructure:"ftp_host"`
	RemotePath string `yaml:"remote_path" mapstructure:"remote_path"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GASPRICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "gasprice.db")
	v.SetDefault("geo.radius_miles", 75.0)
	v.SetDefault("geo.cache_size", 1000)
	v.SetDefault("geo.batch_concurrency", 8)
	v.SetDefault("eia.base_url", "https://api.eia.gov")
	v.SetDefault("collectapi.base_url", "https://api.collectapi.com")
	v.SetDefault("refresh.stale_after_hours", 24)
	v.SetDefault("gazetteer.ftp_host", "ftp2.census.gov:21")
	v.SetDefault("gazetteer.remote_path", "geo/docs/maps-data/data/gazetteer")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields required for the given run mode. Modes are
// "lookup" (read-only price and MSA queries), "refresh" (source fetch plus
// persistence), and "serve" (the HTTP API).
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
		problems = append(problems, "store.driver must be sqlite or postgres")
	}
	if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required for the postgres driver")
	}
	if c.Store.Driver == "sqlite" && c.Store.SQLitePath == "" {
		problems = append(problems, "store.sqlite_path is required for the sqlite driver")
	}
	if c.Geo.RadiusMiles <= 0 {
		problems = append(problems, "geo.radius_miles must be > 0")
	}
	if c.Geo.CacheSize < 1 {
		problems = append(problems, "geo.cache_size must be >= 1")
	}
	if c.Geo.BatchConcurrency < 1 || c.Geo.BatchConcurrency > 64 {
		problems = append(problems, "geo.batch_concurrency must be between 1 and 64")
	}

	switch mode {
	case "lookup":
	case "refresh":
		if c.Refresh.StaleAfterHours < 1 {
			problems = append(problems, "refresh.stale_after_hours must be >= 1")
		}
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
