package main

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kylycht/coinboard/service/conversion"
	"github.com/kylycht/coinboard/storage/kv"
)

const envPrefix = "COINBOARD"

type (
	HTTPConfig struct {
		Port       string `mapstructure:"port" yaml:"port"`               // address the server listens on
		UserHeader string `mapstructure:"user_header" yaml:"user_header"` // header carrying the user id
	}

	AssetConfig struct {
		Symbol        string  `mapstructure:"symbol" yaml:"symbol"`                 // currency code of the asset
		ID            string  `mapstructure:"id" yaml:"id"`                         // market id of the asset
		FallbackPrice float64 `mapstructure:"fallback_price" yaml:"fallback_price"` // USD price used when the price source fails
	}

	ConversionConfig struct {
		FallbackRate float64 `mapstructure:"fallback_rate" yaml:"fallback_rate"`
		Precision    int     `mapstructure:"precision" yaml:"precision"`
	}

	APIConfig struct {
		URL    string `mapstructure:"url" yaml:"url"`
		APIKey string `mapstructure:"api_key" yaml:"api_key"`
	}

	UpstreamConfig struct {
		Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
		Retries int           `mapstructure:"retries" yaml:"retries"`
	}

	CatalogConfig struct {
		RefreshInterval time.Duration `mapstructure:"refresh_interval" yaml:"refresh_interval"`
		PostgresDSN     string        `mapstructure:"postgres_dsn" yaml:"postgres_dsn"` // optional currency table
	}

	Config struct {
		HTTP       HTTPConfig       `mapstructure:"http" yaml:"http"`
		Asset      AssetConfig      `mapstructure:"asset" yaml:"asset"`
		Conversion ConversionConfig `mapstructure:"conversion" yaml:"conversion"`
		Forex      APIConfig        `mapstructure:"forex" yaml:"forex"`
		Market     APIConfig        `mapstructure:"market" yaml:"market"`
		News       APIConfig        `mapstructure:"news" yaml:"news"`
		Upstream   UpstreamConfig   `mapstructure:"upstream" yaml:"upstream"`
		Catalog    CatalogConfig    `mapstructure:"catalog" yaml:"catalog"`
		Storage    kv.Config        `mapstructure:"storage" yaml:"storage"`
	}
)

// newViper returns a viper instance with every default registered,
// so each key can be overridden from the environment.
func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("http.port", ":3000")
	v.SetDefault("http.user_header", "X-User-ID")
	v.SetDefault("asset.symbol", conversion.DefaultAsset)
	v.SetDefault("asset.id", "bitcoin")
	v.SetDefault("asset.fallback_price", 50000.0)
	v.SetDefault("conversion.fallback_rate", conversion.FallbackRate)
	v.SetDefault("conversion.precision", int(conversion.DefaultPrecision))
	v.SetDefault("forex.url", "")
	v.SetDefault("forex.api_key", "")
	v.SetDefault("market.url", "")
	v.SetDefault("market.api_key", "")
	v.SetDefault("news.url", "")
	v.SetDefault("news.api_key", "")
	v.SetDefault("upstream.timeout", "10s")
	v.SetDefault("upstream.retries", 3)
	v.SetDefault("catalog.refresh_interval", "1h")
	v.SetDefault("catalog.postgres_dsn", "")
	v.SetDefault("storage.driver", string(kv.Memory))
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.postgres.table", "kv_store")
	v.SetDefault("storage.redis.addrs", []string{"localhost:6379"})
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.cluster", false)
	v.SetDefault("storage.redis.namespace", "coinboard")
	v.SetDefault("storage.mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("storage.mongodb.database", "coinboard")
	v.SetDefault("storage.mongodb.collection", "kv_store")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig reads configFile on top of the defaults.
// A missing file is not an error.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	cfg := Config{}

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return cfg, err
			}

			log.Debug().Str("file", configFile).Msg("configuration file not found, using defaults")
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	// currency codes are upper-case everywhere else
	cfg.Asset.Symbol = strings.ToUpper(strings.TrimSpace(cfg.Asset.Symbol))

	return cfg, nil
}

// dumpConfig renders the effective settings as YAML with secrets masked.
func dumpConfig(v *viper.Viper) ([]byte, error) {
	return yaml.Marshal(redact(v.AllSettings()))
}

func redact(settings map[string]interface{}) map[string]interface{} {
	for key, value := range settings {
		switch value := value.(type) {
		case map[string]interface{}:
			settings[key] = redact(value)
		case string:
			if value != "" && isSecret(key) {
				settings[key] = "******"
			}
		}
	}

	return settings
}

func isSecret(key string) bool {
	for _, secret := range []string{"api_key", "password", "dsn", "uri"} {
		if key == secret {
			return true
		}
	}

	return false
}
