package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadConfig_Defaults(t *testing.T) {
	asserts := require.New(t)

	cfg, err := LoadConfig(newViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	asserts.NoError(err)

	asserts.Equal(":3000", cfg.HTTP.Port)
	asserts.Equal("X-User-ID", cfg.HTTP.UserHeader)
	asserts.Equal("BTC", cfg.Asset.Symbol)
	asserts.Equal("bitcoin", cfg.Asset.ID)
	asserts.Equal(50000.0, cfg.Asset.FallbackPrice)
	asserts.Equal(79.33, cfg.Conversion.FallbackRate)
	asserts.Equal(6, cfg.Conversion.Precision)
	asserts.Equal(10*time.Second, cfg.Upstream.Timeout)
	asserts.Equal(3, cfg.Upstream.Retries)
	asserts.Equal(time.Hour, cfg.Catalog.RefreshInterval)
	asserts.Equal("memory", cfg.Storage.Driver)
	asserts.Equal([]string{"localhost:6379"}, cfg.Storage.Redis.Addrs)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	asserts := require.New(t)

	file := filepath.Join(t.TempDir(), "config.yaml")
	asserts.NoError(os.WriteFile(file, []byte(`
http:
  port: ":8080"
asset:
  symbol: ETH
  id: ethereum
upstream:
  timeout: 3s
storage:
  driver: redis
  redis:
    addrs: ["redis:6379"]
`), 0o600))

	t.Setenv("COINBOARD_ASSET_FALLBACK_PRICE", "3000")
	t.Setenv("COINBOARD_HTTP_PORT", ":9090")

	cfg, err := LoadConfig(newViper(), file)
	asserts.NoError(err)

	asserts.Equal(":9090", cfg.HTTP.Port)
	asserts.Equal("ETH", cfg.Asset.Symbol)
	asserts.Equal("ethereum", cfg.Asset.ID)
	asserts.Equal(3000.0, cfg.Asset.FallbackPrice)
	asserts.Equal(3*time.Second, cfg.Upstream.Timeout)
	asserts.Equal("redis", cfg.Storage.Driver)
	asserts.Equal([]string{"redis:6379"}, cfg.Storage.Redis.Addrs)
}

func TestLoadConfig_NormalisesAssetSymbol(t *testing.T) {
	asserts := require.New(t)

	t.Setenv("COINBOARD_ASSET_SYMBOL", " eth ")

	cfg, err := LoadConfig(newViper(), "")
	asserts.NoError(err)
	asserts.Equal("ETH", cfg.Asset.Symbol)
}

func TestLoadConfig_Malformed(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("http: [\n"), 0o600))

	_, err := LoadConfig(newViper(), file)
	require.Error(t, err)
}

func TestDumpConfig_RedactsSecrets(t *testing.T) {
	asserts := require.New(t)

	t.Setenv("COINBOARD_MARKET_API_KEY", "CG-secret")

	v := newViper()
	_, err := LoadConfig(v, "")
	asserts.NoError(err)

	content, err := dumpConfig(v)
	asserts.NoError(err)
	asserts.NotContains(string(content), "CG-secret")

	settings := map[string]interface{}{}
	asserts.NoError(yaml.Unmarshal(content, &settings))

	marketSettings := settings["market"].(map[string]interface{})
	asserts.Equal("******", marketSettings["api_key"])

	httpSettings := settings["http"].(map[string]interface{})
	asserts.Equal(":3000", httpSettings["port"])
}
