package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("USE_API", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.UseAPI, "api mode needs a base url")
	assert.False(t, cfg.APIEnabled())
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.Equal(t, "./data", cfg.StoreDir)
	assert.Equal(t, 3000, cfg.Port)
	assert.Zero(t, cfg.APITimeout, "requests are bounded only by their context")
	assert.Equal(t, DefaultPaths(), cfg.Paths)
}

func TestLoadRequiresBotToken(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BOT_TOKEN", "")
	require.NoError(t, os.Unsetenv("BOT_TOKEN"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("API_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("USE_API", "true")
	t.Setenv("API_PATH_PACKAGES", "/v2/offers")
	t.Setenv("STORE_BACKEND", " Redis ")
	t.Setenv("ADMIN_IDS", "1,42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1", cfg.APIBaseURL)
	assert.True(t, cfg.APIEnabled())
	assert.Equal(t, "/v2/offers", cfg.Paths.Packages)
	assert.Equal(t, "/bookings", cfg.Paths.Bookings)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.True(t, cfg.IsAdmin(42))
	assert.False(t, cfg.IsAdmin(7))
}

func TestDefaultPaths(t *testing.T) {
	p := DefaultPaths()
	assert.Equal(t, "/offers", p.Packages)
	assert.Equal(t, "/users/me", p.Me)
	assert.Equal(t, "/search_offers", p.SearchOffers)
	assert.Equal(t, "/company/offers", p.CompanyOffers)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "nonsense"}).SlogLevel())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
