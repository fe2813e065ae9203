package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Backend
	APIBaseURL string        `env:"API_BASE_URL"`
	UseAPI     bool          `env:"USE_API" envDefault:"false"`
	DebugAPI   bool          `env:"DEBUG_API" envDefault:"false"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"0s"` // 0: no client timeout

	// Endpoint overrides for backends whose paths differ
	Paths Paths `envPrefix:"API_PATH_"`

	// Telegram
	BotToken           string  `env:"BOT_TOKEN,required"`
	AdminIDs           []int64 `env:"ADMIN_IDS" envSeparator:","`
	DropPendingUpdates bool    `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`

	// Webhook mode is enabled when WEBHOOK_URL is set
	WebhookURL string `env:"WEBHOOK_URL"`
	Port       int    `env:"PORT" envDefault:"3000"`

	// Local mock store: file, postgres, redis or memory
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	StoreDir     string `env:"STORE_DIR" envDefault:"./data"`
	DatabaseURL  string `env:"DATABASE_URL"`
	RedisURL     string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Telegram logging
	LogTelegramChatID  int64 `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError      int   `env:"LOG_TOPIC_ERROR"`
	LogTopicBooking    int   `env:"LOG_TOPIC_BOOKING"`
	LogTopicSignup     int   `env:"LOG_TOPIC_SIGNUP"`
	LogTopicNewPackage int   `env:"LOG_TOPIC_NEW_PACKAGE"`
}

// Paths are the REST endpoints consumed from the backend.
type Paths struct {
	Packages      string `env:"PACKAGES" envDefault:"/offers"`
	Bookings      string `env:"BOOKINGS" envDefault:"/bookings"`
	Me            string `env:"ME" envDefault:"/users/me"`
	CompanyOffers string `env:"COMPANY_OFFERS" envDefault:"/company/offers"`
	SearchOffers  string `env:"SEARCH_OFFERS" envDefault:"/search_offers"`
	ChatSuggest   string `env:"CHAT_SUGGEST" envDefault:"/chat/suggest"`
	AuthLogin     string `env:"AUTH_LOGIN" envDefault:"/auth/login"`
	AuthSignup    string `env:"AUTH_SIGNUP" envDefault:"/auth/signup"`
	AuthLogout    string `env:"AUTH_LOGOUT" envDefault:"/auth/logout"`
	Analytics     string `env:"ANALYTICS" envDefault:"/company/analytics"`
	CompanyPkgs   string `env:"COMPANY_PACKAGES" envDefault:"/company/packages"`
	CompanyDests  string `env:"COMPANY_DESTINATIONS" envDefault:"/company/destinations"`
}

// DefaultPaths returns the stock endpoint layout.
func DefaultPaths() Paths {
	var p Paths
	// Defaults only; parsing an empty environment cannot fail.
	_ = env.ParseWithOptions(&p, env.Options{Environment: map[string]string{}})
	return p
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	// API mode without a base URL would send every request to a relative path.
	if c.APIBaseURL == "" {
		c.UseAPI = false
	}
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
}

// APIEnabled reports whether entity sources should talk to the backend.
func (c *Config) APIEnabled() bool {
	return c.UseAPI && c.APIBaseURL != ""
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
