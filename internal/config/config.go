package config

import (
	"flag"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL адрес API по умолчанию для клиента.
const DefaultAPIBaseURL = "http://127.0.0.1:8000/api/"

type Config struct {
	// Server-side settings
	BaseURL     string        `env:"BASE_URL"`
	DatabaseDSN string        `env:"DATABASE_URI"`
	AuthSecret  string        `env:"AUTH_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"`

	// Client-side settings
	APIBaseURL  string `env:"API_BASE_URL"`
	Storage     string `env:"CLIENT_STORAGE"`
	StoragePath string `env:"CLIENT_STORAGE_PATH"`
	Locale      string `env:"LOCALE"`

	// Shared settings
	LogLevel string `env:"LOG_LEVEL"`
	Version  bool   `env:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// значения из env служат дефолтами для флагов
	// Server flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "listen address of the API server (host:port)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres:// или путь к sqlite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "lifetime of issued tokens")
	// Client flags
	flag.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "API base URL used by the client")
	flag.StringVar(&cfg.Storage, "storage", cfg.Storage, "local storage backend: fs or sqlite")
	flag.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "path of the local storage (dir for fs, file for sqlite)")
	flag.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for number formatting")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	// BaseURL сервера: только "address:port", иначе дефолт
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "127.0.0.1:8000"
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "vitrin.sqlite"
	}

	cfg.APIBaseURL = normalizeAPIBaseURL(cfg.APIBaseURL)
	switch cfg.Storage {
	case "fs", "sqlite":
	default:
		cfg.Storage = "fs"
	}
	if cfg.Locale == "" {
		cfg.Locale = "fa-IR"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}

// normalizeAPIBaseURL accepts an absolute http(s) URL and makes sure it ends
// with a slash so relative endpoints resolve under it.
func normalizeAPIBaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return DefaultAPIBaseURL
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}
