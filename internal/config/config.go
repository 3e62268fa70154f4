package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// AppConfig chứa cấu hình chung cho mọi service
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"` // development, staging, production
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// defaultDBPassword chỉ dùng cho local/dev
const defaultDBPassword = "secret"

// DatabaseConfig - kết nối PostgreSQL; mỗi service dùng database riêng (Name do service quyết định)
type DatabaseConfig struct {
	Host              string        `envconfig:"DB_HOST" default:"localhost"`
	Port              int           `envconfig:"DB_PORT" default:"5432"`
	User              string        `envconfig:"DB_USER" default:"bookstore"`
	Password          string        `envconfig:"DB_PASSWORD" default:"secret"`
	SSLMode           string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns          int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns          int32         `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime   time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"5m"`
	MaxConnIdleTime   time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"1m"`
	HealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"1m"`
	MaxRetries        int           `envconfig:"DB_MAX_RETRIES" default:"5"`
	RetryDelay        time.Duration `envconfig:"DB_RETRY_DELAY" default:"1s"`
	ConnectTimeout    time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"10s"`

	Name string `ignored:"true"`
}

type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Common được nhúng vào config của từng service
type Common struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

// ========================================
// PER-SERVICE CONFIGURATION
// ========================================

type CatalogConfig struct {
	Common
	Port     string        `envconfig:"CATALOG_PORT" default:"3001"`
	DBName   string        `envconfig:"CATALOG_DB_NAME" default:"catalog"`
	CacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"10m"`
}

type AccountConfig struct {
	Common
	Port       string        `envconfig:"ACCOUNT_PORT" default:"3003"`
	DBName     string        `envconfig:"ACCOUNT_DB_NAME" default:"accounts"`
	BcryptCost int           `envconfig:"ACCOUNT_BCRYPT_COST" default:"10"`
	// 0: GET /users/{id} luôn đọc database (order service dựa vào kết quả này)
	CacheTTL   time.Duration `envconfig:"ACCOUNT_CACHE_TTL" default:"0s"`
}

type OrderConfig struct {
	Common
	Port              string        `envconfig:"ORDER_PORT" default:"3002"`
	DBName            string        `envconfig:"ORDER_DB_NAME" default:"orders"`
	AccountURL        string        `envconfig:"ORDER_ACCOUNT_URL" default:"http://localhost:3003"`
	CatalogURL        string        `envconfig:"ORDER_CATALOG_URL" default:"http://localhost:3001"`
	PeerTimeout       time.Duration `envconfig:"ORDER_PEER_TIMEOUT" default:"3s"`
	EnrichConcurrency int           `envconfig:"ORDER_ENRICH_CONCURRENCY" default:"8"`
}

// ========================================
// LOADERS
// ========================================

// loadDotEnv đọc .env nếu có (local), production dùng biến môi trường hệ thống
func loadDotEnv() {
	_ = godotenv.Load()
}

func LoadCatalog() (*CatalogConfig, error) {
	loadDotEnv()

	var cfg CatalogConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process catalog config: %w", err)
	}
	cfg.Database.Name = cfg.DBName

	if err := cfg.Common.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func LoadAccount() (*AccountConfig, error) {
	loadDotEnv()

	var cfg AccountConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process account config: %w", err)
	}
	cfg.Database.Name = cfg.DBName

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func LoadOrder() (*OrderConfig, error) {
	loadDotEnv()

	var cfg OrderConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process order config: %w", err)
	}
	cfg.Database.Name = cfg.DBName

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ========================================
// VALIDATION
// ========================================

// Validate kiểm tra các giá trị dùng chung
func (c *Common) Validate() error {
	if c.App.Environment == "production" {
		if c.Database.Password == "" || c.Database.Password == defaultDBPassword {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}
	if c.Database.MaxRetries < 1 {
		return fmt.Errorf("DB_MAX_RETRIES must be >= 1")
	}
	return nil
}

func (c *AccountConfig) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("ACCOUNT_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

func (c *OrderConfig) Validate() error {
	if err := c.Common.Validate(); err != nil {
		return err
	}
	for name, raw := range map[string]string{
		"ORDER_ACCOUNT_URL": c.AccountURL,
		"ORDER_CATALOG_URL": c.CatalogURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	if c.PeerTimeout <= 0 {
		return fmt.Errorf("ORDER_PEER_TIMEOUT must be positive")
	}
	if c.EnrichConcurrency < 1 {
		return fmt.Errorf("ORDER_ENRICH_CONCURRENCY must be >= 1")
	}
	return nil
}
