package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	BaseURL  string `env:"BASE_URL,  default=http://localhost:8080"`

	JWTSecret      string        `env:"JWT_SECRET,       required"`
	AdminJWTSecret string        `env:"ADMIN_JWT_SECRET, required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,       default=24h"`
	AdminTokenTTL  time.Duration `env:"ADMIN_TOKEN_TTL, default=24h"`

	Mongo MongoConfig
	Redis RedisConfig
	Abuse AbuseConfig
	SMTP  SMTPConfig

	CommunityGroupLink string   `env:"COMMUNITY_GROUP_LINK"`
	AdminEmails        []string `env:"ADMIN_EMAILS, default=admin@byteverse.dev"`
	DeliveryWorkers    int      `env:"DELIVERY_WORKERS, default=8"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=byteverse"`
}

type RedisConfig struct {
	Enabled bool   `env:"REDIS_ENABLED, default=false"`
	Addr    string `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int    `env:"REDIS_DB,      default=0"`
}

// AbuseConfig tunes the abuse monitor and the blocklist. Windows are
// anchored to the first request seen from a source address.
type AbuseConfig struct {
	RateThreshold int           `env:"ABUSE_RATE_THRESHOLD, default=50"`
	RateWindow    time.Duration `env:"ABUSE_RATE_WINDOW,    default=10s"`
	ScanThreshold int           `env:"ABUSE_SCAN_THRESHOLD, default=20"`
	ScanWindow    time.Duration `env:"ABUSE_SCAN_WINDOW,    default=30s"`
	Retention     time.Duration `env:"ABUSE_RETENTION,      default=1h"`
	SweepPeriod   time.Duration `env:"ABUSE_SWEEP_PERIOD,   default=10m"`
	BlocklistTTL  time.Duration `env:"BLOCKLIST_TTL,        default=1h"`
	// FailClosed makes the blocklist gate deny all traffic when the
	// blocklist store is unreachable, instead of serving on the
	// in-process monitor alone.
	FailClosed bool     `env:"BLOCKLIST_FAIL_CLOSED, default=false"`
	Exempt     []string `env:"ABUSE_EXEMPT_ADDRS,    default=127.0.0.1,::1"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT,      default=587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	FromName string `env:"SMTP_FROM_NAME, default=ByteVerse"`
	From     string `env:"SMTP_FROM,      default=noreply@byteverse.dev"`
}

// Load reads configuration from environment variables using go-envconfig.
// The two signing secrets must be set and must differ; sharing one secret
// would let a user token pass the admin verifier.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == cfg.AdminJWTSecret {
		return nil, fmt.Errorf("config: JWT_SECRET and ADMIN_JWT_SECRET must differ")
	}
	return &cfg, nil
}
