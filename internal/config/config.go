package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

const envPrefix = "SALESDOCS"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Email     EmailConfig
	Redis     RedisConfig
	Renderer  RendererConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Numbering NumberingConfig
	Documents DocumentsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpen         int           `mapstructure:"max_open"`
	MaxIdle         int           `mapstructure:"max_idle"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds the settings used to verify bearer tokens issued by the auth service.
type JWTConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
}

// S3Config holds the PDF archive bucket settings. An empty bucket disables archiving.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// RedisConfig holds the print configuration store connection. An empty address keeps
// print configurations in process memory.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// RendererConfig points at the external PDF rendering service.
type RendererConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig holds the API rate limit in limiter's formatted notation, e.g. "300-M".
type RateLimitConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Rate    string `mapstructure:"rate"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// NumberingConfig controls how document numbers are generated.
type NumberingConfig struct {
	Timezone   string `mapstructure:"timezone"`
	MaxRetries int    `mapstructure:"max_retries"`
	Location   *time.Location
}

// DocumentsConfig holds document lifecycle policy.
type DocumentsConfig struct {
	RequireAcceptedQuotation bool `mapstructure:"require_accepted_quotation"`
	QuotationDueDays         int  `mapstructure:"quotation_due_days"`
	InvoiceDueDays           int  `mapstructure:"invoice_due_days"`
	JobDueDays               int  `mapstructure:"job_due_days"`
}

// Load reads configuration from environment variables with the SALESDOCS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "salesdocs")
	v.SetDefault("db.password", "salesdocs_secret")
	v.SetDefault("db.name", "salesdocs")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.conn_max_lifetime", "30m")

	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.audience", "")

	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 900)

	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "documents@example.com")
	v.SetDefault("email.from_name", "Sales Documents")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "salesdocs")

	v.SetDefault("renderer.url", "")
	v.SetDefault("renderer.timeout", "30s")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rate", "300-M")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	v.SetDefault("numbering.timezone", "Asia/Kolkata")
	v.SetDefault("numbering.max_retries", 3)

	v.SetDefault("documents.require_accepted_quotation", false)
	v.SetDefault("documents.quotation_due_days", 30)
	v.SetDefault("documents.invoice_due_days", 30)
	v.SetDefault("documents.job_due_days", 7)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                          "SALESDOCS_SERVER_PORT",
		"server.read_timeout":                  "SALESDOCS_SERVER_READ_TIMEOUT",
		"server.write_timeout":                 "SALESDOCS_SERVER_WRITE_TIMEOUT",
		"server.environment":                   "SALESDOCS_SERVER_ENVIRONMENT",
		"db.host":                              "SALESDOCS_DB_HOST",
		"db.port":                              "SALESDOCS_DB_PORT",
		"db.user":                              "SALESDOCS_DB_USER",
		"db.password":                          "SALESDOCS_DB_PASSWORD",
		"db.name":                              "SALESDOCS_DB_NAME",
		"db.sslmode":                           "SALESDOCS_DB_SSLMODE",
		"db.max_open":                          "SALESDOCS_DB_MAX_OPEN",
		"db.max_idle":                          "SALESDOCS_DB_MAX_IDLE",
		"db.conn_max_lifetime":                 "SALESDOCS_DB_CONN_MAX_LIFETIME",
		"jwt.secret":                           "SALESDOCS_JWT_SECRET",
		"jwt.issuer":                           "SALESDOCS_JWT_ISSUER",
		"jwt.audience":                         "SALESDOCS_JWT_AUDIENCE",
		"s3.region":                            "SALESDOCS_S3_REGION",
		"s3.bucket":                            "SALESDOCS_S3_BUCKET",
		"s3.endpoint":                          "SALESDOCS_S3_ENDPOINT",
		"s3.access_key":                        "SALESDOCS_S3_ACCESS_KEY",
		"s3.secret_key":                        "SALESDOCS_S3_SECRET_KEY",
		"s3.presign_expiry":                    "SALESDOCS_S3_PRESIGN_EXPIRY",
		"email.provider":                       "SALESDOCS_EMAIL_PROVIDER",
		"email.region":                         "SALESDOCS_EMAIL_REGION",
		"email.from_address":                   "SALESDOCS_EMAIL_FROM_ADDRESS",
		"email.from_name":                      "SALESDOCS_EMAIL_FROM_NAME",
		"redis.addr":                           "SALESDOCS_REDIS_ADDR",
		"redis.password":                       "SALESDOCS_REDIS_PASSWORD",
		"redis.db":                             "SALESDOCS_REDIS_DB",
		"redis.key_prefix":                     "SALESDOCS_REDIS_KEY_PREFIX",
		"renderer.url":                         "SALESDOCS_RENDERER_URL",
		"renderer.token":                       "SALESDOCS_RENDERER_TOKEN",
		"renderer.timeout":                     "SALESDOCS_RENDERER_TIMEOUT",
		"rate_limit.enabled":                   "SALESDOCS_RATE_LIMIT_ENABLED",
		"rate_limit.rate":                      "SALESDOCS_RATE_LIMIT_RATE",
		"cors.allowed_origins":                 "SALESDOCS_CORS_ALLOWED_ORIGINS",
		"numbering.timezone":                   "SALESDOCS_NUMBERING_TIMEZONE",
		"numbering.max_retries":                "SALESDOCS_NUMBERING_MAX_RETRIES",
		"documents.require_accepted_quotation": "SALESDOCS_DOCUMENTS_REQUIRE_ACCEPTED_QUOTATION",
		"documents.quotation_due_days":         "SALESDOCS_DOCUMENTS_QUOTATION_DUE_DAYS",
		"documents.invoice_due_days":           "SALESDOCS_DOCUMENTS_INVOICE_DUE_DAYS",
		"documents.job_due_days":               "SALESDOCS_DOCUMENTS_JOB_DUE_DAYS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if SALESDOCS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SALESDOCS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:            v.GetString("db.host"),
		Port:            v.GetInt("db.port"),
		User:            v.GetString("db.user"),
		Password:        v.GetString("db.password"),
		Name:            v.GetString("db.name"),
		SSLMode:         v.GetString("db.sslmode"),
		MaxOpen:         v.GetInt("db.max_open"),
		MaxIdle:         v.GetInt("db.max_idle"),
		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
	}
	cfg.JWT = JWTConfig{
		Secret:   v.GetString("jwt.secret"),
		Issuer:   v.GetString("jwt.issuer"),
		Audience: v.GetString("jwt.audience"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Redis = RedisConfig{
		Addr:      v.GetString("redis.addr"),
		Password:  v.GetString("redis.password"),
		DB:        v.GetInt("redis.db"),
		KeyPrefix: v.GetString("redis.key_prefix"),
	}
	cfg.Renderer = RendererConfig{
		URL:     v.GetString("renderer.url"),
		Token:   v.GetString("renderer.token"),
		Timeout: v.GetDuration("renderer.timeout"),
	}
	cfg.RateLimit = RateLimitConfig{
		Enabled: v.GetBool("rate_limit.enabled"),
		Rate:    v.GetString("rate_limit.rate"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	loc, err := time.LoadLocation(v.GetString("numbering.timezone"))
	if err != nil {
		return nil, fmt.Errorf("config: numbering.timezone: %w", err)
	}
	cfg.Numbering = NumberingConfig{
		Timezone:   v.GetString("numbering.timezone"),
		MaxRetries: v.GetInt("numbering.max_retries"),
		Location:   loc,
	}
	cfg.Documents = DocumentsConfig{
		RequireAcceptedQuotation: v.GetBool("documents.require_accepted_quotation"),
		QuotationDueDays:         v.GetInt("documents.quotation_due_days"),
		InvoiceDueDays:           v.GetInt("documents.invoice_due_days"),
		JobDueDays:               v.GetInt("documents.job_due_days"),
	}

	if cfg.Server.Environment == "production" && cfg.JWT.Secret == "change-me-in-production" {
		return nil, fmt.Errorf("config: jwt.secret must be set in production")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
