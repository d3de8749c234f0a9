package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string
	LogMode  string // prod|dev

	DBDriver string
	DBDSN    string

	StoreDriver      string // fs|sql|redis|memory
	StoreBasePath    string // for fs
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SessionTTL       time.Duration // redis only; 0 = no expiry
	SessionKeyPrefix string

	AuthHMACSecret string
	TokenTTL       time.Duration
	AdminUser      string
	AdminPassHash  string // bcrypt; empty disables admin login

	CORSOrigins []string

	AutoAdvanceDelay time.Duration
	PdftotextBin     string
	MaxPages         int
	MaxUploadBytes   int64
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	logMode := "dev"
	if mode == ModeOnline {
		logMode = "prod"
	}
	return Config{
		Mode:     mode,
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),
		LogMode:  envOr("LOG_MODE", logMode),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		StoreDriver:      envOr("STORE_DRIVER", "fs"),
		StoreBasePath:    envOr("STORE_BASE_PATH", "./data/sessions"),
		RedisAddr:        envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          envInt("REDIS_DB", 0),
		SessionTTL:       envDuration("SESSION_TTL", 0),
		SessionKeyPrefix: envOr("SESSION_KEY_PREFIX", "mcq_pdf_reviewer_v1"),

		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "dev-secret-change-me"),
		TokenTTL:       envDuration("TOKEN_TTL", 12*time.Hour),
		AdminUser:      envOr("ADMIN_USER", "admin"),
		AdminPassHash:  os.Getenv("ADMIN_PASS_HASH"),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),

		AutoAdvanceDelay: envDuration("AUTO_ADVANCE_DELAY", 1200*time.Millisecond),
		PdftotextBin:     envOr("PDFTOTEXT_BIN", "pdftotext"),
		MaxPages:         envInt("MAX_PAGES", 0),
		MaxUploadBytes:   int64(envInt("MAX_UPLOAD_BYTES", 32<<20)),
	}
}

// Validate reports every setting that cannot work, joined.
func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeOffline, ModeOnline:
	default:
		errs = append(errs, fmt.Errorf("MODE: unknown mode %q", c.Mode))
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported %q", c.DBDriver))
	}
	switch c.StoreDriver {
	case "fs", "sql", "redis", "memory":
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER: unsupported %q", c.StoreDriver))
	}
	if c.StoreDriver == "redis" && c.RedisAddr == "" {
		errs = append(errs, errors.New("REDIS_ADDR: required for redis store"))
	}
	if c.Mode == ModeOnline && c.AuthHMACSecret == "dev-secret-change-me" {
		errs = append(errs, errors.New("AUTH_HMAC_SECRET: must be set in online mode"))
	}
	if c.AutoAdvanceDelay <= 0 {
		errs = append(errs, errors.New("AUTO_ADVANCE_DELAY: must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES: must be positive"))
	}
	return errors.Join(errs...)
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}
func envDuration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
