package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	Log      string
	LogLevel string
	Env      string // dev|prod

	AutoMigrate bool
	CORSOrigins []string
	PageSize    int
}

// LoadConfig loads .env, reads the environment and applies defaults.
// It does not log anything so that config stays independent of the logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	pageSize, err := strconv.Atoi(def(os.Getenv("PAGE_SIZE"), "10"))
	if err != nil || pageSize <= 0 {
		return nil, fmt.Errorf("invalid PAGE_SIZE %q", os.Getenv("PAGE_SIZE"))
	}

	autoMigrate, err := strconv.ParseBool(def(os.Getenv("AUTO_MIGRATE"), "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_MIGRATE %q: %w", os.Getenv("AUTO_MIGRATE"), err)
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		AutoMigrate: autoMigrate,
		CORSOrigins: splitList(def(os.Getenv("CORS_ORIGINS"), "*")),
		PageSize:    pageSize,
	}

	return cfg, nil
}

// Validate returns warnings and a fatal error when the config is unusable.
func (c *Config) Validate() (warnings []string, err error) {
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
	}

	if c.Env == "prod" && len(c.CORSOrigins) == 1 && c.CORSOrigins[0] == "*" {
		warnings = append(warnings, "CORS_ORIGINS allows any origin in prod")
	}

	return warnings, nil
}

// GetDSN returns the full DSN, password included.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe returns the DSN with the password masked, for logs.
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetMigrateURL returns the DSN in the form the migrate pgx/v5 driver expects.
func (c *Config) GetMigrateURL() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
