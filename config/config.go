package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Mode string `env:"GIN_MODE" envDefault:"debug"`
}

type UpstreamConfig struct {
	BaseURL        string        `env:"UPSTREAM_BASE_URL"`
	RequestTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET"`
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"staffdesk_session"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	Secure     bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

type SettingsConfig struct {
	// Dir is where the file-backed settings store keeps its JSON documents.
	Dir string `env:"SETTINGS_DIR" envDefault:"./data/settings"`
	// DatabaseURL switches the settings store to Postgres when set.
	DatabaseURL string `env:"SETTINGS_DATABASE_URL"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	Name     string `env:"DB_NAME" envDefault:"staffdesk"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Name, d.Password, d.SSLMode,
	)
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Settings SettingsConfig
	Database DatabaseConfig
	CORS     CORSConfig
}

// Load reads .env files when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(".env", ".env.local"); err != nil {
		// .env files are optional; real deployments set the environment directly.
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("config: failed to parse environment: %v", err)
	}
	return cfg
}
