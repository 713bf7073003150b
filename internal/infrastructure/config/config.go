package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,           default=8080"`
	Env           string `env:"ENV,            default=development"`
	JWTSecret     string `env:"JWT_SECRET"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL, default=http://localhost:8080"`

	// ReservationTTLHours is how long a hold stays ACTIVE before it lapses.
	ReservationTTLHours int `env:"RESERVATION_TTL_HOURS, default=72"`

	Mongo    MongoConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Metadata MetadataConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=library_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig configures the overdue/activation mail sender. When Host is
// empty the service falls back to a log-only sender.
type SMTPConfig struct {
	Host string `env:"SMTP_HOST"`
	Port int    `env:"SMTP_PORT, default=25"`
	From string `env:"SMTP_FROM, default=library@localhost"`
}

// MetadataConfig configures the external book-metadata search.
type MetadataConfig struct {
	BaseURL         string `env:"METADATA_BASE_URL, default=https://www.googleapis.com/books/v1"`
	CacheTTLMinutes int    `env:"METADATA_CACHE_TTL_MINUTES, default=15"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
