package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

type HTTPConfig struct {
	Port        string `env:"PORT" envDefault:"5000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
}

type MongoConfig struct {
	URL      string `env:"MONGO_URL,required,notEmpty"`
	Database string `env:"MONGO_DB" envDefault:"Cakeries_bd"`
}

type AuthConfig struct {
	TokenSecret string        `env:"ACCESS_TOKEN_SECRET,required,notEmpty"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

type PaymentConfig struct {
	StripeKey string `env:"STRIPE_SECRET_KEY"`
	Currency  string `env:"PAYMENT_CURRENCY" envDefault:"usd"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR"`
	RoleCacheTTL time.Duration `env:"ROLE_CACHE_TTL" envDefault:"5m"`
}

type RabbitConfig struct {
	URL      string `env:"RABBIT_URL"`
	Exchange string `env:"RABBIT_EXCHANGE" envDefault:"cakeries.events"`
}

type Common struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"cakeries"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SentryDSN   string `env:"SENTRY_DSN"`
	Environment string `env:"APP_ENV" envDefault:"development"`
}

type Config struct {
	Common  Common
	HTTP    HTTPConfig
	Mongo   MongoConfig
	Auth    AuthConfig
	Payment PaymentConfig
	Redis   RedisConfig
	Rabbit  RabbitConfig
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Auth.TokenTTL <= 0 {
		return Config{}, errors.New("TOKEN_TTL must be positive")
	}

	return cfg, nil
}
