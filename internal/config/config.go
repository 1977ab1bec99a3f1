package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio y de la CLI.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// DatabaseURL opcional: si esta presente el corpus de roles se lee de Postgres.
	DatabaseURL           string        `env:"DATABASE_URL"`
	DBMaxConns            int32         `env:"DB_MAX_CONNS" envDefault:"4"`
	RoleCorpusPath        string        `env:"ROLE_CORPUS_PATH" envDefault:"data/career_roles.csv"`
	CorpusRefreshInterval time.Duration `env:"CORPUS_REFRESH_INTERVAL" envDefault:"0s"`

	ClassifierModelPath string        `env:"CLASSIFIER_MODEL_PATH"`
	ClassifierURL       string        `env:"CLASSIFIER_URL"`
	ClassifierTimeout   time.Duration `env:"CLASSIFIER_TIMEOUT" envDefault:"10s"`

	RedisAddr              string        `env:"REDIS_ADDR"`
	RedisPassword          string        `env:"REDIS_PASSWORD"`
	RedisDB                int           `env:"REDIS_DB" envDefault:"0"`
	RecommendationCacheTTL time.Duration `env:"RECOMMENDATION_CACHE_TTL" envDefault:"15m"`
	RateLimitWindow        time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitMax           int           `env:"RATE_LIMIT_MAX" envDefault:"30"`

	// JWTSecret vacio deshabilita la autenticacion de la API.
	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`

	LogJSON  bool `env:"LOG_JSON" envDefault:"false"`
	LogDebug bool `env:"LOG_DEBUG" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
