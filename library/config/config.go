package config

import (
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Astemirdum/library-lending/pkg/auth"
	"github.com/Astemirdum/library-lending/pkg/circuit_breaker"
	"github.com/Astemirdum/library-lending/pkg/kafka"
	"github.com/Astemirdum/library-lending/pkg/logger"
	"github.com/Astemirdum/library-lending/pkg/postgres"
	"github.com/Astemirdum/library-lending/pkg/storage"
	"github.com/Astemirdum/library-lending/pkg/tracing"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LIBRARY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LIBRARY_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
	CORSOrigins  []string      `envconfig:"LIBRARY_CORS_ORIGINS" default:"http://localhost:5173"`
}

type Redis struct {
	// URL in redis:// form; caching is disabled when empty.
	URL            string        `envconfig:"REDIS_URL"`
	TTL            time.Duration `envconfig:"REDIS_TTL" default:"60s"`
	CircuitBreaker circuit_breaker.Config
}

type Config struct {
	Server   HTTPServer     `yaml:"server"`
	Database postgres.DB    `yaml:"db"`
	Log      logger.Log     `yaml:"log"`
	Kafka    kafka.Config   `yaml:"kafka"`
	Redis    Redis          `yaml:"redis"`
	Auth     auth.Config    `yaml:"auth"`
	Tracing  tracing.Config `yaml:"tracing"`
	Storage  storage.Config `yaml:"storage"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment. Options set defaults that the environment may override.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
