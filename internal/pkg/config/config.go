package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type StoreConfig struct {
	// Backend selects the snapshot backend: "file" or "mongo".
	Backend string `env:"STORE_BACKEND, default=file"`
	Path    string `env:"SNAPSHOT_PATH, default=./data/ledger.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ledger"`
}

type RedisConfig struct {
	// Addr enables the Redis-backed login throttle when non-empty.
	Addr             string `env:"REDIS_ADDR"`
	DB               int    `env:"REDIS_DB, default=0"`
	MaxLoginFailures int64  `env:"MAX_LOGIN_FAILURES, default=10"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
