package redis

import "time"

// Mode represents the mode of the Redis client.
type Mode string

const (
	// Standalone Mode is for a single Redis instance.
	Standalone Mode = "standalone"
	// Cluster Mode is for a Redis cluster setup.
	Cluster Mode = "cluster"
)

// Config holds the configuration for the Redis client.
type Config struct {
	Mode     Mode   `env:"MODE" envDefault:"standalone"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`

	Addrs []string `env:"ADDRS" envDefault:"localhost:6379"`

	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
	MaxRetries     int           `env:"MAX_RETRIES" envDefault:"3"`
	PoolSize       int           `env:"POOL_SIZE" envDefault:"4"`
}

// DefaultConfig returns a default configuration for the Redis client.
func DefaultConfig() *Config {
	return &Config{
		Mode:           Standalone,
		Addrs:          []string{"localhost:6379"},
		ConnectTimeout: 5 * time.Second,
		MaxRetries:     3,
		PoolSize:       4,
	}
}

// Validate checks that the configuration can be used to build a client.
func (c *Config) Validate() error {
	return validate(c)
}
