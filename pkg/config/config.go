package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/batch-matcher/pkg/postgresql"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional .env file.
func Load[T any](cfg T) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return env.Parse(cfg)
}

// Source selects where order events are read from.
type Source string

const (
	// SourceCSV reads events from the file at InputPath.
	SourceCSV Source = "csv"
	// SourceKafka reads events from the orders topic until it goes idle.
	SourceKafka Source = "kafka"
)

// Config holds the configuration for the batch matcher.
type Config struct {
	InputPath   string `env:"INPUT_PATH" envDefault:"input.csv"`
	OutputPath  string `env:"OUTPUT_PATH" envDefault:"output.csv"`
	Source      Source `env:"SOURCE" envDefault:"csv"`
	Parallelism int    `env:"PARALLELISM" envDefault:"4"`
	TraceEvents bool   `env:"TRACE_EVENTS" envDefault:"false"`

	LogConfig      `envPrefix:"LOG_"`
	KafkaConfig    `envPrefix:"KAFKA_"`
	RedisConfig    `envPrefix:"REDIS_"`
	PostgresConfig postgresql.Config `envPrefix:"POSTGRES_"`
	SQLiteConfig   `envPrefix:"SQLITE_"`

	PublishTrades   bool `env:"PUBLISH_TRADES" envDefault:"false"`
	SnapshotBook    bool `env:"SNAPSHOT_BOOK" envDefault:"false"`
	PersistPostgres bool `env:"PERSIST_POSTGRES" envDefault:"false"`
	PersistSQLite   bool `env:"PERSIST_SQLITE" envDefault:"false"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level      string `env:"LEVEL" envDefault:"info"`
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"3"`
}

// KafkaConfig holds the configuration for the order source and the trade publisher.
type KafkaConfig struct {
	Brokers     []string      `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	OrdersTopic string        `env:"ORDERS_TOPIC" envDefault:"orders"`
	GroupID     string        `env:"GROUP_ID" envDefault:"batch-matcher"`
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"5s"`
	MaxMessages int           `env:"MAX_MESSAGES" envDefault:"0"`
	TradesTopic string        `env:"TRADES_TOPIC" envDefault:"trades"`
}

// RedisConfig holds the configuration for the snapshot store.
type RedisConfig struct {
	Addrs     []string `env:"ADDRESS" envSeparator:"," envDefault:"localhost:6379"`
	Password  string   `env:"PASSWORD" envDefault:""`
	Username  string   `env:"USERNAME" envDefault:""`
	DB        int      `env:"DB" envDefault:"0"`
	PrefixKey string   `env:"PREFIX_KEY" envDefault:"book"`
}

// SQLiteConfig holds the configuration for the embedded ledger store.
type SQLiteConfig struct {
	Path string `env:"PATH" envDefault:"ledger.db"`
}
