package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	testCases := []struct {
		name     string
		env      map[string]string
		assertFn func(t *testing.T, cfg *Config, err error)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			assertFn: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, "input.csv", cfg.InputPath)
				assert.Equal(t, "output.csv", cfg.OutputPath)
				assert.Equal(t, SourceCSV, cfg.Source)
				assert.Equal(t, 4, cfg.Parallelism)
				assert.Equal(t, "info", cfg.LogConfig.Level)
				assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaConfig.Brokers)
				assert.Equal(t, 5*time.Second, cfg.KafkaConfig.IdleTimeout)
				assert.Equal(t, "book", cfg.RedisConfig.PrefixKey)
				assert.Equal(t, 5432, cfg.PostgresConfig.Port)
				assert.False(t, cfg.PublishTrades)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"INPUT_PATH":          "orders.csv",
				"SOURCE":              "kafka",
				"PARALLELISM":         "2",
				"LOG_LEVEL":           "debug",
				"KAFKA_BROKERS":       "k1:9092,k2:9092",
				"KAFKA_IDLE_TIMEOUT":  "250ms",
				"REDIS_ADDRESS":       "r1:6379",
				"POSTGRES_DATABASE":   "ledger",
				"SQLITE_PATH":         ":memory:",
				"PUBLISH_TRADES":      "true",
				"PERSIST_SQLITE":      "true",
				"KAFKA_TRADES_TOPIC":  "fills",
				"KAFKA_MAX_MESSAGES":  "10",
				"REDIS_PREFIX_KEY":    "snap",
				"LOG_MAX_BACKUPS":     "7",
				"POSTGRES_HOST":       "db",
				"OUTPUT_PATH":         "ledger.csv",
				"KAFKA_ORDERS_TOPIC":  "events",
				"SNAPSHOT_BOOK":       "true",
				"PERSIST_POSTGRES":    "true",
			},
			assertFn: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, "orders.csv", cfg.InputPath)
				assert.Equal(t, "ledger.csv", cfg.OutputPath)
				assert.Equal(t, SourceKafka, cfg.Source)
				assert.Equal(t, 2, cfg.Parallelism)
				assert.Equal(t, "debug", cfg.LogConfig.Level)
				assert.Equal(t, 7, cfg.LogConfig.MaxBackups)
				assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
				assert.Equal(t, 250*time.Millisecond, cfg.KafkaConfig.IdleTimeout)
				assert.Equal(t, 10, cfg.KafkaConfig.MaxMessages)
				assert.Equal(t, "events", cfg.KafkaConfig.OrdersTopic)
				assert.Equal(t, "fills", cfg.KafkaConfig.TradesTopic)
				assert.Equal(t, []string{"r1:6379"}, cfg.RedisConfig.Addrs)
				assert.Equal(t, "snap", cfg.RedisConfig.PrefixKey)
				assert.Equal(t, "ledger", cfg.PostgresConfig.Database)
				assert.Equal(t, "db", cfg.PostgresConfig.Host)
				assert.Equal(t, ":memory:", cfg.SQLiteConfig.Path)
				assert.True(t, cfg.PublishTrades)
				assert.True(t, cfg.SnapshotBook)
				assert.True(t, cfg.PersistPostgres)
				assert.True(t, cfg.PersistSQLite)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg := &Config{}
			err := Load(cfg)
			tc.assertFn(t, cfg, err)
		})
	}
}
