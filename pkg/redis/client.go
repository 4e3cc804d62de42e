package redis

import (
	"context"
	"io"
	"time"

	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type cmdableCloser interface {
	redis.Cmdable
	io.Closer
}

type client struct {
	logger  logger.Interface
	config  *Config
	cmdable cmdableCloser
}

// NewClient creates a new Redis client with the provided logger and configuration.
// The connection is established by Connect.
func NewClient(logger logger.Interface, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

func validate(config *Config) error {
	if config == nil {
		return errors.NewErrorDetails("Redis config is nil", errors.RedisConfigError, "connect")
	}

	if len(config.Addrs) == 0 {
		return errors.NewErrorDetails("Redis addresses are empty", errors.RedisConfigError, "addrs")
	}

	if config.Mode != Standalone && config.Mode != Cluster {
		return errors.NewErrorDetails("Invalid Redis mode", errors.RedisConfigError, "mode")
	}

	if config.ConnectTimeout <= 0 {
		return errors.NewErrorDetails("Invalid Redis connect timeout", errors.RedisConfigError, "connect_timeout")
	}

	if config.PoolSize <= 0 {
		return errors.NewErrorDetails("Invalid Redis pool size", errors.RedisConfigError, "pool_size")
	}

	if config.MaxRetries < 0 {
		return errors.NewErrorDetails("Invalid Redis max retries", errors.RedisConfigError, "max_retries")
	}

	return nil
}

func (c *client) Connect(ctx context.Context) error {
	if err := validate(c.config); err != nil {
		return err
	}

	switch c.config.Mode {
	case Standalone:
		c.cmdable = redis.NewClient(&redis.Options{
			Addr:         c.config.Addrs[0],
			Username:     c.config.Username,
			Password:     c.config.Password,
			DB:           c.config.DB,
			MaxRetries:   c.config.MaxRetries,
			DialTimeout:  c.config.ConnectTimeout,
			ReadTimeout:  c.config.ConnectTimeout,
			WriteTimeout: c.config.ConnectTimeout,
			PoolSize:     c.config.PoolSize,
		})
	case Cluster:
		c.cmdable = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        c.config.Addrs,
			Username:     c.config.Username,
			Password:     c.config.Password,
			MaxRetries:   c.config.MaxRetries,
			DialTimeout:  c.config.ConnectTimeout,
			ReadTimeout:  c.config.ConnectTimeout,
			WriteTimeout: c.config.ConnectTimeout,
			PoolSize:     c.config.PoolSize,
		})
	}

	if err := c.Ping(ctx); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "Connected to Redis",
		logger.Field{Key: "mode", Value: c.config.Mode},
		logger.Field{Key: "addrs", Value: c.config.Addrs},
	)
	return nil
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.cmdable == nil {
		return nil
	}
	if err := c.cmdable.Close(); err != nil {
		return errors.NewTracer(string(errors.RedisDisconnectionError)).Wrap(err)
	}
	return nil
}

func (c *client) Ping(ctx context.Context) error {
	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewTracer(string(errors.RedisPingError)).Wrap(err)
	}
	return nil
}

// Get returns an empty string without error when key does not exist.
func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.cmdable.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewTracer(string(errors.RedisGetError)).Wrap(err)
	}
	return val, nil
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.cmdable.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.NewTracer(string(errors.RedisSetError)).Wrap(err)
	}
	return nil
}

func (c *client) Del(ctx context.Context, keys ...string) (int64, error) {
	n, err := c.cmdable.Del(ctx, keys...).Result()
	if err != nil {
		return 0, errors.NewTracer(string(errors.RedisDelError)).Wrap(err)
	}
	return n, nil
}
