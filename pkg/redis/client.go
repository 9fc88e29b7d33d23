// Package redis wraps go-redis behind a small interface so sinks can be
// tested without a live server.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/muhammadchandra19/tickpulse/pkg/errors"
)

//go:generate mockgen -source=client.go -destination=mock/client_mock.go -package=mock

// Publisher is the subset of redis operations the signal bus needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Config is the Redis client configuration.
type Config struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}

// Client wraps a go-redis client.
type Client struct {
	rdb *redis.Client
}

// Ensure Client implements Publisher interface
var _ Publisher = (*Client)(nil)

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, config Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, pkgerrors.WrapCoded(pkgerrors.RedisConnectionError, "ping "+config.Addr, err)
	}

	return &Client{rdb: rdb}, nil
}

// Publish sends a raw payload to a pub/sub channel.
func (c *Client) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := c.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return pkgerrors.WrapCoded(pkgerrors.RedisPublishError, "publish "+channel, err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Underlying exposes the raw go-redis client for advanced operations.
func (c *Client) Underlying() *redis.Client {
	return c.rdb
}
