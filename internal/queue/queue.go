package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Options parameterise the Redis queue client.
type Options struct {
	URL        string
	PopTimeout time.Duration
}

// Client wraps a Redis connection for list-based queue operations.
// A fila fornece entrega at-least-once, sem ack: consumidores devem
// tolerar redelivery e itens fora de ordem.
type Client struct {
	rdb    *redis.Client
	opts   Options
	logger zerolog.Logger
}

// New connects to Redis using a redis:// URL.
func New(opts Options, logger zerolog.Logger) (*Client, error) {
	if opts.URL == "" {
		return nil, errors.New("queue url is required")
	}
	if opts.PopTimeout <= 0 {
		opts.PopTimeout = 5 * time.Second
	}

	parsed, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse queue url: %w", err)
	}

	return &Client{
		rdb:    redis.NewClient(parsed),
		opts:   opts,
		logger: logger.With().Str("component", "queue").Logger(),
	}, nil
}

// Ping verifies connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Pop blocks on the named list for up to PopTimeout and returns one raw
// payload. A nil payload with nil error means the wait timed out and the
// caller should back off briefly before retrying.
func (c *Client) Pop(ctx context.Context, queue string) ([]byte, error) {
	res, err := c.rdb.BRPop(ctx, c.opts.PopTimeout, queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("brpop %s: %w", queue, err)
	}
	// BRPop returns [key, value].
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}

// Publish marshals v and pushes it onto the named list.
func (c *Client) Publish(ctx context.Context, queue string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := c.rdb.LPush(ctx, queue, payload).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", queue, err)
	}
	c.logger.Debug().Str("queue", queue).Int("bytes", len(payload)).Msg("payload published")
	return nil
}
