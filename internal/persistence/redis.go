package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/placement-portal/experience-service/internal/config"
)

// Redis holds the client used to forward domain events. A zero value means
// forwarding is switched off.
type Redis struct {
	Client  *redis.Client
	Channel string
}

// NewRedis builds the event forwarding client. An empty address disables it.
// An unreachable server is logged and left to the readiness check, since
// go-redis reconnects on its own.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	opts, ok := redisOptions(cfg)
	if !ok {
		logger.Info("REDIS_ADDR not provided; event forwarding disabled")
		return &Redis{}
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.String("channel", cfg.EventsChannel))
	}
	return &Redis{Client: client, Channel: cfg.EventsChannel}
}

func redisOptions(cfg config.RedisConfig) (*redis.Options, bool) {
	if cfg.Addr == "" {
		return nil, false
	}
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Second,
	}, true
}

// Enabled reports whether events are forwarded.
func (r *Redis) Enabled() bool {
	return r != nil && r.Client != nil
}

// Close closes the client.
func (r *Redis) Close() {
	if r.Enabled() {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
