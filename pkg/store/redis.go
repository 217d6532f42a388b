package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Astreocclu/pool-visualizer/pkg/logger"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisPersister persists state payloads in Redis. Intended for kiosk and
// shared-terminal deployments where file storage does not survive sessions.
type RedisPersister struct {
	rdb    *redis.Client
	key    string
	logger logger.Logger
}

// NewRedisPersister connects to Redis and returns a persister storing the
// payload under the given key.
func NewRedisPersister(cfg RedisConfig, key string, log logger.Logger) (*RedisPersister, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	log.Infof("Connected to Redis at %s", addr)

	return &RedisPersister{
		rdb:    rdb,
		key:    key,
		logger: log,
	}, nil
}

// Close closes the Redis connection.
func (p *RedisPersister) Close() error {
	return p.rdb.Close()
}

func (p *RedisPersister) Load(ctx context.Context) ([]byte, error) {
	data, err := p.rdb.Get(ctx, p.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s from Redis: %w", p.key, err)
	}
	return data, nil
}

func (p *RedisPersister) Save(ctx context.Context, data []byte) error {
	if err := p.rdb.Set(ctx, p.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s to Redis: %w", p.key, err)
	}
	return nil
}

func (p *RedisPersister) Clear(ctx context.Context) error {
	if err := p.rdb.Del(ctx, p.key).Err(); err != nil {
		return fmt.Errorf("failed to clear %s from Redis: %w", p.key, err)
	}
	return nil
}
