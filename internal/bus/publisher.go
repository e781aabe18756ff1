package bus

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/docukit/docgraph-backend/internal/logger"
	"github.com/docukit/docgraph-backend/internal/utils"
)

// Publisher is the outbound notification contract: fire-and-forget strings
// on a named channel. A publish failure is the caller's to surface; it must
// never undo the mutation that preceded it.
type Publisher interface {
	Publish(ctx context.Context, channel, message string) error
	Close() error
}

type redisPublisher struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewRedisPublisher(log *logger.Logger) (Publisher, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "localhost:6379", log))
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisPublisher{
		log: log.With("service", "RedisPublisher"),
		rdb: rdb,
	}, nil
}

func (p *redisPublisher) Publish(ctx context.Context, channel, message string) error {
	if p == nil || p.rdb == nil {
		return fmt.Errorf("redis publisher not initialized")
	}
	if err := p.rdb.Publish(ctx, channel, message).Err(); err != nil {
		p.log.Warn("publish failed", "channel", channel, "error", err)
		return err
	}
	return nil
}

func (p *redisPublisher) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}
