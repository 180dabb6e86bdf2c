package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedis подключается к Redis. Без адреса или при недоступном сервере
// возвращает nil, и кэш справочника отключается.
func NewRedis(ctx context.Context, addr, password string, logger *zap.Logger) *redis.Client {
	if addr == "" {
		logger.Warn("REDIS_ADDR not set, directory cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to connect to Redis, directory cache disabled",
			zap.String("addr", addr),
			zap.Error(err),
		)
		_ = rdb.Close()
		return nil
	}

	logger.Info("✅ Connected to Redis", zap.String("addr", addr))
	return rdb
}
