// Package wire 提供依赖注入配置
package wire

import (
	"z-novel-blueprint-api/internal/config"
	"z-novel-blueprint-api/internal/infrastructure/persistence/postgres"
	"z-novel-blueprint-api/internal/infrastructure/persistence/redis"
)

// DataLayer 数据层依赖容器
type DataLayer struct {
	PgClient      *postgres.Client
	TxManager     *postgres.TxManager
	ThreadRepo    *postgres.ThreadRepository
	ClueRepo      *postgres.ClueRepository
	HubRepo       *postgres.HubRepository
	MilestoneRepo *postgres.MilestoneRepository

	RedisClient *redis.Client
	Cache       *redis.Cache
	RateLimiter *redis.RateLimiter
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideCachedAccessGate 提供带缓存的访问校验器
func ProvideCachedAccessGate(inner *postgres.AccessGate, cache *redis.Cache, cfg *config.Config) *redis.CachedAccessGate {
	return redis.NewCachedAccessGate(inner, cache, cfg.Cache.AccessGate.TTL)
}
