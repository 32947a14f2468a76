//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"github.com/google/wire"

	"z-novel-blueprint-api/internal/application/blueprint"
	"z-novel-blueprint-api/internal/application/chat"
	"z-novel-blueprint-api/internal/config"
	"z-novel-blueprint-api/internal/domain/repository"
	"z-novel-blueprint-api/internal/infrastructure/llm"
	"z-novel-blueprint-api/internal/infrastructure/persistence/postgres"
	"z-novel-blueprint-api/internal/infrastructure/persistence/redis"
	"z-novel-blueprint-api/internal/interfaces/http/handler"
	"z-novel-blueprint-api/internal/interfaces/http/router"
)

// InitializeDataLayer 初始化数据层
func InitializeDataLayer(cfg *config.Config) (*DataLayer, func(), error) {
	wire.Build(
		PostgresSet,
		RedisSet,
		wire.Struct(new(DataLayer), "*"),
	)
	return nil, nil, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		AccessGateSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewThreadRepository,
	postgres.NewClueRepository,
	postgres.NewHubRepository,
	postgres.NewMilestoneRepository,
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
)

// AccessGateSet 项目访问校验提供者集合
// Postgres 所有权查询套 Redis 缓存装饰器
var AccessGateSet = wire.NewSet(
	postgres.NewAccessGate,
	ProvideCachedAccessGate,
	wire.Bind(new(repository.AccessGate), new(*redis.CachedAccessGate)),
)

// ServiceSet 应用服务提供者集合
var ServiceSet = wire.NewSet(
	llm.NewEinoFactory,
	blueprint.NewService,
	chat.NewRelay,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewThreadHandler,
	handler.NewClueHandler,
	handler.NewHubHandler,
	handler.NewMilestoneHandler,
	handler.NewBlueprintHandler,
	handler.NewChatHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.ThreadRepository), new(*postgres.ThreadRepository)),
	wire.Bind(new(repository.ClueRepository), new(*postgres.ClueRepository)),
	wire.Bind(new(repository.HubRepository), new(*postgres.HubRepository)),
	wire.Bind(new(repository.MilestoneRepository), new(*postgres.MilestoneRepository)),
)
