// Package redis 提供 Redis 缓存实现
package redis

import (
	"context"
	"time"

	"z-novel-blueprint-api/internal/domain/repository"
	apperrors "z-novel-blueprint-api/pkg/errors"
	"z-novel-blueprint-api/pkg/metrics"
)

// accessCache 访问校验需要的缓存能力
type accessCache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
}

// CachedAccessGate 带缓存的项目访问校验装饰器
// 只缓存通过的结果；拒绝和报错每次都回源，避免权限变更后旧的拒绝被钉死
type CachedAccessGate struct {
	inner repository.AccessGate
	cache accessCache
	ttl   time.Duration
}

// NewCachedAccessGate 创建带缓存的访问校验器
func NewCachedAccessGate(inner repository.AccessGate, cache *Cache, ttl time.Duration) *CachedAccessGate {
	return &CachedAccessGate{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

// VerifyAccess 校验用户对项目的访问权限
// 通过 singleflight 合并同一键的并发回源，拒绝结果不会被缓存
func (g *CachedAccessGate) VerifyAccess(ctx context.Context, projectID, userID string) error {
	key := BuildAccessKey(projectID, userID)

	loaded := false
	_, err := g.cache.GetOrLoadSafe(ctx, key, g.ttl, func() (interface{}, error) {
		loaded = true
		if err := g.inner.VerifyAccess(ctx, projectID, userID); err != nil {
			return nil, err
		}
		return "ok", nil
	})

	if loaded {
		metrics.AccessCacheHits.WithLabelValues("miss").Inc()
	} else if err == nil {
		metrics.AccessCacheHits.WithLabelValues("hit").Inc()
	}

	// Redis 故障时直接回源，缓存不可用不应阻断校验
	if err != nil && !loaded && !apperrors.IsAppError(err) {
		err = g.inner.VerifyAccess(ctx, projectID, userID)
	}

	if err != nil {
		metrics.AccessCheckTotal.WithLabelValues("denied").Inc()
		return err
	}
	metrics.AccessCheckTotal.WithLabelValues("granted").Inc()
	return nil
}
