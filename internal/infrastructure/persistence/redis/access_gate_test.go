package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "z-novel-blueprint-api/pkg/errors"
)

// fakeAccessCache 内存实现，模拟命中、回源与故障
type fakeAccessCache struct {
	stored map[string][]byte
	fail   error
}

func newFakeAccessCache() *fakeAccessCache {
	return &fakeAccessCache{stored: make(map[string][]byte)}
}

func (f *fakeAccessCache) GetOrLoadSafe(_ context.Context, key string, _ time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if v, ok := f.stored[key]; ok {
		return v, nil
	}
	data, err := loader()
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	f.stored[key] = b
	return b, nil
}

type stubGate struct {
	err   error
	calls int
}

func (s *stubGate) VerifyAccess(context.Context, string, string) error {
	s.calls++
	return s.err
}

func TestCachedAccessGateCachesGrantedResult(t *testing.T) {
	inner := &stubGate{}
	cache := newFakeAccessCache()
	gate := &CachedAccessGate{inner: inner, cache: cache, ttl: time.Minute}
	ctx := context.Background()

	require.NoError(t, gate.VerifyAccess(ctx, "p1", "u1"))
	require.NoError(t, gate.VerifyAccess(ctx, "p1", "u1"))

	// 第二次命中缓存，不再回源
	assert.Equal(t, 1, inner.calls)
	assert.Contains(t, cache.stored, BuildAccessKey("p1", "u1"))
}

func TestCachedAccessGateDeniedNotCached(t *testing.T) {
	inner := &stubGate{err: apperrors.ErrPermissionDenied}
	cache := newFakeAccessCache()
	gate := &CachedAccessGate{inner: inner, cache: cache, ttl: time.Minute}
	ctx := context.Background()

	assert.ErrorIs(t, gate.VerifyAccess(ctx, "p1", "u2"), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, gate.VerifyAccess(ctx, "p1", "u2"), apperrors.ErrPermissionDenied)

	// 拒绝结果每次都回源，权限变更后立即生效
	assert.Equal(t, 2, inner.calls)
	assert.Empty(t, cache.stored)
}

func TestCachedAccessGateFallsBackWhenCacheUnavailable(t *testing.T) {
	t.Run("缓存故障时直接回源放行", func(t *testing.T) {
		inner := &stubGate{}
		cache := newFakeAccessCache()
		cache.fail = errors.New("redis: connection refused")
		gate := &CachedAccessGate{inner: inner, cache: cache, ttl: time.Minute}

		require.NoError(t, gate.VerifyAccess(context.Background(), "p1", "u1"))
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("缓存故障不掩盖回源的拒绝", func(t *testing.T) {
		inner := &stubGate{err: apperrors.ErrProjectNotFound}
		cache := newFakeAccessCache()
		cache.fail = errors.New("redis: connection refused")
		gate := &CachedAccessGate{inner: inner, cache: cache, ttl: time.Minute}

		err := gate.VerifyAccess(context.Background(), "p1", "u1")
		assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
	})
}
