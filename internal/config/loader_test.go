package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Run("变量存在时取环境值", func(t *testing.T) {
		t.Setenv("TEST_EXPAND_HOST", "db.internal")
		assert.Equal(t, "host: db.internal", expandEnv("host: ${TEST_EXPAND_HOST:localhost}"))
	})

	t.Run("变量缺失时取默认值", func(t *testing.T) {
		assert.Equal(t, "host: localhost", expandEnv("host: ${TEST_EXPAND_MISSING:localhost}"))
	})

	t.Run("默认值可以为空", func(t *testing.T) {
		assert.Equal(t, "password: ", expandEnv("password: ${TEST_EXPAND_MISSING:}"))
	})

	t.Run("无默认值且未定义时原样保留", func(t *testing.T) {
		assert.Equal(t, "key: ${TEST_EXPAND_MISSING}", expandEnv("key: ${TEST_EXPAND_MISSING}"))
	})

	t.Run("变量值优先于默认值", func(t *testing.T) {
		t.Setenv("TEST_EXPAND_PORT", "5433")
		assert.Equal(t, "5433", expandEnv("${TEST_EXPAND_PORT:5432}"))
	})

	t.Run("默认值可含 URL", func(t *testing.T) {
		assert.Equal(t,
			"base_url: https://api.deepseek.com/v1",
			expandEnv("base_url: ${TEST_EXPAND_MISSING:https://api.deepseek.com/v1}"))
	})

	t.Run("同一行多个占位符", func(t *testing.T) {
		t.Setenv("TEST_EXPAND_A", "x")
		assert.Equal(t, "x-y", expandEnv("${TEST_EXPAND_A:a}-${TEST_EXPAND_B:y}"))
	})
}
