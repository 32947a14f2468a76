package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableUnmarshal(t *testing.T) {
	type payload struct {
		ThreadID Nullable[string] `json:"thread_id"`
	}

	t.Run("字段缺失", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.ThreadID.Set)
		assert.Nil(t, p.ThreadID.Ptr())
	})

	t.Run("显式传 null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"thread_id": null}`), &p))
		assert.True(t, p.ThreadID.Set)
		assert.False(t, p.ThreadID.Valid)

		ptr := p.ThreadID.Ptr()
		require.NotNil(t, ptr)
		assert.Nil(t, *ptr)
	})

	t.Run("传具体值", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"thread_id": "t-123"}`), &p))
		assert.True(t, p.ThreadID.Set)
		assert.True(t, p.ThreadID.Valid)

		ptr := p.ThreadID.Ptr()
		require.NotNil(t, ptr)
		require.NotNil(t, *ptr)
		assert.Equal(t, "t-123", **ptr)
	})

	t.Run("类型不匹配报错", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"thread_id": 42}`), &p))
	})
}

func TestUpdateClueRequestToPatch(t *testing.T) {
	t.Run("thread_id 为 null 时生成解除关联补丁", func(t *testing.T) {
		var req UpdateClueRequest
		require.NoError(t, json.Unmarshal([]byte(`{"thread_id": null, "title": "改名"}`), &req))

		p := req.ToPatch()
		require.NotNil(t, p.ThreadID)
		assert.Nil(t, *p.ThreadID)
		require.NotNil(t, p.Title)
		assert.Equal(t, "改名", *p.Title)
		assert.Nil(t, p.Status)
	})

	t.Run("缺失字段不出现在补丁中", func(t *testing.T) {
		var req UpdateClueRequest
		require.NoError(t, json.Unmarshal([]byte(`{"status": "payoff"}`), &req))

		p := req.ToPatch()
		assert.Nil(t, p.ThreadID)
		assert.Nil(t, p.Title)
		require.NotNil(t, p.Status)
		assert.Equal(t, "payoff", string(*p.Status))
	})
}

func TestUpdateMilestoneRequestToPatch(t *testing.T) {
	t.Run("target_chapter 为 null 时清空", func(t *testing.T) {
		var req UpdateMilestoneRequest
		require.NoError(t, json.Unmarshal([]byte(`{"target_chapter": null}`), &req))

		p := req.ToPatch()
		require.NotNil(t, p.TargetChapter)
		assert.Nil(t, *p.TargetChapter)
		assert.Nil(t, p.ActualChapter)
	})

	t.Run("数值原样进入补丁", func(t *testing.T) {
		var req UpdateMilestoneRequest
		require.NoError(t, json.Unmarshal([]byte(`{"target_chapter": 42, "status": "achieved"}`), &req))

		p := req.ToPatch()
		require.NotNil(t, p.TargetChapter)
		require.NotNil(t, *p.TargetChapter)
		assert.Equal(t, 42, **p.TargetChapter)
		require.NotNil(t, p.Status)
		assert.Equal(t, "achieved", string(*p.Status))
	})
}
