package chat

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "z-novel-blueprint-api/pkg/errors"
)

func TestBuildSchemaMessages(t *testing.T) {
	t.Run("三种角色按序转换", func(t *testing.T) {
		msgs, err := buildSchemaMessages([]Message{
			{Role: "system", Content: "你是小说结构顾问"},
			{Role: "user", Content: "帮我梳理主线"},
			{Role: "assistant", Content: "好的"},
			{Role: "user", Content: "继续"},
		})
		require.NoError(t, err)
		require.Len(t, msgs, 4)
		assert.Equal(t, schema.System, msgs[0].Role)
		assert.Equal(t, schema.User, msgs[1].Role)
		assert.Equal(t, schema.Assistant, msgs[2].Role)
		assert.Equal(t, "帮我梳理主线", msgs[1].Content)
	})

	t.Run("内容去除首尾空白", func(t *testing.T) {
		msgs, err := buildSchemaMessages([]Message{{Role: "user", Content: "  hello \n"}})
		require.NoError(t, err)
		assert.Equal(t, "hello", msgs[0].Content)
	})

	t.Run("未知角色报参数错误", func(t *testing.T) {
		_, err := buildSchemaMessages([]Message{{Role: "tool", Content: "x"}})
		require.Error(t, err)
		appErr := apperrors.AsAppError(err)
		assert.Equal(t, apperrors.CodeInvalidParam, appErr.Code)
	})
}

func TestBuildModelOptions(t *testing.T) {
	temp := float32(0.3)
	maxTokens := 1024

	assert.Empty(t, buildModelOptions(&Input{}))
	assert.Len(t, buildModelOptions(&Input{Temperature: &temp}), 1)
	assert.Len(t, buildModelOptions(&Input{Temperature: &temp, MaxTokens: &maxTokens}), 2)
}

func TestRelayRejectsEmptyInput(t *testing.T) {
	r := NewRelay(nil)

	_, err := r.Generate(context.Background(), &Input{})
	require.Error(t, err)

	_, err = r.Stream(context.Background(), nil)
	require.Error(t, err)
}
