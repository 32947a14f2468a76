package dto

import (
	"z-novel-blueprint-api/internal/application/chat"
)

// ChatMessage 对话消息
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest 对话请求
// stream 默认为 true，走 SSE；显式传 false 时返回完整 JSON
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages" binding:"required,min=1"`
	Stream      *bool         `json:"stream,omitempty"`
	Provider    string        `json:"provider,omitempty"`
	Temperature *float32      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

// IsStream 是否流式响应
func (r *ChatRequest) IsStream() bool {
	return r.Stream == nil || *r.Stream
}

// ToInput 转为应用层输入
func (r *ChatRequest) ToInput() *chat.Input {
	msgs := make([]chat.Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		msgs = append(msgs, chat.Message{Role: m.Role, Content: m.Content})
	}
	return &chat.Input{
		Messages:    msgs,
		Provider:    r.Provider,
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
	}
}

// ChatResponse 非流式对话响应
type ChatResponse struct {
	Content string `json:"content"`
}
