package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"z-novel-blueprint-api/internal/infrastructure/llm"
	apperrors "z-novel-blueprint-api/pkg/errors"
	"z-novel-blueprint-api/pkg/metrics"
)

// Message 对话中的一条消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Input 对话请求
type Input struct {
	Messages    []Message
	Provider    string
	Temperature *float32
	MaxTokens   *int
}

// Relay 将对话请求转发给模型提供方
// 不做任何会话持久化，纯透传
type Relay struct {
	factory *llm.EinoFactory
}

func NewRelay(factory *llm.EinoFactory) *Relay {
	return &Relay{factory: factory}
}

// Stream 发起流式对话，返回 Eino StreamReader；调用方负责 Close()
func (r *Relay) Stream(ctx context.Context, in *Input) (*schema.StreamReader[*schema.Message], error) {
	chatModel, msgs, err := r.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	reader, err := chatModel.Stream(ctx, msgs, buildModelOptions(in)...)
	r.recordCall(in, start, err)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeLLMProviderError, "llm stream failed")
	}
	return reader, nil
}

// Generate 发起非流式对话，返回完整回复文本
func (r *Relay) Generate(ctx context.Context, in *Input) (string, error) {
	chatModel, msgs, err := r.prepare(ctx, in)
	if err != nil {
		return "", err
	}

	start := time.Now()
	msg, err := chatModel.Generate(ctx, msgs, buildModelOptions(in)...)
	r.recordCall(in, start, err)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeLLMProviderError, "llm generate failed")
	}
	r.recordUsage(in, msg)
	return msg.Content, nil
}

// Drain 消费流式回复直到 EOF，汇总内容并记录 Token 用量
// 每个到达的片段通过 onChunk 回调交给调用方
func (r *Relay) Drain(in *Input, reader *schema.StreamReader[*schema.Message], onChunk func(chunk string) error) (string, error) {
	defer reader.Close()

	var full strings.Builder
	for {
		msg, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return full.String(), apperrors.Wrap(err, apperrors.CodeLLMProviderError, "llm stream interrupted")
		}

		if msg.Content != "" {
			full.WriteString(msg.Content)
			if onChunk != nil {
				if err := onChunk(msg.Content); err != nil {
					return full.String(), err
				}
			}
		}
		r.recordUsage(in, msg)
	}
	return full.String(), nil
}

func (r *Relay) prepare(ctx context.Context, in *Input) (model.BaseChatModel, []*schema.Message, error) {
	if r.factory == nil {
		return nil, nil, apperrors.New(apperrors.CodeLLMCallFailed, "llm factory not configured")
	}
	if in == nil || len(in.Messages) == 0 {
		return nil, nil, apperrors.New(apperrors.CodeInvalidParam, "messages is empty")
	}

	msgs, err := buildSchemaMessages(in.Messages)
	if err != nil {
		return nil, nil, err
	}

	chatModel, err := r.factory.Get(ctx, in.Provider)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.CodeLLMCallFailed, "failed to resolve chat model")
	}
	return chatModel, msgs, nil
}

// buildSchemaMessages 把外部消息转为 Eino 消息
// system 角色沉淀为系统提示，user 角色按顺序保留，assistant 角色原样透传
func buildSchemaMessages(messages []Message) ([]*schema.Message, error) {
	out := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		content := strings.TrimSpace(m.Content)
		switch m.Role {
		case "system":
			out = append(out, schema.SystemMessage(content))
		case "user":
			out = append(out, schema.UserMessage(content))
		case "assistant":
			out = append(out, schema.AssistantMessage(content, nil))
		default:
			return nil, apperrors.New(apperrors.CodeInvalidParam, fmt.Sprintf("unsupported message role: %s", m.Role))
		}
	}
	return out, nil
}

func buildModelOptions(in *Input) []model.Option {
	opts := make([]model.Option, 0, 2)
	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	return opts
}

func (r *Relay) recordCall(in *Input, start time.Time, err error) {
	provider := r.factory.ProviderName(in.Provider)
	mdl := r.factory.ModelName(in.Provider)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.LLMCallTotal.WithLabelValues(provider, mdl, status).Inc()
	metrics.LLMCallDuration.WithLabelValues(provider, mdl).Observe(time.Since(start).Seconds())
}

func (r *Relay) recordUsage(in *Input, msg *schema.Message) {
	if msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return
	}
	provider := r.factory.ProviderName(in.Provider)
	mdl := r.factory.ModelName(in.Provider)
	u := msg.ResponseMeta.Usage
	metrics.LLMTokensUsed.WithLabelValues(provider, mdl, "prompt").Add(float64(u.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(provider, mdl, "completion").Add(float64(u.CompletionTokens))
}
