package handler

import (
	"encoding/json"
	"fmt"
	"io"

	"z-novel-blueprint-api/internal/application/chat"
	"z-novel-blueprint-api/internal/interfaces/http/dto"
	"z-novel-blueprint-api/pkg/logger"
	"z-novel-blueprint-api/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// ChatHandler AI 对话处理器
type ChatHandler struct {
	relay *chat.Relay
}

// NewChatHandler 创建对话处理器
func NewChatHandler(relay *chat.Relay) *ChatHandler {
	return &ChatHandler{relay: relay}
}

// Chat AI 对话接口
// @Summary AI 对话
// @Description 转发对话请求到 LLM；stream=true 时以 SSE 推送增量内容，以 data: [DONE] 结束
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.ChatRequest true "对话请求"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /ai/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	in := req.ToInput()

	if !req.IsStream() {
		content, err := h.relay.Generate(ctx, in)
		if err != nil {
			logger.Error(ctx, "chat generate failed", err)
			dto.HandleError(c, err)
			return
		}
		dto.OK(c, dto.ChatResponse{Content: content})
		return
	}

	reader, err := h.relay.Stream(ctx, in)
	if err != nil {
		logger.Error(ctx, "chat stream failed", err)
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	metrics.ActiveChatStreams.Inc()
	defer metrics.ActiveChatStreams.Dec()

	contentCh := make(chan string, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(contentCh)

		_, drainErr := h.relay.Drain(in, reader, func(chunk string) error {
			select {
			case contentCh <- chunk:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if drainErr != nil {
			errCh <- drainErr
		}
	}()

	c.Stream(func(w io.Writer) bool {
		select {
		case chunk, ok := <-contentCh:
			if !ok {
				// 上游已结束：若有错误则在流内下发，否则发送终止标记
				if streamErr := <-errCh; streamErr != nil {
					logger.Error(ctx, "chat stream interrupted", streamErr)
					writeSSEData(w, gin.H{"error": streamErr.Error()})
					return false
				}
				fmt.Fprint(w, "data: [DONE]\n\n")
				return false
			}
			writeSSEData(w, gin.H{"content": chunk})
			return true

		case <-ctx.Done():
			return false
		}
	})
}

// writeSSEData 写出一帧仅含 data 字段的 SSE 消息
func writeSSEData(w io.Writer, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", b)
}
