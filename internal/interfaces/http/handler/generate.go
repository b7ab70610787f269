// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketai-api/internal/domain/entity"
	"marketai-api/internal/infrastructure/upstream"
	"marketai-api/internal/interfaces/http/dto"
	apperrors "marketai-api/pkg/errors"
	"marketai-api/pkg/logger"
)

// Relayer 处理器对中继服务的依赖
type Relayer interface {
	Ready() bool
	Relay(ctx context.Context, messages []entity.ChatMessage) (*upstream.Response, error)
}

// GenerateHandler 内容生成中继处理器
type GenerateHandler struct {
	relay        Relayer
	maxBodyBytes int64
}

// NewGenerateHandler 创建生成处理器，maxBodyBytes 为 0 时不限制请求体
func NewGenerateHandler(relay Relayer, maxBodyBytes int64) *GenerateHandler {
	return &GenerateHandler{
		relay:        relay,
		maxBodyBytes: maxBodyBytes,
	}
}

// Generate 转发生成请求
// @Summary 生成内容
// @Description 附加服务端密钥后转发到上游 chat completion 接口，原样返回上游状态码与响应体
// @Tags Generate
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "对话消息"
// @Success 200 {object} object "上游原始响应"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/generate [post]
func (h *GenerateHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(ctx, "invalid generate request", "error", err.Error())
		dto.AppError(c, apperrors.ErrInvalidRequest)
		return
	}

	resp, err := h.relay.Relay(ctx, req.ToEntities())
	if err != nil {
		dto.AppError(c, err)
		return
	}

	c.Data(resp.StatusCode, "application/json", resp.Body)
}
