// Package relay 实现生成请求的中继逻辑
package relay

import (
	"context"

	"github.com/tidwall/gjson"

	"marketai-api/internal/domain/entity"
	"marketai-api/internal/infrastructure/upstream"
	apperrors "marketai-api/pkg/errors"
	"marketai-api/pkg/logger"
	"marketai-api/pkg/metrics"
)

// Forwarder 中继对上游的最小依赖（port）
type Forwarder interface {
	Configured() bool
	Model() string
	ChatCompletion(ctx context.Context, messages []entity.ChatMessage) (*upstream.Response, error)
}

// Service 中继服务，无状态
type Service struct {
	forwarder Forwarder
}

// NewService 创建中继服务
func NewService(forwarder Forwarder) *Service {
	return &Service{forwarder: forwarder}
}

// Ready 是否具备转发条件
func (s *Service) Ready() bool {
	return s.forwarder != nil && s.forwarder.Configured()
}

// Relay 转发消息到上游；成功时原样返回上游状态码与响应体
func (s *Service) Relay(ctx context.Context, messages []entity.ChatMessage) (*upstream.Response, error) {
	if !s.Ready() {
		metrics.RelayRejectedTotal.WithLabelValues("credential_missing").Inc()
		logger.Warn(ctx, "relay rejected: upstream credential not configured")
		return nil, apperrors.ErrCredentialMissing
	}

	resp, err := s.forwarder.ChatCompletion(ctx, messages)
	if err != nil {
		metrics.RelayRejectedTotal.WithLabelValues("upstream_unreachable").Inc()
		logger.Error(ctx, "failed to reach upstream", err)
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		s.recordUsage(resp.Body)
	} else {
		logger.Warn(ctx, "upstream returned error status",
			"status", resp.StatusCode,
			"upstream_error", gjson.GetBytes(resp.Body, "error.message").String(),
		)
	}
	return resp, nil
}

// recordUsage 只读取 usage 字段记录 token 指标，不改写响应
func (s *Service) recordUsage(body []byte) {
	usage := gjson.GetBytes(body, "usage")
	if !usage.Exists() {
		return
	}
	model := s.forwarder.Model()
	if n := usage.Get("prompt_tokens").Int(); n > 0 {
		metrics.UpstreamTokensUsed.WithLabelValues(model, "prompt").Add(float64(n))
	}
	if n := usage.Get("completion_tokens").Int(); n > 0 {
		metrics.UpstreamTokensUsed.WithLabelValues(model, "completion").Add(float64(n))
	}
}
