// Package upstream 提供上游 chat completion 接口的透传客户端
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"marketai-api/internal/config"
	"marketai-api/internal/domain/entity"
	apperrors "marketai-api/pkg/errors"
	"marketai-api/pkg/metrics"
	"marketai-api/pkg/tracer"
)

const completionsPath = "/chat/completions"

// Client 上游客户端，模型参数固定由服务端配置决定
type Client struct {
	endpoint    string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// Response 上游原始响应，不做解析
type Response struct {
	StatusCode int
	Body       []byte
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []entity.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature"`
}

// NewClient 创建上游客户端
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		endpoint:    cfg.BaseURL + completionsPath,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Configured 是否持有上游密钥
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Model 返回固定的模型名
func (c *Client) Model() string {
	return c.model
}

// ChatCompletion 转发对话请求，返回上游状态码与原始响应体
// 只有无法建立连接或读取响应失败时返回错误
func (c *Client) ChatCompletion(ctx context.Context, messages []entity.ChatMessage) (*Response, error) {
	ctx, span := tracer.Start(ctx, "upstream.chat_completion")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", c.model),
		attribute.Int("llm.messages", len(messages)),
	)

	reqBody, err := json.Marshal(&completionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		tracer.Fail(span, err)
		return nil, apperrors.ErrUpstreamUnavailable.WithError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	metrics.UpstreamCallDuration.WithLabelValues(c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamCallTotal.WithLabelValues(c.model, "transport_error").Inc()
		tracer.Fail(span, err)
		return nil, apperrors.ErrUpstreamUnavailable.WithError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		metrics.UpstreamCallTotal.WithLabelValues(c.model, "transport_error").Inc()
		tracer.Fail(span, err)
		return nil, apperrors.ErrUpstreamUnavailable.WithError(fmt.Errorf("read upstream body: %w", err))
	}

	status := strconv.Itoa(httpResp.StatusCode)
	metrics.UpstreamCallTotal.WithLabelValues(c.model, status).Inc()
	span.SetAttributes(attribute.Int("http.status_code", httpResp.StatusCode))

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
	}, nil
}
