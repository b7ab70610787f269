// Package generator 提供调用方一侧的内容生成：请求中继或直连上游，并持有当前会话内容
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"marketai-api/internal/domain/entity"
	apperrors "marketai-api/pkg/errors"
	"marketai-api/pkg/logger"
)

const generatePath = "/api/generate"

// Completer 把一条提示词变成生成文本
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RelayClient 通过中继服务生成内容，不持有任何密钥
type RelayClient struct {
	endpoint   string
	httpClient *http.Client
}

type relayPayload struct {
	Messages []entity.ChatMessage `json:"messages"`
}

// NewRelayClient 创建中继客户端，timeout 为 0 时不设超时
func NewRelayClient(baseURL string, timeout time.Duration) *RelayClient {
	return &RelayClient{
		endpoint: strings.TrimRight(baseURL, "/") + generatePath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Complete 发送单条 user 消息，返回第一条生成内容
func (c *RelayClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(&relayPayload{
		Messages: []entity.ChatMessage{entity.UserMessage(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal relay payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", generationFailed(err.Error(), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger.Debug(ctx, "calling relay", "endpoint", c.endpoint, "prompt_len", len(prompt))

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", generationFailed(err.Error(), err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", generationFailed(err.Error(), err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return "", generationFailed(errorMessage(body, httpResp.StatusCode), nil)
	}
	return FirstContent(body)
}

// FirstContent 从上游响应中取出第一条 completion 的文本
// 第一条 choice 缺少字符串类型的 message.content 时视为没有内容
func FirstContent(body []byte) (string, error) {
	content := gjson.GetBytes(body, "choices.0.message.content")
	if content.Type != gjson.String {
		return "", generationFailed(apperrors.ErrNoContent.Message, apperrors.ErrNoContent)
	}
	return strings.TrimSpace(content.String()), nil
}

// errorMessage 按优先级提取错误信息：error 字符串、error.message、HTTP 状态
func errorMessage(body []byte, status int) string {
	errField := gjson.GetBytes(body, "error")
	if errField.Type == gjson.String && errField.String() != "" {
		return errField.String()
	}
	if msg := errField.Get("message").String(); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func generationFailed(msg string, cause error) *apperrors.AppError {
	if cause == nil {
		return apperrors.New(apperrors.CodeUpstreamRejected, "Failed to generate content: "+msg)
	}
	return apperrors.Wrap(cause, apperrors.CodeUpstreamRejected, "Failed to generate content: "+msg)
}
