package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"marketai-api/pkg/logger"
)

// DirectOptions 直连上游的固定参数，与中继服务端保持同一套取值
type DirectOptions struct {
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultDirectOptions 默认直连参数
func DefaultDirectOptions() DirectOptions {
	return DirectOptions{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o",
		MaxTokens:   2000,
		Temperature: 0.7,
	}
}

// DirectClient 使用本地覆盖密钥直接调用上游，绕过中继
type DirectClient struct {
	client openai.Client
	opts   DirectOptions
}

// NewDirectClient 创建直连客户端，不做自动重试
func NewDirectClient(apiKey string, opts DirectOptions) *DirectClient {
	base := opts.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &DirectClient{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(base),
			option.WithMaxRetries(0),
			option.WithHTTPClient(&http.Client{Timeout: opts.Timeout}),
		),
		opts: opts,
	}
}

// Complete 发送单条 user 消息，返回第一条生成内容
func (c *DirectClient) Complete(ctx context.Context, prompt string) (string, error) {
	logger.Debug(ctx, "calling upstream directly", "model", c.opts.Model, "prompt_len", len(prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(int64(c.opts.MaxTokens)),
		Temperature: openai.Float(c.opts.Temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = fmt.Sprintf("HTTP error! status: %d", apiErr.StatusCode)
			}
			return "", generationFailed(msg, err)
		}
		return "", generationFailed(err.Error(), err)
	}
	return FirstContent([]byte(resp.RawJSON()))
}
