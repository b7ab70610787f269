package generator

import (
	"context"
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"marketai-api/internal/prompt"
	apperrors "marketai-api/pkg/errors"
	"marketai-api/pkg/logger"
)

// Clipboard 剪贴板写入能力
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard 系统剪贴板
type SystemClipboard struct{}

// WriteAll 写入系统剪贴板
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Request 一次生成请求
type Request struct {
	Category    string
	Description string
}

// Session 会话级状态：当前生成内容与最近一次请求
// 同一时刻只允许一个生成在进行
type Session struct {
	client Completer

	mu      sync.Mutex
	busy    bool
	current string
	last    *Request
}

// NewSession 创建会话
func NewSession(client Completer) *Session {
	return &Session{client: client}
}

// Generate 校验输入、组装提示词并生成；成功后替换当前内容
func (s *Session) Generate(ctx context.Context, category, description string) (string, error) {
	if err := prompt.ValidateDescription(description); err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", apperrors.ErrBusy
	}
	s.busy = true
	s.last = &Request{Category: category, Description: description}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	content, err := s.client.Complete(ctx, prompt.Build(category, description))
	if err != nil {
		logger.Debug(ctx, "generation failed", "category", category, "error", err.Error())
		return "", err
	}

	s.mu.Lock()
	s.current = content
	s.mu.Unlock()
	return content, nil
}

// Regenerate 用最近一次请求重新生成
func (s *Session) Regenerate(ctx context.Context) (string, error) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == nil {
		return "", apperrors.ErrNoPrevious
	}
	return s.Generate(ctx, last.Category, last.Description)
}

// Current 返回当前内容
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Copy 把当前内容写入剪贴板
func (s *Session) Copy(cb Clipboard) error {
	content := s.Current()
	if strings.TrimSpace(content) == "" {
		return apperrors.ErrNothingToCopy
	}
	if err := cb.WriteAll(content); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternalError, "Failed to copy content")
	}
	return nil
}
