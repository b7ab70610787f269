// Package errors 提供统一的错误定义
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeUnknown       ErrorCode = "1000"
	CodeInvalidParam  ErrorCode = "1001"
	CodeNotFound      ErrorCode = "1004"
	CodeInternalError ErrorCode = "1007"

	// 配置错误 (2xxx)
	CodeCredentialMissing ErrorCode = "2001"

	// 业务错误 (4xxx)
	CodeValidationFailed ErrorCode = "4002"
	CodeNoContent        ErrorCode = "4007"

	// 外部服务错误 (5xxx)
	CodeUpstreamUnavailable ErrorCode = "5005"
	CodeUpstreamRejected    ErrorCode = "5006"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，使预定义错误可用于 errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail 返回附带详细信息的副本
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithError 返回附带底层错误的副本
func (e *AppError) WithError(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeInvalidParam, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUpstreamRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误，消息即对外暴露的 error 字段
var (
	ErrInvalidRequest      = New(CodeInvalidParam, "Invalid request format")
	ErrNotFound            = New(CodeNotFound, "Not found")
	ErrInternalError       = New(CodeInternalError, "internal server error")
	ErrCredentialMissing   = New(CodeCredentialMissing, "OpenAI API key not configured")
	ErrUpstreamUnavailable = New(CodeUpstreamUnavailable, "Failed to connect to OpenAI")

	ErrEmptyDescription = New(CodeValidationFailed, "Please provide a product description.")
	ErrNothingToCopy    = New(CodeValidationFailed, "No content to copy!")
	ErrNoPrevious       = New(CodeValidationFailed, "Nothing to regenerate yet.")
	ErrBusy             = New(CodeValidationFailed, "A generation is already in progress.")
	ErrNoContent        = New(CodeNoContent, "No content generated from OpenAI API")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
