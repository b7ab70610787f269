// Package middleware 提供 HTTP 中间件
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"marketai-api/internal/interfaces/http/dto"
	apperrors "marketai-api/pkg/errors"
	"marketai-api/pkg/logger"
)

// Recovery Panic 恢复中间件，进程不因单个请求崩溃
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					fmt.Errorf("%v", err),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)

				// 已经开始写响应时无法再改写状态码
				if c.Writer.Written() {
					c.Abort()
					return
				}
				dto.AbortWithError(c, apperrors.ErrInternalError.HTTPStatus, apperrors.ErrInternalError.Message)
			}
		}()

		c.Next()
	}
}
