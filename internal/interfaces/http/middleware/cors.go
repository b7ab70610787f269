// Package middleware 提供 HTTP 中间件
package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// CORS 跨域中间件
// 所有响应都带上放开的跨域头（包括非浏览器请求），任何 OPTIONS 请求直接返回 200 空响应
func CORS(cfg CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}

	// 浏览器跨域请求交给 gin-contrib/cors 协商
	negotiate := cors.New(cors.Config{
		AllowOrigins:              cfg.AllowedOrigins,
		AllowMethods:              cfg.AllowedMethods,
		AllowHeaders:              cfg.AllowedHeaders,
		ExposeHeaders:             []string{RequestIDHeader, TraceIDHeader},
		OptionsResponseStatusCode: http.StatusOK,
	})

	static := map[string]string{
		"Access-Control-Allow-Methods": strings.Join(cfg.AllowedMethods, ", "),
		"Access-Control-Allow-Headers": strings.Join(cfg.AllowedHeaders, ", "),
	}
	allowAll := slices.Contains(cfg.AllowedOrigins, "*")
	if allowAll {
		static["Access-Control-Allow-Origin"] = "*"
	}

	return func(c *gin.Context) {
		for k, v := range static {
			c.Header(k, v)
		}

		// 放开全部来源时预检无需协商，直接按固定头应答
		if allowAll && c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		negotiate(c)
		if c.IsAborted() {
			return
		}

		// 同源或不带 Origin 的预检，cors 不处理，这里兜底
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
		}
	}
}
