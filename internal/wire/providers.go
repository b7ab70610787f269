package wire

import (
	"github.com/gin-gonic/gin"

	"marketai-api/internal/application/relay"
	"marketai-api/internal/config"
	"marketai-api/internal/interfaces/http/handler"
	"marketai-api/internal/interfaces/http/router"
)

// App 应用容器
type App struct {
	router *router.Router
	relay  *relay.Service
}

// NewApp 创建应用容器
func NewApp(r *router.Router, relaySvc *relay.Service) *App {
	return &App{router: r, relay: relaySvc}
}

// Engine 返回 HTTP 引擎
func (a *App) Engine() *gin.Engine {
	return a.router.Engine()
}

// Ready 是否已配置上游密钥
func (a *App) Ready() bool {
	return a.relay.Ready()
}

// ProvideUpstreamConfig 提取上游配置
func ProvideUpstreamConfig(cfg *config.Config) config.UpstreamConfig {
	return cfg.Upstream
}

// ProvideHealthHandler 创建健康检查处理器
func ProvideHealthHandler(cfg *config.Config, probe handler.ReadinessProbe) *handler.HealthHandler {
	return handler.NewHealthHandler(cfg.App.Version, probe)
}

// ProvideGenerateHandler 创建生成处理器
func ProvideGenerateHandler(cfg *config.Config, relaySvc handler.Relayer) *handler.GenerateHandler {
	return handler.NewGenerateHandler(relaySvc, cfg.Server.HTTP.MaxBodyBytes)
}
