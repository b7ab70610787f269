//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"marketai-api/internal/application/relay"
	"marketai-api/internal/config"
	"marketai-api/internal/infrastructure/upstream"
	"marketai-api/internal/interfaces/http/handler"
	"marketai-api/internal/interfaces/http/router"
)

// InitializeApp 组装中继服务
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		ProvideUpstreamConfig,
		upstream.NewClient,
		wire.Bind(new(relay.Forwarder), new(*upstream.Client)),
		relay.NewService,
		wire.Bind(new(handler.Relayer), new(*relay.Service)),
		wire.Bind(new(handler.ReadinessProbe), new(*relay.Service)),
		ProvideHealthHandler,
		ProvideGenerateHandler,
		wire.Struct(new(router.Handlers), "*"),
		router.New,
		NewApp,
	)
	return nil, nil, nil
}
