package di

import (
	"go.uber.org/fx"

	"github.com/avolkoff/orderpanel/internal/app"
	"github.com/avolkoff/orderpanel/internal/config"
	"github.com/avolkoff/orderpanel/internal/logger"
	"github.com/avolkoff/orderpanel/internal/notification"
	"github.com/avolkoff/orderpanel/internal/pkg/auth"
	"github.com/avolkoff/orderpanel/internal/server/http/router"
	"github.com/avolkoff/orderpanel/internal/storage/postgres"
	"github.com/avolkoff/orderpanel/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notification.Module,
		fx.Provide(func(d notification.Dispatcher) usecase.Notifier { return d }),
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
