package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/avolkoff/orderpanel/internal/app"
	"github.com/avolkoff/orderpanel/internal/config"
	"github.com/avolkoff/orderpanel/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade *app.PanelFacade
	Config *config.Config
	Logger *slog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	var facade handlers.PanelFacade = p.Facade
	return Setup(facade, p.Config.PageSize, p.Config.MaxPageSize, p.Logger)
}
