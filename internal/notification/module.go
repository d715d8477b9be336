package notification

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/avolkoff/orderpanel/internal/config"
	"github.com/avolkoff/orderpanel/internal/domain/repository"
)

// Module exposes the notification service to the fx graph.
var Module = fx.Options(
	fx.Provide(newMailer),
	fx.Provide(newService),
	fx.Provide(func(s *Service) Dispatcher { return s }),
)

func newMailer(logger *slog.Logger) Mailer {
	return NewLogMailer(logger)
}

type serviceParams struct {
	fx.In

	Users         repository.UserRepository
	Notifications repository.NotificationRepository
	Mailer        Mailer
	Config        *config.Config
	Logger        *slog.Logger
}

func newService(p serviceParams) *Service {
	return NewService(p.Users, p.Notifications, p.Mailer, p.Config.NotifyQueueSize, p.Config.NotifyWorkers, p.Logger)
}
