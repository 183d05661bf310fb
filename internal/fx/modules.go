package fx

import (
	"context"
	"valorant-notifier/internal/api"
	"valorant-notifier/internal/bot"
	"valorant-notifier/internal/config"
	"valorant-notifier/internal/database"
	"valorant-notifier/internal/logger"
	"valorant-notifier/internal/notify"
	"valorant-notifier/internal/repository"
	"valorant-notifier/internal/scheduler"
	"valorant-notifier/internal/server"
	"valorant-notifier/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideScheduler(cfg *config.Config, tracker *service.TrackerService, log zerolog.Logger) *scheduler.Scheduler {
	pass := scheduler.PassFunc(func(ctx context.Context) {
		tracker.RunPass(ctx)
	})
	return scheduler.New(pass, cfg.PollInterval, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchRepository),
	// api client
	fx.Provide(api.NewHDevClient),
	fx.Provide(func(c *api.HDevClient) service.MatchFetcher { return c }),
	// discord
	fx.Provide(bot.NewSession),
	fx.Provide(bot.NewCommandHandler),
	fx.Provide(notify.NewDiscordNotifier),
	fx.Provide(func(n *notify.DiscordNotifier) service.Notifier { return n }),
	// svc
	fx.Provide(service.NewTrackerService),
	fx.Provide(ProvideScheduler),
	// status server
	fx.Provide(server.NewStatusServer),
)
