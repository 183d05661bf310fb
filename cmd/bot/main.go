package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"valorant-notifier/internal/bot"
	"valorant-notifier/internal/config"
	"valorant-notifier/internal/constants"
	fxmodules "valorant-notifier/internal/fx"
	"valorant-notifier/internal/middleware"
	"valorant-notifier/internal/scheduler"
	"valorant-notifier/internal/server"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runBot),
	).Run()
}

func runBot(
	lc fx.Lifecycle,
	session *discordgo.Session,
	commands *bot.CommandHandler,
	sched *scheduler.Scheduler,
	statusServer *server.StatusServer,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	commands.Register(session)
	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logger.Info().
			Str("user", r.User.Username).
			Int("guilds", len(r.Guilds)).
			Msg("connected to Discord")
	})

	mux := http.NewServeMux()
	statusServer.Routes(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.StatusPort),
		Handler: middleware.RequestID(logger)(c.Handler(mux)),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := session.Open(); err != nil {
				return fmt.Errorf("failed to open discord session: %w", err)
			}

			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("status server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("status server failed")
				}
			}()

			sched.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := sched.Stop(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("scheduler did not stop cleanly")
			}

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn().Err(err).Msg("status server shutdown failed")
			}

			if err := session.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing discord session")
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			logger.Info().Msg("stopped gracefully")
			return nil
		},
	})
}
