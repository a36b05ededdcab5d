package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/scanbook/scanbook/pkg/cli/config"
	"github.com/scanbook/scanbook/pkg/controller/server"
	"github.com/scanbook/scanbook/pkg/infra"
	"github.com/scanbook/scanbook/pkg/usecase"
	"github.com/scanbook/scanbook/pkg/utils/logging"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr string

		database config.Database
		workflow config.Workflow
		session  config.Session
		sentry   config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("SCANBOOK_ADDR"),
			Destination: &addr,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			database.Flags(),
			workflow.Flags(),
			session.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Database", database),
				slog.Any("Workflow", workflow),
				slog.Any("Session", session),
				slog.Any("Sentry", sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			engine, err := workflow.NewClient()
			if err != nil {
				return err
			}

			tokenSource, err := session.NewTokenSource()
			if err != nil {
				return err
			}

			infraOptions := []infra.Option{
				infra.WithWorkflowEngine(engine),
				infra.WithTokenSource(tokenSource),
			}

			if database.Enabled() {
				repo, err := database.NewRepository(ctx)
				if err != nil {
					return err
				}
				defer repo.Close()

				infraOptions = append(infraOptions,
					infra.WithScanRepository(repo),
					infra.WithUserRepository(repo),
				)
			} else {
				logging.Default().Warn("no database configured, scan records are not durable")
			}

			clients := infra.New(infraOptions...)

			uc := usecase.New(clients)
			s := server.New(uc, server.WithTokenSource(tokenSource))

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				// Write timeout must cover a full synchronous workflow call.
				WriteTimeout: 10 * time.Minute,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
