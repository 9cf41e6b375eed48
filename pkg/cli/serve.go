package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/central-square/centralsquare/pkg/cli/config"
	httpctrl "github.com/central-square/centralsquare/pkg/controller/http"
	"github.com/central-square/centralsquare/pkg/service/aihost"
	"github.com/central-square/centralsquare/pkg/service/worker"
	"github.com/central-square/centralsquare/pkg/usecase"
	"github.com/central-square/centralsquare/pkg/utils/logging"
	"github.com/central-square/centralsquare/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var noAuthUID string
	var refreshInterval time.Duration
	var repoCfg config.Repository
	var llmCfg config.LLM

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CENTRALSQUARE_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip identity headers and run as the specified user ID (development only). Example: --no-auth=user-123",
			Category:    "Authentication",
			Sources:     cli.EnvVars("CENTRALSQUARE_NO_AUTH"),
			Destination: &noAuthUID,
		},
		&cli.DurationFlag{
			Name:        "preference-refresh-interval",
			Usage:       "Interval of the background preference refresh (0 disables it)",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("CENTRALSQUARE_PREFERENCE_REFRESH_INTERVAL"),
			Destination: &refreshInterval,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			llmClient, err := llmCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM backend")
			}
			if llmClient.Configured() {
				logging.Default().Info("LLM backend enabled", "llm", llmCfg)
			} else {
				logging.Default().Info("No LLM backend configured, running on deterministic fallbacks")
			}

			if noAuthUID != "" {
				logging.Default().Warn("Running in no-auth mode (development only)", "user_id", noAuthUID)
			}

			uc := usecase.New(repo, usecase.WithLLMClient(llmClient))

			if refreshInterval > 0 {
				refreshWorker := worker.NewPreferenceRefreshWorker(
					repo, aihost.NewExtractor(llmClient), refreshInterval)
				refreshWorker.Start(ctx)
				defer refreshWorker.Stop()
			}

			httpOpts := []httpctrl.Options{}
			if noAuthUID != "" {
				httpOpts = append(httpOpts, httpctrl.WithNoAuth(noAuthUID))
			}
			server := httpctrl.New(uc, httpOpts...)

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("HTTP server starting", "addr", addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "HTTP server failed")
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("shutting down", "signal", sig.String())
			case <-ctx.Done():
				logging.Default().Info("shutting down", "reason", "context cancelled")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shut down HTTP server")
			}

			return nil
		},
	}
}
