package cli

import (
	"context"

	"github.com/central-square/centralsquare/pkg/cli/config"
	"github.com/central-square/centralsquare/pkg/utils/logging"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	// Optional .env for local development; absence is not an error
	_ = godotenv.Load()

	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "centralsquare",
		Usage:   "Central Square AI host service",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting centralsquare", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdMigrate(),
			cmdSeed(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
