package cli

import (
	"context"
	"fmt"

	"github.com/central-square/centralsquare/pkg/cli/config"
	"github.com/central-square/centralsquare/pkg/utils/safe"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var catalogPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "arcades",
			Usage:       "Path to the arcade catalog TOML file",
			Required:    true,
			Sources:     cli.EnvVars("CENTRALSQUARE_ARCADE_CATALOG"),
			Destination: &catalogPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load the arcade catalog into the repository",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := config.LoadArcadeCatalog(catalogPath)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			existing, err := repo.Arcade().List(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list existing arcades")
			}
			existingNames := make(map[string]bool, len(existing))
			for _, arcade := range existing {
				existingNames[arcade.Name] = true
			}

			green := color.New(color.FgGreen).SprintFunc()
			cyan := color.New(color.FgCyan).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()

			seeded := 0
			for _, entry := range catalog.Arcades {
				if existingNames[entry.Name] {
					fmt.Printf("%s %s (already present)\n", yellow("-"), entry.Name)
					continue
				}
				stored, err := repo.Arcade().Put(ctx, entry.Model())
				if err != nil {
					return goerr.Wrap(err, "failed to store arcade", goerr.V("name", entry.Name))
				}
				fmt.Printf("%s %s (%s)\n", green("✓"), stored.Name, cyan(stored.ID))
				seeded++
			}

			fmt.Printf("\nSeeded %s arcades from %s\n", green(seeded), catalogPath)
			return nil
		},
	}
}
