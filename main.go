package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"searchdeck/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "searchdeck",
		Usage: "Terminal search client for a content site",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
			},
		},
		Commands: []*cli.Command{
			cmd.TuiCommand(),
			cmd.SearchCommand(),
			cmd.FacetsCommand(),
			cmd.VersionCommand(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return cmd.RunTUI(c.String("config"), c.Bool("debug"))
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
