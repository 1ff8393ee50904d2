package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Version is overridden at build time via -ldflags
var Version = "dev"

// VersionCommand creates the version command
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(ctx context.Context, c *cli.Command) error {
			fmt.Printf("searchdeck %s\n", Version)
			return nil
		},
	}
}
