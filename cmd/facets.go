package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"searchdeck/internal/config"
	"searchdeck/internal/domain"
)

// FacetsCommand creates the facets command
func FacetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "facets",
		Usage: "List the filter options the backend advertises",
		Action: func(ctx context.Context, c *cli.Command) error {
			return listFacets(ctx, c.String("config"))
		},
	}
}

func listFacets(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(config.NewConfigService(), configPath)
	if err != nil {
		return err
	}

	client := newGatewayClient(cfg)
	facets, err := client.FilterFacets(ctx)
	if err != nil {
		return fmt.Errorf("fetching facets: %w", err)
	}

	printFacetSection("Categories", facets.Categories)
	printFacetSection("Tags", facets.Tags)
	printFacetSection("Authors", facets.Authors)
	printFacetSection("Years", facets.Years)
	return nil
}

func printFacetSection(label string, facets []domain.Facet) {
	if len(facets) == 0 {
		return
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	fmt.Println(header.Render(label))
	for _, f := range facets {
		fmt.Printf("  %s (%d)\n", f.Value, f.Count)
	}
	fmt.Println()
}
