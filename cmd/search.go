package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/urfave/cli/v3"

	"searchdeck/internal/config"
	"searchdeck/internal/domain"
)

// SearchCommand creates the one-shot search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run one search and print the results",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Result page to fetch",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Results per page (0 uses the configured page size)",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort option (relevance, publishedAt, updatedAt, title, viewCount, likeCount)",
				Value: string(domain.SortRelevance),
			},
			&cli.StringFlag{
				Name:  "direction",
				Usage: "Sort direction (asc, desc)",
				Value: string(domain.SortDesc),
			},
			&cli.StringSliceFlag{
				Name:  "category",
				Usage: "Filter by category (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "tag",
				Usage: "Filter by tag (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "author",
				Usage: "Filter by author (repeatable)",
			},
			&cli.StringFlag{
				Name:  "from",
				Usage: "Published-after date (YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "Published-before date (YYYY-MM-DD)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return fmt.Errorf("a search query is required")
			}
			return runSearch(ctx, c, query)
		},
	}
}

func runSearch(ctx context.Context, c *cli.Command, query string) error {
	cfg, err := loadConfig(config.NewConfigService(), c.String("config"))
	if err != nil {
		return err
	}

	pageSize := c.Int("limit")
	if pageSize <= 0 {
		pageSize = cfg.Search.PageSize
	}

	filters := domain.Filters{
		Categories: c.StringSlice("category"),
		Tags:       c.StringSlice("tag"),
		Authors:    c.StringSlice("author"),
	}
	if filters.DateFrom, err = parseDateFlag(c.String("from")); err != nil {
		return err
	}
	if filters.DateTo, err = parseDateFlag(c.String("to")); err != nil {
		return err
	}

	client := newGatewayClient(cfg)
	page, err := client.Search(ctx, domain.SearchParams{
		Query:         query,
		Filters:       filters,
		SortBy:        domain.SortOption(c.String("sort")),
		SortDirection: domain.SortDirection(c.String("direction")),
		Page:          c.Int("page"),
		PageSize:      pageSize,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printResultPage(query, page)
	return nil
}

func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}

func printResultPage(query string, page *domain.ResultPage) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	fmt.Printf("%s %s\n", titleStyle.Render("results for"), query)
	fmt.Println(metaStyle.Render(fmt.Sprintf("page %d · %d total · %.0fms", page.Page, page.TotalCount, page.SearchTimeMs)))
	fmt.Println()

	if len(page.Results) == 0 {
		fmt.Println(metaStyle.Render("no results"))
		return
	}
	for i, res := range page.Results {
		fmt.Printf("%2d. %s\n", i+1, titleStyle.Render(res.Title))
		fmt.Printf("    %s\n", metaStyle.Render(fmt.Sprintf("%s · %s · %s · %d views",
			res.Author, res.Category, res.PublishedAt.Format("2006-01-02"), res.ViewCount)))
		summary := runewidth.Truncate(strings.ReplaceAll(res.Summary, "\n", " "), 120, "...")
		fmt.Printf("    %s\n", summary)
	}
	if page.HasMore {
		fmt.Println()
		fmt.Println(metaStyle.Render("more results available"))
	}
}
