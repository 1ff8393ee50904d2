package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"searchdeck/internal/config"
	"searchdeck/internal/domain"
	"searchdeck/internal/eventbus"
	"searchdeck/internal/gateway"
	"searchdeck/internal/search/analytics"
	"searchdeck/internal/search/store"
	"searchdeck/internal/ui"
)

// TuiCommand creates the interactive search command
func TuiCommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactive search (default)",
		Action: func(ctx context.Context, c *cli.Command) error {
			return RunTUI(c.String("config"), c.Bool("debug"))
		},
	}
}

// RunTUI wires the services and runs the interactive program until exit
func RunTUI(configPath string, debug bool) error {
	setupLogging(debug)

	svc := config.NewConfigService()
	cfg, err := loadConfig(svc, configPath)
	if err != nil {
		return err
	}

	bus := eventbus.New()
	defer bus.Close()

	client := newGatewayClient(cfg)

	st := store.New(bus, cfg.Search.PageSize, cfg.Search.HistoryLimit)
	st.RestoreHistory(cfg.SavedHistory())

	recorder := analytics.New(client, 64)
	defer recorder.Close()
	wireAnalytics(bus, recorder)

	model := ui.NewModel(cfg, bus, st, client)
	program := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(program)

	_, runErr := program.Run()

	if cfg.UISettings.SaveHistoryOnExit {
		cfg.SetHistory(st.History())
		if saveErr := svc.Save(cfg); saveErr != nil {
			log.Warn().Err(saveErr).Msg("failed to save history on exit")
		}
	}

	return runErr
}

// wireAnalytics subscribes the best-effort usage recorder to the bus.
// Searches are recorded once the page-1 response has committed, so the
// record carries the real result count.
func wireAnalytics(bus eventbus.EventBus, recorder *analytics.Recorder) {
	bus.Subscribe(eventbus.EventSearchCompleted, func(event eventbus.DomainEvent) {
		e, ok := event.(eventbus.SearchCompletedEvent)
		if !ok || e.Page != 1 || e.Query == "" {
			return
		}
		recorder.Record(domain.AnalyticsRecord{
			Query:       e.Query,
			ResultCount: e.TotalCount,
		})
	})
	bus.Subscribe(eventbus.EventResultOpened, func(event eventbus.DomainEvent) {
		e, ok := event.(eventbus.ResultOpenedEvent)
		if !ok {
			return
		}
		recorder.Record(domain.AnalyticsRecord{
			Query:           e.Query,
			ClickedResultID: e.ResultID,
			ClickPosition:   e.Position,
		})
	})
}

func loadConfig(svc config.ConfigService, path string) (*config.Config, error) {
	if path != "" {
		cfg, err := svc.LoadFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newGatewayClient(cfg *config.Config) *gateway.Client {
	return gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Token, cfg.Gateway.Timeout())
}

// setupLogging sends logs to a file so the TUI owns the terminal
func setupLogging(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	logDir := filepath.Join(cacheDir, "searchdeck")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Logger = zerolog.Nop()
		return
	}
	logFile, err := os.OpenFile(filepath.Join(logDir, "searchdeck.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Logger = zerolog.Nop()
		return
	}
	log.Logger = zerolog.New(logFile).With().Timestamp().Logger()
}
