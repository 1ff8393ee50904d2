package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"searchdeck/internal/domain"
	"searchdeck/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	Gateway    GatewaySettings `toml:"gateway"`
	Search     SearchSettings  `toml:"search"`
	UISettings UISettings      `toml:"ui"`
	History    []SavedSearch   `toml:"history,omitempty"`
}

// GatewaySettings configures the remote search service client
type GatewaySettings struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// SearchSettings holds the search interaction tunables
type SearchSettings struct {
	DebounceMs     int `toml:"debounce_ms"`
	MinQueryLength int `toml:"min_query_length"`
	PageSize       int `toml:"page_size"`
	HistoryLimit   int `toml:"history_limit"`
	PopularLimit   int `toml:"popular_limit"`
	SuggestLimit   int `toml:"suggest_limit"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	InfiniteScroll    bool `toml:"infinite_scroll"`
	SaveHistoryOnExit bool `toml:"save_history_on_exit"`
	ShowSearchTime    bool `toml:"show_search_time"`
}

// SavedSearch is a history entry persisted between sessions
type SavedSearch struct {
	Query       string    `toml:"query"`
	ResultCount int       `toml:"result_count"`
	Timestamp   time.Time `toml:"timestamp"`
}

// Debounce returns the debounce interval as a duration
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// Timeout returns the gateway request timeout as a duration
func (g GatewaySettings) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// SavedHistory converts persisted history into domain entries, oldest last
func (c *Config) SavedHistory() []domain.HistoryEntry {
	entries := make([]domain.HistoryEntry, 0, len(c.History))
	for _, s := range c.History {
		entries = append(entries, domain.HistoryEntry{
			Query:       s.Query,
			ResultCount: s.ResultCount,
			Timestamp:   s.Timestamp,
		})
	}
	return entries
}

// SetHistory replaces the persisted history from domain entries
func (c *Config) SetHistory(entries []domain.HistoryEntry) {
	c.History = make([]SavedSearch, 0, len(entries))
	for _, e := range entries {
		c.History = append(c.History, SavedSearch{
			Query:       e.Query,
			ResultCount: e.ResultCount,
			Timestamp:   e.Timestamp,
		})
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	deckDir := filepath.Join(configDir, "searchdeck")
	_ = os.MkdirAll(deckDir, 0755)

	return &configService{
		filePath: filepath.Join(deckDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Path returns the default config file path
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the default path, falling back to
// defaults when the file does not exist yet
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the default path
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults fills zero-valued tunables so an older or hand-edited
// config file still yields a usable setup
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = def.Gateway.BaseURL
	}
	if cfg.Gateway.TimeoutSeconds <= 0 {
		cfg.Gateway.TimeoutSeconds = def.Gateway.TimeoutSeconds
	}
	if cfg.Search.DebounceMs <= 0 {
		cfg.Search.DebounceMs = def.Search.DebounceMs
	}
	if cfg.Search.MinQueryLength <= 0 {
		cfg.Search.MinQueryLength = def.Search.MinQueryLength
	}
	if cfg.Search.PageSize <= 0 {
		cfg.Search.PageSize = def.Search.PageSize
	}
	if cfg.Search.HistoryLimit <= 0 {
		cfg.Search.HistoryLimit = def.Search.HistoryLimit
	}
	if cfg.Search.PopularLimit <= 0 {
		cfg.Search.PopularLimit = def.Search.PopularLimit
	}
	if cfg.Search.SuggestLimit <= 0 {
		cfg.Search.SuggestLimit = def.Search.SuggestLimit
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Gateway: GatewaySettings{
			BaseURL:        "http://localhost:8080",
			TimeoutSeconds: 15,
		},
		Search: SearchSettings{
			DebounceMs:     300,
			MinQueryLength: 2,
			PageSize:       10,
			HistoryLimit:   20,
			PopularLimit:   10,
			SuggestLimit:   8,
		},
		UISettings: UISettings{
			InfiniteScroll:    true,
			SaveHistoryOnExit: true,
			ShowSearchTime:    true,
		},
	}
}
