package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted      EventType = "SearchStarted"
	EventSearchCompleted    EventType = "SearchCompleted"
	EventSearchFailed       EventType = "SearchFailed"
	EventSuggestionsUpdated EventType = "SuggestionsUpdated"
	EventHistoryChanged     EventType = "HistoryChanged"
	EventResultOpened       EventType = "ResultOpened"
	EventConfigSaved        EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a page-1 search is issued
type SearchStartedEvent struct {
	Query string
	Page  int
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a search response is committed to state
type SearchCompletedEvent struct {
	Query       string
	Page        int
	ResultCount int
	TotalCount  int
	TimeMs      float64
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a search fails
type SearchFailedEvent struct {
	Query   string
	Page    int
	Message string
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SuggestionsUpdatedEvent is emitted when a fresh suggestion set is applied
type SuggestionsUpdatedEvent struct {
	Query string
	Count int
}

func (e SuggestionsUpdatedEvent) Type() EventType { return EventSuggestionsUpdated }

// HistoryChangedEvent is emitted when the search history list changes
type HistoryChangedEvent struct {
	Entries []HistoryEntry
}

func (e HistoryChangedEvent) Type() EventType { return EventHistoryChanged }

// ResultOpenedEvent is emitted when the user opens a result from the list
type ResultOpenedEvent struct {
	Query    string
	ResultID string
	Position int
}

func (e ResultOpenedEvent) Type() EventType { return EventResultOpened }

// ConfigSavedEvent is emitted after the config file has been written
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
