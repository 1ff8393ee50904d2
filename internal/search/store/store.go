// Package store owns the shared search state: query, filters, sort,
// result page, loading/error flags and session history. Every mutation goes
// through a named operation; no other component touches results, page or
// filters directly. Asynchronous responses are committed through Apply/Fail
// operations guarded by a request generation number, so only the most
// recently issued page-1 search can reach state (last-call-wins), and a
// load-more response from a superseded generation is dropped.
//
// The store is single-goroutine by design: it is owned by the UI update
// loop and does no locking of its own.
package store

import (
	"strings"
	"time"

	"searchdeck/internal/domain"
	"searchdeck/internal/eventbus"
)

// FilterField names one of the set-valued filter fields
type FilterField string

const (
	FilterCategories   FilterField = "categories"
	FilterTags         FilterField = "tags"
	FilterAuthors      FilterField = "authors"
	FilterContentTypes FilterField = "contentTypes"
	FilterStatuses     FilterField = "statuses"
)

// Store is the single source of truth for search state
type Store struct {
	bus eventbus.EventBus

	query   string
	filters domain.Filters
	sortBy  domain.SortOption
	sortDir domain.SortDirection

	results      []domain.SearchResult
	totalCount   int
	page         int
	pageSize     int
	hasMore      bool
	searchTimeMs float64
	stats        *domain.ResultStats

	loading     bool
	loadingMore bool
	errMsg      string

	history *History

	// seq is the generation of the current page-1 search; bumped by
	// BeginSearch and page-1 Retry. Responses carrying an older seq are
	// stale and must not be applied.
	seq        uint64
	lastParams *domain.SearchParams
}

// New creates a store. bus may be nil when no side-channel consumers exist
// (the one-shot CLI, unit tests).
func New(bus eventbus.EventBus, pageSize, historyLimit int) *Store {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Store{
		bus:      bus,
		sortBy:   domain.SortRelevance,
		sortDir:  domain.SortDesc,
		page:     1,
		pageSize: pageSize,
		history:  NewHistory(historyLimit),
	}
}

// SetQuery updates the live query only; it does not trigger a search and
// leaves filters untouched
func (s *Store) SetQuery(text string) {
	s.query = text
}

// UpdateFilter replaces one set-valued filter field; other fields keep
// their values
func (s *Store) UpdateFilter(field FilterField, values []string) {
	values = append([]string(nil), values...)
	switch field {
	case FilterCategories:
		s.filters.Categories = values
	case FilterTags:
		s.filters.Tags = values
	case FilterAuthors:
		s.filters.Authors = values
	case FilterContentTypes:
		s.filters.ContentTypes = values
	case FilterStatuses:
		s.filters.Statuses = values
	}
}

// ToggleFilterValue adds the value to the field if absent, removes it if
// present. Used by the facet panel.
func (s *Store) ToggleFilterValue(field FilterField, value string) {
	current := s.filterValues(field)
	for i, v := range current {
		if v == value {
			s.UpdateFilter(field, append(current[:i:i], current[i+1:]...))
			return
		}
	}
	s.UpdateFilter(field, append(current, value))
}

func (s *Store) filterValues(field FilterField) []string {
	switch field {
	case FilterCategories:
		return append([]string(nil), s.filters.Categories...)
	case FilterTags:
		return append([]string(nil), s.filters.Tags...)
	case FilterAuthors:
		return append([]string(nil), s.filters.Authors...)
	case FilterContentTypes:
		return append([]string(nil), s.filters.ContentTypes...)
	case FilterStatuses:
		return append([]string(nil), s.filters.Statuses...)
	}
	return nil
}

// SetDateRange sets the date window filter; a nil bound means unconstrained
func (s *Store) SetDateRange(from, to *time.Time) {
	s.filters.DateFrom = from
	s.filters.DateTo = to
}

// ClearFilters resets filters to the empty shape; the query is unchanged
func (s *Store) ClearFilters() {
	s.filters = domain.Filters{}
}

// SetSortBy updates the sort option. An empty direction keeps the current
// direction.
func (s *Store) SetSortBy(option domain.SortOption, direction domain.SortDirection) {
	s.sortBy = option
	if direction != "" {
		s.sortDir = direction
	}
}

// BeginSearch issues a page-1 search with the current query, filters and
// sort. It supersedes any in-flight search or load-more: their responses
// will carry a stale generation and be discarded. The caller executes the
// returned params against the gateway and commits via ApplySearch or
// FailSearch with the returned sequence.
func (s *Store) BeginSearch() (domain.SearchParams, uint64) {
	s.seq++
	s.loading = true
	s.loadingMore = false
	s.errMsg = ""

	params := s.currentParams(1)
	s.lastParams = &params

	s.publish(eventbus.SearchStartedEvent{Query: params.Query, Page: 1})
	return params, s.seq
}

// ApplySearch commits a page-1 response. Returns false when the response is
// stale (a newer search was issued) and state was left untouched.
func (s *Store) ApplySearch(seq uint64, page *domain.ResultPage) bool {
	if seq != s.seq || !s.loading {
		return false
	}

	s.results = append([]domain.SearchResult(nil), page.Results...)
	s.totalCount = page.TotalCount
	s.page = 1
	if page.PageSize > 0 {
		s.pageSize = page.PageSize
	}
	s.hasMore = s.page*s.pageSize < s.totalCount
	s.searchTimeMs = page.SearchTimeMs
	s.stats = page.Stats
	s.loading = false
	s.errMsg = ""

	if q := strings.TrimSpace(s.lastParams.Query); q != "" {
		s.history.Add(q, s.totalCount)
		s.publish(eventbus.HistoryChangedEvent{Entries: s.history.Entries()})
	}

	s.publish(eventbus.SearchCompletedEvent{
		Query:       s.lastParams.Query,
		Page:        1,
		ResultCount: len(s.results),
		TotalCount:  s.totalCount,
		TimeMs:      s.searchTimeMs,
	})
	return true
}

// FailSearch records a page-1 failure: loading clears, the message is
// surfaced and results are emptied
func (s *Store) FailSearch(seq uint64, err error) bool {
	if seq != s.seq || !s.loading {
		return false
	}

	s.loading = false
	s.errMsg = err.Error()
	s.results = nil
	s.totalCount = 0
	s.hasMore = false
	s.stats = nil

	s.publish(eventbus.SearchFailedEvent{Query: s.lastParams.Query, Page: 1, Message: s.errMsg})
	return true
}

// BeginLoadMore issues a fetch for the next page with query, filters and
// sort identical to the committed result set. It is a no-op (ok=false) when
// there is nothing more to load or a load is already in flight.
func (s *Store) BeginLoadMore() (domain.SearchParams, uint64, bool) {
	if !s.hasMore || s.loading || s.loadingMore || s.lastParams == nil {
		return domain.SearchParams{}, 0, false
	}

	s.loadingMore = true
	s.errMsg = ""

	params := *s.lastParams
	params.Page = s.page + 1
	params.Filters = params.Filters.Clone()
	s.lastParams = &params

	s.publish(eventbus.SearchStartedEvent{Query: params.Query, Page: params.Page})
	return params, s.seq, true
}

// ApplyLoadMore appends the next page. A response from a superseded
// generation (a new page-1 search started meanwhile) is discarded.
func (s *Store) ApplyLoadMore(seq uint64, page *domain.ResultPage) bool {
	if seq != s.seq || !s.loadingMore {
		return false
	}

	s.results = append(s.results, page.Results...)
	if page.TotalCount > 0 {
		s.totalCount = page.TotalCount
	}
	s.page++
	s.hasMore = s.page*s.pageSize < s.totalCount
	s.loadingMore = false
	s.errMsg = ""

	s.publish(eventbus.SearchCompletedEvent{
		Query:       s.lastParams.Query,
		Page:        s.page,
		ResultCount: len(s.results),
		TotalCount:  s.totalCount,
		TimeMs:      page.SearchTimeMs,
	})
	return true
}

// FailLoadMore records a load-more failure; the already-shown results are
// preserved
func (s *Store) FailLoadMore(seq uint64, err error) bool {
	if seq != s.seq || !s.loadingMore {
		return false
	}

	s.loadingMore = false
	s.errMsg = err.Error()

	s.publish(eventbus.SearchFailedEvent{Query: s.lastParams.Query, Page: s.lastParams.Page, Message: s.errMsg})
	return true
}

// Retry reissues the last attempted request with parameters unchanged.
// A page-1 retry supersedes like BeginSearch; a load-more retry reuses the
// current generation and the in-flight guard.
func (s *Store) Retry() (domain.SearchParams, uint64, bool) {
	if s.lastParams == nil {
		return domain.SearchParams{}, 0, false
	}

	params := *s.lastParams
	params.Filters = params.Filters.Clone()
	s.errMsg = ""

	if params.Page <= 1 {
		s.seq++
		s.loading = true
		s.loadingMore = false
		s.publish(eventbus.SearchStartedEvent{Query: params.Query, Page: 1})
		return params, s.seq, true
	}

	if s.loadingMore {
		return domain.SearchParams{}, 0, false
	}
	s.loadingMore = true
	s.publish(eventbus.SearchStartedEvent{Query: params.Query, Page: params.Page})
	return params, s.seq, true
}

// AddToHistory records a search without going through a search lifecycle
func (s *Store) AddToHistory(query string, resultCount int) {
	if strings.TrimSpace(query) == "" {
		return
	}
	s.history.Add(strings.TrimSpace(query), resultCount)
	s.publish(eventbus.HistoryChangedEvent{Entries: s.history.Entries()})
}

// RemoveFromHistory deletes one history entry by id
func (s *Store) RemoveFromHistory(id string) {
	if s.history.Remove(id) {
		s.publish(eventbus.HistoryChangedEvent{Entries: s.history.Entries()})
	}
}

// RestoreHistory seeds the history list, e.g. from the saved config
func (s *Store) RestoreHistory(entries []domain.HistoryEntry) {
	s.history.Restore(entries)
}

// History returns the history entries, most recent first
func (s *Store) History() []domain.HistoryEntry {
	return s.history.Entries()
}

func (s *Store) currentParams(page int) domain.SearchParams {
	return domain.SearchParams{
		Query:         strings.TrimSpace(s.query),
		Filters:       s.filters.Clone(),
		SortBy:        s.sortBy,
		SortDirection: s.sortDir,
		Page:          page,
		PageSize:      s.pageSize,
	}
}

func (s *Store) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

// Read-only views

func (s *Store) Query() string                       { return s.query }
func (s *Store) Filters() domain.Filters             { return s.filters.Clone() }
func (s *Store) SortBy() domain.SortOption           { return s.sortBy }
func (s *Store) SortDirection() domain.SortDirection { return s.sortDir }
func (s *Store) Results() []domain.SearchResult {
	return append([]domain.SearchResult(nil), s.results...)
}
func (s *Store) TotalCount() int                { return s.totalCount }
func (s *Store) Page() int                      { return s.page }
func (s *Store) PageSize() int                  { return s.pageSize }
func (s *Store) HasMore() bool                  { return s.hasMore }
func (s *Store) Loading() bool                  { return s.loading }
func (s *Store) LoadingMore() bool              { return s.loadingMore }
func (s *Store) Err() string                    { return s.errMsg }
func (s *Store) SearchTime() float64            { return s.searchTimeMs }
func (s *Store) Stats() *domain.ResultStats     { return s.stats }
func (s *Store) LastParams() *domain.SearchParams {
	if s.lastParams == nil {
		return nil
	}
	p := *s.lastParams
	p.Filters = p.Filters.Clone()
	return &p
}
