// Package suggest merges heterogeneous suggestion sources — session
// history, popular queries, flat autocomplete and categorized suggestions —
// into ordered groups with a single flattened index for keyboard selection.
//
// The flattened index is never stored as an array: it is recomputed from
// the current group contents every time it is needed, so it cannot drift
// when one source's fetch resolves after another's. Responses are applied
// only when their fetch generation is still the latest issued, which keeps
// a slow response for an old query from overwriting fresh suggestions.
package suggest

import (
	"strings"

	"searchdeck/internal/domain"
	"searchdeck/internal/eventbus"
)

// historyTop is how many history entries are offered when the query is empty
const historyTop = 5

// Group is one named category of suggestion items
type Group struct {
	Kind  domain.SuggestionKind
	Label string
	Items []domain.Suggestion
}

// Aggregator owns the suggestion state and navigation
type Aggregator struct {
	bus            eventbus.EventBus
	minQueryLength int
	historyFn      func() []domain.HistoryEntry

	liveQuery    string
	fetchQuery   string
	popular      []domain.Suggestion
	autoComplete []domain.Suggestion
	enhanced     domain.EnhancedSuggestions

	open     bool
	selected int // flattened index, -1 means nothing selected

	seq uint64 // fetch generation; responses with an older seq are stale
}

// New creates an aggregator. historyFn supplies the current history list
// (most recent first); bus may be nil.
func New(bus eventbus.EventBus, minQueryLength int, historyFn func() []domain.HistoryEntry) *Aggregator {
	if minQueryLength <= 0 {
		minQueryLength = 2
	}
	return &Aggregator{
		bus:            bus,
		minQueryLength: minQueryLength,
		historyFn:      historyFn,
		selected:       -1,
	}
}

// SetPopular stores the popular queries fetched once at startup
func (a *Aggregator) SetPopular(queries []string) {
	a.popular = nil
	for _, q := range queries {
		a.popular = append(a.popular, domain.Suggestion{Text: q, Kind: domain.SuggestionPopular})
	}
}

// SetQuery tracks the live query. Selection resets because the rendered
// groups are about to change; fetched sets are cleared as soon as the query
// drops below the minimum length.
func (a *Aggregator) SetQuery(live string) {
	a.liveQuery = live
	a.selected = -1
	if len(strings.TrimSpace(live)) < a.minQueryLength {
		a.clearFetched()
	}
}

// BeginFetch starts a suggestion fetch generation for the debounced query.
// Returns ok=false when the query is too short to fetch for; fetched sets
// are cleared in that case.
func (a *Aggregator) BeginFetch(query string) (uint64, bool) {
	q := strings.TrimSpace(query)
	if len(q) < a.minQueryLength {
		a.clearFetched()
		return 0, false
	}
	a.seq++
	a.fetchQuery = q
	return a.seq, true
}

// ApplyAutocomplete commits flat autocomplete results; stale generations
// are discarded. The set is replaced wholesale, never merged.
func (a *Aggregator) ApplyAutocomplete(seq uint64, items []domain.Suggestion) bool {
	if seq != a.seq || seq == 0 {
		return false
	}
	a.autoComplete = append([]domain.Suggestion(nil), items...)
	a.publishUpdated()
	return true
}

// ApplyEnhanced commits categorized suggestions; stale generations are
// discarded
func (a *Aggregator) ApplyEnhanced(seq uint64, set domain.EnhancedSuggestions) bool {
	if seq != a.seq || seq == 0 {
		return false
	}
	a.enhanced = set
	a.publishUpdated()
	return true
}

// Groups returns the currently-rendered suggestion groups in fixed order.
// Empty query: history (top 5) then popular. Non-empty: autocomplete then
// the enhanced categories. A group is rendered only when non-empty.
func (a *Aggregator) Groups() []Group {
	var groups []Group

	if strings.TrimSpace(a.liveQuery) == "" {
		if a.historyFn != nil {
			entries := a.historyFn()
			if len(entries) > historyTop {
				entries = entries[:historyTop]
			}
			var items []domain.Suggestion
			for _, e := range entries {
				items = append(items, domain.Suggestion{
					Text:  e.Query,
					Kind:  domain.SuggestionHistory,
					Count: e.ResultCount,
				})
			}
			groups = appendGroup(groups, domain.SuggestionHistory, "Recent", items)
		}
		groups = appendGroup(groups, domain.SuggestionPopular, "Popular", a.popular)
		return groups
	}

	groups = appendGroup(groups, domain.SuggestionQuery, "Suggestions", a.autoComplete)
	groups = appendGroup(groups, domain.SuggestionQuery, "Queries", a.enhanced.Queries)
	groups = appendGroup(groups, domain.SuggestionPost, "Posts", a.enhanced.Posts)
	groups = appendGroup(groups, domain.SuggestionCategory, "Categories", a.enhanced.Categories)
	groups = appendGroup(groups, domain.SuggestionTag, "Tags", a.enhanced.Tags)
	groups = appendGroup(groups, domain.SuggestionAuthor, "Authors", a.enhanced.Authors)
	return groups
}

func appendGroup(groups []Group, kind domain.SuggestionKind, label string, items []domain.Suggestion) []Group {
	if len(items) == 0 {
		return groups
	}
	return append(groups, Group{Kind: kind, Label: label, Items: items})
}

// Total returns the flattened item count across all rendered groups
func (a *Aggregator) Total() int {
	total := 0
	for _, g := range a.Groups() {
		total += len(g.Items)
	}
	return total
}

// MoveDown advances the selection, wrapping from the last item to index 0
func (a *Aggregator) MoveDown() {
	total := a.Total()
	if total == 0 {
		a.selected = -1
		return
	}
	a.selected = (a.selected + 1) % total
}

// MoveUp moves the selection back, wrapping from index 0 to the last item
func (a *Aggregator) MoveUp() {
	total := a.Total()
	if total == 0 {
		a.selected = -1
		return
	}
	if a.selected <= 0 {
		a.selected = total - 1
		return
	}
	a.selected--
}

// Selected resolves the flattened index against the current groups.
// Resolution walks the groups in order and counts; nothing is cached.
func (a *Aggregator) Selected() (domain.Suggestion, bool) {
	if a.selected < 0 {
		return domain.Suggestion{}, false
	}
	idx := a.selected
	for _, g := range a.Groups() {
		if idx < len(g.Items) {
			return g.Items[idx], true
		}
		idx -= len(g.Items)
	}
	return domain.Suggestion{}, false
}

// SelectedIndex returns the flattened selection index, -1 for none
func (a *Aggregator) SelectedIndex() int {
	if a.selected >= a.Total() {
		return -1
	}
	return a.selected
}

// AutoComplete returns the current flat autocomplete set
func (a *Aggregator) AutoComplete() []domain.Suggestion {
	return append([]domain.Suggestion(nil), a.autoComplete...)
}

// Open shows the suggestion panel
func (a *Aggregator) Open() {
	a.open = true
}

// Close hides the panel and drops the selection; the query is not touched
func (a *Aggregator) Close() {
	a.open = false
	a.selected = -1
}

// IsOpen reports whether the panel is showing
func (a *Aggregator) IsOpen() bool {
	return a.open
}

func (a *Aggregator) clearFetched() {
	a.autoComplete = nil
	a.enhanced = domain.EnhancedSuggestions{}
	a.fetchQuery = ""
}

func (a *Aggregator) publishUpdated() {
	if a.bus != nil {
		a.bus.Publish(eventbus.SuggestionsUpdatedEvent{Query: a.fetchQuery, Count: a.Total()})
	}
}
