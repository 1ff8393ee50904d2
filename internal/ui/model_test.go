package ui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchdeck/internal/config"
	"searchdeck/internal/domain"
	"searchdeck/internal/search/store"
)

// fakeGateway answers searches from a query-keyed table
type fakeGateway struct {
	mu    sync.Mutex
	pages map[string]*domain.ResultPage
}

func (f *fakeGateway) Search(ctx context.Context, params domain.SearchParams) (*domain.ResultPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if page, ok := f.pages[params.Query]; ok {
		return page, nil
	}
	return &domain.ResultPage{Page: params.Page, PageSize: params.PageSize}, nil
}

func (f *fakeGateway) Autocomplete(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	return []domain.Suggestion{{Text: query + " completion", Kind: domain.SuggestionQuery}}, nil
}

func (f *fakeGateway) EnhancedSuggestions(ctx context.Context, query string) (*domain.EnhancedSuggestions, error) {
	return &domain.EnhancedSuggestions{}, nil
}

func (f *fakeGateway) PopularQueries(ctx context.Context, limit int) ([]string, error) {
	return []string{"trending"}, nil
}

func (f *fakeGateway) FilterFacets(ctx context.Context) (*domain.FilterFacets, error) {
	return &domain.FilterFacets{}, nil
}

func (f *fakeGateway) Document(ctx context.Context, id string) (*domain.Document, error) {
	return &domain.Document{ID: id, Title: "doc"}, nil
}

func pageFor(query string, total int) *domain.ResultPage {
	page := &domain.ResultPage{TotalCount: total, Page: 1, PageSize: 10}
	count := total
	if count > 10 {
		count = 10
	}
	for i := 0; i < count; i++ {
		page.Results = append(page.Results, domain.SearchResult{ID: query, Title: query})
	}
	return page
}

func newTestModel(gw *fakeGateway) *Model {
	cfg := config.DefaultConfig()
	st := store.New(nil, cfg.Search.PageSize, cfg.Search.HistoryLimit)
	return NewModel(cfg, nil, st, gw)
}

// collect executes a command tree and returns the leaf messages, skipping
// timer-based commands would be nice but ticks are short enough to just run
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch m := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collect(t, c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func typeQuery(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func submitAndCollect(t *testing.T, m *Model) []tea.Msg {
	t.Helper()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return collect(t, cmd)
}

func searchMsgOf(t *testing.T, msgs []tea.Msg) searchMsg {
	t.Helper()
	for _, msg := range msgs {
		if sm, ok := msg.(searchMsg); ok {
			return sm
		}
	}
	t.Fatal("no search response message produced")
	return searchMsg{}
}

func TestSubmitRunsSearch(t *testing.T) {
	gw := &fakeGateway{pages: map[string]*domain.ResultPage{
		"golang": pageFor("golang", 25),
	}}
	m := newTestModel(gw)
	m.Init()

	typeQuery(m, "golang")
	msgs := submitAndCollect(t, m)

	assert.True(t, m.store.Loading(), "search in flight after submit")

	m.Update(searchMsgOf(t, msgs))
	assert.False(t, m.store.Loading())
	assert.Len(t, m.store.Results(), 10)
	assert.Equal(t, 25, m.store.TotalCount())
	assert.True(t, m.store.HasMore())
	require.Len(t, m.store.History(), 1)
	assert.Equal(t, "golang", m.store.History()[0].Query)
}

func TestSlowResponseForOldSearchIgnored(t *testing.T) {
	gw := &fakeGateway{pages: map[string]*domain.ResultPage{
		"first":  pageFor("first", 30),
		"second": pageFor("second", 5),
	}}
	m := newTestModel(gw)
	m.Init()

	typeQuery(m, "first")
	firstMsgs := submitAndCollect(t, m)

	// refocus and submit a new query before the first response lands
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m.inputCtl.SetValue("second")
	m.store.SetQuery("second")
	secondMsgs := submitAndCollect(t, m)

	m.Update(searchMsgOf(t, secondMsgs))
	m.Update(searchMsgOf(t, firstMsgs))

	results := m.store.Results()
	require.Len(t, results, 5)
	assert.Equal(t, "second", results[0].Title, "late response for the old query must not land")
}

func TestManualLoadMoreAppends(t *testing.T) {
	gw := &fakeGateway{pages: map[string]*domain.ResultPage{
		"deep": pageFor("deep", 30),
	}}
	m := newTestModel(gw)
	m.Init()

	typeQuery(m, "deep")
	m.Update(searchMsgOf(t, submitAndCollect(t, m)))
	require.Len(t, m.store.Results(), 10)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	require.True(t, m.store.LoadingMore())
	for _, msg := range collect(t, cmd) {
		if lm, ok := msg.(loadMoreMsg); ok {
			m.Update(lm)
		}
	}
	assert.Len(t, m.store.Results(), 20)
	assert.Equal(t, 2, m.store.Page())
}

func TestEmptyQueryNotSubmitted(t *testing.T) {
	m := newTestModel(&fakeGateway{})
	m.Init()

	msgs := submitAndCollect(t, m)
	for _, msg := range msgs {
		_, isSearch := msg.(searchMsg)
		assert.False(t, isSearch, "empty query must not hit the gateway")
	}
	assert.False(t, m.store.Loading())
}

func TestSortCycleTriggersFreshSearch(t *testing.T) {
	gw := &fakeGateway{pages: map[string]*domain.ResultPage{
		"sorted": pageFor("sorted", 30),
	}}
	m := newTestModel(gw)
	m.Init()

	typeQuery(m, "sorted")
	m.Update(searchMsgOf(t, submitAndCollect(t, m)))

	before := m.store.SortBy()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.NotEqual(t, before, m.store.SortBy())
	assert.True(t, m.store.Loading(), "sort change issues a page-1 search")

	m.Update(searchMsgOf(t, collect(t, cmd)))
	assert.Equal(t, 1, m.store.Page())
}
