package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"searchdeck/internal/domain"
)

// Gateway is the remote search service surface the UI depends on.
// internal/gateway.Client implements it; tests substitute fakes.
type Gateway interface {
	Search(ctx context.Context, params domain.SearchParams) (*domain.ResultPage, error)
	Autocomplete(ctx context.Context, query string, limit int) ([]domain.Suggestion, error)
	EnhancedSuggestions(ctx context.Context, query string) (*domain.EnhancedSuggestions, error)
	PopularQueries(ctx context.Context, limit int) ([]string, error)
	FilterFacets(ctx context.Context) (*domain.FilterFacets, error)
	Document(ctx context.Context, id string) (*domain.Document, error)
}

func (m *Model) fetchPopular() tea.Cmd {
	limit := m.cfg.Search.PopularLimit
	return func() tea.Msg {
		queries, err := m.gw.PopularQueries(context.Background(), limit)
		return popularMsg{queries: queries, err: err}
	}
}

func (m *Model) fetchFacets() tea.Cmd {
	return func() tea.Msg {
		facets, err := m.gw.FilterFacets(context.Background())
		return facetsMsg{facets: facets, err: err}
	}
}

func (m *Model) fetchAutocomplete(seq uint64, query string) tea.Cmd {
	limit := m.cfg.Search.SuggestLimit
	return func() tea.Msg {
		items, err := m.gw.Autocomplete(context.Background(), query, limit)
		return autocompleteMsg{seq: seq, items: items, err: err}
	}
}

func (m *Model) fetchEnhanced(seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		set, err := m.gw.EnhancedSuggestions(context.Background(), query)
		if err != nil {
			return enhancedMsg{seq: seq, err: err}
		}
		return enhancedMsg{seq: seq, set: *set}
	}
}

func (m *Model) runSearch(seq uint64, params domain.SearchParams) tea.Cmd {
	return func() tea.Msg {
		page, err := m.gw.Search(context.Background(), params)
		return searchMsg{seq: seq, page: page, err: err}
	}
}

func (m *Model) runLoadMore(seq uint64, params domain.SearchParams) tea.Cmd {
	return func() tea.Msg {
		page, err := m.gw.Search(context.Background(), params)
		return loadMoreMsg{seq: seq, page: page, err: err}
	}
}

func (m *Model) fetchDocument(id string, position int) tea.Cmd {
	return func() tea.Msg {
		doc, err := m.gw.Document(context.Background(), id)
		return documentMsg{id: id, position: position, doc: doc, err: err}
	}
}
