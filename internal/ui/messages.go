package ui

import (
	"searchdeck/internal/domain"
)

// popularMsg contains the popular queries fetched at startup
type popularMsg struct {
	queries []string
	err     error
}

// facetsMsg contains the filter facets fetched at startup
type facetsMsg struct {
	facets *domain.FilterFacets
	err    error
}

// autocompleteMsg contains flat suggestions for a fetch generation
type autocompleteMsg struct {
	seq   uint64
	items []domain.Suggestion
	err   error
}

// enhancedMsg contains categorized suggestions for a fetch generation
type enhancedMsg struct {
	seq uint64
	set domain.EnhancedSuggestions
	err error
}

// searchMsg contains a page-1 search response for a search generation
type searchMsg struct {
	seq  uint64
	page *domain.ResultPage
	err  error
}

// loadMoreMsg contains a next-page response for a search generation
type loadMoreMsg struct {
	seq  uint64
	page *domain.ResultPage
	err  error
}

// documentMsg contains a fetched post body for the reading view
type documentMsg struct {
	id       string
	position int
	doc      *domain.Document
	err      error
}

// readerClosedMsg signals the external pager has exited
type readerClosedMsg struct {
	err error
}
