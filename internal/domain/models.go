package domain

import "time"

// SortOption identifies a result ordering offered by the search backend
type SortOption string

const (
	SortRelevance    SortOption = "relevance"
	SortPublishedAt  SortOption = "publishedAt"
	SortUpdatedAt    SortOption = "updatedAt"
	SortTitle        SortOption = "title"
	SortViewCount    SortOption = "viewCount"
	SortLikeCount    SortOption = "likeCount"
	SortCommentCount SortOption = "commentCount"
)

// SortOptions lists all sort options in the order the UI cycles through them
var SortOptions = []SortOption{
	SortRelevance,
	SortPublishedAt,
	SortUpdatedAt,
	SortTitle,
	SortViewCount,
	SortLikeCount,
	SortCommentCount,
}

// SortDirection is the ordering direction
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Filters narrows a search. An empty slice or nil date means "no constraint",
// never "exclude all".
type Filters struct {
	Categories   []string
	Tags         []string
	Authors      []string
	DateFrom     *time.Time
	DateTo       *time.Time
	ContentTypes []string
	Statuses     []string
}

// IsZero reports whether no constraint is set
func (f Filters) IsZero() bool {
	return len(f.Categories) == 0 &&
		len(f.Tags) == 0 &&
		len(f.Authors) == 0 &&
		f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.ContentTypes) == 0 &&
		len(f.Statuses) == 0
}

// Clone returns a deep copy so callers can't mutate store-owned state
func (f Filters) Clone() Filters {
	c := Filters{
		Categories:   append([]string(nil), f.Categories...),
		Tags:         append([]string(nil), f.Tags...),
		Authors:      append([]string(nil), f.Authors...),
		ContentTypes: append([]string(nil), f.ContentTypes...),
		Statuses:     append([]string(nil), f.Statuses...),
	}
	if f.DateFrom != nil {
		t := *f.DateFrom
		c.DateFrom = &t
	}
	if f.DateTo != nil {
		t := *f.DateTo
		c.DateTo = &t
	}
	return c
}

// SearchParams is one fully-specified search request
type SearchParams struct {
	Query         string
	Filters       Filters
	SortBy        SortOption
	SortDirection SortDirection
	Page          int
	PageSize      int
}

// SearchResult is a single hit returned by the search backend
type SearchResult struct {
	ID           string
	Title        string
	Summary      string
	Author       string
	Category     string
	Tags         []string
	PublishedAt  time.Time
	ViewCount    int
	LikeCount    int
	CommentCount int
	Score        float64
}

// ResultStats carries backend-side execution stats for a search
type ResultStats struct {
	Took     int64
	MaxScore float64
}

// ResultPage is one page of results as returned by the gateway
type ResultPage struct {
	Results      []SearchResult
	TotalCount   int
	Page         int
	PageSize     int
	HasMore      bool
	SearchTimeMs float64
	Stats        *ResultStats
}

// SuggestionKind identifies which source a suggestion came from
type SuggestionKind string

const (
	SuggestionHistory  SuggestionKind = "history"
	SuggestionPopular  SuggestionKind = "popular"
	SuggestionQuery    SuggestionKind = "query"
	SuggestionPost     SuggestionKind = "post"
	SuggestionCategory SuggestionKind = "category"
	SuggestionTag      SuggestionKind = "tag"
	SuggestionAuthor   SuggestionKind = "author"
)

// Suggestion is a single completion candidate
type Suggestion struct {
	Text  string
	Kind  SuggestionKind
	Count int
}

// EnhancedSuggestions groups categorized suggestions by source
type EnhancedSuggestions struct {
	Queries    []Suggestion
	Posts      []Suggestion
	Categories []Suggestion
	Tags       []Suggestion
	Authors    []Suggestion
}

// IsZero reports whether every group is empty
func (e EnhancedSuggestions) IsZero() bool {
	return len(e.Queries) == 0 &&
		len(e.Posts) == 0 &&
		len(e.Categories) == 0 &&
		len(e.Tags) == 0 &&
		len(e.Authors) == 0
}

// HistoryEntry is one remembered search, most-recent-first in the list
type HistoryEntry struct {
	ID          string
	Query       string
	ResultCount int
	Timestamp   time.Time
}

// Facet is a filterable value with its document count
type Facet struct {
	Value string
	Count int
}

// FilterFacets are the filter options advertised by the backend
type FilterFacets struct {
	Categories []Facet
	Tags       []Facet
	Authors    []Facet
	Years      []Facet
}

// AnalyticsRecord is a best-effort usage event sent to the backend
type AnalyticsRecord struct {
	Query           string
	ResultCount     int
	ClickedResultID string
	ClickPosition   int
}

// Document is the full body of a post, fetched for the reading view
type Document struct {
	ID          string
	Title       string
	Author      string
	Content     string
	PublishedAt time.Time
}
