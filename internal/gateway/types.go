package gateway

import (
	"time"

	"searchdeck/internal/domain"
)

// Wire DTOs for the search service JSON API. Kept separate from the domain
// types so backend field renames stay contained here.

type resultDoc struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Author       string    `json:"author"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	PublishedAt  time.Time `json:"publishedAt"`
	ViewCount    int       `json:"viewCount"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	Score        float64   `json:"score"`
}

type resultStats struct {
	Took     int64   `json:"took"`
	MaxScore float64 `json:"maxScore"`
}

type searchResponse struct {
	Results      []resultDoc  `json:"results"`
	TotalCount   int          `json:"totalCount"`
	Page         int          `json:"page"`
	PageSize     int          `json:"pageSize"`
	HasMore      bool         `json:"hasMore"`
	SearchTimeMs float64      `json:"searchTimeMs"`
	Stats        *resultStats `json:"stats,omitempty"`
}

type suggestionDoc struct {
	Text  string `json:"text"`
	Type  string `json:"type"`
	Count int    `json:"count,omitempty"`
}

type enhancedResponse struct {
	Queries    []suggestionDoc `json:"queries"`
	Posts      []suggestionDoc `json:"posts"`
	Categories []suggestionDoc `json:"categories"`
	Tags       []suggestionDoc `json:"tags"`
	Authors    []suggestionDoc `json:"authors"`
}

type popularResponse struct {
	Queries []string `json:"queries"`
}

type facetDoc struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type facetsResponse struct {
	Categories []facetDoc `json:"categories"`
	Tags       []facetDoc `json:"tags"`
	Authors    []facetDoc `json:"authors"`
	Years      []facetDoc `json:"years"`
}

type analyticsRequest struct {
	Query           string `json:"query"`
	ResultCount     int    `json:"resultCount"`
	ClickedResultID string `json:"clickedResultId,omitempty"`
	ClickPosition   int    `json:"clickPosition,omitempty"`
}

type documentResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (d resultDoc) toDomain() domain.SearchResult {
	return domain.SearchResult{
		ID:           d.ID,
		Title:        d.Title,
		Summary:      d.Summary,
		Author:       d.Author,
		Category:     d.Category,
		Tags:         d.Tags,
		PublishedAt:  d.PublishedAt,
		ViewCount:    d.ViewCount,
		LikeCount:    d.LikeCount,
		CommentCount: d.CommentCount,
		Score:        d.Score,
	}
}

func (r searchResponse) toDomain() *domain.ResultPage {
	page := &domain.ResultPage{
		TotalCount:   r.TotalCount,
		Page:         r.Page,
		PageSize:     r.PageSize,
		HasMore:      r.HasMore,
		SearchTimeMs: r.SearchTimeMs,
	}
	for _, doc := range r.Results {
		page.Results = append(page.Results, doc.toDomain())
	}
	if r.Stats != nil {
		page.Stats = &domain.ResultStats{Took: r.Stats.Took, MaxScore: r.Stats.MaxScore}
	}
	return page
}

func suggestionsToDomain(docs []suggestionDoc, fallback domain.SuggestionKind) []domain.Suggestion {
	var out []domain.Suggestion
	for _, d := range docs {
		kind := domain.SuggestionKind(d.Type)
		if d.Type == "" {
			kind = fallback
		}
		out = append(out, domain.Suggestion{Text: d.Text, Kind: kind, Count: d.Count})
	}
	return out
}

func facetsToDomain(docs []facetDoc) []domain.Facet {
	var out []domain.Facet
	for _, d := range docs {
		out = append(out, domain.Facet{Value: d.Value, Count: d.Count})
	}
	return out
}
