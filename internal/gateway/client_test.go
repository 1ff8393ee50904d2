package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchdeck/internal/domain"
)

func TestSearchEncodesParams(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_ = json.NewEncoder(w).Encode(searchResponse{
			Results:      []resultDoc{{ID: "1", Title: "hit"}},
			TotalCount:   1,
			Page:         2,
			PageSize:     10,
			SearchTimeMs: 12.5,
		})
	}))
	defer srv.Close()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	client := NewClient(srv.URL, "secret", time.Second)
	page, err := client.Search(context.Background(), domain.SearchParams{
		Query: "terminal ui",
		Filters: domain.Filters{
			Categories: []string{"go", "tui"},
			Tags:       []string{"bubbletea"},
			DateFrom:   &from,
		},
		SortBy:        domain.SortViewCount,
		SortDirection: domain.SortAsc,
		Page:          2,
		PageSize:      10,
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/api/search", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "terminal ui", q.Get("q"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "10", q.Get("pageSize"))
	assert.Equal(t, "viewCount", q.Get("sortBy"))
	assert.Equal(t, "asc", q.Get("sortDirection"))
	assert.Equal(t, []string{"go", "tui"}, q["category"], "set filters repeat the parameter")
	assert.Equal(t, []string{"bubbletea"}, q["tag"])
	assert.Equal(t, "2024-03-01", q.Get("dateFrom"))
	assert.Empty(t, q.Get("dateTo"), "unset bounds are omitted")
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))

	require.Len(t, page.Results, 1)
	assert.Equal(t, "hit", page.Results[0].Title)
	assert.Equal(t, 12.5, page.SearchTimeMs)
}

func TestSearchDecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "index unavailable"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	_, err := client.Search(context.Background(), domain.SearchParams{Query: "x", Page: 1, PageSize: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index unavailable")
	assert.Contains(t, err.Error(), "502")
}

func TestSearchOpaqueErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	_, err := client.Search(context.Background(), domain.SearchParams{Query: "x", Page: 1, PageSize: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestAutocompleteFallbackKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/autocomplete", r.URL.Path)
		assert.Equal(t, "go", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode([]suggestionDoc{
			{Text: "go modules"},
			{Text: "Go Time", Type: "post"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	items, err := client.Autocomplete(context.Background(), "go", 8)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.SuggestionQuery, items[0].Kind, "untyped entries fall back to query kind")
	assert.Equal(t, domain.SuggestionPost, items[1].Kind)
}

func TestEnhancedSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/suggestions", r.URL.Path)
		_ = json.NewEncoder(w).Encode(enhancedResponse{
			Queries: []suggestionDoc{{Text: "golang"}},
			Tags:    []suggestionDoc{{Text: "tui", Count: 7}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	set, err := client.EnhancedSuggestions(context.Background(), "go")
	require.NoError(t, err)
	require.Len(t, set.Queries, 1)
	require.Len(t, set.Tags, 1)
	assert.Equal(t, domain.SuggestionTag, set.Tags[0].Kind)
	assert.Equal(t, 7, set.Tags[0].Count)
	assert.Empty(t, set.Posts)
}

func TestPopularQueries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/popular", r.URL.Path)
		_ = json.NewEncoder(w).Encode(popularResponse{Queries: []string{"golang", "tui"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	queries, err := client.PopularQueries(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "tui"}, queries)
}

func TestRecordSearchAnalytics(t *testing.T) {
	var body analyticsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/search/analytics", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	err := client.RecordSearchAnalytics(context.Background(), domain.AnalyticsRecord{
		Query:           "golang",
		ResultCount:     12,
		ClickedResultID: "post-9",
		ClickPosition:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, "golang", body.Query)
	assert.Equal(t, 12, body.ResultCount)
	assert.Equal(t, "post-9", body.ClickedResultID)
	assert.Equal(t, 3, body.ClickPosition)
}

func TestDocumentEscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/a%2Fb", r.URL.EscapedPath())
		_ = json.NewEncoder(w).Encode(documentResponse{ID: "a/b", Title: "slashed"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	doc, err := client.Document(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "slashed", doc.Title)
}
