package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"searchdeck/internal/domain"
)

// Client is a search service API client
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new search service client
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search executes a paginated search
func (c *Client) Search(ctx context.Context, params domain.SearchParams) (*domain.ResultPage, error) {
	q := url.Values{}
	q.Set("q", params.Query)
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("pageSize", strconv.Itoa(params.PageSize))
	if params.SortBy != "" {
		q.Set("sortBy", string(params.SortBy))
	}
	if params.SortDirection != "" {
		q.Set("sortDirection", string(params.SortDirection))
	}
	encodeFilters(q, params.Filters)

	var resp searchResponse
	if err := c.get(ctx, "/api/search", q, &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return resp.toDomain(), nil
}

// Autocomplete fetches flat completion suggestions for a query prefix
func (c *Client) Autocomplete(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var docs []suggestionDoc
	if err := c.get(ctx, "/api/search/autocomplete", q, &docs); err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	return suggestionsToDomain(docs, domain.SuggestionQuery), nil
}

// EnhancedSuggestions fetches categorized suggestions for a query prefix
func (c *Client) EnhancedSuggestions(ctx context.Context, query string) (*domain.EnhancedSuggestions, error) {
	q := url.Values{}
	q.Set("q", query)

	var resp enhancedResponse
	if err := c.get(ctx, "/api/search/suggestions", q, &resp); err != nil {
		return nil, fmt.Errorf("enhanced suggestions: %w", err)
	}
	return &domain.EnhancedSuggestions{
		Queries:    suggestionsToDomain(resp.Queries, domain.SuggestionQuery),
		Posts:      suggestionsToDomain(resp.Posts, domain.SuggestionPost),
		Categories: suggestionsToDomain(resp.Categories, domain.SuggestionCategory),
		Tags:       suggestionsToDomain(resp.Tags, domain.SuggestionTag),
		Authors:    suggestionsToDomain(resp.Authors, domain.SuggestionAuthor),
	}, nil
}

// PopularQueries fetches the most popular search terms
func (c *Client) PopularQueries(ctx context.Context, limit int) ([]string, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp popularResponse
	if err := c.get(ctx, "/api/search/popular", q, &resp); err != nil {
		return nil, fmt.Errorf("popular queries: %w", err)
	}
	return resp.Queries, nil
}

// FilterFacets fetches the filterable values and their counts
func (c *Client) FilterFacets(ctx context.Context) (*domain.FilterFacets, error) {
	var resp facetsResponse
	if err := c.get(ctx, "/api/search/facets", nil, &resp); err != nil {
		return nil, fmt.Errorf("filter facets: %w", err)
	}
	return &domain.FilterFacets{
		Categories: facetsToDomain(resp.Categories),
		Tags:       facetsToDomain(resp.Tags),
		Authors:    facetsToDomain(resp.Authors),
		Years:      facetsToDomain(resp.Years),
	}, nil
}

// RecordSearchAnalytics reports a usage event. Callers treat this as
// fire-and-forget; the error is only useful for debug logging.
func (c *Client) RecordSearchAnalytics(ctx context.Context, rec domain.AnalyticsRecord) error {
	body := analyticsRequest{
		Query:           rec.Query,
		ResultCount:     rec.ResultCount,
		ClickedResultID: rec.ClickedResultID,
		ClickPosition:   rec.ClickPosition,
	}
	if err := c.post(ctx, "/api/search/analytics", body, nil); err != nil {
		return fmt.Errorf("record analytics: %w", err)
	}
	return nil
}

// Document fetches the full body of a post for the reading view
func (c *Client) Document(ctx context.Context, id string) (*domain.Document, error) {
	var resp documentResponse
	if err := c.get(ctx, "/api/posts/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return &domain.Document{
		ID:          resp.ID,
		Title:       resp.Title,
		Author:      resp.Author,
		Content:     resp.Content,
		PublishedAt: resp.PublishedAt,
	}, nil
}

// get performs a GET request and decodes the JSON response into result
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// encodeFilters appends the filter fields as repeated query parameters.
// Empty fields are omitted: no constraint, not "exclude all".
func encodeFilters(q url.Values, f domain.Filters) {
	for _, c := range f.Categories {
		q.Add("category", c)
	}
	for _, t := range f.Tags {
		q.Add("tag", t)
	}
	for _, a := range f.Authors {
		q.Add("author", a)
	}
	for _, ct := range f.ContentTypes {
		q.Add("contentType", ct)
	}
	for _, s := range f.Statuses {
		q.Add("status", s)
	}
	if f.DateFrom != nil {
		q.Set("dateFrom", f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		q.Set("dateTo", f.DateTo.Format("2006-01-02"))
	}
}
