package views

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"searchdeck/internal/domain"
	"searchdeck/internal/search/suggest"
)

// ResultBlockHeight is how many rendered lines one result occupies;
// the results controller uses it to keep the selection visible
const ResultBlockHeight = 3

// Renderer turns search state into terminal output
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a renderer with default styles
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// RenderSearchBar renders the query input line
func (r *Renderer) RenderSearchBar(inputView string, focused, recording bool, width int) string {
	style := r.styles.SearchBar
	if focused {
		style = r.styles.SearchBarFocused
	}
	bar := "? " + inputView
	if recording {
		bar += " " + r.styles.Recording.Render("● rec")
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(bar)
}

// RenderSuggestions renders the grouped suggestion panel with the
// flattened selection highlighted
func (r *Renderer) RenderSuggestions(groups []suggest.Group, selected int) string {
	if len(groups) == 0 {
		return r.styles.Panel.Render(r.styles.Dim.Render("no suggestions"))
	}

	var b strings.Builder
	idx := 0
	for gi, g := range groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.styles.GroupLabel.Render(g.Label))
		b.WriteString("\n")
		for _, item := range g.Items {
			line := "  " + item.Text
			if item.Count > 0 {
				line += " " + r.styles.SuggestionCount.Render(fmt.Sprintf("(%d)", item.Count))
			}
			if idx == selected {
				b.WriteString(r.styles.SuggestionActive.Render("▸" + line[1:]))
			} else {
				b.WriteString(r.styles.Suggestion.Render(line))
			}
			b.WriteString("\n")
			idx++
		}
	}
	return r.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderResults renders the result list, one block per result
func (r *Renderer) RenderResults(results []domain.SearchResult, selected, width int) string {
	if len(results) == 0 {
		return r.styles.Dim.Render("no results")
	}

	var b strings.Builder
	for i, res := range results {
		title := res.Title
		if width > 8 {
			title = runewidth.Truncate(title, width-4, "...")
		}
		if i == selected {
			b.WriteString(r.styles.ResultActive.Render("▸ " + title))
		} else {
			b.WriteString(r.styles.ResultTitle.Render("  " + title))
		}
		b.WriteString("\n")

		meta := fmt.Sprintf("  %s · %s · %s · %d views · %d likes · %d comments",
			res.Author, res.Category, res.PublishedAt.Format("2006-01-02"),
			res.ViewCount, res.LikeCount, res.CommentCount)
		b.WriteString(r.styles.ResultMeta.Render(meta))
		b.WriteString("\n")

		summary := strings.ReplaceAll(res.Summary, "\n", " ")
		if width > 8 {
			summary = runewidth.Truncate(summary, width-4, "...")
		}
		b.WriteString(r.styles.ResultSummary.Render("  " + summary))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderStatus renders the status line under the result list
func (r *Renderer) RenderStatus(state StatusState) string {
	if state.Err != "" {
		return r.styles.StatusError.Render("✗ "+state.Err) + " " + r.styles.Dim.Render("(r to retry)")
	}

	var parts []string
	if state.Loading {
		parts = append(parts, state.SpinnerView+" searching…")
	} else if state.TotalCount > 0 || state.Query != "" {
		count := fmt.Sprintf("%d/%d results", state.Shown, state.TotalCount)
		if state.ShowSearchTime && state.SearchTimeMs > 0 {
			count += fmt.Sprintf(" in %.0fms", state.SearchTimeMs)
		}
		parts = append(parts, count)
		if state.LoadingMore {
			parts = append(parts, state.SpinnerView+" loading more…")
		} else if state.HasMore {
			parts = append(parts, "more available")
		}
	}
	parts = append(parts, fmt.Sprintf("sort: %s %s", state.SortBy, state.SortDirection))
	if state.ActiveFilters > 0 {
		parts = append(parts, r.styles.Filter.Render(fmt.Sprintf("%d filters", state.ActiveFilters)))
	}
	return r.styles.Status.Render(strings.Join(parts, "  ·  "))
}

// StatusState bundles everything the status line shows
type StatusState struct {
	Query          string
	Loading        bool
	LoadingMore    bool
	HasMore        bool
	Shown          int
	TotalCount     int
	SearchTimeMs   float64
	ShowSearchTime bool
	Err            string
	SortBy         domain.SortOption
	SortDirection  domain.SortDirection
	ActiveFilters  int
	SpinnerView    string
}

// FacetRow is one selectable row in the facet panel
type FacetRow struct {
	Label  string
	Value  string
	Count  int
	Active bool
	Header bool
}

// RenderFacets renders the filter facet panel
func (r *Renderer) RenderFacets(rows []FacetRow, cursor int) string {
	if len(rows) == 0 {
		return r.styles.FacetBox.Render(r.styles.Dim.Render("no facets"))
	}

	var b strings.Builder
	b.WriteString(r.styles.GroupLabel.Render("Filters"))
	b.WriteString("\n")
	sel := 0
	for _, row := range rows {
		if row.Header {
			b.WriteString(r.styles.ResultMeta.Render(row.Label))
			b.WriteString("\n")
			continue
		}
		mark := "[ ]"
		line := fmt.Sprintf("%s %s (%d)", mark, row.Value, row.Count)
		if row.Active {
			line = fmt.Sprintf("%s %s (%d)", r.styles.FacetOn.Render("[x]"), row.Value, row.Count)
		}
		if sel == cursor {
			b.WriteString(r.styles.FacetActive.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		sel++
	}
	b.WriteString(r.styles.Help.Render("space toggle · c clear · f close"))
	return r.styles.FacetBox.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderHelp renders the one-line key hint footer
func (r *Renderer) RenderHelp(focused, hasVoice bool) string {
	if focused {
		return r.styles.Help.Render("↑/↓ navigate · enter search · esc done · ctrl+c quit")
	}
	hint := "/ search · j/k move · enter read · m more · s sort · o direction · f filters · r retry"
	if hasVoice {
		hint += " · v voice"
	}
	hint += " · q quit"
	return r.styles.Help.Render(hint)
}

// Title renders the application title bar
func (r *Renderer) Title() string {
	return r.styles.Title.Render("searchdeck")
}
