// Package ui is the Bubble Tea front end: it composes the search store, the
// suggestion aggregator, the input and result controllers and the renderer,
// and runs every gateway call as a command so the update loop never blocks.
package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"searchdeck/internal/config"
	"searchdeck/internal/domain"
	"searchdeck/internal/eventbus"
	"searchdeck/internal/search/store"
	"searchdeck/internal/search/suggest"
	"searchdeck/internal/ui/input"
	"searchdeck/internal/ui/results"
	"searchdeck/internal/ui/views"
)

// facetEntry maps one selectable facet row back to a store mutation
type facetEntry struct {
	field store.FilterField
	value string
	year  bool
}

// Model is the application model for the TUI
type Model struct {
	cfg *config.Config
	bus eventbus.EventBus
	gw  Gateway

	store    *store.Store
	agg      *suggest.Aggregator
	inputCtl *input.Controller
	listCtl  *results.Controller
	renderer *views.Renderer
	reader   *Reader

	facets       *domain.FilterFacets
	showFacets   bool
	facetCursor  int
	facetEntries []facetEntry

	width     int
	height    int
	statusMsg string
	quitting  bool

	onSubmit func(query string)
}

// NewModel creates the application model
func NewModel(cfg *config.Config, bus eventbus.EventBus, st *store.Store, gw Gateway) *Model {
	agg := suggest.New(bus, cfg.Search.MinQueryLength, st.History)
	return &Model{
		cfg:      cfg,
		bus:      bus,
		gw:       gw,
		store:    st,
		agg:      agg,
		inputCtl: input.New(cfg.Search.Debounce(), "search posts…"),
		listCtl:  results.New(cfg.UISettings.InfiniteScroll),
		renderer: views.NewRenderer(),
		reader:   NewReader(),
	}
}

// SetProgram hands the running program to the reader for terminal handoff
func (m *Model) SetProgram(p *tea.Program) {
	m.reader.SetProgram(p)
}

// SetTranscriber wires the optional voice input capability
func (m *Model) SetTranscriber(t input.Transcriber) {
	m.inputCtl.SetTranscriber(t)
}

// SetSubmitCallback registers a hook invoked with the trimmed query on every
// committed submit
func (m *Model) SetSubmitCallback(fn func(query string)) {
	m.onSubmit = fn
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.agg.Open()
	return tea.Batch(
		m.inputCtl.Focus(),
		textinput.Blink,
		m.fetchPopular(),
		m.fetchFacets(),
	)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.inputCtl.SetWidth(msg.Width - 8)
		m.listCtl.SetSize(msg.Width, m.listHeight())
		m.refreshList()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		cmd := m.listCtl.UpdateSpinner(msg)
		if m.store.Loading() || m.store.LoadingMore() {
			return m, cmd
		}
		return m, nil

	case input.DebounceElapsedMsg:
		return m.handleDebounce(msg)

	case input.PanelCloseMsg:
		if msg.FocusSeq == m.inputCtl.FocusSeq() && !m.inputCtl.Focused() {
			m.agg.Close()
		}
		return m, nil

	case input.TranscriptMsg:
		return m.handleTranscript(msg)

	case popularMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Msg("popular queries fetch failed")
			return m, nil
		}
		m.agg.SetPopular(msg.queries)
		return m, nil

	case facetsMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Msg("facets fetch failed")
			return m, nil
		}
		m.facets = msg.facets
		m.rebuildFacetRows()
		return m, nil

	case autocompleteMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Uint64("seq", msg.seq).Msg("autocomplete fetch failed")
			return m, nil
		}
		m.agg.ApplyAutocomplete(msg.seq, msg.items)
		return m, nil

	case enhancedMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Uint64("seq", msg.seq).Msg("enhanced suggestions fetch failed")
			return m, nil
		}
		m.agg.ApplyEnhanced(msg.seq, msg.set)
		return m, nil

	case searchMsg:
		if msg.err != nil {
			m.store.FailSearch(msg.seq, msg.err)
			m.refreshList()
			return m, nil
		}
		if m.store.ApplySearch(msg.seq, msg.page) {
			m.listCtl.ResetSelection()
			m.refreshList()
		}
		return m, nil

	case loadMoreMsg:
		if msg.err != nil {
			m.store.FailLoadMore(msg.seq, msg.err)
			m.refreshList()
			return m, nil
		}
		if m.store.ApplyLoadMore(msg.seq, msg.page) {
			m.refreshList()
		}
		return m, nil

	case documentMsg:
		return m.handleDocument(msg)

	case readerClosedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("reader: %v", msg.err)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleDebounce(msg input.DebounceElapsedMsg) (tea.Model, tea.Cmd) {
	query, ok := m.inputCtl.ResolveDebounce(msg.Seq)
	if !ok {
		return m, nil
	}
	seq, ok := m.agg.BeginFetch(query)
	if !ok {
		return m, nil
	}
	return m, tea.Batch(
		m.fetchAutocomplete(seq, strings.TrimSpace(query)),
		m.fetchEnhanced(seq, strings.TrimSpace(query)),
	)
}

func (m *Model) handleTranscript(msg input.TranscriptMsg) (tea.Model, tea.Cmd) {
	m.inputCtl.FinishVoice()
	if msg.Err != nil {
		// keep whatever is typed; only surface the failure
		m.statusMsg = fmt.Sprintf("voice: %v", msg.Err)
		log.Debug().Err(msg.Err).Msg("voice transcription failed")
		return m, nil
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return m, nil
	}
	m.inputCtl.SetValue(text)
	m.store.SetQuery(text)
	m.agg.SetQuery(text)
	return m, m.submit()
}

func (m *Model) handleDocument(msg documentMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusMsg = fmt.Sprintf("open: %v", msg.err)
		return m, nil
	}
	doc := msg.doc
	return m, func() tea.Msg {
		return readerClosedMsg{err: m.reader.Show(doc)}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputCtl.Focused() {
		return m.handleSearchKey(msg)
	}
	if m.showFacets {
		return m.handleFacetKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// immediate close, unlike tab's delayed one
		m.agg.Close()
		return m, m.inputCtl.Blur()

	case "tab":
		return m, m.inputCtl.Blur()

	case "down":
		if !m.agg.IsOpen() {
			m.agg.Open()
		}
		m.agg.MoveDown()
		return m, nil

	case "up":
		if !m.agg.IsOpen() {
			m.agg.Open()
		}
		m.agg.MoveUp()
		return m, nil

	case "enter":
		if m.agg.IsOpen() {
			if sug, ok := m.agg.Selected(); ok {
				m.inputCtl.SetValue(sug.Text)
				m.store.SetQuery(sug.Text)
				m.agg.SetQuery(sug.Text)
			}
		}
		return m, m.submit()

	case "ctrl+d":
		// remove the selected history entry without leaving the panel
		if sug, ok := m.agg.Selected(); ok && sug.Kind == domain.SuggestionHistory {
			for _, e := range m.store.History() {
				if e.Query == sug.Text {
					m.store.RemoveFromHistory(e.ID)
					break
				}
			}
		}
		return m, nil

	case "ctrl+v":
		return m, m.startVoice()
	}

	cmd, changed := m.inputCtl.UpdateText(msg)
	if !changed {
		return m, cmd
	}
	value := m.inputCtl.Value()
	m.store.SetQuery(value)
	m.agg.SetQuery(value)
	m.agg.Open()
	_, debCmd := m.inputCtl.BumpDebounce()
	return m, tea.Batch(cmd, debCmd)
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.agg.Open()
		return m, m.inputCtl.Focus()

	case "j", "down":
		m.listCtl.MoveDown(len(m.store.Results()))
		m.refreshList()
		m.listCtl.ScrollTo(views.ResultBlockHeight)
		return m, m.maybeLoadMore()

	case "k", "up":
		m.listCtl.MoveUp()
		m.refreshList()
		m.listCtl.ScrollTo(views.ResultBlockHeight)
		return m, nil

	case "enter":
		return m, m.openSelected()

	case "m":
		return m, m.loadMore()

	case "r":
		return m, m.retry()

	case "s":
		m.store.SetSortBy(nextSortOption(m.store.SortBy()), "")
		return m, m.startSearch()

	case "o":
		dir := domain.SortDesc
		if m.store.SortDirection() == domain.SortDesc {
			dir = domain.SortAsc
		}
		m.store.SetSortBy(m.store.SortBy(), dir)
		return m, m.startSearch()

	case "f":
		if m.facets != nil {
			m.showFacets = true
			m.rebuildFacetRows()
		}
		return m, nil

	case "v":
		return m, m.startVoice()
	}
	return m, nil
}

func (m *Model) handleFacetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f", "q":
		m.showFacets = false
		return m, nil

	case "j", "down":
		if m.facetCursor < len(m.facetEntries)-1 {
			m.facetCursor++
		}
		return m, nil

	case "k", "up":
		if m.facetCursor > 0 {
			m.facetCursor--
		}
		return m, nil

	case " ", "space", "enter":
		if m.facetCursor < 0 || m.facetCursor >= len(m.facetEntries) {
			return m, nil
		}
		entry := m.facetEntries[m.facetCursor]
		if entry.year {
			m.toggleYear(entry.value)
		} else {
			m.store.ToggleFilterValue(entry.field, entry.value)
		}
		m.rebuildFacetRows()
		return m, m.startSearch()

	case "c":
		m.store.ClearFilters()
		m.rebuildFacetRows()
		return m, m.startSearch()
	}
	return m, nil
}

// toggleYear maps a year facet onto the date-range filter
func (m *Model) toggleYear(value string) {
	year, err := strconv.Atoi(value)
	if err != nil {
		return
	}
	filters := m.store.Filters()
	if filters.DateFrom != nil && filters.DateFrom.Year() == year {
		m.store.SetDateRange(nil, nil)
		return
	}
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	m.store.SetDateRange(&from, &to)
}

// submit commits the current query as a page-1 search
func (m *Model) submit() tea.Cmd {
	query := strings.TrimSpace(m.inputCtl.Value())
	if query == "" {
		return nil
	}
	if m.onSubmit != nil {
		m.onSubmit(query)
	}
	m.agg.Close()
	blurCmd := m.inputCtl.Blur()
	return tea.Batch(blurCmd, m.startSearch())
}

// startSearch begins a fresh page-1 search from current store state
func (m *Model) startSearch() tea.Cmd {
	m.statusMsg = ""
	params, seq := m.store.BeginSearch()
	m.refreshList()
	return tea.Batch(m.runSearch(seq, params), m.listCtl.SpinnerTick())
}

func (m *Model) loadMore() tea.Cmd {
	params, seq, ok := m.store.BeginLoadMore()
	if !ok {
		return nil
	}
	m.refreshList()
	return tea.Batch(m.runLoadMore(seq, params), m.listCtl.SpinnerTick())
}

func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.listCtl.ShouldLoadMore(m.store.HasMore(), m.store.Loading(), m.store.LoadingMore()) {
		return nil
	}
	return m.loadMore()
}

func (m *Model) retry() tea.Cmd {
	if m.store.Err() == "" {
		return nil
	}
	params, seq, ok := m.store.Retry()
	if !ok {
		return nil
	}
	m.refreshList()
	if params.Page <= 1 {
		return tea.Batch(m.runSearch(seq, params), m.listCtl.SpinnerTick())
	}
	return tea.Batch(m.runLoadMore(seq, params), m.listCtl.SpinnerTick())
}

func (m *Model) openSelected() tea.Cmd {
	list := m.store.Results()
	idx := m.listCtl.Selected()
	if idx < 0 || idx >= len(list) {
		return nil
	}
	res := list[idx]
	if m.bus != nil {
		m.bus.Publish(eventbus.ResultOpenedEvent{
			Query:    m.store.Query(),
			ResultID: res.ID,
			Position: idx + 1,
		})
	}
	return m.fetchDocument(res.ID, idx+1)
}

func (m *Model) startVoice() tea.Cmd {
	cmd := m.inputCtl.StartVoice()
	if cmd == nil {
		return nil
	}
	return cmd
}

func nextSortOption(current domain.SortOption) domain.SortOption {
	for i, opt := range domain.SortOptions {
		if opt == current {
			return domain.SortOptions[(i+1)%len(domain.SortOptions)]
		}
	}
	return domain.SortRelevance
}

func (m *Model) refreshList() {
	m.listCtl.ClampSelection(len(m.store.Results()))
	m.listCtl.SetContent(m.renderer.RenderResults(m.store.Results(), m.listCtl.Selected(), m.width))
}

// rebuildFacetRows rebuilds the facet panel rows and the parallel entry list
// the cursor indexes into
func (m *Model) rebuildFacetRows() {
	m.facetEntries = nil
	if m.facets == nil {
		return
	}
	appendSection := func(field store.FilterField, facets []domain.Facet) {
		for _, f := range facets {
			m.facetEntries = append(m.facetEntries, facetEntry{field: field, value: f.Value})
		}
	}
	appendSection(store.FilterCategories, m.facets.Categories)
	appendSection(store.FilterTags, m.facets.Tags)
	appendSection(store.FilterAuthors, m.facets.Authors)
	for _, f := range m.facets.Years {
		m.facetEntries = append(m.facetEntries, facetEntry{value: f.Value, year: true})
	}
	if m.facetCursor >= len(m.facetEntries) {
		m.facetCursor = len(m.facetEntries) - 1
	}
	if m.facetCursor < 0 {
		m.facetCursor = 0
	}
}

func (m *Model) facetRows() []views.FacetRow {
	if m.facets == nil {
		return nil
	}
	filters := m.store.Filters()
	var rows []views.FacetRow
	section := func(label string, active []string, facets []domain.Facet) {
		if len(facets) == 0 {
			return
		}
		rows = append(rows, views.FacetRow{Label: label, Header: true})
		for _, f := range facets {
			rows = append(rows, views.FacetRow{
				Value:  f.Value,
				Count:  f.Count,
				Active: contains(active, f.Value),
			})
		}
	}
	section("Categories", filters.Categories, m.facets.Categories)
	section("Tags", filters.Tags, m.facets.Tags)
	section("Authors", filters.Authors, m.facets.Authors)
	if len(m.facets.Years) > 0 {
		rows = append(rows, views.FacetRow{Label: "Years", Header: true})
		for _, f := range m.facets.Years {
			active := filters.DateFrom != nil && strconv.Itoa(filters.DateFrom.Year()) == f.Value
			rows = append(rows, views.FacetRow{Value: f.Value, Count: f.Count, Active: active})
		}
	}
	return rows
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func (m *Model) activeFilterCount() int {
	filters := m.store.Filters()
	n := len(filters.Categories) + len(filters.Tags) + len(filters.Authors) +
		len(filters.ContentTypes) + len(filters.Statuses)
	if filters.DateFrom != nil || filters.DateTo != nil {
		n++
	}
	return n
}

// listHeight is the viewport height left after the fixed chrome
func (m *Model) listHeight() int {
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return h
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderer.Title())
	b.WriteString("\n")
	b.WriteString(m.renderer.RenderSearchBar(m.inputCtl.View(), m.inputCtl.Focused(), m.inputCtl.Recording(), m.width))
	b.WriteString("\n")

	switch {
	case m.showFacets:
		b.WriteString(m.renderer.RenderFacets(m.facetRows(), m.facetCursor))
	case m.inputCtl.Focused() && m.agg.IsOpen() && m.agg.Total() > 0:
		b.WriteString(m.renderer.RenderSuggestions(m.agg.Groups(), m.agg.SelectedIndex()))
	default:
		b.WriteString(m.listCtl.View())
	}
	b.WriteString("\n")

	b.WriteString(m.renderer.RenderStatus(views.StatusState{
		Query:          m.store.Query(),
		Loading:        m.store.Loading(),
		LoadingMore:    m.store.LoadingMore(),
		HasMore:        m.store.HasMore(),
		Shown:          len(m.store.Results()),
		TotalCount:     m.store.TotalCount(),
		SearchTimeMs:   m.store.SearchTime(),
		ShowSearchTime: m.cfg.UISettings.ShowSearchTime,
		Err:            m.store.Err(),
		SortBy:         m.store.SortBy(),
		SortDirection:  m.store.SortDirection(),
		ActiveFilters:  m.activeFilterCount(),
		SpinnerView:    m.listCtl.SpinnerView(),
	}))
	if m.statusMsg != "" {
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.statusMsg))
	}
	b.WriteString("\n")
	b.WriteString(m.renderer.RenderHelp(m.inputCtl.Focused(), m.inputCtl.HasVoice()))
	return b.String()
}
