// Package results owns the result list affordances: selection, scrolling,
// the load-more trigger and the retry hint. Duplicate load-more calls are
// suppressed by the store's in-flight guard; this controller only decides
// when to ask.
package results

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Controller drives the result viewport and pagination affordances
type Controller struct {
	viewport viewport.Model
	spinner  spinner.Model
	selected int
	infinite bool
}

// New creates a controller; infinite enables scroll-triggered load-more
func New(infinite bool) *Controller {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	return &Controller{
		viewport: viewport.New(0, 0),
		spinner:  sp,
		infinite: infinite,
	}
}

// SetSize resizes the viewport
func (c *Controller) SetSize(width, height int) {
	c.viewport.Width = width
	c.viewport.Height = height
}

// SetContent replaces the rendered list content
func (c *Controller) SetContent(content string) {
	c.viewport.SetContent(content)
}

// Selected returns the selected result index
func (c *Controller) Selected() int {
	return c.selected
}

// ResetSelection moves the selection back to the top and rewinds the scroll
func (c *Controller) ResetSelection() {
	c.selected = 0
	c.viewport.GotoTop()
}

// ClampSelection keeps the selection valid after the list length changed
func (c *Controller) ClampSelection(count int) {
	if count == 0 {
		c.selected = 0
		return
	}
	if c.selected >= count {
		c.selected = count - 1
	}
}

// MoveDown advances the selection; no wrap in the result list
func (c *Controller) MoveDown(count int) {
	if c.selected < count-1 {
		c.selected++
	}
}

// MoveUp moves the selection back
func (c *Controller) MoveUp() {
	if c.selected > 0 {
		c.selected--
	}
}

// ScrollTo keeps the selected line visible, given one rendered line block
// per result of blockHeight lines
func (c *Controller) ScrollTo(blockHeight int) {
	top := c.selected * blockHeight
	bottom := top + blockHeight
	if top < c.viewport.YOffset {
		c.viewport.SetYOffset(top)
	} else if bottom > c.viewport.YOffset+c.viewport.Height {
		c.viewport.SetYOffset(bottom - c.viewport.Height)
	}
}

// AtBottom reports whether the viewport shows the end of the list
func (c *Controller) AtBottom() bool {
	return c.viewport.AtBottom()
}

// ShouldLoadMore decides whether an automatic load-more should fire now
func (c *Controller) ShouldLoadMore(hasMore, loading, loadingMore bool) bool {
	return ShouldLoadMore(c.infinite, c.viewport.AtBottom(), hasMore, loading, loadingMore)
}

// ShouldLoadMore is the pure trigger rule: infinite scroll enabled, the
// view is at the bottom, more pages exist, and nothing is in flight
func ShouldLoadMore(infinite, atBottom, hasMore, loading, loadingMore bool) bool {
	return infinite && atBottom && hasMore && !loading && !loadingMore
}

// View renders the viewport
func (c *Controller) View() string {
	return c.viewport.View()
}

// SpinnerTick starts the loading spinner animation
func (c *Controller) SpinnerTick() tea.Cmd {
	return c.spinner.Tick
}

// UpdateSpinner advances the spinner animation
func (c *Controller) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	c.spinner, cmd = c.spinner.Update(msg)
	return cmd
}

// SpinnerView renders the spinner frame
func (c *Controller) SpinnerView() string {
	return c.spinner.View()
}
