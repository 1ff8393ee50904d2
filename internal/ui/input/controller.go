// Package input bridges raw keystrokes to the search state through the
// debounce primitive. The visible query text and the store's query field
// update on every keystroke; only the suggestion fetch is debounced.
package input

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchdeck/internal/search/debounce"
)

// blurCloseDelay keeps the suggestion panel alive briefly after a blur so a
// selection in flight still lands before the panel goes away
const blurCloseDelay = 150 * time.Millisecond

// DebounceElapsedMsg fires when a debounce interval has passed; Seq is
// checked against the latest bump before acting
type DebounceElapsedMsg struct {
	Seq uint64
}

// PanelCloseMsg asks for a delayed suggestion-panel close; it is honored
// only when FocusSeq still matches (no refocus happened meanwhile)
type PanelCloseMsg struct {
	FocusSeq uint64
}

// TranscriptMsg carries the outcome of a voice transcription
type TranscriptMsg struct {
	Text string
	Err  error
}

// Transcriber converts speech to a query string. Implementations are
// external; the controller only consumes the result.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// Controller owns the query text input, its debouncer and the voice flag
type Controller struct {
	input       textinput.Model
	deb         *debounce.Debouncer[string]
	transcriber Transcriber

	// focusSeq increments on every focus change so delayed panel closes
	// scheduled before a refocus become no-ops
	focusSeq  uint64
	recording bool
}

// New creates a controller with the given debounce interval
func New(interval time.Duration, placeholder string) *Controller {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Prompt = ""
	return &Controller{
		input: ti,
		deb:   debounce.New[string](interval),
	}
}

// Value returns the live query text
func (c *Controller) Value() string {
	return c.input.Value()
}

// SetValue replaces the query text, e.g. on suggestion commit
func (c *Controller) SetValue(v string) {
	c.input.SetValue(v)
	c.input.CursorEnd()
}

// Focused reports whether the input has keyboard focus
func (c *Controller) Focused() bool {
	return c.input.Focused()
}

// Focus gives the input keyboard focus
func (c *Controller) Focus() tea.Cmd {
	c.focusSeq++
	return c.input.Focus()
}

// Blur drops focus and schedules a delayed panel close, returning the
// command that will deliver it
func (c *Controller) Blur() tea.Cmd {
	c.input.Blur()
	c.focusSeq++
	seq := c.focusSeq
	return tea.Tick(blurCloseDelay, func(time.Time) tea.Msg {
		return PanelCloseMsg{FocusSeq: seq}
	})
}

// FocusSeq returns the current focus generation
func (c *Controller) FocusSeq() uint64 {
	return c.focusSeq
}

// UpdateText forwards a message to the text input and reports whether the
// value changed
func (c *Controller) UpdateText(msg tea.Msg) (tea.Cmd, bool) {
	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd, c.input.Value() != before
}

// BumpDebounce restarts the suggestion-fetch countdown for the current
// value and returns the timer command
func (c *Controller) BumpDebounce() (uint64, tea.Cmd) {
	seq := c.deb.Bump(c.input.Value())
	return seq, tea.Tick(c.deb.Interval(), func(time.Time) tea.Msg {
		return DebounceElapsedMsg{Seq: seq}
	})
}

// ResolveDebounce returns the stable query when seq is still the latest
// bump; intermediate values never resolve
func (c *Controller) ResolveDebounce(seq uint64) (string, bool) {
	return c.deb.Resolve(seq)
}

// SetWidth sizes the text input
func (c *Controller) SetWidth(w int) {
	c.input.Width = w
}

// View renders the text input
func (c *Controller) View() string {
	return c.input.View()
}

// SetTranscriber wires the optional voice capability
func (c *Controller) SetTranscriber(t Transcriber) {
	c.transcriber = t
}

// HasVoice reports whether a transcriber is configured
func (c *Controller) HasVoice() bool {
	return c.transcriber != nil
}

// Recording reports whether a transcription is in progress
func (c *Controller) Recording() bool {
	return c.recording
}

// StartVoice begins a transcription; returns nil when no transcriber is
// configured or one is already running
func (c *Controller) StartVoice() tea.Cmd {
	if c.transcriber == nil || c.recording {
		return nil
	}
	c.recording = true
	t := c.transcriber
	return func() tea.Msg {
		text, err := t.Transcribe(context.Background())
		return TranscriptMsg{Text: text, Err: err}
	}
}

// FinishVoice clears the recording flag. On a recognition error the query
// is deliberately left as-is; only the flag resets.
func (c *Controller) FinishVoice() {
	c.recording = false
}
