package input

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeRunes(c *Controller, text string) {
	for _, r := range text {
		c.UpdateText(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTypingChangesValue(t *testing.T) {
	c := New(300*time.Millisecond, "search")
	c.Focus()

	_, changed := c.UpdateText(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.True(t, changed)
	assert.Equal(t, "g", c.Value())

	_, changed = c.UpdateText(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, changed, "cursor movement is not a value change")
}

func TestDebounceOnlyLatestResolves(t *testing.T) {
	c := New(300*time.Millisecond, "search")
	c.Focus()

	typeRunes(c, "g")
	s1, cmd := c.BumpDebounce()
	require.NotNil(t, cmd)

	typeRunes(c, "o")
	s2, _ := c.BumpDebounce()

	_, ok := c.ResolveDebounce(s1)
	assert.False(t, ok, "keystroke arrived during the interval")

	v, ok := c.ResolveDebounce(s2)
	require.True(t, ok)
	assert.Equal(t, "go", v)
}

func TestBlurSchedulesPanelClose(t *testing.T) {
	c := New(time.Millisecond, "search")
	c.Focus()
	seqAtBlur := c.FocusSeq()

	cmd := c.Blur()
	require.NotNil(t, cmd)
	assert.False(t, c.Focused())
	assert.Greater(t, c.FocusSeq(), seqAtBlur, "blur opens a new focus generation")
}

func TestRefocusInvalidatesPendingClose(t *testing.T) {
	c := New(time.Millisecond, "search")
	c.Focus()

	c.Blur()
	staleSeq := c.FocusSeq()
	c.Focus()

	// the delayed close scheduled at blur time carries staleSeq; after the
	// refocus it must no longer match
	assert.NotEqual(t, staleSeq, c.FocusSeq())
}

func TestSetValueMovesCursorToEnd(t *testing.T) {
	c := New(time.Millisecond, "search")
	c.Focus()
	c.SetValue("committed suggestion")
	assert.Equal(t, "committed suggestion", c.Value())
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(ctx context.Context) (string, error) {
	return f.text, f.err
}

func TestVoiceLifecycle(t *testing.T) {
	c := New(time.Millisecond, "search")
	assert.False(t, c.HasVoice())
	assert.Nil(t, c.StartVoice(), "no transcriber, no command")

	c.SetTranscriber(fakeTranscriber{text: "spoken query"})
	require.True(t, c.HasVoice())

	cmd := c.StartVoice()
	require.NotNil(t, cmd)
	assert.True(t, c.Recording())
	assert.Nil(t, c.StartVoice(), "no concurrent transcriptions")

	msg := cmd()
	transcript, ok := msg.(TranscriptMsg)
	require.True(t, ok)
	assert.Equal(t, "spoken query", transcript.Text)

	c.FinishVoice()
	assert.False(t, c.Recording())
}

func TestVoiceErrorKeepsTypedQuery(t *testing.T) {
	c := New(time.Millisecond, "search")
	c.Focus()
	typeRunes(c, "half typed")

	c.SetTranscriber(fakeTranscriber{err: errors.New("no speech detected")})
	cmd := c.StartVoice()
	require.NotNil(t, cmd)

	msg := cmd()
	transcript := msg.(TranscriptMsg)
	require.Error(t, transcript.Err)

	c.FinishVoice()
	assert.False(t, c.Recording())
	assert.Equal(t, "half typed", c.Value(), "recognition failure must not clear the query")
}
