package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claudefinder/internal/binary"
)

func sampleInstalls() []binary.Installation {
	return []binary.Installation{
		{Path: "/opt/homebrew/bin/claude", Version: "1.0.41", Source: "homebrew"},
		{Path: "/usr/local/bin/claude", Version: "1.0.30", Source: "system"},
		{Path: "claude", Source: "PATH"},
	}
}

func press(t *testing.T, m ChooserModel, msgs ...tea.KeyMsg) (ChooserModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(ChooserModel)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestChooserStartsOnCurrent(t *testing.T) {
	m := NewChooser(sampleInstalls(), "/usr/local/bin/claude")
	assert.Equal(t, 1, m.cursor)

	m = NewChooser(sampleInstalls(), "/not/listed")
	assert.Equal(t, 0, m.cursor)
}

func TestChooserNavigationClamps(t *testing.T) {
	m := NewChooser(sampleInstalls(), "")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyDown}, runes("j"), runes("j"))
	assert.Equal(t, 2, m.cursor)

	m, _ = press(t, m, runes("k"))
	assert.Equal(t, 1, m.cursor)
}

func TestChooserEnterSelects(t *testing.T) {
	m := NewChooser(sampleInstalls(), "")

	m, cmd := press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	inst, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "/usr/local/bin/claude", inst.Path)
	assert.Empty(t, m.View())
}

func TestChooserCancel(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m, cmd := press(t, NewChooser(sampleInstalls(), ""), msg)
		require.NotNil(t, cmd)
		_, ok := m.Selected()
		assert.False(t, ok, "key %s should cancel", msg)
	}
}

func TestChooserEmptyList(t *testing.T) {
	m, cmd := press(t, NewChooser(nil, ""), runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestChooserView(t *testing.T) {
	m := NewChooser(sampleInstalls(), "/usr/local/bin/claude")
	view := m.View()

	assert.Contains(t, view, "Select an installation")
	assert.Contains(t, view, "/opt/homebrew/bin/claude")
	assert.Contains(t, view, "1.0.41")
	assert.Contains(t, view, "(current)")
	assert.Contains(t, view, "cancel")
}
