package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"claudefinder/internal/binary"
)

type chooserKeys struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

func (k chooserKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Quit}
}

func (k chooserKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultChooserKeys() chooserKeys {
	return chooserKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "use"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}
}

// ChooserModel lets the user pick one installation from a sorted list.
type ChooserModel struct {
	installs []binary.Installation
	current  string
	cursor   int
	chosen   int
	done     bool

	keys chooserKeys
	help help.Model
}

// NewChooser starts with the cursor on current when it is listed.
func NewChooser(installs []binary.Installation, current string) ChooserModel {
	cursor := 0
	for i, inst := range installs {
		if inst.Path == current {
			cursor = i
			break
		}
	}
	return ChooserModel{
		installs: installs,
		current:  current,
		cursor:   cursor,
		chosen:   -1,
		keys:     defaultChooserKeys(),
		help:     help.New(),
	}
}

// Init satisfies the tea.Model interface.
func (m ChooserModel) Init() tea.Cmd {
	return nil
}

// Update satisfies the tea.Model interface.
func (m ChooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.installs)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Choose):
		if len(m.installs) > 0 {
			m.chosen = m.cursor
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View satisfies the tea.Model interface.
func (m ChooserModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Select an installation"))
	b.WriteString("\n\n")

	for i, inst := range m.installs {
		marker := "  "
		if i == m.cursor {
			marker = CursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%-12s %-20s %s",
			NonEmptyOrDash(inst.Version), inst.Source, inst.Path)
		if i == m.cursor {
			line = CursorStyle.Render(line)
		}
		b.WriteString(marker + line)
		if inst.Path == m.current {
			b.WriteString(MutedStyle.Render("  (current)"))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')
	return b.String()
}

// Selected returns the chosen installation once the user confirmed.
func (m ChooserModel) Selected() (binary.Installation, bool) {
	if m.chosen < 0 || m.chosen >= len(m.installs) {
		return binary.Installation{}, false
	}
	return m.installs[m.chosen], true
}

// RunChooser shows the chooser and returns the user's pick.
func RunChooser(in io.Reader, out io.Writer, installs []binary.Installation, current string) (binary.Installation, bool, error) {
	p := tea.NewProgram(NewChooser(installs, current), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return binary.Installation{}, false, err
	}
	m, ok := final.(ChooserModel)
	if !ok {
		return binary.Installation{}, false, nil
	}
	inst, chosen := m.Selected()
	return inst, chosen, nil
}
