package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"claudefinder/internal/binary"
)

func TestRowUpdateMsg(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "#", Width: 3},
		{Header: "STATUS", Width: 10},
		{Header: "PATH", Width: 20},
	})
	m.AddRow("candidate:0", []string{"1", StatusProbing, "/usr/bin/claude"})
	m.AddRow("candidate:1", []string{"2", StatusProbing, "/opt/claude"})

	updated, _ := m.Update(RowUpdateMsg{
		Key:    "candidate:0",
		Fields: map[string]string{"STATUS": StatusOK, "PATH": "/usr/local/bin/claude"},
	})
	m = updated.(ProgressModel)

	if m.rows[0].Fields[1] != StatusOK {
		t.Errorf("expected STATUS=ok, got %q", m.rows[0].Fields[1])
	}
	if m.rows[0].Fields[2] != "/usr/local/bin/claude" {
		t.Errorf("expected PATH updated, got %q", m.rows[0].Fields[2])
	}
	if m.rows[1].Fields[1] != StatusProbing {
		t.Errorf("expected row 2 STATUS=probing, got %q", m.rows[1].Fields[1])
	}
}

func TestRowUpdateMsg_UnknownKey(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("candidate:0", []string{StatusPending})

	updated, _ := m.Update(RowUpdateMsg{
		Key:    "candidate:9",
		Fields: map[string]string{"STATUS": StatusOK},
	})
	m = updated.(ProgressModel)

	if len(m.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(m.rows))
	}
	if m.rows[0].Fields[0] != StatusPending {
		t.Errorf("expected STATUS unchanged, got %q", m.rows[0].Fields[0])
	}
}

func TestRowAddMsgAppendsThenUpdates(t *testing.T) {
	m := NewProgressModel("test", ProbeColumns())

	updated, _ := m.Update(RowAddMsg{
		Key:    "candidate:0",
		Fields: map[string]string{"#": "1", "STATUS": StatusProbing, "PATH": "/usr/bin/claude"},
	})
	m = updated.(ProgressModel)
	if len(m.rows) != 1 {
		t.Fatalf("expected 1 row after add, got %d", len(m.rows))
	}

	updated, _ = m.Update(RowAddMsg{
		Key:    "candidate:0",
		Fields: map[string]string{"STATUS": StatusOK, "VERSION": "1.0.41"},
	})
	m = updated.(ProgressModel)
	if len(m.rows) != 1 {
		t.Fatalf("expected re-adding a key to update in place, got %d rows", len(m.rows))
	}
	if m.rows[0].Fields[1] != StatusOK || m.rows[0].Fields[2] != "1.0.41" {
		t.Errorf("unexpected fields after update: %v", m.rows[0].Fields)
	}
	if m.rows[0].Fields[4] != "/usr/bin/claude" {
		t.Errorf("expected PATH kept, got %q", m.rows[0].Fields[4])
	}
}

func TestWorkDoneMsg(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "STATUS", Width: 10},
	})

	updated, cmd := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)

	if !m.Done() {
		t.Error("expected Done() to be true after WorkDoneMsg")
	}
	if m.Err() != nil {
		t.Errorf("expected no error, got %v", m.Err())
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestErrorMsg(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "STATUS", Width: 10},
	})

	boom := errors.New("boom")
	updated, cmd := m.Update(ErrorMsg{Err: boom})
	m = updated.(ProgressModel)

	if !m.Done() {
		t.Error("expected Done() to be true after ErrorMsg")
	}
	if !errors.Is(m.Err(), boom) {
		t.Errorf("expected Err() = boom, got %v", m.Err())
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
	if !strings.Contains(m.View(), "boom") {
		t.Error("expected view to show the error")
	}
}

func TestView(t *testing.T) {
	m := NewProgressModel("Probing installations", ProbeColumns())
	m.AddRow("candidate:0", []string{"1", StatusOK, "1.0.41", "homebrew", "/opt/homebrew/bin/claude"})
	m.AddRow("candidate:1", []string{"2", StatusFailed, "-", "PATH", "claude"})

	view := m.View()

	for _, want := range []string{"STATUS", "VERSION", "SOURCE", "PATH", "1.0.41", "homebrew", "/opt/homebrew/bin/claude", StatusFailed} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestViewTruncatesPathFromLeft(t *testing.T) {
	m := NewProgressModel("", []Column{
		{Header: "PATH", Width: 12, KeepTail: true},
	})
	m.AddRow("candidate:0", []string{"/very/long/prefix/bin/claude"})

	lines := strings.Split(m.View(), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected header and row lines, got %q", lines)
	}
	cell := lines[1]
	if cell != "...in/claude" {
		t.Errorf("row cell = %q, want %q", cell, "...in/claude")
	}
	if len(cell) != 12 {
		t.Errorf("row cell width = %d, want 12", len(cell))
	}
}

func TestNonEmptyOrDash(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "-"},
		{"  ", "-"},
		{"1.0.41", "1.0.41"},
		{" 1.0.41 ", "1.0.41"},
	}
	for _, tt := range tests {
		got := NonEmptyOrDash(tt.input)
		if got != tt.want {
			t.Errorf("NonEmptyOrDash(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"a longer string here", 10, "a longe..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		got := TruncateWithEllipsis(tt.input, tt.max)
		if got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
		}
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"/usr/local/bin/claude", 10, ".../claude"},
		{"abcd", 3, "bcd"},
		{"", 5, ""},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		got := TruncateLeft(tt.input, tt.max)
		if got != tt.want {
			t.Errorf("TruncateLeft(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
		}
	}
}

func TestTickMsg(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("candidate:0", []string{StatusPending})

	updated, cmd := m.Update(tickMsg{})
	m = updated.(ProgressModel)

	if m.tick != 1 {
		t.Errorf("expected tick=1 after tickMsg, got %d", m.tick)
	}
	if cmd == nil {
		t.Error("expected next tick command")
	}
}

func TestTickStopsAfterDone(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "STATUS", Width: 10},
	})
	updated, _ := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)

	_, cmd := m.Update(tickMsg{})
	if cmd != nil {
		t.Error("expected no tick command after done")
	}
}

func TestProgressCounts(t *testing.T) {
	m := NewProgressModel("test", []Column{
		{Header: "#", Width: 3},
		{Header: "STATUS", Width: 10},
	})
	m.AddRow("candidate:0", []string{"1", StatusProbing})
	m.AddRow("candidate:1", []string{"2", StatusPending})
	m.AddRow("candidate:2", []string{"3", StatusOK})
	m.AddRow("candidate:3", []string{"4", StatusFailed})

	processed, total := m.progressCounts()
	if total != 4 {
		t.Errorf("expected total=4, got %d", total)
	}
	if processed != 2 {
		t.Errorf("expected processed=2, got %d", processed)
	}
}

func TestViewFooterWhileScanning(t *testing.T) {
	m := NewProgressModel("test", ProbeColumns())

	view := m.View()
	if !strings.Contains(view, "Scanning install locations") {
		t.Errorf("expected scanning footer with no rows, got:\n%s", view)
	}
}

func TestViewFooterWhileProbing(t *testing.T) {
	m := NewProgressModel("test", ProbeColumns())
	m.AddRow("candidate:0", []string{"1", StatusOK})
	m.AddRow("candidate:1", []string{"2", StatusProbing})

	view := m.View()
	if !strings.Contains(view, "Probing 1/2 candidates") {
		t.Errorf("expected probing footer, got:\n%s", view)
	}
}

func TestViewHidesFooterWhenDone(t *testing.T) {
	m := NewProgressModel("test", ProbeColumns())
	m.AddRow("candidate:0", []string{"1", StatusOK})
	updated, _ := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)

	if strings.Contains(m.View(), "Probing") {
		t.Error("expected view to NOT contain the probing footer when done")
	}
}

func TestQuitKeysInterrupt(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		m := NewProgressModel("test", []Column{{Header: "STATUS", Width: 10}})

		updated, cmd := m.Update(msg)
		m = updated.(ProgressModel)

		if !m.Done() {
			t.Errorf("%s: expected Done() to be true", msg)
		}
		if !errors.Is(m.Err(), ErrInterrupted) {
			t.Errorf("%s: expected ErrInterrupted, got %v", msg, m.Err())
		}
		if cmd == nil {
			t.Errorf("%s: expected tea.Quit command", msg)
		}
	}
}

func TestProbeReporterSendsRows(t *testing.T) {
	var msgs []tea.Msg
	r := NewProbeReporter(func(msg tea.Msg) { msgs = append(msgs, msg) })

	c := binary.Candidate{Path: "/usr/local/bin/claude", Source: "homebrew", Type: binary.System}
	r.ProbeStarted(0, c)
	r.ProbeFinished(0, c, binary.ProbeResult{Functional: true, Version: "1.0.41"})
	broken := binary.Candidate{Path: "/opt/broken", Source: "config"}
	r.ProbeStarted(1, broken)
	r.ProbeFinished(1, broken, binary.ProbeResult{})

	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if _, ok := msgs[1].(RowUpdateMsg); !ok {
		t.Fatalf("expected finish to send RowUpdateMsg, got %T", msgs[1])
	}

	m := NewProgressModel("test", ProbeColumns())
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(ProgressModel)
	}
	if len(m.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.rows))
	}
	if got := m.rows[0].Fields; got[1] != StatusOK || got[2] != "1.0.41" || got[3] != "homebrew" {
		t.Errorf("unexpected first row: %v", got)
	}
	if got := m.rows[1].Fields; got[1] != StatusFailed || got[2] != "-" {
		t.Errorf("unexpected second row: %v", got)
	}
}
