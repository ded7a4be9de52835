package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"claudefinder/internal/binary"
)

// ProbeColumns is the column layout of the probe progress table.
func ProbeColumns() []Column {
	return []Column{
		{Header: "#", Width: 3},
		{Header: "STATUS", Width: 8},
		{Header: "VERSION", Width: 12},
		{Header: "SOURCE", Width: 18},
		{Header: "PATH", Width: 56, KeepTail: true},
	}
}

// ProbeReporter forwards probe events to a running progress program.
type ProbeReporter struct {
	send func(tea.Msg)
}

// NewProbeReporter wraps send, usually tea.Program.Send.
func NewProbeReporter(send func(tea.Msg)) *ProbeReporter {
	return &ProbeReporter{send: send}
}

func probeKey(index int) string {
	return "candidate:" + strconv.Itoa(index)
}

// ProbeStarted implements binary.ProbeReporter.
func (r *ProbeReporter) ProbeStarted(index int, c binary.Candidate) {
	r.send(RowAddMsg{
		Key: probeKey(index),
		Fields: map[string]string{
			"#":       strconv.Itoa(index + 1),
			"STATUS":  StatusProbing,
			"VERSION": "-",
			"SOURCE":  c.Source,
			"PATH":    c.Path,
		},
	})
}

// ProbeFinished implements binary.ProbeReporter. The row was added by
// ProbeStarted.
func (r *ProbeReporter) ProbeFinished(index int, _ binary.Candidate, res binary.ProbeResult) {
	status := StatusFailed
	if res.Functional {
		status = StatusOK
	}
	r.send(RowUpdateMsg{
		Key: probeKey(index),
		Fields: map[string]string{
			"STATUS":  status,
			"VERSION": NonEmptyOrDash(res.Version),
		},
	})
}

var _ binary.ProbeReporter = (*ProbeReporter)(nil)
