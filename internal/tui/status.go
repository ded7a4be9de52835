package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// StatusWriter draws a single spinner line in place while a blocking call
// runs, for commands that have no table to show.
type StatusWriter struct {
	w     io.Writer
	mu    sync.Mutex
	msg   string
	start time.Time
	stop  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// NewStatusWriter starts redrawing msg on w every 100ms until Stop.
func NewStatusWriter(w io.Writer, msg string) *StatusWriter {
	sw := &StatusWriter{
		w:     w,
		msg:   msg,
		start: time.Now(),
		stop:  make(chan struct{}),
	}
	sw.wg.Add(1)
	go sw.loop()
	return sw
}

// Update replaces the message and restarts the elapsed timer.
func (sw *StatusWriter) Update(msg string) {
	sw.mu.Lock()
	sw.msg = msg
	sw.start = time.Now()
	sw.mu.Unlock()
}

// Stop clears the line. It is safe to call more than once.
func (sw *StatusWriter) Stop() {
	sw.once.Do(func() {
		close(sw.stop)
		sw.wg.Wait()
		fmt.Fprint(sw.w, "\r\033[K")
	})
}

func (sw *StatusWriter) loop() {
	defer sw.wg.Done()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-sw.stop:
			return
		case <-ticker.C:
			sw.mu.Lock()
			msg, start := sw.msg, sw.start
			sw.mu.Unlock()
			fmt.Fprintf(sw.w, "\r\033[K%s %s (%s)",
				spinnerFrames[frame%len(spinnerFrames)], msg, formatElapsed(time.Since(start)))
		}
	}
}

// WithStatus runs fn while showing msg. Without a terminal it just runs fn.
func WithStatus(w io.Writer, msg string, fn func() error) error {
	if !IsTerminal(w) {
		return fn()
	}
	sw := NewStatusWriter(w, msg)
	defer sw.Stop()
	return fn()
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
