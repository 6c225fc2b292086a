//go:build !rp2040 && !rp2350

package display

import (
	"io"
	"strings"
	"sync"
)

// TermSurface renders frames as plain text, one boxed block per flush. The
// active line carries a '>' cursor the way the OLED highlights its row.
type TermSurface struct {
	mu    sync.Mutex
	w     io.Writer
	rows  int
	lines []string
}

// NewTermSurface creates a terminal surface with the given row count.
func NewTermSurface(w io.Writer, rows int) *TermSurface {
	if rows < 1 {
		rows = 1
	}
	return &TermSurface{w: w, rows: rows, lines: make([]string, rows)}
}

func (t *TermSurface) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.lines {
		t.lines[i] = ""
	}
}

func (t *TermSurface) WriteLine(row int, text string, active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if row < 0 || row >= t.rows {
		return
	}
	if active {
		t.lines[row] = "> " + text
	} else {
		t.lines[row] = "  " + text
	}
}

func (t *TermSurface) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var b strings.Builder
	b.WriteString("+----------------------------+\n")
	for _, line := range t.lines {
		b.WriteString("| ")
		b.WriteString(pad(line, 26))
		b.WriteString(" |\n")
	}
	b.WriteString("+----------------------------+\n")
	_, err := io.WriteString(t.w, b.String())
	return err
}

func pad(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
