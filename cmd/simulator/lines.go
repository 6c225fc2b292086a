package main

import (
	"sync"
	"time"
)

// SimLines emulates the three encoder signal lines. Gesture methods drive
// the lines with real-time delays long enough for a millisecond poll loop
// to observe every edge.
type SimLines struct {
	mu  sync.Mutex
	clk bool
	dat bool
	sw  bool
}

// NewSimLines starts with all lines idle (high; the switch is active low).
func NewSimLines() *SimLines {
	return &SimLines{clk: true, dat: true, sw: true}
}

func (s *SimLines) Clk() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.clk }
func (s *SimLines) Dat() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.dat }
func (s *SimLines) Sw() bool  { s.mu.Lock(); defer s.mu.Unlock(); return s.sw }

func (s *SimLines) set(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
}

// Detent emulates one encoder step. Clockwise leaves the data line equal
// to the clock line on the rising edge.
func (s *SimLines) Detent(clockwise bool) {
	s.set(func() { s.clk, s.dat = false, !clockwise })
	time.Sleep(5 * time.Millisecond)
	s.set(func() { s.clk, s.dat = true, clockwise })
	time.Sleep(5 * time.Millisecond)
}

// Click holds the switch just past the debounce window.
func (s *SimLines) Click(debounce time.Duration) {
	s.press(debounce + 20*time.Millisecond)
}

// LongClick holds the switch past the long click threshold.
func (s *SimLines) LongClick(debounce, threshold time.Duration) {
	s.press(debounce + threshold + 50*time.Millisecond)
}

func (s *SimLines) press(hold time.Duration) {
	s.set(func() { s.sw = false })
	time.Sleep(hold)
	s.set(func() { s.sw = true })
	time.Sleep(50 * time.Millisecond)
}
