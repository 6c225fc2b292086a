package input

// DefaultDebounceMs is the stability window for mechanical switch contacts.
const DefaultDebounceMs = 30

// Debouncer filters a raw digital level through a rolling stability window:
// every change of the raw level restarts the timer, so a level is accepted
// only after it has held unchanged for the whole window. Sample reports the
// stable level on every call once stability is reached, not just once;
// callers dedupe against their own last-accepted level.
type Debouncer struct {
	windowMs  int64
	lastRaw   bool
	changedAt int64
	primed    bool
}

// NewDebouncer returns a debouncer with the given window in milliseconds.
// A window of zero or less falls back to DefaultDebounceMs.
func NewDebouncer(windowMs int64) *Debouncer {
	if windowMs <= 0 {
		windowMs = DefaultDebounceMs
	}
	return &Debouncer{windowMs: windowMs}
}

// Sample feeds one raw reading taken at now (milliseconds, monotonic).
// It returns (level, true) once the level has held for the full window,
// or (false, false) while the input is still settling.
func (d *Debouncer) Sample(raw bool, now int64) (bool, bool) {
	if !d.primed || raw != d.lastRaw {
		d.changedAt = now
		d.lastRaw = raw
		d.primed = true
	}
	if now-d.changedAt > d.windowMs {
		return d.lastRaw, true
	}
	return false, false
}
