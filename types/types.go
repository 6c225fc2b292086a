// Package types holds the payload structs exchanged over the bus between
// services. Keeping them in one dependency-free package lets firmware and
// host binaries share the same wire vocabulary.
package types

// Marker classifies how a menu row should be decorated by the display.
type Marker uint8

const (
	MarkerNone  Marker = iota
	MarkerCheck        // checkable: [x] / [ ]
	MarkerRadio        // radio: (*) / ( )
)

// Row is one formatted-ready menu line.
type Row struct {
	ID      int
	Caption string
	Marker  Marker
	Checked bool
	Active  bool
	Index   int // absolute index within the level
	Row     int // row within the viewport
}

// Frame is one complete viewport snapshot, published retained so a display
// attaching late draws the current state immediately.
type Frame struct {
	Rows []Row
	// Measuring is set while the control loop is adjusting a value; the
	// display shows the value row instead of the menu.
	Measuring bool
	// Value and Unit describe the adjusted field while Measuring.
	Value int32
	Unit  string
	Label string
}

// ActiveChanged reports a committed navigation transition.
type ActiveChanged struct {
	OldID int
	NewID int
}

// ItemUtilized reports activation of a leaf item.
type ItemUtilized struct {
	ID int
}

// SettingsChanged reports one persisted field update.
type SettingsChanged struct {
	Field string
	Value int32
}

// Uptime is the heartbeat payload.
type Uptime struct {
	Seconds int64
}
