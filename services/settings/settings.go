// Package settings persists the pulse generator configuration as a small
// fixed-layout record behind a byte-level store (EEPROM on the device, a
// file or memory buffer on the host). Load validates a literal version
// header byte-for-byte plus a checksum before trusting the payload and
// falls back to embedded defaults otherwise. The current record is
// published retained on the bus so any service can pick it up late.
package settings

import (
	"context"

	"pulsegen-go/bus"
	"pulsegen-go/errcode"
	"pulsegen-go/types"
)

// Curve shape values for Record.CurveShape.
const (
	CurveLinear    = 0
	CurveQuadratic = 1
)

// Frequency unit values for Record.FreqUnits.
const (
	UnitsRPM = 0
	UnitsHz  = 1
)

// Record is the persisted device configuration. The zero value is not a
// valid configuration; start from Defaults().
type Record struct {
	MinFreq      uint16 // lower output bound, in FreqUnits
	MaxFreq      uint16 // upper output bound, in FreqUnits
	PulseRatio   uint8  // duty cycle percent, 1..99
	CurveShape   uint8  // CurveLinear or CurveQuadratic
	FreqFloating bool   // track the analog input continuously
	FreqUnits    uint8  // UnitsRPM or UnitsHz
}

// Store is the byte-level persistence contract. Implementations read and
// write at absolute offsets; short or failed transfers return an error.
type Store interface {
	ReadAt(p []byte, off int) error
	WriteAt(p []byte, off int) error
}

// MemStore is an in-memory Store for tests and the host simulator.
type MemStore struct {
	buf [RecordSize]byte
}

func (m *MemStore) ReadAt(p []byte, off int) error {
	if off < 0 || off+len(p) > len(m.buf) {
		return errcode.ShortRecord
	}
	copy(p, m.buf[off:])
	return nil
}

func (m *MemStore) WriteAt(p []byte, off int) error {
	if off < 0 || off+len(p) > len(m.buf) {
		return errcode.ShortRecord
	}
	copy(m.buf[off:], p)
	return nil
}

// Topic carrying the retained current record.
var TopicRecord = bus.T("settings", "record")

// Topic carrying individual field updates.
var TopicChanged = bus.T("settings", "changed")

// Service owns the current record and its persistence.
type Service struct {
	store Store
	rec   Record
	conn  *bus.Connection
}

// New creates the service over a store. Call Load before first use.
func New(store Store) *Service {
	return &Service{store: store, rec: Defaults()}
}

// Load reads and validates the stored record. On any validation failure
// the in-memory record falls back to defaults and the failure code is
// returned; the caller decides whether to Save the defaults back.
func (s *Service) Load() errcode.Code {
	raw := make([]byte, RecordSize)
	if err := s.store.ReadAt(raw, 0); err != nil {
		s.rec = Defaults()
		return errcode.Of(err)
	}
	rec, err := Decode(raw)
	if err != nil {
		s.rec = Defaults()
		return errcode.Of(err)
	}
	s.rec = rec
	return errcode.OK
}

// Save writes the header, payload and checksum unconditionally.
func (s *Service) Save() error {
	if err := s.store.WriteAt(Encode(s.rec), 0); err != nil {
		return &errcode.E{C: errcode.StoreFailed, Op: "settings.save", Err: err}
	}
	return nil
}

// Record returns a copy of the current record.
func (s *Service) Record() Record { return s.rec }

// Update mutates the record, persists it, and publishes the change. field
// and value describe the touched field for the changed notification.
func (s *Service) Update(field string, value int32, mutate func(*Record)) error {
	mutate(&s.rec)
	if err := s.Save(); err != nil {
		return err
	}
	if s.conn != nil {
		s.conn.Publish(s.conn.NewMessage(TopicChanged,
			types.SettingsChanged{Field: field, Value: value}, false))
		s.announce()
	}
	return nil
}

func (s *Service) announce() {
	s.conn.Publish(s.conn.NewMessage(TopicRecord, s.rec, true))
}

// Start attaches the service to the bus and announces the current record.
func (s *Service) Start(_ context.Context, conn *bus.Connection) error {
	s.conn = conn
	s.announce()
	return nil
}
