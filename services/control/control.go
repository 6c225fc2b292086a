// Package control is the device's single control loop: it polls the rotary
// decoder once per tick, drives the menu navigator from the decoded events
// (rotation selects, click enters, long click backs out), and owns the
// value-measuring mode in which rotation adjusts a numeric setting instead
// of navigating. Every committed change ends with a viewport render
// published on the bus for the display service.
package control

import (
	"context"

	"pulsegen-go/bus"
	"pulsegen-go/errcode"
	"pulsegen-go/input"
	"pulsegen-go/menu"
	"pulsegen-go/services/settings"
	"pulsegen-go/types"
	"pulsegen-go/x/mathx"
	"pulsegen-go/x/timex"
)

// Topics published by the control service.
var (
	TopicFrame    = bus.T("display", "frame")
	TopicActive   = bus.T("menu", "active")
	TopicUtilized = bus.T("menu", "utilized")
)

// DefaultViewportRows matches a 128x64 OLED with an 11px menu font.
const DefaultViewportRows = 4

// Rotation faster than this (milliseconds per detent) scales the adjustment
// step up while measuring, to at most maxMeasureStep per detent.
const (
	fastDetentMs   = 60
	maxMeasureStep = 25
)

// Config tunes the service. Zero values select the defaults.
type Config struct {
	ViewportRows int
	Decoder      input.Config
}

// Service wires decoder, navigator and viewport together. It is not safe
// for concurrent use: Start and Tick must be called from the one control
// loop goroutine.
type Service struct {
	menu  *menu.Menu
	view  *menu.Viewport
	dec   *input.Decoder
	set   *settings.Service
	clock timex.Clock
	conn  *bus.Connection

	measuring *menu.Item // leaf being adjusted; nil while navigating
	value     int32      // working value of the adjusted field
}

// New builds the service over the three encoder lines and the settings
// store. The menu check state is seeded from the current settings record.
func New(clk, dat, sw input.LineFunc, set *settings.Service, clock timex.Clock, cfgs ...Config) *Service {
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.ViewportRows <= 0 {
		cfg.ViewportRows = DefaultViewportRows
	}

	s := &Service{
		menu:  BuildMenu(set.Record()),
		set:   set,
		clock: clock,
	}
	s.view = menu.NewViewport(s.menu, cfg.ViewportRows)
	s.menu.SetObserver(menu.Observers{
		OnActiveChanged: s.onActiveChanged,
		OnItemUtilized:  s.onUtilized,
	})
	s.dec = input.NewDecoder(clk, dat, sw, input.Handlers{
		OnRotate:    s.onRotate,
		OnClick:     s.onClick,
		OnLongClick: s.onLongClick,
	}, cfg.Decoder)
	return s
}

// Menu exposes the navigator, mainly for inspection from tests and the
// simulator's status line.
func (s *Service) Menu() *menu.Menu { return s.menu }

// Measuring reports whether a value adjustment is in progress.
func (s *Service) Measuring() bool { return s.measuring != nil }

// Start attaches the bus connection, enters the first menu level (the
// synthetic root is never shown) and renders the initial frame.
func (s *Service) Start(_ context.Context, conn *bus.Connection) error {
	s.conn = conn
	s.dec.Begin(s.clock.Millis())
	if _, ok := s.menu.Enter(); !ok {
		return &errcode.E{C: errcode.InvalidParams, Op: "control.start", Msg: "menu has no items"}
	}
	return nil
}

// Tick runs one control-loop iteration: a single clock read, a single
// decoder update. All event handling happens synchronously inside.
func (s *Service) Tick() {
	s.dec.Update(s.clock.Millis())
}

// -----------------------------------------------------------------------------
// Decoder events
// -----------------------------------------------------------------------------

func (s *Service) onRotate(r input.Rotation) {
	if s.measuring != nil {
		s.adjust(r)
		return
	}
	if r.Dir == input.Right {
		s.menu.Next()
	} else {
		s.menu.Prev()
	}
}

func (s *Service) onClick() {
	if s.measuring != nil {
		s.commitMeasured()
		return
	}
	s.menu.Enter()
}

func (s *Service) onLongClick() {
	if s.measuring != nil {
		// Long click cancels the adjustment, nothing is persisted.
		s.measuring = nil
		s.render()
		return
	}
	s.back()
}

// back climbs one menu level. The synthetic root anchors the tree but is
// never shown, so at the first level there is nowhere further up to go.
func (s *Service) back() {
	if s.menu.Active().Parent() == s.menu.Root() {
		return
	}
	s.menu.Back()
}

// -----------------------------------------------------------------------------
// Navigator events
// -----------------------------------------------------------------------------

func (s *Service) onActiveChanged(c menu.ActiveChange) {
	if s.conn != nil {
		s.conn.Publish(s.conn.NewMessage(TopicActive,
			types.ActiveChanged{OldID: c.Old.ID(), NewID: c.New.ID()}, false))
	}
	s.render()
}

func (s *Service) onUtilized(it *menu.Item) {
	if s.conn != nil {
		s.conn.Publish(s.conn.NewMessage(TopicUtilized,
			types.ItemUtilized{ID: it.ID()}, false))
	}

	switch it.ID() {
	case IDBack:
		s.back()
	case IDMinFreq, IDMaxFreq, IDPulseRatio:
		s.startMeasuring(it)
	case IDFreqFloating:
		s.menu.ToggleCheckable(it)
		checked := it.Checked()
		s.set.Update("freq_floating", b2i(checked), func(r *settings.Record) {
			r.FreqFloating = checked
		})
		s.render()
	case IDCurveLinear, IDCurveQuadratic:
		s.menu.SwitchRadio(it)
		shape := uint8(settings.CurveLinear)
		if it.ID() == IDCurveQuadratic {
			shape = settings.CurveQuadratic
		}
		s.set.Update("curve_shape", int32(shape), func(r *settings.Record) {
			r.CurveShape = shape
		})
		s.render()
	case IDUnitsRPM, IDUnitsHz:
		s.menu.SwitchRadio(it)
		units := uint8(settings.UnitsRPM)
		if it.ID() == IDUnitsHz {
			units = settings.UnitsHz
		}
		s.set.Update("freq_units", int32(units), func(r *settings.Record) {
			r.FreqUnits = units
		})
		s.render()
	}
}

// -----------------------------------------------------------------------------
// Measuring mode
// -----------------------------------------------------------------------------

func (s *Service) startMeasuring(it *menu.Item) {
	rec := s.set.Record()
	switch it.ID() {
	case IDMinFreq:
		s.value = int32(rec.MinFreq)
	case IDMaxFreq:
		s.value = int32(rec.MaxFreq)
	case IDPulseRatio:
		s.value = int32(rec.PulseRatio)
	}
	s.measuring = it
	s.render()
}

// adjust applies one detent to the working value. The step scales with
// rotation speed so large ranges stay reachable: a leisurely detent moves
// by one, the fastest detents map up to maxMeasureStep.
func (s *Service) adjust(r input.Rotation) {
	delta := int32(1)
	if r.Velocity > 0 && r.Velocity < fastDetentMs {
		delta = mathx.MapRange(int32(r.Velocity), 0, fastDetentMs, maxMeasureStep, 1)
	}
	if r.Dir == input.Left {
		delta = -delta
	}
	lo, hi := s.bounds()
	s.value = mathx.Clamp(s.value+delta, lo, hi)
	s.render()
}

func (s *Service) bounds() (int32, int32) {
	rec := s.set.Record()
	switch s.measuring.ID() {
	case IDMinFreq:
		return 1, int32(rec.MaxFreq)
	case IDMaxFreq:
		return int32(rec.MinFreq), 30000
	default: // pulse ratio
		return 1, 99
	}
}

func (s *Service) commitMeasured() {
	it := s.measuring
	value := s.value
	s.measuring = nil

	switch it.ID() {
	case IDMinFreq:
		s.set.Update("min_freq", value, func(r *settings.Record) {
			r.MinFreq = uint16(value)
		})
	case IDMaxFreq:
		s.set.Update("max_freq", value, func(r *settings.Record) {
			r.MaxFreq = uint16(value)
		})
	case IDPulseRatio:
		s.set.Update("pulse_ratio", value, func(r *settings.Record) {
			r.PulseRatio = uint8(value)
		})
	}
	s.render()
}

func (s *Service) unit() string {
	if s.measuring != nil && s.measuring.ID() == IDPulseRatio {
		return "%"
	}
	if s.set.Record().FreqUnits == settings.UnitsHz {
		return "Hz"
	}
	return "rpm"
}

// -----------------------------------------------------------------------------
// Rendering
// -----------------------------------------------------------------------------

func (s *Service) render() {
	if s.conn == nil {
		return
	}
	frame := types.Frame{}
	if s.measuring != nil {
		frame.Measuring = true
		frame.Label = s.measuring.Caption()
		frame.Value = s.value
		frame.Unit = s.unit()
	} else {
		s.view.Render(func(ri menu.RenderItem) {
			frame.Rows = append(frame.Rows, types.Row{
				ID:      ri.Item.ID(),
				Caption: ri.Item.Caption(),
				Marker:  marker(ri.Item.Kind()),
				Checked: ri.Item.Checked(),
				Active:  ri.Active,
				Index:   ri.Index,
				Row:     ri.Row,
			})
		})
	}
	s.conn.Publish(s.conn.NewMessage(TopicFrame, frame, true))
}

func marker(k menu.Kind) types.Marker {
	switch k {
	case menu.Checkable:
		return types.MarkerCheck
	case menu.Radio:
		return types.MarkerRadio
	default:
		return types.MarkerNone
	}
}

func b2i(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
