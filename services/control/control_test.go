package control

import (
	"context"
	"testing"

	"pulsegen-go/bus"
	"pulsegen-go/errcode"
	"pulsegen-go/services/settings"
	"pulsegen-go/types"
)

// harness wires a control service to fake encoder lines and a manual
// clock, and watches the frames it publishes.
type harness struct {
	t   *testing.T
	clk bool
	dat bool
	sw  bool
	now int64

	svc    *Service
	set    *settings.Service
	store  settings.MemStore
	frames *bus.Subscription
}

func (h *harness) Millis() int64 { return h.now }

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{t: t, clk: true, dat: true, sw: true}
	h.set = settings.New(&h.store)
	h.set.Load() // empty store, falls back to defaults

	b := bus.NewBus(16)
	if err := h.set.Start(context.Background(), b.NewConnection("settings")); err != nil {
		t.Fatal(err)
	}

	h.svc = New(
		func() bool { return h.clk },
		func() bool { return h.dat },
		func() bool { return h.sw },
		h.set, h)
	if err := h.svc.Start(context.Background(), b.NewConnection("control")); err != nil {
		t.Fatal(err)
	}
	h.frames = b.NewConnection("watcher").Subscribe(TopicFrame)
	return h
}

func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.now++
		h.svc.Tick()
	}
}

// One detent clockwise: clock line falls, then rises with data matching.
func (h *harness) right() {
	h.clk, h.dat = false, false
	h.tick(1)
	h.clk, h.dat = true, true
	h.tick(1)
}

// One detent counter-clockwise: data line low on the rising clock edge.
func (h *harness) left() {
	h.clk, h.dat = false, true
	h.tick(1)
	h.clk, h.dat = true, false
	h.tick(1)
}

// slowly leaves an idle gap so the next detent does not count as fast.
func (h *harness) slowly() { h.tick(100) }

func (h *harness) click() {
	h.sw = false
	h.tick(40)
	h.sw = true
	h.tick(40)
}

func (h *harness) longClick() {
	h.sw = false
	h.tick(520)
	h.sw = true
	h.tick(40)
}

// lastFrame drains the frame subscription and returns the newest frame.
func (h *harness) lastFrame() types.Frame {
	h.t.Helper()
	var frame types.Frame
	got := false
	for {
		select {
		case msg := <-h.frames.Channel():
			frame = msg.Payload.(types.Frame)
			got = true
		default:
			if !got {
				h.t.Fatal("no frame published")
			}
			return frame
		}
	}
}

func activeID(t *testing.T, f types.Frame) int {
	t.Helper()
	for _, row := range f.Rows {
		if row.Active {
			return row.ID
		}
	}
	t.Fatal("frame has no active row")
	return -1
}

func TestStartRendersTopLevel(t *testing.T) {
	h := newHarness(t)

	f := h.lastFrame()
	if f.Measuring {
		t.Fatal("initial frame is measuring")
	}
	ids := make([]int, len(f.Rows))
	for i, row := range f.Rows {
		ids[i] = row.ID
	}
	want := []int{IDMinFreq, IDMaxFreq, IDPulseRatio, IDCurveShape}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("top level rows = %v, want %v", ids, want)
		}
	}
	if activeID(t, f) != IDMinFreq {
		t.Errorf("initial active = %d, want %d", activeID(t, f), IDMinFreq)
	}
}

func TestRotationMovesSelection(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 3; i++ {
		h.slowly()
		h.right()
	}
	if got := activeID(t, h.lastFrame()); got != IDCurveShape {
		t.Errorf("after three right detents active = %d, want %d", got, IDCurveShape)
	}

	h.slowly()
	h.left()
	if got := activeID(t, h.lastFrame()); got != IDPulseRatio {
		t.Errorf("after left detent active = %d, want %d", got, IDPulseRatio)
	}
}

func TestClickEntersSubmenuLongClickBacksOut(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 3; i++ {
		h.slowly()
		h.right()
	}
	h.click()
	f := h.lastFrame()
	if got := activeID(t, f); got != IDCurveLinear {
		t.Fatalf("after entering curve submenu active = %d, want %d", got, IDCurveLinear)
	}
	if f.Rows[0].Marker != types.MarkerRadio || !f.Rows[0].Checked {
		t.Errorf("linear row = %+v, want checked radio", f.Rows[0])
	}

	h.longClick()
	if got := activeID(t, h.lastFrame()); got != IDCurveShape {
		t.Errorf("after long click active = %d, want %d", got, IDCurveShape)
	}
}

func TestBackItemNavigatesUp(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 3; i++ {
		h.slowly()
		h.right()
	}
	h.click() // into curve submenu
	h.slowly()
	h.right()
	h.slowly()
	h.right() // onto the Back entry
	h.click()
	if got := activeID(t, h.lastFrame()); got != IDCurveShape {
		t.Errorf("after utilizing Back active = %d, want %d", got, IDCurveShape)
	}
}

func TestRootNeverBecomesActive(t *testing.T) {
	h := newHarness(t)

	h.longClick()
	if h.svc.Menu().Active() == h.svc.Menu().Root() {
		t.Fatal("long click at the first level activated the root")
	}
	if got := activeID(t, h.lastFrame()); got != IDMinFreq {
		t.Errorf("active after top-level long click = %d, want %d", got, IDMinFreq)
	}

	for i := 0; i < 6; i++ {
		h.slowly()
		h.right()
	}
	h.click() // utilize the top-level Back entry
	if h.svc.Menu().Active() == h.svc.Menu().Root() {
		t.Fatal("top-level Back utilization activated the root")
	}
	f := h.lastFrame()
	if len(f.Rows) == 0 {
		t.Fatal("frame after top-level Back has no rows")
	}
	if got := activeID(t, f); got != IDBack {
		t.Errorf("active after top-level Back = %d, want %d", got, IDBack)
	}
	for _, row := range f.Rows {
		if row.Caption == "" {
			t.Errorf("frame renders a captionless row: %+v", row)
		}
	}
}

func TestRadioSelectionPersists(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 5; i++ {
		h.slowly()
		h.right()
	}
	h.click() // into frequency units
	h.slowly()
	h.right() // onto Hertz
	h.click() // utilize

	if h.set.Record().FreqUnits != settings.UnitsHz {
		t.Errorf("FreqUnits = %d, want Hz", h.set.Record().FreqUnits)
	}

	f := h.lastFrame()
	for _, row := range f.Rows {
		switch row.ID {
		case IDUnitsRPM:
			if row.Checked {
				t.Error("RPM still checked after switching to Hz")
			}
		case IDUnitsHz:
			if !row.Checked {
				t.Error("Hz not checked after switching")
			}
		}
	}

	// The change must have hit the store, not just the live record.
	fresh := settings.New(&h.store)
	if fresh.Load() != errcode.OK {
		t.Fatal("reload after radio switch failed")
	}
	if fresh.Record().FreqUnits != settings.UnitsHz {
		t.Errorf("persisted FreqUnits = %d, want Hz", fresh.Record().FreqUnits)
	}
}

func TestMeasureAdjustCommit(t *testing.T) {
	h := newHarness(t)

	h.click() // utilize Minimal frequency
	f := h.lastFrame()
	if !f.Measuring || f.Label != "Minimal frequency" {
		t.Fatalf("frame after utilize = %+v, want measuring", f)
	}
	if f.Value != 60 || f.Unit != "rpm" {
		t.Errorf("measuring frame value = %d %s, want 60 rpm", f.Value, f.Unit)
	}

	h.slowly()
	h.right()
	if f := h.lastFrame(); f.Value != 61 {
		t.Errorf("after right detent value = %d, want 61", f.Value)
	}
	h.slowly()
	h.left()
	h.slowly()
	h.left()
	if f := h.lastFrame(); f.Value != 59 {
		t.Errorf("after two left detents value = %d, want 59", f.Value)
	}

	h.click() // commit
	if h.svc.Measuring() {
		t.Fatal("still measuring after commit")
	}
	if h.set.Record().MinFreq != 59 {
		t.Errorf("committed MinFreq = %d, want 59", h.set.Record().MinFreq)
	}
	if f := h.lastFrame(); f.Measuring {
		t.Error("frame after commit still measuring")
	}
}

func TestMeasureCancelKeepsRecord(t *testing.T) {
	h := newHarness(t)
	before := h.set.Record()

	h.click() // into measuring
	h.slowly()
	h.right()
	h.slowly()
	h.right()
	h.longClick() // cancel

	if h.svc.Measuring() {
		t.Fatal("still measuring after cancel")
	}
	if h.set.Record() != before {
		t.Errorf("record changed by cancelled adjustment: %+v", h.set.Record())
	}
	if got := activeID(t, h.lastFrame()); got != IDMinFreq {
		t.Errorf("active after cancel = %d, want %d", got, IDMinFreq)
	}
}

func TestFastRotationScalesStep(t *testing.T) {
	h := newHarness(t)

	h.click() // measuring Minimal frequency, value 60
	h.slowly()
	h.right() // slow detent moves by 1 -> 61
	h.right() // 2ms per detent maps to a 24 step -> 85
	h.right() // -> 109
	if f := h.lastFrame(); f.Value != 109 {
		t.Errorf("after fast burst value = %d, want 109", f.Value)
	}
}

func TestPulseRatioUnitIsPercent(t *testing.T) {
	h := newHarness(t)

	h.slowly()
	h.right()
	h.slowly()
	h.right() // onto Pulse ratio
	h.click()
	f := h.lastFrame()
	if !f.Measuring || f.Unit != "%" {
		t.Errorf("pulse ratio frame = %+v, want measuring in %%", f)
	}
	if f.Value != 50 {
		t.Errorf("pulse ratio value = %d, want 50", f.Value)
	}
}

func TestCheckableToggleUpdatesRecord(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 4; i++ {
		h.slowly()
		h.right()
	}
	h.click() // utilize Frequency floating
	if !h.set.Record().FreqFloating {
		t.Error("FreqFloating not set after toggle")
	}
	h.click()
	if h.set.Record().FreqFloating {
		t.Error("FreqFloating still set after second toggle")
	}
}
