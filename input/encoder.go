// Package input decodes a polled rotary encoder: two quadrature lines and
// one push switch sampled once per control-loop tick. The decoder turns the
// raw levels into rotation, press/release, click and long-click events. No
// interrupts are assumed; everything runs on the single loop that calls
// Update.
package input

// Direction of one rotation detent.
type Direction uint8

const (
	Left Direction = iota // counter-clockwise
	Right                 // clockwise
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// SwitchAction is a debounced press or release of the encoder switch.
type SwitchAction uint8

const (
	Press SwitchAction = iota
	Release
)

func (a SwitchAction) String() string {
	if a == Press {
		return "press"
	}
	return "release"
}

// Rotation is one detent with the elapsed milliseconds since the previous
// one. Small Velocity means fast turning; consumers scale their step size
// from it.
type Rotation struct {
	Dir      Direction
	Velocity int64
}

// Listener receives decoded events. Methods are called synchronously from
// Update and must not block.
type Listener interface {
	Rotate(Rotation)
	Switch(SwitchAction)
	Click()
	LongClick()
}

// Handlers adapts optional funcs to Listener; nil fields are skipped.
type Handlers struct {
	OnRotate    func(Rotation)
	OnSwitch    func(SwitchAction)
	OnClick     func()
	OnLongClick func()
}

func (h Handlers) Rotate(r Rotation) {
	if h.OnRotate != nil {
		h.OnRotate(r)
	}
}

func (h Handlers) Switch(a SwitchAction) {
	if h.OnSwitch != nil {
		h.OnSwitch(a)
	}
}

func (h Handlers) Click() {
	if h.OnClick != nil {
		h.OnClick()
	}
}

func (h Handlers) LongClick() {
	if h.OnLongClick != nil {
		h.OnLongClick()
	}
}

// LineFunc reads one digital line. True is the electrical high level.
type LineFunc func() bool

// DefaultLongClickMs is the hold time that turns a press into a long click.
const DefaultLongClickMs = 450

// Config tunes the decoder. Zero values select the defaults.
type Config struct {
	DebounceMs  int64
	LongClickMs int64
}

// Decoder is the rotary input state machine. Construct with NewDecoder,
// call Begin once to latch the initial line levels, then Update once per
// tick. Update before Begin is a no-op so an unconfigured decoder can never
// emit events.
type Decoder struct {
	clk, dat, sw LineFunc
	listener     Listener

	longClickMs int64
	deb         *Debouncer

	initialized bool
	clkRetain   bool
	swRetain    bool // last accepted stable switch level

	rotatedAt int64 // timestamp of the previous rotation, for velocity
	pressedAt int64 // 0 = no open press
	longFired bool
}

// NewDecoder wires the three line readers to a listener. The listener may
// be nil; events are then decoded and discarded.
func NewDecoder(clk, dat, sw LineFunc, l Listener, cfgs ...Config) *Decoder {
	var cfg Config
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.LongClickMs <= 0 {
		cfg.LongClickMs = DefaultLongClickMs
	}
	return &Decoder{
		clk:         clk,
		dat:         dat,
		sw:          sw,
		listener:    l,
		longClickMs: cfg.LongClickMs,
		deb:         NewDebouncer(cfg.DebounceMs),
	}
}

// SetListener replaces the event listener. Passing nil detaches it.
func (d *Decoder) SetListener(l Listener) { d.listener = l }

// Begin latches the initial line levels so the first Update does not see a
// phantom transition. now is the control loop's millisecond clock.
func (d *Decoder) Begin(now int64) {
	d.initialized = true
	d.clkRetain = d.clk()
	d.swRetain = d.sw()
	d.rotatedAt = now
	d.pressedAt = 0
	d.longFired = false
}

// Update samples all three lines once and dispatches any decoded events.
// Call it once per control-loop tick with a single clock reading.
func (d *Decoder) Update(now int64) {
	if !d.initialized {
		return
	}
	d.updateRotation(now)
	d.updateLongClick(now)
	d.updateSwitch(now)
}

// updateRotation fires on the clock line's rising edge only. The data line
// is read at that moment: equal levels mean clockwise. Falling edges and
// data-only changes are ignored, which halves double-firing from quadrature
// bounce.
func (d *Decoder) updateRotation(now int64) {
	clk := d.clk()
	if clk == d.clkRetain {
		return
	}
	d.clkRetain = clk
	if !clk {
		return
	}
	velocity := now - d.rotatedAt
	d.rotatedAt = now
	dir := Left
	if d.dat() == clk {
		dir = Right
	}
	d.emitRotate(Rotation{Dir: dir, Velocity: velocity})
}

// updateLongClick checks hold time on every tick, independent of switch
// transitions, so the event fires while the knob is still held down. The
// fired flag limits it to once per press and suppresses the release click.
func (d *Decoder) updateLongClick(now int64) {
	if d.pressedAt > 0 && !d.longFired && now-d.pressedAt > d.longClickMs {
		d.longFired = true
		d.emitLongClick()
	}
}

func (d *Decoder) updateSwitch(now int64) {
	level, stable := d.deb.Sample(d.sw(), now)
	if !stable || level == d.swRetain {
		return
	}
	d.swRetain = level
	if level {
		// Switch is active-low: high means released.
		if !d.longFired {
			d.emitClick()
		}
		d.pressedAt = 0
		d.longFired = false
		d.emitSwitch(Release)
	} else {
		d.pressedAt = now
		d.longFired = false
		d.emitSwitch(Press)
	}
}

func (d *Decoder) emitRotate(r Rotation) {
	if d.listener != nil {
		d.listener.Rotate(r)
	}
}

func (d *Decoder) emitSwitch(a SwitchAction) {
	if d.listener != nil {
		d.listener.Switch(a)
	}
}

func (d *Decoder) emitClick() {
	if d.listener != nil {
		d.listener.Click()
	}
}

func (d *Decoder) emitLongClick() {
	if d.listener != nil {
		d.listener.LongClick()
	}
}
