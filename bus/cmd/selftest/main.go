//go:build rp2040 || rp2350

// On-device self-test: runs the broker, the settings codec and the menu
// navigator on the actual MCU scheduler and reports over USB CDC. Solid
// LED means all passed, blinking means at least one failure.
package main

import (
	"time"

	"machine"

	"pulsegen-go/bus"
	"pulsegen-go/errcode"
	"pulsegen-go/menu"
	"pulsegen-go/services/settings"
)

func expectOne(sub *bus.Subscription, want string, timeout time.Duration) bool {
	select {
	case got := <-sub.Channel():
		s, ok := got.Payload.(string)
		return ok && s == want
	case <-time.After(timeout):
		return false
	}
}

func expectNone(sub *bus.Subscription, timeout time.Duration) bool {
	select {
	case <-sub.Channel():
		return false
	case <-time.After(timeout):
		return true
	}
}

func testBasicPubSub() bool {
	b := bus.NewBus(4)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(bus.T("settings", "changed"))

	conn.Publish(conn.NewMessage(bus.T("settings", "changed"), "hello", false))
	return expectOne(sub, "hello", 100*time.Millisecond)
}

func testRetained() bool {
	b := bus.NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(bus.T("display", "frame"), "persist", true))
	sub := conn.Subscribe(bus.T("display", "frame"))
	if !expectOne(sub, "persist", 100*time.Millisecond) {
		return false
	}

	// Nil retained payload clears the slot.
	conn.Publish(conn.NewMessage(bus.T("display", "frame"), nil, true))
	late := conn.Subscribe(bus.T("display", "frame"))
	return expectNone(late, 60*time.Millisecond)
}

func testWildcards() bool {
	b := bus.NewBus(8)
	conn := b.NewConnection("test")

	one := conn.Subscribe(bus.T("menu", "+"))
	all := conn.Subscribe(bus.T("#"))
	miss := conn.Subscribe(bus.T("menu", "+", "deep"))

	conn.Publish(conn.NewMessage(bus.T("menu", "active"), "m1", false))
	if !expectOne(one, "m1", 100*time.Millisecond) {
		return false
	}
	if !expectOne(all, "m1", 100*time.Millisecond) {
		return false
	}
	return expectNone(miss, 60*time.Millisecond)
}

func testDropOldest() bool {
	b := bus.NewBus(1)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(bus.T("status", "uptime"))

	conn.Publish(conn.NewMessage(bus.T("status", "uptime"), "old", false))
	conn.Publish(conn.NewMessage(bus.T("status", "uptime"), "new", false))
	return expectOne(sub, "new", 100*time.Millisecond)
}

func testCodecRoundTrip() bool {
	rec := settings.Record{
		MinFreq:      120,
		MaxFreq:      4500,
		PulseRatio:   35,
		CurveShape:   settings.CurveQuadratic,
		FreqFloating: true,
		FreqUnits:    settings.UnitsHz,
	}
	got, err := settings.Decode(settings.Encode(rec))
	return err == nil && got == rec
}

func testCodecRejectsCorruption() bool {
	raw := settings.Encode(settings.Defaults())
	raw[len(raw)-1] ^= 0x01
	_, err := settings.Decode(raw)
	return errcode.Of(err) == errcode.BadChecksum
}

func testMenuNavigation() bool {
	m := menu.NewMenu(0, "")
	m.Root().
		SetMenu(menu.NewItem(1, "first")).
		SetNext(menu.NewItem(2, "second"))

	if _, ok := m.Enter(); !ok || m.Active().ID() != 1 {
		return false
	}
	if _, ok := m.Next(); !ok || m.Active().ID() != 2 {
		return false
	}
	// Last sibling: Next must hold position.
	if _, ok := m.Next(); ok {
		return false
	}
	return m.Active().ID() == 2
}

type testFn struct {
	name string
	fn   func() bool
}

func main() {
	// Give the USB CDC time to enumerate so logs show up reliably.
	time.Sleep(250 * time.Millisecond)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.High() // signal "running"

	tests := []testFn{
		{"BasicPubSub", testBasicPubSub},
		{"Retained", testRetained},
		{"Wildcards", testWildcards},
		{"DropOldest", testDropOldest},
		{"CodecRoundTrip", testCodecRoundTrip},
		{"CodecRejectsCorruption", testCodecRejectsCorruption},
		{"MenuNavigation", testMenuNavigation},
	}

	passed, failed := 0, 0
	println("== self-test starting ==")
	for _, tc := range tests {
		if tc.fn() {
			println("[PASS]", tc.name)
			passed++
		} else {
			println("[FAIL]", tc.name)
			failed++
		}
		// tiny pause between tests to keep timings sane on MCU
		time.Sleep(10 * time.Millisecond)
	}
	println("== done:", passed, "passed,", failed, "failed ==")

	// LED: solid ON if all passed, otherwise slow blink forever.
	if failed == 0 {
		for {
			led.High()
			time.Sleep(2 * time.Second)
		}
	} else {
		for {
			led.High()
			time.Sleep(250 * time.Millisecond)
			led.Low()
			time.Sleep(250 * time.Millisecond)
		}
	}
}
