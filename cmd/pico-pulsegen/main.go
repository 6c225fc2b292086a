//go:build rp2040 || rp2350

// Firmware entry point for the Raspberry Pi Pico build: rotary encoder on
// three GPIOs, SSD1306 over I2C, settings in the flash data area, and a
// bus trace on UART0 for bench debugging.
package main

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"pulsegen-go/bus"
	"pulsegen-go/errcode"
	"pulsegen-go/services/control"
	"pulsegen-go/services/display"
	"pulsegen-go/services/heartbeat"
	"pulsegen-go/services/settings"
	"pulsegen-go/x/timex"
)

const (
	pinClk = machine.GP14
	pinDat = machine.GP15
	pinSw  = machine.GP13

	pinSDA = machine.GP4
	pinSCL = machine.GP5

	traceBaud = 115200
)

// flashStore persists the settings record at the start of the flash data
// area. The record fits well inside one erase block.
type flashStore struct{}

func (flashStore) ReadAt(p []byte, off int) error {
	_, err := machine.Flash.ReadAt(p, int64(off))
	return err
}

func (flashStore) WriteAt(p []byte, off int) error {
	if err := machine.Flash.EraseBlocks(0, 1); err != nil {
		return err
	}
	_, err := machine.Flash.WriteAt(p, int64(off))
	return err
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] pulsegen boot")
	ctx := context.Background()

	for _, pin := range []machine.Pin{pinClk, pinDat, pinSw} {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		SDA:       pinSDA,
		SCL:       pinSCL,
		Frequency: 400000,
	}); err != nil {
		println("[main] i2c configure failed:", err.Error())
	}

	trace := uartx.UART0
	_ = trace.Configure(uartx.UARTConfig{
		BaudRate: traceBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})

	b := bus.NewBus(8)

	// Mirror every bus message topic onto the trace UART.
	mon := b.NewConnection("trace").Subscribe(bus.T("#"))
	go func() {
		for m := range mon.Channel() {
			trace.Write([]byte(m.Topic.String() + "\r\n"))
		}
	}()

	set := settings.New(flashStore{})
	if code := set.Load(); code != errcode.OK {
		println("[main] settings load:", string(code), "- using defaults")
		if err := set.Save(); err != nil {
			println("[main] settings save failed:", err.Error())
		}
	}
	if err := set.Start(ctx, b.NewConnection("settings")); err != nil {
		println("[main] settings start failed:", err.Error())
	}

	ctrl := control.New(pinClk.Get, pinDat.Get, pinSw.Get, set, timex.Wall{})
	if err := ctrl.Start(ctx, b.NewConnection("control")); err != nil {
		println("[main] control start failed:", err.Error())
	}

	disp := display.New(display.NewOLEDSurface(i2c))
	if err := disp.Start(ctx, b.NewConnection("display")); err != nil {
		println("[main] display start failed:", err.Error())
	}

	if err := heartbeat.New(time.Second).Start(ctx, b.NewConnection("heartbeat")); err != nil {
		println("[main] heartbeat start failed:", err.Error())
	}

	println("[main] running")
	for {
		ctrl.Tick()
		time.Sleep(time.Millisecond)
	}
}
