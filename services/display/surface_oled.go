//go:build rp2040 || rp2350

package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	oledWidth  = 128
	oledHeight = 64
	oledAddr   = 0x3C

	lineHeight = 13
	baseline   = 11
	cursorX    = 0
	textX      = 10
)

var (
	oledBlack = color.RGBA{}
	oledWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// OLEDSurface draws on a 128x64 SSD1306 over I2C.
type OLEDSurface struct {
	dev  ssd1306.Device
	font *tinyfont.Font
}

// NewOLEDSurface configures the controller on the given I2C bus.
func NewOLEDSurface(bus drivers.I2C) *OLEDSurface {
	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Address: oledAddr,
		Width:   oledWidth,
		Height:  oledHeight,
	})
	dev.ClearDisplay()
	return &OLEDSurface{dev: dev, font: &proggy.TinySZ8pt7b}
}

func (o *OLEDSurface) Clear() {
	o.dev.ClearBuffer()
}

func (o *OLEDSurface) WriteLine(row int, text string, active bool) {
	y := int16(row*lineHeight + baseline)
	if active {
		tinyfont.WriteLine(&o.dev, o.font, cursorX, y, ">", oledWhite)
	}
	tinyfont.WriteLine(&o.dev, o.font, textX, y, text, oledWhite)
}

func (o *OLEDSurface) Flush() error {
	return o.dev.Display()
}
