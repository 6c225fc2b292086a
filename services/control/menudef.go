package control

import (
	"pulsegen-go/menu"
	"pulsegen-go/services/settings"
)

// Menu item identifiers. Utilization is dispatched on these, so they are
// stable across firmware versions. Back entries share id 0 deliberately:
// utilizing any of them navigates up one level.
const (
	IDBack           = 0
	IDMinFreq        = 11
	IDMaxFreq        = 12
	IDPulseRatio     = 13
	IDCurveShape     = 14
	IDCurveLinear    = 141
	IDCurveQuadratic = 142
	IDFreqFloating   = 15
	IDFreqUnits      = 16
	IDUnitsRPM       = 161
	IDUnitsHz        = 162
)

// Radio group indexes, one per submenu with mutually exclusive choices.
const (
	groupCurve uint8 = 1
	groupUnits uint8 = 2
)

// BuildMenu constructs the generator menu and seeds the check state from
// the persisted record.
func BuildMenu(rec settings.Record) *menu.Menu {
	m := menu.NewMenu(0, "")
	m.Root().
		SetMenu(menu.NewItem(IDMinFreq, "Minimal frequency")).
		SetNext(menu.NewItem(IDMaxFreq, "Maximal frequency")).
		SetNext(menu.NewItem(IDPulseRatio, "Pulse ratio")).
		SetNext(menu.NewItem(IDCurveShape, "Acceleration curve")).
		SetMenu(menu.NewRadio(IDCurveLinear, "Linear curve", groupCurve,
			rec.CurveShape == settings.CurveLinear)).
		SetNext(menu.NewRadio(IDCurveQuadratic, "Quadratic curve", groupCurve,
			rec.CurveShape == settings.CurveQuadratic)).
		SetNext(menu.NewItem(IDBack, "Back")).
		Back().
		SetNext(menu.NewCheckable(IDFreqFloating, "Frequency floating", rec.FreqFloating)).
		SetNext(menu.NewItem(IDFreqUnits, "Frequency units")).
		SetMenu(menu.NewRadio(IDUnitsRPM, "Rotates per minute", groupUnits,
			rec.FreqUnits == settings.UnitsRPM)).
		SetNext(menu.NewRadio(IDUnitsHz, "Hertz", groupUnits,
			rec.FreqUnits == settings.UnitsHz)).
		SetNext(menu.NewItem(IDBack, "Back")).
		Back().
		SetNext(menu.NewItem(IDBack, "Back"))
	return m
}
