package settings

import "github.com/andreyvit/tinyjson"

// -----------------------------------------------------------------------------
// Embedded defaults
//
// The default record ships as JSON so device variants can override it at
// build time without touching the codec. Key: profile name, val: raw JSON.
// -----------------------------------------------------------------------------

const profileDefault = `{
  "min_freq": 60,
  "max_freq": 3000,
  "pulse_ratio": 50,
  "curve_shape": 0,
  "freq_floating": false,
  "freq_units": 0
}`

var embeddedProfiles = map[string][]byte{
	"default": []byte(profileDefault),
}

// DefaultsFor resolves the embedded profile for the given name. Unknown
// names and malformed profiles fall back to the compiled-in record.
func DefaultsFor(profile string) Record {
	raw, ok := embeddedProfiles[profile]
	if !ok {
		return fallback()
	}
	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return fallback()
	}
	rec := fallback()
	if v, ok := num(m, "min_freq"); ok {
		rec.MinFreq = uint16(v)
	}
	if v, ok := num(m, "max_freq"); ok {
		rec.MaxFreq = uint16(v)
	}
	if v, ok := num(m, "pulse_ratio"); ok {
		rec.PulseRatio = uint8(v)
	}
	if v, ok := num(m, "curve_shape"); ok {
		rec.CurveShape = uint8(v)
	}
	if v, ok := m["freq_floating"].(bool); ok {
		rec.FreqFloating = v
	}
	if v, ok := num(m, "freq_units"); ok {
		rec.FreqUnits = uint8(v)
	}
	return rec
}

// Defaults returns the record for the default profile.
func Defaults() Record { return DefaultsFor("default") }

func fallback() Record {
	return Record{
		MinFreq:      60,
		MaxFreq:      3000,
		PulseRatio:   50,
		CurveShape:   CurveLinear,
		FreqFloating: false,
		FreqUnits:    UnitsRPM,
	}
}

func num(m map[string]any, key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}
