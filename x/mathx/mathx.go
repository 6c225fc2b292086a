package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MapRange maps v linearly from [inLo, inHi] onto [outLo, outHi] using
// integer arithmetic with round-to-nearest. The result is clamped to the
// output range, so out-of-range inputs saturate instead of extrapolating.
func MapRange(v, inLo, inHi, outLo, outHi int32) int32 {
	if inHi == inLo {
		return outLo
	}
	num := int64(v-inLo) * int64(outHi-outLo)
	den := int64(inHi - inLo)
	half := den / 2
	if (num < 0) != (den < 0) {
		half = -half
	}
	out := int32((num+half)/den) + outLo
	return Clamp(out, outLo, outHi)
}
