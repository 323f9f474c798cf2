package primitives

import "math/bits"

// MulHiLo computes the full W×W -> 2W product a*b, returning the high
// and low W-bit halves. For T=uint64 this defers to bits.Mul64; for
// narrower T the product fits in a uint64 and is split by shifting,
// which is cheaper than a double-width type for those widths.
func MulHiLo[T Word](a, b T) (hi, lo T) {
	if Width[T]() == 64 {
		h, l := bits.Mul64(uint64(a), uint64(b))
		return T(h), T(l)
	}
	wide := uint64(a) * uint64(b)
	return T(wide >> Width[T]()), T(wide)
}

// LeadingZeros counts the leading zero bits of x within T's width.
func LeadingZeros[T Word](x T) int {
	return bits.LeadingZeros64(uint64(x)) - int(64-Width[T]())
}

// CSelect returns a if cond else b, computed via a bitmask rather than
// a data-dependent branch over the return value (spec.md §4.1). This
// gives conditional-move-style selection without claiming any stronger
// timing guarantee (spec.md Non-goals).
func CSelect[T Word](cond bool, a, b T) T {
	mask := boolMask[T](cond)
	return (a & mask) | (b &^ mask)
}

// boolMask returns all-ones if cond else all-zero.
func boolMask[T Word](cond bool) T {
	var one T
	if cond {
		one = 1
	}
	return T(0) - one
}
