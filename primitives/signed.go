// This file adds the signed-sibling-type support the Half range variant
// needs (spec.md §4.3.2, §9: "use an explicit signed sibling type of the
// target width, not a cast dance"). Half takes the signed type as its
// type parameter S; its Mont and Fusing values are stored as unsigned T
// bit patterns, with a negative balanced Fusing value held in two's
// complement.
package primitives

import "unsafe"

// SignedWord is the signed counterpart of Word: the family of native
// signed integer widths used internally by the Half variant.
type SignedWord interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// BitPattern unions Word and SignedWord so that width-agnostic,
// sign-agnostic helpers (CSelect, width queries) can be written once
// and shared by every range variant, including Half.
type BitPattern interface {
	Word | SignedWord
}

// WidthOf returns the bit width of any BitPattern type via its storage
// size. Used instead of the OnesCount64 trick from Width[T Word] because
// that trick relies on ^zero being all-ones, which does not hold the
// same way for a signed zero value.
func WidthOf[T BitPattern]() uint {
	var zero T
	return uint(unsafe.Sizeof(zero)) * 8
}

// MulHiLoSigned computes the signed full W×W -> 2W product a*b, returning
// the high and low W-bit halves of the two's-complement result.
//
// For W < 64 both operands are promoted to int64 and multiplied natively:
// the product of two W-bit signed values always fits in 63 bits, so no
// overflow occurs and the halves are recovered by shifting.
//
// For W = 64 there is no wider native signed type, so this uses the
// standard "derive the signed high word from the unsigned high word"
// correction: the unsigned product of the same bit patterns agrees with
// the signed product in the low word always, and in the high word except
// for a correction of -b when a<0 and -a when b<0 (each operand's two's
// complement bit pattern represents a value 2^64 larger than its signed
// value when negative).
func MulHiLoSigned[S SignedWord](a, b S) (hi, lo S) {
	w := WidthOf[S]()
	if w < 64 {
		wide := int64(a) * int64(b)
		return S(wide >> w), S(wide)
	}
	hiU, loU := mulHiLo64Unsigned(uint64(a), uint64(b))
	if a < 0 {
		hiU -= uint64(b)
	}
	if b < 0 {
		hiU -= uint64(a)
	}
	return S(hiU), S(loU)
}

func mulHiLo64Unsigned(a, b uint64) (hi, lo uint64) {
	const mask = 0xFFFFFFFF
	aLo, aHi := a&mask, a>>32
	bLo, bHi := b&mask, b>>32

	t := aLo * bLo
	w0 := t & mask
	k := t >> 32

	t = aHi*bLo + k
	w1 := t & mask
	w2 := t >> 32

	t = aLo*bHi + w1
	k = t >> 32

	lo = (t << 32) | w0
	hi = aHi*bHi + w2 + k
	return
}

// CSelect2 is CSelect generalized to any BitPattern, not just Word,
// so that Half's signed Mont values also get branchless selection.
func CSelect2[T BitPattern](cond bool, a, b T) T {
	mask := boolMask2[T](cond)
	return (a & mask) | (b &^ mask)
}

func boolMask2[T BitPattern](cond bool) T {
	var one T
	if cond {
		one = 1
	}
	return T(0) - one
}
