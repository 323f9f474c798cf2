// This file is the T=128 counterpart of variant.go/full.go/quarter.go/
// wrapped.go/half.go (spec.md §4.3's "a parallel Full128/Half128/
// Quarter128/WrappedStandard128 tier for T=128 built on Uint128").
// Uint128 cannot instantiate the Word-generic Variant[T] family, so this
// tier is a small hand-duplicated mirror rather than a generic
// instantiation -- the same relationship primitives.Uint128 already has
// to primitives.Word.
package variant

import (
	"math/big"

	"montarith/contract"
	"montarith/primitives"
	"montarith/redc"
	"montarith/value"
)

// Variant128 is Variant[T] with T fixed to primitives.Uint128.
type Variant128 interface {
	Modulus() primitives.Uint128
	MaxModulus() primitives.Uint128

	IsValid(x value.Mont128) bool
	ConvertIn(a primitives.Uint128) value.Mont128
	ConvertOut(x value.Mont128) primitives.Uint128
	CanonicalOf(x value.Mont128) value.Canonical128
	FusingOf(x value.Mont128) value.Fusing128

	Zero() value.Canonical128
	One() value.Canonical128
	NegOne() value.Canonical128

	Add(x, y value.Mont128) value.Mont128
	Sub(x, y value.Mont128) value.Mont128
	UnorderedSub(x, y value.Mont128) value.Mont128
	Negate(x value.Mont128) value.Mont128
	TwoTimes(x value.Mont128) value.Mont128
	Halve(x value.Mont128) value.Mont128

	Multiply(x, y value.Mont128) value.Mont128
	MultiplyReportingZero(x, y value.Mont128) (value.Mont128, bool)
	Square(x value.Mont128) value.Mont128

	Fmadd(x, y value.Mont128, z value.Fusing128) value.Mont128
	Fmsub(x, y value.Mont128, z value.Fusing128) value.Mont128
	FusedSquareAdd(x value.Mont128, z value.Fusing128) value.Mont128
	FusedSquareSub(x value.Mont128, z value.Fusing128) value.Mont128
}

var maxUint128 = primitives.U128(^uint64(0), ^uint64(0))
var quarterMaxUint128 = primitives.U128(^uint64(0), ^uint64(0)>>2)
var halfMaxUint128 = primitives.U128(^uint64(0), ^uint64(0)>>1)
var zeroUint128 = primitives.Uint128{}
var oneUint128 = primitives.U128(1, 0)

func rshift128(x primitives.Uint128) primitives.Uint128 {
	return primitives.Uint128{Lo: (x.Lo >> 1) | (x.Hi << 63), Hi: x.Hi >> 1}
}

// Full128 is Full[T] specialized to T=Uint128.
type Full128 struct {
	n       primitives.Uint128
	negInvN primitives.Uint128
	rModN   primitives.Uint128
	r2ModN  primitives.Uint128
}

func NewFull128(n primitives.Uint128) Full128 {
	contract.Require(n.Cmp(oneUint128) > 0, "modulus must exceed 1")
	contract.Require(n.Lo&1 == 1, "Full128 requires an odd modulus")
	r := primitives.RModN128(n)
	return Full128{n: n, negInvN: primitives.NegInvModR128(n), rModN: r, r2ModN: primitives.R2ModN128(n, r)}
}

func (f Full128) Modulus() primitives.Uint128    { return f.n }
func (f Full128) MaxModulus() primitives.Uint128 { return maxUint128 }

func (f Full128) IsValid(x value.Mont128) bool { return x.Bits().Cmp(f.n) < 0 }

func (f Full128) ConvertIn(a primitives.Uint128) value.Mont128 {
	contract.Require(a.Cmp(f.n) < 0, "convert_in argument must be in [0, n)")
	p := primitives.MulHiLo128(a, f.r2ModN)
	return value.FromBits128(redc.Standard128(p.Hi128(), p.Lo128(), f.n, f.negInvN))
}

func (f Full128) ConvertOut(x value.Mont128) primitives.Uint128 {
	return redc.Standard128(zeroUint128, x.Bits(), f.n, f.negInvN)
}

func (f Full128) CanonicalOf(x value.Mont128) value.Canonical128 {
	return value.CanonicalFromBits128(x.Bits())
}

func (f Full128) FusingOf(x value.Mont128) value.Fusing128 {
	return value.FusingFromBits128(f.CanonicalOf(x).Bits())
}

func (f Full128) Zero() value.Canonical128 { return value.CanonicalFromBits128(zeroUint128) }
func (f Full128) One() value.Canonical128  { return value.CanonicalFromBits128(f.rModN) }
func (f Full128) NegOne() value.Canonical128 {
	return f.CanonicalOf(f.Sub(value.FromBits128(zeroUint128), value.FromBits128(f.rModN)))
}

// Add mirrors Full[T].Add's carry-aware selection (see its doc comment):
// n can be large enough that x+y overflows Uint128's width.
func (f Full128) Add(x, y value.Mont128) value.Mont128 {
	sum, carry := x.Bits().Add(y.Bits())
	diff, borrow := sum.Sub(f.n)
	useSum := carry == 0 && borrow == 1
	return value.FromBits128(primitives.CSelect128(useSum, sum, diff))
}

func (f Full128) Sub(x, y value.Mont128) value.Mont128 {
	diff, borrow := x.Bits().Sub(y.Bits())
	sum, _ := diff.Add(f.n)
	return value.FromBits128(primitives.CSelect128(borrow == 1, sum, diff))
}

func (f Full128) UnorderedSub(x, y value.Mont128) value.Mont128 { return f.Sub(x, y) }

func (f Full128) Negate(x value.Mont128) value.Mont128 {
	return f.Sub(value.FromBits128(zeroUint128), x)
}

func (f Full128) TwoTimes(x value.Mont128) value.Mont128 { return f.Add(x, x) }

// Halve mirrors Full[T].Halve's carry-aware shift (see its doc comment):
// bits+n can overflow Uint128's width, so the addition's carry bit must
// be folded back in above the shift rather than discarded before it.
func (f Full128) Halve(x value.Mont128) value.Mont128 {
	bits := x.Bits()
	odd := bits.Lo&1 == 1
	sum, carry := bits.Add(f.n)
	sumHalved := rshift128(sum)
	sumHalved.Hi |= carry << 63
	return value.FromBits128(primitives.CSelect128(odd, sumHalved, rshift128(bits)))
}

func (f Full128) Multiply(x, y value.Mont128) value.Mont128 {
	p := primitives.MulHiLo128(x.Bits(), y.Bits())
	return value.FromBits128(redc.Standard128(p.Hi128(), p.Lo128(), f.n, f.negInvN))
}

func (f Full128) MultiplyReportingZero(x, y value.Mont128) (value.Mont128, bool) {
	z := f.Multiply(x, y)
	return z, z.Bits() == zeroUint128
}

func (f Full128) Square(x value.Mont128) value.Mont128 { return f.Multiply(x, x) }

func (f Full128) Fmadd(x, y value.Mont128, z value.Fusing128) value.Mont128 {
	return f.Add(f.Multiply(x, y), z.Mont128)
}
func (f Full128) Fmsub(x, y value.Mont128, z value.Fusing128) value.Mont128 {
	return f.Sub(f.Multiply(x, y), z.Mont128)
}
func (f Full128) FusedSquareAdd(x value.Mont128, z value.Fusing128) value.Mont128 {
	return f.Add(f.Square(x), z.Mont128)
}
func (f Full128) FusedSquareSub(x value.Mont128, z value.Fusing128) value.Mont128 {
	return f.Sub(f.Square(x), z.Mont128)
}

// Quarter128 is Quarter[T] specialized to T=Uint128.
type Quarter128 struct {
	n       primitives.Uint128
	twoN    primitives.Uint128
	negInvN primitives.Uint128
	rModN   primitives.Uint128
	r2ModN  primitives.Uint128
}

func NewQuarter128(n primitives.Uint128) Quarter128 {
	contract.Require(n.Cmp(oneUint128) > 0, "modulus must exceed 1")
	contract.Require(n.Lo&1 == 1, "Quarter128 requires an odd modulus")
	contract.Require(n.Cmp(quarterMaxUint128) <= 0, "Quarter128 requires n <= R/4")
	r := primitives.RModN128(n)
	twoN, _ := n.Add(n)
	return Quarter128{n: n, twoN: twoN, negInvN: primitives.NegInvModR128(n), rModN: r, r2ModN: primitives.R2ModN128(n, r)}
}

func (q Quarter128) Modulus() primitives.Uint128    { return q.n }
func (q Quarter128) MaxModulus() primitives.Uint128 { return quarterMaxUint128 }

func (q Quarter128) IsValid(x value.Mont128) bool { return x.Bits().Cmp(q.twoN) < 0 }

func (q Quarter128) ConvertIn(a primitives.Uint128) value.Mont128 {
	contract.Require(a.Cmp(q.n) < 0, "convert_in argument must be in [0, n)")
	p := primitives.MulHiLo128(a, q.r2ModN)
	return value.FromBits128(redc.QuarterStep128(p.Hi128(), p.Lo128(), q.n, q.negInvN))
}

func (q Quarter128) ConvertOut(x value.Mont128) primitives.Uint128 {
	c := q.CanonicalOf(x)
	return redc.QuarterStep128(zeroUint128, c.Bits(), q.n, q.negInvN)
}

func (q Quarter128) CanonicalOf(x value.Mont128) value.Canonical128 {
	diff, borrow := x.Bits().Sub(q.n)
	return value.CanonicalFromBits128(primitives.CSelect128(borrow == 1, x.Bits(), diff))
}

func (q Quarter128) FusingOf(x value.Mont128) value.Fusing128 {
	return value.FusingFromBits128(q.CanonicalOf(x).Bits())
}

func (q Quarter128) Zero() value.Canonical128 { return value.CanonicalFromBits128(zeroUint128) }
func (q Quarter128) One() value.Canonical128  { return value.CanonicalFromBits128(q.rModN) }
func (q Quarter128) NegOne() value.Canonical128 {
	return q.CanonicalOf(q.Sub(value.FromBits128(zeroUint128), value.FromBits128(q.rModN)))
}

func (q Quarter128) Add(x, y value.Mont128) value.Mont128 {
	sum, _ := x.Bits().Add(y.Bits())
	diff, borrow := sum.Sub(q.twoN)
	return value.FromBits128(primitives.CSelect128(borrow == 1, sum, diff))
}

func (q Quarter128) Sub(x, y value.Mont128) value.Mont128 {
	diff, borrow := x.Bits().Sub(y.Bits())
	sum, _ := diff.Add(q.twoN)
	return value.FromBits128(primitives.CSelect128(borrow == 1, sum, diff))
}

func (q Quarter128) UnorderedSub(x, y value.Mont128) value.Mont128 { return q.Sub(x, y) }

func (q Quarter128) Negate(x value.Mont128) value.Mont128 {
	return q.Sub(value.FromBits128(zeroUint128), x)
}

func (q Quarter128) TwoTimes(x value.Mont128) value.Mont128 { return q.Add(x, x) }

func (q Quarter128) Halve(x value.Mont128) value.Mont128 {
	c := q.CanonicalOf(x)
	bits := c.Bits()
	odd := bits.Lo&1 == 1
	added, _ := bits.Add(q.n)
	adjusted := primitives.CSelect128(odd, added, bits)
	return value.FromBits128(rshift128(adjusted))
}

func (q Quarter128) Multiply(x, y value.Mont128) value.Mont128 {
	p := primitives.MulHiLo128(x.Bits(), y.Bits())
	return value.FromBits128(redc.QuarterStep128(p.Hi128(), p.Lo128(), q.n, q.negInvN))
}

func (q Quarter128) MultiplyReportingZero(x, y value.Mont128) (value.Mont128, bool) {
	z := q.Multiply(x, y)
	return z, q.CanonicalOf(z).Bits() == zeroUint128
}

func (q Quarter128) Square(x value.Mont128) value.Mont128 { return q.Multiply(x, x) }

func (q Quarter128) Fmadd(x, y value.Mont128, z value.Fusing128) value.Mont128 {
	return q.Add(q.Multiply(x, y), z.Mont128)
}
func (q Quarter128) Fmsub(x, y value.Mont128, z value.Fusing128) value.Mont128 {
	return q.Sub(q.Multiply(x, y), z.Mont128)
}
func (q Quarter128) FusedSquareAdd(x value.Mont128, z value.Fusing128) value.Mont128 {
	return q.Add(q.Square(x), z.Mont128)
}
func (q Quarter128) FusedSquareSub(x value.Mont128, z value.Fusing128) value.Mont128 {
	return q.Sub(q.Square(x), z.Mont128)
}

// WrappedStandard128 is WrappedStandard[T] specialized to T=Uint128,
// using math/big for Multiply exactly as WrappedStandard[T] does.
type WrappedStandard128 struct {
	n primitives.Uint128
}

func NewWrappedStandard128(n primitives.Uint128) WrappedStandard128 {
	contract.Require(n.Cmp(oneUint128) > 0, "modulus must exceed 1")
	return WrappedStandard128{n: n}
}

func (w WrappedStandard128) Modulus() primitives.Uint128    { return w.n }
func (w WrappedStandard128) MaxModulus() primitives.Uint128 { return maxUint128 }

func (w WrappedStandard128) IsValid(x value.Mont128) bool { return x.Bits().Cmp(w.n) < 0 }

func (w WrappedStandard128) ConvertIn(a primitives.Uint128) value.Mont128 {
	contract.Require(a.Cmp(w.n) < 0, "convert_in argument must be in [0, n)")
	return value.FromBits128(a)
}

func (w WrappedStandard128) ConvertOut(x value.Mont128) primitives.Uint128 { return x.Bits() }

func (w WrappedStandard128) CanonicalOf(x value.Mont128) value.Canonical128 {
	bigX := toBigU128(x.Bits())
	bigX.Mod(bigX, toBigU128(w.n))
	return value.CanonicalFromBits128(fromBigU128(bigX))
}

func (w WrappedStandard128) FusingOf(x value.Mont128) value.Fusing128 {
	return value.FusingFromBits128(w.CanonicalOf(x).Bits())
}

func (w WrappedStandard128) Zero() value.Canonical128 { return value.CanonicalFromBits128(zeroUint128) }
func (w WrappedStandard128) One() value.Canonical128  { return value.CanonicalFromBits128(oneUint128) }
func (w WrappedStandard128) NegOne() value.Canonical128 {
	diff, _ := w.n.Sub(oneUint128)
	return value.CanonicalFromBits128(diff)
}

// Add mirrors Full128.Add's carry-aware selection; see its doc comment.
func (w WrappedStandard128) Add(x, y value.Mont128) value.Mont128 {
	sum, carry := x.Bits().Add(y.Bits())
	diff, borrow := sum.Sub(w.n)
	useSum := carry == 0 && borrow == 1
	return value.FromBits128(primitives.CSelect128(useSum, sum, diff))
}

func (w WrappedStandard128) Sub(x, y value.Mont128) value.Mont128 {
	diff, borrow := x.Bits().Sub(y.Bits())
	sum, _ := diff.Add(w.n)
	return value.FromBits128(primitives.CSelect128(borrow == 1, sum, diff))
}

func (w WrappedStandard128) UnorderedSub(x, y value.Mont128) value.Mont128 { return w.Sub(x, y) }

func (w WrappedStandard128) Negate(x value.Mont128) value.Mont128 {
	return w.Sub(value.FromBits128(zeroUint128), x)
}

func (w WrappedStandard128) TwoTimes(x value.Mont128) value.Mont128 { return w.Add(x, x) }

// Halve mirrors Full128.Halve's carry-aware shift; see its doc comment.
func (w WrappedStandard128) Halve(x value.Mont128) value.Mont128 {
	contract.Require(w.n.Lo&1 == 1, "Halve requires an odd modulus")
	bits := x.Bits()
	odd := bits.Lo&1 == 1
	sum, carry := bits.Add(w.n)
	sumHalved := rshift128(sum)
	sumHalved.Hi |= carry << 63
	return value.FromBits128(primitives.CSelect128(odd, sumHalved, rshift128(bits)))
}

func (w WrappedStandard128) Multiply(x, y value.Mont128) value.Mont128 {
	bigX := toBigU128(x.Bits())
	bigY := toBigU128(y.Bits())
	bigX.Mul(bigX, bigY)
	bigX.Mod(bigX, toBigU128(w.n))
	return value.FromBits128(fromBigU128(bigX))
}

func (w WrappedStandard128) MultiplyReportingZero(x, y value.Mont128) (value.Mont128, bool) {
	z := w.Multiply(x, y)
	return z, z.Bits() == zeroUint128
}

func (w WrappedStandard128) Square(x value.Mont128) value.Mont128 { return w.Multiply(x, x) }

func (w WrappedStandard128) Fmadd(x, y value.Mont128, z value.Fusing128) value.Mont128 {
	return w.Add(w.Multiply(x, y), z.Mont128)
}
func (w WrappedStandard128) Fmsub(x, y value.Mont128, z value.Fusing128) value.Mont128 {
	return w.Sub(w.Multiply(x, y), z.Mont128)
}
func (w WrappedStandard128) FusedSquareAdd(x value.Mont128, z value.Fusing128) value.Mont128 {
	return w.Add(w.Square(x), z.Mont128)
}
func (w WrappedStandard128) FusedSquareSub(x value.Mont128, z value.Fusing128) value.Mont128 {
	return w.Sub(w.Square(x), z.Mont128)
}

func toBigU128(x primitives.Uint128) *big.Int {
	v := new(big.Int).SetUint64(x.Hi)
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(x.Lo))
	return v
}

func fromBigU128(x *big.Int) primitives.Uint128 {
	mask64 := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(x, mask64).Uint64()
	hi := new(big.Int).Rsh(x, 64).Uint64()
	return primitives.Uint128{Lo: lo, Hi: hi}
}

// Half128 is Half[T,S] specialized to T=Uint128, using Uint128's own
// wraparound subtraction for the balanced signed representative since Go
// has no native int128 sibling type to parametrize over.
type Half128 struct {
	full Full128
}

func NewHalf128(n primitives.Uint128) Half128 {
	contract.Require(n.Cmp(oneUint128) > 0, "modulus must exceed 1")
	contract.Require(n.Lo&1 == 1, "Half128 requires an odd modulus")
	contract.Require(n.Cmp(halfMaxUint128) <= 0, "Half128 requires n <= R/2")
	return Half128{full: NewFull128(n)}
}

func (h Half128) Modulus() primitives.Uint128    { return h.full.Modulus() }
func (h Half128) MaxModulus() primitives.Uint128 { return halfMaxUint128 }

func (h Half128) IsValid(x value.Mont128) bool { return h.full.IsValid(x) }

func (h Half128) ConvertIn(a primitives.Uint128) value.Mont128 { return h.full.ConvertIn(a) }
func (h Half128) ConvertOut(x value.Mont128) primitives.Uint128 {
	return h.full.ConvertOut(x)
}

func (h Half128) CanonicalOf(x value.Mont128) value.Canonical128 { return h.full.CanonicalOf(x) }

// FusingOf mirrors Half[T,S].FusingOf: a balanced signed representative
// in [-(n-1)/2, (n-1)/2], obtained by wraparound subtraction rather than
// an actual signed 128-bit type.
func (h Half128) FusingOf(x value.Mont128) value.Fusing128 {
	c := h.full.CanonicalOf(x).Bits()
	n := h.full.Modulus()
	nMinus1, _ := n.Sub(oneUint128)
	half := rshift128(nMinus1)
	balanced, _ := c.Sub(n)
	return value.FusingFromBits128(primitives.CSelect128(c.Cmp(half) > 0, balanced, c))
}

func (h Half128) Zero() value.Canonical128   { return h.full.Zero() }
func (h Half128) One() value.Canonical128    { return h.full.One() }
func (h Half128) NegOne() value.Canonical128 { return h.full.NegOne() }

func (h Half128) Add(x, y value.Mont128) value.Mont128          { return h.full.Add(x, y) }
func (h Half128) Sub(x, y value.Mont128) value.Mont128          { return h.full.Sub(x, y) }
func (h Half128) UnorderedSub(x, y value.Mont128) value.Mont128 { return h.full.UnorderedSub(x, y) }
func (h Half128) Negate(x value.Mont128) value.Mont128          { return h.full.Negate(x) }
func (h Half128) TwoTimes(x value.Mont128) value.Mont128        { return h.full.TwoTimes(x) }
func (h Half128) Halve(x value.Mont128) value.Mont128           { return h.full.Halve(x) }

func (h Half128) Multiply(x, y value.Mont128) value.Mont128 { return h.full.Multiply(x, y) }
func (h Half128) MultiplyReportingZero(x, y value.Mont128) (value.Mont128, bool) {
	return h.full.MultiplyReportingZero(x, y)
}
func (h Half128) Square(x value.Mont128) value.Mont128 { return h.full.Square(x) }

// canonicalFusing mirrors Half[T,S].canonicalFusing: inverts FusingOf's
// balanced-representative branch so Full128.Add/Sub (which require both
// operands already in [0,n)) see a canonical bit pattern rather than the
// raw R-wraparound encoding of a negative balanced value.
func (h Half128) canonicalFusing(z value.Fusing128) value.Mont128 {
	n := h.full.Modulus()
	nMinus1, _ := n.Sub(oneUint128)
	half := rshift128(nMinus1)
	s := z.Mont128.Bits()
	restored, _ := s.Add(n)
	return value.FromBits128(primitives.CSelect128(s.Cmp(half) > 0, restored, s))
}

func (h Half128) Fmadd(x, y value.Mont128, z value.Fusing128) value.Mont128 {
	return h.full.Add(h.full.Multiply(x, y), h.canonicalFusing(z))
}
func (h Half128) Fmsub(x, y value.Mont128, z value.Fusing128) value.Mont128 {
	return h.full.Sub(h.full.Multiply(x, y), h.canonicalFusing(z))
}
func (h Half128) FusedSquareAdd(x value.Mont128, z value.Fusing128) value.Mont128 {
	return h.full.Add(h.full.Square(x), h.canonicalFusing(z))
}
func (h Half128) FusedSquareSub(x value.Mont128, z value.Fusing128) value.Mont128 {
	return h.full.Sub(h.full.Square(x), h.canonicalFusing(z))
}
