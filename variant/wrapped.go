package variant

import (
	"math/big"

	"montarith/contract"
	"montarith/primitives"
	"montarith/value"
)

// WrappedStandard is the conformance-wrapper variant (spec.md §4.3.4):
// not a Montgomery implementation at all. convert_in/convert_out are
// the identity, and every operation delegates to plain modular
// arithmetic, so that a caller can switch a whole algorithm between
// Montgomery and non-Montgomery at a single type parameter.
//
// Multiply reaches for math/big rather than a hand-rolled wide-multiply
// reduction: this variant is explicitly the non-hot-path reference
// implementation (spec.md: "a conformance wrapper, not true Montgomery"),
// so native division via the standard library is the idiomatic choice,
// matching primitives.R2ModN's own rationale for using math/big at
// Form-construction time.
type WrappedStandard[T primitives.Word] struct {
	n T
}

func NewWrappedStandard[T primitives.Word](n T) WrappedStandard[T] {
	contract.Require(n > 1, "modulus must exceed 1")
	return WrappedStandard[T]{n: n}
}

func (w WrappedStandard[T]) Modulus() T    { return w.n }
func (w WrappedStandard[T]) MaxModulus() T { return primitives.Max[T]() }

func (w WrappedStandard[T]) IsValid(x value.Mont[T]) bool { return x.Bits() < w.n }

func (w WrappedStandard[T]) ConvertIn(a T) value.Mont[T] {
	contract.Require(a < w.n, "convert_in argument must be in [0, n)")
	return value.FromBits(a)
}

func (w WrappedStandard[T]) ConvertOut(x value.Mont[T]) T { return x.Bits() }

func (w WrappedStandard[T]) CanonicalOf(x value.Mont[T]) value.Canonical[T] {
	return value.CanonicalFromBits(x.Bits() % w.n)
}

func (w WrappedStandard[T]) FusingOf(x value.Mont[T]) value.Fusing[T] {
	return value.FusingFromBits(w.CanonicalOf(x).Bits())
}

func (w WrappedStandard[T]) Zero() value.Canonical[T]   { return value.CanonicalFromBits(T(0)) }
func (w WrappedStandard[T]) One() value.Canonical[T]    { return value.CanonicalFromBits(T(1)) }
func (w WrappedStandard[T]) NegOne() value.Canonical[T] { return value.CanonicalFromBits(w.n - 1) }

// Add mirrors Full.Add's carry-aware selection (see its doc comment):
// this variant allows n up to R-1, so x+y can overflow T's width.
func (w WrappedStandard[T]) Add(x, y value.Mont[T]) value.Mont[T] {
	sum, carry := primitives.AddCarry(x.Bits(), y.Bits(), T(0))
	diff, borrow := primitives.SubBorrow(sum, w.n, T(0))
	useSum := carry == 0 && borrow == 1
	return value.FromBits(primitives.CSelect(useSum, sum, diff))
}

func (w WrappedStandard[T]) Sub(x, y value.Mont[T]) value.Mont[T] {
	diff, borrow := primitives.SubBorrow(x.Bits(), y.Bits(), T(0))
	sum, _ := primitives.AddCarry(diff, w.n, T(0))
	return value.FromBits(primitives.CSelect(borrow == 1, sum, diff))
}

func (w WrappedStandard[T]) UnorderedSub(x, y value.Mont[T]) value.Mont[T] {
	return w.Sub(x, y)
}

func (w WrappedStandard[T]) Negate(x value.Mont[T]) value.Mont[T] {
	return w.Sub(value.FromBits(T(0)), x)
}

func (w WrappedStandard[T]) TwoTimes(x value.Mont[T]) value.Mont[T] {
	return w.Add(x, x)
}

// Halve requires n odd, same as the Montgomery variants: without that,
// 2 need not be invertible mod n. Mirrors Full.Halve's carry-aware
// shift (see its doc comment): bits+n can overflow T's width since this
// variant allows n up to R-1.
func (w WrappedStandard[T]) Halve(x value.Mont[T]) value.Mont[T] {
	contract.Require(w.n&1 == 1, "Halve requires an odd modulus")
	bits := x.Bits()
	odd := bits&1 == 1
	sum, carry := primitives.AddCarry(bits, w.n, T(0))
	sumHalved := sum>>1 | carry<<(primitives.Width[T]()-1)
	return value.FromBits(primitives.CSelect(odd, sumHalved, bits>>1))
}

func (w WrappedStandard[T]) Multiply(x, y value.Mont[T]) value.Mont[T] {
	return value.FromBits(mulModBig(x.Bits(), y.Bits(), w.n))
}

func (w WrappedStandard[T]) MultiplyReportingZero(x, y value.Mont[T]) (value.Mont[T], bool) {
	z := w.Multiply(x, y)
	return z, z.Bits() == 0
}

func (w WrappedStandard[T]) Square(x value.Mont[T]) value.Mont[T] {
	return w.Multiply(x, x)
}

func (w WrappedStandard[T]) Fmadd(x, y value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return w.Add(w.Multiply(x, y), z.Mont)
}

func (w WrappedStandard[T]) Fmsub(x, y value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return w.Sub(w.Multiply(x, y), z.Mont)
}

func (w WrappedStandard[T]) FusedSquareAdd(x value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return w.Add(w.Square(x), z.Mont)
}

func (w WrappedStandard[T]) FusedSquareSub(x value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return w.Sub(w.Square(x), z.Mont)
}

func mulModBig[T primitives.Word](x, y, n T) T {
	bx := new(big.Int).SetUint64(uint64(x))
	by := new(big.Int).SetUint64(uint64(y))
	bx.Mul(bx, by)
	bx.Mod(bx, new(big.Int).SetUint64(uint64(n)))
	return T(bx.Uint64())
}
