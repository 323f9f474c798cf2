package variant

import (
	"montarith/contract"
	"montarith/primitives"
	"montarith/redc"
	"montarith/value"
)

// Quarter is the n < R/4 residue-range variant (spec.md §4.3.3). Its
// extra headroom lets REDC skip the sign check Full needs: Mont values
// live in the wider [0, 2n) range, and every internal product x*y with
// x,y < 2n has high word strictly below n (since 4n²/R < n whenever
// 4n < R), so redc.QuarterStep's addition-only reduction applies
// without ever going negative.
type Quarter[T primitives.Word] struct {
	n       T
	twoN    T
	negInvN T
	rModN   T
	r2ModN  T
}

func NewQuarter[T primitives.Word](n T) Quarter[T] {
	contract.Require(n > 1, "modulus must exceed 1")
	contract.Require(n&1 == 1, "Quarter requires an odd modulus")
	contract.Require(n <= primitives.Max[T]()>>2, "Quarter requires n <= R/4")
	r := primitives.RModN(n)
	return Quarter[T]{
		n:       n,
		twoN:    n * 2,
		negInvN: primitives.NegInvModR(n),
		rModN:   r,
		r2ModN:  primitives.R2ModN(n, r),
	}
}

func (q Quarter[T]) Modulus() T    { return q.n }
func (q Quarter[T]) MaxModulus() T { return primitives.Max[T]() >> 2 }

func (q Quarter[T]) IsValid(x value.Mont[T]) bool { return x.Bits() < q.twoN }

func (q Quarter[T]) ConvertIn(a T) value.Mont[T] {
	contract.Require(a < q.n, "convert_in argument must be in [0, n)")
	hi, lo := primitives.MulHiLo(a, q.r2ModN)
	return value.FromBits(redc.QuarterStep(hi, lo, q.n, q.negInvN))
}

func (q Quarter[T]) ConvertOut(x value.Mont[T]) T {
	c := q.CanonicalOf(x)
	return redc.QuarterStep(T(0), c.Bits(), q.n, q.negInvN)
}

// CanonicalOf performs the final reduction to [0, n) on demand, exactly
// as spec.md §4.3.3 describes.
func (q Quarter[T]) CanonicalOf(x value.Mont[T]) value.Canonical[T] {
	contract.Invariant(x.Bits() < q.twoN, "Quarter Mont value out of [0,2n) range")
	diff, borrow := primitives.SubBorrow(x.Bits(), q.n, T(0))
	return value.CanonicalFromBits(primitives.CSelect(borrow == 1, x.Bits(), diff))
}

func (q Quarter[T]) FusingOf(x value.Mont[T]) value.Fusing[T] {
	return value.FusingFromBits(q.CanonicalOf(x).Bits())
}

func (q Quarter[T]) Zero() value.Canonical[T] { return value.CanonicalFromBits(T(0)) }
func (q Quarter[T]) One() value.Canonical[T]  { return value.CanonicalFromBits(q.rModN) }
func (q Quarter[T]) NegOne() value.Canonical[T] {
	return q.CanonicalOf(q.Sub(value.FromBits(T(0)), value.FromBits(q.rModN)))
}

// Add/Sub work modulo 2n (the variant's own Mont range), using the same
// carry-tracked branchless-select shape as Full.Add/Sub.
func (q Quarter[T]) Add(x, y value.Mont[T]) value.Mont[T] {
	sum, _ := primitives.AddCarry(x.Bits(), y.Bits(), T(0))
	diff, borrow := primitives.SubBorrow(sum, q.twoN, T(0))
	return value.FromBits(primitives.CSelect(borrow == 1, sum, diff))
}

func (q Quarter[T]) Sub(x, y value.Mont[T]) value.Mont[T] {
	diff, borrow := primitives.SubBorrow(x.Bits(), y.Bits(), T(0))
	sum, _ := primitives.AddCarry(diff, q.twoN, T(0))
	return value.FromBits(primitives.CSelect(borrow == 1, sum, diff))
}

func (q Quarter[T]) UnorderedSub(x, y value.Mont[T]) value.Mont[T] {
	return q.Sub(x, y)
}

func (q Quarter[T]) Negate(x value.Mont[T]) value.Mont[T] {
	return q.Sub(value.FromBits(T(0)), x)
}

func (q Quarter[T]) TwoTimes(x value.Mont[T]) value.Mont[T] {
	return q.Add(x, x)
}

func (q Quarter[T]) Halve(x value.Mont[T]) value.Mont[T] {
	c := q.CanonicalOf(x)
	bits := c.Bits()
	odd := bits&1 == 1
	adjusted := primitives.CSelect(odd, bits+q.n, bits)
	return value.FromBits(adjusted >> 1)
}

func (q Quarter[T]) Multiply(x, y value.Mont[T]) value.Mont[T] {
	hi, lo := primitives.MulHiLo(x.Bits(), y.Bits())
	return value.FromBits(redc.QuarterStep(hi, lo, q.n, q.negInvN))
}

func (q Quarter[T]) MultiplyReportingZero(x, y value.Mont[T]) (value.Mont[T], bool) {
	z := q.Multiply(x, y)
	return z, q.CanonicalOf(z).Bits() == 0
}

func (q Quarter[T]) Square(x value.Mont[T]) value.Mont[T] {
	return q.Multiply(x, x)
}

func (q Quarter[T]) Fmadd(x, y value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return q.Add(q.Multiply(x, y), z.Mont)
}

func (q Quarter[T]) Fmsub(x, y value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return q.Sub(q.Multiply(x, y), z.Mont)
}

func (q Quarter[T]) FusedSquareAdd(x value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return q.Add(q.Square(x), z.Mont)
}

func (q Quarter[T]) FusedSquareSub(x value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return q.Sub(q.Square(x), z.Mont)
}
