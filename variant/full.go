package variant

import (
	"montarith/contract"
	"montarith/primitives"
	"montarith/redc"
	"montarith/value"
)

// Full is the unrestricted residue-range variant: n < R, n odd
// (spec.md §4.3.1). Mont values lie in [0, n) and Canonical equals
// Mont -- every multiply/add/sub fully normalizes before returning.
type Full[T primitives.Word] struct {
	n       T
	negInvN T
	rModN   T
	r2ModN  T
}

// NewFull constructs a Full variant for modulus n. Precondition (spec.md
// §3): n odd, 1 < n < R -- the latter always holds since n has type T.
func NewFull[T primitives.Word](n T) Full[T] {
	contract.Require(n > 1, "modulus must exceed 1")
	contract.Require(n&1 == 1, "Full requires an odd modulus")
	r := primitives.RModN(n)
	return Full[T]{
		n:       n,
		negInvN: primitives.NegInvModR(n),
		rModN:   r,
		r2ModN:  primitives.R2ModN(n, r),
	}
}

func (f Full[T]) Modulus() T    { return f.n }
func (f Full[T]) MaxModulus() T { return primitives.Max[T]() }

func (f Full[T]) IsValid(x value.Mont[T]) bool { return x.Bits() < f.n }

func (f Full[T]) ConvertIn(a T) value.Mont[T] {
	contract.Require(a < f.n, "convert_in argument must be in [0, n)")
	hi, lo := primitives.MulHiLo(a, f.r2ModN)
	return value.FromBits(redc.Standard(hi, lo, f.n, f.negInvN))
}

func (f Full[T]) ConvertOut(x value.Mont[T]) T {
	return redc.Standard(T(0), x.Bits(), f.n, f.negInvN)
}

func (f Full[T]) CanonicalOf(x value.Mont[T]) value.Canonical[T] {
	contract.Invariant(x.Bits() < f.n, "Full Mont value out of [0,n) range")
	return value.CanonicalFromBits(x.Bits())
}

func (f Full[T]) FusingOf(x value.Mont[T]) value.Fusing[T] {
	return value.FusingFromBits(f.CanonicalOf(x).Bits())
}

func (f Full[T]) Zero() value.Canonical[T]   { return value.CanonicalFromBits(T(0)) }
func (f Full[T]) One() value.Canonical[T]    { return value.CanonicalFromBits(f.rModN) }
func (f Full[T]) NegOne() value.Canonical[T] {
	return f.CanonicalOf(f.Sub(value.FromBits(T(0)), value.FromBits(f.rModN)))
}

// Add computes x+y reduced mod n via a single branchless select between
// the raw sum and the sum-minus-n, per spec.md §4.3.1.
//
// x+y can exceed T's width when n is large (Full permits n up to R-1,
// unlike Half/Quarter's n<R/2, n<R/4): if the addition itself carried
// out, the true sum is sum+R, which already exceeds n (since n<R), so
// the wraparound-computed sum-n is unconditionally the right answer
// regardless of whether sum alone was below n. Only when the addition
// did not carry does the ordinary sum-vs-sum-minus-n choice apply.
func (f Full[T]) Add(x, y value.Mont[T]) value.Mont[T] {
	sum, carry := primitives.AddCarry(x.Bits(), y.Bits(), T(0))
	diff, borrow := primitives.SubBorrow(sum, f.n, T(0))
	useSum := carry == 0 && borrow == 1
	return value.FromBits(primitives.CSelect(useSum, sum, diff))
}

func (f Full[T]) Sub(x, y value.Mont[T]) value.Mont[T] {
	diff, borrow := primitives.SubBorrow(x.Bits(), y.Bits(), T(0))
	sum, _ := primitives.AddCarry(diff, f.n, T(0))
	return value.FromBits(primitives.CSelect(borrow == 1, sum, diff))
}

// UnorderedSub returns one of x-y or y-x with unspecified choice
// (spec.md §9 Open Questions); this implementation always returns x-y,
// documented here as the committed choice rather than left ambiguous.
func (f Full[T]) UnorderedSub(x, y value.Mont[T]) value.Mont[T] {
	return f.Sub(x, y)
}

func (f Full[T]) Negate(x value.Mont[T]) value.Mont[T] {
	return f.Sub(value.FromBits(T(0)), x)
}

func (f Full[T]) TwoTimes(x value.Mont[T]) value.Mont[T] {
	return f.Add(x, x)
}

// Halve divides x by 2 mod n, exploiting n's oddness: if x is even,
// x/2; otherwise (x+n)/2, which is always exact since n is odd so
// x+n is even whenever x is odd.
//
// bits+n can overflow T's width when n is large (same condition as
// Add's carry case), but the quotient (bits+n)/2 never does -- it's
// below n, hence below R. So the carry bit from the addition must be
// folded back in after the shift, not discarded before it: if the
// addition carried, the true sum is carry*R+sum, and its half is
// sum>>1 with R/2's bit (T's top bit) set, since R is even and the
// true sum is even so sum itself is already even.
func (f Full[T]) Halve(x value.Mont[T]) value.Mont[T] {
	bits := x.Bits()
	odd := bits&1 == 1
	sum, carry := primitives.AddCarry(bits, f.n, T(0))
	sumHalved := sum>>1 | carry<<(primitives.Width[T]()-1)
	return value.FromBits(primitives.CSelect(odd, sumHalved, bits>>1))
}

func (f Full[T]) Multiply(x, y value.Mont[T]) value.Mont[T] {
	hi, lo := primitives.MulHiLo(x.Bits(), y.Bits())
	return value.FromBits(redc.Standard(hi, lo, f.n, f.negInvN))
}

func (f Full[T]) MultiplyReportingZero(x, y value.Mont[T]) (value.Mont[T], bool) {
	z := f.Multiply(x, y)
	return z, z.Bits() == 0
}

func (f Full[T]) Square(x value.Mont[T]) value.Mont[T] {
	return f.Multiply(x, x)
}

func (f Full[T]) Fmadd(x, y value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return f.Add(f.Multiply(x, y), z.Mont)
}

func (f Full[T]) Fmsub(x, y value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return f.Sub(f.Multiply(x, y), z.Mont)
}

func (f Full[T]) FusedSquareAdd(x value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return f.Add(f.Square(x), z.Mont)
}

func (f Full[T]) FusedSquareSub(x value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return f.Sub(f.Square(x), z.Mont)
}
