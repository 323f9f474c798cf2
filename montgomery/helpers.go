// Value-level helpers (spec.md §4.7): gcd_with_modulus, remainder,
// inverse, divide_by_small_power_of_two. All are Form methods since
// each needs the cached modulus (and, for Inverse, the conversion
// round-trip) rather than being pure Variant operations.
package montgomery

import (
	"math/big"

	"montarith/primitives"
	"montarith/value"
)

// GCDWithModulus returns gcd(convert_out(x), n) by invoking the
// caller-supplied binary gcd function on (convert_out(x), n). Exposing
// it this way lets a caller reuse whatever constant-time or
// variable-time gcd it already has, and -- per spec.md §4.7 -- leaves
// room for a future variant to skip the convert_out when its internal
// representation makes that unnecessary (none of the four variants
// here do, but the signature accommodates it).
func (f Form[T, V]) GCDWithModulus(x value.Mont[T], gcd func(a, b T) T) T {
	return gcd(f.ConvertOut(x), f.Modulus())
}

// Remainder returns a mod n.
func (f Form[T, V]) Remainder(a T) T {
	return a % f.Modulus()
}

// Inverse returns the modular multiplicative inverse of x in Mont form,
// or the canonical zero if gcd(convert_out(x), n) > 1 (spec.md §4.7,
// §7.3). The extended-Euclidean step runs through math/big: like
// NegInvModR's Newton iteration is reserved for the hot-path-adjacent
// per-Form setup cost, a general modular inverse of an arbitrary residue
// is not a loop worth hand-rolling when the standard library already
// provides a correct, well-tested one (math/big.Int.ModInverse).
func (f Form[T, V]) Inverse(x value.Mont[T]) value.Mont[T] {
	a := f.ConvertOut(x)
	n := f.Modulus()
	bigA := new(big.Int).SetUint64(uint64(a))
	bigN := new(big.Int).SetUint64(uint64(n))

	g := new(big.Int).GCD(nil, nil, bigA, bigN)
	if g.Cmp(big.NewInt(1)) != 0 {
		return f.Zero().Mont
	}
	inv := new(big.Int).ModInverse(bigA, bigN)
	return f.ConvertIn(T(inv.Uint64()))
}

// DivideBySmallPowerOfTwo returns x * (2^k)^-1 mod n for small k,
// exploiting n's oddness via k repeated applications of Halve -- the
// same trick Halve itself uses once, composed.
func (f Form[T, V]) DivideBySmallPowerOfTwo(x value.Mont[T], k uint) value.Mont[T] {
	for i := uint(0); i < k; i++ {
		x = f.Halve(x)
	}
	return x
}

// BinaryGCD is a ready-made caller-supplied gcd for GCDWithModulus,
// grounded on the classic binary (Stein's) algorithm: repeated halving
// of even operands plus subtraction of the smaller from the larger,
// avoiding any division instruction.
func BinaryGCD[T primitives.Word](a, b T) T {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	shift := uint(0)
	for (a|b)&1 == 0 {
		a >>= 1
		b >>= 1
		shift++
	}
	for a&1 == 0 {
		a >>= 1
	}
	for b != 0 {
		for b&1 == 0 {
			b >>= 1
		}
		if a > b {
			a, b = b, a
		}
		b -= a
	}
	return a << shift
}
