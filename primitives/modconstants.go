// This file computes the Form constructor's cached constants:
// R mod n, R² mod n, and -n⁻¹ mod R (spec.md §4.1). These run once per
// Form, so -- like the teacher's field element constructors, which use
// math/big freely for setup-time conversions (ToBigInt/SetBigInt in
// bandersnatch/fieldElements/field_element_64.go) and like the
// blck-snwmn/arithmetic-vault montgomery package, whose NewMontgomery
// builds R² mod N with plain big.Int arithmetic -- reaching for
// math/big here is the idiomatic choice: division is native library
// code, not a hand-rolled REDC loop, because it never runs on the
// arithmetic hot path.
package primitives

import "math/big"

// NegInvModR returns v such that n*v ≡ -1 (mod R), for odd n, via the
// standard Newton-Raphson doubling iteration: a one-bit-correct seed
// (v=1) has its correct-bit count doubled by v ← v*(2 - n*v) each
// round, until all of T's bits are correct.
func NegInvModR[T Word](n T) T {
	v := T(1)
	for correct := uint(1); correct < Width[T](); correct *= 2 {
		v = v * (2 - n*v)
	}
	return T(0) - v
}

// RModN returns R mod n, computed as (0-n) mod n exploiting the
// wraparound of T: 0-n, evaluated in T's unsigned arithmetic, equals
// R-n exactly, and (R-n) mod n == R mod n.
//
// Precondition: n > 1 (spec.md §9 Open Questions: n<=1 is undefined,
// matching the source's get_R_mod_n).
func RModN[T Word](n T) T {
	return (T(0) - n) % n
}

// R2ModN returns R² mod n given the already-computed R mod n.
func R2ModN[T Word](n, rModN T) T {
	bigN := toBig(n)
	bigR := toBig(rModN)
	bigR.Mul(bigR, bigR)
	bigR.Mod(bigR, bigN)
	return fromBig[T](bigR)
}

func toBig[T Word](x T) *big.Int {
	return new(big.Int).SetUint64(uint64(x))
}

func fromBig[T Word](x *big.Int) T {
	return T(x.Uint64())
}
