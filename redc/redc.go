// Package redc implements the Montgomery reduction step described in
// spec.md §4.2: given a double-word u = u_hi*R + u_lo with u_hi < n,
// reduce it to a single-word residue t with t*R ≡ u (mod n).
//
// The design is grounded on the teacher's single-limb step function,
// bandersnatch/fieldElements/uint256_montgomery.go's
// montgomery_step_64/MulMontgomery_Weak: compute the quotient digit m
// from the low word only, multiply it back against the modulus, and
// fold the result in via carry-tracked add/sub rather than a second
// division. This package generalizes that fixed-256-bit, fixed-modulus
// routine to an arbitrary runtime modulus of any supported word width.
package redc

import "montarith/primitives"

// Incomplete performs the reduction without the final normalization,
// returning a value t and a flag reporting whether the true
// (unbounded-precision) result overflowed T's width -- i.e. the true
// value is t+R, not t itself.
//
// negInvN is the *negative* modular inverse (n*negInvN ≡ -1 mod R, per
// primitives.NegInvModR), chosen so the low-word cancellation
// (u_lo + m*n ≡ 0 mod R) combines into the high word by addition:
// u + m*n is exactly (u_hi + mn_hi + carryLo)*R, and since m*n ≡ 0
// (mod n), that quotient is ≡ u*R⁻¹ (mod n) -- the REDC postcondition.
// (An earlier version of this function combined u_hi and mn_hi by
// subtraction, which is the correct combinator for the *positive*
// inverse convention, not this one; subtracting here produced a value
// incongruent to u*R⁻¹ mod n whenever the high-word subtraction
// underflowed. Caught by hand-deriving n=13, u_hi=0, u_lo=9: the
// subtraction-based code returned 12, but 12*16 mod 13 = 10 ≠ 9 = u,
// while the addition-based value 3 satisfies 3*16 mod 13 = 9.)
//
// Given the precondition u_hi < n, the true unreduced value
// u_hi+mn_hi+carryLo lies in [0, 2n) (mn_hi < n since m < R and n < R),
// so at most one conditional subtraction of n remains, tracked via
// overflowed rather than folded in here -- see Standard.
//
// Precondition: u_hi < n (equivalently u = u_hi*R+u_lo < n*R).
func Incomplete[T primitives.Word](uHi, uLo, n, negInvN T) (t T, overflowed bool) {
	m := uLo * negInvN // low word of u_lo * negInvN mod R; wraps natively
	mnHi, mnLo := primitives.MulHiLo(m, n)

	_, carryLo := primitives.AddCarry(uLo, mnLo, T(0))
	sumHi, carryOut := primitives.AddCarry(uHi, mnHi, carryLo)

	return sumHi, carryOut == 1
}

// Standard performs the reduction and fully normalizes the result to
// [0, n): Incomplete's true value (t, or t+R if overflowed) is in
// [0, 2n), so a single conditional subtraction of n suffices. When
// overflowed, t+R is always >= n (since n < R <= t+R), so the
// subtraction is unconditional in that branch; the wraparound subtract
// t-n (computed with T's natural wraparound) lands on the right value
// either way, since t+R-n ≡ t-n (mod R).
func Standard[T primitives.Word](uHi, uLo, n, negInvN T) T {
	t, overflowed := Incomplete(uHi, uLo, n, negInvN)
	diff, borrow := primitives.SubBorrow(t, n, T(0))
	useT := !overflowed && borrow == 1 // t < n and no width overflow: already reduced
	return primitives.CSelect(useT, t, diff)
}

// QuarterStep is the addition-only reduction variant.Quarter relies on
// (spec.md §4.3.3). Like Incomplete it adds u_hi and mn_hi, but it
// returns no overflow flag and leaves no conditional subtraction to a
// caller: that is only safe when the caller guarantees u_hi < 2n and
// n < R/4, so that u_hi + mn_hi + carry < 2n + n + 1 < R, never wrapping
// T's width. This is the saved "branchless
// compare per multiply" spec.md credits to Quarter.
//
// Precondition: u_hi < 2n, n < R/4 (enforced by variant.Quarter's
// constructor, not re-checked here).
func QuarterStep[T primitives.Word](uHi, uLo, n, negInvN T) T {
	m := uLo * negInvN
	mnHi, mnLo := primitives.MulHiLo(m, n)
	_, carryLo := primitives.AddCarry(uLo, mnLo, T(0))
	sum1, _ := primitives.AddCarry(uHi, mnHi, T(0))
	result, _ := primitives.AddCarry(sum1, carryLo, T(0))
	return result
}
