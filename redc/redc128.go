package redc

import "montarith/primitives"

// Incomplete128/Standard128/QuarterStep128 are the T=128 counterparts of
// Incomplete/Standard/QuarterStep, carried out over primitives.Uint128
// instead of a native Word. The carry algebra is identical to the
// 64-bit case -- Uint128.Add/Sub already return a single-bit carry/borrow
// the same shape as AddCarry/SubBorrow -- only the limb type changes.
//
// See redc.go's Incomplete/Standard doc comment: negInvN is the
// *negative* inverse, so the high-word combination is an addition
// (u_hi+mn_hi+carryLo), not a subtraction.
func Incomplete128(uHi, uLo, n, negInvN primitives.Uint128) (t primitives.Uint128, overflowed bool) {
	m := primitives.MulHiLo128(uLo, negInvN).Lo128()
	mn := primitives.MulHiLo128(m, n)

	_, carryLo := uLo.Add(mn.Lo128())
	sumHi, carryOut := uHi.Add(mn.Hi128())
	sumHi, carryOut2 := sumHi.Add(primitives.U128(carryLo, 0))

	return sumHi, carryOut != 0 || carryOut2 != 0
}

func Standard128(uHi, uLo, n, negInvN primitives.Uint128) primitives.Uint128 {
	t, overflowed := Incomplete128(uHi, uLo, n, negInvN)
	diff, borrow := t.Sub(n)
	useT := !overflowed && borrow != 0
	return primitives.CSelect128(useT, t, diff)
}

// QuarterStep128 is the addition-only reduction (precondition: uHi < 2n,
// n < R/4, exactly as QuarterStep), see redc.go's QuarterStep for the
// overflow-safety argument, which carries over unchanged with Uint128
// taking the role of T.
func QuarterStep128(uHi, uLo, n, negInvN primitives.Uint128) primitives.Uint128 {
	m := primitives.MulHiLo128(uLo, negInvN).Lo128()
	mn := primitives.MulHiLo128(m, n)
	_, carryLo := uLo.Add(mn.Lo128())
	sum1, _ := uHi.Add(mn.Hi128())
	result, _ := sum1.Add(primitives.U128(carryLo, 0))
	return result
}
