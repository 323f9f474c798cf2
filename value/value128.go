package value

import "montarith/primitives"

// Mont128/Canonical128/Fusing128 are the T=128 counterparts of
// Mont[T]/Canonical[T]/Fusing[T] (spec.md §4.4). Uint128 is a two-limb
// struct, not one of the native integer widths BitPattern covers, so it
// cannot instantiate the generic Mont[T] family directly; these mirror
// that family's exact shape one level down instead of forcing Uint128
// to pretend to be a scalar type.
type Mont128 struct {
	bits primitives.Uint128
}

func FromBits128(x primitives.Uint128) Mont128 { return Mont128{bits: x} }

func (m Mont128) Bits() primitives.Uint128 { return m.bits }

func (m Mont128) Cmov(cond bool, other Mont128) Mont128 {
	return Mont128{bits: primitives.CSelect128(cond, other.bits, m.bits)}
}

type Canonical128 struct {
	Mont128
}

func CanonicalFromBits128(x primitives.Uint128) Canonical128 {
	return Canonical128{Mont128: FromBits128(x)}
}

func (c Canonical128) Equal(other Canonical128) bool {
	return c.bits == other.bits
}

type Fusing128 struct {
	Mont128
}

func FusingFromBits128(x primitives.Uint128) Fusing128 {
	return Fusing128{Mont128: FromBits128(x)}
}
