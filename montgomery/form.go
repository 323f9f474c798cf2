// Package montgomery implements the user-facing Form façade (spec.md
// §4.5): a generic wrapper constructed from a modulus and a chosen
// variant.Variant implementation, forwarding every public operation
// directly. Form is immutable after construction and safe for
// unsynchronized concurrent reads (spec.md §5: "Multiple callers may
// read-share a Form freely; no locking is needed because no operation
// mutates it").
//
// Grounded on the teacher's constructor discipline -- small, explicit
// `New*` functions rather than package-level state
// (bandersnatch/fieldElements/field_element_64.go's
// SetUint64/SetBigInt-style initializers) -- and on the pack's
// blck-snwmn-arithmetic-vault/montgomery package's NewMontgomery, which
// is exactly this shape: a constructor that computes and caches R mod N,
// R² mod N, and the modular inverse once, then hands back an immutable
// value wrapping a chosen representation.
package montgomery

import (
	"montarith/primitives"
	"montarith/value"
	"montarith/variant"
)

// Form wraps a Variant instance for modulus n, dispatching every public
// operation to it. V is a concrete range-variant type (variant.Full[T],
// variant.Half[T,S], variant.Quarter[T], or variant.WrappedStandard[T])
// satisfying variant.Variant[T].
type Form[T primitives.Word, V variant.Variant[T]] struct {
	v V
}

// NewForm wraps an already-constructed Variant value as a Form. Callers
// typically write NewForm(variant.NewFull[uint64](n)) rather than
// constructing Form fields directly -- this mirrors the teacher's
// preference for free constructor functions over exported struct
// literals.
func NewForm[T primitives.Word, V variant.Variant[T]](v V) Form[T, V] {
	return Form[T, V]{v: v}
}

func (f Form[T, V]) Modulus() T    { return f.v.Modulus() }
func (f Form[T, V]) MaxModulus() T { return f.v.MaxModulus() }

func (f Form[T, V]) IsValid(x value.Mont[T]) bool { return f.v.IsValid(x) }

func (f Form[T, V]) ConvertIn(a T) value.Mont[T]  { return f.v.ConvertIn(a) }
func (f Form[T, V]) ConvertOut(x value.Mont[T]) T { return f.v.ConvertOut(x) }

func (f Form[T, V]) CanonicalOf(x value.Mont[T]) value.Canonical[T] { return f.v.CanonicalOf(x) }
func (f Form[T, V]) FusingOf(x value.Mont[T]) value.Fusing[T]       { return f.v.FusingOf(x) }

func (f Form[T, V]) Zero() value.Canonical[T]   { return f.v.Zero() }
func (f Form[T, V]) One() value.Canonical[T]    { return f.v.One() }
func (f Form[T, V]) NegOne() value.Canonical[T] { return f.v.NegOne() }

func (f Form[T, V]) Add(x, y value.Mont[T]) value.Mont[T] { return f.v.Add(x, y) }
func (f Form[T, V]) Sub(x, y value.Mont[T]) value.Mont[T] { return f.v.Sub(x, y) }
func (f Form[T, V]) UnorderedSub(x, y value.Mont[T]) value.Mont[T] {
	return f.v.UnorderedSub(x, y)
}
func (f Form[T, V]) Negate(x value.Mont[T]) value.Mont[T]   { return f.v.Negate(x) }
func (f Form[T, V]) TwoTimes(x value.Mont[T]) value.Mont[T] { return f.v.TwoTimes(x) }
func (f Form[T, V]) Halve(x value.Mont[T]) value.Mont[T]    { return f.v.Halve(x) }

func (f Form[T, V]) Multiply(x, y value.Mont[T]) value.Mont[T] { return f.v.Multiply(x, y) }
func (f Form[T, V]) MultiplyReportingZero(x, y value.Mont[T]) (value.Mont[T], bool) {
	return f.v.MultiplyReportingZero(x, y)
}
func (f Form[T, V]) Square(x value.Mont[T]) value.Mont[T] { return f.v.Square(x) }

func (f Form[T, V]) Fmadd(x, y value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return f.v.Fmadd(x, y, z)
}
func (f Form[T, V]) Fmsub(x, y value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return f.v.Fmsub(x, y, z)
}
func (f Form[T, V]) FusedSquareAdd(x value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return f.v.FusedSquareAdd(x, z)
}
func (f Form[T, V]) FusedSquareSub(x value.Mont[T], z value.Fusing[T]) value.Mont[T] {
	return f.v.FusedSquareSub(x, z)
}

// AsVariant is the opt-in ergonomic escape hatch to runtime dispatch
// (spec.md §9: "Runtime dispatch via a trait object is acceptable as an
// opt-in ergonomic convenience but must not be on the hot path"). It
// returns f's Variant boxed as the variant.Variant[T] interface, useful
// for code that wants to select among several already-constructed Forms
// at runtime (e.g. a CLI flag choosing Full vs Quarter) without being
// generic over V itself.
func (f Form[T, V]) AsVariant() variant.Variant[T] { return f.v }
