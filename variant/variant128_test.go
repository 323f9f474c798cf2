package variant

import (
	"testing"

	"montarith/primitives"
	"montarith/value"
)

func TestFull128RoundTripAndHomomorphism(t *testing.T) {
	n := primitives.U128(97, 0)
	f := NewFull128(n)
	for a := uint64(0); a < 97; a++ {
		av := primitives.U128(a, 0)
		x := f.ConvertIn(av)
		if got := f.ConvertOut(x); got != av {
			t.Fatalf("round trip failed for a=%d: got %+v", a, got)
		}
	}
	a := primitives.U128(11, 0)
	b := primitives.U128(23, 0)
	xa, xb := f.ConvertIn(a), f.ConvertIn(b)
	if got := f.ConvertOut(f.Add(xa, xb)); got != primitives.U128(34, 0) {
		t.Fatalf("add(11,23) mod 97 = %+v, want 34", got)
	}
	if got := f.ConvertOut(f.Multiply(xa, xb)); got != primitives.U128(11*23%97, 0) {
		t.Fatalf("multiply(11,23) mod 97 = %+v, want %d", got, 11*23%97)
	}
}

func TestQuarter128RoundTripAndMultiply(t *testing.T) {
	n := primitives.U128(67, 0)
	q := NewQuarter128(n)
	a := q.ConvertIn(primitives.U128(60, 0))
	b := q.ConvertIn(primitives.U128(13, 0))
	if got := q.ConvertOut(q.Multiply(a, b)); got != primitives.U128(43, 0) {
		t.Fatalf("Quarter128 multiply(60,13) mod 67 = %+v, want 43", got)
	}
}

func TestWrappedStandard128Homomorphism(t *testing.T) {
	n := primitives.U128(97, 0)
	w := NewWrappedStandard128(n)
	for a := uint64(0); a < 97; a += 3 {
		for b := uint64(0); b < 97; b += 7 {
			x := w.ConvertIn(primitives.U128(a, 0))
			y := w.ConvertIn(primitives.U128(b, 0))
			got := w.ConvertOut(w.Multiply(x, y))
			want := primitives.U128((a*b)%97, 0)
			if got != want {
				t.Fatalf("mul(%d,%d)=%+v want %+v", a, b, got, want)
			}
		}
	}
}

func TestHalf128FusingBalancedRepresentative(t *testing.T) {
	n := primitives.U128(97, 0)
	h := NewHalf128(n)
	x := value.FromBits128(primitives.U128(90, 0)) // Mont bits 90 > (n-1)/2, should balance to negative
	fv := h.FusingOf(x)
	// Mont bits 90, balanced: 90-97 = -7, represented as wraparound bits.
	want, _ := primitives.U128(90, 0).Sub(n)
	if fv.Bits() != want {
		t.Fatalf("Half128.FusingOf(90) = %+v, want wraparound %+v", fv.Bits(), want)
	}
}

func TestHalf128FusedOpsConsistency(t *testing.T) {
	n := primitives.U128(97, 0)
	h := NewHalf128(n)
	for a := uint64(1); a < 20; a++ {
		for b := uint64(1); b < 20; b++ {
			for c := uint64(1); c < 97; c += 5 { // sweeps both FusingOf branches
				x := h.ConvertIn(primitives.U128(a, 0))
				y := h.ConvertIn(primitives.U128(b, 0))
				z := h.ConvertIn(primitives.U128(c, 0))
				fv := h.FusingOf(z)
				got := h.CanonicalOf(h.Fmadd(x, y, fv))
				want := h.CanonicalOf(h.Add(h.Multiply(x, y), z))
				if got.Bits() != want.Bits() {
					t.Fatalf("fmadd(%d,%d,%d) = %+v, want %+v", a, b, c, got.Bits(), want.Bits())
				}
				gotSub := h.CanonicalOf(h.Fmsub(x, y, fv))
				wantSub := h.CanonicalOf(h.Sub(h.Multiply(x, y), z))
				if gotSub.Bits() != wantSub.Bits() {
					t.Fatalf("fmsub(%d,%d,%d) = %+v, want %+v", a, b, c, gotSub.Bits(), wantSub.Bits())
				}
			}
		}
	}
}

func TestFull128BoundaryModulus(t *testing.T) {
	// A 128-bit modulus that doesn't fit in the low 64 bits.
	n := primitives.U128(1, 1) // 2^64 + 1
	f := NewFull128(n)
	a := f.ConvertIn(primitives.U128(5, 0))
	b := f.ConvertIn(primitives.U128(7, 0))
	got := f.ConvertOut(f.Multiply(a, b))
	if got != primitives.U128(35, 0) {
		t.Fatalf("multiply(5,7) mod (2^64+1) = %+v, want 35", got)
	}
}

// TestHalf128AndQuarter128AtMaxModulus mirrors
// TestHalfAndQuarterAtMaxModulus: Half128/Quarter128 must accept their
// own advertised MaxModulus, not just moduli strictly below it.
func TestHalf128AndQuarter128AtMaxModulus(t *testing.T) {
	h := NewHalf128(halfMaxUint128)
	x := h.ConvertIn(primitives.U128(3, 0))
	if got := h.ConvertOut(x); got != primitives.U128(3, 0) {
		t.Fatalf("Half128 at MaxModulus round trip failed: got %+v", got)
	}

	q := NewQuarter128(quarterMaxUint128)
	y := q.ConvertIn(primitives.U128(5, 0))
	if got := q.ConvertOut(y); got != primitives.U128(5, 0) {
		t.Fatalf("Quarter128 at MaxModulus round trip failed: got %+v", got)
	}
}

// TestFull128AddAndHalveNearR mirrors TestFullAddAndHalveNearR: a
// modulus close to 2^128 makes x+y (or x+n) overflow Uint128's width,
// so the addition's carry bit must be folded back in rather than
// discarded.
func TestFull128AddAndHalveNearR(t *testing.T) {
	n := maxUint128 // all-ones, i.e. 2^128-1 -- odd
	f := NewFull128(n)
	nMinus1, _ := n.Sub(oneUint128)
	nMinus2, _ := nMinus1.Sub(oneUint128)
	x, y := f.ConvertIn(nMinus1), f.ConvertIn(nMinus2)
	got := f.ConvertOut(f.Add(x, y))
	// (n-1)+(n-2) = 2n-3 ≡ n-3 (mod n).
	nMinus3, _ := nMinus2.Sub(oneUint128)
	if got != nMinus3 {
		t.Fatalf("Add(n-1,n-2) mod n = %+v, want %+v", got, nMinus3)
	}

	odd := f.ConvertIn(nMinus2) // n-2 is odd since n is odd
	doubledBack := f.ConvertOut(f.TwoTimes(f.Halve(odd)))
	if doubledBack != nMinus2 {
		t.Fatalf("Halve(n-2) round trip via TwoTimes = %+v, want %+v", doubledBack, nMinus2)
	}
}
