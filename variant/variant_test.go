package variant

import (
	"math/big"
	"testing"

	"montarith/contract"
	"montarith/internal/testutils"
	"montarith/primitives"
	"montarith/value"
)

func mont(bits uint64) value.Mont[uint64] { return value.FromBits(bits) }

func TestFullSeedScenario1(t *testing.T) {
	// spec.md §8 scenario 1: n=13, a=6, b=11.
	f := NewFull[uint64](13)
	a := f.ConvertIn(6)
	b := f.ConvertIn(11)

	if got := f.ConvertOut(f.Add(a, b)); got != 4 {
		t.Fatalf("add = %d, want 4", got)
	}
	if got := f.ConvertOut(f.Sub(b, a)); got != 5 {
		t.Fatalf("sub(b,a) = %d, want 5", got)
	}
	if got := f.ConvertOut(f.Multiply(a, b)); got != 1 {
		t.Fatalf("multiply = %d, want 1", got)
	}
}

func TestFullSeedScenario2(t *testing.T) {
	// spec.md §8 scenario 2: n=3, a=1, b=2.
	f := NewFull[uint64](3)
	a := f.ConvertIn(1)
	b := f.ConvertIn(2)

	if got := f.ConvertOut(f.Add(a, b)); got != 0 {
		t.Fatalf("add = %d, want 0", got)
	}
	if got := f.ConvertOut(f.TwoTimes(a)); got != 2 {
		t.Fatalf("two_times(a) = %d, want 2", got)
	}
}

func TestFullSeedScenario3(t *testing.T) {
	// spec.md §8 scenario 3: n = 2^64-3, a = n-1, b = 2.
	const n uint64 = 1<<64 - 3
	f := NewFull[uint64](n)
	a := f.ConvertIn(n - 1)
	two := f.ConvertIn(2)

	if got := f.ConvertOut(f.Add(a, two)); got != 1 {
		t.Fatalf("add = %d, want 1", got)
	}
	if got := f.ConvertOut(f.Multiply(a, a)); got != 1 {
		t.Fatalf("multiply(a,a) = %d, want 1", got)
	}
}

func TestFullRoundTrip(t *testing.T) {
	f := NewFull[uint64](333_333_333)
	for a := uint64(0); a < 200; a++ {
		x := f.ConvertIn(a)
		if got := f.ConvertOut(x); got != a {
			t.Fatalf("round trip failed for a=%d: got %d", a, got)
		}
	}
}

func TestFullHomomorphism(t *testing.T) {
	const n uint64 = 97
	f := NewFull[uint64](n)
	for a := uint64(0); a < n; a++ {
		for b := uint64(0); b < n; b += 7 {
			x, y := f.ConvertIn(a), f.ConvertIn(b)
			if got := f.ConvertOut(f.Add(x, y)); got != (a+b)%n {
				t.Fatalf("add(%d,%d) = %d, want %d", a, b, got, (a+b)%n)
			}
			if got := f.ConvertOut(f.Multiply(x, y)); got != (a*b)%n {
				t.Fatalf("mul(%d,%d) = %d, want %d", a, b, got, (a*b)%n)
			}
		}
	}
}

func TestFusedOpsConsistency(t *testing.T) {
	const n uint64 = 97
	f := NewFull[uint64](n)
	for a := uint64(1); a < 20; a++ {
		for b := uint64(1); b < 20; b++ {
			for c := uint64(1); c < 20; c++ {
				x, y, z := f.ConvertIn(a), f.ConvertIn(b), f.ConvertIn(c)
				fv := f.FusingOf(z)
				got := f.CanonicalOf(f.Fmadd(x, y, fv))
				want := f.CanonicalOf(f.Add(f.Multiply(x, y), z))
				if !got.Equal(want) {
					t.Fatalf("fmadd(%d,%d,%d) mismatch", a, b, c)
				}
				gotSub := f.CanonicalOf(f.Fmsub(x, y, fv))
				wantSub := f.CanonicalOf(f.Sub(f.Multiply(x, y), z))
				if !gotSub.Equal(wantSub) {
					t.Fatalf("fmsub(%d,%d,%d) mismatch", a, b, c)
				}
			}
		}
	}
}

func TestQuarterSeedScenario(t *testing.T) {
	// spec.md §8 scenario 5: Quarter<u64>, n=67, a=60, b=13: multiply=43.
	q := NewQuarter[uint64](67)
	a := q.ConvertIn(60)
	b := q.ConvertIn(13)
	if got := q.ConvertOut(q.Multiply(a, b)); got != 43 {
		t.Fatalf("multiply = %d, want 43", got)
	}
}

func TestQuarterRoundTripAndHomomorphism(t *testing.T) {
	const n uint64 = 67
	q := NewQuarter[uint64](n)
	for a := uint64(0); a < n; a++ {
		x := q.ConvertIn(a)
		if got := q.ConvertOut(x); got != a {
			t.Fatalf("round trip failed for a=%d: got %d", a, got)
		}
		for b := uint64(0); b < n; b += 5 {
			y := q.ConvertIn(b)
			if got := q.ConvertOut(q.Add(x, y)); got != (a+b)%n {
				t.Fatalf("add(%d,%d)=%d want %d", a, b, got, (a+b)%n)
			}
			if got := q.ConvertOut(q.Multiply(x, y)); got != (a*b)%n {
				t.Fatalf("mul(%d,%d)=%d want %d", a, b, got, (a*b)%n)
			}
		}
	}
}

func TestWrappedStandardIdentityConvert(t *testing.T) {
	w := NewWrappedStandard[uint64](117)
	for a := uint64(0); a < 117; a++ {
		x := w.ConvertIn(a)
		if x.Bits() != a {
			t.Fatalf("WrappedStandard.ConvertIn is not identity: got %d for %d", x.Bits(), a)
		}
		if got := w.ConvertOut(x); got != a {
			t.Fatalf("round trip failed for a=%d: got %d", a, got)
		}
	}
}

func TestWrappedStandardHomomorphism(t *testing.T) {
	const n uint64 = 97
	w := NewWrappedStandard[uint64](n)
	for a := uint64(0); a < n; a++ {
		for b := uint64(0); b < n; b += 7 {
			x, y := w.ConvertIn(a), w.ConvertIn(b)
			if got := w.ConvertOut(w.Multiply(x, y)); got != (a*b)%n {
				t.Fatalf("mul(%d,%d)=%d want %d", a, b, got, (a*b)%n)
			}
		}
	}
}

func TestHalfRoundTripAndFusing(t *testing.T) {
	const n uint64 = 97
	h := NewHalf[uint64, int64](n)
	for a := uint64(1); a < n; a++ {
		x := h.ConvertIn(a)
		if got := h.ConvertOut(x); got != a {
			t.Fatalf("round trip failed for a=%d: got %d", a, got)
		}
	}
	// FusingOf should produce a balanced representative whose canonical
	// form (mod n) matches the plain canonical value's.
	for a := uint64(1); a < n; a++ {
		x := h.ConvertIn(a)
		fv := h.FusingOf(x)
		c := h.CanonicalOf(x)
		// Reinterpret fv's bit pattern as signed to recover the balanced value.
		signed := int64(fv.Bits())
		reduced := ((signed % int64(n)) + int64(n)) % int64(n)
		if uint64(reduced) != c.Bits() {
			t.Fatalf("FusingOf(%d) balanced=%d does not reduce to canonical %d", a, signed, c.Bits())
		}
	}
}

func TestHalfFusedOpsConsistency(t *testing.T) {
	const n uint64 = 97
	h := NewHalf[uint64, int64](n)
	for a := uint64(1); a < 30; a++ {
		for b := uint64(1); b < 30; b++ {
			for c := uint64(1); c < n; c += 5 { // sweeps both FusingOf branches (Mont bits <=48 and >48)
				x, y, z := h.ConvertIn(a), h.ConvertIn(b), h.ConvertIn(c)
				fv := h.FusingOf(z)
				got := h.CanonicalOf(h.Fmadd(x, y, fv))
				want := h.CanonicalOf(h.Add(h.Multiply(x, y), z))
				if !got.Equal(want) {
					t.Fatalf("fmadd(%d,%d,%d) = %d, want %d", a, b, c, got.Bits(), want.Bits())
				}
				gotSub := h.CanonicalOf(h.Fmsub(x, y, fv))
				wantSub := h.CanonicalOf(h.Sub(h.Multiply(x, y), z))
				if !gotSub.Equal(wantSub) {
					t.Fatalf("fmsub(%d,%d,%d) = %d, want %d", a, b, c, gotSub.Bits(), wantSub.Bits())
				}
			}
		}
	}
}

func TestBoundaryModuli(t *testing.T) {
	maxFull := NewFull[uint64](3).MaxModulus()
	if maxFull != ^uint64(0) {
		t.Fatalf("Full.MaxModulus = %d, want all-ones", maxFull)
	}
	f := NewFull[uint64](3)
	x := f.ConvertIn(2)
	if got := f.ConvertOut(f.Add(x, f.ConvertIn(2))); got != 1 {
		t.Fatalf("n=3 boundary add mismatch: got %d", got)
	}
}

// TestHalfAndQuarterAtMaxModulus pins down that Half/Quarter can be
// constructed at the exact modulus each advertises via MaxModulus,
// not just below it.
func TestHalfAndQuarterAtMaxModulus(t *testing.T) {
	hMax := primitives.Max[uint64]()>>1 | 1 // nearest odd value <= Max>>1
	h := NewHalf[uint64, int64](hMax)
	x := h.ConvertIn(3)
	if got := h.ConvertOut(x); got != 3 {
		t.Fatalf("Half at MaxModulus round trip failed: got %d", got)
	}

	qMax := primitives.Max[uint64]()>>2 | 1 // nearest odd value <= Max>>2
	q := NewQuarter[uint64](qMax)
	y := q.ConvertIn(5)
	if got := q.ConvertOut(y); got != 5 {
		t.Fatalf("Quarter at MaxModulus round trip failed: got %d", got)
	}
}

// TestFullAddAndHalveNearR exercises Add/Halve for a modulus close to
// R, where x+y (or x+n) overflows uint64's width and the carry out of
// that addition must be folded back into the reduction rather than
// discarded.
func TestFullAddAndHalveNearR(t *testing.T) {
	const n uint64 = 1<<64 - 3
	f := NewFull[uint64](n)
	a, b := n-1, n-2
	x, y := f.ConvertIn(a), f.ConvertIn(b)
	want := new(big.Int).Add(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	want.Mod(want, new(big.Int).SetUint64(n))
	if got := f.ConvertOut(f.Add(x, y)); got != want.Uint64() {
		t.Fatalf("Add(%d,%d) mod n = %d, want %d", a, b, got, want.Uint64())
	}
	odd := f.ConvertIn(n - 2) // n-2 is odd since n is odd
	doubledBack := f.ConvertOut(f.TwoTimes(f.Halve(odd)))
	if doubledBack != n-2 {
		t.Fatalf("Halve(%d) round trip via TwoTimes = %d, want %d", n-2, doubledBack, n-2)
	}
}

func TestPreconditionViolationsPanicInDebugMode(t *testing.T) {
	contract.Debug = true
	defer func() { contract.Debug = false }()

	if !testutils.CheckPanic(func() { NewFull[uint64](4) }) {
		t.Fatal("NewFull with an even modulus should panic in debug mode")
	}
	if !testutils.CheckPanic(func() { NewFull[uint64](1) }) {
		t.Fatal("NewFull with modulus 1 should panic in debug mode")
	}
	if !testutils.CheckPanic(func() { NewQuarter[uint64](1<<63 | 1) }) {
		t.Fatal("NewQuarter with n >= R/4 should panic in debug mode")
	}
	if !testutils.CheckPanic(func() {
		f := NewFull[uint64](13)
		f.ConvertIn(13) // argument must be < n
	}) {
		t.Fatal("ConvertIn with an out-of-range argument should panic in debug mode")
	}
}

var _ = mont // mont is not called by any test in this package
