package exponent

import (
	"testing"

	"montarith/montgomery"
	"montarith/value"
	"montarith/variant"
)

func TestPowSeedScenarios(t *testing.T) {
	// spec.md §8 scenario 1: n=13, b=11: pow(b,12)=1, pow(b,5)=7.
	f1 := montgomery.NewForm[uint64](variant.NewFull[uint64](13))
	b1 := f1.ConvertIn(11)
	if got := f1.ConvertOut(Pow[uint64](f1, b1, 12, DefaultOptions())); got != 1 {
		t.Fatalf("pow(11,12) mod 13 = %d, want 1", got)
	}
	if got := f1.ConvertOut(Pow[uint64](f1, b1, 5, DefaultOptions())); got != 7 {
		t.Fatalf("pow(11,5) mod 13 = %d, want 7", got)
	}

	// spec.md §8 scenario 2: n=3, b=2: pow(b,17)=2.
	f2 := montgomery.NewForm[uint64](variant.NewFull[uint64](3))
	b2 := f2.ConvertIn(2)
	if got := f2.ConvertOut(Pow[uint64](f2, b2, 17, DefaultOptions())); got != 2 {
		t.Fatalf("pow(2,17) mod 3 = %d, want 2", got)
	}

	// spec.md §8 scenario 3: n=2^64-3, b=2: pow(b,10)=1024.
	const n3 uint64 = 1<<64 - 3
	f3 := montgomery.NewForm[uint64](variant.NewFull[uint64](n3))
	b3 := f3.ConvertIn(2)
	if got := f3.ConvertOut(Pow[uint64](f3, b3, 10, DefaultOptions())); got != 1024 {
		t.Fatalf("pow(2,10) mod n = %d, want 1024", got)
	}

	// spec.md §8 scenario 4: n=333_333_333, base=42, exponent=123_456_789.
	const n4 uint64 = 333_333_333
	f4 := montgomery.NewForm[uint64](variant.NewFull[uint64](n4))
	b4 := f4.ConvertIn(42)
	got4 := f4.ConvertOut(Pow[uint64](f4, b4, 123_456_789, DefaultOptions()))
	want4 := powModOracle(42, 123_456_789, n4)
	if got4 != want4 {
		t.Fatalf("pow(42,123456789) mod %d = %d, want %d", n4, got4, want4)
	}

	// spec.md §8 scenario 5: Quarter n=67, b=13: pow(b,7)=2, pow(b,12)=25.
	q := montgomery.NewForm[uint64](variant.NewQuarter[uint64](67))
	bq := q.ConvertIn(13)
	if got := q.ConvertOut(Pow[uint64](q, bq, 7, DefaultOptions())); got != 2 {
		t.Fatalf("Quarter pow(13,7) mod 67 = %d, want 2", got)
	}
	if got := q.ConvertOut(Pow[uint64](q, bq, 12, DefaultOptions())); got != 25 {
		t.Fatalf("Quarter pow(13,12) mod 67 = %d, want 25", got)
	}
}

func powModOracle(base, exp, n uint64) uint64 {
	result := uint64(1) % n
	base %= n
	for exp > 0 {
		if exp&1 == 1 {
			result = mulModOracle(result, base, n)
		}
		base = mulModOracle(base, base, n)
		exp >>= 1
	}
	return result
}

func mulModOracle(a, b, n uint64) uint64 {
	// n < 2^32 here so a*b can't overflow uint64.
	return (a * b) % n
}

func TestPowZeroExponentIsOne(t *testing.T) {
	f := montgomery.NewForm[uint64](variant.NewFull[uint64](97))
	base := f.ConvertIn(42)
	if got := f.ConvertOut(Pow[uint64](f, base, 0, DefaultOptions())); got != 1 {
		t.Fatalf("pow(base,0) = %d, want 1", got)
	}
}

func TestTwoPowMatchesPowOfTwo(t *testing.T) {
	const n uint64 = 97
	f := montgomery.NewForm[uint64](variant.NewFull[uint64](n))
	two := f.ConvertIn(2)
	for _, e := range []uint64{0, 1, 5, 17, 63} {
		got := f.ConvertOut(TwoPow[uint64](f, e, DefaultOptions()))
		want := f.ConvertOut(Pow[uint64](f, two, e, DefaultOptions()))
		if got != want {
			t.Fatalf("TwoPow(%d)=%d, Pow(2,%d)=%d", e, got, e, want)
		}
	}
}

func TestSlidingWindowMatchesFixedWindow(t *testing.T) {
	const n uint64 = 333_333_333
	f := montgomery.NewForm[uint64](variant.NewFull[uint64](n))
	base := f.ConvertIn(42)
	fixed := DefaultOptions()
	sliding := Options{WindowBits: 4, SlidingWindow: true}
	for _, e := range []uint64{0, 1, 2, 255, 123_456_789} {
		got := f.ConvertOut(Pow[uint64](f, base, e, sliding))
		want := f.ConvertOut(Pow[uint64](f, base, e, fixed))
		if got != want {
			t.Fatalf("sliding vs fixed mismatch at e=%d: %d != %d", e, got, want)
		}
	}
}

func TestPowArrayMatchesScalarPow(t *testing.T) {
	const n uint64 = 97
	f := montgomery.NewForm[uint64](variant.NewFull[uint64](n))
	bases := []uint64{2, 5, 11, 42, 96, 3, 7, 13}
	for size := 1; size <= len(bases); size++ {
		input := make([]value.Mont[uint64], size)
		for i := 0; i < size; i++ {
			input[i] = f.ConvertIn(bases[i])
		}
		results := PowArray[uint64](f, input, 12345, DefaultOptions())
		for i := 0; i < size; i++ {
			want := f.ConvertOut(Pow[uint64](f, input[i], 12345, DefaultOptions()))
			got := f.ConvertOut(results[i])
			if got != want {
				t.Fatalf("PowArray[%d] = %d, want %d", i, got, want)
			}
		}
	}
}

func TestTwoPowArrayMatchesScalarTwoPow(t *testing.T) {
	const n uint64 = 97
	f := montgomery.NewForm[uint64](variant.NewFull[uint64](n))
	es := []uint64{0, 1, 3, 17, 63, 5}
	results := TwoPowArray[uint64](f, es, DefaultOptions())
	for i, e := range es {
		want := f.ConvertOut(TwoPow[uint64](f, e, DefaultOptions()))
		got := f.ConvertOut(results[i])
		if got != want {
			t.Fatalf("TwoPowArray[%d] (e=%d) = %d, want %d", i, e, got, want)
		}
	}
}
