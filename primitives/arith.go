package primitives

import "math/bits"

// AddCarry adds a+b+carryIn within T's width, returning the wrapped sum
// and the carry out of the top bit. Used by redc and the range variants
// for add/sub chains that must track overflow explicitly rather than
// rely on T's silent wraparound, mirroring the teacher's carry-threading
// style in uint256_montgomery.go's use of bits.Add64.
func AddCarry[T Word](a, b, carryIn T) (sum, carryOut T) {
	if Width[T]() == 64 {
		s, c := bits.Add64(uint64(a), uint64(b), uint64(carryIn))
		return T(s), T(c)
	}
	wide := uint64(a) + uint64(b) + uint64(carryIn)
	return T(wide), T(wide >> Width[T]())
}

// SubBorrow subtracts a-b-borrowIn within T's width, returning the
// wrapped difference and the borrow out.
func SubBorrow[T Word](a, b, borrowIn T) (diff, borrowOut T) {
	if Width[T]() == 64 {
		d, bo := bits.Sub64(uint64(a), uint64(b), uint64(borrowIn))
		return T(d), T(bo)
	}
	wide := uint64(a) - uint64(b) - uint64(borrowIn)
	diff = T(wide)
	if uint64(a) < uint64(b)+uint64(borrowIn) {
		borrowOut = 1
	}
	return
}
