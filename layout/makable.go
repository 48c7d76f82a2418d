package layout

import "fmt"

// MaxStructBits is the widest record a struct may describe.
const MaxStructBits = 512

// CheckMakable reports whether fields with the given total bit width can be
// laid out as a record. The message explains a failure and is empty otherwise.
func CheckMakable(totalBits int) (bool, string) {
	switch {
	case totalBits <= 0:
		return false, "The structure must have at least one bit."
	case totalBits%8 != 0:
		return false, fmt.Sprintf("The total number of bits (%d) must be a multiple of 8.", totalBits)
	case totalBits > MaxStructBits:
		return false, fmt.Sprintf("The total number of bits (%d) must not exceed %d.", totalBits, MaxStructBits)
	}
	return true, ""
}
