package uintconv

import "math"

// ParseDecimal parses the decimal prefix of a header value, skipping leading spaces and tabs.
// Scanning stops at the first non-digit met after at least one digit, so anything trailing
// the digits is ignored. ok is false if no digit precedes the first non-blank character.
// If the number doesn't fit into uint64, overflow is set and the returned value saturates
// at math.MaxUint64.
func ParseDecimal(b []byte) (num uint64, ok, overflow bool) {
	for _, char := range b {
		switch {
		case char >= '0' && char <= '9':
			digit := uint64(char - '0')
			if !overflow {
				if num > (math.MaxUint64-digit)/10 {
					overflow = true
					num = math.MaxUint64
				} else {
					num = num*10 + digit
				}
			}

			ok = true
		case ok:
			return num, ok, overflow
		case char == ' ' || char == '\t':
		default:
			return 0, false, false
		}
	}

	return num, ok, overflow
}
