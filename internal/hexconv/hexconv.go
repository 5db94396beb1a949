package hexconv

// Halfbyte maps an ASCII character to its hexadecimal value. Characters that aren't
// valid hex digits are mapped to 0xFF.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = 0xFF
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = c - 'a' + 10
		table[c-'a'+'A'] = c - 'a' + 10
	}

	return table
}()
