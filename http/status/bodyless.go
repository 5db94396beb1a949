package status

// IsInformational reports whether the code is in the 1xx class.
func IsInformational(code Code) bool {
	return code >= 100 && code < 200
}

// IsSuccess reports whether the code is in the 2xx class.
func IsSuccess(code Code) bool {
	return code >= 200 && code < 300
}

// Bodyless reports whether a response with such a code never carries a body, whatever
// its Content-Length or Transfer-Encoding say.
func Bodyless(code Code) bool {
	return IsInformational(code) || code == NoContent || code == NotModified
}
