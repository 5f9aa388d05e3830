package common

import "unicode/utf8"

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used for password buffers read from the terminal once they have been
// copied into the registration draft.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Truncate shortens s to at most n bytes, appending "..." when cut. The cut
// never splits a UTF-8 sequence.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
