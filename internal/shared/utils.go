// Package shared provides secure memory wiping for secrets read from the
// terminal.
package shared

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Use it on passwords once they have been handed on.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
