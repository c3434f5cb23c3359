// Package common contains small helpers shared across client components.
package common

// WipeByteArray zeroes the contents of b. Use it to scrub password
// buffers once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
