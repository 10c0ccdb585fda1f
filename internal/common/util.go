package common

// WipeByteArray overwrites the buffer with zeros. Callers use it to clear
// plaintext passwords from memory as soon as they are no longer needed.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
