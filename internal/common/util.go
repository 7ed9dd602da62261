// Package common contains small helpers shared across client layers.
package common

// WipeByteArray overwrites every byte of buf with zeros. Call it on buffers
// holding passwords or tokens as soon as they are no longer needed.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// Truncate shortens s to at most n runes, appending an ellipsis when the
// original was longer. Used by table renderers to keep columns narrow.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
