//go:build !tinygo

package trace

// Exclusive runs fn as-is on regular Go, where there is no interrupt
// state to mask. Exists so instrumented code builds and tests on the
// host unchanged.
func Exclusive(fn func()) {
	fn()
}
