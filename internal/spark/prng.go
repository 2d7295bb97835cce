// internal/spark/prng.go
//
// Deterministic PRNG for date-seeded selection.
//
// Context
// -------
// Selection must be reproducible across processes, deploys, and Go
// releases: a user's archive view recomputes history on demand, and
// statically generated category pages must agree with live ones.  We
// therefore carry our own splitmix64 rather than math/rand, whose
// seeding behavior is not a compatibility promise.  The constants are
// the published splitmix64 ones (Steele, Lea, and Flood, 2014).

package spark

// splitmix64 is a tiny, well-mixed 64-bit generator.  Not cryptographic,
// and does not need to be.
type splitmix64 struct {
	state uint64
}

// next advances the generator and returns the next 64-bit value.
func (s *splitmix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// intn returns a value in [0, n).  n must be positive.  Modulo bias is
// negligible against 2^64 and, more importantly, stable.
func (s *splitmix64) intn(n int) int {
	return int(s.next() % uint64(n))
}
