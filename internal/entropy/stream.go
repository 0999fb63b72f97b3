// Package entropy provides the deterministic random stream threaded through
// the engine. The stream state is a single word so snapshots can carry it
// and replay reproduces every escalation roll exactly.
package entropy

// Stream is a splitmix64 generator. The zero value is usable but campaigns
// should seed it explicitly.
type Stream struct {
	state uint64
}

// NewStream creates a stream from a campaign seed.
func NewStream(seed int64) *Stream {
	return &Stream{state: uint64(seed)}
}

// Restore recreates a stream from a previously exported state word.
func Restore(state uint64) *Stream {
	return &Stream{state: state}
}

// State exports the current state word for snapshotting.
func (s *Stream) State() uint64 {
	return s.state
}

// Uint64 advances the stream and returns the next raw word.
func (s *Stream) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float returns the next float64 in [0, 1).
func (s *Stream) Float() float64 {
	return float64(s.Uint64()>>11) / float64(1<<53)
}

// Intn returns a value in [0, n). n must be positive.
func (s *Stream) Intn(n int) int {
	return int(s.Uint64() % uint64(n))
}
