package core

import "math/rand"

const xorShiftFallback = 0xDEADBEEF

// XorShiftSource is a 64-bit xorshift generator implementing rand.Source64.
// It is not safe for concurrent use; each render worker owns one.
type XorShiftSource struct {
	state uint64
}

var _ rand.Source64 = (*XorShiftSource)(nil)

// NewXorShiftSource creates a source seeded with seed
func NewXorShiftSource(seed int64) *XorShiftSource {
	s := &XorShiftSource{}
	s.Seed(seed)
	return s
}

// Seed resets the generator state. A zero seed is replaced by a fixed non-zero constant.
func (s *XorShiftSource) Seed(seed int64) {
	s.state = uint64(seed)
	if s.state == 0 {
		s.state = xorShiftFallback
	}
}

// Uint64 returns the next 64 random bits
func (s *XorShiftSource) Uint64() uint64 {
	x := s.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	s.state = x
	return x
}

// Int63 returns a non-negative 63-bit integer
func (s *XorShiftSource) Int63() int64 {
	return int64(s.Uint64() >> 1)
}
