// Package seed derives reproducible pseudo-random streams from string keys.
//
// The derivation is part of the output contract: changing any step below
// moves every generated coordinate.
//
//   - key:  the UTF-8 bytes of "{slug}-{layer}"
//   - hash: MD5 of the key
//   - seed: the first 4 digest bytes as a big-endian uint32
//     (the first 8 hex digits of the digest)
//   - PRNG: MT19937 initialised with init_by_array([seed])
//
// Bounded integers use rejection sampling over the top bit_length(n) bits of
// one 32-bit output; floats use the 53-bit construction from two outputs.
// Any implementation following these steps reproduces covers bit for bit.
//
// A Stream is not safe for concurrent use. Each layer builds its own.
package seed

import (
	"crypto/md5"
	"encoding/binary"
	"math/bits"
	"strconv"
)

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// Stream is a seeded MT19937 generator.
type Stream struct {
	mt  [n]uint32
	mti int
}

// Key returns the 32-bit seed for (slug, layer).
func Key(slug string, layer int) uint32 {
	sum := md5.Sum([]byte(slug + "-" + strconv.Itoa(layer)))
	return binary.BigEndian.Uint32(sum[:4])
}

// New returns the stream for (slug, layer).
func New(slug string, layer int) *Stream {
	return NewFromSeed(Key(slug, layer))
}

// NewFromSeed returns a stream seeded with init_by_array([seed]).
func NewFromSeed(seed uint32) *Stream {
	s := &Stream{}
	s.initByArray([]uint32{seed})
	return s
}

func (s *Stream) initGenrand(v uint32) {
	s.mt[0] = v
	for i := 1; i < n; i++ {
		prev := s.mt[i-1]
		s.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	s.mti = n
}

func (s *Stream) initByArray(key []uint32) {
	s.initGenrand(19650218)
	i, j := 1, 0
	k := n
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := s.mt[i-1]
		s.mt[i] = (s.mt[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= n {
			s.mt[0] = s.mt[n-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = n - 1; k > 0; k-- {
		prev := s.mt[i-1]
		s.mt[i] = (s.mt[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= n {
			s.mt[0] = s.mt[n-1]
			i = 1
		}
	}
	s.mt[0] = 0x80000000
}

func (s *Stream) twist() {
	mag := func(y uint32) uint32 { return (y & 1) * matrixA }
	kk := 0
	for ; kk < n-m; kk++ {
		y := (s.mt[kk] & upperMask) | (s.mt[kk+1] & lowerMask)
		s.mt[kk] = s.mt[kk+m] ^ (y >> 1) ^ mag(y)
	}
	for ; kk < n-1; kk++ {
		y := (s.mt[kk] & upperMask) | (s.mt[kk+1] & lowerMask)
		s.mt[kk] = s.mt[kk+(m-n)] ^ (y >> 1) ^ mag(y)
	}
	y := (s.mt[n-1] & upperMask) | (s.mt[0] & lowerMask)
	s.mt[n-1] = s.mt[m-1] ^ (y >> 1) ^ mag(y)
	s.mti = 0
}

// Uint32 returns the next tempered 32-bit output.
func (s *Stream) Uint32() uint32 {
	if s.mti >= n {
		s.twist()
	}
	y := s.mt[s.mti]
	s.mti++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float64 returns a float in [0, 1) with 53 bits of precision.
func (s *Stream) Float64() float64 {
	a := s.Uint32() >> 5
	b := s.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// below returns a uniform integer in [0, bound). bound must be in (0, 2^32).
func (s *Stream) below(bound uint64) uint64 {
	k := bits.Len64(bound)
	for {
		var r uint64
		if k > 0 {
			r = uint64(s.Uint32() >> (32 - k))
		}
		if r < bound {
			return r
		}
	}
}

// Int returns a uniform integer in [lo, hi], both inclusive.
// It panics if hi < lo or the range holds 2^32 or more values.
func (s *Stream) Int(lo, hi int) int {
	if hi < lo {
		panic("seed: Int called with hi < lo")
	}
	width := uint64(hi-lo) + 1
	if width >= 1<<32 {
		panic("seed: Int range wider than 32 bits")
	}
	return lo + int(s.below(width))
}

// Float returns lo + (hi-lo)*u for u in [0, 1).
func (s *Stream) Float(lo, hi float64) float64 {
	// float64() forbids FMA fusion; low bits must match on every GOARCH.
	return lo + float64((hi-lo)*s.Float64())
}

// Choice returns one element of options, chosen with a single bounded draw.
// It panics on an empty slice.
func Choice[T any](s *Stream, options []T) T {
	if len(options) == 0 {
		panic("seed: Choice from empty slice")
	}
	return options[s.below(uint64(len(options)))]
}
