package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_FirstEightHexDigitsOfMD5(t *testing.T) {
	// Big-endian uint32 of the first four digest bytes.
	assert.Equal(t, uint32(1033574386), Key("democracy-transition", 0))
	assert.Equal(t, uint32(3726168612), Key("democracy-transition", 2))
	assert.Equal(t, uint32(4129974853), Key("democracy-transition", 5))
	assert.Equal(t, uint32(0x737c191a), Key("a", 1))
	assert.Equal(t, uint32(0xb1d10db2), Key("b", 1))
}

func TestStream_KnownSequence(t *testing.T) {
	s := NewFromSeed(1033574386)
	assert.Equal(t, uint32(3984142110), s.Uint32())
	assert.Equal(t, uint32(2453714611), s.Uint32())
	assert.Equal(t, uint32(3618523550), s.Uint32())
	assert.Equal(t, 0.1771113585256725, s.Float64())
}

func TestStream_SeedZero(t *testing.T) {
	s := NewFromSeed(0)
	assert.Equal(t, uint32(3626764237), s.Uint32())
}

func TestStream_IntSequence(t *testing.T) {
	s := NewFromSeed(42)
	got := make([]int, 10)
	for i := range got {
		got[i] = s.Int(1, 6)
	}
	assert.Equal(t, []int{6, 1, 1, 6, 3, 2, 2, 2, 6, 1}, got)
	assert.Equal(t, "a", Choice(s, []string{"a", "b", "c", "d"}))
}

func TestStream_SlugLayerSequence(t *testing.T) {
	s := New("democracy-transition", 1)
	assert.Equal(t, 425, s.Int(50, 1870))
	assert.Equal(t, 163, s.Int(50, 1870))
	assert.Equal(t, 489, s.Int(50, 1870))
	assert.Equal(t, 1.5583152571383785, s.Float(0.8, 2.5))
}

func TestStream_Deterministic(t *testing.T) {
	a := New("same-slug", 3)
	b := New("same-slug", 3)
	for i := 0; i < 2000; i++ {
		require.Equal(t, a.Uint32(), b.Uint32(), "diverged at draw %d", i)
	}
}

func TestStream_LayersIndependent(t *testing.T) {
	a := New("slug", 1)
	b := New("slug", 2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint32() == b.Uint32() {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestStream_IntBounds(t *testing.T) {
	s := New("bounds", 0)
	for i := 0; i < 5000; i++ {
		v := s.Int(-30, 30)
		require.GreaterOrEqual(t, v, -30)
		require.LessOrEqual(t, v, 30)
	}
	assert.Equal(t, 7, s.Int(7, 7))
}

func TestStream_FloatBounds(t *testing.T) {
	s := New("bounds", 1)
	for i := 0; i < 5000; i++ {
		v := s.Float(0.05, 0.2)
		require.GreaterOrEqual(t, v, 0.05)
		require.Less(t, v, 0.2)
	}
}

func TestStream_Panics(t *testing.T) {
	s := New("panics", 0)
	assert.Panics(t, func() { s.Int(5, 4) })
	assert.Panics(t, func() { Choice(s, []int{}) })
}
