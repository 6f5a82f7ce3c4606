package cryptoutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"pgregory.net/rapid"
)

func TestEqual(t *testing.T) {
	a := []byte{0, 1, 2}

	require.True(t, Equal(a, a))
	require.True(t, Equal(a, []byte{0, 1, 2}))
	require.True(t, Equal(nil, nil))
	require.True(t, Equal(nil, []byte{}))

	require.False(t, Equal(a, []byte{0, 1, 9}))
	require.False(t, Equal(a, []byte{9, 1, 2}))
	require.False(t, Equal(a, []byte{2, 1, 0}))
	require.False(t, Equal(a, []byte{2, 2, 2}))
	require.False(t, Equal(a, []byte{0, 0, 0}))

	require.False(t, Equal(a, a[:2]))
	require.False(t, Equal(a[:2], a))
	require.False(t, Equal(a, nil))
}

// TestEqualCorruption flips every byte position in turn; each
// single-byte difference must be detected no matter where it
// sits.
func TestEqualCorruption(t *testing.T) {
	buf := make([]byte, 64)
	rand.Read(buf)

	other := make([]byte, len(buf))
	for i := range buf {
		copy(other, buf)
		other[i] ^= 0x01
		require.False(t, Equal(buf, other), "flipped byte %d", i)
	}
}

func TestEqualRapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "a")
		var b []byte
		if rapid.Bool().Draw(t, "same") {
			b = append([]byte{}, a...)
		} else {
			b = rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "b")
		}
		require.Equal(t, bytes.Equal(a, b), Equal(a, b))
	})
}

func TestMemset(t *testing.T) {
	buf := make([]byte, 37)
	rand.Read(buf)

	Memset(buf, 0)
	require.Equal(t, make([]byte, len(buf)), buf)

	Memset(buf, 0xa5)
	require.Equal(t, bytes.Repeat([]byte{0xa5}, len(buf)), buf)

	require.NotPanics(t, func() { Memset(nil, 0) })
	require.NotPanics(t, func() { Memset([]byte{}, 0xff) })
}
