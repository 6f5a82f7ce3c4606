package ghash

import (
	"encoding/binary"
	"errors"
	"hash"
	"strconv"

	"github.com/ericlagergren/subtle"
)

// A MAC is the keyed-hash form of GHASH: every byte written to
// it is authenticated as associated data and there is no
// ciphertext channel.
//
// It implements hash.Hash, encoding.BinaryMarshaler, and
// encoding.BinaryUnmarshaler. Unlike Ghash, Sum does not end
// the computation, and Reset restores the initial state without
// rebuilding the key table, so one MAC can authenticate any
// number of independent messages under the same key.
type MAC struct {
	stream
	len uint64
}

var (
	_ hash.Hash = (*MAC)(nil)
)

// NewMAC returns a MAC keyed with the 16-byte hash subkey.
//
// It panics if len(key) != 16.
func NewMAC(key []byte) *MAC {
	if len(key) != 16 {
		panic("ghash: invalid key length: " + strconv.Itoa(len(key)))
	}
	var m MAC
	m.init(key)
	return &m
}

// Write absorbs p. It never returns an error.
func (m *MAC) Write(p []byte) (int, error) {
	m.len += uint64(len(p))
	m.absorb(p)
	return len(p), nil
}

// Sum appends the current tag to b and returns the resulting
// slice.
//
// It does not change the underlying state.
func (m *MAC) Sum(b []byte) []byte {
	y := m.y
	if m.n > 0 {
		var block [BlockSize]byte
		copy(block[:], m.buf[:m.n])
		var x fieldElement
		x.setBytes(block[:])
		y = addMul(y, x, &m.pow)
	}
	bits := m.len * 8
	lens := fieldElement{
		w0: uint32(bits >> 32),
		w1: uint32(bits),
	}
	y = addMul(y, lens, &m.pow)

	ret, out := subtle.SliceForAppend(b, Size)
	y.putBytes(out)
	return ret
}

// Reset restores the MAC to its initial state, keeping the key.
func (m *MAC) Reset() {
	m.y = fieldElement{}
	m.len = 0
	m.n = 0
}

// Size returns the size of a GHASH tag.
func (m *MAC) Size() int {
	return Size
}

// BlockSize returns the size of a GHASH block.
func (m *MAC) BlockSize() int {
	return BlockSize
}

const (
	marshaledMagic = "ghash\x01"
	marshaledSize  = len(marshaledMagic) + 16 + 16 + 8
)

// MarshalBinary encodes the key and the running state. The
// buffered partial block is appended verbatim; its length is
// implied by the byte counter.
func (m *MAC) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize+m.n)
	b = append(b, marshaledMagic...)
	var tmp [16]byte
	m.pow[0].putBytes(tmp[:])
	b = append(b, tmp[:]...)
	m.y.putBytes(tmp[:])
	b = append(b, tmp[:]...)
	b = binary.BigEndian.AppendUint64(b, m.len)
	b = append(b, m.buf[:m.n]...)
	return b, nil
}

// UnmarshalBinary decodes a state written by MarshalBinary,
// rebuilding the key table.
func (m *MAC) UnmarshalBinary(data []byte) error {
	if len(data) < marshaledSize ||
		string(data[:len(marshaledMagic)]) != marshaledMagic {
		return errors.New("ghash: invalid hash state identifier")
	}
	data = data[len(marshaledMagic):]
	m.init(data[0:16])
	m.y.setBytes(data[16:32])
	m.len = binary.BigEndian.Uint64(data[32:40])
	m.n = int(m.len % BlockSize)
	if len(data[40:]) != m.n {
		return errors.New("ghash: invalid hash state size")
	}
	copy(m.buf[:], data[40:])
	return nil
}
