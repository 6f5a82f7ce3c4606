// Package gcm is a bit-serial GHASH used by tests as an
// independent reference. It is not constant time.
package gcm

import "encoding/binary"

// element is a GF(2^128) element with the coefficient of x^0 at
// the most significant bit of low and the coefficient of x^127
// at the least significant bit of high.
type element struct {
	low, high uint64
}

func load(p []byte) element {
	return element{
		low:  binary.BigEndian.Uint64(p[0:8]),
		high: binary.BigEndian.Uint64(p[8:16]),
	}
}

func (v element) bytes() []byte {
	out := make([]byte, 16)
	binary.BigEndian.PutUint64(out[0:8], v.low)
	binary.BigEndian.PutUint64(out[8:16], v.high)
	return out
}

func (v element) xor(w element) element {
	return element{low: v.low ^ w.low, high: v.high ^ w.high}
}

// double multiplies v by x, reducing modulo
// x^128 + x^7 + x^2 + x + 1 when a bit shifts out the low end.
func (v element) double() element {
	out := v.high & 1
	v.high = v.high>>1 | v.low<<63
	v.low >>= 1
	if out == 1 {
		v.low ^= 0xe1 << 56
	}
	return v
}

// mul multiplies v by w per NIST SP 800-38D, algorithm 1.
func (v element) mul(w element) element {
	var z element
	for i := 0; i < 128; i++ {
		var bit uint64
		if i < 64 {
			bit = w.low >> (63 - i)
		} else {
			bit = w.high >> (127 - i)
		}
		if bit&1 == 1 {
			z = z.xor(v)
		}
		v = v.double()
	}
	return z
}

// Mul returns the GF(2^128) product of the 16-byte elements x
// and y.
func Mul(x, y []byte) []byte {
	return load(x).mul(load(y)).bytes()
}

// Double returns the 16-byte element x times the field
// generator.
func Double(x []byte) []byte {
	return load(x).double().bytes()
}

// Hash returns GHASH(h, additionalData, ciphertext): both
// inputs zero padded to full blocks, followed by the standard
// length block.
func Hash(h, additionalData, ciphertext []byte) [16]byte {
	hv := load(h)
	var y element
	absorb := func(p []byte) {
		for len(p) > 0 {
			var block [16]byte
			n := copy(block[:], p)
			p = p[n:]
			y = y.xor(load(block[:])).mul(hv)
		}
	}
	absorb(additionalData)
	absorb(ciphertext)

	var block [16]byte
	binary.BigEndian.PutUint64(block[0:8], uint64(len(additionalData))*8)
	binary.BigEndian.PutUint64(block[8:16], uint64(len(ciphertext))*8)
	y = y.xor(load(block[:])).mul(hv)

	var tag [16]byte
	copy(tag[:], y.bytes())
	return tag
}
