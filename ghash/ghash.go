// Package ghash implements GHASH, the universal hash that
// authenticates data in Galois/Counter Mode.
//
// GHASH evaluates a polynomial over GF(2^128) defined by the
// irreducible polynomial
//
//	x^128 + x^7 + x^2 + x + 1
//
// keyed by a 16-byte element H. It absorbs associated data,
// then ciphertext, and folds in a final block encoding both
// lengths to produce a 16-byte tag.
//
// To keep the computation constant time it uses the approach
// from section 5.2 of "Faster and Timing-Attack Resistant
// AES-GCM" by Käsper and Schwabe: a 128-entry table of the key
// powers H*x^i, scanned in full for every block, so neither
// timing nor the memory-access pattern depends on the key or
// the input.
//
// For more information, see
// https://csrc.nist.gov/groups/ST/toolkit/BCM/documents/proposedmodes/gcm/gcm-spec.pdf
package ghash

import (
	"strconv"

	"github.com/ericlagergren/subtle"
)

const (
	// Size is the size in bytes of a GHASH tag.
	Size = 16
	// BlockSize is the size in bytes of a GHASH block.
	BlockSize = 16
)

// Sum returns GHASH(key, additionalData, ciphertext).
//
// It panics if len(key) != 16.
func Sum(key, additionalData, ciphertext []byte) [Size]byte {
	g := New(key)
	g.WriteAAD(additionalData)
	g.WriteCiphertext(ciphertext)
	var tag [Size]byte
	g.Sum(tag[:0])
	return tag
}

// stream folds full 16-byte blocks of an incrementally supplied
// byte sequence into a running field element, buffering up to
// 15 trailing bytes between calls. The result is independent of
// how callers chunk their input.
type stream struct {
	// pow holds the key powers H*x^0 through H*x^127. It is
	// filled in once by init and never written again, so
	// copying the enclosing struct yields an independent,
	// equally valid accumulator.
	pow [128]fieldElement
	y   fieldElement
	buf [BlockSize]byte
	n   int
}

func (s *stream) init(key []byte) {
	var h fieldElement
	h.setBytes(key)
	for i := range s.pow {
		s.pow[i] = h
		h = h.timesXReduce()
	}
}

func (s *stream) fold(block []byte) {
	var x fieldElement
	x.setBytes(block)
	s.y = addMul(s.y, x, &s.pow)
}

func (s *stream) absorb(p []byte) {
	if s.n > 0 {
		n := copy(s.buf[s.n:], p)
		s.n += n
		p = p[n:]
		if s.n < BlockSize {
			return
		}
		s.fold(s.buf[:])
		s.n = 0
	}
	for len(p) >= BlockSize {
		s.fold(p[:BlockSize])
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		s.n = copy(s.buf[:], p)
	}
}

// flush folds any buffered partial block, zero padded.
func (s *stream) flush() {
	if s.n == 0 {
		return
	}
	for i := s.n; i < BlockSize; i++ {
		s.buf[i] = 0
	}
	s.fold(s.buf[:])
	s.n = 0
}

// The two inputs are strictly ordered: all associated data,
// then all ciphertext, then the tag.
const (
	writingAAD = iota
	writingCiphertext
	summed
)

// A Ghash computes GHASH(H, A, C) incrementally.
//
// Writes that arrive out of order panic: no associated data is
// accepted once ciphertext input has begun, and no input is
// accepted after Sum.
//
// A Ghash may not be used concurrently. Distinct instances are
// independent, and assigning a Ghash value copies the whole
// computation, key table included.
type Ghash struct {
	stream
	aLen  uint64
	cLen  uint64
	phase int
}

// New returns a Ghash keyed with the 16-byte hash subkey.
//
// It panics if len(key) != 16.
func New(key []byte) *Ghash {
	if len(key) != 16 {
		panic("ghash: invalid key length: " + strconv.Itoa(len(key)))
	}
	var g Ghash
	g.init(key)
	return &g
}

// WriteAAD absorbs associated data.
//
// It panics if called after WriteCiphertext or Sum.
func (g *Ghash) WriteAAD(p []byte) {
	switch g.phase {
	case writingCiphertext:
		panic("ghash: associated data written after ciphertext")
	case summed:
		panic("ghash: write after Sum")
	}
	g.aLen += uint64(len(p))
	g.absorb(p)
}

// WriteCiphertext absorbs ciphertext. The first call ends the
// associated data input for good: any buffered partial block is
// folded, zero padded, before the ciphertext is absorbed.
//
// It panics if called after Sum.
func (g *Ghash) WriteCiphertext(p []byte) {
	switch g.phase {
	case writingAAD:
		g.flush()
		g.phase = writingCiphertext
	case summed:
		panic("ghash: write after Sum")
	}
	g.cLen += uint64(len(p))
	g.absorb(p)
}

// Sum appends the 16-byte tag to dst and returns the resulting
// slice.
//
// The first call folds the final length block and ends the
// computation; no input is accepted afterward. Further calls
// append the same tag.
func (g *Ghash) Sum(dst []byte) []byte {
	if g.phase != summed {
		g.flush()
		aBits := g.aLen * 8
		cBits := g.cLen * 8
		lens := fieldElement{
			w0: uint32(aBits >> 32),
			w1: uint32(aBits),
			w2: uint32(cBits >> 32),
			w3: uint32(cBits),
		}
		g.y = addMul(g.y, lens, &g.pow)
		g.phase = summed
	}
	ret, out := subtle.SliceForAppend(dst, Size)
	g.y.putBytes(out)
	return ret
}

// Size returns the size of a GHASH tag.
func (g *Ghash) Size() int {
	return Size
}

// BlockSize returns the size of a GHASH block.
func (g *Ghash) BlockSize() int {
	return BlockSize
}
