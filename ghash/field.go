package ghash

import (
	"encoding/binary"
	"fmt"
)

// fieldElement is an element in GF(2^128).
//
// The bits are kept in the order GHASH serializes them: the
// coefficient of x^0 is the most significant bit of w0 and the
// coefficient of x^127 is the least significant bit of w3, the
// reverse of the usual numeric convention. Multiplying by x is
// therefore a right shift.
type fieldElement struct {
	w0, w1, w2, w3 uint32
}

func (f fieldElement) String() string {
	return fmt.Sprintf("%#0.8x%0.8x%0.8x%0.8x", f.w0, f.w1, f.w2, f.w3)
}

// setBytes sets z to the 16-byte element p.
func (z *fieldElement) setBytes(p []byte) {
	z.w0 = binary.BigEndian.Uint32(p[0:4])
	z.w1 = binary.BigEndian.Uint32(p[4:8])
	z.w2 = binary.BigEndian.Uint32(p[8:12])
	z.w3 = binary.BigEndian.Uint32(p[12:16])
}

// putBytes writes x to the first 16 bytes of p.
func (x fieldElement) putBytes(p []byte) {
	binary.BigEndian.PutUint32(p[0:4], x.w0)
	binary.BigEndian.PutUint32(p[4:8], x.w1)
	binary.BigEndian.PutUint32(p[8:12], x.w2)
	binary.BigEndian.PutUint32(p[12:16], x.w3)
}

func (x fieldElement) xor(y fieldElement) fieldElement {
	return fieldElement{x.w0 ^ y.w0, x.w1 ^ y.w1, x.w2 ^ y.w2, x.w3 ^ y.w3}
}

// condXor returns z^y if the low bit of bit is set and z
// otherwise. The selection is a mask, not a branch, so bit may
// be secret.
func condXor(bit uint32, y, z fieldElement) fieldElement {
	m := -(bit & 1)
	return fieldElement{
		w0: z.w0 ^ y.w0&m,
		w1: z.w1 ^ y.w1&m,
		w2: z.w2 ^ y.w2&m,
		w3: z.w3 ^ y.w3&m,
	}
}

// timesX multiplies x by the field generator without reducing.
// The bit shifted out of w3 is the coefficient of x^128 in the
// product.
func (x fieldElement) timesX() fieldElement {
	return fieldElement{
		w0: x.w0 >> 1,
		w1: x.w1>>1 | x.w0<<31,
		w2: x.w2>>1 | x.w1<<31,
		w3: x.w3>>1 | x.w2<<31,
	}
}

// timesXReduce multiplies x by the field generator and reduces
// modulo x^128 + x^7 + x^2 + x + 1. The reduction applies only
// when the bit shifted out of the low end was set; condXor keys
// it on that bit without branching.
func (x fieldElement) timesXReduce() fieldElement {
	// 1 + x + x^2 + x^7, the low terms of the reduction
	// polynomial, land in the top byte in this bit order.
	r := fieldElement{w0: 0xe1000000}
	return condXor(x.w3, r, x.timesX())
}

// addMul returns (z+y)*H, where pow holds the 128 powers
// H*x^0 through H*x^127.
//
// The product is a scan over the whole table from the highest
// power down: each entry is folded in keyed on the bit of the
// shifting operand currently in the x^127 position. Every call
// performs the same 128 shifts, masks, and loads, so neither
// timing nor the memory-access pattern depends on the operands.
func addMul(z, y fieldElement, pow *[128]fieldElement) fieldElement {
	x := z.xor(y)
	var acc fieldElement
	for i := 127; i >= 0; i-- {
		acc = condXor(x.w3, pow[i], acc)
		x = x.timesX()
	}
	return acc
}
