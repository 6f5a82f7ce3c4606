// Package bcrypt implements the bcrypt adaptive password hash
// from "A Future-Adaptable Password Scheme" by Niels Provos and
// David Mazières.
//
// bcrypt derives a 24-byte digest from a password and a 16-byte
// salt by running Blowfish's expensive key schedule and then
// repeatedly encrypting a fixed magic value with the resulting
// state. The cost parameter makes the key schedule
// exponentially slow, which is the point: it rate limits
// offline guessing.
//
// This package produces only the raw digest. It does not parse
// or produce crypt(3)-style "$2y$..." strings, and it does not
// choose a cost.
package bcrypt

import (
	"strconv"

	"golang.org/x/crypto/blowfish"
)

const (
	// Size is the size in bytes of a bcrypt digest.
	Size = 24
	// SaltSize is the required size in bytes of a salt.
	SaltSize = 16
	// MaxCost is the largest allowed cost parameter.
	MaxCost = 31
	// MaxPasswordSize is the largest allowed password size in
	// bytes.
	MaxPasswordSize = 72
)

// magic is the 192-bit value bcrypt encrypts, the big-endian
// serialization of the six words spelling the string below.
var magic = []byte("OrpheanBeholderScryDoubt")

// setup derives a Blowfish state from cost, salt, and key: one
// salted expansion mixing both, then 2^cost rounds of
// alternating expansions with the key and the salt.
func setup(cost int, salt, key []byte) *blowfish.Cipher {
	c, err := blowfish.NewSaltedCipher(key, salt)
	if err != nil {
		// Unreachable: len(key) > 0 was already checked.
		panic(err)
	}
	for i, n := uint64(0), uint64(1)<<uint(cost); i < n; i++ {
		blowfish.ExpandKey(key, c)
		blowfish.ExpandKey(salt, c)
	}
	return c
}

// Hash writes the bcrypt digest of password to out.
//
// It panics unless 0 <= cost <= MaxCost, len(salt) == SaltSize,
// 1 <= len(password) <= MaxPasswordSize, and len(out) == Size.
// Identical inputs always produce identical output.
//
// Only the first 23 bytes of the digest are checked by the
// standard test vectors and used by crypt(3)-compatible
// implementations; the 24th byte is produced all the same.
func Hash(cost int, salt, password, out []byte) {
	if cost < 0 || cost > MaxCost {
		panic("bcrypt: invalid cost: " + strconv.Itoa(cost))
	}
	if len(salt) != SaltSize {
		panic("bcrypt: invalid salt length: " + strconv.Itoa(len(salt)))
	}
	if len(password) == 0 || len(password) > MaxPasswordSize {
		panic("bcrypt: invalid password length: " + strconv.Itoa(len(password)))
	}
	if len(out) != Size {
		panic("bcrypt: invalid output length: " + strconv.Itoa(len(out)))
	}

	c := setup(cost, salt, password)
	copy(out, magic)
	for i := 0; i < Size; i += 8 {
		for j := 0; j < 64; j++ {
			c.Encrypt(out[i:i+8], out[i:i+8])
		}
	}
}
