// Package cryptoutil provides fixed-time helpers for code that
// handles secrets.
package cryptoutil

import "runtime"

// Equal reports whether a and b are equal.
//
// When the lengths match, every byte is inspected and
// mismatches accumulate without branching, so the running time
// depends only on the length, never on the contents or the
// position of a difference. Unequal lengths return false
// immediately; lengths are not secret.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

// Memset overwrites p with c.
//
// The writes are anchored with runtime.KeepAlive so they happen
// even when the caller never reads p again, which is the usual
// case when p held key material.
//
//go:noinline
func Memset(p []byte, c byte) {
	for i := range p {
		p[i] = c
	}
	runtime.KeepAlive(p)
}
