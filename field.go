package p256

import (
	"math/bits"
	"unsafe"
)

// felem represents a 256-bit value as 4 uint64 limbs in little-endian order.
// Depending on the call site it holds either a plain residue (< p or < n) or
// a Montgomery-form value (x*2^256 mod m); the two interpretations are never
// mixed. Every mod-p and mod-n operation returns a fully reduced result.
type felem [4]uint64

// welem is the 8-limb unreduced product of two felems. It never escapes the
// function that produces it.
type welem [8]uint64

// Field modulus limbs for P-256: p = 2^256 - 2^224 + 2^192 + 2^96 - 1
var p256Prime = felem{
	0xFFFFFFFFFFFFFFFF,
	0x00000000FFFFFFFF,
	0x0000000000000000,
	0xFFFFFFFF00000001,
}

// 2^256 mod p, the Montgomery form of 1
var p256RModP = felem{
	0x0000000000000001,
	0xFFFFFFFF00000000,
	0xFFFFFFFFFFFFFFFF,
	0x00000000FFFFFFFE,
}

// setBytes sets a felem from a 32-byte big-endian array
func (r *felem) setBytes(b []byte) {
	if len(b) != 32 {
		panic("field element byte array must be 32 bytes")
	}
	r[0] = readBE64(b[24:32])
	r[1] = readBE64(b[16:24])
	r[2] = readBE64(b[8:16])
	r[3] = readBE64(b[0:8])
}

// bytes converts a felem to a 32-byte big-endian array
func (r *felem) bytes(b []byte) {
	if len(b) != 32 {
		panic("output buffer must be 32 bytes")
	}
	writeBE64(b[0:8], r[3])
	writeBE64(b[8:16], r[2])
	writeBE64(b[16:24], r[1])
	writeBE64(b[24:32], r[0])
}

func (r *felem) setZero() {
	r[0] = 0
	r[1] = 0
	r[2] = 0
	r[3] = 0
}

func (r *felem) setOne() {
	r[0] = 1
	r[1] = 0
	r[2] = 0
	r[3] = 0
}

// clear wipes a felem to prevent leaking sensitive information
func (r *felem) clear() {
	memclear(unsafe.Pointer(&r[0]), unsafe.Sizeof(*r))
}

// isZeroMask returns all ones if the felem is zero, all zeros otherwise.
// Callers working on secret data must carry the result as a mask, never as
// a bool.
func (r *felem) isZeroMask() uint64 {
	r0 := isZeroMask64(r[0])
	r1 := isZeroMask64(r[1])
	r2 := isZeroMask64(r[2])
	r3 := isZeroMask64(r[3])
	return (r0 & r1) & (r2 & r3)
}

// equalMask returns all ones if a == b limb-wise, all zeros otherwise
func (r *felem) equalMask(a *felem) uint64 {
	r0 := eqMask(r[0], a[0])
	r1 := eqMask(r[1], a[1])
	r2 := eqMask(r[2], a[2])
	r3 := eqMask(r[3], a[3])
	return (r0 & r1) & (r2 & r3)
}

// equal is the variable-time comparison, for public values only
func (r *felem) equal(a *felem) bool {
	return r[0] == a[0] && r[1] == a[1] && r[2] == a[2] && r[3] == a[3]
}

// copyConditional overwrites r with x where mask is all ones. The mask must
// be 0 or 2^64-1.
func (r *felem) copyConditional(x *felem, mask uint64) {
	r[0] ^= mask & (r[0] ^ x[0])
	r[1] ^= mask & (r[1] ^ x[1])
	r[2] ^= mask & (r[2] ^ x[2])
	r[3] ^= mask & (r[3] ^ x[3])
}

// cmovznz sets r = x if cond == 0, r = y otherwise, without branching
func (r *felem) cmovznz(cond uint64, x, y *felem) {
	mask := ^isZeroMask64(cond)
	r[0] = (y[0] & mask) | (x[0] & ^mask)
	r[1] = (y[1] & mask) | (x[1] & ^mask)
	r[2] = (y[2] & mask) | (x[2] & ^mask)
	r[3] = (y[3] & mask) | (x[3] & ^mask)
}

// add4 computes r = x + y, returning the carry out of the top limb
func add4(x, y, r *felem) uint64 {
	var c uint64
	r[0], c = bits.Add64(x[0], y[0], 0)
	r[1], c = bits.Add64(x[1], y[1], c)
	r[2], c = bits.Add64(x[2], y[2], c)
	r[3], c = bits.Add64(x[3], y[3], c)
	return c
}

// sub4 computes r = x - y, returning the borrow out of the top limb
func sub4(x, y, r *felem) uint64 {
	var b uint64
	r[0], b = bits.Sub64(x[0], y[0], 0)
	r[1], b = bits.Sub64(x[1], y[1], b)
	r[2], b = bits.Sub64(x[2], y[2], b)
	r[3], b = bits.Sub64(x[3], y[3], b)
	return b
}

// add8 computes r = x + y over 8 limbs, returning the carry
func add8(x, y, r *welem) uint64 {
	var c uint64
	r[0], c = bits.Add64(x[0], y[0], 0)
	r[1], c = bits.Add64(x[1], y[1], c)
	r[2], c = bits.Add64(x[2], y[2], c)
	r[3], c = bits.Add64(x[3], y[3], c)
	r[4], c = bits.Add64(x[4], y[4], c)
	r[5], c = bits.Add64(x[5], y[5], c)
	r[6], c = bits.Add64(x[6], y[6], c)
	r[7], c = bits.Add64(x[7], y[7], c)
	return c
}

// reduceModP conditionally subtracts p so that the result is fully reduced.
// The input must be below 2p.
func (r *felem) reduceModP(x *felem) {
	var t felem
	c := sub4(x, &p256Prime, &t)
	r.cmovznz(c, &t, x)
}

// pAdd computes r = a + b mod p. The conditional subtraction of p is picked
// with a cmov, never a branch.
func pAdd(a, b, r *felem) {
	var out felem
	t := add4(a, b, &out)
	var tmp felem
	c := sub4(&out, &p256Prime, &tmp)
	_, carry := bits.Sub64(t, 0, c)
	r.cmovznz(carry, &tmp, &out)
}

// pDouble computes r = 2a mod p
func pDouble(a, r *felem) {
	pAdd(a, a, r)
}

// pSub computes r = a - b mod p. The borrow is spread into the limbs of p,
// which is added back on underflow so the result stays reduced.
func pSub(a, b, r *felem) {
	var out felem
	t := sub4(a, b, &out)
	t0 := 0 - t
	t1 := (0 - t) >> 32
	t3 := t - (t << 32)
	var c uint64
	r[0], c = bits.Add64(out[0], t0, 0)
	r[1], c = bits.Add64(out[1], t1, c)
	r[2], c = bits.Add64(out[2], 0, c)
	r[3], _ = bits.Add64(out[3], t3, c)
}

// Small-constant multiples used by the point formulas; multByMinusThree
// folds in the a = -3 curve coefficient.
func multByTwo(a, r *felem) { pAdd(a, a, r) }

func multByThree(a, r *felem) {
	multByTwo(a, r)
	pAdd(a, r, r)
}

func multByFour(a, r *felem) {
	multByTwo(a, r)
	multByTwo(r, r)
}

func multByEight(a, r *felem) {
	multByTwo(a, r)
	multByTwo(r, r)
	multByTwo(r, r)
}

func multByMinusThree(a, r *felem) {
	multByThree(a, r)
	var zero felem
	pSub(&zero, r, r)
}

// lessThanPrime reports x < p. Variable time, public inputs only.
func lessThanPrime(x *felem) bool {
	var t felem
	return sub4(x, &p256Prime, &t) == 1
}
