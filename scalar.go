package p256

import "math/bits"

// Group order of P-256:
// n = 0xFFFFFFFF00000000FFFFFFFFFFFFFFFFBCE6FAADA7179E84F3B9CAC2FC632551
var p256Order = felem{
	0xF3B9CAC2FC632551,
	0xBCE6FAADA7179E84,
	0xFFFFFFFFFFFFFFFF,
	0xFFFFFFFF00000000,
}

// 2^256 mod n, the Montgomery form of 1 in the scalar field
var p256RModN = felem{
	0x0C46353D039CDAAF,
	0x4319055258E8617B,
	0x0000000000000000,
	0x00000000FFFFFFFF,
}

// -n^-1 mod 2^64, the Montgomery constant for the scalar field
const orderK0 = 0xCCD1C8AAEE00BC4F

// Big-endian bytes of n, the scalar fed to the ladder for the order check
var orderBytes = [32]byte{
	0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xBC, 0xE6, 0xFA, 0xAD, 0xA7, 0x17, 0x9E, 0x84,
	0xF3, 0xB9, 0xCA, 0xC2, 0xFC, 0x63, 0x25, 0x51,
}

// Little-endian bit string of n - 2, the exponent for scalar inversion
var orderInverseBits = [32]byte{
	0x4F, 0x25, 0x63, 0xFC, 0xC2, 0xCA, 0xB9, 0xF3,
	0x84, 0x9E, 0x17, 0xA7, 0xAD, 0xFA, 0xE6, 0xBC,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF,
}

// reduceModN conditionally subtracts n so the result is fully reduced. The
// input must be below 2n.
func (r *felem) reduceModN(x *felem) {
	var t felem
	c := sub4(x, &p256Order, &t)
	r.cmovznz(c, &t, x)
}

// reduceModNWithCarry reduces a 4-limb value with carry bit cin to below n
func reduceModNWithCarry(cin uint64, x, result *felem) {
	var tmp felem
	c := sub4(x, &p256Order, &tmp)
	_, carry := bits.Sub64(cin, 0, c)
	result.cmovznz(carry, &tmp, x)
}

// nAdd computes r = a + b mod n
func nAdd(a, b, r *felem) {
	t := add4(a, b, r)
	reduceModNWithCarry(t, r, r)
}

// montReduceRoundN performs one Montgomery round mod n:
// t += (t[0]*k0 mod 2^64)*n, then shift right one limb
func montReduceRoundN(t *welem) {
	_, y := bits.Mul64(t[0], orderK0)
	var yn, sum welem
	shortenedMul(&p256Order, y, &yn)
	add8(t, &yn, &sum)
	shift8(&sum, t)
}

// montMulN computes r = a*b*2^-256 mod n
func montMulN(a, b, r *felem) {
	var t welem
	mulWide(a, b, &t)
	montReduceRoundN(&t)
	montReduceRoundN(&t)
	montReduceRoundN(&t)
	montReduceRoundN(&t)
	low := felem{t[0], t[1], t[2], t[3]}
	reduceModNWithCarry(t[4], &low, r)
}

// fromDomainN converts out of scalar-field Montgomery form
func fromDomainN(a, r *felem) {
	var one felem
	one.setOne()
	montMulN(&one, a, r)
}

// scalarInverse raises a to n-2 in the scalar-field Montgomery domain with a
// 256-iteration Montgomery ladder over the hard-coded bit string of n-2, so
// for a plain residue a the result is a^-1 * 2^512 mod n. Branchless in the
// bits.
func scalarInverse(a, r *felem) {
	acc := *a
	p := p256RModN
	for i := 0; i < 256; i++ {
		bit0 := 255 - i
		bit := uint64(orderInverseBits[bit0/8] >> (uint(bit0) % 8) & 1)
		cswap4(bit, &p, &acc)
		montMulN(&p, &acc, &acc)
		montMulN(&p, &p, &p)
		cswap4(bit, &p, &acc)
	}
	*r = p
}

// multPowerPartial strips two Montgomery factors from b before multiplying
// by a. Composed with the output of scalarInverse, the leftover powers of
// 2^256 cancel and the result is a plain residue.
func multPowerPartial(a, b, r *felem) {
	var t felem
	fromDomainN(b, &t)
	fromDomainN(&t, &t)
	montMulN(a, &t, r)
}

// isScalarInRange reports 0 < x < n. Variable time, public inputs only.
func isScalarInRange(x *felem) bool {
	var t felem
	less := sub4(x, &p256Order, &t) == 1
	zero := x[0] == 0 && x[1] == 0 && x[2] == 0 && x[3] == 0
	return less && !zero
}
