package p256

import "math/bits"

// mul1 computes result = f * u, returning the carry limb
func mul1(f *felem, u uint64, result *felem) uint64 {
	var c, temp uint64
	hi, lo := bits.Mul64(f[0], u)
	result[0] = lo
	temp = hi
	hi, lo = bits.Mul64(f[1], u)
	result[1], c = bits.Add64(lo, temp, 0)
	temp = hi
	hi, lo = bits.Mul64(f[2], u)
	result[2], c = bits.Add64(lo, temp, c)
	temp = hi
	hi, lo = bits.Mul64(f[3], u)
	result[3], c = bits.Add64(lo, temp, c)
	return hi + c
}

// mul1Add computes result = f*u + addend, returning the carry limb
func mul1Add(f *felem, u uint64, addend, result *felem) uint64 {
	var temp felem
	c := mul1(f, u, &temp)
	c2 := add4(&temp, addend, result)
	return c + c2
}

// mulWide computes the full 512-bit product out = f * g by four schoolbook
// rows, each fused into the running partial product
func mulWide(f, g *felem, out *welem) {
	var t welem
	var win, addend felem

	c := mul1(g, f[0], &win)
	t[0], t[1], t[2], t[3] = win[0], win[1], win[2], win[3]
	t[4] = c

	addend = felem{t[1], t[2], t[3], t[4]}
	c = mul1Add(g, f[1], &addend, &win)
	t[1], t[2], t[3], t[4] = win[0], win[1], win[2], win[3]
	t[5] = c

	addend = felem{t[2], t[3], t[4], t[5]}
	c = mul1Add(g, f[2], &addend, &win)
	t[2], t[3], t[4], t[5] = win[0], win[1], win[2], win[3]
	t[6] = c

	addend = felem{t[3], t[4], t[5], t[6]}
	c = mul1Add(g, f[3], &addend, &win)
	t[3], t[4], t[5], t[6] = win[0], win[1], win[2], win[3]
	t[7] = c

	*out = t
}

// sqrWide computes out = f^2. Each distinct cross product is multiplied once
// and shifted into both positions it contributes to.
func sqrWide(f *felem, out *welem) {
	h00, l00 := bits.Mul64(f[0], f[0])
	h11, l11 := bits.Mul64(f[1], f[1])
	h22, l22 := bits.Mul64(f[2], f[2])
	h33, l33 := bits.Mul64(f[3], f[3])
	h01, l01 := bits.Mul64(f[0], f[1])
	h02, l02 := bits.Mul64(f[0], f[2])
	h03, l03 := bits.Mul64(f[0], f[3])
	h12, l12 := bits.Mul64(f[1], f[2])
	h13, l13 := bits.Mul64(f[1], f[3])
	h23, l23 := bits.Mul64(f[2], f[3])

	var t welem
	var c uint64

	// row 0: f0 * f
	t[0] = l00
	t[1], c = bits.Add64(l01, h00, 0)
	t[2], c = bits.Add64(l02, h01, c)
	t[3], c = bits.Add64(l03, h02, c)
	t[4] = h03 + c

	// row 1: f1 * f, offset one limb
	var r1 [5]uint64
	r1[0] = l01
	r1[1], c = bits.Add64(l11, h01, 0)
	r1[2], c = bits.Add64(l12, h11, c)
	r1[3], c = bits.Add64(l13, h12, c)
	r1[4] = h13 + c
	t[1], c = bits.Add64(t[1], r1[0], 0)
	t[2], c = bits.Add64(t[2], r1[1], c)
	t[3], c = bits.Add64(t[3], r1[2], c)
	t[4], c = bits.Add64(t[4], r1[3], c)
	t[5] = r1[4] + c

	// row 2: f2 * f, offset two limbs
	var r2 [5]uint64
	r2[0] = l02
	r2[1], c = bits.Add64(l12, h02, 0)
	r2[2], c = bits.Add64(l22, h12, c)
	r2[3], c = bits.Add64(l23, h22, c)
	r2[4] = h23 + c
	t[2], c = bits.Add64(t[2], r2[0], 0)
	t[3], c = bits.Add64(t[3], r2[1], c)
	t[4], c = bits.Add64(t[4], r2[2], c)
	t[5], c = bits.Add64(t[5], r2[3], c)
	t[6] = r2[4] + c

	// row 3: f3 * f, offset three limbs
	var r3 [5]uint64
	r3[0] = l03
	r3[1], c = bits.Add64(l13, h03, 0)
	r3[2], c = bits.Add64(l23, h13, c)
	r3[3], c = bits.Add64(l33, h23, c)
	r3[4] = h33 + c
	t[3], c = bits.Add64(t[3], r3[0], 0)
	t[4], c = bits.Add64(t[4], r3[1], c)
	t[5], c = bits.Add64(t[5], r3[2], c)
	t[6], c = bits.Add64(t[6], r3[3], c)
	t[7] = r3[4] + c

	*out = t
}

// shortenedMul computes the 5-limb product out = a * b, upper limbs zero
func shortenedMul(a *felem, b uint64, out *welem) {
	var low felem
	c := mul1(a, b, &low)
	out[0], out[1], out[2], out[3] = low[0], low[1], low[2], low[3]
	out[4] = c
	out[5] = 0
	out[6] = 0
	out[7] = 0
}

// shift8 drops the low limb: out = t >> 64
func shift8(t, out *welem) {
	out[0] = t[1]
	out[1] = t[2]
	out[2] = t[3]
	out[3] = t[4]
	out[4] = t[5]
	out[5] = t[6]
	out[6] = t[7]
	out[7] = 0
}

func storeHighLow(high, low uint32) uint64 {
	return uint64(low) | uint64(high)<<32
}

// solinasReduce reduces an 8-limb value mod p using the NIST P-256 identity
// over its sixteen 32-bit words: o = t0 + 2*t1 + 2*t2 + t3 + t4 - t5 - t6 -
// t7 - t8, with every intermediate kept below p.
func solinasReduce(i *welem, o *felem) {
	c0 := uint32(i[0])
	c1 := uint32(i[0] >> 32)
	c2 := uint32(i[1])
	c3 := uint32(i[1] >> 32)
	c4 := uint32(i[2])
	c5 := uint32(i[2] >> 32)
	c6 := uint32(i[3])
	c7 := uint32(i[3] >> 32)
	c8 := uint32(i[4])
	c9 := uint32(i[4] >> 32)
	c10 := uint32(i[5])
	c11 := uint32(i[5] >> 32)
	c12 := uint32(i[6])
	c13 := uint32(i[6] >> 32)
	c14 := uint32(i[7])
	c15 := uint32(i[7] >> 32)

	var t0, t1, t2, t3, t4, t5, t6, t7, t8 felem

	t0 = felem{storeHighLow(c1, c0), storeHighLow(c3, c2), storeHighLow(c5, c4), storeHighLow(c7, c6)}
	t0.reduceModP(&t0)

	t1 = felem{0, storeHighLow(c11, 0), storeHighLow(c13, c12), storeHighLow(c15, c14)}
	t1.reduceModP(&t1)

	t2 = felem{0, storeHighLow(c12, 0), storeHighLow(c14, c13), storeHighLow(0, c15)}

	t3 = felem{storeHighLow(c9, c8), storeHighLow(0, c10), 0, storeHighLow(c15, c14)}
	t3.reduceModP(&t3)

	t4 = felem{storeHighLow(c10, c9), storeHighLow(c13, c11), storeHighLow(c15, c14), storeHighLow(c8, c13)}
	t4.reduceModP(&t4)

	t5 = felem{storeHighLow(c12, c11), storeHighLow(0, c13), 0, storeHighLow(c10, c8)}
	t5.reduceModP(&t5)

	t6 = felem{storeHighLow(c13, c12), storeHighLow(c15, c14), 0, storeHighLow(c11, c9)}
	t6.reduceModP(&t6)

	t7 = felem{storeHighLow(c14, c13), storeHighLow(c8, c15), storeHighLow(c10, c9), storeHighLow(c12, 0)}
	t7.reduceModP(&t7)

	t8 = felem{storeHighLow(c15, c14), storeHighLow(c9, 0), storeHighLow(c11, c10), storeHighLow(c13, 0)}
	t8.reduceModP(&t8)

	pDouble(&t2, &t2)
	pDouble(&t1, &t1)
	pAdd(&t0, &t1, o)
	pAdd(&t2, o, o)
	pAdd(&t3, o, o)
	pAdd(&t4, o, o)
	pSub(o, &t5, o)
	pSub(o, &t6, o)
	pSub(o, &t7, o)
	pSub(o, &t8, o)
}

// montReduceRoundP performs one Montgomery round mod p: t += t[0]*p, then
// shift right one limb. Exploits -p^-1 = 1 mod 2^64, so y is just t[0].
func montReduceRoundP(t *welem) {
	var yp, sum welem
	shortenedMul(&p256Prime, t[0], &yp)
	add8(t, &yp, &sum)
	shift8(&sum, t)
}

// reduceModPWithCarry reduces a 4-limb value with a carry bit cin to below p
func reduceModPWithCarry(cin uint64, x, result *felem) {
	var tmp felem
	c := sub4(x, &p256Prime, &tmp)
	_, carry := bits.Sub64(cin, 0, c)
	result.cmovznz(carry, &tmp, x)
}

// montMul computes r = a*b*2^-256 mod p for a, b in Montgomery form
func montMul(a, b, r *felem) {
	var t welem
	mulWide(a, b, &t)
	montReduceRoundP(&t)
	montReduceRoundP(&t)
	montReduceRoundP(&t)
	montReduceRoundP(&t)
	low := felem{t[0], t[1], t[2], t[3]}
	reduceModPWithCarry(t[4], &low, r)
}

// montSqr computes r = a^2*2^-256 mod p
func montSqr(a, r *felem) {
	var t welem
	sqrWide(a, &t)
	montReduceRoundP(&t)
	montReduceRoundP(&t)
	montReduceRoundP(&t)
	montReduceRoundP(&t)
	low := felem{t[0], t[1], t[2], t[3]}
	reduceModPWithCarry(t[4], &low, r)
}

// montMulByOne converts out of Montgomery form: r = a*2^-256 mod p
func montMulByOne(a, r *felem) {
	t := welem{a[0], a[1], a[2], a[3], 0, 0, 0, 0}
	montReduceRoundP(&t)
	montReduceRoundP(&t)
	montReduceRoundP(&t)
	montReduceRoundP(&t)
	low := felem{t[0], t[1], t[2], t[3]}
	reduceModPWithCarry(t[4], &low, r)
}

// toDomain converts into Montgomery form by building a*2^256 as a wide value
// and Solinas-reducing it
func toDomain(a, r *felem) {
	wide := welem{0, 0, 0, 0, a[0], a[1], a[2], a[3]}
	solinasReduce(&wide, r)
}

// fromDomain converts out of Montgomery form
func fromDomain(a, r *felem) {
	montMulByOne(a, r)
}

func fsquarePowN(n int, a *felem) {
	for i := 0; i < n; i++ {
		montSqr(a, a)
	}
}

// fsquarePowNminusOne computes b = a^(2^n - 1) and advances a to a^(2^n),
// both in Montgomery form
func fsquarePowNminusOne(n int, a, b *felem) {
	*b = p256RModP
	for i := 0; i < n; i++ {
		montMul(b, a, b)
		montSqr(a, a)
	}
}

// feInverse computes r = a^(p-2) mod p with the fixed addition chain derived
// from the long runs of ones in p-2. Input and output in Montgomery form.
func feInverse(a, r *felem) {
	var a1, a3, result1, result2, result3 felem
	a1 = *a
	fsquarePowNminusOne(32, &a1, &result1)
	fsquarePowN(224, &result1)
	result2 = *a
	fsquarePowN(192, &result2)
	a3 = *a
	fsquarePowNminusOne(94, &a3, &result3)
	fsquarePowN(2, &result3)
	montMul(&result1, &result2, &result1)
	montMul(&result1, &result3, &result1)
	montMul(&result1, a, &result1)
	*r = result1
}

// cswap4 conditionally swaps two felems under a bit, branchless
func cswap4(bit uint64, p1, p2 *felem) {
	mask := 0 - bit
	for i := 0; i < 4; i++ {
		dummy := mask & (p1[i] ^ p2[i])
		p1[i] ^= dummy
		p2[i] ^= dummy
	}
}

// montLadderPowerP raises a to the power held in scalar (little-endian bit
// order) mod p with a 256-iteration Montgomery ladder
func montLadderPowerP(a *felem, scalar *[32]byte, result *felem) {
	acc := *a
	p := p256RModP
	for i := 0; i < 256; i++ {
		bit0 := 255 - i
		bit := uint64(scalar[bit0/8] >> (uint(bit0) % 8) & 1)
		cswap4(bit, &p, &acc)
		montMul(&p, &acc, &acc)
		montSqr(&p, &p)
		cswap4(bit, &p, &acc)
	}
	*result = p
}

// Little-endian bit string of (p+1)/4, the square-root exponent for p = 3
// mod 4
var sqrtPower = [32]byte{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 64, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 64,
	0, 0, 0, 192, 255, 255, 255, 63,
}

// feSqrt computes one of the square roots of a mod p, in Montgomery form.
// Sign selection is up to the caller.
func feSqrt(a, r *felem) {
	montLadderPowerP(a, &sqrtPower, r)
}

// cube and quatre compute a^3 and a^4 in Montgomery form
func cube(a, r *felem) {
	montSqr(a, r)
	montMul(r, a, r)
}

func quatre(a, r *felem) {
	montSqr(a, r)
	montSqr(r, r)
}
