package p256

import (
	"bytes"
	"math/big"
	"testing"
)

// These tests recompute every precomputed constant from first principles so
// a bad literal is caught at test time rather than in production.

func TestPrimeConstant(t *testing.T) {
	// p = 2^256 - 2^224 + 2^192 + 2^96 - 1
	p := new(big.Int).Lsh(big.NewInt(1), 256)
	p.Sub(p, new(big.Int).Lsh(big.NewInt(1), 224))
	p.Add(p, new(big.Int).Lsh(big.NewInt(1), 192))
	p.Add(p, new(big.Int).Lsh(big.NewInt(1), 96))
	p.Sub(p, big.NewInt(1))
	if bigPrime().Cmp(p) != 0 {
		t.Error("p256Prime literal does not match the P-256 prime")
	}
}

func TestMontgomeryConstants(t *testing.T) {
	r := new(big.Int).Lsh(big.NewInt(1), 256)

	want := new(big.Int).Mod(r, bigPrime())
	if bigFromFelem(&p256RModP).Cmp(want) != 0 {
		t.Error("p256RModP literal does not match 2^256 mod p")
	}

	want.Mod(r, bigOrder())
	if bigFromFelem(&p256RModN).Cmp(want) != 0 {
		t.Error("p256RModN literal does not match 2^256 mod n")
	}

	// -n^-1 mod 2^64
	twoTo64 := new(big.Int).Lsh(big.NewInt(1), 64)
	nInv := new(big.Int).ModInverse(bigOrder(), twoTo64)
	nInv.Neg(nInv)
	nInv.Mod(nInv, twoTo64)
	if nInv.Uint64() != orderK0 {
		t.Errorf("orderK0 = %#x, want %#x", uint64(orderK0), nInv.Uint64())
	}

	// -p^-1 mod 2^64 must be 1, the assumption behind montReduceRoundP
	pInv := new(big.Int).ModInverse(bigPrime(), twoTo64)
	pInv.Neg(pInv)
	pInv.Mod(pInv, twoTo64)
	if pInv.Uint64() != 1 {
		t.Error("the prime-field Montgomery rounds assume -p^-1 = 1 mod 2^64")
	}
}

func TestLadderBitStrings(t *testing.T) {
	// sqrtPower holds (p+1)/4 in little-endian byte order
	sq := new(big.Int).Add(bigPrime(), big.NewInt(1))
	sq.Rsh(sq, 2)
	var le [32]byte
	sq.FillBytes(le[:])
	for i, j := 0, 31; i < j; i, j = i+1, j-1 {
		le[i], le[j] = le[j], le[i]
	}
	if !bytes.Equal(le[:], sqrtPower[:]) {
		t.Error("sqrtPower literal does not match (p+1)/4")
	}

	// orderInverseBits holds n-2 in little-endian byte order
	nm2 := new(big.Int).Sub(bigOrder(), big.NewInt(2))
	nm2.FillBytes(le[:])
	for i, j := 0, 31; i < j; i, j = i+1, j-1 {
		le[i], le[j] = le[j], le[i]
	}
	if !bytes.Equal(le[:], orderInverseBits[:]) {
		t.Error("orderInverseBits literal does not match n-2")
	}

	// orderBytes holds n big-endian
	var be [32]byte
	bigOrder().FillBytes(be[:])
	if !bytes.Equal(be[:], orderBytes[:]) {
		t.Error("orderBytes literal does not match n")
	}
}

func TestCurveConstants(t *testing.T) {
	p := bigPrime()
	r := new(big.Int).Lsh(big.NewInt(1), 256)

	// a = -3 mod p in Montgomery form
	a := new(big.Int).Sub(p, big.NewInt(3))
	a.Mul(a, r)
	a.Mod(a, p)
	if bigFromFelem(&curveA).Cmp(a) != 0 {
		t.Error("curveA literal does not match -3 in Montgomery form")
	}

	// the standard P-256 b in Montgomery form
	b, _ := new(big.Int).SetString(
		"5AC635D8AA3A93E7B3EBBD55769886BC651D06B0CC53B0F63BCE3C3E27D2604B", 16)
	b.Mul(b, r)
	b.Mod(b, p)
	if bigFromFelem(&curveB).Cmp(b) != 0 {
		t.Error("curveB literal does not match the P-256 b in Montgomery form")
	}
}
