package p256

import (
	"crypto/rand"
	"math/big"
	"testing"
)

func bigFromFelem(f *felem) *big.Int {
	var b [32]byte
	f.bytes(b[:])
	return new(big.Int).SetBytes(b[:])
}

func felemFromBig(x *big.Int) felem {
	var b [32]byte
	x.FillBytes(b[:])
	var f felem
	f.setBytes(b[:])
	return f
}

func bigPrime() *big.Int {
	return bigFromFelem(&p256Prime)
}

func randomFieldElement(t *testing.T) felem {
	t.Helper()
	p := bigPrime()
	for {
		var b [32]byte
		if _, err := rand.Read(b[:]); err != nil {
			t.Fatal(err)
		}
		x := new(big.Int).SetBytes(b[:])
		if x.Cmp(p) < 0 {
			return felemFromBig(x)
		}
	}
}

func TestPAddKnownAnswers(t *testing.T) {
	// p-1 + 1 = 0 mod p
	p := bigPrime()
	pMinusOne := felemFromBig(new(big.Int).Sub(p, big.NewInt(1)))
	var one felem
	one.setOne()

	var sum felem
	pAdd(&pMinusOne, &one, &sum)
	if sum.isZeroMask() != ^uint64(0) {
		t.Errorf("pAdd(p-1, 1) = %x, want 0", sum)
	}

	// 0 - 1 = p - 1 mod p
	var zero, diff felem
	pSub(&zero, &one, &diff)
	if !diff.equal(&pMinusOne) {
		t.Errorf("pSub(0, 1) = %x, want p-1", diff)
	}
}

func TestFieldOpsMatchBigInt(t *testing.T) {
	p := bigPrime()
	for i := 0; i < 256; i++ {
		a := randomFieldElement(t)
		b := randomFieldElement(t)
		bigA := bigFromFelem(&a)
		bigB := bigFromFelem(&b)

		var sum felem
		pAdd(&a, &b, &sum)
		want := new(big.Int).Add(bigA, bigB)
		want.Mod(want, p)
		if bigFromFelem(&sum).Cmp(want) != 0 {
			t.Fatalf("pAdd mismatch for %x + %x", bigA, bigB)
		}

		var diff felem
		pSub(&a, &b, &diff)
		want.Sub(bigA, bigB)
		want.Mod(want, p)
		if bigFromFelem(&diff).Cmp(want) != 0 {
			t.Fatalf("pSub mismatch for %x - %x", bigA, bigB)
		}

		var dbl felem
		pDouble(&a, &dbl)
		want.Lsh(bigA, 1)
		want.Mod(want, p)
		if bigFromFelem(&dbl).Cmp(want) != 0 {
			t.Fatalf("pDouble mismatch for %x", bigA)
		}
	}
}

func TestMontgomeryRoundTrip(t *testing.T) {
	for i := 0; i < 128; i++ {
		a := randomFieldElement(t)
		var domain, back felem
		toDomain(&a, &domain)
		fromDomain(&domain, &back)
		if !back.equal(&a) {
			t.Fatalf("round trip failed for %x", bigFromFelem(&a))
		}
	}
}

func TestMontMulMatchesBigInt(t *testing.T) {
	p := bigPrime()
	rInv := new(big.Int).ModInverse(new(big.Int).Lsh(big.NewInt(1), 256), p)
	for i := 0; i < 128; i++ {
		a := randomFieldElement(t)
		b := randomFieldElement(t)
		var prod felem
		montMul(&a, &b, &prod)
		want := new(big.Int).Mul(bigFromFelem(&a), bigFromFelem(&b))
		want.Mul(want, rInv)
		want.Mod(want, p)
		if bigFromFelem(&prod).Cmp(want) != 0 {
			t.Fatalf("montMul mismatch for %x * %x", bigFromFelem(&a), bigFromFelem(&b))
		}

		var sq felem
		montSqr(&a, &sq)
		want.Mul(bigFromFelem(&a), bigFromFelem(&a))
		want.Mul(want, rInv)
		want.Mod(want, p)
		if bigFromFelem(&sq).Cmp(want) != 0 {
			t.Fatalf("montSqr mismatch for %x", bigFromFelem(&a))
		}
	}
}

func TestFieldLaws(t *testing.T) {
	for i := 0; i < 64; i++ {
		a := randomFieldElement(t)
		b := randomFieldElement(t)
		c := randomFieldElement(t)

		// commutativity
		var ab, ba felem
		pAdd(&a, &b, &ab)
		pAdd(&b, &a, &ba)
		if !ab.equal(&ba) {
			t.Fatal("addition not commutative")
		}
		var mab, mba felem
		montMul(&a, &b, &mab)
		montMul(&b, &a, &mba)
		if !mab.equal(&mba) {
			t.Fatal("multiplication not commutative")
		}

		// associativity
		var abc1, abc2, tmp felem
		pAdd(&a, &b, &tmp)
		pAdd(&tmp, &c, &abc1)
		pAdd(&b, &c, &tmp)
		pAdd(&a, &tmp, &abc2)
		if !abc1.equal(&abc2) {
			t.Fatal("addition not associative")
		}
		montMul(&a, &b, &tmp)
		montMul(&tmp, &c, &abc1)
		montMul(&b, &c, &tmp)
		montMul(&a, &tmp, &abc2)
		if !abc1.equal(&abc2) {
			t.Fatal("multiplication not associative")
		}

		// distributivity
		var lhs, rhs, t1, t2 felem
		pAdd(&b, &c, &tmp)
		montMul(&a, &tmp, &lhs)
		montMul(&a, &b, &t1)
		montMul(&a, &c, &t2)
		pAdd(&t1, &t2, &rhs)
		if !lhs.equal(&rhs) {
			t.Fatal("multiplication does not distribute over addition")
		}

		// full reduction after every operation
		if !lessThanPrime(&ab) || !lessThanPrime(&mab) || !lessThanPrime(&lhs) {
			t.Fatal("intermediate not fully reduced")
		}
	}
}

func TestSolinasReduceMatchesBigInt(t *testing.T) {
	p := bigPrime()
	for i := 0; i < 128; i++ {
		var wideBytes [64]byte
		if _, err := rand.Read(wideBytes[:]); err != nil {
			t.Fatal(err)
		}
		var wide welem
		for j := 0; j < 8; j++ {
			wide[j] = readBE64(wideBytes[8*(7-j) : 8*(8-j)])
		}
		var out felem
		solinasReduce(&wide, &out)
		want := new(big.Int).SetBytes(wideBytes[:])
		want.Mod(want, p)
		if bigFromFelem(&out).Cmp(want) != 0 {
			t.Fatalf("solinasReduce mismatch for %x", wideBytes)
		}
	}
}

func TestFeInverse(t *testing.T) {
	rModP := p256RModP
	for i := 0; i < 32; i++ {
		a := randomFieldElement(t)
		if a.isZeroMask() != 0 {
			continue
		}
		var domain, inv, prod felem
		toDomain(&a, &domain)
		feInverse(&domain, &inv)
		montMul(&domain, &inv, &prod)
		// a * a^-1 in the domain is the Montgomery form of 1
		if !prod.equal(&rModP) {
			t.Fatalf("feInverse failed for %x", bigFromFelem(&a))
		}
	}
}

func TestFeSqrt(t *testing.T) {
	for i := 0; i < 32; i++ {
		a := randomFieldElement(t)
		var domain, square, root, rootSquared felem
		toDomain(&a, &domain)
		montSqr(&domain, &square)
		feSqrt(&square, &root)
		montSqr(&root, &rootSquared)
		if !rootSquared.equal(&square) {
			t.Fatalf("feSqrt failed for %x", bigFromFelem(&a))
		}
	}
}

func TestCmovCswap(t *testing.T) {
	a := felem{1, 2, 3, 4}
	b := felem{5, 6, 7, 8}

	var r felem
	r.cmovznz(0, &a, &b)
	if !r.equal(&a) {
		t.Error("cmovznz with zero condition should pick first operand")
	}
	r.cmovznz(1, &a, &b)
	if !r.equal(&b) {
		t.Error("cmovznz with non-zero condition should pick second operand")
	}

	x, y := a, b
	cswap4(0, &x, &y)
	if !x.equal(&a) || !y.equal(&b) {
		t.Error("cswap4 with zero bit should not swap")
	}
	cswap4(1, &x, &y)
	if !x.equal(&b) || !y.equal(&a) {
		t.Error("cswap4 with one bit should swap")
	}
}
