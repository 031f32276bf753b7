package signer

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestP256SignerGenerate(t *testing.T) {
	s := NewP256Signer()
	if err := s.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if s.Sec() == nil {
		t.Error("expected a secret key after Generate")
	}
	pub := s.Pub()
	if len(pub) != 33 {
		t.Errorf("compressed public key length = %d, want 33", len(pub))
	}
}

func TestP256SignerSignVerify(t *testing.T) {
	s := NewP256Signer()
	if err := s.Generate(); err != nil {
		t.Fatal(err)
	}

	msg := make([]byte, 32)
	if _, err := rand.Read(msg); err != nil {
		t.Fatal(err)
	}
	sig, err := s.Sign(msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) != 64 {
		t.Fatalf("signature length = %d, want 64", len(sig))
	}

	valid, err := s.Verify(msg, sig)
	if err != nil {
		t.Fatal(err)
	}
	if !valid {
		t.Error("signature should verify")
	}

	msg[0] ^= 1
	valid, err = s.Verify(msg, sig)
	if err != nil {
		t.Fatal(err)
	}
	if valid {
		t.Error("tampered message should not verify")
	}
}

func TestP256SignerVerifyOnly(t *testing.T) {
	s := NewP256Signer()
	if err := s.Generate(); err != nil {
		t.Fatal(err)
	}
	msg := make([]byte, 32)
	if _, err := rand.Read(msg); err != nil {
		t.Fatal(err)
	}
	sig, err := s.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}

	v := NewP256Signer()
	if err := v.InitPub(s.Pub()); err != nil {
		t.Fatalf("InitPub failed: %v", err)
	}
	if v.Sec() != nil {
		t.Error("verify-only signer should have no secret key")
	}
	valid, err := v.Verify(msg, sig)
	if err != nil {
		t.Fatal(err)
	}
	if !valid {
		t.Error("signature should verify with the public key alone")
	}
	if _, err := v.Sign(msg); err == nil {
		t.Error("signing without a secret key should fail")
	}
}

func TestCrossBackendSignVerify(t *testing.T) {
	ours := NewP256Signer()
	if err := ours.Generate(); err != nil {
		t.Fatal(err)
	}
	std := NewStdlibSigner()
	if err := std.InitSec(ours.Sec()); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ours.Pub(), std.Pub()) {
		t.Fatal("backends derive different public keys from the same secret")
	}

	msg := make([]byte, 32)
	if _, err := rand.Read(msg); err != nil {
		t.Fatal(err)
	}

	// our signature, verified by the stdlib backend
	sig, err := ours.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}
	valid, err := std.Verify(msg, sig)
	if err != nil {
		t.Fatal(err)
	}
	if !valid {
		t.Error("stdlib backend rejected our signature")
	}

	// stdlib signature, verified by us
	sig, err = std.Sign(msg)
	if err != nil {
		t.Fatal(err)
	}
	valid, err = ours.Verify(msg, sig)
	if err != nil {
		t.Fatal(err)
	}
	if !valid {
		t.Error("our backend rejected a stdlib signature")
	}
}

func TestCrossBackendECDH(t *testing.T) {
	a := NewP256Signer()
	if err := a.Generate(); err != nil {
		t.Fatal(err)
	}
	b := NewStdlibSigner()
	if err := b.Generate(); err != nil {
		t.Fatal(err)
	}

	sharedA, err := a.ECDH(b.Pub())
	if err != nil {
		t.Fatal(err)
	}
	sharedB, err := b.ECDH(a.Pub())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sharedA, sharedB) {
		t.Error("cross-backend ECDH secrets should agree")
	}
}

func TestP256SignerZero(t *testing.T) {
	s := NewP256Signer()
	if err := s.Generate(); err != nil {
		t.Fatal(err)
	}
	s.Zero()
	if s.Sec() != nil {
		t.Error("secret key should be wiped after Zero")
	}
	if _, err := s.Sign(make([]byte, 32)); err == nil {
		t.Error("signing after Zero should fail")
	}
}

func TestP256Gen(t *testing.T) {
	g := NewP256Gen()
	pub, err := g.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if len(pub) != 33 {
		t.Fatalf("compressed public key length = %d, want 33", len(pub))
	}
	parityBefore := pub[0]
	g.Negate()
	_, cmpr := g.KeyPairBytes()
	if cmpr[0] == parityBefore {
		t.Error("negation should flip the Y parity")
	}
	sec, _ := g.KeyPairBytes()
	if len(sec) != 32 {
		t.Errorf("secret key length = %d, want 32", len(sec))
	}
}
