package signer

import (
	"crypto/rand"
	"errors"

	"p256.mleku.dev"
)

// P256Signer implements the I interface over P-256 ECDSA. Messages are
// 32-byte digests; signatures are the 64-byte r||s form. Public keys are
// exchanged in the 33-byte compressed encoding.
type P256Signer struct {
	seckey    [32]byte
	pub       [64]byte
	hasSecret bool
	hasPub    bool
}

// NewP256Signer creates a new P256Signer instance
func NewP256Signer() *P256Signer {
	return &P256Signer{}
}

// Generate creates a fresh key pair from system entropy
func (s *P256Signer) Generate() error {
	sec, err := p256.SeckeyGenerate()
	if err != nil {
		return err
	}
	return s.InitSec(sec)
}

// InitSec initialises the secret (signing) key from the raw bytes, and also
// derives the public key
func (s *P256Signer) InitSec(sec []byte) error {
	if len(sec) != 32 {
		return errors.New("secret key must be 32 bytes")
	}
	var pub [64]byte
	if err := p256.PubkeyCreate(pub[:], sec); err != nil {
		return err
	}
	copy(s.seckey[:], sec)
	s.pub = pub
	s.hasSecret = true
	s.hasPub = true
	return nil
}

// InitPub initialises the public (verification) key from a 33-byte
// compressed encoding
func (s *P256Signer) InitPub(pub []byte) error {
	if len(pub) != 33 {
		return errors.New("public key must be 33 bytes")
	}
	var full [64]byte
	if !p256.DecompressCompressed(pub, full[:]) {
		return errors.New("invalid compressed public key")
	}
	if !p256.PubkeyVerify(full[:]) {
		return errors.New("public key not on curve")
	}
	s.pub = full
	s.hasPub = true
	s.hasSecret = false
	for i := range s.seckey {
		s.seckey[i] = 0
	}
	return nil
}

// Sec returns the secret key bytes
func (s *P256Signer) Sec() []byte {
	if !s.hasSecret {
		return nil
	}
	return s.seckey[:]
}

// Pub returns the public key bytes in compressed form
func (s *P256Signer) Pub() []byte {
	if !s.hasPub {
		return nil
	}
	out := make([]byte, 33)
	p256.CompressCompressed(s.pub[:], out)
	return out
}

// Sign creates a signature over a 32-byte message digest using the stored
// secret key. The nonce is drawn from system entropy and resampled whenever
// the core flags r = 0 or s = 0.
func (s *P256Signer) Sign(msg []byte) (sig []byte, err error) {
	if !s.hasSecret {
		return nil, errors.New("no secret key available for signing")
	}
	if len(msg) != 32 {
		return nil, errors.New("message must be 32 bytes")
	}
	sig = make([]byte, 64)
	var k [32]byte
	for {
		if _, err = rand.Read(k[:]); err != nil {
			return nil, err
		}
		if !p256.SeckeyVerify(k[:]) {
			continue
		}
		if p256.ECDSASignSHA256(sig, msg, s.seckey[:], k[:]) == 0 {
			break
		}
	}
	for i := range k {
		k[i] = 0
	}
	return sig, nil
}

// Verify checks a message digest and signature match the stored public key
func (s *P256Signer) Verify(msg, sig []byte) (valid bool, err error) {
	if !s.hasPub {
		return false, errors.New("no public key available for verification")
	}
	if len(msg) != 32 {
		return false, errors.New("message must be 32 bytes")
	}
	if len(sig) != 64 {
		return false, errors.New("signature must be 64 bytes")
	}
	return p256.ECDSAVerifySHA256(msg, s.pub[:], sig[:32], sig[32:]), nil
}

// Zero wipes the secret key to prevent memory leaks
func (s *P256Signer) Zero() {
	for i := range s.seckey {
		s.seckey[i] = 0
	}
	s.hasSecret = false
}

// ECDH returns a shared secret derived using Elliptic Curve Diffie-Hellman
// on the stored secret and the provided 33-byte compressed pubkey
func (s *P256Signer) ECDH(pub []byte) (secret []byte, err error) {
	if !s.hasSecret {
		return nil, errors.New("no secret key available for ECDH")
	}
	if len(pub) != 33 {
		return nil, errors.New("public key must be 33 bytes")
	}
	var full [64]byte
	if !p256.DecompressCompressed(pub, full[:]) {
		return nil, errors.New("invalid compressed public key")
	}
	secret = make([]byte, 32)
	if err = p256.ECDH(secret, full[:], s.seckey[:], nil); err != nil {
		return nil, err
	}
	return secret, nil
}

// P256Gen implements the Gen interface for key generation
type P256Gen struct {
	seckey [32]byte
	pub    [64]byte
	have   bool
}

// NewP256Gen creates a new P256Gen instance
func NewP256Gen() *P256Gen {
	return &P256Gen{}
}

// Generate gathers entropy and derives pubkey bytes for matching; this
// returns the 33-byte compressed form so the caller can check the parity of
// the Y coordinate
func (g *P256Gen) Generate() (pubBytes []byte, err error) {
	sec, err := p256.SeckeyGenerate()
	if err != nil {
		return nil, err
	}
	copy(g.seckey[:], sec)
	if err := p256.PubkeyCreate(g.pub[:], g.seckey[:]); err != nil {
		return nil, err
	}
	g.have = true
	out := make([]byte, 33)
	p256.CompressCompressed(g.pub[:], out)
	return out, nil
}

// Negate replaces the key pair with its negation, flipping the public key Y
// coordinate between odd and even
func (g *P256Gen) Negate() {
	if !g.have {
		return
	}
	if !p256.SeckeyNegate(g.seckey[:]) {
		return
	}
	if err := p256.PubkeyCreate(g.pub[:], g.seckey[:]); err != nil {
		g.have = false
	}
}

// KeyPairBytes returns the raw bytes of the secret and compressed public key
func (g *P256Gen) KeyPairBytes() (secBytes, cmprPubBytes []byte) {
	if !g.have {
		return nil, nil
	}
	out := make([]byte, 33)
	p256.CompressCompressed(g.pub[:], out)
	return g.seckey[:], out
}
