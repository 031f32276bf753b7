package signer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"math/big"
)

// StdlibSigner implements the I interface using crypto/ecdsa, as an
// alternative backend for cross-checking the p256 implementation. It speaks
// the same wire formats: 32-byte messages hashed with SHA-256, 64-byte
// r||s signatures, 33-byte compressed public keys.
type StdlibSigner struct {
	privKey   *ecdsa.PrivateKey
	pubKey    *ecdsa.PublicKey
	hasSecret bool
}

// NewStdlibSigner creates a new StdlibSigner instance
func NewStdlibSigner() *StdlibSigner {
	return &StdlibSigner{}
}

// Generate creates a fresh key pair from system entropy
func (s *StdlibSigner) Generate() error {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return err
	}
	s.privKey = priv
	s.pubKey = &priv.PublicKey
	s.hasSecret = true
	return nil
}

// InitSec initialises the secret key from raw bytes and derives the public
// key
func (s *StdlibSigner) InitSec(sec []byte) error {
	if len(sec) != 32 {
		return errors.New("secret key must be 32 bytes")
	}
	d := new(big.Int).SetBytes(sec)
	curve := elliptic.P256()
	if d.Sign() == 0 || d.Cmp(curve.Params().N) >= 0 {
		return errors.New("invalid secret key")
	}
	priv := &ecdsa.PrivateKey{D: d}
	priv.Curve = curve
	priv.X, priv.Y = curve.ScalarBaseMult(sec)
	s.privKey = priv
	s.pubKey = &priv.PublicKey
	s.hasSecret = true
	return nil
}

// InitPub initialises the public key from a 33-byte compressed encoding
func (s *StdlibSigner) InitPub(pub []byte) error {
	if len(pub) != 33 {
		return errors.New("public key must be 33 bytes")
	}
	curve := elliptic.P256()
	x, y := elliptic.UnmarshalCompressed(curve, pub)
	if x == nil {
		return errors.New("invalid compressed public key")
	}
	s.pubKey = &ecdsa.PublicKey{Curve: curve, X: x, Y: y}
	s.privKey = nil
	s.hasSecret = false
	return nil
}

// Sec returns the secret key bytes
func (s *StdlibSigner) Sec() []byte {
	if !s.hasSecret || s.privKey == nil {
		return nil
	}
	out := make([]byte, 32)
	s.privKey.D.FillBytes(out)
	return out
}

// Pub returns the public key bytes in compressed form
func (s *StdlibSigner) Pub() []byte {
	if s.pubKey == nil {
		return nil
	}
	return elliptic.MarshalCompressed(s.pubKey.Curve, s.pubKey.X, s.pubKey.Y)
}

// Sign creates a 64-byte r||s signature over a 32-byte digest
func (s *StdlibSigner) Sign(msg []byte) (sig []byte, err error) {
	if !s.hasSecret || s.privKey == nil {
		return nil, errors.New("no secret key available for signing")
	}
	if len(msg) != 32 {
		return nil, errors.New("message must be 32 bytes")
	}
	dig := sha256.Sum256(msg)
	r, ss, err := ecdsa.Sign(rand.Reader, s.privKey, dig[:])
	if err != nil {
		return nil, err
	}
	sig = make([]byte, 64)
	r.FillBytes(sig[:32])
	ss.FillBytes(sig[32:])
	return sig, nil
}

// Verify checks a digest and r||s signature against the stored public key
func (s *StdlibSigner) Verify(msg, sig []byte) (valid bool, err error) {
	if s.pubKey == nil {
		return false, errors.New("no public key available for verification")
	}
	if len(msg) != 32 {
		return false, errors.New("message must be 32 bytes")
	}
	if len(sig) != 64 {
		return false, errors.New("signature must be 64 bytes")
	}
	dig := sha256.Sum256(msg)
	r := new(big.Int).SetBytes(sig[:32])
	ss := new(big.Int).SetBytes(sig[32:])
	return ecdsa.Verify(s.pubKey, dig[:], r, ss), nil
}

// Zero wipes the secret key
func (s *StdlibSigner) Zero() {
	if s.privKey != nil {
		s.privKey.D.SetInt64(0)
		s.privKey = nil
	}
	s.hasSecret = false
}

// ECDH returns a shared secret computed with crypto/elliptic, hashed the
// same way as the p256 backend: SHA-256 over a parity byte and the x
// coordinate
func (s *StdlibSigner) ECDH(pub []byte) (secret []byte, err error) {
	if !s.hasSecret || s.privKey == nil {
		return nil, errors.New("no secret key available for ECDH")
	}
	if len(pub) != 33 {
		return nil, errors.New("public key must be 33 bytes")
	}
	curve := elliptic.P256()
	x, y := elliptic.UnmarshalCompressed(curve, pub)
	if x == nil {
		return nil, errors.New("invalid compressed public key")
	}
	var sec [32]byte
	s.privKey.D.FillBytes(sec[:])
	sx, sy := curve.ScalarMult(x, y, sec[:])
	for i := range sec {
		sec[i] = 0
	}
	var buf [33]byte
	buf[0] = byte(sy.Bit(0)) | 0x02
	sx.FillBytes(buf[1:])
	sum := sha256.Sum256(buf[:])
	return sum[:], nil
}
