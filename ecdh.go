package p256

import "errors"

// ECDHHashFunction derives the shared secret bytes from the affine
// coordinates of the Diffie-Hellman point
type ECDHHashFunction func(output []byte, x32 []byte, y32 []byte) bool

// ecdhHashFunctionSHA256 hashes a compressed-point encoding of the shared
// point: a version byte carrying the parity of y, followed by x
func ecdhHashFunctionSHA256(output []byte, x32 []byte, y32 []byte) bool {
	if len(output) != 32 || len(x32) != 32 || len(y32) != 32 {
		return false
	}
	version := (y32[31] & 0x01) | 0x02
	sha := NewSHA256()
	sha.Write([]byte{version})
	sha.Write(x32)
	sha.Finalize(output)
	sha.Clear()
	return true
}

// ECDH computes an EC Diffie-Hellman shared secret between seckey and a
// 64-byte x||y public key. The point multiplication runs through the same
// constant-time ladder as signing; the peer key is validated first.
func ECDH(output []byte, pub []byte, seckey []byte, hashfp ECDHHashFunction) error {
	if len(output) != 32 {
		return errors.New("output must be 32 bytes")
	}
	if len(pub) != 64 {
		return errors.New("public key must be 64 bytes")
	}
	if len(seckey) != 32 {
		return errors.New("secret key must be 32 bytes")
	}
	if hashfp == nil {
		hashfp = ecdhHashFunctionSHA256
	}

	var x, y felem
	x.setBytes(pub[:32])
	y.setBytes(pub[32:])
	var point jacobianPoint
	bufferToJac(&x, &y, &point)
	if !verifyValidCurvePoint(&point) {
		return errors.New("invalid public key")
	}
	var d felem
	d.setBytes(seckey)
	if !isScalarInRange(&d) {
		d.clear()
		return errors.New("invalid secret key")
	}
	d.clear()

	var scalar [32]byte
	copy(scalar[:], seckey)
	var shared jacobianPoint
	scalarMult(&point, &scalar, &shared)
	memclear32(&scalar)
	if shared.isInfinity() {
		shared.clear()
		return errors.New("shared point at infinity")
	}

	var xBytes, yBytes [32]byte
	shared.x.bytes(xBytes[:])
	shared.y.bytes(yBytes[:])
	shared.clear()
	ok := hashfp(output, xBytes[:], yBytes[:])
	memclear32(&xBytes)
	memclear32(&yBytes)
	if !ok {
		return errors.New("hash function failed")
	}
	return nil
}
