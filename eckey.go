package p256

import (
	"crypto/rand"
	"errors"
)

// isCoordinateValid checks both affine coordinates are below p
func isCoordinateValid(p *jacobianPoint) bool {
	return lessThanPrime(&p.x) && lessThanPrime(&p.y)
}

// isOrderCorrect multiplies the point by the group order with the ladder and
// checks the result is the point at infinity
func isOrderCorrect(p *jacobianPoint) bool {
	var multResult jacobianPoint
	scalarMult(p, &orderBytes, &multResult)
	return multResult.isInfinity()
}

// verifyValidCurvePoint accepts a candidate public key held as a Jacobian
// point with plain coordinates and Z = 1. All inputs public.
func verifyValidCurvePoint(p *jacobianPoint) bool {
	if !isCoordinateValid(p) {
		return false
	}
	if !isPointOnCurve(&p.x, &p.y) {
		return false
	}
	return isOrderCorrect(p)
}

// PubkeyVerify checks a 64-byte x||y public key is a valid P-256 point of
// order n
func PubkeyVerify(pub []byte) bool {
	if len(pub) != 64 {
		return false
	}
	var x, y felem
	x.setBytes(pub[:32])
	y.setBytes(pub[32:])
	var point jacobianPoint
	bufferToJac(&x, &y, &point)
	return verifyValidCurvePoint(&point)
}

// SeckeyVerify reports whether a 32-byte array is a valid secret key, i.e.
// a scalar in [1, n-1]
func SeckeyVerify(seckey []byte) bool {
	if len(seckey) != 32 {
		return false
	}
	var d felem
	d.setBytes(seckey)
	return isScalarInRange(&d)
}

// SeckeyGenerate draws a fresh secret key from system entropy
func SeckeyGenerate() ([]byte, error) {
	seckey := make([]byte, 32)
	for {
		if _, err := rand.Read(seckey); err != nil {
			return nil, err
		}
		if SeckeyVerify(seckey) {
			return seckey, nil
		}
	}
}

// SeckeyNegate replaces a secret key with n - d in place
func SeckeyNegate(seckey []byte) bool {
	if len(seckey) != 32 {
		return false
	}
	var d felem
	d.setBytes(seckey)
	if !isScalarInRange(&d) {
		return false
	}
	var neg felem
	sub4(&p256Order, &d, &neg)
	neg.bytes(seckey)
	d.clear()
	neg.clear()
	return true
}

// PubkeyCreate derives the 64-byte x||y public key for a secret key
func PubkeyCreate(pub []byte, seckey []byte) error {
	if len(pub) != 64 {
		return errors.New("public key must be 64 bytes")
	}
	if !SeckeyVerify(seckey) {
		return errors.New("invalid secret key")
	}
	var scalar [32]byte
	copy(scalar[:], seckey)
	var q, result jacobianPoint
	ladderBase(&scalar, &q)
	norm(&q, &result)
	result.x.bytes(pub[:32])
	result.y.bytes(pub[32:])
	q.clear()
	memclear32(&scalar)
	return nil
}

// computeYFromX recovers y from x (Montgomery form) on the curve equation
// and picks the root whose low bit matches sign, via a cmov
func computeYFromX(x *felem, result *felem, sign uint64) {
	var aCoord, bCoord felem
	aCoord = curveA
	bCoord = curveB
	montMul(&aCoord, x, &aCoord)
	cube(x, result)
	pAdd(result, &aCoord, result)
	pAdd(result, &bCoord, result)
	aCoord.setZero()
	feSqrt(result, result)
	fromDomain(result, result)
	pSub(&aCoord, result, &bCoord)
	bitToCheck := result[0] & 1
	flag := eqMask(bitToCheck, sign)
	result.cmovznz(flag, &bCoord, result)
}

// DecompressUncompressed checks the 0x04 prefix of a 65-byte public key and
// copies the 64-byte x||y payload into result
func DecompressUncompressed(b []byte, result []byte) bool {
	if len(b) != 65 || len(result) != 64 {
		return false
	}
	if b[0] != 0x04 {
		return false
	}
	copy(result, b[1:])
	return true
}

// DecompressCompressed recovers the 64-byte x||y form from a 33-byte
// compressed key. Returns false on a bad prefix byte or x >= p; the result
// buffer content is unspecified in that case.
func DecompressCompressed(b []byte, result []byte) bool {
	if len(b) != 33 || len(result) != 64 {
		return false
	}
	identifier := b[0]
	if identifier != 0x02 && identifier != 0x03 {
		return false
	}
	copy(result[:32], b[1:])
	var x felem
	x.setBytes(b[1:])
	if !lessThanPrime(&x) {
		return false
	}
	var xDomain, y felem
	toDomain(&x, &xDomain)
	computeYFromX(&xDomain, &y, uint64(identifier&1))
	y.bytes(result[32:])
	return true
}

// CompressUncompressed prepends the 0x04 identifier to a 64-byte x||y key
func CompressUncompressed(b []byte, result []byte) {
	if len(b) != 64 || len(result) != 65 {
		panic("wrong buffer size for uncompressed form")
	}
	result[0] = 0x04
	copy(result[1:], b)
}

// CompressCompressed emits the 33-byte compressed form, identifier 0x02 or
// 0x03 per the low bit of y
func CompressCompressed(b []byte, result []byte) {
	if len(b) != 64 || len(result) != 33 {
		panic("wrong buffer size for compressed form")
	}
	lastBitY := b[63] & 1
	result[0] = lastBitY + 2
	copy(result[1:], b[:32])
}
