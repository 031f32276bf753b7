package p256

// HashAlgorithm selects the message digest for the SHA-2 sign and verify
// paths. It is consumed once at the top of each call; everything downstream
// works on digest bytes.
type HashAlgorithm int

const (
	HashSHA256 HashAlgorithm = iota
	HashSHA384
	HashSHA512
)

// hashMessageToScalar hashes msg with the selected algorithm, reads the
// first 256 bits of the digest big-endian and reduces them mod n
func hashMessageToScalar(alg HashAlgorithm, msg []byte, result *felem) {
	var digest [64]byte
	switch alg {
	case HashSHA256:
		d := hash256(msg)
		copy(digest[:], d[:])
	case HashSHA384:
		d := hash384(msg)
		copy(digest[:], d[:])
	case HashSHA512:
		d := hash512(msg)
		copy(digest[:], d[:])
	default:
		panic("unknown hash algorithm")
	}
	result.setBytes(digest[:32])
	result.reduceModN(result)
}

// signComputeR computes r = x(k*G) mod n and returns the all-ones mask if
// r is zero. Constant time in k.
func signComputeR(r *felem, k *[32]byte) uint64 {
	var kG jacobianPoint
	ladderBase(k, &kG)
	normX(&kG, r)
	r.reduceModN(r)
	kG.clear()
	return r.isZeroMask()
}

// signComputeS computes s = k^-1 * (z + r*d) mod n. The inner products run
// in the scalar-field Montgomery domain; the inversion is the n-2 ladder.
func signComputeS(s, kFelem, z, r, d *felem) {
	var rda, zBuffer, kInv felem
	montMulN(r, d, &rda)
	fromDomainN(z, &zBuffer)
	nAdd(&rda, &zBuffer, &zBuffer)
	scalarInverse(kFelem, &kInv)
	montMulN(&zBuffer, &kInv, s)
	kInv.clear()
}

// signCore runs the shared signing flow on an already-computed hash scalar.
// It always produces r and s; failure (r = 0 or s = 0) is carried in the
// returned flag, never by an early return.
func signCore(r, s *felem, z *felem, d *felem, k *[32]byte) uint64 {
	var kFelem felem
	kFelem.setBytes(k[:])
	rIsZero := signComputeR(r, k)
	signComputeS(s, &kFelem, z, r, d)
	sIsZero := s.isZeroMask()
	kFelem.clear()
	return rIsZero | sIsZero
}

// sign emits the 64-byte r||s signature and the failure flag
func sign(sig []byte, z *felem, privKey, k []byte) uint64 {
	if len(sig) != 64 {
		panic("signature buffer must be 64 bytes")
	}
	if len(privKey) != 32 || len(k) != 32 {
		panic("private key and nonce must be 32 bytes")
	}
	var d, r, s felem
	d.setBytes(privKey)
	var kBytes [32]byte
	copy(kBytes[:], k)
	flag := signCore(&r, &s, z, &d, &kBytes)
	r.bytes(sig[:32])
	s.bytes(sig[32:])
	d.clear()
	memclear32(&kBytes)
	return flag
}

// ECDSASign signs msg with the selected SHA-2 digest. privKey and k are
// 32-byte big-endian scalars in [1, n-1]; the caller supplies the
// per-message nonce k. A non-zero return flags r = 0 or s = 0 and the
// signature must not be used; resample k and retry.
func ECDSASign(alg HashAlgorithm, sig []byte, msg, privKey, k []byte) uint64 {
	var z felem
	hashMessageToScalar(alg, msg, &z)
	return sign(sig, &z, privKey, k)
}

// ECDSASignSHA256 signs msg, hashing it with SHA-256
func ECDSASignSHA256(sig []byte, msg, privKey, k []byte) uint64 {
	return ECDSASign(HashSHA256, sig, msg, privKey, k)
}

// ECDSASignSHA384 signs msg, hashing it with SHA-384
func ECDSASignSHA384(sig []byte, msg, privKey, k []byte) uint64 {
	return ECDSASign(HashSHA384, sig, msg, privKey, k)
}

// ECDSASignSHA512 signs msg, hashing it with SHA-512
func ECDSASignSHA512(sig []byte, msg, privKey, k []byte) uint64 {
	return ECDSASign(HashSHA512, sig, msg, privKey, k)
}

// ECDSASignBLAKE2s signs msg, hashing it with BLAKE2s. The 32-byte digest is
// read big-endian and reduced mod n, matching the SHA-256 path byte for
// byte.
func ECDSASignBLAKE2s(sig []byte, msg, privKey, k []byte) uint64 {
	d := hashBlake2s(msg)
	var z felem
	z.setBytes(d[:])
	z.reduceModN(&z)
	return sign(sig, &z, privKey, k)
}

// verifyCore computes P = u1*G + u2*Q and, if P is not at infinity, leaves
// the affine x coordinate in xOut. Returns false when P is at infinity.
func verifyCore(pub *jacobianPoint, z, r, s *felem, xOut *felem) bool {
	var inverseS, u1, u2 felem
	fromDomainN(s, &inverseS)
	scalarInverse(&inverseS, &inverseS)
	multPowerPartial(&inverseS, z, &u1)
	multPowerPartial(&inverseS, r, &u2)

	var u1Bytes, u2Bytes [32]byte
	u1.bytes(u1Bytes[:])
	u2.bytes(u2Bytes[:])

	var pointU1G, pointU2Q, sum jacobianPoint
	ladderBase(&u1Bytes, &pointU1G)
	ladder(pub, &u2Bytes, &pointU2Q)
	pointAdd(&pointU1G, &pointU2Q, &sum)
	norm(&sum, &sum)
	if sum.isInfinity() {
		return false
	}
	*xOut = sum.x
	return true
}

// verifyWithScalar runs the public-key and range checks, then the shared
// verification core, against an already-computed hash scalar z
func verifyWithScalar(z *felem, pub, rBytes, sBytes []byte) bool {
	if len(pub) != 64 || len(rBytes) != 32 || len(sBytes) != 32 {
		return false
	}
	var x, y felem
	x.setBytes(pub[:32])
	y.setBytes(pub[32:])
	var point jacobianPoint
	bufferToJac(&x, &y, &point)
	if !verifyValidCurvePoint(&point) {
		return false
	}

	var r, s felem
	r.setBytes(rBytes)
	s.setBytes(sBytes)
	if !isScalarInRange(&r) || !isScalarInRange(&s) {
		return false
	}

	var xCoord felem
	if !verifyCore(&point, z, &r, &s, &xCoord) {
		return false
	}
	xCoord.reduceModN(&xCoord)
	return xCoord.equalMask(&r) != 0
}

// ECDSAVerify checks a 64-byte x||y public key and an r, s pair against msg
// hashed with the selected SHA-2 digest. All inputs are public, so
// branching on the intermediate booleans is safe.
func ECDSAVerify(alg HashAlgorithm, msg, pub, rBytes, sBytes []byte) bool {
	var z felem
	hashMessageToScalar(alg, msg, &z)
	return verifyWithScalar(&z, pub, rBytes, sBytes)
}

// ECDSAVerifySHA256 verifies a signature over msg hashed with SHA-256
func ECDSAVerifySHA256(msg, pub, r, s []byte) bool {
	return ECDSAVerify(HashSHA256, msg, pub, r, s)
}

// ECDSAVerifySHA384 verifies a signature over msg hashed with SHA-384
func ECDSAVerifySHA384(msg, pub, r, s []byte) bool {
	return ECDSAVerify(HashSHA384, msg, pub, r, s)
}

// ECDSAVerifySHA512 verifies a signature over msg hashed with SHA-512
func ECDSAVerifySHA512(msg, pub, r, s []byte) bool {
	return ECDSAVerify(HashSHA512, msg, pub, r, s)
}

// ECDSAVerifyBLAKE2s verifies a signature over msg hashed with BLAKE2s
func ECDSAVerifyBLAKE2s(msg, pub, r, s []byte) bool {
	d := hashBlake2s(msg)
	var z felem
	z.setBytes(d[:])
	z.reduceModN(&z)
	return verifyWithScalar(&z, pub, r, s)
}
