package p256

import "unsafe"

// jacobianPoint is a curve point (X, Y, Z) with coordinates in Montgomery
// form. It represents the affine point (X/Z^2, Y/Z^3); Z of all-zero limbs
// denotes the point at infinity. There is no separate sentinel.
type jacobianPoint struct {
	x, y, z felem
}

// Curve coefficient a = -3 mod p, in Montgomery form
var curveA = felem{
	0xFFFFFFFFFFFFFFFC,
	0x00000003FFFFFFFF,
	0x0000000000000000,
	0xFFFFFFFC00000004,
}

// Curve coefficient b, in Montgomery form
var curveB = felem{
	0xD89CDF6229C4BDDF,
	0xACF005CD78843090,
	0xE5A220ABF7212ED6,
	0xDC30061D04874834,
}

// Base point G in Jacobian-Montgomery form, Z = 2^256 mod p
var basePoint = jacobianPoint{
	x: felem{0x79E730D418A9143C, 0x75BA95FC5FEDB601, 0x79FB732B77622510, 0x18905F76A53755C6},
	y: felem{0xDDF25357CE95560A, 0x8B4AB8E4BA19E45C, 0xD2E88688DD21F325, 0x8571FF1825885D85},
	z: felem{0x0000000000000001, 0xFFFFFFFF00000000, 0xFFFFFFFFFFFFFFFF, 0x00000000FFFFFFFE},
}

func (r *jacobianPoint) setZero() {
	r.x.setZero()
	r.y.setZero()
	r.z.setZero()
}

func (r *jacobianPoint) clear() {
	memclear(unsafe.Pointer(r), unsafe.Sizeof(*r))
}

// isInfinityMask returns all ones if the point is at infinity. Constant time.
func (r *jacobianPoint) isInfinityMask() uint64 {
	return r.z.isZeroMask()
}

// isInfinity is the variable-time check, for public points only
func (r *jacobianPoint) isInfinity() bool {
	return r.z[0] == 0 && r.z[1] == 0 && r.z[2] == 0 && r.z[3] == 0
}

// bufferToJac lifts affine coordinates (plain residues) into a Jacobian
// point with Z = 1, still outside the Montgomery domain
func bufferToJac(x, y *felem, result *jacobianPoint) {
	result.x = *x
	result.y = *y
	result.z.setOne()
}

// toDomain maps every coordinate into Montgomery form
func (r *jacobianPoint) toDomain(p *jacobianPoint) {
	toDomain(&p.x, &r.x)
	toDomain(&p.y, &r.y)
	toDomain(&p.z, &r.z)
}

// pointDouble computes result = 2p on the a = -3 curve:
// S = 4XY^2, M = 3(X - Z^2)(X + Z^2), X3 = M^2 - 2S,
// Y3 = M(S - X3) - 8Y^4, Z3 = 2YZ. No branches on coordinates.
func pointDouble(p, result *jacobianPoint) {
	var s, m felem

	var yy, xyy, zzzz, minThreeZzzz, xx, threeXx felem
	montSqr(&p.y, &yy)
	montMul(&p.x, &yy, &xyy)
	quatre(&p.z, &zzzz)
	multByMinusThree(&zzzz, &minThreeZzzz)
	montSqr(&p.x, &xx)
	multByThree(&xx, &threeXx)
	pAdd(&minThreeZzzz, &threeXx, &m)
	multByFour(&xyy, &s)

	var twoS, mm, x3 felem
	multByTwo(&s, &twoS)
	montSqr(&m, &mm)
	pSub(&mm, &twoS, &x3)

	var yyyy, eightYyyy, sx3, msx3, y3 felem
	quatre(&p.y, &yyyy)
	multByEight(&yyyy, &eightYyyy)
	pSub(&s, &x3, &sx3)
	montMul(&m, &sx3, &msx3)
	pSub(&msx3, &eightYyyy, &y3)

	var pypz, z3 felem
	montMul(&p.y, &p.z, &pypz)
	multByTwo(&pypz, &z3)

	result.x = x3
	result.y = y3
	result.z = z3
}

// copyPointConditional overwrites (x3, y3, z3) with p where maskPoint is at
// infinity
func copyPointConditional(x3, y3, z3 *felem, p, maskPoint *jacobianPoint) {
	mask := maskPoint.z.isZeroMask()
	x3.copyConditional(&p.x, mask)
	y3.copyConditional(&p.y, mask)
	z3.copyConditional(&p.z, mask)
}

// pointAdd computes result = p + q with the general Jacobian formulas. The
// P = infinity and Q = infinity cases are repaired by conditional copies
// after the raw formula; P = Q is not handled and must be excluded by the
// caller (the ladder never combines equal points).
func pointAdd(p, q, result *jacobianPoint) {
	var z2Square, z1Square, z2Cube, z1Cube felem
	montSqr(&q.z, &z2Square)
	montSqr(&p.z, &z1Square)
	montMul(&z2Square, &q.z, &z2Cube)
	montMul(&z1Square, &p.z, &z1Cube)

	var u1, u2, s1, s2 felem
	montMul(&z2Square, &p.x, &u1)
	montMul(&z1Square, &q.x, &u2)
	montMul(&z2Cube, &p.y, &s1)
	montMul(&z1Cube, &q.y, &s2)

	var h, r, hSquare, uh, hCube felem
	pSub(&u2, &u1, &h)
	pSub(&s2, &s1, &r)
	montSqr(&h, &hSquare)
	montMul(&hSquare, &u1, &uh)
	montMul(&hSquare, &h, &hCube)

	var rSquare, rh, twoUh, x3 felem
	montSqr(&r, &rSquare)
	pSub(&rSquare, &hCube, &rh)
	multByTwo(&uh, &twoUh)
	pSub(&rh, &twoUh, &x3)

	var s1hCube, u1hx3, ru1hx3, y3 felem
	montMul(&s1, &hCube, &s1hCube)
	pSub(&uh, &x3, &u1hx3)
	montMul(&u1hx3, &r, &ru1hx3)
	pSub(&ru1hx3, &s1hCube, &y3)

	var z1z2, z3 felem
	montMul(&p.z, &q.z, &z1z2)
	montMul(&z1z2, &h, &z3)

	copyPointConditional(&x3, &y3, &z3, p, q)
	copyPointConditional(&x3, &y3, &z3, q, p)

	result.x = x3
	result.y = y3
	result.z = z3
}

// norm converts a Jacobian point to its affine coordinates, out of the
// Montgomery domain. For the point at infinity the output Z is zero, one
// otherwise; that Z serves as the infinity flag of the normalised form.
func norm(p, result *jacobianPoint) {
	var z2, z3 felem
	montSqr(&p.z, &z2)
	montMul(&z2, &p.z, &z3)
	feInverse(&z2, &z2)
	feInverse(&z3, &z3)
	montMul(&p.x, &z2, &z2)
	montMul(&p.y, &z3, &z3)

	bit := p.isInfinityMask()
	fromDomain(&z2, &result.x)
	fromDomain(&z3, &result.y)
	result.z.setOne()
	var zero felem
	result.z.copyConditional(&zero, bit)
}

// normX recovers only the affine x coordinate, out of the Montgomery domain
func normX(p *jacobianPoint, result *felem) {
	var z2 felem
	montSqr(&p.z, &z2)
	feInverse(&z2, &z2)
	montMul(&z2, &p.x, &z2)
	fromDomain(&z2, result)
}

// isPointOnCurve checks y^2 = x^3 - 3x + b on affine (plain residue)
// coordinates. Public inputs, so the boolean return is safe.
func isPointOnCurve(x, y *felem) bool {
	var y2 felem
	toDomain(y, &y2)
	montSqr(&y2, &y2)

	var xDomain, rhs, minusThreeX felem
	toDomain(x, &xDomain)
	montSqr(&xDomain, &rhs)
	montMul(&rhs, &xDomain, &rhs)
	multByThree(&xDomain, &minusThreeX)
	pSub(&rhs, &minusThreeX, &rhs)
	pAdd(&rhs, &curveB, &rhs)

	return y2.equalMask(&rhs) != 0
}
