package p256

import (
	"crypto/sha512"
	"hash"
	"unsafe"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2s"
)

// SHA256 represents a SHA-256 hash context
type SHA256 struct {
	hasher hash.Hash
}

// NewSHA256 creates a new SHA-256 hash context
func NewSHA256() *SHA256 {
	return &SHA256{hasher: sha256simd.New()}
}

// Write writes data to the hash
func (h *SHA256) Write(data []byte) {
	h.hasher.Write(data)
}

// Finalize finalizes the hash and writes the result to out32 (must be 32 bytes)
func (h *SHA256) Finalize(out32 []byte) {
	if len(out32) != 32 {
		panic("output buffer must be 32 bytes")
	}
	sum := h.hasher.Sum(nil)
	copy(out32, sum)
}

// Clear clears the hash context to prevent leaking sensitive information
func (h *SHA256) Clear() {
	memclear(unsafe.Pointer(h), unsafe.Sizeof(*h))
}

// hash256 computes the one-shot SHA-256 digest of msg
func hash256(msg []byte) [32]byte {
	var out [32]byte
	h := sha256simd.New()
	h.Write(msg)
	copy(out[:], h.Sum(nil))
	return out
}

// hash384 and hash512 compute the one-shot SHA-384 and SHA-512 digests
func hash384(msg []byte) [48]byte {
	return sha512.Sum384(msg)
}

func hash512(msg []byte) [64]byte {
	return sha512.Sum512(msg)
}

// hashBlake2s computes the one-shot 32-byte BLAKE2s digest
func hashBlake2s(msg []byte) [32]byte {
	return blake2s.Sum256(msg)
}
