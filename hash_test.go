package p256

import (
	"bytes"
	"testing"
)

func TestHash256KnownAnswer(t *testing.T) {
	got := hash256([]byte("abc"))
	want := mustHex(t, "BA7816BF8F01CFEA414140DE5DAE2223B00361A396177A9CB410FF61F20015AD")
	if !bytes.Equal(got[:], want) {
		t.Errorf("SHA-256(abc) = %x", got)
	}
}

func TestHash384KnownAnswer(t *testing.T) {
	got := hash384([]byte("abc"))
	want := mustHex(t, "CB00753F45A35E8BB5A03D699AC65007272C32AB0EDED1631A8B605A43FF5BED"+
		"8086072BA1E7CC2358BAECA134C825A7")
	if !bytes.Equal(got[:], want) {
		t.Errorf("SHA-384(abc) = %x", got)
	}
}

func TestHash512KnownAnswer(t *testing.T) {
	got := hash512([]byte("abc"))
	want := mustHex(t, "DDAF35A193617ABACC417349AE20413112E6FA4E89A97EA20A9EEEE64B55D39A"+
		"2192992A274FC1A836BA3C23A3FEEBBD454D4423643CE80E2A9AC94FA54CA49F")
	if !bytes.Equal(got[:], want) {
		t.Errorf("SHA-512(abc) = %x", got)
	}
}

func TestHashBlake2sKnownAnswer(t *testing.T) {
	got := hashBlake2s([]byte("abc"))
	want := mustHex(t, "508C5E8C327C14E2E1A72BA34EEB452F37458B209ED63A294D999B4C86675982")
	if !bytes.Equal(got[:], want) {
		t.Errorf("BLAKE2s(abc) = %x", got)
	}
}

func TestSHA256Context(t *testing.T) {
	h := NewSHA256()
	h.Write([]byte("a"))
	h.Write([]byte("bc"))
	var out [32]byte
	h.Finalize(out[:])
	want := hash256([]byte("abc"))
	if !bytes.Equal(out[:], want[:]) {
		t.Error("incremental and one-shot SHA-256 disagree")
	}
	h.Clear()
}
