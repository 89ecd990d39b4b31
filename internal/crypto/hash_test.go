package crypto

import (
	"testing"
)

func TestHashHex(t *testing.T) {
	// sha256("abc"), a fixed known vector.
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	if got := HashHex("abc"); got != want {
		t.Errorf("HashHex(\"abc\") = %s, want %s", got, want)
	}
}

func TestHashHex_Length(t *testing.T) {
	if got := HashHex(""); len(got) != 64 {
		t.Errorf("Digest length = %d, want 64 hex characters", len(got))
	}
}

func TestHashPairHex(t *testing.T) {
	if HashPairHex("left", "right") != HashHex("leftright") {
		t.Error("HashPairHex should hash the plain concatenation")
	}

	// Pairing is not symmetric.
	if HashPairHex("a", "b") == HashPairHex("b", "a") {
		t.Error("HashPairHex should depend on argument order")
	}
}
