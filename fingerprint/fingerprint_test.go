package fingerprint

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"strings"
	"testing"
)

func TestForKey_DeterministicPerAlg(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	a, err := ForKey(pub, "sha256")
	if err != nil {
		t.Fatalf("ForKey(sha256): %v", err)
	}
	b, err := ForKey(pub, "sha256")
	if err != nil {
		t.Fatalf("ForKey(sha256): %v", err)
	}
	if a != b {
		t.Fatalf("fingerprint not deterministic: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "b") {
		t.Fatalf("expected base32 CIDv1, got %s", a)
	}

	c, err := ForKey(pub, "sha3-256")
	if err != nil {
		t.Fatalf("ForKey(sha3-256): %v", err)
	}
	if a == c {
		t.Fatalf("sha256 and sha3-256 fingerprints should differ")
	}
}

func TestForKey_DiffersAcrossKeys(t *testing.T) {
	pub1, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	pub2, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	a, _ := ForKey(pub1, "sha256")
	b, _ := ForKey(pub2, "sha256")
	if a == b {
		t.Fatalf("distinct keys produced identical fingerprints")
	}
}

func TestForKey_RejectsNonEd25519(t *testing.T) {
	ec, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("ecdsa.GenerateKey: %v", err)
	}
	if _, err := ForKey(&ec.PublicKey, "sha256"); err == nil {
		t.Fatalf("expected error for non-Ed25519 key")
	}
}

func TestForDER_UnsupportedAlg(t *testing.T) {
	if _, err := ForDER([]byte{1, 2, 3}, "md5"); err == nil {
		t.Fatalf("expected error for unsupported hash algorithm")
	}
}

func TestCIDv1RawSHA256_MatchesCIDForm(t *testing.T) {
	data := []byte("some key bytes")
	s := CIDv1RawSHA256(data)
	id, err := CIDv1RawSHA256CID(data)
	if err != nil {
		t.Fatalf("CIDv1RawSHA256CID: %v", err)
	}
	if id.String() != s {
		t.Fatalf("string and cid forms disagree: %s vs %s", s, id.String())
	}
}
